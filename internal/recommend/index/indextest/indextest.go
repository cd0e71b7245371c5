// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

// Package indextest builds small garment indexes for tests.
package indextest

import (
	"testing"

	"github.com/hamadayuuki/irodori-api/internal/recommend/index"
	"github.com/hamadayuuki/irodori-api/internal/recommend/labels"
	"github.com/hamadayuuki/irodori-api/internal/recommend/tfidf"
	"github.com/hamadayuuki/irodori-api/internal/recommend/tfidf/tfidftest"
)

// VectorizerConfig is the analyzer used for fixture sub-indexes. Character
// n-grams keep Japanese text comparable without a tokenizer.
var VectorizerConfig = tfidf.Config{
	Analyzer:    tfidf.AnalyzerCharWB,
	NGramMin:    2,
	NGramMax:    3,
	Lowercase:   true,
	SublinearTF: true,
	Norm:        tfidf.NormL2,
}

// G returns a garment with its canonical identity.
func G(t labels.ClothingType, category, attribute string) index.Garment {
	return index.Garment{
		ID:        labels.MakeIdentity(t, category, attribute),
		Type:      t,
		Category:  category,
		Attribute: attribute,
	}
}

// O returns an outfit made of the given garments.
func O(id, image string, members ...index.Garment) index.Outfit {
	ids := make([]labels.GarmentID, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return index.Outfit{ID: id, ImageName: image, Members: ids}
}

// Build registers garments and outfits, fits one vectorizer per type over
// the garments of that type and returns the frozen index.
func Build(tb testing.TB, segment string, garments []index.Garment, outfits []index.Outfit) *index.GarmentIndex {
	tb.Helper()

	b := NewBuilder(tb, segment, garments, outfits)
	x, err := b.Build()
	if err != nil {
		tb.Fatalf("Build() error = %v", err)
	}
	return x
}

// NewBuilder is Build without the final freeze, for tests that add
// explicit relations.
func NewBuilder(tb testing.TB, segment string, garments []index.Garment, outfits []index.Outfit) *index.Builder {
	tb.Helper()

	b := index.NewBuilder(segment)
	docs := make(map[labels.ClothingType][]string)
	for _, g := range garments {
		b.AddGarment(g)
		docs[g.Type] = append(docs[g.Type], labels.NormalizeText(g.Text()))
	}
	for _, o := range outfits {
		b.AddOutfit(o)
	}

	for _, t := range labels.AllTypes() {
		if len(docs[t]) == 0 {
			continue
		}
		v, err := tfidftest.Fit(VectorizerConfig, docs[t])
		if err != nil {
			tb.Fatalf("fit %s: %v", t, err)
		}
		if err := b.VectorizeType(t, v); err != nil {
			tb.Fatalf("VectorizeType(%s) error = %v", t, err)
		}
	}
	return b
}

// Wardrobe garments.
var (
	BlackWidePants = G(labels.Bottoms, "ワイドパンツ", "ブラックのワイドパンツ")
	GrayWidePants  = G(labels.Bottoms, "ワイドパンツ", "グレー")
	WhiteSkirt     = G(labels.Bottoms, "スカート", "ホワイト")
	GraySweater    = G(labels.Tops, "セーター", "グレー")
	WhiteShirt     = G(labels.Tops, "シャツ", "ホワイト")
	WhiteSneaker   = G(labels.Shoes, "スニーカー", "ホワイト")
	BlackBoots     = G(labels.Shoes, "ブーツ", "ブラック")
	BlackCap       = G(labels.Accessories, "キャップ", "ブラック")
)

// WardrobeGarments lists every wardrobe garment. No outerwear is catalogued.
func WardrobeGarments() []index.Garment {
	return []index.Garment{
		BlackWidePants, GrayWidePants, WhiteSkirt,
		GraySweater, WhiteShirt,
		WhiteSneaker, BlackBoots,
		BlackCap,
	}
}

// WardrobeOutfits lists the wardrobe looks:
//
//	o1: black wide pants, gray sweater
//	o2: black wide pants, white sneaker
//	o3: gray wide pants, white shirt, black boots, black cap
//	o4: white skirt, gray sweater, white sneaker
func WardrobeOutfits() []index.Outfit {
	return []index.Outfit{
		O("o1", "o1.jpg", BlackWidePants, GraySweater),
		O("o2", "o2.jpg", BlackWidePants, WhiteSneaker),
		O("o3", "o3.jpg", GrayWidePants, WhiteShirt, BlackBoots, BlackCap),
		O("o4", "o4.jpg", WhiteSkirt, GraySweater, WhiteSneaker),
	}
}

// Wardrobe returns the wardrobe index for segment.
func Wardrobe(tb testing.TB, segment string) *index.GarmentIndex {
	tb.Helper()
	return Build(tb, segment, WardrobeGarments(), WardrobeOutfits())
}
