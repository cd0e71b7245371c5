// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package storage

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hamadayuuki/irodori-api/internal/recommend/index"
	"github.com/hamadayuuki/irodori-api/internal/recommend/labels"
	"github.com/hamadayuuki/irodori-api/internal/recommend/tfidf"
)

// ErrInvalidArtifact is returned when an artifact cannot be turned into an index.
var ErrInvalidArtifact = errors.New("invalid artifact")

// Metadata describes an artifact.
type Metadata struct {
	Segment   string    `json:"segment"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Source    string    `json:"source,omitempty"`
}

// Artifact is the serialized form of one segment's index.
type Artifact struct {
	Metadata Metadata `json:"metadata"`

	Items   []ItemRecord   `json:"items"`
	Outfits []OutfitRecord `json:"outfits"`

	// TFIDF is keyed by clothing type label.
	TFIDF map[string]TypeIndexRecord `json:"tfidf"`

	// ItemToOutfits maps a garment identity to the outfits containing it.
	ItemToOutfits map[string][]string `json:"item_to_outfits,omitempty"`

	// Recs maps a garment identity to co-occurring identities per type label.
	Recs map[string]map[string][]string `json:"recs,omitempty"`
}

// ItemRecord is one garment. ID may be empty, in which case the canonical
// identity is computed from the other fields.
type ItemRecord struct {
	ID       string `json:"id,omitempty"`
	ItemType string `json:"item_type"`
	ItemName string `json:"item_name"`
	Color    string `json:"color"`
}

// OutfitRecord is one catalogued look.
type OutfitRecord struct {
	ID        string   `json:"id"`
	ImageName string   `json:"image_name"`
	Items     []string `json:"items"`
}

// TypeIndexRecord is the fitted similarity sub-index of one type.
type TypeIndexRecord struct {
	Vectorizer VectorizerRecord `json:"vectorizer"`
	Matrix     MatrixRecord     `json:"matrix"`
	Keys       []string         `json:"keys"`
}

// VectorizerRecord is a fitted TF-IDF vectorizer.
type VectorizerRecord struct {
	tfidf.Config
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf,omitempty"`
}

// MatrixRecord is a CSR matrix.
type MatrixRecord struct {
	Shape   [2]int    `json:"shape"`
	Indptr  []int     `json:"indptr"`
	Indices []int     `json:"indices"`
	Data    []float64 `json:"data"`
}

// LoadReport counts records dropped while building an index.
type LoadReport struct {
	SkippedItems     int `json:"skipped_items"`
	SkippedRelations int `json:"skipped_relations"`
}

// parseType accepts the corpus label and falls back to the alias table.
func parseType(raw string) (labels.ClothingType, bool) {
	if t, ok := labels.ParseLabel(raw); ok {
		return t, true
	}
	return labels.CanonType(raw)
}

// BuildIndex turns an artifact into a frozen garment index. Garments with an
// unknown type and relations keyed by an unknown type are skipped and
// counted; a malformed sub-index fails the build.
func BuildIndex(segment string, a *Artifact) (*index.GarmentIndex, LoadReport, error) {
	var report LoadReport
	if a == nil {
		return nil, report, fmt.Errorf("%w: nil artifact", ErrInvalidArtifact)
	}

	b := index.NewBuilder(segment)

	for _, item := range a.Items {
		t, ok := parseType(item.ItemType)
		if !ok {
			report.SkippedItems++
			continue
		}
		id := labels.GarmentID(item.ID)
		if id == "" {
			id = labels.MakeIdentity(t, item.ItemName, item.Color)
		}
		b.AddGarment(index.Garment{ID: id, Type: t, Category: item.ItemName, Attribute: item.Color})
	}

	for _, o := range a.Outfits {
		members := make([]labels.GarmentID, len(o.Items))
		for i, m := range o.Items {
			members[i] = labels.GarmentID(m)
		}
		b.AddOutfit(index.Outfit{ID: o.ID, ImageName: o.ImageName, Members: members})
	}

	// Sorted for stable error reporting.
	typeLabels := make([]string, 0, len(a.TFIDF))
	for label := range a.TFIDF {
		typeLabels = append(typeLabels, label)
	}
	sort.Strings(typeLabels)

	for _, label := range typeLabels {
		t, ok := parseType(label)
		if !ok {
			return nil, report, fmt.Errorf("%w: sub-index for unknown type %q", ErrInvalidArtifact, label)
		}
		ti, err := buildTypeIndex(a.TFIDF[label])
		if err != nil {
			return nil, report, fmt.Errorf("%w: sub-index %s: %w", ErrInvalidArtifact, label, err)
		}
		if err := b.SetTypeIndex(t, ti); err != nil {
			return nil, report, err
		}
	}

	for id, outfits := range a.ItemToOutfits {
		b.SetMembership(labels.GarmentID(id), outfits)
	}

	for id, byType := range a.Recs {
		for label, ids := range byType {
			t, ok := parseType(label)
			if !ok {
				report.SkippedRelations++
				continue
			}
			members := make([]labels.GarmentID, len(ids))
			for i, m := range ids {
				members[i] = labels.GarmentID(m)
			}
			b.SetCoOccurrence(labels.GarmentID(id), t, members)
		}
	}

	x, err := b.Build()
	if err != nil {
		return nil, report, err
	}
	return x, report, nil
}

//nolint:gocritic // record passed by value is read-only
func buildTypeIndex(r TypeIndexRecord) (*index.TypeIndex, error) {
	v, err := tfidf.NewVectorizer(r.Vectorizer.Config, r.Vectorizer.Vocabulary, r.Vectorizer.IDF)
	if err != nil {
		return nil, err
	}
	m, err := tfidf.NewMatrix(r.Matrix.Shape[0], r.Matrix.Shape[1], r.Matrix.Indptr, r.Matrix.Indices, r.Matrix.Data)
	if err != nil {
		return nil, err
	}
	keys := make([]labels.GarmentID, len(r.Keys))
	for i, k := range r.Keys {
		keys[i] = labels.GarmentID(k)
	}
	return index.NewTypeIndex(v, m, keys)
}

// NewTypeIndexRecord serializes a sub-index.
func NewTypeIndexRecord(ti *index.TypeIndex) TypeIndexRecord {
	v := ti.Vectorizer()
	m := ti.Matrix()
	indptr, indices, data := m.CSR()

	keys := make([]string, ti.Len())
	for i := range keys {
		keys[i] = string(ti.Key(i))
	}

	return TypeIndexRecord{
		Vectorizer: VectorizerRecord{
			Config:     v.Config(),
			Vocabulary: v.Vocabulary(),
			IDF:        v.IDF(),
		},
		Matrix: MatrixRecord{
			Shape:   [2]int{m.Rows(), m.Cols()},
			Indptr:  indptr,
			Indices: indices,
			Data:    data,
		},
		Keys: keys,
	}
}
