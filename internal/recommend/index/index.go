// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

// Package index holds the read-only, per-segment garment corpus queried by
// the recommendation engine.
//
// A GarmentIndex is assembled once with a Builder and never mutated after
// Build returns, so any number of goroutines may query it without locking.
// Accessors return copies of internal slices.
package index

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hamadayuuki/irodori-api/internal/recommend/labels"
	"github.com/hamadayuuki/irodori-api/internal/recommend/tfidf"
)

var (
	// ErrNotFound is returned by lookups of unknown outfit identifiers.
	ErrNotFound = errors.New("not found")

	// ErrInvalidIndex is returned when index components are inconsistent.
	ErrInvalidIndex = errors.New("invalid index")
)

// Garment is one catalogued garment.
type Garment struct {
	ID        labels.GarmentID
	Type      labels.ClothingType
	Category  string
	Attribute string
}

// Text returns the text a garment is vectorized from.
//
//nolint:gocritic // value receiver keeps Garment immutable
func (g Garment) Text() string {
	return strings.TrimSpace(g.Category + " " + g.Attribute)
}

// Outfit is one catalogued look. Members keep corpus order and may contain
// several garments of the same type.
type Outfit struct {
	ID        string
	ImageName string
	Members   []labels.GarmentID
}

// TypeIndex is the text-similarity sub-index of one clothing type: a fitted
// vectorizer and a matrix whose rows align with Keys.
type TypeIndex struct {
	vectorizer *tfidf.Vectorizer
	matrix     *tfidf.Matrix
	keys       []labels.GarmentID
}

// NewTypeIndex validates that the matrix matches the vectorizer and the keys.
func NewTypeIndex(v *tfidf.Vectorizer, m *tfidf.Matrix, keys []labels.GarmentID) (*TypeIndex, error) {
	if v == nil || m == nil {
		return nil, fmt.Errorf("%w: vectorizer and matrix are required", ErrInvalidIndex)
	}
	if m.Rows() != len(keys) {
		return nil, fmt.Errorf("%w: matrix has %d rows for %d keys", ErrInvalidIndex, m.Rows(), len(keys))
	}
	if m.Cols() != v.Dim() {
		return nil, fmt.Errorf("%w: matrix has %d columns, vocabulary has %d terms", ErrInvalidIndex, m.Cols(), v.Dim())
	}
	return &TypeIndex{
		vectorizer: v,
		matrix:     m,
		keys:       append([]labels.GarmentID(nil), keys...),
	}, nil
}

// Len returns the number of garments in the sub-index.
func (ti *TypeIndex) Len() int { return len(ti.keys) }

// Key returns the garment identity of row i.
func (ti *TypeIndex) Key(i int) labels.GarmentID { return ti.keys[i] }

// Keys returns a copy of the row-aligned garment identities.
func (ti *TypeIndex) Keys() []labels.GarmentID {
	return append([]labels.GarmentID(nil), ti.keys...)
}

// Vectorizer returns the fitted vectorizer.
func (ti *TypeIndex) Vectorizer() *tfidf.Vectorizer { return ti.vectorizer }

// Matrix returns the fitted garment matrix.
func (ti *TypeIndex) Matrix() *tfidf.Matrix { return ti.matrix }

// Score vectorizes query and returns its similarity with every row.
func (ti *TypeIndex) Score(query string) []float64 {
	return ti.matrix.DotRows(ti.vectorizer.Transform(query))
}

// Stats summarizes an index.
type Stats struct {
	Segment     string `json:"segment"`
	Garments    int    `json:"garments"`
	Outfits     int    `json:"outfits"`
	TypeIndexes int    `json:"type_indexes"`

	// Skipped counts records dropped at build time (unknown type, duplicate id).
	Skipped int `json:"skipped"`

	// DanglingRefs counts outfit members and sub-index keys that name no
	// known garment.
	DanglingRefs int `json:"dangling_refs"`
}

// GarmentIndex is the immutable corpus of one segment.
type GarmentIndex struct {
	segment     string
	garments    map[labels.GarmentID]Garment
	outfits     map[string]Outfit
	membership  map[labels.GarmentID][]string
	cooccur     map[labels.GarmentID]map[labels.ClothingType][]labels.GarmentID
	typeIndexes map[labels.ClothingType]*TypeIndex
	stats       Stats
}

// Segment returns the segment name the index was built for.
func (x *GarmentIndex) Segment() string { return x.segment }

// Stats returns build statistics.
func (x *GarmentIndex) Stats() Stats { return x.stats }

// Garment returns the garment with the given identity.
func (x *GarmentIndex) Garment(id labels.GarmentID) (Garment, bool) {
	g, ok := x.garments[id]
	return g, ok
}

// Contains reports whether id is in the garment set.
func (x *GarmentIndex) Contains(id labels.GarmentID) bool {
	_, ok := x.garments[id]
	return ok
}

// LookupExact computes the identity of (t, category, text) and reports
// whether that garment exists.
func (x *GarmentIndex) LookupExact(t labels.ClothingType, category, text string) (labels.GarmentID, bool) {
	id := labels.MakeIdentity(t, category, text)
	if !x.Contains(id) {
		return "", false
	}
	return id, true
}

// OutfitsContaining returns the outfits id belongs to, in corpus order.
// Unknown identities yield an empty result.
func (x *GarmentIndex) OutfitsContaining(id labels.GarmentID) []string {
	return append([]string(nil), x.membership[id]...)
}

// CoOccurring returns the garments of type t observed alongside id, in
// corpus order. The list may contain duplicates.
func (x *GarmentIndex) CoOccurring(id labels.GarmentID, t labels.ClothingType) []labels.GarmentID {
	return append([]labels.GarmentID(nil), x.cooccur[id][t]...)
}

// OutfitDetail returns the outfit with the given identifier, or ErrNotFound.
func (x *GarmentIndex) OutfitDetail(outfitID string) (Outfit, error) {
	o, ok := x.outfits[outfitID]
	if !ok {
		return Outfit{}, fmt.Errorf("outfit %q: %w", outfitID, ErrNotFound)
	}
	o.Members = append([]labels.GarmentID(nil), o.Members...)
	return o, nil
}

// TypeIndex returns the similarity sub-index of t, if one was built.
func (x *GarmentIndex) TypeIndex(t labels.ClothingType) (*TypeIndex, bool) {
	ti, ok := x.typeIndexes[t]
	return ti, ok
}
