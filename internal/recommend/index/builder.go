// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package index

import (
	"fmt"

	"github.com/hamadayuuki/irodori-api/internal/recommend/labels"
	"github.com/hamadayuuki/irodori-api/internal/recommend/tfidf"
)

// Builder accumulates corpus records and produces a GarmentIndex.
// A Builder is not safe for concurrent use.
type Builder struct {
	segment string

	garments     map[labels.GarmentID]Garment
	garmentOrder []labels.GarmentID
	outfits      map[string]Outfit
	outfitOrder  []string
	typeIndexes  map[labels.ClothingType]*TypeIndex

	// Optional precomputed relations. Nil means derive at Build.
	membership map[labels.GarmentID][]string
	cooccur    map[labels.GarmentID]map[labels.ClothingType][]labels.GarmentID

	skipped int
}

// NewBuilder starts an index for segment.
func NewBuilder(segment string) *Builder {
	return &Builder{
		segment:     segment,
		garments:    make(map[labels.GarmentID]Garment),
		outfits:     make(map[string]Outfit),
		typeIndexes: make(map[labels.ClothingType]*TypeIndex),
	}
}

// AddGarment registers a garment. Garments with an invalid type or an
// identity already registered are skipped.
//
//nolint:gocritic // Garment passed by value is stored by value
func (b *Builder) AddGarment(g Garment) {
	if !g.Type.Valid() || g.ID == "" {
		b.skipped++
		return
	}
	if _, dup := b.garments[g.ID]; dup {
		b.skipped++
		return
	}
	b.garments[g.ID] = g
	b.garmentOrder = append(b.garmentOrder, g.ID)
}

// AddOutfit registers an outfit. A repeated outfit identifier is skipped.
func (b *Builder) AddOutfit(o Outfit) {
	if o.ID == "" {
		b.skipped++
		return
	}
	if _, dup := b.outfits[o.ID]; dup {
		b.skipped++
		return
	}
	o.Members = append([]labels.GarmentID(nil), o.Members...)
	b.outfits[o.ID] = o
	b.outfitOrder = append(b.outfitOrder, o.ID)
}

// SetTypeIndex installs a prebuilt similarity sub-index for t.
func (b *Builder) SetTypeIndex(t labels.ClothingType, ti *TypeIndex) error {
	if !t.Valid() {
		return fmt.Errorf("%w: clothing type %d", ErrInvalidIndex, t)
	}
	if ti == nil {
		return fmt.Errorf("%w: nil sub-index for %s", ErrInvalidIndex, t)
	}
	b.typeIndexes[t] = ti
	return nil
}

// VectorizeType builds the sub-index of t by vectorizing the text of every
// registered garment of that type, in registration order. No sub-index is
// installed when the type has no garments.
func (b *Builder) VectorizeType(t labels.ClothingType, v *tfidf.Vectorizer) error {
	var (
		keys []labels.GarmentID
		rows []tfidf.SparseVector
	)
	for _, id := range b.garmentOrder {
		g := b.garments[id]
		if g.Type != t {
			continue
		}
		keys = append(keys, id)
		rows = append(rows, v.Transform(labels.NormalizeText(g.Text())))
	}
	if len(keys) == 0 {
		return nil
	}

	m, err := tfidf.FromRows(v.Dim(), rows)
	if err != nil {
		return fmt.Errorf("vectorize %s: %w", t, err)
	}
	ti, err := NewTypeIndex(v, m, keys)
	if err != nil {
		return fmt.Errorf("vectorize %s: %w", t, err)
	}
	return b.SetTypeIndex(t, ti)
}

// SetMembership records the outfits containing id, replacing derivation
// for the whole index.
func (b *Builder) SetMembership(id labels.GarmentID, outfitIDs []string) {
	if b.membership == nil {
		b.membership = make(map[labels.GarmentID][]string)
	}
	b.membership[id] = append([]string(nil), outfitIDs...)
}

// SetCoOccurrence records the garments of type t that co-occur with id,
// replacing derivation for the whole index.
func (b *Builder) SetCoOccurrence(id labels.GarmentID, t labels.ClothingType, ids []labels.GarmentID) {
	if b.cooccur == nil {
		b.cooccur = make(map[labels.GarmentID]map[labels.ClothingType][]labels.GarmentID)
	}
	byType, ok := b.cooccur[id]
	if !ok {
		byType = make(map[labels.ClothingType][]labels.GarmentID)
		b.cooccur[id] = byType
	}
	byType[t] = append([]labels.GarmentID(nil), ids...)
}

// Build freezes the accumulated records into a GarmentIndex. Relations not
// supplied explicitly are derived from the outfits in corpus order.
func (b *Builder) Build() (*GarmentIndex, error) {
	x := &GarmentIndex{
		segment:     b.segment,
		garments:    b.garments,
		outfits:     b.outfits,
		membership:  b.membership,
		cooccur:     b.cooccur,
		typeIndexes: b.typeIndexes,
	}
	if x.membership == nil {
		x.membership = b.deriveMembership()
	}
	if x.cooccur == nil {
		x.cooccur = b.deriveCoOccurrence(x.membership)
	}

	dangling := 0
	for _, oid := range b.outfitOrder {
		for _, m := range b.outfits[oid].Members {
			if _, ok := b.garments[m]; !ok {
				dangling++
			}
		}
	}
	for _, ti := range b.typeIndexes {
		for _, k := range ti.keys {
			if _, ok := b.garments[k]; !ok {
				dangling++
			}
		}
	}

	x.stats = Stats{
		Segment:      b.segment,
		Garments:     len(b.garments),
		Outfits:      len(b.outfits),
		TypeIndexes:  len(b.typeIndexes),
		Skipped:      b.skipped,
		DanglingRefs: dangling,
	}

	// The builder must not alias a frozen index.
	*b = *NewBuilder(b.segment)
	return x, nil
}

func (b *Builder) deriveMembership() map[labels.GarmentID][]string {
	membership := make(map[labels.GarmentID][]string)
	for _, oid := range b.outfitOrder {
		seen := make(map[labels.GarmentID]struct{}, len(b.outfits[oid].Members))
		for _, m := range b.outfits[oid].Members {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			membership[m] = append(membership[m], oid)
		}
	}
	return membership
}

// deriveCoOccurrence lists, for every garment, the known garments sharing
// an outfit with it, grouped by type. Order follows membership then member
// order; repeats across outfits are kept.
func (b *Builder) deriveCoOccurrence(membership map[labels.GarmentID][]string) map[labels.GarmentID]map[labels.ClothingType][]labels.GarmentID {
	cooccur := make(map[labels.GarmentID]map[labels.ClothingType][]labels.GarmentID)
	for _, id := range b.garmentOrder {
		byType := make(map[labels.ClothingType][]labels.GarmentID)
		for _, oid := range membership[id] {
			o, ok := b.outfits[oid]
			if !ok {
				continue
			}
			for _, m := range o.Members {
				if m == id {
					continue
				}
				g, ok := b.garments[m]
				if !ok {
					continue
				}
				byType[g.Type] = append(byType[g.Type], m)
			}
		}
		if len(byType) > 0 {
			cooccur[id] = byType
		}
	}
	return cooccur
}
