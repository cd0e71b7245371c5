// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package algorithms

import (
	"strings"

	"github.com/hamadayuuki/irodori-api/internal/recommend/labels"
)

// OutfitView is a catalogued outfit projected onto every clothing type
// except the query type. Each slot holds the space-joined identities of the
// outfit's garments of that type, possibly empty.
type OutfitView struct {
	OutfitID  string
	ImageName string
	Slots     map[labels.ClothingType]string
}

// Types returns the slot types of the view in canonical order.
//
//nolint:gocritic // value receiver keeps OutfitView immutable
func (v OutfitView) Types() []labels.ClothingType {
	types := make([]labels.ClothingType, 0, len(v.Slots))
	for _, t := range labels.AllTypes() {
		if _, ok := v.Slots[t]; ok {
			types = append(types, t)
		}
	}
	return types
}

// AssembleOutfits walks the outfits of each similar garment in ranking order
// and returns up to numOutfits distinct outfits. Members of type exclude
// and members missing from the garment set are left out; an outfit that
// cannot be resolved is skipped.
func AssembleOutfits(src OutfitSource, similar []ScoredGarment, exclude labels.ClothingType, numOutfits int) []OutfitView {
	if numOutfits < 1 {
		return []OutfitView{}
	}

	types := targetTypes(exclude)
	emitted := NewOrderedSet[string](numOutfits)
	views := make([]OutfitView, 0, numOutfits)

	for _, item := range similar {
		for _, oid := range src.OutfitsContaining(item.ID) {
			if emitted.Has(oid) {
				continue
			}
			outfit, err := src.OutfitDetail(oid)
			if err != nil {
				continue
			}

			slots := make(map[labels.ClothingType][]string, len(types))
			for _, t := range types {
				slots[t] = nil
			}
			for _, member := range outfit.Members {
				g, ok := src.Garment(member)
				if !ok || g.Type == exclude {
					continue
				}
				if _, ok := slots[g.Type]; ok {
					slots[g.Type] = append(slots[g.Type], string(member))
				}
			}

			view := OutfitView{
				OutfitID:  outfit.ID,
				ImageName: outfit.ImageName,
				Slots:     make(map[labels.ClothingType]string, len(types)),
			}
			for t, members := range slots {
				view.Slots[t] = strings.Join(members, " ")
			}

			views = append(views, view)
			emitted.Add(oid)
			if len(views) >= numOutfits {
				return views
			}
		}
	}

	return views
}
