// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package algorithms

import "github.com/hamadayuuki/irodori-api/internal/recommend/labels"

// BuildCandidateLists returns, for every type except exclude, up to
// numCandidates distinct garments that co-occurred with the best match.
// When the best match alone yields fewer than numCandidates, the second
// match's co-occurrences are appended. Identities that are not catalogued
// garments of the slot type are dropped. Every type gets a list, possibly
// empty.
func BuildCandidateLists(src CoOccurrenceSource, similar []ScoredGarment, exclude labels.ClothingType, numCandidates int) map[labels.ClothingType][]labels.GarmentID {
	types := targetTypes(exclude)
	lists := make(map[labels.ClothingType][]labels.GarmentID, len(types))

	for _, t := range types {
		if len(similar) == 0 || numCandidates < 1 {
			lists[t] = []labels.GarmentID{}
			continue
		}

		set := NewOrderedSet[labels.GarmentID](numCandidates)
		// Stricter than set membership: an id must also be catalogued as type t.
		addKnown(set, src, t, src.CoOccurring(similar[0].ID, t))
		if set.Len() < numCandidates && len(similar) > 1 {
			addKnown(set, src, t, src.CoOccurring(similar[1].ID, t))
		}

		items := set.Items()
		if len(items) > numCandidates {
			items = items[:numCandidates]
		}
		lists[t] = items
	}

	return lists
}

func addKnown(set *OrderedSet[labels.GarmentID], src CoOccurrenceSource, t labels.ClothingType, ids []labels.GarmentID) {
	for _, id := range ids {
		if g, ok := src.Garment(id); ok && g.Type == t {
			set.Add(id)
		}
	}
}
