// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

// Package algorithms implements the three stages of an outfit recommendation.
//
// # Stages
//
//   - FindSimilar: ranks garments of the query type by TF-IDF cosine
//     similarity, with an exact identity match always ranked first
//   - AssembleOutfits: expands the ranking into catalogued outfits, leaving
//     out the query type
//   - BuildCandidateLists: lists, per remaining type, garments that were
//     worn with the best (and if needed second best) match
//
// # Usage Example
//
//	similar, err := algorithms.FindSimilar(idx, labels.Bottoms,
//	    "ワイドパンツ", "ブラックのワイドパンツ", algorithms.DefaultSearchOptions())
//	if err != nil {
//	    return err
//	}
//	outfits := algorithms.AssembleOutfits(idx, similar, labels.Bottoms, 3)
//	candidates := algorithms.BuildCandidateLists(idx, similar, labels.Bottoms, 5)
//
// # Thread Safety
//
// The functions hold no state. They only read the index they are given,
// so concurrent calls over a shared *index.GarmentIndex are safe.
//
// # Determinism
//
// Ranking ties are broken by sub-index row order and every walk follows
// corpus order, so identical inputs produce identical outputs.
package algorithms
