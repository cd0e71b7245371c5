// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package algorithms

import (
	"fmt"
	"sort"

	"github.com/hamadayuuki/irodori-api/internal/recommend/labels"
)

const (
	// MaxSimilarityScore bounds every text-similarity score. Scores are
	// clamped to [0, MaxSimilarityScore].
	MaxSimilarityScore = 1.0

	// ExactMatchScore is assigned to a garment whose identity equals the
	// query identity. It is strictly greater than MaxSimilarityScore, so an
	// exact match always ranks first.
	ExactMatchScore = 2.0

	// DefaultTopK is the number of similar garments fetched per request.
	DefaultTopK = 50
)

// SearchOptions bounds a similarity search.
type SearchOptions struct {
	// TopK is the maximum number of results, exact match included. Must be >= 1.
	TopK int

	// MinSimilarity stops the scan at the first score below it.
	MinSimilarity float64
}

// DefaultSearchOptions returns TopK 50 and no similarity floor.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{TopK: DefaultTopK}
}

// FindSimilar ranks the garments of type t by similarity to
// "{category} {text}". When a garment with the exact query identity exists it
// is returned first with ExactMatchScore and not repeated later. A type
// without a sub-index yields at most the exact match.
//
//nolint:gocritic // opts passed by value is read-only
func FindSimilar(src SimilaritySource, t labels.ClothingType, category, text string, opts SearchOptions) ([]ScoredGarment, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: clothing type %d", ErrInvalidArgument, t)
	}
	if opts.TopK < 1 {
		return nil, fmt.Errorf("%w: top_k must be at least 1, got %d", ErrInvalidArgument, opts.TopK)
	}

	results := make([]ScoredGarment, 0, min(opts.TopK, 16))

	exactID, hasExact := src.LookupExact(t, category, text)
	if hasExact {
		results = append(results, ScoredGarment{ID: exactID, Score: ExactMatchScore})
	}

	ti, ok := src.TypeIndex(t)
	if !ok || ti.Len() == 0 {
		return results, nil
	}

	scores := ti.Score(labels.NormalizeText(category + " " + text))
	for i, s := range scores {
		scores[i] = clampScore(s)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	for _, row := range order {
		if len(results) >= opts.TopK {
			break
		}
		s := scores[row]
		if s < opts.MinSimilarity {
			break
		}
		key := ti.Key(row)
		if hasExact && key == exactID {
			continue
		}
		results = append(results, ScoredGarment{ID: key, Score: s})
	}

	return results, nil
}

func clampScore(s float64) float64 {
	switch {
	case s > MaxSimilarityScore:
		return MaxSimilarityScore
	case s > 0:
		return s
	default:
		return 0
	}
}
