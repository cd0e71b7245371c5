// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package algorithms

import (
	"errors"

	"github.com/hamadayuuki/irodori-api/internal/recommend/index"
	"github.com/hamadayuuki/irodori-api/internal/recommend/labels"
)

// ErrInvalidArgument is returned for arguments a caller should have
// rejected earlier, such as a non-canonical clothing type.
var ErrInvalidArgument = errors.New("invalid argument")

// SimilaritySource is the part of a garment index used by FindSimilar.
type SimilaritySource interface {
	LookupExact(t labels.ClothingType, category, text string) (labels.GarmentID, bool)
	TypeIndex(t labels.ClothingType) (*index.TypeIndex, bool)
}

// OutfitSource is the part of a garment index used by AssembleOutfits.
type OutfitSource interface {
	Garment(id labels.GarmentID) (index.Garment, bool)
	OutfitsContaining(id labels.GarmentID) []string
	OutfitDetail(outfitID string) (index.Outfit, error)
}

// CoOccurrenceSource is the part of a garment index used by BuildCandidateLists.
type CoOccurrenceSource interface {
	Garment(id labels.GarmentID) (index.Garment, bool)
	CoOccurring(id labels.GarmentID, t labels.ClothingType) []labels.GarmentID
}

// ScoredGarment is a garment with its similarity to the query.
type ScoredGarment struct {
	ID    labels.GarmentID `json:"id"`
	Score float64          `json:"score"`
}

// targetTypes returns every clothing type except exclude, in canonical order.
func targetTypes(exclude labels.ClothingType) []labels.ClothingType {
	all := labels.AllTypes()
	out := all[:0]
	for _, t := range all {
		if t != exclude {
			out = append(out, t)
		}
	}
	return out
}
