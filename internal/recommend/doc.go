// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

// Package recommend is the entry point of the outfit recommendation engine.
//
// # Architecture
//
// A request describes one garment the user owns: its clothing type, a
// category and free text. The engine answers with catalogued outfits that
// contain similar garments and, for every other clothing type, a ranked list
// of garments that were worn with the best matches.
//
//	Request
//	  -> labels.CanonType              clothing type from open vocabulary
//	  -> Registry.Resolve              per-segment garment index
//	  -> algorithms.FindSimilar        TF-IDF similarity, exact match first
//	  -> algorithms.AssembleOutfits    outfits of the best matches
//	  -> algorithms.BuildCandidateLists co-occurring garments per type
//	  -> Response
//
// The sub-packages are layered leaves first: labels, tfidf, index, storage
// and algorithms. This package only wires them together with caching,
// validation, logging and metrics.
//
// # Usage
//
//	store := storage.NewStore("models")
//	registry := recommend.NewRegistry(store, recommend.RegistryConfig{
//	    Segments: []string{"men", "women"},
//	    Policy:   recommend.SegmentPolicy{Default: "men", Aliases: map[string]string{"other": "men"}},
//	}, logger)
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), registry, logger)
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Segment:  "men",
//	    Type:     "ボトムス",
//	    Category: "ワイドパンツ",
//	    Text:     "ブラックのワイドパンツ",
//	})
//
// # Thread Safety
//
// Indexes are immutable once loaded and the registry is frozen after Init,
// so Recommend may be called from any number of goroutines.
package recommend
