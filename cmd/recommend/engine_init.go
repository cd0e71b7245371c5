// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package main

import (
	"github.com/rs/zerolog"

	"github.com/hamadayuuki/irodori-api/internal/config"
	"github.com/hamadayuuki/irodori-api/internal/recommend"
	"github.com/hamadayuuki/irodori-api/internal/recommend/storage"
)

// initEngine wires the artifact store, the segment registry and the engine.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initEngine(cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, error) {
	logger.Info().
		Str("model_dir", cfg.Recommend.ModelDir).
		Strs("segments", cfg.Recommend.Segments).
		Str("default_segment", cfg.Recommend.DefaultSegment).
		Bool("verify_checksum", cfg.Recommend.VerifyChecksum).
		Msg("initializing recommendation engine")

	opts := []storage.Option{storage.WithLogger(logger)}
	if cfg.Recommend.VerifyChecksum {
		opts = append(opts, storage.RequireChecksum())
	}
	store := storage.NewStore(cfg.Recommend.ModelDir, opts...)

	registry := recommend.NewRegistry(store, buildRegistryConfig(cfg), logger)
	return recommend.NewEngine(buildEngineConfig(cfg), registry, logger)
}

// buildEngineConfig maps config.Config to recommend.Config.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	r := cfg.Recommend
	return &recommend.Config{
		Search: recommend.SearchConfig{
			TopK:          r.TopK,
			MinSimilarity: r.MinSimilarity,
		},
		Limits: recommend.LimitsConfig{
			DefaultOutfits:    r.DefaultOutfits,
			MaxOutfits:        r.MaxOutfits,
			DefaultCandidates: r.DefaultCandidates,
			MaxCandidates:     r.MaxCandidates,
		},
		Cache: recommend.CacheConfig{
			Enabled:    r.CacheEnabled,
			TTL:        r.CacheTTL,
			MaxEntries: r.CacheSize,
		},
	}
}

// buildRegistryConfig maps the segment settings to recommend.RegistryConfig.
func buildRegistryConfig(cfg *config.Config) recommend.RegistryConfig {
	aliases := make(map[string]string, len(cfg.Recommend.SegmentAliases))
	for alias, target := range cfg.Recommend.SegmentAliases {
		aliases[alias] = target
	}
	return recommend.RegistryConfig{
		Segments: append([]string(nil), cfg.Recommend.Segments...),
		Policy: recommend.SegmentPolicy{
			Default: cfg.Recommend.DefaultSegment,
			Aliases: aliases,
		},
	}
}
