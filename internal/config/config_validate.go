// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hamadayuuki/irodori-api/internal/logging"
)

// Validate checks the configuration for values the engine cannot serve with.
func (c *Config) Validate() error {
	if err := c.validateSegments(); err != nil {
		return err
	}
	if err := c.validateLimits(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSegments() error {
	r := &c.Recommend
	if strings.TrimSpace(r.ModelDir) == "" {
		return fmt.Errorf("recommend.model_dir is required")
	}
	if len(r.Segments) == 0 {
		return fmt.Errorf("recommend.segments must list at least one segment")
	}
	for _, s := range r.Segments {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("recommend.segments contains an empty name")
		}
	}
	if r.DefaultSegment != "" && !slices.Contains(r.Segments, r.DefaultSegment) {
		return fmt.Errorf("recommend.default_segment %q is not in recommend.segments", r.DefaultSegment)
	}
	for alias, target := range r.SegmentAliases {
		if !slices.Contains(r.Segments, target) {
			return fmt.Errorf("recommend.segment_aliases: %q maps to unknown segment %q", alias, target)
		}
	}
	return nil
}

func (c *Config) validateLimits() error {
	r := &c.Recommend
	if r.TopK < 1 {
		return fmt.Errorf("recommend.top_k must be at least 1, got %d", r.TopK)
	}
	if r.MinSimilarity < 0 || r.MinSimilarity > 1 {
		return fmt.Errorf("recommend.min_similarity must be within [0, 1], got %v", r.MinSimilarity)
	}
	if r.DefaultOutfits < 1 || r.DefaultOutfits > r.MaxOutfits {
		return fmt.Errorf("recommend.default_outfits must be within [1, max_outfits=%d], got %d",
			r.MaxOutfits, r.DefaultOutfits)
	}
	if r.DefaultCandidates < 1 || r.DefaultCandidates > r.MaxCandidates {
		return fmt.Errorf("recommend.default_candidates must be within [1, max_candidates=%d], got %d",
			r.MaxCandidates, r.DefaultCandidates)
	}
	return nil
}

func (c *Config) validateCache() error {
	r := &c.Recommend
	if !r.CacheEnabled {
		return nil
	}
	if r.CacheSize < 1 {
		return fmt.Errorf("recommend.cache_size must be positive when caching is enabled")
	}
	if r.CacheTTL <= 0 {
		return fmt.Errorf("recommend.cache_ttl must be positive when caching is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
