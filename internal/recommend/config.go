// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/hamadayuuki/irodori-api/internal/recommend/algorithms"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Search bounds the similarity stage.
	Search SearchConfig `json:"search"`

	// Limits contains request defaults and maxima.
	Limits LimitsConfig `json:"limits"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`
}

// SearchConfig bounds the similarity stage.
type SearchConfig struct {
	// TopK is the number of similar garments fetched per request,
	// independent of the requested outfit and candidate counts.
	// Default: 50.
	TopK int `json:"top_k"`

	// MinSimilarity stops the scan below this score unless a request sets
	// its own floor.
	// Default: 0.
	MinSimilarity float64 `json:"min_similarity"`
}

// LimitsConfig contains request defaults and maxima.
type LimitsConfig struct {
	// DefaultOutfits applies when a request leaves NumOutfits at zero.
	// Default: 3.
	DefaultOutfits int `json:"default_outfits"`

	// MaxOutfits caps NumOutfits.
	// Default: 20.
	MaxOutfits int `json:"max_outfits"`

	// DefaultCandidates applies when a request leaves NumCandidates at zero.
	// Default: 5.
	DefaultCandidates int `json:"default_candidates"`

	// MaxCandidates caps NumCandidates.
	// Default: 50.
	MaxCandidates int `json:"max_candidates"`
}

// CacheConfig contains response caching parameters.
type CacheConfig struct {
	// Enabled controls whether caching is active.
	// Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 10m.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the maximum number of cached responses.
	// Default: 1024.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			TopK:          algorithms.DefaultTopK,
			MinSimilarity: 0,
		},
		Limits: LimitsConfig{
			DefaultOutfits:    3,
			MaxOutfits:        20,
			DefaultCandidates: 5,
			MaxCandidates:     50,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 1024,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Search.TopK < 1 {
		return fmt.Errorf("search.top_k must be positive, got %d", c.Search.TopK)
	}
	if c.Search.MinSimilarity < 0 || c.Search.MinSimilarity > algorithms.MaxSimilarityScore {
		return fmt.Errorf("search.min_similarity must be in [0, 1], got %f", c.Search.MinSimilarity)
	}

	if c.Limits.DefaultOutfits < 1 {
		return fmt.Errorf("limits.default_outfits must be positive, got %d", c.Limits.DefaultOutfits)
	}
	if c.Limits.MaxOutfits < c.Limits.DefaultOutfits {
		return fmt.Errorf("limits.max_outfits must be >= limits.default_outfits, got %d < %d",
			c.Limits.MaxOutfits, c.Limits.DefaultOutfits)
	}
	if c.Limits.DefaultCandidates < 1 {
		return fmt.Errorf("limits.default_candidates must be positive, got %d", c.Limits.DefaultCandidates)
	}
	if c.Limits.MaxCandidates < c.Limits.DefaultCandidates {
		return fmt.Errorf("limits.max_candidates must be >= limits.default_candidates, got %d < %d",
			c.Limits.MaxCandidates, c.Limits.DefaultCandidates)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs hold value types only.
	clone := *c
	return &clone
}

// MarshalJSON writes durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type cacheJSON struct {
		Enabled    bool   `json:"enabled"`
		TTL        string `json:"ttl"`
		MaxEntries int    `json:"max_entries"`
	}
	return json.Marshal(&struct {
		Search SearchConfig `json:"search"`
		Limits LimitsConfig `json:"limits"`
		Cache  cacheJSON    `json:"cache"`
	}{
		Search: c.Search,
		Limits: c.Limits,
		Cache: cacheJSON{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
	})
}
