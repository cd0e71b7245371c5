// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package config

import "time"

// Config is the root configuration.
type Config struct {
	Recommend RecommendConfig `koanf:"recommend"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// RecommendConfig holds model location, segment policy and request limits.
type RecommendConfig struct {
	// ModelDir holds one artifact per segment.
	ModelDir string `koanf:"model_dir"`

	// Segments are loaded at startup. A segment without an artifact is
	// skipped with a warning.
	Segments []string `koanf:"segments"`

	// DefaultSegment serves requests for segments that are neither loaded
	// nor aliased.
	DefaultSegment string `koanf:"default_segment"`

	// SegmentAliases maps request segments onto loaded ones, e.g. other -> men.
	SegmentAliases map[string]string `koanf:"segment_aliases"`

	// TopK bounds the similarity scan, independent of the output sizes.
	TopK int `koanf:"top_k"`

	// MinSimilarity stops the similarity scan below this score.
	MinSimilarity float64 `koanf:"min_similarity"`

	DefaultOutfits    int `koanf:"default_outfits"`
	MaxOutfits        int `koanf:"max_outfits"`
	DefaultCandidates int `koanf:"default_candidates"`
	MaxCandidates     int `koanf:"max_candidates"`

	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
	CacheSize    int           `koanf:"cache_size"`

	// VerifyChecksum rejects artifacts without a matching .sha256 sidecar.
	VerifyChecksum bool `koanf:"verify_checksum"`
}

// MetricsConfig controls Prometheus export for one-shot runs.
type MetricsConfig struct {
	// Textfile, when set, receives the registry in node_exporter format.
	Textfile string `koanf:"textfile"`
}

// LoggingConfig mirrors logging.Config minus the output writer.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller adds file:line to log entries.
	// Default: false
	Caller bool `koanf:"caller"`
}
