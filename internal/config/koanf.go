// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"irodori.yaml",
	"irodori.yml",
	"/etc/irodori/config.yaml",
	"/etc/irodori/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Recommend: RecommendConfig{
			ModelDir:          "models",
			Segments:          []string{"men", "women"},
			DefaultSegment:    "men",
			SegmentAliases:    map[string]string{"other": "men"},
			TopK:              50,
			MinSimilarity:     0,
			DefaultOutfits:    3,
			MaxOutfits:        20,
			DefaultCandidates: 5,
			MaxCandidates:     50,
			CacheEnabled:      true,
			CacheTTL:          10 * time.Minute,
			CacheSize:         1024,
			VerifyChecksum:    false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load reads configuration from defaults, the discovered config file and
// the environment.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit config file. Unlike a discovered file,
// an explicit path that does not exist is an error.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	configPath := path
	if configPath == "" {
		configPath = findConfigFile()
	} else if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := processMapFields(k); err != nil {
		return nil, fmt.Errorf("failed to process map fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"recommend.segments",
}

// mapConfigPaths are parsed from comma-separated key:value pairs when set via env.
var mapConfigPaths = []string{
	"recommend.segment_aliases",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := splitList(strVal)
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

func processMapFields(k *koanf.Koanf) error {
	for _, path := range mapConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		pairs := make(map[string]interface{})
		for _, part := range splitList(strVal) {
			key, value, found := strings.Cut(part, ":")
			key, value = strings.TrimSpace(key), strings.TrimSpace(value)
			if !found || key == "" || value == "" {
				return fmt.Errorf("%s: malformed pair %q, want key:value", path, part)
			}
			pairs[key] = value
		}
		// Delete first so the string leaf does not survive the merge.
		k.Delete(path)
		if err := k.Set(path, pairs); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// envTransformFunc maps known environment variables to koanf paths.
// Unmapped variables return "" and are ignored.
func envTransformFunc(key string) string {
	envMappings := map[string]string{
		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Recommendation
		"model_dir":                    "recommend.model_dir",
		"recommend_segments":           "recommend.segments",
		"recommend_default_segment":    "recommend.default_segment",
		"recommend_segment_aliases":    "recommend.segment_aliases",
		"recommend_top_k":              "recommend.top_k",
		"recommend_min_similarity":     "recommend.min_similarity",
		"recommend_default_outfits":    "recommend.default_outfits",
		"recommend_max_outfits":        "recommend.max_outfits",
		"recommend_default_candidates": "recommend.default_candidates",
		"recommend_max_candidates":     "recommend.max_candidates",
		"recommend_cache_enabled":      "recommend.cache_enabled",
		"recommend_cache_ttl":          "recommend.cache_ttl",
		"recommend_cache_size":         "recommend.cache_size",
		"recommend_verify_checksum":    "recommend.verify_checksum",

		// Metrics
		"metrics_textfile": "metrics.textfile",
	}

	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
