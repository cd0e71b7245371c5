// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

/*
Package config loads the engine configuration with koanf.

# Configuration Sources

Sources are layered, later ones overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: the path passed to LoadFrom, else CONFIG_PATH,
    else the first of DefaultConfigPaths that exists
 3. Environment variables listed in the mapping table below

# Environment Variables

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include file:line (default: false)

Recommendation:
  - MODEL_DIR: directory holding <segment>_model.json[.gz] (default: models)
  - RECOMMEND_SEGMENTS: comma-separated segments to load (default: men,women)
  - RECOMMEND_DEFAULT_SEGMENT: fallback for unknown segments (default: men)
  - RECOMMEND_SEGMENT_ALIASES: alias:segment pairs, comma-separated (default: other:men)
  - RECOMMEND_TOP_K: similar garments scanned per query (default: 50)
  - RECOMMEND_MIN_SIMILARITY: similarity floor in [0,1] (default: 0)
  - RECOMMEND_DEFAULT_OUTFITS / RECOMMEND_MAX_OUTFITS (default: 3 / 20)
  - RECOMMEND_DEFAULT_CANDIDATES / RECOMMEND_MAX_CANDIDATES (default: 5 / 50)
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_SIZE
  - RECOMMEND_VERIFY_CHECKSUM: require a .sha256 sidecar per artifact

Metrics:
  - METRICS_TEXTFILE: write a Prometheus textfile here on exit

# Example YAML

	logging:
	  level: debug
	recommend:
	  model_dir: /var/lib/irodori/models
	  segments: [men, women]
	  segment_aliases:
	    other: men
	  cache_ttl: 15m
*/
package config
