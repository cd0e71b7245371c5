// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

// Package main is the recommend command, a one-shot runner for the outfit
// recommendation engine.
//
// It loads the configured segment artifacts, answers a single query and
// prints the response as indented JSON on stdout. Logs go to stderr.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 (highest priority wins):
//   - Command line flags
//   - Environment variables (LOG_LEVEL, MODEL_DIR, RECOMMEND_*, METRICS_TEXTFILE)
//   - Config file (-config, CONFIG_PATH or irodori.yaml)
//   - Built-in defaults
//
// # Example Usage
//
//	recommend -segment men -type ボトムス -category ワイドパンツ \
//	    -text ブラックのワイドパンツ -outfits 5 -candidates 10 -min-sim 0
//
// On failure the command prints {"error": "..."} and exits with status 1.
// Invalid flags exit with status 2.
package main
