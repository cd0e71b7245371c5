// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

/*
Package metrics provides Prometheus instrumentation for the recommendation engine.

All collectors are registered on the default registry through promauto.

# Available Metrics

Recommendation Metrics:
  - irodori_recommend_requests_total: Requests by outcome (counter)
    Labels: segment, outcome
  - irodori_recommend_duration_seconds: Request latency (histogram)
    Labels: segment
  - irodori_similar_matches: Similar garments per query (histogram)

Cache Metrics:
  - irodori_response_cache_hits_total (counter)
  - irodori_response_cache_misses_total (counter)

Index Metrics:
  - irodori_index_garments: Garments per segment (gauge)
  - irodori_index_outfits: Outfits per segment (gauge)
  - irodori_index_load_duration_seconds: Artifact load time (histogram)
  - irodori_index_load_errors_total: Failed loads (counter)

# Export

Long-running hosts can serve prometheus.DefaultGatherer over HTTP. The
command-line tool writes a textfile instead:

	metrics.WriteTextfile("/var/lib/node_exporter/irodori.prom")
*/
package metrics
