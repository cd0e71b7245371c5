// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for RecommendRequestsTotal.
const (
	OutcomeOK             = "ok"
	OutcomeInvalidType    = "invalid_type"
	OutcomeNoMatch        = "no_match"
	OutcomeUnknownSegment = "unknown_segment"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeError          = "error"
)

var (
	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "irodori_recommend_requests_total",
			Help: "Total number of recommendation requests by segment and outcome",
		},
		[]string{"segment", "outcome"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "irodori_recommend_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"segment"},
	)

	SimilarMatches = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "irodori_similar_matches",
			Help:    "Number of similar garments found per recommendation",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	// Response Cache Metrics
	ResponseCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "irodori_response_cache_hits_total",
			Help: "Total number of recommendation response cache hits",
		},
	)

	ResponseCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "irodori_response_cache_misses_total",
			Help: "Total number of recommendation response cache misses",
		},
	)

	// Index Metrics
	IndexGarments = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "irodori_index_garments",
			Help: "Number of garments in the loaded index",
		},
		[]string{"segment"},
	)

	IndexOutfits = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "irodori_index_outfits",
			Help: "Number of outfits in the loaded index",
		},
		[]string{"segment"},
	)

	IndexLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "irodori_index_load_duration_seconds",
			Help:    "Time spent loading a segment index from its artifact",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"segment"},
	)

	IndexLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "irodori_index_load_errors_total",
			Help: "Total number of failed index loads",
		},
		[]string{"segment"},
	)
)

// RecordRecommendation records the outcome and latency of one request.
func RecordRecommendation(segment, outcome string, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(segment, outcome).Inc()
	RecommendDuration.WithLabelValues(segment).Observe(duration.Seconds())
}

// RecordSimilarMatches records how many similar garments a query produced.
func RecordSimilarMatches(n int) {
	SimilarMatches.Observe(float64(n))
}

// RecordCacheLookup records a response cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		ResponseCacheHits.Inc()
	} else {
		ResponseCacheMisses.Inc()
	}
}

// RecordIndexLoad records an index load. Sizes are only updated on success.
func RecordIndexLoad(segment string, garments, outfits int, duration time.Duration, err error) {
	IndexLoadDuration.WithLabelValues(segment).Observe(duration.Seconds())
	if err != nil {
		IndexLoadErrors.WithLabelValues(segment).Inc()
		return
	}
	IndexGarments.WithLabelValues(segment).Set(float64(garments))
	IndexOutfits.WithLabelValues(segment).Set(float64(outfits))
}

// WriteTextfile dumps the default registry in the node_exporter textfile
// format, for one-shot processes that never serve /metrics.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
