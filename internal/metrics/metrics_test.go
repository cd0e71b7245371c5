// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getHistogram extracts the sample count and sum of a Prometheus histogram.
func getHistogram(t *testing.T, m prometheus.Metric) (count uint64, sum float64) {
	t.Helper()
	var pb io_prometheus_client.Metric
	if err := m.Write(&pb); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return pb.GetHistogram().GetSampleCount(), pb.GetHistogram().GetSampleSum()
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		outcome string
	}{
		{name: "success", segment: "test-rec", outcome: OutcomeOK},
		{name: "invalid type", segment: "test-rec", outcome: OutcomeInvalidType},
		{name: "no match", segment: "test-rec", outcome: OutcomeNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := RecommendRequestsTotal.WithLabelValues(tt.segment, tt.outcome)
			before := testutil.ToFloat64(counter)

			RecordRecommendation(tt.segment, tt.outcome, 3*time.Millisecond)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("counter delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(ResponseCacheHits)
	misses := testutil.ToFloat64(ResponseCacheMisses)

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	if got := testutil.ToFloat64(ResponseCacheHits) - hits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(ResponseCacheMisses) - misses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordIndexLoad(t *testing.T) {
	t.Run("success sets gauges", func(t *testing.T) {
		RecordIndexLoad("test-load", 120, 40, 10*time.Millisecond, nil)

		if got := testutil.ToFloat64(IndexGarments.WithLabelValues("test-load")); got != 120 {
			t.Errorf("garments = %v, want 120", got)
		}
		if got := testutil.ToFloat64(IndexOutfits.WithLabelValues("test-load")); got != 40 {
			t.Errorf("outfits = %v, want 40", got)
		}
	})

	t.Run("failure keeps gauges", func(t *testing.T) {
		errs := IndexLoadErrors.WithLabelValues("test-load")
		before := testutil.ToFloat64(errs)

		RecordIndexLoad("test-load", 0, 0, time.Millisecond, errors.New("corrupt artifact"))

		if got := testutil.ToFloat64(errs) - before; got != 1 {
			t.Errorf("errors delta = %v, want 1", got)
		}
		if got := testutil.ToFloat64(IndexGarments.WithLabelValues("test-load")); got != 120 {
			t.Errorf("garments = %v, want 120 to survive a failed reload", got)
		}
	})
}

func TestRecordRecommendation_Duration(t *testing.T) {
	observer, ok := RecommendDuration.WithLabelValues("test-duration").(prometheus.Metric)
	if !ok {
		t.Fatal("duration observer is not a metric")
	}
	count, sum := getHistogram(t, observer)

	RecordRecommendation("test-duration", OutcomeOK, 250*time.Millisecond)

	gotCount, gotSum := getHistogram(t, observer)
	if gotCount-count != 1 {
		t.Errorf("sample count delta = %d, want 1", gotCount-count)
	}
	if d := gotSum - sum; d < 0.249 || d > 0.251 {
		t.Errorf("sample sum delta = %v, want 0.25", d)
	}
}

func TestRecordSimilarMatches(t *testing.T) {
	count, sum := getHistogram(t, SimilarMatches)

	RecordSimilarMatches(0)
	RecordSimilarMatches(12)

	gotCount, gotSum := getHistogram(t, SimilarMatches)
	if gotCount-count != 2 || gotSum-sum != 12 {
		t.Errorf("histogram delta = (%d, %v), want (2, 12)", gotCount-count, gotSum-sum)
	}
	if n := testutil.CollectAndCount(SimilarMatches); n != 1 {
		t.Errorf("CollectAndCount = %d, want 1", n)
	}
}

func TestWriteTextfile(t *testing.T) {
	RecordRecommendation("test-textfile", OutcomeOK, time.Millisecond)

	path := filepath.Join(t.TempDir(), "irodori.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `irodori_recommend_requests_total{outcome="ok",segment="test-textfile"}`) {
		t.Errorf("textfile missing request counter:\n%s", data)
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "irodori.prom"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestMetricGathering(t *testing.T) {
	RecordRecommendation("test-lint", OutcomeOK, time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint: %v", err)
	}
	for _, p := range problems {
		if strings.HasPrefix(p.Metric, "irodori_") {
			t.Errorf("lint problem in %s: %s", p.Metric, p.Text)
		}
	}
}
