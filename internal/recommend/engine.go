// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/hamadayuuki/irodori-api/internal/cache"
	"github.com/hamadayuuki/irodori-api/internal/logging"
	"github.com/hamadayuuki/irodori-api/internal/metrics"
	"github.com/hamadayuuki/irodori-api/internal/recommend/algorithms"
	"github.com/hamadayuuki/irodori-api/internal/recommend/index"
	"github.com/hamadayuuki/irodori-api/internal/recommend/labels"
	"github.com/hamadayuuki/irodori-api/internal/validation"
)

// unresolvedSegment labels metrics for requests that failed before a
// segment was resolved.
const unresolvedSegment = "unresolved"

// Engine serves outfit recommendations from the indexes of a Registry.
// It is safe for concurrent use.
type Engine struct {
	config   *Config
	registry *Registry
	logger   zerolog.Logger

	cache *cache.LRU[*Response]

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
}

// EngineStats reports request counters since the engine was created.
type EngineStats struct {
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	Errors      int64 `json:"errors"`
	CacheSize   int   `json:"cache_size"`
}

// query is a request after validation, defaults and type canonicalization.
type query struct {
	req      Request
	typ      labels.ClothingType
	segment  string
	index    *index.GarmentIndex
	minSim   float64
	cacheKey string
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, registry *Registry, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}

	e := &Engine{
		config:   cfg.Clone(),
		registry: registry,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[*Response](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// Recommend returns outfits and candidate lists for the garment described
// by req. Errors wrap ErrInvalidRequest, ErrInvalidType, ErrUnknownSegment
// or ErrNoMatch; anything else is an initialization failure.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	q, err := e.prepareQuery(ctx, req)
	if err != nil {
		return nil, e.fail(q, err, start)
	}

	logger := e.createRequestLogger(q)
	logger.Debug().Msg("processing recommendation request")

	if resp := e.tryGetCachedResponse(q, start, logger); resp != nil {
		metrics.RecordRecommendation(q.segment, metrics.OutcomeOK, time.Since(start))
		return resp, nil
	}

	similar, err := algorithms.FindSimilar(q.index, q.typ, q.req.Category, q.req.Text, algorithms.SearchOptions{
		TopK:          e.config.Search.TopK,
		MinSimilarity: q.minSim,
	})
	if err != nil {
		return nil, e.fail(q, fmt.Errorf("find similar: %w", err), start)
	}
	metrics.RecordSimilarMatches(len(similar))
	if len(similar) == 0 {
		return nil, e.fail(q, fmt.Errorf("%w for %s %q", ErrNoMatch, q.typ, strings.TrimSpace(q.req.Category+" "+q.req.Text)), start)
	}

	resp := &Response{
		Outfits:    algorithms.AssembleOutfits(q.index, similar, q.typ, q.req.NumOutfits),
		Candidates: algorithms.BuildCandidateLists(q.index, similar, q.typ, q.req.NumCandidates),
		Metadata: ResponseMetadata{
			RequestID:    q.req.RequestID,
			Segment:      q.segment,
			QueryType:    q.typ,
			ExactMatch:   similar[0].Score == algorithms.ExactMatchScore,
			SimilarCount: len(similar),
			LatencyMS:    time.Since(start).Milliseconds(),
			Timestamp:    time.Now(),
		},
	}
	e.cacheResponse(q, resp)

	metrics.RecordRecommendation(q.segment, metrics.OutcomeOK, time.Since(start))
	logger.Debug().
		Int("similar", len(similar)).
		Int("outfits", len(resp.Outfits)).
		Bool("exact_match", resp.Metadata.ExactMatch).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	if e.cache != nil {
		return resp.clone(), nil
	}
	return resp, nil
}

// prepareQuery validates req, applies defaults and resolves its type and
// segment. The returned query carries whatever was resolved even on error.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareQuery(ctx context.Context, req Request) (query, error) {
	q := query{req: req, segment: unresolvedSegment}

	if verr := validation.ValidateStruct(&req); verr != nil {
		return q, fmt.Errorf("%w: %w", ErrInvalidRequest, verr)
	}
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	q.req = e.prepareRequest(req)

	t, ok := labels.CanonType(req.Type)
	if !ok {
		return q, fmt.Errorf("%w: %q", ErrInvalidType, req.Type)
	}
	q.typ = t

	if err := e.registry.Init(ctx); err != nil {
		return q, fmt.Errorf("initialize registry: %w", err)
	}
	x, segment, err := e.registry.Resolve(req.Segment)
	if err != nil {
		return q, err
	}
	q.index = x
	q.segment = segment

	q.minSim = e.config.Search.MinSimilarity
	if req.MinSimilarity != nil {
		q.minSim = *req.MinSimilarity
	}
	q.cacheKey = e.cacheKey(q)
	return q, nil
}

// prepareRequest applies defaults and generates request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}

	if req.NumOutfits == 0 {
		req.NumOutfits = e.config.Limits.DefaultOutfits
	}
	if req.NumOutfits > e.config.Limits.MaxOutfits {
		req.NumOutfits = e.config.Limits.MaxOutfits
	}
	if req.NumCandidates == 0 {
		req.NumCandidates = e.config.Limits.DefaultCandidates
	}
	if req.NumCandidates > e.config.Limits.MaxCandidates {
		req.NumCandidates = e.config.Limits.MaxCandidates
	}
	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) createRequestLogger(q query) zerolog.Logger {
	return e.logger.With().
		Str("request_id", q.req.RequestID).
		Str("segment", q.segment).
		Str("type", q.typ.String()).
		Logger()
}

// fail counts and logs a failed request and returns err unchanged.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) fail(q query, err error, start time.Time) error {
	kind := ErrorKind(err)
	metrics.RecordRecommendation(q.segment, kind, time.Since(start))

	var event *zerolog.Event
	if IsClientError(err) {
		event = e.logger.Debug()
	} else {
		e.errorCount.Add(1)
		event = e.logger.Error()
	}
	event.Err(err).
		Str("request_id", q.req.RequestID).
		Str("segment", q.segment).
		Str("outcome", kind).
		Msg("recommendation failed")
	return err
}

// tryGetCachedResponse attempts to retrieve a cached response.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) tryGetCachedResponse(q query, start time.Time, logger zerolog.Logger) *Response {
	if e.cache == nil {
		return nil
	}

	cached, ok := e.cache.Get(q.cacheKey)
	metrics.RecordCacheLookup(ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}

	e.cacheHits.Add(1)
	resp := cached.clone()
	resp.Metadata.RequestID = q.req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	resp.Metadata.Timestamp = time.Now()
	logger.Debug().Msg("cache hit")
	return resp
}

// cacheResponse stores the response in cache if enabled.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) cacheResponse(q query, resp *Response) {
	if e.cache != nil {
		e.cache.Add(q.cacheKey, resp)
	}
}

// cacheKey identifies a query by everything that influences the result.
// Category and text are keyed in normalized form because that is the form
// the similarity stage sees.
//
//nolint:gocritic // hugeParam: q passed by value for immutability
func (e *Engine) cacheKey(q query) string {
	var b strings.Builder
	b.WriteString(q.segment)
	b.WriteByte(0)
	b.WriteString(q.typ.String())
	b.WriteByte(0)
	b.WriteString(string(labels.MakeIdentity(q.typ, q.req.Category, q.req.Text)))
	b.WriteByte(0)
	b.WriteString(labels.NormalizeText(q.req.Category + " " + q.req.Text))
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(q.req.NumOutfits))
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(q.req.NumCandidates))
	b.WriteByte(0)
	b.WriteString(strconv.FormatFloat(q.minSim, 'g', -1, 64))
	return b.String()
}

// Stats returns request counters.
func (e *Engine) Stats() EngineStats {
	s := EngineStats{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		Errors:      e.errorCount.Load(),
	}
	if e.cache != nil {
		s.CacheSize = e.cache.Len()
	}
	return s
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// Registry returns the registry the engine serves from.
func (e *Engine) Registry() *Registry {
	return e.registry
}
