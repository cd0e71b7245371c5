// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package recommend

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/hamadayuuki/irodori-api/internal/metrics"
	"github.com/hamadayuuki/irodori-api/internal/recommend/index"
	"github.com/hamadayuuki/irodori-api/internal/recommend/labels"
)

// Loader loads the garment index of one segment. storage.Store implements it.
// A segment without an artifact must return an error wrapping fs.ErrNotExist.
type Loader interface {
	Load(ctx context.Context, segment string) (*index.GarmentIndex, error)
}

// SegmentPolicy decides which index serves a requested segment.
type SegmentPolicy struct {
	// Default serves empty segments and segments that are neither
	// configured nor aliased. Empty disables the fallback.
	Default string

	// Aliases maps request segments onto configured ones.
	Aliases map[string]string
}

// RegistryConfig lists the segments to load and the resolution policy.
type RegistryConfig struct {
	Segments []string
	Policy   SegmentPolicy
}

// Registry maps segments to loaded garment indexes. It is populated once by
// Init and read-only afterwards.
type Registry struct {
	loader   Loader
	segments []string
	policy   SegmentPolicy
	logger   zerolog.Logger

	mu      sync.Mutex
	ready   atomic.Bool
	indexes map[string]*index.GarmentIndex
}

// NewRegistry creates a registry that loads cfg.Segments through loader on Init.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRegistry(loader Loader, cfg RegistryConfig, logger zerolog.Logger) *Registry {
	segments := make([]string, 0, len(cfg.Segments))
	seen := make(map[string]struct{}, len(cfg.Segments))
	for _, s := range cfg.Segments {
		key := segmentKey(s)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		segments = append(segments, key)
	}

	return &Registry{
		loader:   loader,
		segments: segments,
		policy:   normalizePolicy(cfg.Policy),
		logger:   logger.With().Str("component", "registry").Logger(),
	}
}

// NewStaticRegistry freezes already built indexes, keyed by their segment.
func NewStaticRegistry(policy SegmentPolicy, indexes ...*index.GarmentIndex) *Registry {
	r := &Registry{
		policy:  normalizePolicy(policy),
		logger:  zerolog.Nop(),
		indexes: make(map[string]*index.GarmentIndex, len(indexes)),
	}
	for _, x := range indexes {
		key := segmentKey(x.Segment())
		r.segments = append(r.segments, key)
		r.indexes[key] = x
	}
	r.ready.Store(true)
	return r
}

func normalizePolicy(p SegmentPolicy) SegmentPolicy {
	out := SegmentPolicy{
		Default: segmentKey(p.Default),
		Aliases: make(map[string]string, len(p.Aliases)),
	}
	for alias, target := range p.Aliases {
		out.Aliases[segmentKey(alias)] = segmentKey(target)
	}
	return out
}

func segmentKey(s string) string {
	return labels.NormalizeKey(s)
}

// Init loads every configured segment. Once a load succeeds the registry
// is frozen and later calls return nil without loading again. A failed load
// leaves the registry empty and the next call retries. A missing artifact
// is logged and the segment left unavailable; any other load failure,
// including a cancelled ctx, fails Init.
func (r *Registry) Init(ctx context.Context) error {
	if r.ready.Load() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ready.Load() {
		return nil
	}

	indexes, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	r.indexes = indexes
	r.ready.Store(true)
	return nil
}

func (r *Registry) loadAll(ctx context.Context) (map[string]*index.GarmentIndex, error) {
	indexes := make(map[string]*index.GarmentIndex, len(r.segments))
	for _, segment := range r.segments {
		start := time.Now()
		x, err := r.loader.Load(ctx, segment)
		if err != nil {
			metrics.RecordIndexLoad(segment, 0, 0, time.Since(start), err)
			if errors.Is(err, fs.ErrNotExist) {
				r.logger.Warn().Err(err).Str("segment", segment).Msg("no model artifact for segment, skipping")
				continue
			}
			return nil, fmt.Errorf("load segment %s: %w", segment, err)
		}

		stats := x.Stats()
		metrics.RecordIndexLoad(segment, stats.Garments, stats.Outfits, time.Since(start), nil)
		indexes[segment] = x
	}

	if len(indexes) == 0 {
		r.logger.Error().Strs("segments", r.segments).Msg("no segment index loaded")
	}
	return indexes, nil
}

// Resolve returns the index serving segment together with the resolved
// segment name. Resolution order: loaded segment, alias, default; a
// configured segment whose artifact is missing does not fall back.
func (r *Registry) Resolve(segment string) (*index.GarmentIndex, string, error) {
	if !r.ready.Load() {
		return nil, "", fmt.Errorf("%w: registry not initialized", ErrUnknownSegment)
	}

	key := segmentKey(segment)
	resolved := key
	switch {
	case key != "" && r.configured(key):
	case r.policy.Aliases[key] != "":
		resolved = r.policy.Aliases[key]
	default:
		resolved = r.policy.Default
	}

	if x, ok := r.indexes[resolved]; ok {
		return x, resolved, nil
	}
	if resolved == "" {
		return nil, "", fmt.Errorf("%w for segment %q", ErrUnknownSegment, segment)
	}
	return nil, resolved, fmt.Errorf("%w for segment %q", ErrUnknownSegment, resolved)
}

func (r *Registry) configured(key string) bool {
	for _, s := range r.segments {
		if s == key {
			return true
		}
	}
	return false
}

// Segments returns the loaded segments in sorted order.
func (r *Registry) Segments() []string {
	if !r.ready.Load() {
		return nil
	}
	out := make([]string, 0, len(r.indexes))
	for s := range r.indexes {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
