// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/hamadayuuki/irodori-api/internal/recommend/index"
)

const (
	artifactSuffix   = "_model.json"
	gzipSuffix       = ".gz"
	checksumSuffix   = ".sha256"
	maxArtifactBytes = 1 << 30
)

var (
	// ErrChecksumMismatch is returned when an artifact does not match its sidecar digest.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrChecksumMissing is returned when a checksum is required but no sidecar exists.
	ErrChecksumMissing = errors.New("checksum missing")
)

// Option configures a Store.
type Option func(*Store)

// RequireChecksum makes the sidecar digest mandatory.
func RequireChecksum() Option {
	return func(s *Store) { s.requireChecksum = true }
}

// WithLogger sets the logger used for load diagnostics.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger.With().Str("component", "model_store").Logger() }
}

// Store reads and writes segment artifacts in one directory.
type Store struct {
	baseDir         string
	requireChecksum bool
	logger          zerolog.Logger
}

// NewStore creates a store rooted at baseDir. The directory is not created
// until the first Save.
func NewStore(baseDir string, opts ...Option) *Store {
	s := &Store{
		baseDir: baseDir,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.baseDir }

// artifactPath returns the existing artifact file for segment, preferring
// the compressed form.
func (s *Store) artifactPath(segment string) (string, error) {
	base := filepath.Join(s.baseDir, segment+artifactSuffix)
	for _, p := range []string{base + gzipSuffix, base} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat artifact: %w", err)
		}
	}
	return "", fmt.Errorf("artifact for segment %q in %s: %w", segment, s.baseDir, fs.ErrNotExist)
}

// Segments lists the segments with an artifact in the store directory, sorted.
func (s *Store) Segments() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read model directory: %w", err)
	}

	seen := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), gzipSuffix)
		if !strings.HasSuffix(name, artifactSuffix) {
			continue
		}
		if segment := strings.TrimSuffix(name, artifactSuffix); segment != "" {
			seen[segment] = struct{}{}
		}
	}

	segments := make([]string, 0, len(seen))
	for segment := range seen {
		segments = append(segments, segment)
	}
	sort.Strings(segments)
	return segments, nil
}

// ReadArtifact reads, verifies and decodes the artifact of segment.
// A missing artifact yields an error wrapping fs.ErrNotExist.
func (s *Store) ReadArtifact(ctx context.Context, segment string) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.artifactPath(segment)
	if err != nil {
		return nil, err
	}

	raw, err := readArtifactFile(path)
	if err != nil {
		return nil, err
	}

	if err := s.verifyChecksum(path, raw); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrInvalidArtifact, filepath.Base(path), err)
	}
	return &a, nil
}

// Load reads the artifact of segment and builds its garment index.
func (s *Store) Load(ctx context.Context, segment string) (*index.GarmentIndex, error) {
	start := time.Now()

	a, err := s.ReadArtifact(ctx, segment)
	if err != nil {
		return nil, err
	}
	if a.Metadata.Segment != "" && a.Metadata.Segment != segment {
		s.logger.Warn().
			Str("segment", segment).
			Str("artifact_segment", a.Metadata.Segment).
			Msg("artifact segment does not match requested segment")
	}

	x, report, err := BuildIndex(segment, a)
	if err != nil {
		return nil, fmt.Errorf("build index for %s: %w", segment, err)
	}

	stats := x.Stats()
	s.logger.Info().
		Str("segment", segment).
		Int("version", a.Metadata.Version).
		Int("garments", stats.Garments).
		Int("outfits", stats.Outfits).
		Int("type_indexes", stats.TypeIndexes).
		Int("skipped", stats.Skipped+report.SkippedItems+report.SkippedRelations).
		Int("dangling_refs", stats.DanglingRefs).
		Dur("duration", time.Since(start)).
		Msg("loaded model artifact")

	return x, nil
}

// Save writes a gzip compressed artifact for segment together with its
// checksum sidecar. Files are written to a temporary name and renamed.
func (s *Store) Save(ctx context.Context, segment string, a *Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if segment == "" || strings.ContainsAny(segment, `/\`) {
		return fmt.Errorf("%w: segment name %q", ErrInvalidArtifact, segment)
	}

	if err := os.MkdirAll(s.baseDir, 0o750); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	digest := sha256.Sum256(raw)

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return fmt.Errorf("compress artifact: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	path := filepath.Join(s.baseDir, segment+artifactSuffix+gzipSuffix)
	if err := writeFileAtomic(path+checksumSuffix, []byte(hex.EncodeToString(digest[:])+"\n")); err != nil {
		return fmt.Errorf("write checksum: %w", err)
	}
	if err := writeFileAtomic(path, compressed.Bytes()); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	return nil
}

func (s *Store) verifyChecksum(path string, raw []byte) error {
	want, err := os.ReadFile(path + checksumSuffix) //nolint:gosec // path is derived from the configured model directory
	if errors.Is(err, fs.ErrNotExist) {
		if s.requireChecksum {
			return fmt.Errorf("%w: %s", ErrChecksumMissing, filepath.Base(path))
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read checksum: %w", err)
	}

	expected := strings.ToLower(strings.TrimSpace(string(want)))
	if i := strings.IndexAny(expected, " \t"); i >= 0 {
		expected = expected[:i]
	}
	digest := sha256.Sum256(raw)
	if got := hex.EncodeToString(digest[:]); got != expected {
		return fmt.Errorf("%w: %s: expected %s, got %s", ErrChecksumMismatch, filepath.Base(path), expected, got)
	}
	return nil
}

func readArtifactFile(path string) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // path is derived from the configured model directory
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	var r io.Reader = f
	if strings.HasSuffix(path, gzipSuffix) {
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompress artifact: %w", err)
		}
		defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable
		r = gzr
	}

	raw, err := io.ReadAll(io.LimitReader(r, maxArtifactBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	if len(raw) > maxArtifactBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrInvalidArtifact, filepath.Base(path), maxArtifactBytes)
	}
	return raw, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }() //nolint:errcheck // removal fails once renamed

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close() //nolint:errcheck // write error takes precedence
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
