// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package tfidf

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrInvalidVectorizer is returned when a vectorizer definition is inconsistent.
var ErrInvalidVectorizer = errors.New("invalid vectorizer")

// Analyzer selects how text is split into terms.
type Analyzer string

const (
	AnalyzerWord   Analyzer = "word"
	AnalyzerChar   Analyzer = "char"
	AnalyzerCharWB Analyzer = "char_wb"
)

// Norm selects the row normalization applied after weighting.
type Norm string

const (
	NormL2   Norm = "l2"
	NormL1   Norm = "l1"
	NormNone Norm = ""
)

// legacyTokenPattern is the usual exported default token pattern. Go's \b and
// \w are ASCII-only, so it is replaced with defaultTokenPattern.
const legacyTokenPattern = `(?u)\b\w\w+\b`

const defaultTokenPattern = `[\p{L}\p{N}_]{2,}`

// Config describes the analyzer of a fitted vectorizer.
type Config struct {
	Analyzer     Analyzer `json:"analyzer"`
	NGramMin     int      `json:"ngram_min"`
	NGramMax     int      `json:"ngram_max"`
	Lowercase    bool     `json:"lowercase"`
	TokenPattern string   `json:"token_pattern,omitempty"`
	SublinearTF  bool     `json:"sublinear_tf"`
	Norm         Norm     `json:"norm"`
}

// DefaultConfig returns a word unigram analyzer with L2 normalization.
func DefaultConfig() Config {
	return Config{
		Analyzer:  AnalyzerWord,
		NGramMin:  1,
		NGramMax:  1,
		Lowercase: true,
		Norm:      NormL2,
	}
}

// Validate checks the analyzer settings.
//
//nolint:gocritic // value receiver keeps Config immutable
func (c Config) Validate() error {
	switch c.Analyzer {
	case AnalyzerWord, AnalyzerChar, AnalyzerCharWB:
	default:
		return fmt.Errorf("%w: unknown analyzer %q", ErrInvalidVectorizer, c.Analyzer)
	}
	if c.NGramMin < 1 || c.NGramMax < c.NGramMin {
		return fmt.Errorf("%w: ngram range (%d, %d)", ErrInvalidVectorizer, c.NGramMin, c.NGramMax)
	}
	switch c.Norm {
	case NormL2, NormL1, NormNone:
	default:
		return fmt.Errorf("%w: unknown norm %q", ErrInvalidVectorizer, c.Norm)
	}
	return nil
}

// Vectorizer maps text onto the fitted vocabulary. It is immutable and safe
// for concurrent use.
type Vectorizer struct {
	cfg     Config
	vocab   map[string]int
	idf     []float64
	pattern *regexp.Regexp
}

// NewVectorizer reconstructs a fitted vectorizer. idf may be nil, in which
// case raw term frequencies are used; otherwise it must have one weight per
// vocabulary column.
//
//nolint:gocritic // cfg passed by value is copied into the vectorizer
func NewVectorizer(cfg Config, vocabulary map[string]int, idf []float64) (*Vectorizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrInvalidVectorizer)
	}
	if idf != nil && len(idf) != len(vocabulary) {
		return nil, fmt.Errorf("%w: %d idf weights for %d terms", ErrInvalidVectorizer, len(idf), len(vocabulary))
	}

	seen := make([]bool, len(vocabulary))
	vocab := make(map[string]int, len(vocabulary))
	for term, col := range vocabulary {
		if col < 0 || col >= len(vocabulary) {
			return nil, fmt.Errorf("%w: term %q has column %d out of range", ErrInvalidVectorizer, term, col)
		}
		if seen[col] {
			return nil, fmt.Errorf("%w: column %d assigned twice", ErrInvalidVectorizer, col)
		}
		seen[col] = true
		vocab[term] = col
	}

	v := &Vectorizer{cfg: cfg, vocab: vocab}
	if idf != nil {
		v.idf = make([]float64, len(idf))
		copy(v.idf, idf)
	}

	if cfg.Analyzer == AnalyzerWord {
		pattern := cfg.TokenPattern
		if pattern == "" || pattern == legacyTokenPattern {
			pattern = defaultTokenPattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: token pattern: %w", ErrInvalidVectorizer, err)
		}
		if re.NumSubexp() > 1 {
			return nil, fmt.Errorf("%w: token pattern has more than one capture group", ErrInvalidVectorizer)
		}
		v.pattern = re
	}

	return v, nil
}

// Config returns the analyzer settings.
func (v *Vectorizer) Config() Config {
	return v.cfg
}

// Dim returns the number of vocabulary columns.
func (v *Vectorizer) Dim() int {
	return len(v.vocab)
}

// Vocabulary returns a copy of the term to column mapping.
func (v *Vectorizer) Vocabulary() map[string]int {
	out := make(map[string]int, len(v.vocab))
	for term, col := range v.vocab {
		out[term] = col
	}
	return out
}

// IDF returns a copy of the IDF weights, or nil when none are used.
func (v *Vectorizer) IDF() []float64 {
	if v.idf == nil {
		return nil
	}
	out := make([]float64, len(v.idf))
	copy(out, v.idf)
	return out
}

// Transform vectorizes text. Terms outside the vocabulary are ignored, so
// unrelated text produces the zero vector.
func (v *Vectorizer) Transform(text string) SparseVector {
	counts := make(map[int]float64)
	for _, term := range v.Analyze(text) {
		if col, ok := v.vocab[term]; ok {
			counts[col]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	vec := SparseVector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for col := range counts {
		vec.Indices = append(vec.Indices, col)
	}
	sort.Ints(vec.Indices)

	for _, col := range vec.Indices {
		tf := counts[col]
		if v.cfg.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		if v.idf != nil {
			tf *= v.idf[col]
		}
		vec.Values = append(vec.Values, tf)
	}

	vec.normalize(v.cfg.Norm)
	return vec
}

// Analyze returns the terms of text in emission order, before vocabulary
// filtering.
func (v *Vectorizer) Analyze(text string) []string {
	if v.cfg.Lowercase {
		text = strings.ToLower(text)
	}
	switch v.cfg.Analyzer {
	case AnalyzerChar:
		return charNGrams(text, v.cfg.NGramMin, v.cfg.NGramMax)
	case AnalyzerCharWB:
		return charWBNGrams(text, v.cfg.NGramMin, v.cfg.NGramMax)
	default:
		return wordNGrams(v.tokenize(text), v.cfg.NGramMin, v.cfg.NGramMax)
	}
}

func (v *Vectorizer) tokenize(text string) []string {
	if v.pattern.NumSubexp() == 1 {
		matches := v.pattern.FindAllStringSubmatch(text, -1)
		tokens := make([]string, 0, len(matches))
		for _, m := range matches {
			tokens = append(tokens, m[1])
		}
		return tokens
	}
	return v.pattern.FindAllString(text, -1)
}
