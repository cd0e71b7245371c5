// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

// Package tfidftest fits small TF-IDF models for tests and fixtures.
package tfidftest

import (
	"fmt"
	"math"
	"sort"

	"github.com/hamadayuuki/irodori-api/internal/recommend/tfidf"
)

// Fit learns a vocabulary and smoothed IDF weights from docs and returns the
// resulting vectorizer. Columns are assigned in lexical term order.
//
//nolint:gocritic // cfg passed by value mirrors tfidf.NewVectorizer
func Fit(cfg tfidf.Config, docs []string) (*tfidf.Vectorizer, error) {
	probe, err := tfidf.NewVectorizer(cfg, map[string]int{"": 0}, nil)
	if err != nil {
		return nil, err
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range probe.Analyze(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, fmt.Errorf("fit: documents contain no terms")
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for col, term := range terms {
		vocab[term] = col
		idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return tfidf.NewVectorizer(cfg, vocab, idf)
}

// MustFit is Fit that panics on error.
//
//nolint:gocritic // cfg passed by value mirrors tfidf.NewVectorizer
func MustFit(cfg tfidf.Config, docs []string) *tfidf.Vectorizer {
	v, err := Fit(cfg, docs)
	if err != nil {
		panic(err)
	}
	return v
}

// Matrix transforms docs with v and stacks them into a matrix.
func Matrix(v *tfidf.Vectorizer, docs []string) (*tfidf.Matrix, error) {
	rows := make([]tfidf.SparseVector, len(docs))
	for i, doc := range docs {
		rows[i] = v.Transform(doc)
	}
	return tfidf.FromRows(v.Dim(), rows)
}
