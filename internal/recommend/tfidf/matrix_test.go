// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package tfidf

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestNewMatrix_Validation(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		indptr     []int
		indices    []int
		data       []float64
	}{
		{"negative shape", -1, 2, []int{0}, nil, nil},
		{"short indptr", 2, 2, []int{0, 1}, []int{0}, []float64{1}},
		{"indptr not starting at zero", 1, 2, []int{1, 1}, nil, nil},
		{"indptr end mismatch", 1, 2, []int{0, 2}, []int{0}, []float64{1}},
		{"indices data mismatch", 1, 2, []int{0, 1}, []int{0}, []float64{1, 2}},
		{"decreasing indptr", 2, 2, []int{0, 2, 1}, []int{0}, []float64{1}},
		{"column out of range", 1, 2, []int{0, 1}, []int{2}, []float64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMatrix(tt.rows, tt.cols, tt.indptr, tt.indices, tt.data)
			if !errors.Is(err, ErrInvalidMatrix) {
				t.Errorf("NewMatrix() error = %v, want ErrInvalidMatrix", err)
			}
		})
	}
}

func TestMatrix_DotRows(t *testing.T) {
	// [1 0 2]
	// [0 0 0]
	// [0 3 1]
	m, err := NewMatrix(3, 3, []int{0, 2, 2, 4}, []int{0, 2, 1, 2}, []float64{1, 2, 3, 1})
	if err != nil {
		t.Fatalf("NewMatrix() error = %v", err)
	}
	if m.Rows() != 3 || m.Cols() != 3 || m.NNZ() != 4 {
		t.Fatalf("shape = (%d, %d, nnz %d)", m.Rows(), m.Cols(), m.NNZ())
	}

	q := SparseVector{Indices: []int{1, 2, 7}, Values: []float64{1, 2, 100}}
	got := m.DotRows(q)
	want := []float64{4, 0, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DotRows() = %v, want %v", got, want)
	}

	for r := 0; r < m.Rows(); r++ {
		if d := m.Row(r).Dot(q); d != want[r] {
			t.Errorf("Row(%d).Dot(q) = %v, want %v", r, d, want[r])
		}
	}

	if zero := m.DotRows(SparseVector{}); !reflect.DeepEqual(zero, []float64{0, 0, 0}) {
		t.Errorf("DotRows(zero) = %v", zero)
	}
}

func TestFromRows(t *testing.T) {
	rows := []SparseVector{
		{Indices: []int{1}, Values: []float64{0.5}},
		{},
		{Indices: []int{0, 2}, Values: []float64{1, 2}},
	}
	m, err := FromRows(3, rows)
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}

	indptr, indices, data := m.CSR()
	if !reflect.DeepEqual(indptr, []int{0, 1, 1, 3}) {
		t.Errorf("indptr = %v", indptr)
	}
	if !reflect.DeepEqual(indices, []int{1, 0, 2}) {
		t.Errorf("indices = %v", indices)
	}
	if !reflect.DeepEqual(data, []float64{0.5, 1, 2}) {
		t.Errorf("data = %v", data)
	}

	if _, err := FromRows(3, []SparseVector{{Indices: []int{0}}}); !errors.Is(err, ErrInvalidMatrix) {
		t.Errorf("FromRows() with ragged row error = %v", err)
	}
	if _, err := FromRows(2, []SparseVector{{Indices: []int{5}, Values: []float64{1}}}); !errors.Is(err, ErrInvalidMatrix) {
		t.Errorf("FromRows() with out of range column error = %v", err)
	}
}

func TestMatrix_SelfSimilarity(t *testing.T) {
	vocab := map[string]int{"black": 0, "wide": 1, "pants": 2, "white": 3, "shirt": 4}
	idf := []float64{1.2, 1.5, 1.1, 1.3, 1.4}
	v, err := NewVectorizer(DefaultConfig(), vocab, idf)
	if err != nil {
		t.Fatalf("NewVectorizer() error = %v", err)
	}

	docs := []string{"black wide pants", "white shirt", "black shirt"}
	rows := make([]SparseVector, len(docs))
	for i, d := range docs {
		rows[i] = v.Transform(d)
	}
	m, err := FromRows(v.Dim(), rows)
	if err != nil {
		t.Fatalf("FromRows() error = %v", err)
	}

	for i, d := range docs {
		scores := m.DotRows(v.Transform(d))
		if math.Abs(scores[i]-1) > epsilon {
			t.Errorf("self score of %q = %v, want 1", d, scores[i])
		}
		for j, s := range scores {
			if s > scores[i]+epsilon {
				t.Errorf("row %d outscored the identical row %d for %q", j, i, d)
			}
		}
	}

	// Identical input yields identical output.
	a, b := m.DotRows(v.Transform("black pants")), m.DotRows(v.Transform("black pants"))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("DotRows() not deterministic: %v vs %v", a, b)
	}
}
