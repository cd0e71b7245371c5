// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package tfidf

import (
	"errors"
	"fmt"
)

// ErrInvalidMatrix is returned when CSR components do not describe a matrix.
var ErrInvalidMatrix = errors.New("invalid matrix")

// Matrix is an immutable sparse matrix in compressed sparse row form.
type Matrix struct {
	rows    int
	cols    int
	indptr  []int
	indices []int
	data    []float64
}

// NewMatrix validates and wraps CSR components. The slices are copied.
func NewMatrix(rows, cols int, indptr, indices []int, data []float64) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative shape (%d, %d)", ErrInvalidMatrix, rows, cols)
	}
	if len(indptr) != rows+1 {
		return nil, fmt.Errorf("%w: indptr has %d entries for %d rows", ErrInvalidMatrix, len(indptr), rows)
	}
	if indptr[0] != 0 {
		return nil, fmt.Errorf("%w: indptr must start at 0", ErrInvalidMatrix)
	}
	if len(indices) != len(data) {
		return nil, fmt.Errorf("%w: %d indices for %d values", ErrInvalidMatrix, len(indices), len(data))
	}
	if indptr[rows] != len(indices) {
		return nil, fmt.Errorf("%w: indptr ends at %d, have %d values", ErrInvalidMatrix, indptr[rows], len(indices))
	}
	for r := 0; r < rows; r++ {
		if indptr[r+1] < indptr[r] {
			return nil, fmt.Errorf("%w: indptr decreases at row %d", ErrInvalidMatrix, r)
		}
	}
	for i, c := range indices {
		if c < 0 || c >= cols {
			return nil, fmt.Errorf("%w: column %d at position %d out of range", ErrInvalidMatrix, c, i)
		}
	}

	m := &Matrix{
		rows:    rows,
		cols:    cols,
		indptr:  append([]int(nil), indptr...),
		indices: append([]int(nil), indices...),
		data:    append([]float64(nil), data...),
	}
	return m, nil
}

// FromRows stacks sparse row vectors into a matrix with the given column count.
func FromRows(cols int, rows []SparseVector) (*Matrix, error) {
	indptr := make([]int, 1, len(rows)+1)
	var indices []int
	var data []float64
	for _, row := range rows {
		if len(row.Indices) != len(row.Values) {
			return nil, fmt.Errorf("%w: row has %d indices and %d values", ErrInvalidMatrix, len(row.Indices), len(row.Values))
		}
		indices = append(indices, row.Indices...)
		data = append(data, row.Values...)
		indptr = append(indptr, len(indices))
	}
	return NewMatrix(len(rows), cols, indptr, indices, data)
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// NNZ returns the number of stored entries.
func (m *Matrix) NNZ() int { return len(m.data) }

// Row returns row i as a sparse vector sharing the matrix storage.
// Callers must not modify it.
func (m *Matrix) Row(i int) SparseVector {
	lo, hi := m.indptr[i], m.indptr[i+1]
	return SparseVector{Indices: m.indices[lo:hi:hi], Values: m.data[lo:hi:hi]}
}

// CSR returns copies of the raw components.
func (m *Matrix) CSR() (indptr, indices []int, data []float64) {
	return append([]int(nil), m.indptr...), append([]int(nil), m.indices...), append([]float64(nil), m.data...)
}

// DotRows returns the inner product of q with every row. Entries of q at or
// beyond Cols are ignored.
//
//nolint:gocritic // q passed by value is read-only
func (m *Matrix) DotRows(q SparseVector) []float64 {
	scores := make([]float64, m.rows)
	if len(q.Indices) == 0 {
		return scores
	}

	dense := make([]float64, m.cols)
	for k, c := range q.Indices {
		if c >= 0 && c < m.cols {
			dense[c] = q.Values[k]
		}
	}

	for r := 0; r < m.rows; r++ {
		var sum float64
		for p := m.indptr[r]; p < m.indptr[r+1]; p++ {
			sum += m.data[p] * dense[m.indices[p]]
		}
		scores[r] = sum
	}
	return scores
}
