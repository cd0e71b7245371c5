// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package tfidf

import "math"

// SparseVector is a vector stored as parallel column/value slices.
// Indices are strictly increasing.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// NNZ returns the number of stored entries.
//
//nolint:gocritic // value receiver keeps the vector read-only
func (v SparseVector) NNZ() int {
	return len(v.Indices)
}

// IsZero reports whether the vector has no non-zero entries.
//
//nolint:gocritic // value receiver keeps the vector read-only
func (v SparseVector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Dot returns the inner product of two sparse vectors.
//
//nolint:gocritic // value receiver keeps the vector read-only
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm2 returns the Euclidean length of the vector.
//
//nolint:gocritic // value receiver keeps the vector read-only
func (v SparseVector) Norm2() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func (v *SparseVector) normalize(norm Norm) {
	var total float64
	switch norm {
	case NormL2:
		total = v.Norm2()
	case NormL1:
		for _, x := range v.Values {
			total += math.Abs(x)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for i := range v.Values {
		v.Values[i] /= total
	}
}
