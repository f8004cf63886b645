// SPDX-License-Identifier: MIT

package dpp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MaxEnumerableDim bounds PowerSetMass: 2^20 subsets.
const MaxEnumerableDim = 20

// Report returns the model probabilities that involve the pivot item:
//
//	p[pivot] = L[pivot,pivot] / Z
//	p[i]     = det(L[{pivot,i},{pivot,i}]) / Z   for i != pivot
//
// These are the probabilities of the exact subsets {pivot} and {pivot,i}.
//
// Errors:
//   - ErrNilKernel, ErrNonSquare, ErrOutOfRange (pivot), ErrDegenerateNormalizer.
//
// Complexity: O(dim³) for Z, O(dim) for the vector.
func Report(L mat.Matrix, pivot int) ([]float64, error) {
	n, err := dimOf(L)
	if err != nil {
		return nil, dppErrorf(opReport, err)
	}
	if pivot < 0 || pivot >= n {
		return nil, dppErrorf(opReport, fmt.Errorf("pivot %d, dim %d: %w", pivot, n, ErrOutOfRange))
	}
	z, err := Normalizer(L)
	if err != nil {
		return nil, dppErrorf(opReport, err)
	}
	if z <= 0 {
		return nil, dppErrorf(opReport, ErrDegenerateNormalizer)
	}

	p := make([]float64, n)
	p[pivot] = L.At(pivot, pivot) / z
	pair := make([]int, 2)
	pair[0] = pivot
	for i := 0; i < n; i++ {
		if i == pivot {
			continue
		}
		pair[1] = i
		w, err := Weight(L, pair)
		if err != nil {
			return nil, dppErrorf(opReport, err)
		}
		p[i] = w / z
	}
	return p, nil
}

// PowerSetMass returns Σ_S det(L[S,S]) / det(I+L) over all 2^dim subsets.
// For any L with Z > 0 the result is 1 up to rounding; it exists to check
// small kernels end to end.
//
// Errors:
//   - ErrNilKernel, ErrNonSquare, ErrTooLarge (dim > MaxEnumerableDim),
//     ErrDegenerateNormalizer.
//
// Complexity: O(2^dim · dim³).
func PowerSetMass(L mat.Matrix) (float64, error) {
	n, err := dimOf(L)
	if err != nil {
		return 0, dppErrorf(opPowerSet, err)
	}
	if n > MaxEnumerableDim {
		return 0, dppErrorf(opPowerSet, fmt.Errorf("dim %d > %d: %w", n, MaxEnumerableDim, ErrTooLarge))
	}
	z, err := Normalizer(L)
	if err != nil {
		return 0, dppErrorf(opPowerSet, err)
	}
	if z <= 0 {
		return 0, dppErrorf(opPowerSet, ErrDegenerateNormalizer)
	}

	var total float64
	S := make([]int, 0, n)
	for mask := 0; mask < 1<<uint(n); mask++ {
		S = S[:0]
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				S = append(S, i)
			}
		}
		w, err := Weight(L, S)
		if err != nil {
			return 0, dppErrorf(opPowerSet, err)
		}
		total += w
	}
	return total / z, nil
}
