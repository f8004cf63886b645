// SPDX-License-Identifier: MIT

// Package dpp - principal minors.
//
// Purpose:
//   - Materialize L[S,S] with one ordered index list for both axes.
//   - Evaluate det(L[S,S]) and its logarithm with explicit degeneracy checks.

package dpp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// dimOf validates that L is a non-nil square matrix and returns its size.
func dimOf(L mat.Matrix) (int, error) {
	if L == nil {
		return 0, ErrNilKernel
	}
	r, c := L.Dims()
	if r != c {
		return 0, ErrNonSquare
	}
	return r, nil
}

// Principal returns a copy of the principal submatrix L[S,S].
//
// Implementation:
//   - Stage 1: validate L (non-nil, square) and every index of S.
//   - Stage 2: copy L[S[a], S[b]] into position (a, b), fixed a→b order.
//
// Behavior highlights:
//   - Rows and columns are selected with the same ordered list, so any
//     reordering of S permutes rows and columns together and leaves the
//     determinant unchanged.
//   - For S = ∅ the result is nil (gonum has no 0×0 Dense); Weight treats it as 1.
//
// Errors:
//   - ErrNilKernel, ErrNonSquare, ErrOutOfRange.
//
// Complexity:
//   - Time O(|S|²), Space O(|S|²).
func Principal(L mat.Matrix, S []int) (*mat.Dense, error) {
	n, err := dimOf(L)
	if err != nil {
		return nil, dppErrorf(opPrincipal, err)
	}
	for _, s := range S {
		if s < 0 || s >= n {
			return nil, dppErrorf(opPrincipal, fmt.Errorf("item %d, dim %d: %w", s, n, ErrOutOfRange))
		}
	}
	k := len(S)
	if k == 0 {
		return nil, nil
	}

	sub := mat.NewDense(k, k, nil)
	var a, b int
	for a = 0; a < k; a++ {
		for b = 0; b < k; b++ {
			sub.Set(a, b, L.At(S[a], S[b]))
		}
	}
	return sub, nil
}

// Weight returns det(L[S,S]), with Weight(L, ∅) = 1.
// The value may be zero or negative for kernels that are not P0-matrices;
// no degeneracy check is applied here.
//
// Complexity: O(|S|³).
func Weight(L mat.Matrix, S []int) (float64, error) {
	sub, err := Principal(L, S)
	if err != nil {
		return 0, dppErrorf(opWeight, err)
	}
	if sub == nil {
		return 1, nil
	}
	return mat.Det(sub), nil
}

// LogWeight returns log det(L[S,S]); LogWeight(L, ∅) = 0.
//
// Errors:
//   - Principal errors, ErrDegenerateWeight when det(L[S,S]) <= 0.
func LogWeight(L mat.Matrix, S []int) (float64, error) {
	sub, err := Principal(L, S)
	if err != nil {
		return 0, dppErrorf(opLogWeight, err)
	}
	if sub == nil {
		return 0, nil
	}
	v, err := logDetPositive(sub, ErrDegenerateWeight)
	if err != nil {
		return 0, dppErrorf(opLogWeight, fmt.Errorf("subset %v: %w", S, err))
	}
	return v, nil
}

// logDetPositive returns log det(m) when det(m) > 0, else degenerate.
func logDetPositive(m mat.Matrix, degenerate error) (float64, error) {
	logAbs, sign := mat.LogDet(m)
	if sign <= 0 || math.IsNaN(logAbs) || math.IsInf(logAbs, 0) {
		return 0, degenerate
	}
	return logAbs, nil
}
