// SPDX-License-Identifier: MIT

package dpp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// identityPlus returns I + L as a new matrix.
func identityPlus(L mat.Matrix, n int) *mat.Dense {
	m := mat.DenseCopyOf(L)
	for i := 0; i < n; i++ {
		m.Set(i, i, m.At(i, i)+1)
	}
	return m
}

// Normalizer returns Z = det(I+L), the total weight of the power set.
// No sign check is applied; use LogNormalizer where a log is taken.
//
// Errors: ErrNilKernel, ErrNonSquare.
//
// Complexity: O(dim³).
func Normalizer(L mat.Matrix) (float64, error) {
	n, err := dimOf(L)
	if err != nil {
		return 0, dppErrorf(opNormalizer, err)
	}
	return mat.Det(identityPlus(L, n)), nil
}

// LogNormalizer returns log det(I+L).
//
// Errors:
//   - ErrNilKernel, ErrNonSquare.
//   - ErrDegenerateNormalizer when det(I+L) <= 0 (fatal: not a probability law).
func LogNormalizer(L mat.Matrix) (float64, error) {
	n, err := dimOf(L)
	if err != nil {
		return 0, dppErrorf(opLogNormalizer, err)
	}
	v, err := logDetPositive(identityPlus(L, n), ErrDegenerateNormalizer)
	if err != nil {
		return 0, dppErrorf(opLogNormalizer, err)
	}
	return v, nil
}

// LogProb returns log P(S) = log det(L[S,S]) − log det(I+L).
func LogProb(L mat.Matrix, S []int) (float64, error) {
	lz, err := LogNormalizer(L)
	if err != nil {
		return 0, err
	}
	lw, err := LogWeight(L, S)
	if err != nil {
		return 0, err
	}
	return lw - lz, nil
}

// Prob returns P(S) = det(L[S,S]) / det(I+L). Unlike LogProb it accepts
// zero (and, for non-P0 kernels, negative) weights; Z must still be > 0.
func Prob(L mat.Matrix, S []int) (float64, error) {
	lz, err := LogNormalizer(L)
	if err != nil {
		return 0, err
	}
	w, err := Weight(L, S)
	if err != nil {
		return 0, err
	}
	return w / math.Exp(lz), nil
}
