// SPDX-License-Identifier: MIT

// Package dpp - log-determinant gradients.
//
// The differentiation rule is ∂ log det(M) / ∂M = M⁻ᵀ. For a principal
// minor M = L[S,S] the gradient lands on the rows/columns selected by S;
// for M = I+L it lands on all of L. Both routines add a scaled gradient to
// a caller-owned buffer so a minibatch loss can accumulate in place.

package dpp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// AccumulateLogWeight returns log det(L[S,S]) and adds
// scale · ∂ log det(L[S,S]) / ∂L into G. The empty set contributes 0.
//
// Errors:
//   - Principal errors, ErrGradShape, ErrDegenerateWeight.
//
// Complexity: O(|S|³).
func AccumulateLogWeight(L mat.Matrix, S []int, scale float64, G *mat.Dense) (float64, error) {
	if err := checkGrad(L, G); err != nil {
		return 0, dppErrorf(opLogWeight, err)
	}
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
	inv, err := inverse(sub)
	if err != nil {
		return 0, dppErrorf(opLogWeight, fmt.Errorf("subset %v: %w", S, ErrDegenerateWeight))
	}

	// G[S[a],S[b]] += scale · inv[b,a]
	k := len(S)
	var a, b int
	for a = 0; a < k; a++ {
		for b = 0; b < k; b++ {
			G.Set(S[a], S[b], G.At(S[a], S[b])+scale*inv.At(b, a))
		}
	}
	return v, nil
}

// AccumulateLogNormalizer returns log det(I+L) and adds
// scale · (I+L)⁻ᵀ into G.
//
// Errors:
//   - ErrGradShape, ErrDegenerateNormalizer.
//
// Complexity: O(dim³).
func AccumulateLogNormalizer(L mat.Matrix, scale float64, G *mat.Dense) (float64, error) {
	if err := checkGrad(L, G); err != nil {
		return 0, dppErrorf(opLogNormalizer, err)
	}
	n, _ := L.Dims()
	m := identityPlus(L, n)
	v, err := logDetPositive(m, ErrDegenerateNormalizer)
	if err != nil {
		return 0, dppErrorf(opLogNormalizer, err)
	}
	inv, err := inverse(m)
	if err != nil {
		return 0, dppErrorf(opLogNormalizer, ErrDegenerateNormalizer)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			G.Set(i, j, G.At(i, j)+scale*inv.At(j, i))
		}
	}
	return v, nil
}

// checkGrad validates L and that G has L's shape.
func checkGrad(L mat.Matrix, G *mat.Dense) error {
	n, err := dimOf(L)
	if err != nil {
		return err
	}
	if G == nil {
		return ErrGradShape
	}
	if r, c := G.Dims(); r != n || c != n {
		return ErrGradShape
	}
	return nil
}

// inverse computes m⁻¹. Ill-conditioning (mat.Condition) is tolerated as
// long as the matrix is not exactly singular.
func inverse(m *mat.Dense) (*mat.Dense, error) {
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, err
		}
	}
	return &inv, nil
}
