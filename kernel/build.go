// SPDX-License-Identifier: MIT

package kernel

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Build derives the Dim×Dim kernel matrix from p.
//
// Implementation:
//   - Stage 1: Validate p (shape and pairing errors surface before any product).
//   - Stage 2: L = 0. If rankV>0: with hidden layers, h = MLP(DummyInput),
//     L += V·diag(exp(h))·Vᵀ; otherwise L += V·Vᵀ.
//   - Stage 3: if rankB>0: A = B·Cᵀ, L += A − Aᵀ.
//   - Stage 4: reject NaN/Inf.
//
// Behavior highlights:
//   - Pure: p is never mutated and the result is freshly allocated.
//   - rankB == 0 ⇒ L is symmetric; rankV == 0 ⇒ diag(L) is exactly zero.
//   - Positive semi-definiteness holds only for the symmetric part.
//
// Errors:
//   - Validation sentinels (ErrFactorPair, ErrFactorShape, ...), ErrNonFinite.
//
// Complexity:
//   - Time O(Dim²·(rankV+rankB)), Space O(Dim²).
func Build(p *Parameters) (*mat.Dense, error) {
	if err := p.Validate(); err != nil {
		return nil, kernelErrorf(opBuild, err)
	}

	L := mat.NewDense(p.Dim, p.Dim, nil)
	if rv := p.RankV(); rv > 0 {
		if len(p.Hidden) > 0 {
			acts := forwardHidden(p.Hidden)
			s := columnScales(acts[len(acts)-1], rv)
			L.Mul(scaleColumns(p.V, s), p.V.T())
		} else {
			L.Mul(p.V, p.V.T())
		}
	}
	if p.RankB() > 0 {
		var a mat.Dense
		a.Mul(p.B, p.C.T())
		L.Add(L, &a)
		L.Sub(L, a.T())
	}

	raw := L.RawMatrix().Data
	for _, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, kernelErrorf(opBuild, ErrNonFinite)
		}
	}

	return L, nil
}

// scaleColumns returns m·diag(s) as a new matrix.
func scaleColumns(m *mat.Dense, s []float64) *mat.Dense {
	out := mat.DenseCopyOf(m)
	out.Apply(func(_, j int, v float64) float64 { return v * s[j] }, out)
	return out
}

// newDenseLike allocates a zero matrix with m's shape.
func newDenseLike(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	return mat.NewDense(r, c, nil)
}
