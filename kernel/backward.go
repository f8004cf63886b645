// SPDX-License-Identifier: MIT

package kernel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Gradients mirrors the structure of Parameters and holds ∂loss/∂θ for
// every learnable array. It is returned alongside a loss and never stored
// on the parameters themselves.
type Gradients struct {
	V      *mat.Dense
	B      *mat.Dense
	C      *mat.Dense
	Hidden []Layer
}

// Tensors returns flat views in the same order as (*Parameters).Tensors.
func (g *Gradients) Tensors() []Tensor {
	return tensorsOf(g.V, g.B, g.C, g.Hidden)
}

// Backward maps G = ∂loss/∂L onto the parameters of p.
//
// Implementation:
//   - Symmetric part L_V = V·S·Vᵀ with S = diag(s), s = exp(h) (S = I without hidden layers):
//     ∂V = (G + Gᵀ)·V·S and ∂s_k = (Vᵀ·G·V)_kk, ∂h_k = s_k·∂s_k (summed when len(h)==1),
//     then back through the tanh stack.
//   - Antisymmetric part A = B·Cᵀ − C·Bᵀ:
//     ∂B = (G − Gᵀ)·C, ∂C = (Gᵀ − G)·B.
//
// Inputs:
//   - p: valid parameters.
//   - G: Dim×Dim gradient of the loss with respect to L.
//
// Errors:
//   - Validation sentinels from p.Validate, ErrGradShape.
//
// Complexity:
//   - Time O(Dim²·(rankV+rankB)), Space O(Dim²).
func Backward(p *Parameters, G *mat.Dense) (*Gradients, error) {
	if err := p.Validate(); err != nil {
		return nil, kernelErrorf(opBackward, err)
	}
	if G == nil {
		return nil, kernelErrorf(opBackward, ErrGradShape)
	}
	if r, c := G.Dims(); r != p.Dim || c != p.Dim {
		return nil, kernelErrorf(opBackward, fmt.Errorf("got %dx%d, want %dx%d: %w", r, c, p.Dim, p.Dim, ErrGradShape))
	}

	g := &Gradients{}

	if rv := p.RankV(); rv > 0 {
		var sym mat.Dense // G + Gᵀ
		sym.Add(G, G.T())

		if len(p.Hidden) > 0 {
			acts := forwardHidden(p.Hidden)
			h := acts[len(acts)-1]
			s := columnScales(h, rv)

			g.V = mat.NewDense(p.Dim, rv, nil)
			g.V.Mul(&sym, scaleColumns(p.V, s))

			var gv, vgv mat.Dense
			gv.Mul(G, p.V)
			vgv.Mul(p.V.T(), &gv)
			dh := make([]float64, len(h))
			for k := 0; k < rv; k++ {
				ds := vgv.At(k, k) * s[k]
				if len(h) == 1 {
					dh[0] += ds
				} else {
					dh[k] = ds
				}
			}
			g.Hidden = backwardHidden(p.Hidden, acts, dh)
		} else {
			g.V = mat.NewDense(p.Dim, rv, nil)
			g.V.Mul(&sym, p.V)
		}
	}
	if g.Hidden == nil && len(p.Hidden) > 0 {
		// Unused stack (rankV == 0): zero gradients keep tensor order aligned.
		g.Hidden = make([]Layer, len(p.Hidden))
		for i, l := range p.Hidden {
			g.Hidden[i] = Layer{W: newDenseLike(l.W), Bias: make([]float64, len(l.Bias))}
		}
	}

	if rb := p.RankB(); rb > 0 {
		var skew mat.Dense // G − Gᵀ
		skew.Sub(G, G.T())

		g.B = mat.NewDense(p.Dim, rb, nil)
		g.B.Mul(&skew, p.C)

		g.C = mat.NewDense(p.Dim, rb, nil)
		g.C.Mul(&skew, p.B)
		g.C.Scale(-1, g.C)
	}

	return g, nil
}
