// SPDX-License-Identifier: MIT

// Package kernel: learnable parameter aggregate.
//
// Purpose:
//   - Hold the low-rank factors (V, B, C) and the optional hidden reweighting
//     stack as a plain record of gonum matrices.
//   - Provide seeded initialization, structural validation and flat tensor
//     views for optimizers.
//
// Notes:
//   - Factors of rank 0 are represented by nil matrices (gonum forbids 0-sized Dense).
//   - Hidden layers are an explicit ordered list indexed by position.

package kernel

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Initialization range for V, B and C.
const (
	InitLow  = -2.0
	InitHigh = 2.0
)

// DummyInput is the fixed scalar fed to the hidden stack. The stack has an
// input width of 1 and never sees any data-dependent input.
const DummyInput = 0.0

// dummyWidth is the input width of the first hidden layer.
const dummyWidth = 1

// Layer is one affine map of the hidden reweighting stack: out = W·in + Bias.
type Layer struct {
	W    *mat.Dense // out×in
	Bias []float64  // len == out
}

// Parameters is the learnable state of a DPP kernel.
//
// Invariants (checked by Validate):
//   - Dim > 0.
//   - V is nil or Dim×rankV.
//   - B and C are both nil or both Dim×rankB.
//   - Hidden[0] has input width 1; Hidden[i] input width == Hidden[i-1] output width.
//   - With rankV>0 and hidden layers, the last output width is rankV or 1.
type Parameters struct {
	Dim    int
	V      *mat.Dense
	B      *mat.Dense
	C      *mat.Dense
	Hidden []Layer
}

// Tensor is a named flat view over one learnable array. Data aliases the
// backing storage of the owning matrix or slice.
type Tensor struct {
	Name string
	Data []float64
}

// NewParameters allocates parameters for a universe of dim items and draws
// them from rng.
//
// Implementation:
//   - Stage 1: validate dim, ranks and hidden widths.
//   - Stage 2: V, B, C ~ U[InitLow, InitHigh), drawn in that order.
//   - Stage 3: hidden weights ~ N(0, 1/in) (LeCun normal), biases zero.
//
// Inputs:
//   - dim: number of items (>0).
//   - rankV, rankB: ranks of the symmetric and antisymmetric parts (>=0).
//   - hidden: widths of the hidden layers, in order (may be empty).
//   - rng: random source; nil selects the default deterministic stream.
//
// Errors:
//   - ErrBadDim, ErrRank, ErrHiddenShape, ErrHiddenWidth.
//
// Determinism:
//   - The draw order is fixed, so equal seeds yield equal parameters.
func NewParameters(dim, rankV, rankB int, hidden []int, rng *rand.Rand) (*Parameters, error) {
	if dim <= 0 {
		return nil, kernelErrorf(opNew, ErrBadDim)
	}
	if rankV < 0 || rankB < 0 {
		return nil, kernelErrorf(opNew, ErrRank)
	}
	for _, w := range hidden {
		if w <= 0 {
			return nil, kernelErrorf(opNew, ErrHiddenShape)
		}
	}
	if rankV > 0 && len(hidden) > 0 {
		last := hidden[len(hidden)-1]
		if last != rankV && last != 1 {
			return nil, kernelErrorf(opNew, fmt.Errorf("width %d, rankV %d: %w", last, rankV, ErrHiddenWidth))
		}
	}
	r := orDefault(rng)

	p := &Parameters{Dim: dim}
	if rankV > 0 {
		p.V = mat.NewDense(dim, rankV, nil)
		fillUniform(p.V.RawMatrix().Data, InitLow, InitHigh, r)
	}
	if rankB > 0 {
		p.B = mat.NewDense(dim, rankB, nil)
		fillUniform(p.B.RawMatrix().Data, InitLow, InitHigh, r)
		p.C = mat.NewDense(dim, rankB, nil)
		fillUniform(p.C.RawMatrix().Data, InitLow, InitHigh, r)
	}

	in := dummyWidth
	p.Hidden = make([]Layer, len(hidden))
	for l, out := range hidden {
		w := mat.NewDense(out, in, nil)
		std := math.Sqrt(1 / float64(in))
		raw := w.RawMatrix().Data
		for i := range raw {
			raw[i] = std * r.NormFloat64()
		}
		p.Hidden[l] = Layer{W: w, Bias: make([]float64, out)}
		in = out
	}

	return p, nil
}

// RankV returns the number of columns of V (0 when absent).
func (p *Parameters) RankV() int {
	if p.V == nil {
		return 0
	}
	_, c := p.V.Dims()
	return c
}

// RankB returns the number of columns of B (0 when absent).
func (p *Parameters) RankB() int {
	if p.B == nil {
		return 0
	}
	_, c := p.B.Dims()
	return c
}

// HiddenWidths returns the output width of every hidden layer, in order.
func (p *Parameters) HiddenWidths() []int {
	ws := make([]int, len(p.Hidden))
	for i, l := range p.Hidden {
		ws[i] = len(l.Bias)
	}
	return ws
}

// Validate checks the structural invariants listed on Parameters.
//
// Errors (in priority order):
//   - ErrNilParameters, ErrBadDim, ErrFactorPair, ErrFactorShape,
//     ErrHiddenShape, ErrHiddenWidth.
//
// Complexity: O(len(Hidden)).
func (p *Parameters) Validate() error {
	if p == nil {
		return kernelErrorf(opValidate, ErrNilParameters)
	}
	if p.Dim <= 0 {
		return kernelErrorf(opValidate, ErrBadDim)
	}
	if (p.B == nil) != (p.C == nil) {
		return kernelErrorf(opValidate, ErrFactorPair)
	}
	if p.V != nil {
		if r, _ := p.V.Dims(); r != p.Dim {
			return kernelErrorf(opValidate, fmt.Errorf("V has %d rows, dim %d: %w", r, p.Dim, ErrFactorShape))
		}
	}
	if p.B != nil {
		br, bc := p.B.Dims()
		cr, cc := p.C.Dims()
		if br != p.Dim || cr != p.Dim || bc != cc {
			return kernelErrorf(opValidate, fmt.Errorf("B %dx%d, C %dx%d, dim %d: %w", br, bc, cr, cc, p.Dim, ErrFactorShape))
		}
	}

	in := dummyWidth
	for i, l := range p.Hidden {
		if l.W == nil {
			return kernelErrorf(opValidate, fmt.Errorf("layer %d: %w", i, ErrHiddenShape))
		}
		r, c := l.W.Dims()
		if c != in || r != len(l.Bias) {
			return kernelErrorf(opValidate, fmt.Errorf("layer %d: W %dx%d, bias %d, input %d: %w", i, r, c, len(l.Bias), in, ErrHiddenShape))
		}
		in = r
	}
	if rv := p.RankV(); rv > 0 && len(p.Hidden) > 0 && in != rv && in != 1 {
		return kernelErrorf(opValidate, fmt.Errorf("width %d, rankV %d: %w", in, rv, ErrHiddenWidth))
	}

	return nil
}

// Clone returns a deep copy of p.
func (p *Parameters) Clone() *Parameters {
	q := &Parameters{Dim: p.Dim, V: cloneDense(p.V), B: cloneDense(p.B), C: cloneDense(p.C)}
	q.Hidden = make([]Layer, len(p.Hidden))
	for i, l := range p.Hidden {
		q.Hidden[i] = Layer{W: cloneDense(l.W), Bias: append([]float64(nil), l.Bias...)}
	}
	return q
}

// Tensors returns flat views of every learnable array in a fixed order:
// V, B, C, then W_i, b_i for each hidden layer. Absent factors are skipped.
// The order matches (*Gradients).Tensors for the same structure.
func (p *Parameters) Tensors() []Tensor {
	return tensorsOf(p.V, p.B, p.C, p.Hidden)
}

func tensorsOf(v, b, c *mat.Dense, hidden []Layer) []Tensor {
	ts := make([]Tensor, 0, 3+2*len(hidden))
	if v != nil {
		ts = append(ts, Tensor{Name: "V", Data: v.RawMatrix().Data})
	}
	if b != nil {
		ts = append(ts, Tensor{Name: "B", Data: b.RawMatrix().Data})
	}
	if c != nil {
		ts = append(ts, Tensor{Name: "C", Data: c.RawMatrix().Data})
	}
	for i, l := range hidden {
		ts = append(ts,
			Tensor{Name: fmt.Sprintf("l%d/W", i), Data: l.W.RawMatrix().Data},
			Tensor{Name: fmt.Sprintf("l%d/b", i), Data: l.Bias},
		)
	}
	return ts
}

// cloneDense deep-copies m, keeping nil as nil.
func cloneDense(m *mat.Dense) *mat.Dense {
	if m == nil {
		return nil
	}
	return mat.DenseCopyOf(m)
}
