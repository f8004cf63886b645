// SPDX-License-Identifier: MIT
package kernel_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
)

const tol = 1e-12

// TestBuild_TwoItemRankOne checks the worked example L = [[1,1],[1,1]].
func TestBuild_TwoItemRankOne(t *testing.T) {
	p := &kernel.Parameters{Dim: 2, V: mat.NewDense(2, 1, []float64{1, 1})}

	L, err := kernel.Build(p)
	require.NoError(t, err)
	assert.True(t, mat.Equal(L, mat.NewDense(2, 2, []float64{1, 1, 1, 1})), "L=%v", mat.Formatted(L))
}

// TestBuild_SymmetricWithoutAntisymmetricPart verifies L == Lᵀ for rankB == 0,
// with and without the hidden reweighting stack.
func TestBuild_SymmetricWithoutAntisymmetricPart(t *testing.T) {
	for _, hidden := range [][]int{nil, {4, 3}, {2, 1}} {
		p, err := kernel.NewParameters(5, 3, 0, hidden, kernel.NewRand(7))
		require.NoError(t, err)

		L, err := kernel.Build(p)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				assert.InDelta(t, L.At(i, j), L.At(j, i), tol, "hidden=%v (%d,%d)", hidden, i, j)
			}
		}
	}
}

// TestBuild_AntisymmetricOnlyHasZeroDiagonal verifies diag(L) == 0 exactly
// and L == −Lᵀ when rankV == 0.
func TestBuild_AntisymmetricOnlyHasZeroDiagonal(t *testing.T) {
	p, err := kernel.NewParameters(6, 0, 2, nil, kernel.NewRand(3))
	require.NoError(t, err)

	L, err := kernel.Build(p)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		assert.Equal(t, 0.0, L.At(i, i), "diag %d", i)
		for j := 0; j < 6; j++ {
			assert.InDelta(t, -L.At(j, i), L.At(i, j), tol)
		}
	}
}

// TestBuild_EmptyRanksGiveZeroKernel: no factors, zero matrix.
func TestBuild_EmptyRanksGiveZeroKernel(t *testing.T) {
	p, err := kernel.NewParameters(3, 0, 0, nil, nil)
	require.NoError(t, err)
	L, err := kernel.Build(p)
	require.NoError(t, err)
	assert.True(t, mat.Equal(L, mat.NewDense(3, 3, nil)))
}

// TestValidate_FactorPair ensures a lone B is a configuration error that
// surfaces before any product is formed.
func TestValidate_FactorPair(t *testing.T) {
	p := &kernel.Parameters{Dim: 3, B: mat.NewDense(3, 2, nil)}

	assert.ErrorIs(t, p.Validate(), kernel.ErrFactorPair)
	_, err := kernel.Build(p)
	assert.ErrorIs(t, err, kernel.ErrFactorPair)
	_, err = kernel.Backward(p, mat.NewDense(3, 3, nil))
	assert.ErrorIs(t, err, kernel.ErrFactorPair)
}

// TestValidate_Shapes covers factor and hidden-chain shape errors.
func TestValidate_Shapes(t *testing.T) {
	cases := []struct {
		name string
		p    *kernel.Parameters
		want error
	}{
		{"nil", nil, kernel.ErrNilParameters},
		{"dim", &kernel.Parameters{Dim: 0}, kernel.ErrBadDim},
		{"V rows", &kernel.Parameters{Dim: 3, V: mat.NewDense(2, 1, nil)}, kernel.ErrFactorShape},
		{"B/C cols", &kernel.Parameters{Dim: 3, B: mat.NewDense(3, 1, nil), C: mat.NewDense(3, 2, nil)}, kernel.ErrFactorShape},
		{"hidden input", &kernel.Parameters{Dim: 3, V: mat.NewDense(3, 1, nil),
			Hidden: []kernel.Layer{{W: mat.NewDense(1, 2, nil), Bias: []float64{0}}}}, kernel.ErrHiddenShape},
		{"hidden width", &kernel.Parameters{Dim: 3, V: mat.NewDense(3, 2, nil),
			Hidden: []kernel.Layer{{W: mat.NewDense(3, 1, nil), Bias: make([]float64, 3)}}}, kernel.ErrHiddenWidth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.p.Validate(), tc.want)
		})
	}
}

// TestNewParameters_Errors covers argument validation.
func TestNewParameters_Errors(t *testing.T) {
	_, err := kernel.NewParameters(0, 1, 0, nil, nil)
	assert.ErrorIs(t, err, kernel.ErrBadDim)
	_, err = kernel.NewParameters(3, -1, 0, nil, nil)
	assert.ErrorIs(t, err, kernel.ErrRank)
	_, err = kernel.NewParameters(3, 2, 0, []int{0}, nil)
	assert.ErrorIs(t, err, kernel.ErrHiddenShape)
	_, err = kernel.NewParameters(3, 2, 0, []int{4, 3}, nil)
	assert.ErrorIs(t, err, kernel.ErrHiddenWidth)
}

// TestNewParameters_SeedDeterminism: same seed, same draw; values in range.
func TestNewParameters_SeedDeterminism(t *testing.T) {
	a, err := kernel.NewParameters(4, 2, 1, []int{3, 2}, kernel.NewRand(42))
	require.NoError(t, err)
	b, err := kernel.NewParameters(4, 2, 1, []int{3, 2}, kernel.NewRand(42))
	require.NoError(t, err)

	ta, tb := a.Tensors(), b.Tensors()
	require.Len(t, ta, len(tb))
	for i := range ta {
		assert.Equal(t, ta[i].Name, tb[i].Name)
		assert.Equal(t, ta[i].Data, tb[i].Data)
	}
	for _, m := range []*mat.Dense{a.V, a.B, a.C} {
		for _, v := range m.RawMatrix().Data {
			assert.True(t, v >= kernel.InitLow && v < kernel.InitHigh, "value %v out of range", v)
		}
	}
	assert.Equal(t, 2, a.RankV())
	assert.Equal(t, 1, a.RankB())
	assert.Equal(t, []int{3, 2}, a.HiddenWidths())
}

// TestClone_IsDeep ensures mutation of a clone leaves the source untouched.
func TestClone_IsDeep(t *testing.T) {
	p, err := kernel.NewParameters(3, 1, 1, []int{1}, kernel.NewRand(5))
	require.NoError(t, err)
	q := p.Clone()
	for _, ts := range q.Tensors() {
		for i := range ts.Data {
			ts.Data[i] += 1
		}
	}
	pt, qt := p.Tensors(), q.Tensors()
	for i := range pt {
		assert.NotEqual(t, pt[i].Data, qt[i].Data, pt[i].Name)
	}
}

// TestBackward_MatchesFiniteDifferences compares Backward against central
// differences of the linear functional f(θ) = Σ G∘L(θ).
func TestBackward_MatchesFiniteDifferences(t *testing.T) {
	configs := []struct {
		name   string
		rv, rb int
		hidden []int
	}{
		{"plain", 2, 0, nil},
		{"antisymmetric", 0, 2, nil},
		{"mixed", 2, 1, nil},
		{"reweighted", 2, 1, []int{3, 2}},
		{"uniform scale", 3, 0, []int{2, 1}},
	}
	const dim = 4
	const h = 1e-6

	for _, cfg := range configs {
		t.Run(cfg.name, func(t *testing.T) {
			rng := kernel.NewRand(11)
			p, err := kernel.NewParameters(dim, cfg.rv, cfg.rb, cfg.hidden, rng)
			require.NoError(t, err)
			// Non-zero biases so every tanh derivative is exercised.
			for _, l := range p.Hidden {
				for i := range l.Bias {
					l.Bias[i] = 0.3*rng.Float64() - 0.15
				}
			}
			G := mat.NewDense(dim, dim, nil)
			for i := 0; i < dim; i++ {
				for j := 0; j < dim; j++ {
					G.Set(i, j, rng.Float64()-0.5)
				}
			}

			f := func() float64 {
				L, err := kernel.Build(p)
				require.NoError(t, err)
				var s float64
				for i := 0; i < dim; i++ {
					for j := 0; j < dim; j++ {
						s += G.At(i, j) * L.At(i, j)
					}
				}
				return s
			}

			g, err := kernel.Backward(p, G)
			require.NoError(t, err)
			pts, gts := p.Tensors(), g.Tensors()
			require.Len(t, gts, len(pts))

			for k := range pts {
				require.Len(t, gts[k].Data, len(pts[k].Data), pts[k].Name)
				for i := range pts[k].Data {
					orig := pts[k].Data[i]
					pts[k].Data[i] = orig + h
					fp := f()
					pts[k].Data[i] = orig - h
					fm := f()
					pts[k].Data[i] = orig
					assert.InDelta(t, (fp-fm)/(2*h), gts[k].Data[i], 1e-5, "%s[%d]", pts[k].Name, i)
				}
			}
		})
	}
}

// TestBackward_GradShape rejects a mis-sized ∂loss/∂L.
func TestBackward_GradShape(t *testing.T) {
	p, err := kernel.NewParameters(3, 1, 0, nil, nil)
	require.NoError(t, err)
	_, err = kernel.Backward(p, mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, kernel.ErrGradShape)
	_, err = kernel.Backward(p, nil)
	assert.ErrorIs(t, err, kernel.ErrGradShape)
}

// TestPerm_IsPermutationAndDeterministic checks Fisher–Yates output.
func TestPerm_IsPermutationAndDeterministic(t *testing.T) {
	a := kernel.Perm(10, kernel.NewRand(9))
	b := kernel.Perm(10, kernel.NewRand(9))
	assert.Equal(t, a, b)

	sorted := append([]int(nil), a...)
	sort.Ints(sorted)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, sorted)
	assert.Empty(t, kernel.Perm(0, nil))
}
