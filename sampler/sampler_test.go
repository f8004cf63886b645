// SPDX-License-Identifier: MIT
package sampler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/shizuo-kaji/DeterminantalPointProcess/dataset"
	"github.com/shizuo-kaji/DeterminantalPointProcess/dpp"
	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
	"github.com/shizuo-kaji/DeterminantalPointProcess/sampler"
)

func counts(subsets []dataset.Subset) map[string]int {
	c := map[string]int{}
	for _, s := range subsets {
		c["{"+dataset.Format(s)+"}"]++
	}
	return c
}

// TestExact_TwoItem: L = [[1,1],[1,1]], n = 300 gives 100/100/100/0.
func TestExact_TwoItem(t *testing.T) {
	p := &kernel.Parameters{Dim: 2, V: mat.NewDense(2, 1, []float64{1, 1})}
	out, st, err := sampler.ExactFromParameters(p, 300)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"{}": 100, "{0}": 100, "{1}": 100}, counts(out))
	assert.Equal(t, 300, st.Emitted)
	assert.Equal(t, 0, st.Drift())
	assert.InDelta(t, 3.0, st.Normalizer, 1e-12)
	assert.InDelta(t, 1.0, st.ProbabilitySum, 1e-12)

	// Empty subsets first, then size 1 in item order.
	assert.Empty(t, out[0])
	assert.Equal(t, dataset.Subset{0}, out[100])
	assert.Equal(t, dataset.Subset{1}, out[299])
}

// TestExact_LexicographicAndDrift uses L = I: every subset has mass 1/8.
func TestExact_LexicographicAndDrift(t *testing.T) {
	L := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	out, st, err := sampler.Exact(L, 2, 8)
	require.NoError(t, err)

	want := []dataset.Subset{{}, {0}, {1}, {2}, {0, 1}, {0, 2}, {1, 2}}
	assert.Equal(t, want, out)
	assert.Equal(t, -1, st.Drift())
	assert.InDelta(t, 7.0/8, st.ProbabilitySum, 1e-12)

	// maxSize beyond dim is clamped.
	out, st, err = sampler.Exact(L, 5, 8)
	require.NoError(t, err)
	assert.Len(t, out, 8)
	assert.Equal(t, dataset.Subset{0, 1, 2}, out[7])
	assert.Equal(t, 0, st.Drift())
}

// TestExact_NegativeMassIsDropped: P({0}) = -1/2 emits nothing.
func TestExact_NegativeMassIsDropped(t *testing.T) {
	L := mat.NewDense(2, 2, []float64{-0.5, 0, 0, 1})
	out, st, err := sampler.Exact(L, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"{}": 10, "{1}": 10}, counts(out))
	assert.InDelta(t, 1.0, st.ProbabilitySum, 1e-12)
}

// TestCopies_RoundsHalfToEven matches round-half-even and clamps at 0.
func TestCopies_RoundsHalfToEven(t *testing.T) {
	cases := []struct {
		n    int
		p    float64
		want int
	}{
		{1, 0.5, 0},
		{5, 0.5, 2},
		{7, 0.5, 4},
		{300, 1.0 / 3, 100},
		{10, -0.5, 0},
		{10, 0, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sampler.Copies(tc.n, tc.p), "n=%d p=%v", tc.n, tc.p)
	}
}

func TestExact_Errors(t *testing.T) {
	_, _, err := sampler.Exact(mat.NewDense(1, 1, []float64{-2}), 1, 10)
	assert.ErrorIs(t, err, dpp.ErrDegenerateNormalizer)
	_, _, err = sampler.Exact(mat.NewDense(2, 3, nil), 1, 10)
	assert.ErrorIs(t, err, dpp.ErrNonSquare)
	_, _, err = sampler.Exact(mat.NewDense(1, 1, nil), 1, -1)
	assert.ErrorIs(t, err, sampler.ErrCount)
	_, _, err = sampler.Exact(mat.NewDense(1, 1, nil), -1, 1)
	assert.ErrorIs(t, err, sampler.ErrMaxSize)
}

// TestExactFromParameters_LoneB is a configuration error.
func TestExactFromParameters_LoneB(t *testing.T) {
	p := &kernel.Parameters{Dim: 3, B: mat.NewDense(3, 2, nil)}
	_, _, err := sampler.ExactFromParameters(p, 100)
	assert.ErrorIs(t, err, kernel.ErrFactorPair)
}

// TestExactFromFactors: a rank-2 symmetric kernel puts no mass above size 2.
func TestExactFromFactors(t *testing.T) {
	out, st, err := sampler.ExactFromFactors(4, 2, 0, 1000, kernel.NewRand(6))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, st.ProbabilitySum, 1e-9)
	assert.InDelta(t, 1000, st.Emitted, 11)
	assert.Len(t, out, st.Emitted)
	for _, s := range out {
		assert.LessOrEqual(t, len(s), 2)
	}

	again, _, err := sampler.ExactFromFactors(4, 2, 0, 1000, kernel.NewRand(6))
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, _, err = sampler.ExactFromFactors(0, 2, 0, 10, nil)
	assert.ErrorIs(t, err, kernel.ErrBadDim)
}

func TestRandom(t *testing.T) {
	out, err := sampler.Random(200, 5, 3, kernel.NewRand(2))
	require.NoError(t, err)
	require.Len(t, out, 200)

	sizes := map[int]bool{}
	for _, s := range out {
		require.GreaterOrEqual(t, len(s), 1)
		require.LessOrEqual(t, len(s), 3)
		sizes[len(s)] = true
		seen := map[int]bool{}
		for _, v := range s {
			assert.True(t, v >= 0 && v < 5)
			assert.False(t, seen[v], "duplicate item in %v", s)
			seen[v] = true
		}
	}
	assert.Len(t, sizes, 3)

	again, err := sampler.Random(200, 5, 3, kernel.NewRand(2))
	require.NoError(t, err)
	assert.Equal(t, out, again)

	// rankV above dim clamps to the full permutation.
	big, err := sampler.Random(50, 2, 6, kernel.NewRand(1))
	require.NoError(t, err)
	for _, s := range big {
		assert.LessOrEqual(t, len(s), 2)
	}

	_, err = sampler.Random(10, 5, 0, nil)
	assert.ErrorIs(t, err, sampler.ErrRank)
	_, err = sampler.Random(-1, 5, 1, nil)
	assert.ErrorIs(t, err, sampler.ErrCount)
	_, err = sampler.Random(1, 0, 1, nil)
	assert.ErrorIs(t, err, sampler.ErrDim)
}
