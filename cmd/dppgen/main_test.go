// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/shizuo-kaji/DeterminantalPointProcess/dataset"
	"github.com/shizuo-kaji/DeterminantalPointProcess/persist"
)

func TestGenerate_Random(t *testing.T) {
	a := defaultArgs()
	a.Random = true
	a.N = 50
	a.Seed = 9
	var out bytes.Buffer
	require.NoError(t, generate(a, &out))

	d, err := dataset.Parse(&out, "gen")
	require.NoError(t, err)
	require.Equal(t, 50, d.Len())
	require.NoError(t, d.Validate(5))
	for _, s := range d.Subsets {
		assert.True(t, len(s) >= 1 && len(s) <= 2)
	}
}

func TestGenerate_ExactFromFactors(t *testing.T) {
	a := defaultArgs()
	a.N = 200
	var first, second bytes.Buffer
	require.NoError(t, generate(a, &first))
	require.NoError(t, generate(a, &second))
	assert.Equal(t, first.String(), second.String())

	d, err := dataset.Parse(&first, "gen")
	require.NoError(t, err)
	assert.InDelta(t, 200, d.Len(), 16)
	for _, s := range d.Subsets {
		assert.LessOrEqual(t, len(s), 2)
	}
}

// TestGenerate_Kernel: L = I over two items gives mass 1/4 to each subset.
func TestGenerate_Kernel(t *testing.T) {
	fname := filepath.Join(t.TempDir(), persist.FileL)
	require.NoError(t, persist.SaveMatrix(fname, mat.NewDense(2, 2, []float64{1, 0, 0, 1})))

	a := defaultArgs()
	a.Kernel = fname
	a.N = 4
	var out bytes.Buffer
	require.NoError(t, generate(a, &out))
	assert.Equal(t, "\n0\n1\n0,1\n", out.String())

	a.MaxSize = 1
	out.Reset()
	require.NoError(t, generate(a, &out))
	assert.Equal(t, "\n0\n1\n", out.String())
}

func TestGenerate_Errors(t *testing.T) {
	a := defaultArgs()
	a.Random = true
	a.RankV = 0
	err := generate(a, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, "opts", exitKind(err))

	a = defaultArgs()
	a.Dim = 0
	err = generate(a, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, "opts", exitKind(err))

	a = defaultArgs()
	a.Kernel = filepath.Join(t.TempDir(), "missing.csv")
	err = generate(a, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, "badfile", exitKind(err))
}
