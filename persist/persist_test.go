// SPDX-License-Identifier: MIT
package persist_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
	"github.com/shizuo-kaji/DeterminantalPointProcess/persist"
)

func TestEncodeMatrix_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, persist.EncodeMatrix(&buf, mat.NewDense(2, 2, []float64{1, -0.5, 0, 0.25})))
	want := "1.000000000000000000e+00 -5.000000000000000000e-01\n" +
		"0.000000000000000000e+00 2.500000000000000000e-01\n"
	assert.Equal(t, want, buf.String())
}

func TestDecodeMatrix(t *testing.T) {
	for _, in := range []string{
		"1 2 3\n4 5 6\n",
		"1,2,3\n4,5,6",
		"  1\t2  3\n\n4, 5, 6\n",
	} {
		m, err := persist.DecodeMatrix(strings.NewReader(in))
		require.NoError(t, err, in)
		assert.True(t, mat.Equal(m, mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})), in)
	}

	_, err := persist.DecodeMatrix(strings.NewReader("1 2\n3\n"))
	assert.ErrorIs(t, err, persist.ErrRaggedTable)
	_, err = persist.DecodeMatrix(strings.NewReader("1 x\n"))
	assert.ErrorIs(t, err, persist.ErrBadValue)
	_, err = persist.DecodeMatrix(strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, persist.ErrEmptyTable)
}

// TestSaveResult_RebuildReproducesL rebuilds L from V/B/C files.
func TestSaveResult_RebuildReproducesL(t *testing.T) {
	for _, cfg := range []struct{ rv, rb int }{{2, 0}, {0, 2}, {3, 1}} {
		dir := t.TempDir()
		p, err := kernel.NewParameters(5, cfg.rv, cfg.rb, nil, kernel.NewRand(31))
		require.NoError(t, err)
		L, err := kernel.Build(p)
		require.NoError(t, err)
		require.NoError(t, persist.SaveResult(dir, p, L))

		_, err = os.Stat(filepath.Join(dir, persist.FileV))
		assert.Equal(t, cfg.rv == 0, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(dir, persist.FileB))
		assert.Equal(t, cfg.rb == 0, os.IsNotExist(err))

		q, err := persist.LoadFactors(dir, 5)
		require.NoError(t, err)
		rebuilt, err := kernel.Build(q)
		require.NoError(t, err)
		stored, err := persist.LoadMatrix(filepath.Join(dir, persist.FileL))
		require.NoError(t, err)
		assert.True(t, mat.EqualApprox(rebuilt, stored, 1e-12), "rankV=%d rankB=%d", cfg.rv, cfg.rb)
	}
}

func TestLoadFactors_LoneB(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, persist.SaveMatrix(filepath.Join(dir, persist.FileB), mat.NewDense(3, 2, nil)))
	_, err := persist.LoadFactors(dir, 3)
	assert.ErrorIs(t, err, kernel.ErrFactorPair)
}

func TestSnapshot_RoundTrip(t *testing.T) {
	p, err := kernel.NewParameters(4, 2, 1, []int{3, 2}, kernel.NewRand(8))
	require.NoError(t, err)
	p.Hidden[1].Bias[0] = 0.25

	fname := filepath.Join(t.TempDir(), persist.FileModel)
	require.NoError(t, persist.SaveSnapshot(fname, p))
	q, err := persist.LoadSnapshot(fname)
	require.NoError(t, err)

	pt, qt := p.Tensors(), q.Tensors()
	require.Len(t, qt, len(pt))
	for i := range pt {
		assert.Equal(t, pt[i].Name, qt[i].Name)
		assert.Equal(t, pt[i].Data, qt[i].Data, pt[i].Name)
	}
	assert.NoError(t, persist.CheckShape(q, 4, 2, 1, []int{3, 2}))
}

func TestCheckShape(t *testing.T) {
	p, err := kernel.NewParameters(4, 2, 0, nil, nil)
	require.NoError(t, err)

	assert.NoError(t, persist.CheckShape(p, 4, 2, 0, nil))
	assert.NoError(t, persist.CheckShape(p, 4, 2, 0, []int{}))
	assert.ErrorIs(t, persist.CheckShape(p, 5, 2, 0, nil), persist.ErrSnapshotShape)
	assert.ErrorIs(t, persist.CheckShape(p, 4, 3, 0, nil), persist.ErrSnapshotShape)
	assert.ErrorIs(t, persist.CheckShape(p, 4, 2, 1, nil), persist.ErrSnapshotShape)
	assert.ErrorIs(t, persist.CheckShape(p, 4, 2, 0, []int{2}), persist.ErrSnapshotShape)
}

func TestSnapshot_Corrupt(t *testing.T) {
	cases := []struct {
		name string
		s    persist.Snapshot
		want error
	}{
		{"V rows", persist.Snapshot{Dim: 3, RankV: 1, V: [][]float64{{1}, {2}}}, persist.ErrSnapshotShape},
		{"V cols", persist.Snapshot{Dim: 2, RankV: 1, V: [][]float64{{1}, {2, 3}}}, persist.ErrSnapshotShape},
		{"rank 0 with data", persist.Snapshot{Dim: 1, B: [][]float64{{1}}}, persist.ErrSnapshotShape},
		{"layers", persist.Snapshot{Dim: 1, Hidden: []int{1}}, persist.ErrSnapshotShape},
		{"bias", persist.Snapshot{Dim: 1, Hidden: []int{1},
			Layers: []persist.LayerSnapshot{{W: [][]float64{{1}}}}}, persist.ErrSnapshotShape},
		{"dim", persist.Snapshot{}, kernel.ErrBadDim},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.s.Parameters()
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestJSONAndRunDir(t *testing.T) {
	root := t.TempDir()
	dir, err := persist.RunDir(root, time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "0304_0506"), dir)

	in := map[string]any{"rankV": 2.0, "optimizer": "Adam"}
	fname := filepath.Join(dir, persist.FileArgs)
	require.NoError(t, persist.WriteJSON(fname, in))
	var out map[string]any
	require.NoError(t, persist.ReadJSON(fname, &out))
	assert.Equal(t, in, out)
}
