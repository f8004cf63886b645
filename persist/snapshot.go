// SPDX-License-Identifier: MIT

package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
)

// Run directory files.
const (
	FileModel = "model.json"
	FileArgs  = "args.json"
	FileLog   = "log.json"
)

// LayerSnapshot is one hidden layer: W is out×in, row-major.
type LayerSnapshot struct {
	W    [][]float64 `json:"W"`
	Bias []float64   `json:"b"`
}

// Snapshot is the serialized form of kernel.Parameters.
type Snapshot struct {
	Dim    int             `json:"dim"`
	RankV  int             `json:"rankV"`
	RankB  int             `json:"rankB"`
	Hidden []int           `json:"n_hidden_channels"`
	V      [][]float64     `json:"V,omitempty"`
	B      [][]float64     `json:"B,omitempty"`
	C      [][]float64     `json:"C,omitempty"`
	Layers []LayerSnapshot `json:"layers,omitempty"`
}

// SnapshotOf copies p into a Snapshot.
func SnapshotOf(p *kernel.Parameters) Snapshot {
	s := Snapshot{
		Dim:    p.Dim,
		RankV:  p.RankV(),
		RankB:  p.RankB(),
		Hidden: p.HiddenWidths(),
		V:      rows(p.V),
		B:      rows(p.B),
		C:      rows(p.C),
	}
	for _, l := range p.Hidden {
		s.Layers = append(s.Layers, LayerSnapshot{W: rows(l.W), Bias: slices.Clone(l.Bias)})
	}
	return s
}

// Parameters rebuilds kernel parameters and validates their structure.
//
// Errors: ErrSnapshotShape for inconsistent arrays, kernel validation sentinels.
func (s Snapshot) Parameters() (*kernel.Parameters, error) {
	p := &kernel.Parameters{Dim: s.Dim}
	var err error
	if p.V, err = dense(s.V, s.Dim, s.RankV, "V"); err != nil {
		return nil, err
	}
	if p.B, err = dense(s.B, s.Dim, s.RankB, "B"); err != nil {
		return nil, err
	}
	if p.C, err = dense(s.C, s.Dim, s.RankB, "C"); err != nil {
		return nil, err
	}
	if len(s.Layers) != len(s.Hidden) {
		return nil, fmt.Errorf("%d layers, %d widths: %w", len(s.Layers), len(s.Hidden), ErrSnapshotShape)
	}
	in := 1
	for i, l := range s.Layers {
		w, err := dense(l.W, s.Hidden[i], in, fmt.Sprintf("layer %d", i))
		if err != nil {
			return nil, err
		}
		if len(l.Bias) != s.Hidden[i] {
			return nil, fmt.Errorf("layer %d: %w", i, ErrSnapshotShape)
		}
		p.Hidden = append(p.Hidden, kernel.Layer{W: w, Bias: slices.Clone(l.Bias)})
		in = s.Hidden[i]
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// CheckShape reports ErrSnapshotShape unless p matches the requested
// dimension, ranks and hidden widths.
func CheckShape(p *kernel.Parameters, dim, rankV, rankB int, hidden []int) error {
	if p.Dim != dim || p.RankV() != rankV || p.RankB() != rankB || !slices.Equal(p.HiddenWidths(), hidden) {
		return fmt.Errorf("snapshot dim=%d rankV=%d rankB=%d hidden=%v, requested dim=%d rankV=%d rankB=%d hidden=%v: %w",
			p.Dim, p.RankV(), p.RankB(), p.HiddenWidths(), dim, rankV, rankB, hidden, ErrSnapshotShape)
	}
	return nil
}

// SaveSnapshot writes p to fname as JSON.
func SaveSnapshot(fname string, p *kernel.Parameters) error {
	return WriteJSON(fname, SnapshotOf(p))
}

// LoadSnapshot reads parameters from a JSON snapshot.
func LoadSnapshot(fname string) (*kernel.Parameters, error) {
	var s Snapshot
	if err := ReadJSON(fname, &s); err != nil {
		return nil, err
	}
	p, err := s.Parameters()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return p, nil
}

// WriteJSON writes v to fname, indented.
func WriteJSON(fname string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fname, append(b, '\n'), 0o644)
}

// ReadJSON decodes fname into v.
func ReadJSON(fname string, v any) error {
	b, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// RunDir returns outdir/MMDD_HHMM for t and creates it.
func RunDir(outdir string, t time.Time) (string, error) {
	dir := filepath.Join(outdir, t.Format("0102_1504"))
	if err := os.MkdirAll(dir, 0o775); err != nil {
		return "", err
	}
	return dir, nil
}

// rows converts m to a slice of rows; nil stays nil.
func rows(m *mat.Dense) [][]float64 {
	if m == nil {
		return nil
	}
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}

// dense converts r×c rows into a matrix. c == 0 requires empty data and
// yields nil.
func dense(data [][]float64, r, c int, name string) (*mat.Dense, error) {
	if c == 0 {
		if len(data) != 0 {
			return nil, fmt.Errorf("%s: data for rank 0: %w", name, ErrSnapshotShape)
		}
		return nil, nil
	}
	if r <= 0 || len(data) != r {
		return nil, fmt.Errorf("%s: %d rows, want %d: %w", name, len(data), r, ErrSnapshotShape)
	}
	m := mat.NewDense(r, c, nil)
	for i, row := range data {
		if len(row) != c {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w", name, i, len(row), c, ErrSnapshotShape)
		}
		m.SetRow(i, row)
	}
	return m, nil
}
