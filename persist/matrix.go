// SPDX-License-Identifier: MIT

package persist

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/mat"

	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
)

// Result file names.
const (
	FileL = "L.csv"
	FileV = "V.csv"
	FileB = "B.csv"
	FileC = "C.csv"
)

// EncodeMatrix writes m as a space-separated table, one row per line.
func EncodeMatrix(w io.Writer, m mat.Matrix) error {
	r, c := m.Dims()
	ww := csv.NewWriter(w)
	ww.Comma = ' '
	rec := make([]string, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			rec[j] = strconv.FormatFloat(m.At(i, j), 'e', 18, 64)
		}
		if err := ww.Write(rec); err != nil {
			return err
		}
	}
	ww.Flush()
	return ww.Error()
}

// DecodeMatrix reads a table whose values are separated by spaces, tabs or
// commas. Blank lines are skipped.
//
// Errors: ErrBadValue, ErrRaggedTable, ErrEmptyTable.
func DecodeMatrix(r io.Reader) (*mat.Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	var data []float64
	cols, rows, line := -1, 0, 0
	for sc.Scan() {
		line++
		fields := strings.FieldsFunc(sc.Text(), func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		if len(fields) == 0 {
			continue
		}
		if cols >= 0 && len(fields) != cols {
			return nil, fmt.Errorf("line %d: %d values, want %d: %w", line, len(fields), cols, ErrRaggedTable)
		}
		cols = len(fields)
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q: %w", line, f, ErrBadValue)
			}
			data = append(data, v)
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrEmptyTable
	}
	return mat.NewDense(rows, cols, data), nil
}

// SaveMatrix writes m to fname.
func SaveMatrix(fname string, m mat.Matrix) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := EncodeMatrix(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadMatrix reads a matrix table from fname.
func LoadMatrix(fname string) (*mat.Dense, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := DecodeMatrix(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return m, nil
}

// SaveResult writes L and the factors of p into dir. V is written only
// when rankV > 0, B and C only when rankB > 0.
func SaveResult(dir string, p *kernel.Parameters, L mat.Matrix) error {
	files := []struct {
		name string
		m    *mat.Dense
	}{
		{FileV, p.V},
		{FileB, p.B},
		{FileC, p.C},
	}
	if err := SaveMatrix(filepath.Join(dir, FileL), L); err != nil {
		return err
	}
	for _, f := range files {
		if f.m == nil {
			continue
		}
		if err := SaveMatrix(filepath.Join(dir, f.name), f.m); err != nil {
			return err
		}
	}
	return nil
}

// LoadFactors reads V.csv, B.csv and C.csv from dir into parameters of
// dimension dim. Missing files leave the factor absent. The hidden stack
// is not stored in CSV form; use Snapshot for a complete model.
func LoadFactors(dir string, dim int) (*kernel.Parameters, error) {
	p := &kernel.Parameters{Dim: dim}
	for _, f := range []struct {
		name string
		dst  **mat.Dense
	}{
		{FileV, &p.V},
		{FileB, &p.B},
		{FileC, &p.C},
	} {
		fname := filepath.Join(dir, f.name)
		if _, err := os.Stat(fname); os.IsNotExist(err) {
			continue
		}
		m, err := LoadMatrix(fname)
		if err != nil {
			return nil, err
		}
		*f.dst = m
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
