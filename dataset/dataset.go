// SPDX-License-Identifier: MIT

package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

// Subset is an ordered list of distinct item indices.
type Subset []int

// Dataset is an ordered sequence of subsets. Order matters only for
// batching.
type Dataset struct {
	Subsets []Subset
	// MaxID is the largest item index seen (0 when every subset is empty).
	MaxID int
	// Path names the source in error messages ("" for in-memory data).
	Path string
}

// Len returns the number of subsets.
func (d *Dataset) Len() int { return len(d.Subsets) }

// MinDim returns the smallest universe size that holds every item.
func (d *Dataset) MinDim() int { return d.MaxID + 1 }

// Load reads a dataset file.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads the text format from r. name prefixes line errors
// ("name:line: ..."); the first malformed line aborts parsing.
//
// Errors: ErrBadToken, ErrNegativeItem, ErrDuplicateItem, read errors.
func Parse(r io.Reader, name string) (*Dataset, error) {
	d := &Dataset{Path: name}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		s, err := parseLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		if len(s) > 0 {
			d.MaxID = max(d.MaxID, lo.Max(s))
		}
		d.Subsets = append(d.Subsets, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s:%d: %w", name, line, err)
	}
	return d, nil
}

// parseLine converts one line into a Subset; blank lines are ∅.
func parseLine(text string) (Subset, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Subset{}, nil
	}
	toks := strings.Split(text, ",")
	seen := set.NewSortedSet(len(toks))
	s := make(Subset, 0, len(toks))
	for _, tok := range toks {
		tok = strings.TrimSpace(tok)
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("token %q: %w", tok, ErrBadToken)
		}
		if v < 0 {
			return nil, fmt.Errorf("item %d: %w", v, ErrNegativeItem)
		}
		if seen.Has(types.Int(v)) {
			return nil, fmt.Errorf("item %d: %w", v, ErrDuplicateItem)
		}
		if err := seen.Add(types.Int(v)); err != nil {
			return nil, err
		}
		s = append(s, v)
	}
	return s, nil
}

// Validate checks that every item lies in [0, dim). The first offending
// line is reported; the error matches both ErrDimensionTooSmall and
// ErrItemOutOfRange.
func (d *Dataset) Validate(dim int) error {
	if dim > d.MaxID {
		return nil
	}
	for i, s := range d.Subsets {
		for _, v := range s {
			if v >= dim {
				return fmt.Errorf("%s:%d: item %d, dim %d: %w: %w", d.Path, i+1, v, dim, ErrDimensionTooSmall, ErrItemOutOfRange)
			}
		}
	}
	return fmt.Errorf("%s: max id %d, dim %d: %w", d.Path, d.MaxID, dim, ErrDimensionTooSmall)
}

// Format renders s as one line of the text format (without newline).
func Format(s Subset) string {
	return strings.Join(lo.Map(s, func(v int, _ int) string {
		return strconv.Itoa(v)
	}), ",")
}

// Write emits subsets in the text format, one per line.
func Write(w io.Writer, subsets []Subset) error {
	bw := bufio.NewWriter(w)
	for _, s := range subsets {
		if _, err := bw.WriteString(Format(s)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
