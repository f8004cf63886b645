// SPDX-License-Identifier: MIT

package dataset

import "fmt"

// PivotFrequencies returns the empirical counterpart of dpp.Report:
// f[pivot] is the share of subsets equal to {pivot}, and f[i] (i != pivot)
// is the share equal to {pivot, i}. Larger subsets are ignored. The
// denominator is len(subsets); an empty input yields zeros.
//
// Errors: ErrItemOutOfRange for a pivot or item outside [0, dim).
func PivotFrequencies(subsets []Subset, dim, pivot int) ([]float64, error) {
	if pivot < 0 || pivot >= dim {
		return nil, fmt.Errorf("pivot %d, dim %d: %w", pivot, dim, ErrItemOutOfRange)
	}
	f := make([]float64, dim)
	if len(subsets) == 0 {
		return f, nil
	}
	for i, s := range subsets {
		for _, v := range s {
			if v < 0 || v >= dim {
				return nil, fmt.Errorf("subset %d: item %d, dim %d: %w", i, v, dim, ErrItemOutOfRange)
			}
		}
		switch {
		case len(s) == 1 && s[0] == pivot:
			f[pivot]++
		case len(s) == 2 && s[0] == pivot:
			f[s[1]]++
		case len(s) == 2 && s[1] == pivot:
			f[s[0]]++
		}
	}
	total := float64(len(subsets))
	for i := range f {
		f[i] /= total
	}
	return f, nil
}
