// SPDX-License-Identifier: MIT

// Package dataset reads, writes and batches observed subsets of the item
// universe {0..dim-1}.
//
// Text format:
//
//	One subset per line, items as comma-separated integers. Whitespace
//	around tokens is ignored. An empty line is the empty subset. A trailing
//	newline at end of file does not add an extra subset.
//
//	3,0,7
//
//	1
//
// The order of items on a line is preserved but carries no meaning for
// probabilities. Duplicate items within one line are rejected.
//
// Contents:
//   - Subset, Dataset, Parse, Load, Format, Write.
//   - SerialIterator: minibatch iterator with epoch tracking.
//   - PivotFrequencies: empirical frequencies of {pivot} and {pivot,i}.
package dataset
