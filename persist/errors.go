// SPDX-License-Identifier: MIT

package persist

import "errors"

var (
	// ErrSnapshotShape is the configuration error for a snapshot whose
	// dimension, ranks or hidden widths differ from the requested model.
	ErrSnapshotShape = errors.New("persist: snapshot shape does not match configuration")

	// ErrRaggedTable marks a matrix file with rows of different lengths.
	ErrRaggedTable = errors.New("persist: rows have different lengths")

	// ErrEmptyTable marks a matrix file without values.
	ErrEmptyTable = errors.New("persist: empty matrix table")

	// ErrBadValue marks a token that is not a float.
	ErrBadValue = errors.New("persist: value is not a number")
)
