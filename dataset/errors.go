// SPDX-License-Identifier: MIT

package dataset

import "errors"

var (
	// ErrBadToken marks a token that is not a base-10 integer.
	ErrBadToken = errors.New("dataset: item is not an integer")

	// ErrNegativeItem marks an item index below zero.
	ErrNegativeItem = errors.New("dataset: negative item index")

	// ErrDuplicateItem marks an item listed twice on one line.
	ErrDuplicateItem = errors.New("dataset: duplicate item in subset")

	// ErrItemOutOfRange marks an item index >= dim.
	ErrItemOutOfRange = errors.New("dataset: item index out of range")

	// ErrDimensionTooSmall is the configuration error for dim <= MaxID.
	ErrDimensionTooSmall = errors.New("dataset: dimension smaller than the largest item index")

	// ErrBatchSize indicates a non-positive minibatch size.
	ErrBatchSize = errors.New("dataset: batch size must be > 0")

	// ErrEmpty indicates an iterator over zero subsets.
	ErrEmpty = errors.New("dataset: no subsets")
)
