// SPDX-License-Identifier: MIT

package sampler

import "errors"

var (
	// ErrRank is returned by Random when rankV < 1.
	ErrRank = errors.New("sampler: random mode needs rankV >= 1")

	// ErrCount indicates a negative sample count.
	ErrCount = errors.New("sampler: sample count must be >= 0")

	// ErrDim indicates a non-positive universe size.
	ErrDim = errors.New("sampler: dimension must be > 0")

	// ErrMaxSize indicates a negative maximum subset size.
	ErrMaxSize = errors.New("sampler: max subset size must be >= 0")
)
