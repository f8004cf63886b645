// SPDX-License-Identifier: MIT
// Package kernel: sentinel error set.
// All constructors and kernels return these sentinels (optionally wrapped
// with an operation tag); tests match them via errors.Is. No function in
// this package panics on user-supplied parameters.

package kernel

import (
	"errors"
	"fmt"
)

var (
	// ErrBadDim is returned when the item universe size is not positive.
	ErrBadDim = errors.New("kernel: dimension must be > 0")

	// ErrRank signals a negative rank request.
	ErrRank = errors.New("kernel: rank must be >= 0")

	// ErrFactorPair is returned when exactly one of the antisymmetric
	// factors B, C is configured. They must be both present or both absent.
	ErrFactorPair = errors.New("kernel: B and C must be configured together")

	// ErrFactorShape indicates a factor whose row count differs from Dim,
	// or B and C with different column counts.
	ErrFactorShape = errors.New("kernel: factor shape does not match dimension/rank")

	// ErrHiddenShape indicates an inconsistent hidden layer chain
	// (non-positive width, wrong input width or bias length).
	ErrHiddenShape = errors.New("kernel: hidden layer shapes are inconsistent")

	// ErrHiddenWidth indicates that the last hidden layer cannot scale V:
	// its width must equal rankV (per-column scaling) or 1 (uniform scaling).
	ErrHiddenWidth = errors.New("kernel: last hidden width must equal rankV or 1")

	// ErrGradShape is returned by Backward when ∂loss/∂L is not Dim×Dim.
	ErrGradShape = errors.New("kernel: gradient shape does not match kernel")

	// ErrNonFinite signals NaN or ±Inf in a built kernel.
	ErrNonFinite = errors.New("kernel: NaN or Inf in kernel")

	// ErrNilParameters is returned when a nil *Parameters is passed in.
	ErrNilParameters = errors.New("kernel: nil parameters")
)

// Operation tags used in error wrapping.
const (
	opNew      = "NewParameters"
	opValidate = "Validate"
	opBuild    = "Build"
	opBackward = "Backward"
)

// kernelErrorf wraps err with an operation tag, preserving it for errors.Is.
// Call only with a non-nil err.
func kernelErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
