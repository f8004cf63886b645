// SPDX-License-Identifier: MIT
// Package dpp: sentinel error set. Every exported routine returns these
// (optionally wrapped with an operation tag); match via errors.Is.

package dpp

import (
	"errors"
	"fmt"
)

var (
	// ErrNilKernel indicates a nil kernel matrix.
	ErrNilKernel = errors.New("dpp: nil kernel")

	// ErrNonSquare signals a kernel that is not square.
	ErrNonSquare = errors.New("dpp: kernel is not square")

	// ErrOutOfRange indicates a subset item outside [0, dim).
	ErrOutOfRange = errors.New("dpp: item index out of range")

	// ErrDegenerateNormalizer is the fatal numeric error for det(I+L) <= 0:
	// the kernel does not define a probability law.
	ErrDegenerateNormalizer = errors.New("dpp: det(I+L) <= 0, kernel is degenerate")

	// ErrDegenerateWeight signals det(L[S,S]) <= 0 where a logarithm is
	// required; the log-likelihood of S is undefined.
	ErrDegenerateWeight = errors.New("dpp: det(L[S,S]) <= 0, log weight undefined")

	// ErrGradShape signals a gradient buffer whose shape differs from L.
	ErrGradShape = errors.New("dpp: gradient buffer shape mismatch")

	// ErrTooLarge is returned by exhaustive routines for universes that
	// cannot be enumerated.
	ErrTooLarge = errors.New("dpp: universe too large to enumerate")
)

// Operation tags.
const (
	opPrincipal     = "Principal"
	opWeight        = "Weight"
	opLogWeight     = "LogWeight"
	opNormalizer    = "Normalizer"
	opLogNormalizer = "LogNormalizer"
	opReport        = "Report"
	opPowerSet      = "PowerSetMass"
)

// dppErrorf wraps err with an operation tag. Call only with a non-nil err.
func dppErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
