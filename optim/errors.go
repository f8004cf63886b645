// SPDX-License-Identifier: MIT

package optim

import "errors"

var (
	// ErrUnknownOptimizer is returned by New for unregistered names.
	ErrUnknownOptimizer = errors.New("optim: unknown optimizer")

	// ErrShape signals parameter and gradient tensors that do not line up.
	ErrShape = errors.New("optim: parameter/gradient shape mismatch")

	// ErrLearningRate indicates a non-positive or non-finite learning rate.
	ErrLearningRate = errors.New("optim: learning rate must be finite and > 0")
)
