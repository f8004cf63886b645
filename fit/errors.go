// SPDX-License-Identifier: MIT

package fit

import "errors"

var (
	// ErrBadOptions is returned by New for an invalid configuration.
	ErrBadOptions = errors.New("fit: invalid options")

	// ErrNotRunnable is returned by Run when the loop has already run.
	ErrNotRunnable = errors.New("fit: loop is not in the Init state")
)
