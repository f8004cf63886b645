// SPDX-License-Identifier: MIT

package backend

import "errors"

var (
	// ErrUnknownBackend is returned for device names this build does not know.
	ErrUnknownBackend = errors.New("backend: unknown device")

	// ErrUnavailable marks a known device or precision that this build
	// cannot provide (accelerators, half precision).
	ErrUnavailable = errors.New("backend: device or precision unavailable")

	// ErrUnknownDType is returned for unrecognized precision names.
	ErrUnknownDType = errors.New("backend: unknown dtype")
)
