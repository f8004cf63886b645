// SPDX-License-Identifier: MIT

package likelihood

import "errors"

// ErrUnknownPolicy is returned by ParsePolicy for unrecognized names.
var ErrUnknownPolicy = errors.New("likelihood: unknown parity policy")

// ErrNilIterator is returned by Evaluate without an iterator.
var ErrNilIterator = errors.New("likelihood: nil iterator")
