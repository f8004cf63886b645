// SPDX-License-Identifier: MIT

package sampler

// Copies exposes copies to the external test package.
var Copies = copies
