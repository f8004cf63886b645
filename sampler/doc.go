// SPDX-License-Identifier: MIT

// Package sampler generates synthetic subset datasets.
//
// Two generators are provided:
//
//   - Random: a baseline that ignores any kernel. Each sample is the first
//     m items of a fresh uniform permutation, m uniform in 1..rankV.
//   - Exact: a deterministic enumeration of the DPP law. With Z = det(I+L)
//     the empty set is emitted round(n/Z) times, then every combination b
//     of size 1..maxSize, in lexicographic order, is emitted
//     round(n·det(L[b,b])/Z) times. Rounding is half-to-even and negative
//     counts are dropped.
//
// Exact does not renormalize: the number of emitted subsets drifts from n
// by the accumulated rounding error and by the mass of subsets larger than
// maxSize. Stats exposes the drift; it is logged, never returned as an
// error.
package sampler
