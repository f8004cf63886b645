// SPDX-License-Identifier: MIT

// Package kernel builds the DPP kernel matrix L from its learnable low-rank
// factors and maps gradients with respect to L back onto those factors.
//
// What & Why:
//
//	A kernel is never stored on its own. It is derived on every evaluation
//	from a Parameters aggregate:
//
//		L = V·diag(exp(h))·Vᵀ + (B·Cᵀ − C·Bᵀ)
//
//	The symmetric term V·Vᵀ is positive semi-definite by construction; the
//	antisymmetric term has a zero diagonal and only breaks the symmetry of
//	the off-diagonal entries. Either term may be absent (rank 0). The
//	optional reweighting vector h is the output of a small tanh stack
//	evaluated on a fixed dummy input, so it behaves as a single learned
//	scaling of the columns of V rather than a per-sample quantity.
//
// Contents:
//   - Parameters / Layer / Gradients: plain records of gonum matrices.
//   - NewParameters: seeded random initialization (uniform on [-2, 2]).
//   - Build: Parameters → L (pure).
//   - Backward: ∂loss/∂L → Gradients (reverse mode through the construction).
//   - NewRand / Perm: deterministic randomness shared by fitting and sampling.
//
// Errors:
//   - All failures are sentinel errors from errors.go, wrapped with the
//     operation name; match them with errors.Is.
//
// Complexity:
//
//	Build is O(dim²·(rankV+rankB)); Backward is of the same order.
package kernel
