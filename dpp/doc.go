// SPDX-License-Identifier: MIT

// Package dpp evaluates the determinantal probability law induced by a
// kernel matrix L over the power set of {0..dim-1}.
//
// What & Why:
//
//	For a subset S the unnormalized weight is the principal minor
//	det(L[S,S]); the same ordered index list selects rows and columns, so
//	the weight does not depend on how S is listed. The weights of all 2^dim
//	subsets sum to Z = det(I+L), which turns weights into probabilities:
//
//		P(S) = det(L[S,S]) / det(I+L),   det(L[∅,∅]) = 1.
//
//	Z must be strictly positive; otherwise L does not define a probability
//	law and every log-probability routine fails with ErrDegenerateNormalizer
//	instead of returning NaN.
//
// Contents:
//   - Principal, Weight, LogWeight: subset weights.
//   - Normalizer, LogNormalizer, Prob, LogProb: normalization.
//   - AccumulateLogWeight, AccumulateLogNormalizer: ∂log det/∂L = M⁻ᵀ
//     scattered into a caller-owned gradient buffer.
//   - Report: pivot inclusion / co-inclusion probabilities.
//   - PowerSetMass: exhaustive Σ P(S) for small universes.
package dpp
