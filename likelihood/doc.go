// SPDX-License-Identifier: MIT

// Package likelihood turns the DPP probability law into a minibatch
// negative log-likelihood with exact gradients.
//
// Objective (batch of size N, policy-selected subsets T ⊆ batch):
//
//	loss = −(1/max(N,1)) · Σ_{S∈T, S≠∅} log det(L[S,S]) + log det(I+L)
//
// Policies:
//   - AllSubsets: every non-empty subset contributes.
//   - EvenCardinality: only non-empty subsets of even size contribute; the
//     denominator still counts every batch entry. Selected automatically
//     for kernels without an antisymmetric part (rankB == 0).
//
// Gradients flow ∂loss/∂L = −(1/N)·Σ scatter(L[S,S]⁻ᵀ) + (I+L)⁻ᵀ, then
// through kernel.Backward onto the parameters. A non-positive weight or
// normalizer aborts with the dpp degeneracy sentinels.
package likelihood
