// SPDX-License-Identifier: MIT

// Package determinantal fits and samples Determinantal Point Processes
// (DPPs) over a finite universe of items {0, ..., dim-1}.
//
// A DPP with kernel L assigns a subset S the probability
//
//	P(S) = det(L[S,S]) / det(I + L),
//
// where L[S,S] is the principal submatrix selected by S (det of the empty
// matrix is 1). The kernel is built from learnable low-rank factors:
//
//	L = V·diag(exp(h))·Vᵀ + (B·Cᵀ − C·Bᵀ)
//
// The first term is symmetric positive semi-definite; h is the output of an
// optional tanh stack fed with a constant input. The second term is
// antisymmetric and lets the model express item pairs that attract.
//
// Packages, leaves first:
//
//	backend/    — device and precision selection, CPU feature report
//	kernel/     — Parameters, kernel construction and its reverse-mode gradient
//	dpp/        — principal minors, normalizer, log-probabilities, log-det gradients
//	dataset/    — subset text format, minibatch iterator, empirical frequencies
//	likelihood/ — minibatch negative log-likelihood and validation
//	optim/      — SGD, MomentumSGD, AdaGrad, RMSprop, Adam; decay hooks
//	fit/        — the fitting loop, early stopping, observers
//	sampler/    — random and exact power-set generation
//	persist/    — CSV kernel tables, JSON snapshots, run directories
//
// Commands:
//
//	cmd/dppfit — fit a kernel to a dataset and report inclusion probabilities
//	cmd/dppgen — generate synthetic datasets
//
// All randomness flows through explicit *rand.Rand values created by
// kernel.NewRand, so a run is reproducible from its seed.
package determinantal
