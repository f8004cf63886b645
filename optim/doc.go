// SPDX-License-Identifier: MIT

// Package optim updates kernel parameters in place from their gradients.
//
// Optimizers operate on the flat tensor views returned by
// (*kernel.Parameters).Tensors and (*kernel.Gradients).Tensors, which share
// a fixed order. Per-tensor state (moments, accumulators) is allocated on
// the first step and keyed by position, so the same parameter structure
// must be passed on every call.
//
// Update rules (g = gradient after hooks, θ = parameter):
//
//	SGD          θ ← θ − lr·g
//	MomentumSGD  v ← μ·v − lr·g;        θ ← θ + v
//	AdaGrad      h ← h + g²;            θ ← θ − lr·g/(√h + ε)
//	RMSprop      r ← α·r + (1−α)·g²;    θ ← θ − lr·g/(√r + ε)
//	Adam         m, v bias-corrected;   θ ← θ − lr·m̂/(√v̂ + ε) − λ·θ
//
// Hooks run before the rule and rewrite the gradient:
//
//	WeightDecay  g ← g + rate·θ
//	Lasso        g ← g + rate·sign(θ)
//
// Every Step clears the gradient buffers after use.
package optim
