// SPDX-License-Identifier: MIT

// Package fit drives maximum-likelihood fitting of DPP kernel parameters.
//
// A Loop draws minibatches from a repeating, shuffled iterator, computes the
// negative log-likelihood and its gradient (package likelihood), lets an
// optimizer (package optim) update the parameters in place and applies the
// backend precision policy. Validation runs on a non-repeating iterator
// every EvalInterval iterations and at every early-stopping check.
//
// States:
//
//	Init ──Run──▶ Running ──Epochs reached──▶ Converged
//	                 │
//	                 └──Patience exhausted──▶ EarlyStopped
//
// Numeric degeneracy or configuration errors abort Run with an error; the
// state stays Running in that case.
//
// Observers receive a Status after every iteration and after every epoch.
// LogReport and ExponentialShift are the provided observers.
//
// A Loop is single-use and not safe for concurrent use.
package fit
