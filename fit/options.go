// SPDX-License-Identifier: MIT

package fit

import (
	"fmt"

	"github.com/shizuo-kaji/DeterminantalPointProcess/backend"
	"github.com/shizuo-kaji/DeterminantalPointProcess/likelihood"
)

// Defaults used by DefaultOptions.
const (
	DefaultEpochs       = 200
	DefaultBatchSize    = 20
	DefaultEvalInterval = 200
	DefaultPatience     = 3
)

// Options configures a Loop.
//
// Epochs        – number of training epochs (> 0).
// BatchSize     – subsets per minibatch (> 0).
// EvalInterval  – validate every EvalInterval iterations; 0 disables the
//
//	periodic evaluation (early-stopping checks still validate).
//
// EarlyStopping – epochs between early-stopping checks; 0 disables.
// Patience      – consecutive checks without improvement before stopping.
// Policy        – which subsets are scored; see likelihood.PolicyFor.
// Seed          – shuffling seed (0 selects kernel.DefaultSeed).
// Backend       – precision policy applied after each step; nil keeps fp64.
// Observers     – notified in order after each iteration and epoch.
type Options struct {
	Epochs        int
	BatchSize     int
	EvalInterval  int
	EarlyStopping int
	Patience      int
	Policy        likelihood.Policy
	Seed          int64
	Backend       *backend.Backend
	Observers     []Observer
}

// DefaultOptions returns the defaults of the fitting command:
//   - Epochs: 200, BatchSize: 20, EvalInterval: 200.
//   - EarlyStopping: 0 (disabled), Patience: 3.
//   - Policy: AllSubsets; callers normally set likelihood.PolicyFor(rankB).
func DefaultOptions() Options {
	return Options{
		Epochs:       DefaultEpochs,
		BatchSize:    DefaultBatchSize,
		EvalInterval: DefaultEvalInterval,
		Patience:     DefaultPatience,
		Policy:       likelihood.AllSubsets,
	}
}

// validate reports the first invalid field, wrapped in ErrBadOptions.
func (o Options) validate() error {
	switch {
	case o.Epochs <= 0:
		return fmt.Errorf("epochs %d: %w", o.Epochs, ErrBadOptions)
	case o.BatchSize <= 0:
		return fmt.Errorf("batch size %d: %w", o.BatchSize, ErrBadOptions)
	case o.EvalInterval < 0:
		return fmt.Errorf("eval interval %d: %w", o.EvalInterval, ErrBadOptions)
	case o.EarlyStopping < 0:
		return fmt.Errorf("early stopping %d: %w", o.EarlyStopping, ErrBadOptions)
	case o.EarlyStopping > 0 && o.Patience <= 0:
		return fmt.Errorf("patience %d: %w", o.Patience, ErrBadOptions)
	case o.Policy != likelihood.AllSubsets && o.Policy != likelihood.EvenCardinality:
		return fmt.Errorf("policy %d: %w", o.Policy, ErrBadOptions)
	}
	for i, obs := range o.Observers {
		if obs == nil {
			return fmt.Errorf("observer %d is nil: %w", i, ErrBadOptions)
		}
	}
	return nil
}
