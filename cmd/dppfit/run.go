// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/timtadh/data-structures/errors"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/shizuo-kaji/DeterminantalPointProcess/backend"
	"github.com/shizuo-kaji/DeterminantalPointProcess/dataset"
	"github.com/shizuo-kaji/DeterminantalPointProcess/dpp"
	"github.com/shizuo-kaji/DeterminantalPointProcess/fit"
	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
	"github.com/shizuo-kaji/DeterminantalPointProcess/likelihood"
	"github.com/shizuo-kaji/DeterminantalPointProcess/optim"
	"github.com/shizuo-kaji/DeterminantalPointProcess/persist"
)

// reportDigits is the rounding of the printed inclusion vectors.
const reportDigits = 5

// lrShiftFactor halves the learning rate at each shift.
const lrShiftFactor = 0.5

// run executes one fitting session and prints the inclusion report to out.
//
// Implementation:
//   - Stage 1: load and validate data; dim defaults to MaxID+1.
//   - Stage 2: resolve backend, policy and optimizer; create or load the
//     parameters. All configuration errors surface here, before any
//     determinant is computed.
//   - Stage 3: create the run directory and save args.json.
//   - Stage 4: fit unless Predict; save log.json.
//   - Stage 5: save model.json and the CSV tables, print the report.
func run(a *args, out io.Writer) error {
	train, err := dataset.Load(a.Train)
	if err != nil {
		return err
	}
	if a.Dim == 0 {
		a.Dim = train.MinDim()
	}
	if err := train.Validate(a.Dim); err != nil {
		return err
	}
	errors.Logf("INFO", "data loaded: %s, %d subsets, max id %d", a.Train, train.Len(), train.MaxID)

	var val []dataset.Subset
	if a.Val != "" {
		v, err := dataset.Load(a.Val)
		if err != nil {
			return err
		}
		if err := v.Validate(a.Dim); err != nil {
			return err
		}
		val = v.Subsets
		errors.Logf("INFO", "validation data: %s, %d subsets", a.Val, v.Len())
	}

	dtype, err := backend.ParseDType(a.DType)
	if err != nil {
		return err
	}
	be, err := backend.Select(a.Device, dtype)
	if err != nil {
		return err
	}
	a.Backend = be.String()
	errors.Logf("INFO", "backend: %v", be)

	policy, err := likelihood.ParsePolicy(a.Parity, a.RankB)
	if err != nil {
		return err
	}
	opt, err := optim.New(a.Optimizer, a.LearningRate)
	if err != nil {
		return err
	}
	optim.ApplyL2(opt, a.WeightDecayL2)
	optim.ApplyL1(opt, a.WeightDecayL1)

	p, err := parameters(a)
	if err != nil {
		return err
	}
	be.Round(p.Tensors())
	if a.Pivot >= a.Dim {
		return fmt.Errorf("pivot %d, dim %d: %w", a.Pivot, a.Dim, dataset.ErrItemOutOfRange)
	}

	dir, err := persist.RunDir(a.Outdir, time.Now())
	if err != nil {
		return err
	}
	a.RunID = uuid.New().String()
	if err := persist.WriteJSON(filepath.Join(dir, persist.FileArgs), a); err != nil {
		return err
	}
	errors.Logf("INFO", "run %s: %s, policy %v, optimizer %s lr %g", a.RunID, dir, policy, opt.Name(), opt.LR())

	if !a.Predict {
		report := fit.NewLogReport()
		opts := fit.DefaultOptions()
		opts.Epochs = a.Epoch
		opts.BatchSize = a.BatchSize
		opts.EvalInterval = a.VisFreq
		opts.EarlyStopping = a.EarlyStopping
		opts.Patience = a.Patience
		opts.Policy = policy
		opts.Seed = a.Seed
		opts.Backend = be
		opts.Observers = []fit.Observer{
			report,
			fit.ExponentialShift{Factor: lrShiftFactor, Every: lo.Ternary(a.LRShift > 0, a.LRShift, a.Epoch)},
		}

		loop, err := fit.New(p, opt, train.Subsets, val, opts)
		if err != nil {
			return err
		}
		res, runErr := loop.Run()
		if err := persist.WriteJSON(filepath.Join(dir, persist.FileLog), report.Entries()); err != nil {
			return err
		}
		if runErr != nil {
			return runErr
		}
		errors.Logf("INFO", "%v after %d epochs (%d iterations), loss %.6f", res.State, res.Epochs, res.Iterations, res.TrainLoss)
	}

	L, err := kernel.Build(p)
	if err != nil {
		return err
	}
	if err := persist.SaveSnapshot(filepath.Join(dir, persist.FileModel), p); err != nil {
		return err
	}
	if err := persist.SaveResult(dir, p, L); err != nil {
		return err
	}

	model, err := dpp.Report(L, a.Pivot)
	if err != nil {
		return err
	}
	data, err := dataset.PivotFrequencies(train.Subsets, a.Dim, a.Pivot)
	if err != nil {
		return err
	}
	round := func(x float64, _ int) float64 { return scalar.Round(x, reportDigits) }
	fmt.Fprintln(out, "\n Probability of DPP")
	fmt.Fprintln(out, lo.Map(model, round))
	fmt.Fprintln(out, "\n Probability of data")
	fmt.Fprintln(out, lo.Map(data, round))
	return nil
}

// parameters loads the --models snapshot or draws fresh parameters.
func parameters(a *args) (*kernel.Parameters, error) {
	if a.Models == "" {
		return kernel.NewParameters(a.Dim, a.RankV, a.RankB, a.Hidden, kernel.NewRand(a.Seed))
	}
	p, err := persist.LoadSnapshot(a.Models)
	if err != nil {
		return nil, err
	}
	if err := persist.CheckShape(p, a.Dim, a.RankV, a.RankB, a.Hidden); err != nil {
		return nil, err
	}
	errors.Logf("INFO", "model loaded: %s", a.Models)
	return p, nil
}
