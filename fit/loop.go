// SPDX-License-Identifier: MIT

package fit

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/shizuo-kaji/DeterminantalPointProcess/dataset"
	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
	"github.com/shizuo-kaji/DeterminantalPointProcess/likelihood"
	"github.com/shizuo-kaji/DeterminantalPointProcess/optim"
)

// State is the lifecycle position of a Loop.
type State int

const (
	// Init is the state of a Loop that has not run yet.
	Init State = iota
	// Running is the state while Run is iterating.
	Running
	// EarlyStopped means the validation loss stopped improving.
	EarlyStopped
	// Converged means Epochs epochs were completed.
	Converged
)

// String returns the lower-case state name used in logs.
func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case Running:
		return "running"
	case EarlyStopped:
		return "early-stopped"
	case Converged:
		return "converged"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Status is the snapshot passed to observers.
type Status struct {
	Iteration int
	Epoch     int
	// Loss is the minibatch loss of the latest iteration.
	Loss float64
	// ValLoss is the latest validation loss; valid only when Validated.
	ValLoss   float64
	Validated bool
	Elapsed   time.Duration
	Optimizer optim.Optimizer
}

// Result is the outcome of Run.
type Result struct {
	State      State
	Epochs     int
	Iterations int
	TrainLoss  float64
	// ValLoss is NaN when no validation ran.
	ValLoss float64
	Params  *kernel.Parameters
	L       *mat.Dense
}

// Loop fits params with opt over a training set.
type Loop struct {
	params *kernel.Parameters
	opt    optim.Optimizer
	train  *dataset.SerialIterator
	val    *dataset.SerialIterator
	opts   Options

	state     State
	iteration int
	epoch     int
	trainLoss float64
	valLoss   float64
	validated bool
	start     time.Time

	best  float64
	stale int
}

// New prepares a Loop in state Init.
//
// Implementation:
//   - Stage 1: validate options, optimizer and parameter structure.
//   - Stage 2: training iterator (repeating, shuffled with opts.Seed);
//     validation iterator (single pass, fixed order) over val, or over
//     train when val is empty.
//
// Errors:
//   - ErrBadOptions for invalid options, a nil optimizer or empty training data.
//   - kernel validation sentinels for malformed params.
func New(params *kernel.Parameters, opt optim.Optimizer, train, val []dataset.Subset, opts Options) (*Loop, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opt == nil {
		return nil, fmt.Errorf("nil optimizer: %w", ErrBadOptions)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(train) == 0 {
		return nil, fmt.Errorf("%w: %w", dataset.ErrEmpty, ErrBadOptions)
	}
	if len(val) == 0 {
		val = train
	}

	trainIt, err := dataset.NewSerialIterator(train, opts.BatchSize,
		dataset.WithRand(kernel.NewRand(opts.Seed)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", err, ErrBadOptions)
	}
	valIt, err := dataset.NewSerialIterator(val, opts.BatchSize,
		dataset.WithRepeat(false), dataset.WithShuffle(false))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", err, ErrBadOptions)
	}

	return &Loop{
		params:  params,
		opt:     opt,
		train:   trainIt,
		val:     valIt,
		opts:    opts,
		state:   Init,
		valLoss: math.NaN(),
		best:    math.Inf(1),
	}, nil
}

// State returns the current lifecycle state.
func (l *Loop) State() State { return l.state }

// Run trains until Epochs are complete or early stopping fires.
//
// Implementation, per iteration:
//   - draw a minibatch, compute loss and gradients (likelihood.Loss);
//   - optimizer hooks and update, which clear the gradient buffers;
//   - backend precision rounding;
//   - periodic validation, then OnIteration observers;
//   - at an epoch boundary: early-stopping check, OnEpoch observers,
//     convergence check.
//
// Errors:
//   - ErrNotRunnable when called twice.
//   - numeric degeneracy from likelihood (dpp.ErrDegenerateWeight,
//     dpp.ErrDegenerateNormalizer, kernel.ErrNonFinite) aborts the run,
//     wrapped with the iteration number. The returned Result reflects the
//     state reached so far.
func (l *Loop) Run() (Result, error) {
	if l.state != Init {
		return Result{State: l.state}, ErrNotRunnable
	}
	l.state = Running
	l.start = time.Now()

	for l.state == Running {
		batch, _ := l.train.Next()
		loss, grads, err := likelihood.Loss(l.params, batch, l.opts.Policy)
		if err != nil {
			return l.result(nil), fmt.Errorf("iteration %d: %w", l.iteration+1, err)
		}
		if err := l.opt.Step(l.params.Tensors(), grads.Tensors()); err != nil {
			return l.result(nil), fmt.Errorf("iteration %d: %w", l.iteration+1, err)
		}
		if l.opts.Backend != nil {
			l.opts.Backend.Round(l.params.Tensors())
		}
		l.iteration++
		l.trainLoss = loss

		if l.opts.EvalInterval > 0 && l.iteration%l.opts.EvalInterval == 0 {
			if err := l.validate(); err != nil {
				return l.result(nil), err
			}
		}
		st := l.status()
		for _, o := range l.opts.Observers {
			o.OnIteration(st)
		}

		if !l.train.IsNewEpoch() {
			continue
		}
		if err := l.closeEpochs(l.train.Epoch()); err != nil {
			return l.result(nil), err
		}
	}

	L, err := kernel.Build(l.params)
	if err != nil {
		return l.result(nil), err
	}
	return l.result(L), nil
}

// closeEpochs runs the epoch-end steps for every epoch completed up to
// done. A batch larger than the training set completes several epochs at
// once; each of them is checked and observed, and none past Epochs.
func (l *Loop) closeEpochs(done int) error {
	for l.state == Running && l.epoch < done {
		l.epoch++
		if err := l.checkEarlyStopping(); err != nil {
			return err
		}
		st := l.status()
		for _, o := range l.opts.Observers {
			o.OnEpoch(st)
		}
		if l.state == Running && l.epoch >= l.opts.Epochs {
			l.state = Converged
		}
	}
	return nil
}

// checkEarlyStopping validates every EarlyStopping epochs and moves to
// EarlyStopped after Patience checks without a strictly lower loss.
func (l *Loop) checkEarlyStopping() error {
	if l.opts.EarlyStopping == 0 || l.epoch%l.opts.EarlyStopping != 0 {
		return nil
	}
	if err := l.validate(); err != nil {
		return err
	}
	if l.valLoss < l.best {
		l.best = l.valLoss
		l.stale = 0
		return nil
	}
	l.stale++
	if l.stale >= l.opts.Patience {
		l.state = EarlyStopped
	}
	return nil
}

func (l *Loop) validate() error {
	v, err := likelihood.Evaluate(l.params, l.val, l.opts.Policy)
	if err != nil {
		return fmt.Errorf("validation after iteration %d: %w", l.iteration, err)
	}
	l.valLoss = v
	l.validated = true
	return nil
}

func (l *Loop) status() Status {
	return Status{
		Iteration: l.iteration,
		Epoch:     l.epoch,
		Loss:      l.trainLoss,
		ValLoss:   l.valLoss,
		Validated: l.validated,
		Elapsed:   time.Since(l.start),
		Optimizer: l.opt,
	}
}

func (l *Loop) result(L *mat.Dense) Result {
	return Result{
		State:      l.state,
		Epochs:     l.epoch,
		Iterations: l.iteration,
		TrainLoss:  l.trainLoss,
		ValLoss:    l.valLoss,
		Params:     l.params,
		L:          L,
	}
}
