// SPDX-License-Identifier: MIT

package optim

import (
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
)

// Optimizer applies one update per Step.
type Optimizer interface {
	// Name returns the registry name.
	Name() string
	// LR returns the current learning rate (Adam's alpha).
	LR() float64
	// SetLR replaces the learning rate; schedules call this between steps.
	SetLR(lr float64)
	// AddHook appends a gradient hook, run in insertion order.
	AddHook(h Hook)
	// Step runs the hooks, updates params in place and clears grads.
	Step(params, grads []kernel.Tensor) error
}

// Hook rewrites gradients before an update.
type Hook interface {
	Name() string
	Apply(params, grads []kernel.Tensor)
}

// DecoupledDecay is implemented by optimizers that fold L2 regularization
// into the update rule instead of the gradient.
type DecoupledDecay interface {
	SetWeightDecayRate(rate float64)
}

// Registry names.
const (
	NameSGD         = "SGD"
	NameMomentumSGD = "MomentumSGD"
	NameAdaGrad     = "AdaGrad"
	NameRMSprop     = "RMSprop"
	NameAdam        = "Adam"
)

// Default learning rates, used when New receives lr == 0.
const (
	DefaultSGDLR      = 0.01
	DefaultMomentumLR = 0.01
	DefaultAdaGradLR  = 0.001
	DefaultRMSpropLR  = 0.01
	DefaultAdamAlpha  = 0.001
)

var registry = map[string]func(lr float64) Optimizer{
	NameSGD:         func(lr float64) Optimizer { return NewSGD(orLR(lr, DefaultSGDLR)) },
	NameMomentumSGD: func(lr float64) Optimizer { return NewMomentumSGD(orLR(lr, DefaultMomentumLR), DefaultMomentum) },
	"Momentum":      func(lr float64) Optimizer { return NewMomentumSGD(orLR(lr, DefaultMomentumLR), DefaultMomentum) },
	NameAdaGrad:     func(lr float64) Optimizer { return NewAdaGrad(orLR(lr, DefaultAdaGradLR)) },
	NameRMSprop:     func(lr float64) Optimizer { return NewRMSprop(orLR(lr, DefaultRMSpropLR)) },
	NameAdam:        func(lr float64) Optimizer { return NewAdam(orLR(lr, DefaultAdamAlpha)) },
}

func orLR(lr, def float64) float64 {
	if lr == 0 {
		return def
	}
	return lr
}

// New returns the optimizer registered under name with learning rate lr
// (0 selects the optimizer's default).
//
// Errors: ErrUnknownOptimizer, ErrLearningRate.
func New(name string, lr float64) (Optimizer, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q (have %v): %w", name, Names(), ErrUnknownOptimizer)
	}
	if lr < 0 || math.IsNaN(lr) || math.IsInf(lr, 0) {
		return nil, fmt.Errorf("lr %v: %w", lr, ErrLearningRate)
	}
	return mk(lr), nil
}

// Names lists the registered optimizer names in sorted order.
func Names() []string {
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}

// ApplyL2 configures L2 regularization: decoupled decay when opt supports
// it, a WeightDecay hook otherwise. rate <= 0 is a no-op.
func ApplyL2(opt Optimizer, rate float64) {
	if rate <= 0 {
		return
	}
	if d, ok := opt.(DecoupledDecay); ok {
		d.SetWeightDecayRate(rate)
		return
	}
	opt.AddHook(WeightDecay{Rate: rate})
}

// ApplyL1 adds a Lasso hook; rate <= 0 is a no-op.
func ApplyL1(opt Optimizer, rate float64) {
	if rate <= 0 {
		return
	}
	opt.AddHook(Lasso{Rate: rate})
}

// base carries the learning rate and hooks shared by every rule.
type base struct {
	name  string
	lr    float64
	hooks []Hook
}

func (b *base) Name() string     { return b.name }
func (b *base) LR() float64      { return b.lr }
func (b *base) SetLR(lr float64) { b.lr = lr }
func (b *base) AddHook(h Hook)   { b.hooks = append(b.hooks, h) }

func (b *base) runHooks(p, g []kernel.Tensor) {
	for _, h := range b.hooks {
		h.Apply(p, g)
	}
}

// checkAligned verifies that params and grads describe the same tensors.
func checkAligned(params, grads []kernel.Tensor) error {
	if len(params) != len(grads) {
		return fmt.Errorf("%d params, %d grads: %w", len(params), len(grads), ErrShape)
	}
	for i := range params {
		if len(params[i].Data) != len(grads[i].Data) {
			return fmt.Errorf("tensor %s: %d vs %d: %w", params[i].Name, len(params[i].Data), len(grads[i].Data), ErrShape)
		}
	}
	return nil
}

// slots lazily allocates one zero buffer per tensor.
func slots(state [][]float64, params []kernel.Tensor) ([][]float64, error) {
	if state == nil {
		state = make([][]float64, len(params))
		for i, p := range params {
			state[i] = make([]float64, len(p.Data))
		}
		return state, nil
	}
	if len(state) != len(params) {
		return nil, fmt.Errorf("state for %d tensors, got %d: %w", len(state), len(params), ErrShape)
	}
	for i, p := range params {
		if len(state[i]) != len(p.Data) {
			return nil, fmt.Errorf("tensor %s changed size: %w", p.Name, ErrShape)
		}
	}
	return state, nil
}

// zeroGrads clears every gradient buffer.
func zeroGrads(grads []kernel.Tensor) {
	for _, g := range grads {
		clear(g.Data)
	}
}
