// SPDX-License-Identifier: MIT

package optim

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
)

// Hyper-parameter defaults.
const (
	DefaultMomentum = 0.9
	DefaultRMSAlpha = 0.99
	DefaultBeta1    = 0.9
	DefaultBeta2    = 0.999
	DefaultEps      = 1e-8
)

// SGD is plain gradient descent.
type SGD struct{ base }

// NewSGD returns SGD with learning rate lr.
func NewSGD(lr float64) *SGD { return &SGD{base{name: NameSGD, lr: lr}} }

// Step implements Optimizer.
func (o *SGD) Step(params, grads []kernel.Tensor) error {
	if err := checkAligned(params, grads); err != nil {
		return err
	}
	o.runHooks(params, grads)
	for i, p := range params {
		floats.AddScaled(p.Data, -o.lr, grads[i].Data)
	}
	zeroGrads(grads)
	return nil
}

// MomentumSGD is gradient descent with a velocity term.
type MomentumSGD struct {
	base
	Momentum float64
	v        [][]float64
}

// NewMomentumSGD returns MomentumSGD with learning rate lr and momentum mu.
func NewMomentumSGD(lr, mu float64) *MomentumSGD {
	return &MomentumSGD{base: base{name: NameMomentumSGD, lr: lr}, Momentum: mu}
}

// Step implements Optimizer.
func (o *MomentumSGD) Step(params, grads []kernel.Tensor) error {
	if err := checkAligned(params, grads); err != nil {
		return err
	}
	v, err := slots(o.v, params)
	if err != nil {
		return err
	}
	o.v = v
	o.runHooks(params, grads)
	for i, p := range params {
		floats.Scale(o.Momentum, v[i])
		floats.AddScaled(v[i], -o.lr, grads[i].Data)
		floats.Add(p.Data, v[i])
	}
	zeroGrads(grads)
	return nil
}

// AdaGrad scales steps by the accumulated squared gradient.
type AdaGrad struct {
	base
	Eps float64
	h   [][]float64
}

// NewAdaGrad returns AdaGrad with learning rate lr.
func NewAdaGrad(lr float64) *AdaGrad {
	return &AdaGrad{base: base{name: NameAdaGrad, lr: lr}, Eps: DefaultEps}
}

// Step implements Optimizer.
func (o *AdaGrad) Step(params, grads []kernel.Tensor) error {
	if err := checkAligned(params, grads); err != nil {
		return err
	}
	h, err := slots(o.h, params)
	if err != nil {
		return err
	}
	o.h = h
	o.runHooks(params, grads)
	for i, p := range params {
		g := grads[i].Data
		for j := range p.Data {
			h[i][j] += g[j] * g[j]
			p.Data[j] -= o.lr * g[j] / (math.Sqrt(h[i][j]) + o.Eps)
		}
	}
	zeroGrads(grads)
	return nil
}

// RMSprop scales steps by a running average of squared gradients.
type RMSprop struct {
	base
	Alpha float64
	Eps   float64
	ms    [][]float64
}

// NewRMSprop returns RMSprop with learning rate lr.
func NewRMSprop(lr float64) *RMSprop {
	return &RMSprop{base: base{name: NameRMSprop, lr: lr}, Alpha: DefaultRMSAlpha, Eps: DefaultEps}
}

// Step implements Optimizer.
func (o *RMSprop) Step(params, grads []kernel.Tensor) error {
	if err := checkAligned(params, grads); err != nil {
		return err
	}
	ms, err := slots(o.ms, params)
	if err != nil {
		return err
	}
	o.ms = ms
	o.runHooks(params, grads)
	for i, p := range params {
		g := grads[i].Data
		for j := range p.Data {
			ms[i][j] = o.Alpha*ms[i][j] + (1-o.Alpha)*g[j]*g[j]
			p.Data[j] -= o.lr * g[j] / (math.Sqrt(ms[i][j]) + o.Eps)
		}
	}
	zeroGrads(grads)
	return nil
}

// Adam keeps bias-corrected first and second moments. WeightDecayRate
// applies decoupled L2 decay (θ ← θ − λ·θ) after the moment step.
type Adam struct {
	base
	Beta1, Beta2    float64
	Eps             float64
	WeightDecayRate float64

	m, v [][]float64
	t    int
}

// NewAdam returns Adam with step size alpha.
func NewAdam(alpha float64) *Adam {
	return &Adam{
		base:  base{name: NameAdam, lr: alpha},
		Beta1: DefaultBeta1,
		Beta2: DefaultBeta2,
		Eps:   DefaultEps,
	}
}

// SetWeightDecayRate implements DecoupledDecay.
func (o *Adam) SetWeightDecayRate(rate float64) { o.WeightDecayRate = rate }

// Steps returns the number of updates applied so far.
func (o *Adam) Steps() int { return o.t }

// Step implements Optimizer.
func (o *Adam) Step(params, grads []kernel.Tensor) error {
	if err := checkAligned(params, grads); err != nil {
		return err
	}
	m, err := slots(o.m, params)
	if err != nil {
		return err
	}
	v, err := slots(o.v, params)
	if err != nil {
		return err
	}
	o.m, o.v = m, v
	o.runHooks(params, grads)

	o.t++
	b1, b2 := o.Beta1, o.Beta2
	b1Corr := 1 - math.Pow(b1, float64(o.t))
	b2Corr := 1 - math.Pow(b2, float64(o.t))
	for i, p := range params {
		g := grads[i].Data
		mi, vi := m[i], v[i]
		for j := range p.Data {
			mi[j] = b1*mi[j] + (1-b1)*g[j]
			vi[j] = b2*vi[j] + (1-b2)*g[j]*g[j]
			mhat := mi[j] / b1Corr
			vhat := vi[j] / b2Corr
			p.Data[j] -= o.lr*mhat/(math.Sqrt(vhat)+o.Eps) + o.WeightDecayRate*p.Data[j]
		}
	}
	zeroGrads(grads)
	return nil
}
