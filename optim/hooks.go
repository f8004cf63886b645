// SPDX-License-Identifier: MIT

package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
)

// WeightDecay adds the L2 penalty gradient rate·θ.
type WeightDecay struct{ Rate float64 }

// Name implements Hook.
func (WeightDecay) Name() string { return "WeightDecay" }

// Apply implements Hook.
func (h WeightDecay) Apply(params, grads []kernel.Tensor) {
	for i, p := range params {
		floats.AddScaled(grads[i].Data, h.Rate, p.Data)
	}
}

// Lasso adds the L1 penalty subgradient rate·sign(θ); sign(0) = 0.
type Lasso struct{ Rate float64 }

// Name implements Hook.
func (Lasso) Name() string { return "Lasso" }

// Apply implements Hook.
func (h Lasso) Apply(params, grads []kernel.Tensor) {
	for i, p := range params {
		g := grads[i].Data
		for j, x := range p.Data {
			switch {
			case x > 0:
				g[j] += h.Rate
			case x < 0:
				g[j] -= h.Rate
			}
		}
	}
}
