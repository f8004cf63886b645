// SPDX-License-Identifier: MIT
package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/shizuo-kaji/DeterminantalPointProcess/kernel"
	"github.com/shizuo-kaji/DeterminantalPointProcess/optim"
)

func tensors(vals ...float64) []kernel.Tensor {
	return []kernel.Tensor{{Name: "x", Data: vals}}
}

// TestOptimizers_DecreaseQuadratic minimizes ½‖θ‖² (gradient θ).
func TestOptimizers_DecreaseQuadratic(t *testing.T) {
	for _, name := range []string{"SGD", "MomentumSGD", "AdaGrad", "RMSprop", "Adam"} {
		t.Run(name, func(t *testing.T) {
			opt, err := optim.New(name, 0.1)
			require.NoError(t, err)
			assert.Equal(t, name, opt.Name())

			theta := []float64{1, -2, 3}
			start := floats.Norm(theta, 2)
			for k := 0; k < 100; k++ {
				grad := append([]float64(nil), theta...)
				require.NoError(t, opt.Step(tensors(theta...), tensors(grad...)))
			}
			assert.Less(t, floats.Norm(theta, 2), start/2)
		})
	}
}

func TestSGD_StepAndClearsGrads(t *testing.T) {
	opt := optim.NewSGD(0.1)
	p, g := tensors(1, 2), tensors(2, -1)
	require.NoError(t, opt.Step(p, g))
	assert.InDeltaSlice(t, []float64{0.8, 2.1}, p[0].Data, 1e-12)
	assert.Equal(t, []float64{0, 0}, g[0].Data)
}

func TestMomentumSGD_Velocity(t *testing.T) {
	opt := optim.NewMomentumSGD(0.1, 0.5)
	p := tensors(1)
	require.NoError(t, opt.Step(p, tensors(1))) // v = -0.1
	require.NoError(t, opt.Step(p, tensors(1))) // v = -0.05 - 0.1
	assert.InDelta(t, 1-0.1-0.15, p[0].Data[0], 1e-12)
}

func TestAdaGrad_FirstStep(t *testing.T) {
	opt := optim.NewAdaGrad(0.1)
	p := tensors(1)
	require.NoError(t, opt.Step(p, tensors(4)))
	assert.InDelta(t, 0.9, p[0].Data[0], 1e-8)
}

func TestRMSprop_FirstStep(t *testing.T) {
	opt := optim.NewRMSprop(0.1)
	p := tensors(1)
	require.NoError(t, opt.Step(p, tensors(4)))
	// ms = 0.01·16, step = 0.1·4/(0.4+eps)
	assert.InDelta(t, 1-0.1*4/(0.4+optim.DefaultEps), p[0].Data[0], 1e-12)
}

func TestAdam_FirstStepAndDecoupledDecay(t *testing.T) {
	opt := optim.NewAdam(0.1)
	p := tensors(1, -1)
	require.NoError(t, opt.Step(p, tensors(4, -0.5)))
	assert.InDeltaSlice(t, []float64{0.9, -0.9}, p[0].Data, 1e-6)
	assert.Equal(t, 1, opt.Steps())

	decayed := optim.NewAdam(0.1)
	optim.ApplyL2(decayed, 0.1)
	assert.Equal(t, 0.1, decayed.WeightDecayRate)
	q := tensors(1)
	require.NoError(t, decayed.Step(q, tensors(4)))
	assert.InDelta(t, 0.8, q[0].Data[0], 1e-6)
}

func TestHooks(t *testing.T) {
	opt := optim.NewSGD(0.1)
	optim.ApplyL2(opt, 0.5)
	optim.ApplyL1(opt, 0)
	p := tensors(2)
	require.NoError(t, opt.Step(p, tensors(0)))
	assert.InDelta(t, 1.9, p[0].Data[0], 1e-12)

	lasso := optim.NewSGD(0.1)
	optim.ApplyL1(lasso, 0.5)
	q := tensors(-1, 0, 1)
	require.NoError(t, lasso.Step(q, tensors(0, 0, 0)))
	assert.InDeltaSlice(t, []float64{-0.95, 0, 0.95}, q[0].Data, 1e-12)

	assert.Equal(t, "WeightDecay", optim.WeightDecay{}.Name())
	assert.Equal(t, "Lasso", optim.Lasso{}.Name())
}

func TestNew_Registry(t *testing.T) {
	opt, err := optim.New("SGD", 0)
	require.NoError(t, err)
	assert.Equal(t, optim.DefaultSGDLR, opt.LR())
	opt.SetLR(0.5)
	assert.Equal(t, 0.5, opt.LR())

	m, err := optim.New("Momentum", 0)
	require.NoError(t, err)
	assert.Equal(t, optim.NameMomentumSGD, m.Name())

	_, err = optim.New("Eve", 0.1)
	assert.ErrorIs(t, err, optim.ErrUnknownOptimizer)
	_, err = optim.New("Adam", -1)
	assert.ErrorIs(t, err, optim.ErrLearningRate)

	names := optim.Names()
	assert.Contains(t, names, "Adam")
	assert.IsNonDecreasing(t, names)
}

func TestStep_ShapeErrors(t *testing.T) {
	opt := optim.NewAdam(0.1)
	err := opt.Step(tensors(1, 2), tensors(1))
	assert.ErrorIs(t, err, optim.ErrShape)
	err = opt.Step(tensors(1), nil)
	assert.ErrorIs(t, err, optim.ErrShape)

	require.NoError(t, opt.Step(tensors(1), tensors(1)))
	err = opt.Step(tensors(1, 2), tensors(1, 2))
	assert.ErrorIs(t, err, optim.ErrShape)
}
