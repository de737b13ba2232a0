package optim_test

import (
	"testing"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSGD_SimpleUpdate tests param -= lr * grad.
func TestSGD_SimpleUpdate(t *testing.T) {
	x := autodiff.NewValue(2)
	opt := optim.NewSGD([]*autodiff.Value{x}, optim.SGDConfig{LR: 0.1})

	// y = 3x, dy/dx = 3
	y := autodiff.Mul(x, 3)
	require.NoError(t, y.Backward())
	opt.Step()

	assert.InDelta(t, 2.0-0.1*3, x.Data(), 1e-12)
	assert.Equal(t, 3.0, x.Grad(), "Step must not touch gradients")

	opt.ZeroGrad()
	assert.Zero(t, x.Grad())
}

// TestSGD_WithMomentum tests velocity accumulation.
func TestSGD_WithMomentum(t *testing.T) {
	x := autodiff.NewValue(1)
	opt := optim.NewSGD([]*autodiff.Value{x}, optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	for range 2 {
		opt.ZeroGrad()
		y := autodiff.Mul(x, 1) // constant gradient 1
		require.NoError(t, y.Backward())
		opt.Step()
	}

	// v1 = 1, x = 0.9; v2 = 0.9 + 1 = 1.9, x = 0.9 - 0.19 = 0.71
	assert.InDelta(t, 0.71, x.Data(), 1e-12)
}

// TestSGD_Defaults tests the default learning rate.
func TestSGD_Defaults(t *testing.T) {
	opt := optim.NewSGD(nil, optim.SGDConfig{})
	assert.Equal(t, 0.01, opt.GetLR())

	opt.SetLR(0.5)
	assert.Equal(t, 0.5, opt.GetLR())
}

// TestSGD_Minimizes tests convergence on (x - 3)².
func TestSGD_Minimizes(t *testing.T) {
	x := autodiff.NewValue(-5)
	var opt optim.Optimizer = optim.NewSGD([]*autodiff.Value{x}, optim.SGDConfig{LR: 0.1})

	for range 200 {
		opt.ZeroGrad()
		loss := autodiff.Pow(autodiff.Sub(x, 3), 2)
		require.NoError(t, loss.Backward())
		opt.Step()
	}

	assert.InDelta(t, 3.0, x.Data(), 1e-6)
}

// TestAdam_FirstStep tests that the first bias-corrected step moves by ~lr.
func TestAdam_FirstStep(t *testing.T) {
	x := autodiff.NewValue(1)
	opt := optim.NewAdam([]*autodiff.Value{x}, optim.AdamConfig{LR: 0.01})

	y := autodiff.Mul(x, 5)
	require.NoError(t, y.Backward())
	opt.Step()

	// m̂ = g, v̂ = g², so the step is lr * g / |g|.
	assert.InDelta(t, 0.99, x.Data(), 1e-6)
	assert.Equal(t, 0.01, opt.GetLR())
}

// TestAdam_Minimizes tests convergence on (x + 2)².
func TestAdam_Minimizes(t *testing.T) {
	x := autodiff.NewValue(4)
	var opt optim.Optimizer = optim.NewAdam([]*autodiff.Value{x}, optim.AdamConfig{LR: 0.1})

	for range 500 {
		opt.ZeroGrad()
		loss := autodiff.Pow(autodiff.Add(x, 2), 2)
		require.NoError(t, loss.Backward())
		opt.Step()
	}

	assert.InDelta(t, -2.0, x.Data(), 1e-2)
}
