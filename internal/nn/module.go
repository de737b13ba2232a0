// Package nn implements a small multilayer perceptron on top of the scalar
// autodiff engine.
//
// This package provides:
//   - Module interface: anything exposing trainable parameters
//   - Neuron, Layer, MLP: fully connected building blocks
//   - Losses: MSE and hinge loss built from engine operations
//   - State dicts: stable parameter names for checkpointing
//
// Every parameter is a leaf *autodiff.Value. Forward passes build a fresh
// graph over those leaves; Backward on the loss fills their gradients.
package nn

import (
	"errors"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// ErrInputSize is returned when an input vector does not match a layer's
// fan-in.
var ErrInputSize = errors.New("nn: input size mismatch")

// Module is the base interface for all network components.
type Module interface {
	// Parameters returns all trainable leaves of the module, in a stable
	// order.
	Parameters() []*autodiff.Value

	// ZeroGrad resets the gradient of every parameter.
	ZeroGrad()
}

// zeroGrad resets the gradients of params.
func zeroGrad(params []*autodiff.Value) {
	for _, p := range params {
		p.ZeroGrad()
	}
}

// Inputs wraps raw features as leaves ready to feed a Module.
func Inputs(xs []float64) []*autodiff.Value {
	return autodiff.Values(xs...)
}
