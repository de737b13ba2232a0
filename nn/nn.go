// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand/v2"

	"github.com/born-ml/micrograd/autodiff"
	"github.com/born-ml/micrograd/internal/nn"
)

// Module is anything that owns trainable parameters.
type Module = nn.Module

// ErrInputSize is returned when an input vector has the wrong length.
var ErrInputSize = nn.ErrInputSize

// Neuron computes w·x + b, followed by ReLU unless it is linear.
type Neuron = nn.Neuron

// NewNeuron creates a neuron with nin inputs. Weights and bias are drawn
// uniformly from [-1, 1).
func NewNeuron(nin int, linear bool, rng *rand.Rand) *Neuron {
	return nn.NewNeuron(nin, linear, rng)
}

// Layer is a list of neurons sharing the same inputs.
type Layer = nn.Layer

// NewLayer creates nout neurons with nin inputs each.
func NewLayer(nin, nout int, linear bool, rng *rand.Rand) *Layer {
	return nn.NewLayer(nin, nout, linear, rng)
}

// MLP is a multi-layer perceptron with a linear output layer.
type MLP = nn.MLP

// NewMLP creates an MLP from layer sizes, inputs first.
//
// Example:
//
//	model, err := nn.NewMLP([]int{3, 4, 4, 1}, rand.New(rand.NewPCG(1, 2)))
func NewMLP(sizes []int, rng *rand.Rand) (*MLP, error) {
	return nn.NewMLP(sizes, rng)
}

// Inputs wraps a float vector as leaf Values.
func Inputs(xs []float64) []*autodiff.Value {
	return nn.Inputs(xs)
}

// Loss functions

// LossFunc reduces predictions and targets to a scalar loss.
type LossFunc = nn.LossFunc

// MSELoss returns the mean squared error.
func MSELoss(preds []*autodiff.Value, targets []float64) (*autodiff.Value, error) {
	return nn.MSELoss(preds, targets)
}

// HingeLoss returns the mean of max(0, 1 - y·p) for labels y in {-1, +1}.
func HingeLoss(preds []*autodiff.Value, labels []float64) (*autodiff.Value, error) {
	return nn.HingeLoss(preds, labels)
}
