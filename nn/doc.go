// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides scalar neural network building blocks.
//
// # Overview
//
// This package contains:
//   - Neuron: weighted sum plus bias, optionally followed by ReLU
//   - Layer: a list of neurons sharing the same inputs
//   - MLP: stacked layers with a linear output layer
//   - Loss functions: MSELoss, HingeLoss
//
// Every parameter is an *autodiff.Value, so a loss built from model outputs
// can be differentiated with Backward and updated by package optim.
//
// # Basic Usage
//
//	import (
//	    "math/rand/v2"
//
//	    "github.com/born-ml/micrograd/nn"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewPCG(1, 2))
//	    model, err := nn.NewMLP([]int{2, 16, 16, 1}, rng)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    out, err := model.Forward(nn.Inputs([]float64{0.5, -1}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    loss, _ := nn.MSELoss(out, []float64{1})
//
//	    model.ZeroGrad()
//	    _ = loss.Backward()
//	}
//
// # Parameters
//
// StateDict names parameters "layers.<l>.neurons.<n>.w.<i>" and
// "layers.<l>.neurons.<n>.b". LoadStateDict accepts the same names and
// rejects unknown or missing ones.
package nn
