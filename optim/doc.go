// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// This package contains:
//   - SGD: Stochastic Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// Optimizers hold the parameter slice they were created with and read each
// parameter's gradient on Step. Gradients accumulate across Backward calls,
// so call ZeroGrad before every new backward pass.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/micrograd/nn"
//	    "github.com/born-ml/micrograd/optim"
//	)
//
//	func main() {
//	    model, _ := nn.NewMLP([]int{2, 8, 1}, rng)
//	    opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05, Momentum: 0.9})
//
//	    for epoch := 0; epoch < 100; epoch++ {
//	        opt.ZeroGrad()
//	        loss := computeLoss(model)
//	        _ = loss.Backward()
//	        opt.Step()
//	    }
//	}
package optim
