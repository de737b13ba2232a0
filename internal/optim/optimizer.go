// Package optim implements parameter update rules for scalar networks.
//
// This package provides:
//   - Optimizer interface: base interface for all optimizers
//   - SGD: Stochastic Gradient Descent with optional momentum
//   - Adam: Adaptive Moment Estimation
//
// Optimizers own a list of parameter leaves. Step reads each leaf's gradient
// (filled by Backward) and overwrites its data; ZeroGrad clears gradients
// before the next forward/backward cycle.
//
// Example usage:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
//
//	for epoch := range epochs {
//	    optimizer.ZeroGrad()
//	    loss := computeLoss(model, data)
//	    if err := loss.Backward(); err != nil {
//	        return err
//	    }
//	    optimizer.Step()
//	}
package optim

import "github.com/born-ml/micrograd/internal/autodiff"

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies one update to every parameter using its current gradient.
	Step()

	// ZeroGrad clears all parameter gradients.
	//
	// Backward accumulates, so this must run before each backward pass
	// that should not include the previous one.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

func zeroGrad(params []*autodiff.Value) {
	for _, p := range params {
		p.ZeroGrad()
	}
}
