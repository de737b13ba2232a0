package optim

import "github.com/born-ml/micrograd/internal/autodiff"

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD struct {
	params     []*autodiff.Value
	lr         float64
	momentum   float64
	velocities []float64
}

// SGDConfig holds configuration for SGD.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(params []*autodiff.Value, config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make([]float64, len(params)),
	}
}

// Step performs a single optimization step.
func (s *SGD) Step() {
	for i, p := range s.params {
		g := p.Grad()
		if s.momentum != 0 {
			s.velocities[i] = s.momentum*s.velocities[i] + g
			g = s.velocities[i]
		}
		p.SetData(p.Data() - s.lr*g)
	}
}

// ZeroGrad clears all parameter gradients.
func (s *SGD) ZeroGrad() {
	zeroGrad(s.params)
}

// GetLR returns the learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR changes the learning rate, e.g. for decay schedules.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
