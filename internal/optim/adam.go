package optim

import (
	"math"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Adam implements the Adam optimizer with bias correction.
//
// Update rule:
//
//	m = β1*m + (1-β1)*g
//	v = β2*v + (1-β2)*g²
//	m̂ = m / (1 - β1^t)
//	v̂ = v / (1 - β2^t)
//	param = param - lr * m̂ / (√v̂ + ε)
type Adam struct {
	params []*autodiff.Value
	lr     float64
	beta1  float64
	beta2  float64
	eps    float64
	t      int       // Timestep for bias correction
	m      []float64 // First moment estimates
	v      []float64 // Second moment estimates
}

// AdamConfig holds configuration for Adam.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Running average coefficients (default: [0.9, 0.999])
	Eps   float64    // Numerical stability term (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
func NewAdam(params []*autodiff.Value, config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		params: params,
		lr:     config.LR,
		beta1:  config.Betas[0],
		beta2:  config.Betas[1],
		eps:    config.Eps,
		m:      make([]float64, len(params)),
		v:      make([]float64, len(params)),
	}
}

// Step performs a single optimization step.
func (a *Adam) Step() {
	a.t++

	biasCorrection1 := 1 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1 - math.Pow(a.beta2, float64(a.t))

	for i, p := range a.params {
		g := p.Grad()

		a.m[i] = a.beta1*a.m[i] + (1-a.beta1)*g
		a.v[i] = a.beta2*a.v[i] + (1-a.beta2)*g*g

		mHat := a.m[i] / biasCorrection1
		vHat := a.v[i] / biasCorrection2

		p.SetData(p.Data() - a.lr*mHat/(math.Sqrt(vHat)+a.eps))
	}
}

// ZeroGrad clears all parameter gradients.
func (a *Adam) ZeroGrad() {
	zeroGrad(a.params)
}

// GetLR returns the learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}
