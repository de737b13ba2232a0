package nn

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Layer is a set of neurons sharing the same inputs.
type Layer struct {
	neurons []*Neuron
}

// NewLayer creates a layer mapping nin inputs to nout outputs.
func NewLayer(nin, nout int, linear bool, rng *rand.Rand) *Layer {
	neurons := make([]*Neuron, nout)
	for i := range neurons {
		neurons[i] = NewNeuron(nin, linear, rng)
	}
	return &Layer{neurons: neurons}
}

// Forward evaluates every neuron on x.
func (l *Layer) Forward(x []*autodiff.Value) ([]*autodiff.Value, error) {
	out := make([]*autodiff.Value, len(l.neurons))
	for i, n := range l.neurons {
		v, err := n.Forward(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Neurons returns the layer's neurons.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// Parameters returns the parameters of every neuron in order.
func (l *Layer) Parameters() []*autodiff.Value {
	var params []*autodiff.Value
	for _, n := range l.neurons {
		params = append(params, n.Parameters()...)
	}
	return params
}

// ZeroGrad resets all parameter gradients.
func (l *Layer) ZeroGrad() {
	zeroGrad(l.Parameters())
}

func (l *Layer) replica() *Layer {
	neurons := make([]*Neuron, len(l.neurons))
	for i, n := range l.neurons {
		neurons[i] = n.replica()
	}
	return &Layer{neurons: neurons}
}

// String implements fmt.Stringer.
func (l *Layer) String() string {
	parts := make([]string, len(l.neurons))
	for i, n := range l.neurons {
		parts[i] = n.String()
	}
	return fmt.Sprintf("Layer[%s]", strings.Join(parts, ", "))
}
