package nn

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// MLP is a multilayer perceptron. Hidden layers use ReLU; the output layer is
// linear so it can produce negative values.
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	model, _ := nn.NewMLP([]int{2, 16, 16, 1}, rng)
//	out, _ := model.Forward(nn.Inputs([]float64{0.5, -1}))
type MLP struct {
	sizes  []int
	layers []*Layer
}

// NewMLP creates a network from layer sizes [nin, h1, ..., nout].
func NewMLP(sizes []int, rng *rand.Rand) (*MLP, error) {
	if len(sizes) < 2 {
		return nil, errors.New("nn: MLP needs at least input and output sizes")
	}
	for i, s := range sizes {
		if s <= 0 {
			return nil, fmt.Errorf("nn: layer size %d at index %d must be positive", s, i)
		}
	}

	layers := make([]*Layer, len(sizes)-1)
	for i := range layers {
		last := i == len(layers)-1
		layers[i] = NewLayer(sizes[i], sizes[i+1], last, rng)
	}

	return &MLP{
		sizes:  append([]int(nil), sizes...),
		layers: layers,
	}, nil
}

// Forward runs x through every layer.
func (m *MLP) Forward(x []*autodiff.Value) ([]*autodiff.Value, error) {
	out := x
	for i, l := range m.layers {
		var err error
		out, err = l.Forward(out)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return out, nil
}

// Sizes returns the layer sizes the network was built from.
func (m *MLP) Sizes() []int {
	return append([]int(nil), m.sizes...)
}

// Layers returns the network layers.
func (m *MLP) Layers() []*Layer {
	return m.layers
}

// Parameters returns all weights and biases, layer by layer.
func (m *MLP) Parameters() []*autodiff.Value {
	var params []*autodiff.Value
	for _, l := range m.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// ZeroGrad resets all parameter gradients.
func (m *MLP) ZeroGrad() {
	zeroGrad(m.Parameters())
}

// Replica returns a copy of the network whose parameters are new leaves with
// the same data and zero gradients.
//
// Graphs built on a replica share no node with graphs built on m, so a
// replica can be evaluated and back-propagated on another goroutine while m
// is read elsewhere. Parameters() of both networks line up index by index.
func (m *MLP) Replica() *MLP {
	layers := make([]*Layer, len(m.layers))
	for i, l := range m.layers {
		layers[i] = l.replica()
	}
	return &MLP{
		sizes:  m.Sizes(),
		layers: layers,
	}
}

// String implements fmt.Stringer.
func (m *MLP) String() string {
	parts := make([]string, len(m.layers))
	for i, l := range m.layers {
		parts[i] = l.String()
	}
	return fmt.Sprintf("MLP of [%s]", strings.Join(parts, ", "))
}
