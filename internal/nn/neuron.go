package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// Neuron computes act(b + Σ wᵢxᵢ), where act is ReLU or the identity.
type Neuron struct {
	w      []*autodiff.Value
	b      *autodiff.Value
	linear bool // Skip the ReLU
}

// NewNeuron creates a neuron with nin inputs. Weights and bias are drawn
// uniformly from [-1, 1).
func NewNeuron(nin int, linear bool, rng *rand.Rand) *Neuron {
	w := make([]*autodiff.Value, nin)
	for i := range w {
		w[i] = autodiff.NewValue(rng.Float64()*2 - 1)
	}
	return &Neuron{
		w:      w,
		b:      autodiff.NewValue(rng.Float64()*2 - 1),
		linear: linear,
	}
}

// Forward computes the neuron output for x.
func (n *Neuron) Forward(x []*autodiff.Value) (*autodiff.Value, error) {
	if len(x) != len(n.w) {
		return nil, fmt.Errorf("%w: neuron expects %d inputs, got %d", ErrInputSize, len(n.w), len(x))
	}

	act := n.b
	for i, wi := range n.w {
		act = act.Add(wi.Mul(x[i]))
	}

	if n.linear {
		return act, nil
	}
	return act.ReLU(), nil
}

// Weights returns the weight leaves.
func (n *Neuron) Weights() []*autodiff.Value {
	return n.w
}

// Bias returns the bias leaf.
func (n *Neuron) Bias() *autodiff.Value {
	return n.b
}

// Linear reports whether the neuron skips the ReLU.
func (n *Neuron) Linear() bool {
	return n.linear
}

// Parameters returns the weights followed by the bias.
func (n *Neuron) Parameters() []*autodiff.Value {
	params := make([]*autodiff.Value, 0, len(n.w)+1)
	params = append(params, n.w...)
	return append(params, n.b)
}

// ZeroGrad resets all parameter gradients.
func (n *Neuron) ZeroGrad() {
	zeroGrad(n.Parameters())
}

// replica returns a neuron with fresh leaves holding the same data.
func (n *Neuron) replica() *Neuron {
	w := make([]*autodiff.Value, len(n.w))
	for i, wi := range n.w {
		w[i] = autodiff.NewValue(wi.Data())
	}
	return &Neuron{
		w:      w,
		b:      autodiff.NewValue(n.b.Data()),
		linear: n.linear,
	}
}

// String implements fmt.Stringer.
func (n *Neuron) String() string {
	kind := "ReLU"
	if n.linear {
		kind = "Linear"
	}
	return fmt.Sprintf("%sNeuron(%d)", kind, len(n.w))
}
