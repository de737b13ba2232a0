package nn_test

import (
	"math/rand/v2"
	"testing"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRNG() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

// TestNeuron_Forward tests b + Σ wᵢxᵢ with and without ReLU.
func TestNeuron_Forward(t *testing.T) {
	for _, linear := range []bool{true, false} {
		n := nn.NewNeuron(2, linear, newRNG())
		n.Weights()[0].SetData(2)
		n.Weights()[1].SetData(-3)
		n.Bias().SetData(0.5)

		out, err := n.Forward(nn.Inputs([]float64{1, 1}))
		require.NoError(t, err)

		// 0.5 + 2 - 3 = -0.5
		if linear {
			assert.InDelta(t, -0.5, out.Data(), 1e-12)
		} else {
			assert.Equal(t, 0.0, out.Data())
		}
	}
}

// TestNeuron_InitRange tests uniform initialisation in [-1, 1).
func TestNeuron_InitRange(t *testing.T) {
	n := nn.NewNeuron(64, false, newRNG())
	for _, p := range n.Parameters() {
		assert.GreaterOrEqual(t, p.Data(), -1.0)
		assert.Less(t, p.Data(), 1.0)
		assert.True(t, p.IsLeaf())
		assert.Zero(t, p.Grad())
	}
}

// TestNeuron_Gradients tests that backward reaches weights and bias.
func TestNeuron_Gradients(t *testing.T) {
	n := nn.NewNeuron(2, true, newRNG())
	x := nn.Inputs([]float64{3, -2})

	out, err := n.Forward(x)
	require.NoError(t, err)
	require.NoError(t, out.Backward())

	assert.Equal(t, 3.0, n.Weights()[0].Grad())
	assert.Equal(t, -2.0, n.Weights()[1].Grad())
	assert.Equal(t, 1.0, n.Bias().Grad())

	n.ZeroGrad()
	for _, p := range n.Parameters() {
		assert.Zero(t, p.Grad())
	}
}

// TestMLP_Shape tests construction and parameter count.
func TestMLP_Shape(t *testing.T) {
	m, err := nn.NewMLP([]int{2, 3, 1}, newRNG())
	require.NoError(t, err)

	assert.Len(t, m.Layers(), 2)
	assert.Len(t, m.Parameters(), 3*(2+1)+1*(3+1))
	assert.Equal(t, []int{2, 3, 1}, m.Sizes())
	assert.False(t, m.Layers()[0].Neurons()[0].Linear())
	assert.True(t, m.Layers()[1].Neurons()[0].Linear())
	assert.Equal(t, "MLP of [Layer[ReLUNeuron(2), ReLUNeuron(2), ReLUNeuron(2)], Layer[LinearNeuron(3)]]", m.String())

	out, err := m.Forward(nn.Inputs([]float64{0.1, 0.2}))
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

// TestMLP_InvalidSizes tests constructor validation.
func TestMLP_InvalidSizes(t *testing.T) {
	_, err := nn.NewMLP([]int{3}, newRNG())
	assert.Error(t, err)

	_, err = nn.NewMLP([]int{3, 0, 1}, newRNG())
	assert.Error(t, err)
}

// TestMLP_InputSizeMismatch tests the wrapped sentinel error.
func TestMLP_InputSizeMismatch(t *testing.T) {
	m, err := nn.NewMLP([]int{3, 2}, newRNG())
	require.NoError(t, err)

	_, err = m.Forward(nn.Inputs([]float64{1, 2}))
	require.ErrorIs(t, err, nn.ErrInputSize)
	assert.Contains(t, err.Error(), "layer 0")
}

// TestMLP_Replica tests that replicas share data but not graph vertices.
func TestMLP_Replica(t *testing.T) {
	m, err := nn.NewMLP([]int{2, 4, 1}, newRNG())
	require.NoError(t, err)

	r := m.Replica()
	orig, copied := m.Parameters(), r.Parameters()
	require.Len(t, copied, len(orig))
	for i := range orig {
		assert.NotSame(t, orig[i], copied[i])
		assert.Equal(t, orig[i].Data(), copied[i].Data())
	}

	x := []float64{0.3, -0.7}
	out, err := r.Forward(nn.Inputs(x))
	require.NoError(t, err)
	require.NoError(t, out[0].Backward())

	for _, p := range orig {
		assert.Zero(t, p.Grad(), "backward on replica leaked into original")
	}

	want, err := m.Forward(nn.Inputs(x))
	require.NoError(t, err)
	assert.Equal(t, want[0].Data(), out[0].Data())
}

// TestMLP_StateDict tests named parameter export and import.
func TestMLP_StateDict(t *testing.T) {
	m, err := nn.NewMLP([]int{2, 2, 1}, newRNG())
	require.NoError(t, err)

	state := m.StateDict()
	assert.Len(t, state, len(m.Parameters()))
	assert.Contains(t, state, "layers.0.neurons.1.w.0")
	assert.Contains(t, state, "layers.1.neurons.0.b")

	values := make(map[string]float64, len(state))
	for name := range state {
		values[name] = 0.25
	}
	require.NoError(t, m.LoadStateDict(values))
	for _, p := range m.Parameters() {
		assert.Equal(t, 0.25, p.Data())
	}

	delete(values, "layers.1.neurons.0.b")
	assert.ErrorContains(t, m.LoadStateDict(values), "missing parameter")

	values["layers.1.neurons.0.b"] = 1
	values["layers.9.neurons.0.b"] = 1
	assert.ErrorContains(t, m.LoadStateDict(values), "unknown parameters")
	assert.Equal(t, 0.25, state["layers.1.neurons.0.b"].Data())
}

// TestMSELoss tests value and gradient of mean squared error.
func TestMSELoss(t *testing.T) {
	preds := autodiff.Values(1, 3)
	loss, err := nn.MSELoss(preds, []float64{0, 1})
	require.NoError(t, err)

	// ((1-0)² + (3-1)²) / 2 = 2.5
	assert.InDelta(t, 2.5, loss.Data(), 1e-12)
	require.NoError(t, loss.Backward())

	// d/dp = 2(p - t) / n
	assert.InDelta(t, 1.0, preds[0].Grad(), 1e-12)
	assert.InDelta(t, 2.0, preds[1].Grad(), 1e-12)

	_, err = nn.MSELoss(preds, []float64{1})
	assert.ErrorIs(t, err, nn.ErrInputSize)
	_, err = nn.MSELoss(nil, nil)
	assert.ErrorIs(t, err, nn.ErrInputSize)
}

// TestHingeLoss tests the max-margin loss.
func TestHingeLoss(t *testing.T) {
	preds := autodiff.Values(2, 0.5, -0.5)
	loss, err := nn.HingeLoss(preds, []float64{1, 1, 1})
	require.NoError(t, err)

	// (0 + 0.5 + 1.5) / 3
	assert.InDelta(t, 2.0/3.0, loss.Data(), 1e-12)
	require.NoError(t, loss.Backward())

	assert.Zero(t, preds[0].Grad(), "satisfied margin contributes nothing")
	assert.InDelta(t, -1.0/3.0, preds[1].Grad(), 1e-12)
	assert.InDelta(t, -1.0/3.0, preds[2].Grad(), 1e-12)
}
