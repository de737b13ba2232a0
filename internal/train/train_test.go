package train_test

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/born-ml/micrograd/internal/ctxlog"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
	"github.com/born-ml/micrograd/internal/parallel"
	"github.com/born-ml/micrograd/internal/train"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, sizes ...int) *nn.MLP {
	t.Helper()
	m, err := nn.NewMLP(sizes, rand.New(rand.NewPCG(3, 5)))
	require.NoError(t, err)
	return m
}

func lineSamples() []train.Sample {
	// y = 3x + 1
	xs := []float64{-1, 0, 1, 2}
	samples := make([]train.Sample, len(xs))
	for i, x := range xs {
		samples[i] = train.Sample{Inputs: []float64{x}, Target: 3*x + 1}
	}
	return samples
}

// TestFit_LinearRegression tests that a single linear neuron recovers y = 3x + 1.
func TestFit_LinearRegression(t *testing.T) {
	model := newModel(t, 1, 1)
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})

	trainer, err := train.New(model, opt, nn.MSELoss, train.Config{Epochs: 500})
	require.NoError(t, err)

	history, err := trainer.Fit(context.Background(), lineSamples())
	require.NoError(t, err)
	assert.Len(t, history.EpochLoss, 500)
	assert.Less(t, history.Final(), 1e-12)

	neuron := model.Layers()[0].Neurons()[0]
	assert.InDelta(t, 3.0, neuron.Weights()[0].Data(), 1e-6)
	assert.InDelta(t, 1.0, neuron.Bias().Data(), 1e-6)

	pred, err := train.Predict(model, []float64{10})
	require.NoError(t, err)
	assert.InDelta(t, 31.0, pred, 1e-5)
}

// TestFit_LossDecreases tests a hidden-layer network with mini-batches.
func TestFit_LossDecreases(t *testing.T) {
	model := newModel(t, 2, 8, 1)
	opt := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.01})

	rng := rand.New(rand.NewPCG(1, 1))
	samples := make([]train.Sample, 32)
	for i := range samples {
		x1, x2 := rng.Float64()*2-1, rng.Float64()*2-1
		samples[i] = train.Sample{Inputs: []float64{x1, x2}, Target: 2*x1 - x2}
	}

	trainer, err := train.New(model, opt, nn.MSELoss, train.Config{Epochs: 50, BatchSize: 8})
	require.NoError(t, err)

	before, err := trainer.Evaluate(samples)
	require.NoError(t, err)

	history, err := trainer.Fit(context.Background(), samples)
	require.NoError(t, err)

	after, err := trainer.Evaluate(samples)
	require.NoError(t, err)
	assert.Less(t, after, before)
	assert.Less(t, history.Final(), history.EpochLoss[0])
}

// TestStep_ParallelMatchesSequential tests that chunked replicas reproduce the
// full-batch update.
func TestStep_ParallelMatchesSequential(t *testing.T) {
	samples := make([]train.Sample, 16)
	for i := range samples {
		x := float64(i)/8 - 1
		samples[i] = train.Sample{Inputs: []float64{x, x * x}, Target: x}
	}

	run := func(cfg parallel.Config) ([]float64, float64) {
		model := newModel(t, 2, 4, 1)
		opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05})
		trainer, err := train.New(model, opt, nn.MSELoss, train.Config{Parallel: cfg})
		require.NoError(t, err)

		loss, err := trainer.Step(samples)
		require.NoError(t, err)

		params := model.Parameters()
		out := make([]float64, 0, 2*len(params))
		for _, p := range params {
			out = append(out, p.Data(), p.Grad())
		}
		return out, loss
	}

	seq, seqLoss := run(parallel.Sequential())
	par, parLoss := run(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 2})

	assert.InDelta(t, seqLoss, parLoss, 1e-12)
	require.Len(t, par, len(seq))
	for i := range seq {
		assert.InDelta(t, seq[i], par[i], 1e-12, "index %d", i)
	}
}

// TestFit_Cancelled tests that a cancelled context stops before any step.
func TestFit_Cancelled(t *testing.T) {
	model := newModel(t, 1, 1)
	before := model.Parameters()[0].Data()
	trainer, err := train.New(model, optim.NewSGD(model.Parameters(), optim.SGDConfig{}), nn.MSELoss, train.Config{Epochs: 10})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	history, err := trainer.Fit(ctx, lineSamples())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, history.EpochLoss)
	assert.Equal(t, before, model.Parameters()[0].Data())
}

// TestFit_Logs tests that progress goes to the context logger.
func TestFit_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	model := newModel(t, 1, 1)
	trainer, err := train.New(model, optim.NewSGD(model.Parameters(), optim.SGDConfig{}), nn.MSELoss, train.Config{Epochs: 2})
	require.NoError(t, err)

	_, err = trainer.Fit(ctx, lineSamples())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `msg="Epoch finished." epoch=1`)
	assert.Contains(t, out, `msg="Epoch finished." epoch=2`)
	assert.Contains(t, out, `msg="Training finished." epochs=2 samples=4`)
}

// TestEvaluate_LeavesGradients tests that evaluation never runs backward.
func TestEvaluate_LeavesGradients(t *testing.T) {
	model := newModel(t, 1, 3, 1)
	trainer, err := train.New(model, optim.NewSGD(model.Parameters(), optim.SGDConfig{}), nn.MSELoss, train.Config{})
	require.NoError(t, err)

	_, err = trainer.Evaluate(lineSamples())
	require.NoError(t, err)
	for _, p := range model.Parameters() {
		assert.Zero(t, p.Grad())
	}
}

// TestTrainer_Errors tests argument validation.
func TestTrainer_Errors(t *testing.T) {
	_, err := train.New(newModel(t, 2, 2), nil, nn.MSELoss, train.Config{})
	assert.ErrorContains(t, err, "1 output")

	model := newModel(t, 2, 1)
	_, err = train.New(model, nil, nn.MSELoss, train.Config{BatchSize: -1})
	assert.Error(t, err)

	trainer, err := train.New(model, optim.NewSGD(model.Parameters(), optim.SGDConfig{}), nn.MSELoss, train.Config{})
	require.NoError(t, err)

	_, err = trainer.Step(nil)
	assert.ErrorIs(t, err, train.ErrEmptyBatch)
	_, err = trainer.Fit(context.Background(), nil)
	assert.ErrorIs(t, err, train.ErrEmptyBatch)

	_, err = trainer.Step([]train.Sample{{Inputs: []float64{1}, Target: 0}})
	assert.ErrorIs(t, err, nn.ErrInputSize)
}

// TestStep_ParallelFailureLeavesGradients tests that a failing chunk keeps
// the other chunks' gradients out of the shared parameters.
func TestStep_ParallelFailureLeavesGradients(t *testing.T) {
	samples := make([]train.Sample, 16)
	for i := range samples {
		x := float64(i) / 4
		samples[i] = train.Sample{Inputs: []float64{x, -x}, Target: x}
	}
	samples[15].Inputs = []float64{1} // wrong width, last chunk only

	model := newModel(t, 2, 3, 1)
	before := model.StateValues()
	opt := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.1})
	trainer, err := train.New(model, opt, nn.MSELoss, train.Config{
		Parallel: parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 2},
	})
	require.NoError(t, err)

	_, err = trainer.Step(samples)
	require.ErrorIs(t, err, nn.ErrInputSize)

	for _, p := range model.Parameters() {
		assert.Zero(t, p.Grad())
	}
	assert.Equal(t, before, model.StateValues())
}

// TestEvaluate_Standalone tests evaluation without a trainer.
func TestEvaluate_Standalone(t *testing.T) {
	model := newModel(t, 1, 1)
	w, b := model.Parameters()[0], model.Parameters()[1]
	w.SetData(3)
	b.SetData(1)

	loss, err := train.Evaluate(model, nn.MSELoss, lineSamples())
	require.NoError(t, err)
	assert.Zero(t, loss)

	b.SetData(2) // every prediction off by one
	loss, err = train.Evaluate(model, nn.MSELoss, lineSamples())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, loss, 1e-12)
	assert.Zero(t, w.Grad())

	_, err = train.Evaluate(model, nn.MSELoss, nil)
	assert.ErrorIs(t, err, train.ErrEmptyBatch)
}
