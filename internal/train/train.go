// Package train runs the forward/backward/update loop for an MLP.
//
// Each Step builds one graph per batch. When parallelism is enabled the batch
// is split into chunks and every chunk is evaluated on its own model replica,
// so no graph node is shared between goroutines. Replica gradients are then
// added into the shared parameters one chunk at a time under a mutex.
package train

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/ctxlog"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
	"github.com/born-ml/micrograd/internal/parallel"
	"gonum.org/v1/gonum/floats"
)

// ErrEmptyBatch is returned when a step or evaluation receives no samples.
var ErrEmptyBatch = errors.New("train: empty batch")

// Sample is one training example for a single-output network.
type Sample struct {
	Inputs []float64
	Target float64
}

// Config controls the training loop.
type Config struct {
	Epochs    int             // Passes over the data set (default: 1)
	BatchSize int             // Samples per step; 0 means the full data set
	Parallel  parallel.Config // Chunking of each batch across goroutines
}

// Trainer owns a model, its optimizer and a loss.
//
// The loss must be a mean over samples (MSELoss, HingeLoss): chunk losses
// are weighted by chunk size, which reproduces the full-batch gradient.
type Trainer struct {
	model *nn.MLP
	opt   optim.Optimizer
	loss  nn.LossFunc
	cfg   Config
}

// History records the mean loss of each epoch.
type History struct {
	EpochLoss []float64
}

// Final returns the loss of the last epoch, or 0 if none ran.
func (h *History) Final() float64 {
	if len(h.EpochLoss) == 0 {
		return 0
	}
	return h.EpochLoss[len(h.EpochLoss)-1]
}

// New creates a Trainer. The model must have a single output.
func New(model *nn.MLP, opt optim.Optimizer, loss nn.LossFunc, cfg Config) (*Trainer, error) {
	sizes := model.Sizes()
	if out := sizes[len(sizes)-1]; out != 1 {
		return nil, fmt.Errorf("train: model must have 1 output, has %d", out)
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = 1
	}
	if cfg.BatchSize < 0 {
		return nil, fmt.Errorf("train: negative batch size %d", cfg.BatchSize)
	}

	return &Trainer{
		model: model,
		opt:   opt,
		loss:  loss,
		cfg:   cfg,
	}, nil
}

// Fit runs cfg.Epochs passes over samples. The context is checked between
// steps; on cancellation the history so far is returned with ctx.Err().
func (t *Trainer) Fit(ctx context.Context, samples []Sample) (*History, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyBatch
	}

	logger := ctxlog.FromContext(ctx)
	batchSize := t.cfg.BatchSize
	if batchSize == 0 || batchSize > len(samples) {
		batchSize = len(samples)
	}

	history := &History{EpochLoss: make([]float64, 0, t.cfg.Epochs)}
	weighted := make([]float64, 0, (len(samples)+batchSize-1)/batchSize)

	for epoch := 1; epoch <= t.cfg.Epochs; epoch++ {
		weighted = weighted[:0]

		for start := 0; start < len(samples); start += batchSize {
			if err := ctx.Err(); err != nil {
				return history, err
			}

			batch := samples[start:min(start+batchSize, len(samples))]
			loss, err := t.Step(batch)
			if err != nil {
				return history, fmt.Errorf("epoch %d: %w", epoch, err)
			}
			weighted = append(weighted, loss*float64(len(batch)))
		}

		mean := floats.Sum(weighted) / float64(len(samples))
		history.EpochLoss = append(history.EpochLoss, mean)
		logger.Debug("Epoch finished.", "epoch", epoch, "loss", mean, "lr", t.opt.GetLR())
	}

	logger.Info("Training finished.", "epochs", t.cfg.Epochs, "samples", len(samples), "loss", history.Final())
	return history, nil
}

// Step performs one optimization step on batch and returns the batch loss
// measured before the update.
func (t *Trainer) Step(batch []Sample) (float64, error) {
	if len(batch) == 0 {
		return 0, ErrEmptyBatch
	}

	t.opt.ZeroGrad()

	loss, err := t.accumulate(batch)
	if err != nil {
		return 0, err
	}

	t.opt.Step()
	return loss, nil
}

// accumulate adds d(loss)/d(param) for the batch into the model parameters.
//
// In the parallel path replica gradients are collected first and merged
// only when every chunk succeeded, so a failed step leaves the shared
// gradients as they were.
func (t *Trainer) accumulate(batch []Sample) (float64, error) {
	chunks := parallel.Chunks(len(batch), t.cfg.Parallel)
	if len(chunks) == 1 {
		out, err := chunkLoss(t.model, t.loss, batch, len(batch))
		if err != nil {
			return 0, err
		}
		if err := out.Backward(); err != nil {
			return 0, err
		}
		return out.Data(), nil
	}

	type result struct {
		loss  float64
		grads []float64
	}

	var (
		mu       sync.Mutex
		results  = make(map[int]result, len(chunks))
		firstErr error
	)

	parallel.ForChunks(len(batch), func(start, end int) {
		replica := t.model.Replica()

		out, err := chunkLoss(replica, t.loss, batch[start:end], len(batch))
		if err == nil {
			err = out.Backward()
		}

		var r result
		if err == nil {
			params := replica.Parameters()
			r = result{loss: out.Data(), grads: make([]float64, len(params))}
			for i, p := range params {
				r.grads[i] = p.Grad()
			}
		}

		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("samples [%d, %d): %w", start, end, err)
			}
			return
		}
		results[start] = r
	}, t.cfg.Parallel)

	if firstErr != nil {
		return 0, firstErr
	}

	// Merge in chunk order so the summation order does not depend on
	// goroutine scheduling.
	master := t.model.Parameters()
	var total float64
	for _, c := range chunks {
		r := results[c[0]]
		for i, g := range r.grads {
			master[i].AddGrad(g)
		}
		total += r.loss
	}
	return total, nil
}

// chunkLoss builds the loss graph of a chunk, weighted by its share of a
// batch of size n.
func chunkLoss(model *nn.MLP, loss nn.LossFunc, chunk []Sample, n int) (*autodiff.Value, error) {
	preds := make([]*autodiff.Value, len(chunk))
	targets := make([]float64, len(chunk))
	for i, s := range chunk {
		out, err := model.Forward(nn.Inputs(s.Inputs))
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		preds[i] = out[0]
		targets[i] = s.Target
	}

	out, err := loss(preds, targets)
	if err != nil {
		return nil, err
	}
	if len(chunk) == n {
		return out, nil
	}
	return autodiff.Mul(out, float64(len(chunk))/float64(n)), nil
}

// Evaluate returns the trainer's loss over samples without touching
// gradients.
func (t *Trainer) Evaluate(samples []Sample) (float64, error) {
	return Evaluate(t.model, t.loss, samples)
}

// Evaluate returns loss over samples for model. No backward pass runs, so
// parameter gradients are left as they are.
func Evaluate(model *nn.MLP, loss nn.LossFunc, samples []Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrEmptyBatch
	}
	out, err := chunkLoss(model, loss, samples, len(samples))
	if err != nil {
		return 0, err
	}
	return out.Data(), nil
}

// Predict runs the model on one input vector and returns its single output.
func Predict(model *nn.MLP, inputs []float64) (float64, error) {
	out, err := model.Forward(nn.Inputs(inputs))
	if err != nil {
		return 0, err
	}
	return out[0].Data(), nil
}
