// Package config decodes HCL run files for the micrograd CLI.
//
// A run file describes the network, the training loop and the data set:
//
//	model {
//	  layers = [2, 8, 1]
//	  seed   = 42
//	}
//
//	training {
//	  epochs        = 200
//	  learning_rate = 0.05
//	  optimizer     = "adam"
//	}
//
//	sample {
//	  inputs = [0.5, -1]
//	  target = pow(2, 3)
//	}
//
// Attribute expressions may call the go-cty standard math functions (abs,
// ceil, floor, log, max, min, pow, signum).
package config

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/ctxlog"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
	"github.com/born-ml/micrograd/internal/parallel"
	"github.com/born-ml/micrograd/internal/train"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Defaults applied to unset training attributes.
const (
	DefaultEpochs       = 100
	DefaultLearningRate = 0.05
	DefaultOptimizer    = OptimizerSGD
	DefaultLoss         = LossMSE
)

// Optimizer and loss names accepted in a run file.
const (
	OptimizerSGD  = "sgd"
	OptimizerAdam = "adam"
	LossMSE       = "mse"
	LossHinge     = "hinge"
)

// Config is a decoded run file.
type Config struct {
	Model    *Model    `hcl:"model,block"`
	Training *Training `hcl:"training,block"`
	Samples  []*Sample `hcl:"sample,block"`
}

// Model describes the network.
type Model struct {
	Layers []int  `hcl:"layers"`
	Seed   uint64 `hcl:"seed,optional"`
}

// Training describes the optimization loop.
//
// An unset or zero epochs, learning_rate, optimizer or loss selects its
// default. batch_size 0 means the full data set; workers 0 or 1 trains
// sequentially.
type Training struct {
	Epochs       int     `hcl:"epochs,optional"`
	LearningRate float64 `hcl:"learning_rate,optional"`
	Optimizer    string  `hcl:"optimizer,optional"`
	Momentum     float64 `hcl:"momentum,optional"`
	BatchSize    int     `hcl:"batch_size,optional"`
	Workers      int     `hcl:"workers,optional"`
	Loss         string  `hcl:"loss,optional"`
}

// Sample is one labelled example.
type Sample struct {
	Inputs []float64 `hcl:"inputs"`
	Target float64   `hcl:"target"`
}

// evalContext exposes the cty math functions to attribute expressions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"abs":    stdlib.AbsoluteFunc,
			"ceil":   stdlib.CeilFunc,
			"floor":  stdlib.FloorFunc,
			"log":    stdlib.LogFunc,
			"max":    stdlib.MaxFunc,
			"min":    stdlib.MinFunc,
			"pow":    stdlib.PowFunc,
			"signum": stdlib.SignumFunc,
		},
	}
}

// Load parses, defaults and validates the run file at path.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding run file.", "path", path)

	src, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	cfg, err := Parse(src, path)
	if err != nil {
		return nil, err
	}

	logger.Debug("Successfully decoded run file.", "path", path, "layers", cfg.Model.Layers, "samples", len(cfg.Samples))
	return cfg, nil
}

// Parse decodes HCL source; filename is used in diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, evalContext(), &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run file %s: %w", filename, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Training == nil {
		c.Training = &Training{}
	}
	t := c.Training
	if t.Epochs == 0 {
		t.Epochs = DefaultEpochs
	}
	if t.LearningRate == 0 {
		t.LearningRate = DefaultLearningRate
	}
	if t.Optimizer == "" {
		t.Optimizer = DefaultOptimizer
	}
	if t.Loss == "" {
		t.Loss = DefaultLoss
	}
}

// Validate checks ranges and cross-field consistency.
func (c *Config) Validate() error {
	if c.Model == nil {
		return fmt.Errorf("missing model block")
	}
	if len(c.Model.Layers) < 2 {
		return fmt.Errorf("model.layers needs at least 2 sizes, got %v", c.Model.Layers)
	}
	for _, n := range c.Model.Layers {
		if n <= 0 {
			return fmt.Errorf("model.layers must be positive, got %v", c.Model.Layers)
		}
	}
	if out := c.Model.Layers[len(c.Model.Layers)-1]; out != 1 {
		return fmt.Errorf("model.layers must end in 1 output, got %d", out)
	}

	t := c.Training
	if t == nil {
		return fmt.Errorf("missing training block")
	}
	switch {
	case t.Epochs < 0:
		return fmt.Errorf("training.epochs must not be negative (0 selects %d), got %d", DefaultEpochs, t.Epochs)
	case t.LearningRate < 0:
		return fmt.Errorf("training.learning_rate must not be negative (0 selects %g), got %g", DefaultLearningRate, t.LearningRate)
	case t.Momentum < 0 || t.Momentum >= 1:
		return fmt.Errorf("training.momentum must be in [0, 1), got %g", t.Momentum)
	case t.BatchSize < 0:
		return fmt.Errorf("training.batch_size must not be negative, got %d", t.BatchSize)
	case t.Workers < 0:
		return fmt.Errorf("training.workers must not be negative, got %d", t.Workers)
	}
	switch t.Optimizer {
	case OptimizerSGD, OptimizerAdam:
	default:
		return fmt.Errorf("training.optimizer must be %q or %q, got %q", OptimizerSGD, OptimizerAdam, t.Optimizer)
	}
	switch t.Loss {
	case LossMSE, LossHinge:
	default:
		return fmt.Errorf("training.loss must be %q or %q, got %q", LossMSE, LossHinge, t.Loss)
	}

	if len(c.Samples) == 0 {
		return fmt.Errorf("at least one sample block is required")
	}
	for i, s := range c.Samples {
		if len(s.Inputs) != c.Model.Layers[0] {
			return fmt.Errorf("sample %d has %d inputs, model expects %d", i, len(s.Inputs), c.Model.Layers[0])
		}
	}
	return nil
}

// NewModel builds a freshly initialized network from the model block.
func (c *Config) NewModel() (*nn.MLP, error) {
	seed := c.Model.Seed
	return nn.NewMLP(c.Model.Layers, rand.New(rand.NewPCG(seed, seed)))
}

// NewOptimizer builds the configured optimizer over params.
func (c *Config) NewOptimizer(params []*autodiff.Value) optim.Optimizer {
	t := c.Training
	if t.Optimizer == OptimizerAdam {
		return optim.NewAdam(params, optim.AdamConfig{LR: t.LearningRate})
	}
	return optim.NewSGD(params, optim.SGDConfig{LR: t.LearningRate, Momentum: t.Momentum})
}

// LossFunc returns the configured loss.
func (c *Config) LossFunc() nn.LossFunc {
	if c.Training.Loss == LossHinge {
		return nn.HingeLoss
	}
	return nn.MSELoss
}

// TrainConfig returns the training loop settings.
func (c *Config) TrainConfig() train.Config {
	t := c.Training
	p := parallel.Sequential()
	if t.Workers > 1 {
		p = parallel.DefaultConfig()
		p.Enabled = true
		p.NumWorkers = t.Workers
	}
	return train.Config{
		Epochs:    t.Epochs,
		BatchSize: t.BatchSize,
		Parallel:  p,
	}
}

// TrainSamples converts the sample blocks.
func (c *Config) TrainSamples() []train.Sample {
	out := make([]train.Sample, len(c.Samples))
	for i, s := range c.Samples {
		out[i] = train.Sample{Inputs: s.Inputs, Target: s.Target}
	}
	return out
}
