package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/born-ml/micrograd/internal/autodiff"
	"github.com/born-ml/micrograd/internal/config"
	"github.com/born-ml/micrograd/internal/ctxlog"
	"github.com/born-ml/micrograd/internal/serialization"
	"github.com/born-ml/micrograd/internal/train"
	"github.com/born-ml/micrograd/internal/viz"
)

// demoGraph builds d = a*b + b**3 at a=-4, b=2.
func demoGraph() (a, b, d *autodiff.Value) {
	a = autodiff.NewValue(-4).SetLabel("a")
	b = autodiff.NewValue(2).SetLabel("b")
	d = autodiff.Add(a.Mul(b), autodiff.Pow(b, 3)).SetLabel("d")
	return a, b, d
}

func runDemo(stdout io.Writer) error {
	a, b, d := demoGraph()
	if err := d.Backward(); err != nil {
		return err
	}
	for _, v := range []*autodiff.Value{a, b, d} {
		fmt.Fprintln(stdout, v)
	}
	return nil
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}
	return nil
}

func runGraph(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	fs := newFlagSet("graph", stderr)
	out := fs.String("o", "", "Output file (default: stdout).")
	rankDir := fs.String("rankdir", "LR", "Layout direction: 'LR' or 'TB'.")
	backward := fs.Bool("backward", true, "Run backward before rendering so gradients are shown.")
	if err := parseFlags(fs, args); err != nil {
		return ignoreHelp(err)
	}

	_, _, d := demoGraph()
	if *backward {
		if err := d.Backward(); err != nil {
			return err
		}
	}

	text, err := viz.Marshal(d, viz.Options{Name: "demo", RankDir: *rankDir})
	if err != nil {
		if errors.Is(err, viz.ErrRankDir) {
			return usageError("%v", err)
		}
		return err
	}
	text = append(text, '\n')

	if *out == "" {
		_, err = stdout.Write(text)
		return err
	}
	if err := os.WriteFile(*out, text, 0o644); err != nil { //nolint:gosec // G306: DOT output is not sensitive
		return fmt.Errorf("failed to write graph: %w", err)
	}
	ctxlog.FromContext(ctx).Info("Graph written.", "path", *out)
	return nil
}

func runTrain(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	fs := newFlagSet("train", stderr)
	configPath := fs.String("config", "", "Path to the HCL run file.")
	savePath := fs.String("save", "", "Write a checkpoint to this path after training.")
	if err := parseFlags(fs, args); err != nil {
		return ignoreHelp(err)
	}
	if *configPath == "" {
		return usageError("train: -config is required")
	}

	logger := ctxlog.FromContext(ctx)

	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		return err
	}
	model, err := cfg.NewModel()
	if err != nil {
		return err
	}
	logger.Info("Model created.", "model", model.String(), "params", len(model.Parameters()))

	trainer, err := train.New(model, cfg.NewOptimizer(model.Parameters()), cfg.LossFunc(), cfg.TrainConfig())
	if err != nil {
		return err
	}

	history, err := trainer.Fit(ctx, cfg.TrainSamples())
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "final loss: %.6g\n", history.Final())

	if *savePath == "" {
		return nil
	}
	header := serialization.Header{
		ModelType: "MLP",
		Layers:    model.Sizes(),
		Metadata:  map[string]string{"config": *configPath},
		Checkpoint: &serialization.CheckpointMeta{
			Epoch:     len(history.EpochLoss),
			Loss:      history.Final(),
			Optimizer: cfg.Training.Optimizer,
			OptimizerConfig: map[string]float64{
				"learning_rate": cfg.Training.LearningRate,
				"momentum":      cfg.Training.Momentum,
			},
		},
	}
	if err := serialization.Save(*savePath, model.StateValues(), header); err != nil {
		return err
	}
	logger.Info("Checkpoint saved.", "path", *savePath)
	return nil
}

func runEval(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	fs := newFlagSet("eval", stderr)
	configPath := fs.String("config", "", "Path to the HCL run file providing samples.")
	ckptPath := fs.String("checkpoint", "", "Path to a checkpoint written by train -save.")
	if err := parseFlags(fs, args); err != nil {
		return ignoreHelp(err)
	}
	if *configPath == "" || *ckptPath == "" {
		return usageError("eval: -config and -checkpoint are required")
	}

	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		return err
	}
	values, header, err := serialization.Load(*ckptPath)
	if err != nil {
		return err
	}
	if !slices.Equal(header.Layers, cfg.Model.Layers) {
		return fmt.Errorf("checkpoint layers %v do not match run file layers %v", header.Layers, cfg.Model.Layers)
	}

	model, err := cfg.NewModel()
	if err != nil {
		return err
	}
	if err := model.LoadStateDict(values); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Checkpoint loaded.", "path", *ckptPath, "created_at", header.CreatedAt)

	samples := cfg.TrainSamples()
	for i, s := range samples {
		pred, err := train.Predict(model, s.Inputs)
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
		fmt.Fprintf(stdout, "sample %d: target %.6g predicted %.6g\n", i, s.Target, pred)
	}

	loss, err := train.Evaluate(model, cfg.LossFunc(), samples)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "loss: %.6g\n", loss)
	return nil
}

// ignoreHelp turns -h into a clean exit.
func ignoreHelp(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}
