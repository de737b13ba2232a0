package nn

import (
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff"
)

// MSELoss returns mean((pred - target)²) as a graph node.
func MSELoss(preds []*autodiff.Value, targets []float64) (*autodiff.Value, error) {
	if len(preds) != len(targets) {
		return nil, fmt.Errorf("%w: %d predictions, %d targets", ErrInputSize, len(preds), len(targets))
	}
	if len(preds) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInputSize)
	}

	sum := autodiff.NewValue(0)
	for i, p := range preds {
		sum = sum.Add(autodiff.Pow(autodiff.Sub(p, targets[i]), 2))
	}
	return autodiff.Div(sum, len(preds)), nil
}

// HingeLoss returns mean(ReLU(1 - yᵢ·predᵢ)) for labels in {-1, +1}.
func HingeLoss(preds []*autodiff.Value, labels []float64) (*autodiff.Value, error) {
	if len(preds) != len(labels) {
		return nil, fmt.Errorf("%w: %d predictions, %d labels", ErrInputSize, len(preds), len(labels))
	}
	if len(preds) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInputSize)
	}

	sum := autodiff.NewValue(0)
	for i, p := range preds {
		margin := autodiff.Sub(1, autodiff.Mul(p, labels[i]))
		sum = sum.Add(margin.ReLU())
	}
	return autodiff.Div(sum, len(preds)), nil
}

// LossFunc builds a scalar loss from predictions and targets.
type LossFunc func(preds []*autodiff.Value, targets []float64) (*autodiff.Value, error)
