package autodiff

import (
	"errors"
	"fmt"
)

// ErrCorruptGraph is the sentinel wrapped by every CorruptGraphError.
var ErrCorruptGraph = errors.New("autodiff: corrupt graph")

// CorruptGraphError reports provenance that is structurally inconsistent
// with its operator, such as a binary operation with a missing operand.
//
// It signals a programming-contract violation. Backward returns it before
// writing any gradient.
type CorruptGraphError struct {
	Op     string // Operator name of the malformed record ("<nil>" when absent)
	Reason string // What is wrong with it
}

// Error implements the error interface.
func (e *CorruptGraphError) Error() string {
	return fmt.Sprintf("%v: %s node: %s", ErrCorruptGraph, e.Op, e.Reason)
}

// Unwrap returns ErrCorruptGraph.
func (e *CorruptGraphError) Unwrap() error {
	return ErrCorruptGraph
}
