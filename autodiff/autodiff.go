// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// Every arithmetic operation on a *Value returns a new Value that records
// the operation and its operands. Backward walks that graph in reverse
// topological order and accumulates d(root)/d(node) into every node.
//
// Example:
//
//	import "github.com/born-ml/micrograd/autodiff"
//
//	func main() {
//	    a := autodiff.NewValue(-4)
//	    b := autodiff.NewValue(2)
//	    d := autodiff.Add(a.Mul(b), autodiff.Pow(b, 3)) // 0
//
//	    if err := d.Backward(); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(a.Grad(), b.Grad()) // 2 8
//	}
package autodiff

import (
	"github.com/born-ml/micrograd/internal/autodiff"
)

// Value is a scalar node in a computation graph.
type Value = autodiff.Value

// Op records how a non-leaf Value was produced.
type Op = autodiff.Op

// Kind identifies an operation.
type Kind = autodiff.Kind

// Operation kinds.
const (
	KindLeaf = autodiff.KindLeaf
	KindAdd  = autodiff.KindAdd
	KindSub  = autodiff.KindSub
	KindMul  = autodiff.KindMul
	KindPow  = autodiff.KindPow
	KindReLU = autodiff.KindReLU
)

// Operand is anything that can be promoted to a Value: a *Value or a
// numeric literal.
type Operand = autodiff.Operand

// Edge connects an operand to the Value that consumed it.
type Edge = autodiff.Edge

// CorruptGraphError reports a node whose operation record is unusable.
type CorruptGraphError = autodiff.CorruptGraphError

// ErrCorruptGraph is matched by every CorruptGraphError.
var ErrCorruptGraph = autodiff.ErrCorruptGraph

// NewValue creates a leaf with the given data and zero gradient.
func NewValue(data float64) *Value {
	return autodiff.NewValue(data)
}

// Values creates one leaf per element of xs.
func Values(xs ...float64) []*Value {
	return autodiff.Values(xs...)
}

// Lift promotes x to a Value. A *Value is returned as is.
func Lift[T Operand](x T) *Value {
	return autodiff.Lift(x)
}

// Add returns a + b.
func Add[A, B Operand](a A, b B) *Value {
	return autodiff.Add(a, b)
}

// Sub returns a - b.
func Sub[A, B Operand](a A, b B) *Value {
	return autodiff.Sub(a, b)
}

// Mul returns a * b.
func Mul[A, B Operand](a A, b B) *Value {
	return autodiff.Mul(a, b)
}

// Pow returns a ** b.
func Pow[A, B Operand](a A, b B) *Value {
	return autodiff.Pow(a, b)
}

// Div returns a / b, built as a * b**-1.
func Div[A, B Operand](a A, b B) *Value {
	return autodiff.Div(a, b)
}

// Neg returns -a, built as a * -1.
func Neg[A Operand](a A) *Value {
	return autodiff.Neg(a)
}

// ReLU returns max(a, 0).
func ReLU[A Operand](a A) *Value {
	return autodiff.ReLU(a)
}

// Sum adds xs to start left to right.
func Sum(start *Value, xs ...*Value) *Value {
	return autodiff.Sum(start, xs...)
}

// TopoSort returns every node reachable from root, operands before
// consumers.
func TopoSort(root *Value) ([]*Value, error) {
	return autodiff.TopoSort(root)
}

// Trace returns the nodes and operand edges reachable from root without
// validating or mutating them.
func Trace(root *Value) ([]*Value, []Edge) {
	return autodiff.Trace(root)
}
