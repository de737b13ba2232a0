package autodiff

import "fmt"

// Value is a node in the computation graph.
//
// A Value holds strong references to its operands through its Op, so the
// whole upstream graph stays alive as long as any downstream Value does.
// Values are compared by identity: two Values holding the same number are
// distinct graph vertices.
type Value struct {
	data  float64 // Forward result, frozen at construction
	grad  float64 // Accumulated d(root)/d(this)
	op    Op      // Provenance
	label string  // Optional display name
}

// NewValue creates a leaf Value from a literal.
func NewValue(data float64) *Value {
	return &Value{
		data: data,
		op:   LeafOp{},
	}
}

// Values creates one leaf per literal.
func Values(xs ...float64) []*Value {
	out := make([]*Value, len(xs))
	for i, x := range xs {
		out[i] = NewValue(x)
	}
	return out
}

// newResult creates a non-leaf Value produced by op.
func newResult(data float64, op Op) *Value {
	return &Value{
		data: data,
		op:   op,
	}
}

// Data returns the forward value.
func (v *Value) Data() float64 {
	return v.data
}

// SetData overwrites the forward value.
//
// Intended for parameter updates between training iterations. Values
// already computed from v are not recomputed.
func (v *Value) SetData(data float64) {
	v.data = data
}

// Grad returns the accumulated gradient.
//
// Meaningful only after Backward has run on some Value downstream of v.
func (v *Value) Grad() float64 {
	return v.grad
}

// ZeroGrad resets the gradient to zero.
func (v *Value) ZeroGrad() {
	v.grad = 0
}

// AddGrad adds delta to the gradient.
//
// Used to merge gradients computed on independent replica graphs into shared
// parameters. Not safe for concurrent use: callers serialize merges.
func (v *Value) AddGrad(delta float64) {
	v.grad += delta
}

// Op returns the operation record that produced v.
func (v *Value) Op() Op {
	return v.op
}

// Label returns the display name set with SetLabel.
func (v *Value) Label() string {
	return v.label
}

// SetLabel sets a display name and returns v for chaining.
func (v *Value) SetLabel(label string) *Value {
	v.label = label
	return v
}

// IsLeaf reports whether v was built directly from a literal.
func (v *Value) IsLeaf() bool {
	_, ok := v.op.(LeafOp)
	return ok
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	if v.label != "" {
		return fmt.Sprintf("Value(%s, data=%g, grad=%g)", v.label, v.data, v.grad)
	}
	return fmt.Sprintf("Value(data=%g, grad=%g)", v.data, v.grad)
}
