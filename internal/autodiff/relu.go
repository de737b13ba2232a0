package autodiff

// ReLUOp records output = max(0, x).
//
// Backward pass:
//   - d(ReLU(x))/dx = 1 if x > 0, else 0
type ReLUOp struct {
	x *Value
}

// ReLU returns v if v > 0, else 0.
func (v *Value) ReLU() *Value {
	data := 0.0
	if v.data > 0 {
		data = v.data
	}
	return newResult(data, &ReLUOp{x: v})
}

// Kind returns KindReLU.
func (op *ReLUOp) Kind() Kind { return KindReLU }

// Operands returns [x].
func (op *ReLUOp) Operands() []*Value { return []*Value{op.x} }

func (op *ReLUOp) backward(out *Value) {
	if op.x.data > 0 {
		op.x.grad += out.grad
	}
}
