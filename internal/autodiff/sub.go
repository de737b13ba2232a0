package autodiff

// SubOp records output = x - y.
//
// Backward pass:
//   - d(x-y)/dx = 1, so grad_x += grad
//   - d(x-y)/dy = -1, so grad_y -= grad
type SubOp struct {
	x, y *Value
}

// Sub returns v - other. Operand order is preserved.
func (v *Value) Sub(other *Value) *Value {
	return newResult(v.data-other.data, &SubOp{x: v, y: other})
}

// Kind returns KindSub.
func (op *SubOp) Kind() Kind { return KindSub }

// Operands returns [x, y].
func (op *SubOp) Operands() []*Value { return []*Value{op.x, op.y} }

func (op *SubOp) backward(out *Value) {
	op.x.grad += out.grad
	op.y.grad += -out.grad
}
