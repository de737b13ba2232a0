package autodiff

// MulOp records output = x * y.
//
// Backward pass:
//   - d(x*y)/dx = y, so grad_x += grad * y
//   - d(x*y)/dy = x, so grad_y += grad * x
type MulOp struct {
	x, y *Value
}

// Mul returns v * other.
func (v *Value) Mul(other *Value) *Value {
	return newResult(v.data*other.data, &MulOp{x: v, y: other})
}

// Kind returns KindMul.
func (op *MulOp) Kind() Kind { return KindMul }

// Operands returns [x, y].
func (op *MulOp) Operands() []*Value { return []*Value{op.x, op.y} }

func (op *MulOp) backward(out *Value) {
	op.x.grad += out.grad * op.y.data
	op.y.grad += out.grad * op.x.data
}
