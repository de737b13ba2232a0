package autodiff

// AddOp records output = x + y.
//
// Backward pass:
//   - d(x+y)/dx = 1, so grad_x += grad
//   - d(x+y)/dy = 1, so grad_y += grad
type AddOp struct {
	x, y *Value
}

// Add returns v + other.
func (v *Value) Add(other *Value) *Value {
	return newResult(v.data+other.data, &AddOp{x: v, y: other})
}

// Kind returns KindAdd.
func (op *AddOp) Kind() Kind { return KindAdd }

// Operands returns [x, y].
func (op *AddOp) Operands() []*Value { return []*Value{op.x, op.y} }

func (op *AddOp) backward(out *Value) {
	op.x.grad += out.grad
	op.y.grad += out.grad
}
