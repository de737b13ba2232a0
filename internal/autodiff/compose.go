package autodiff

// Div returns v / other, rewritten as v * other^-1.
//
// Division has no operator of its own: the gradient flows through the
// MulOp and PowOp it expands to.
func (v *Value) Div(other *Value) *Value {
	return v.Mul(other.Pow(NewValue(-1)))
}

// Neg returns -v, rewritten as v * -1.
func (v *Value) Neg() *Value {
	return v.Mul(NewValue(-1))
}
