package autodiff

// Operand is anything that can take part in a forward operation: an existing
// Value or a numeric literal. Literals are promoted to fresh leaves.
type Operand interface {
	*Value | float64 | float32 | int | int64
}

// Lift normalizes an Operand to a Value.
//
// A *Value is returned as is (same graph vertex). A literal becomes a new
// leaf every time, so lifting the same literal twice yields two vertices.
func Lift[T Operand](x T) *Value {
	switch v := any(x).(type) {
	case *Value:
		return v
	case float64:
		return NewValue(v)
	case float32:
		return NewValue(float64(v))
	case int:
		return NewValue(float64(v))
	case int64:
		return NewValue(float64(v))
	default:
		panic("autodiff: unsupported operand type")
	}
}

// Add returns a + b.
func Add[A, B Operand](a A, b B) *Value {
	return Lift(a).Add(Lift(b))
}

// Sub returns a - b. Sub(1, x) builds a leaf for 1 and computes 1 - x.
func Sub[A, B Operand](a A, b B) *Value {
	return Lift(a).Sub(Lift(b))
}

// Mul returns a * b.
func Mul[A, B Operand](a A, b B) *Value {
	return Lift(a).Mul(Lift(b))
}

// Pow returns a ** b.
func Pow[A, B Operand](a A, b B) *Value {
	return Lift(a).Pow(Lift(b))
}

// Div returns a / b as a * b^-1.
func Div[A, B Operand](a A, b B) *Value {
	return Lift(a).Div(Lift(b))
}

// Neg returns -a as a * -1.
func Neg[A Operand](a A) *Value {
	return Lift(a).Neg()
}

// ReLU returns max(0, a).
func ReLU[A Operand](a A) *Value {
	return Lift(a).ReLU()
}

// Sum returns the left fold start + xs[0] + xs[1] + ...
func Sum(start *Value, xs ...*Value) *Value {
	acc := start
	for _, x := range xs {
		acc = acc.Add(x)
	}
	return acc
}
