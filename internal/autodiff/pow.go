package autodiff

import "math"

// PowOp records output = base ** exp, where both operands are Values.
//
// Backward pass:
//   - d(a^b)/da = b * a^(b-1)
//   - d(a^b)/db = a^b * ln(a), skipped when a <= 0 where ln is undefined
//
// Forward results follow IEEE 754: a negative base with a non-integer
// exponent yields NaN, zero with a negative exponent yields +Inf.
type PowOp struct {
	base, exp *Value
}

// Pow returns v ** exp.
func (v *Value) Pow(exp *Value) *Value {
	return newResult(math.Pow(v.data, exp.data), &PowOp{base: v, exp: exp})
}

// Kind returns KindPow.
func (op *PowOp) Kind() Kind { return KindPow }

// Operands returns [base, exp].
func (op *PowOp) Operands() []*Value { return []*Value{op.base, op.exp} }

func (op *PowOp) backward(out *Value) {
	a, b := op.base.data, op.exp.data

	op.base.grad += out.grad * b * math.Pow(a, b-1)

	// ln(a) is undefined for a <= 0: that term contributes nothing.
	if a > 0 {
		op.exp.grad += out.grad * math.Pow(a, b) * math.Log(a)
	}
}
