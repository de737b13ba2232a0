package autodiff

// Kind identifies the operator that produced a Value.
type Kind uint8

// Operator kinds. The set is closed.
const (
	KindLeaf Kind = iota
	KindAdd
	KindSub
	KindMul
	KindPow
	KindReLU
)

// String returns the operator name.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindAdd:
		return "add"
	case KindSub:
		return "sub"
	case KindMul:
		return "mul"
	case KindPow:
		return "pow"
	case KindReLU:
		return "relu"
	default:
		return "unknown"
	}
}

// Symbol returns the short operator notation used in graph renderings.
func (k Kind) Symbol() string {
	switch k {
	case KindAdd:
		return "+"
	case KindSub:
		return "-"
	case KindMul:
		return "*"
	case KindPow:
		return "**"
	case KindReLU:
		return "ReLU"
	default:
		return ""
	}
}

// Arity returns the number of operands the operator consumes.
func (k Kind) Arity() int {
	switch k {
	case KindLeaf:
		return 0
	case KindReLU:
		return 1
	default:
		return 2
	}
}

// Op is the operation record describing how a Value was produced.
//
// The set of implementations is closed: LeafOp, *AddOp, *SubOp, *MulOp,
// *PowOp and *ReLUOp. Each carries references to its operand Values and the
// gradient rule for its operator.
type Op interface {
	// Kind returns the operator tag.
	Kind() Kind

	// Operands returns the consumed Values in order (operand1, operand2).
	// The returned slice is freshly allocated; modifying it does not
	// affect the graph.
	Operands() []*Value

	// backward accumulates out.grad into the operands' gradients.
	// Operands are guaranteed non-nil when this is called.
	backward(out *Value)
}

// LeafOp marks a Value constructed directly from a literal.
type LeafOp struct{}

// Kind returns KindLeaf.
func (LeafOp) Kind() Kind { return KindLeaf }

// Operands returns nil: a leaf has no operands.
func (LeafOp) Operands() []*Value { return nil }

func (LeafOp) backward(*Value) {}
