package autodiff

// Edge connects an operand to the Value that consumed it.
type Edge struct {
	From *Value // Operand
	To   *Value // Consumer
	Slot int    // Operand position in To's record (0 or 1)
}

// Trace enumerates the nodes reachable from root and the operand edges
// between them, for read-only tooling such as graph rendering.
//
// Nodes are returned in the same post-order Backward uses. A node consumed
// twice by the same operation (x + x) yields two edges with different
// slots. Trace never touches data or gradients and tolerates malformed
// records by skipping missing operands.
func Trace(root *Value) ([]*Value, []Edge) {
	if root == nil {
		return nil, nil
	}

	var edges []Edge
	nodes, _ := walk(root, func(v *Value) ([]*Value, error) {
		if v.op == nil {
			return nil, nil
		}
		operands := v.op.Operands()
		present := operands[:0]
		for slot, operand := range operands {
			if operand == nil {
				continue
			}
			edges = append(edges, Edge{From: operand, To: v, Slot: slot})
			present = append(present, operand)
		}
		return present, nil
	})

	return nodes, edges
}
