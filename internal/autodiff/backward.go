package autodiff

import "fmt"

// Backward computes d(v)/d(node) for every node reachable from v and adds it
// into each node's gradient.
//
// Algorithm:
//  1. Order the reachable graph with a depth-first post-order walk
//     (operand1 before operand2, each node visited once by identity)
//  2. Seed v's gradient with 1
//  3. Walk the order in reverse, letting each node push its gradient into
//     its operands through the operator's chain rule
//
// Reverse post-order guarantees that a node has received the contributions
// of all of its consumers before it propagates further, so fan-out (a node
// used by several consumers, or twice by the same one) accumulates correctly.
//
// Precondition: gradients must be zeroed by the caller between independent
// backward passes. Calling Backward twice without ZeroGrad sums both passes.
//
// The graph is validated while it is ordered. If any record is malformed a
// *CorruptGraphError is returned and no gradient is modified.
func (v *Value) Backward() error {
	order, err := TopoSort(v)
	if err != nil {
		return err
	}

	v.grad = 1
	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		node.op.backward(node)
	}

	return nil
}

// TopoSort returns every node reachable from root in post-order: each node
// appears after all of its operands, and root comes last.
//
// The walk uses an explicit stack, so deep graphs (long chains built in a
// training loop) do not grow the goroutine stack.
func TopoSort(root *Value) ([]*Value, error) {
	if root == nil {
		return nil, &CorruptGraphError{Op: "<nil>", Reason: "nil root"}
	}
	return walk(root, checkedOperands)
}

// checkedOperands returns the operands of v after validating its record
// against the operator's arity.
func checkedOperands(v *Value) ([]*Value, error) {
	if v.op == nil {
		return nil, &CorruptGraphError{Op: "<nil>", Reason: "missing operation record"}
	}

	kind := v.op.Kind()
	operands := v.op.Operands()
	if len(operands) != kind.Arity() {
		return nil, &CorruptGraphError{
			Op:     kind.String(),
			Reason: fmt.Sprintf("expected %d operands, got %d", kind.Arity(), len(operands)),
		}
	}
	for i, operand := range operands {
		if operand == nil {
			return nil, &CorruptGraphError{
				Op:     kind.String(),
				Reason: fmt.Sprintf("operand%d is missing", i+1),
			}
		}
	}

	return operands, nil
}

// frame is one level of the explicit DFS stack.
type frame struct {
	node     *Value
	operands []*Value
	next     int // Index of the next operand to visit
}

// walk performs an iterative depth-first post-order traversal from root.
// next supplies the operands of a node, or an error that aborts the walk.
func walk(root *Value, next func(*Value) ([]*Value, error)) ([]*Value, error) {
	operands, err := next(root)
	if err != nil {
		return nil, err
	}

	visited := map[*Value]struct{}{root: {}}
	stack := []frame{{node: root, operands: operands}}
	order := make([]*Value, 0, 16)

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.next < len(top.operands) {
			child := top.operands[top.next]
			top.next++
			if _, seen := visited[child]; seen {
				continue
			}
			visited[child] = struct{}{}

			childOperands, err := next(child)
			if err != nil {
				return nil, err
			}
			stack = append(stack, frame{node: child, operands: childOperands})
			continue
		}

		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}

	return order, nil
}
