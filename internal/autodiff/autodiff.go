// Package autodiff implements scalar reverse-mode automatic differentiation.
//
// Every number taking part in a computation is wrapped in a Value that
// remembers how it was produced. Combining values through the forward
// operations (Add, Sub, Mul, Pow, ReLU and the Div/Neg rewrites built on top
// of them) grows a directed acyclic graph on the fly. Calling Backward on the
// final Value walks that graph once and accumulates d(root)/d(node) into the
// gradient slot of every reachable node.
//
// Architecture:
//   - Value: scalar data, accumulated gradient and provenance (an Op)
//   - Op: sealed set of operation records (LeafOp, AddOp, SubOp, MulOp, PowOp, ReLUOp)
//   - Forward: methods on *Value plus generic functions accepting literals
//   - Backward: iterative topological sort, then per-op chain rule in reverse
//
// Usage:
//
//	a := autodiff.NewValue(-4)
//	b := autodiff.NewValue(2)
//	d := autodiff.Add(a.Mul(b), autodiff.Pow(b, 3)) // d = a*b + b³
//
//	if err := d.Backward(); err != nil {
//	    return err
//	}
//	fmt.Println(a.Grad(), b.Grad()) // 2 8
//
// Gradients accumulate. Callers reset them with ZeroGrad between independent
// backward passes; the engine does not do it for them.
package autodiff
