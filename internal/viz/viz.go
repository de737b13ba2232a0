// Package viz renders computation graphs as Graphviz DOT.
//
// Every Value becomes a record node "{ label | data | grad }". Every non-leaf
// Value also gets a small operator node, so an expression c = a * b reads
//
//	a ──▶ (*) ──▶ c
//	b ──┘
//
// Only the read-only node API (Data, Grad, Label, Op) is used. Turning the
// DOT text into an image is left to the graphviz tools.
package viz

import (
	"errors"
	"fmt"

	"github.com/born-ml/micrograd/internal/autodiff"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// ErrRankDir is returned for a layout direction other than LR or TB.
var ErrRankDir = errors.New("viz: rankdir must be LR or TB")

// Options controls rendering.
type Options struct {
	Name    string // Graph name (default: "computation")
	RankDir string // "LR" (default) or "TB"
}

func (o Options) withDefaults() (Options, error) {
	if o.Name == "" {
		o.Name = "computation"
	}
	switch o.RankDir {
	case "":
		o.RankDir = "LR"
	case "LR", "TB":
	default:
		return o, fmt.Errorf("%w: got %q", ErrRankDir, o.RankDir)
	}
	return o, nil
}

// Graph is a computation graph laid out for DOT encoding.
type Graph struct {
	*simple.DirectedGraph
	rankDir string
	values  map[*autodiff.Value]*Node
}

// Node is a vertex of the rendered graph: either a Value record or the
// operator box feeding it.
type Node struct {
	id    int64
	name  string
	attrs []encoding.Attribute
	value *autodiff.Value
}

// ID implements graph.Node.
func (n *Node) ID() int64 { return n.id }

// DOTID implements dot.Node.
func (n *Node) DOTID() string { return n.name }

// Attributes implements encoding.Attributer.
func (n *Node) Attributes() []encoding.Attribute { return n.attrs }

// Value returns the Value behind a record node, nil for operator nodes.
func (n *Node) Value() *autodiff.Value { return n.value }

// attributes is a static encoding.Attributer.
type attributes []encoding.Attribute

func (a attributes) Attributes() []encoding.Attribute { return a }

// DOTAttributers implements dot.Attributers.
func (g *Graph) DOTAttributers() (graphAttrs, nodeAttrs, edgeAttrs encoding.Attributer) {
	return attributes{{Key: "rankdir", Value: g.rankDir}}, attributes{}, attributes{}
}

// NodeFor returns the record node of v, or nil if v is not in the graph.
func (g *Graph) NodeFor(v *autodiff.Value) *Node {
	return g.values[v]
}

// Build lays out the graph reachable from root.
func Build(root *autodiff.Value, opts Options) (*Graph, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, errors.New("viz: nil root")
	}

	nodes, edges := autodiff.Trace(root)

	g := &Graph{
		DirectedGraph: simple.NewDirectedGraph(),
		rankDir:       opts.RankDir,
		values:        make(map[*autodiff.Value]*Node, len(nodes)),
	}

	// Record nodes take ids [0, n), operator nodes [n, 2n).
	n := int64(len(nodes))
	ops := make(map[*autodiff.Value]*Node)
	for i, v := range nodes {
		rec := &Node{
			id:    int64(i),
			name:  fmt.Sprintf("v%d", i),
			value: v,
			attrs: []encoding.Attribute{
				{Key: "shape", Value: "record"},
				{Key: "label", Value: recordLabel(v)},
			},
		}
		g.values[v] = rec
		g.AddNode(rec)

		if v.IsLeaf() || v.Op() == nil {
			continue
		}
		op := &Node{
			id:    n + int64(i),
			name:  fmt.Sprintf("v%d_%s", i, v.Op().Kind()),
			attrs: []encoding.Attribute{{Key: "label", Value: v.Op().Kind().Symbol()}},
		}
		ops[v] = op
		g.AddNode(op)
		g.SetEdge(g.NewEdge(op, rec))
	}

	for _, e := range edges {
		g.SetEdge(g.NewEdge(g.values[e.From], ops[e.To]))
	}

	return g, nil
}

// Marshal renders the graph reachable from root as DOT text.
func Marshal(root *autodiff.Value, opts Options) ([]byte, error) {
	g, err := Build(root, opts)
	if err != nil {
		return nil, err
	}
	name := opts.Name
	if name == "" {
		name = "computation"
	}
	return dot.Marshal(g, name, "", "  ")
}

func recordLabel(v *autodiff.Value) string {
	return fmt.Sprintf("{ %s | data %.4f | grad %.4f }", v.Label(), v.Data(), v.Grad())
}

var _ graph.Directed = (*Graph)(nil)
