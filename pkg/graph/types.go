package graph

import (
	"math"
	"strings"

	"github.com/matzehuels/codemap/pkg/errors"
)

// GroupKeySep joins group path segments into composite group keys.
const GroupKeySep = "::"

// DefaultVal is the visual size (and collision radius) assigned to nodes
// that do not specify one.
const DefaultVal = 5.0

// =============================================================================
// Node
// =============================================================================

// Node is a single code symbol (module, class, function) in the graph.
//
// Identity and grouping metadata are fixed at creation; only the position and
// velocity fields are mutated by the force layer.
type Node struct {
	ID        string   // Unique identity
	Group     string   // Outermost grouping label; alias for GroupPath[0]
	GroupPath []string // Grouping labels, outermost first; empty for ungrouped nodes
	Val       float64  // Visual size, used as collision radius

	// Mutable simulation state. X and Y are NaN until first placement.
	X, Y   float64
	VX, VY float64
}

// NewNode creates a node with an unset position and a defaulted Val.
// If groupPath is non-empty, Group is derived from its first segment.
func NewNode(id string, groupPath ...string) *Node {
	n := &Node{
		ID:        id,
		GroupPath: groupPath,
		Val:       DefaultVal,
		X:         math.NaN(),
		Y:         math.NaN(),
	}
	if len(groupPath) > 0 {
		n.Group = groupPath[0]
	}
	return n
}

// Placed reports whether the node has a finite position.
func (n *Node) Placed() bool {
	return !math.IsNaN(n.X) && !math.IsInf(n.X, 0) &&
		!math.IsNaN(n.Y) && !math.IsInf(n.Y, 0)
}

// Radius returns the node's collision radius (Val, floored at DefaultVal/2).
func (n *Node) Radius() float64 {
	if n.Val <= 0 {
		return DefaultVal / 2
	}
	return n.Val
}

// GroupKey returns the composite group key at the given nesting level:
// GroupPath[0..level] joined with "::". If the path is absent or too short,
// the deepest available prefix is used, falling back to Group. Returns ""
// for ungrouped nodes.
func (n *Node) GroupKey(level int) string {
	if len(n.GroupPath) == 0 {
		return n.Group
	}
	end := level + 1
	if end > len(n.GroupPath) {
		end = len(n.GroupPath)
	}
	return strings.Join(n.GroupPath[:end], GroupKeySep)
}

// LeafLabel returns the last segment of the node ID, stripping any
// "::"-joined group prefix. Used when emitting filter values.
func (n *Node) LeafLabel() string {
	if i := strings.LastIndex(n.ID, GroupKeySep); i >= 0 {
		return n.ID[i+len(GroupKeySep):]
	}
	return n.ID
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed call/reference edge between two node identities.
// Edges are immutable during simulation. Self-loops are permitted but
// contribute no force and are skipped by geometric metrics.
type Edge struct {
	Source string
	Target string
	Weight float64 // Non-negative; informs rendering, not force magnitude
}

// IsSelfLoop reports whether the edge connects a node to itself.
func (e *Edge) IsSelfLoop() bool { return e.Source == e.Target }

// =============================================================================
// Graph
// =============================================================================

// Graph holds nodes and edges with an identity index.
type Graph struct {
	nodes []*Node
	edges []*Edge
	byID  map[string]*Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{byID: make(map[string]*Node)}
}

// AddNode adds a node to the graph.
// Returns INVALID_GRAPH if the ID is empty or already present.
func (g *Graph) AddNode(n *Node) error {
	if n == nil || n.ID == "" {
		return errors.New(errors.ErrCodeInvalidGraph, "node ID must not be empty")
	}
	if _, exists := g.byID[n.ID]; exists {
		return errors.New(errors.ErrCodeInvalidGraph, "duplicate node ID %q", n.ID)
	}
	if len(n.GroupPath) > 0 && n.Group == "" {
		n.Group = n.GroupPath[0]
	}
	g.nodes = append(g.nodes, n)
	g.byID[n.ID] = n
	return nil
}

// AddEdge adds an edge to the graph.
// Returns INVALID_GRAPH if either endpoint is unknown.
func (g *Graph) AddEdge(e *Edge) error {
	if _, ok := g.byID[e.Source]; !ok {
		return errors.New(errors.ErrCodeInvalidGraph, "edge source %q not found", e.Source)
	}
	if _, ok := g.byID[e.Target]; !ok {
		return errors.New(errors.ErrCodeInvalidGraph, "edge target %q not found", e.Target)
	}
	if e.Weight < 0 {
		return errors.New(errors.ErrCodeInvalidGraph, "edge %s→%s has negative weight", e.Source, e.Target)
	}
	g.edges = append(g.edges, e)
	return nil
}

// Nodes returns the live node slice. Forces mutate these nodes in place.
func (g *Graph) Nodes() []*Node { return g.nodes }

// Edges returns the edge slice.
func (g *Graph) Edges() []*Edge { return g.edges }

// NodeByID returns the node with the given ID, or nil.
func (g *Graph) NodeByID(id string) *Node { return g.byID[id] }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Degree returns the number of non-self-loop edges incident to id.
func (g *Graph) Degree(id string) int {
	d := 0
	for _, e := range g.edges {
		if e.IsSelfLoop() {
			continue
		}
		if e.Source == id || e.Target == id {
			d++
		}
	}
	return d
}

// Neighbors returns the distinct nodes adjacent to id (either direction),
// excluding the node itself.
func (g *Graph) Neighbors(id string) []*Node {
	seen := make(map[string]bool)
	var out []*Node
	for _, e := range g.edges {
		var other string
		switch {
		case e.Source == id && e.Target != id:
			other = e.Target
		case e.Target == id && e.Source != id:
			other = e.Source
		default:
			continue
		}
		if !seen[other] {
			seen[other] = true
			out = append(out, g.byID[other])
		}
	}
	return out
}

// NumLevels returns the number of blob nesting levels in the graph: the
// maximum GroupPath length over all nodes. Level indices run [0, NumLevels).
func (g *Graph) NumLevels() int {
	max := 0
	for _, n := range g.nodes {
		if len(n.GroupPath) > max {
			max = len(n.GroupPath)
		}
	}
	return max
}

// GroupKeys returns the distinct non-empty group keys at the given level,
// in first-seen order.
func (g *Graph) GroupKeys(level int) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, n := range g.nodes {
		k := n.GroupKey(level)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

// GroupMembers returns the nodes whose group key at the given level equals key.
func (g *Graph) GroupMembers(level int, key string) []*Node {
	var out []*Node
	for _, n := range g.nodes {
		if n.GroupKey(level) == key {
			out = append(out, n)
		}
	}
	return out
}
