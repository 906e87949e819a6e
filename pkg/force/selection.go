package force

import (
	"math"

	"github.com/matzehuels/codemap/pkg/graph"
)

// Selection force strengths. Radial is stiffer than the chain gather: a
// single-node selection should snap its neighborhood into rings, while a
// multi-node chain only drifts gently toward its centroid.
const (
	radialStrength = 0.14
	chainStrength  = 0.06
)

// RadialForce arranges the BFS neighborhood of a selected node on concentric
// rings: a node at depth d is pulled toward radius d*RadiusPer around the
// selected node. Nodes without a depth entry are untouched; the selected
// node itself is left where it is.
//
// Do not register this force while a blob containment force is active; the
// two are mutually exclusive by design.
type RadialForce struct {
	// CenterID is the selected (pinned) node.
	CenterID string

	// Depths maps node ID → BFS hop count from CenterID, typically from
	// graph.DepthsFrom with a hop limit.
	Depths map[string]int

	// RadiusPer is the ring spacing in graph units.
	RadiusPer float64

	nodes  []*graph.Node
	center *graph.Node
}

// Initialize establishes the node slice reference and resolves the center.
func (f *RadialForce) Initialize(nodes []*graph.Node) {
	f.nodes = nodes
	f.center = nil
	for _, n := range nodes {
		if n.ID == f.CenterID {
			f.center = n
			break
		}
	}
}

// Apply pulls each reachable node's velocity toward its depth ring.
func (f *RadialForce) Apply(alpha float64) {
	if f.center == nil || !f.center.Placed() {
		return
	}
	for _, n := range f.nodes {
		if n == f.center || !n.Placed() {
			continue
		}
		depth, ok := f.Depths[n.ID]
		if !ok {
			continue
		}
		target := float64(depth) * f.RadiusPer
		dx, dy := n.X-f.center.X, n.Y-f.center.Y
		cur := math.Hypot(dx, dy)
		if cur == 0 {
			// Coincident with the center: push outward along +x.
			n.VX += target * radialStrength * alpha
			continue
		}
		k := (target - cur) * radialStrength * alpha / cur
		n.VX += dx * k
		n.VY += dy * k
	}
}

// ChainCentroidForce gathers the connecting chain of a multi-node selection
// around the selection centroid. Selected gives the selected node IDs (2+);
// Chain the IDs on a shortest path between any two of them, typically from
// graph.ConnectingChain.
//
// Like [RadialForce], this must not run alongside blob containment.
type ChainCentroidForce struct {
	Selected []string
	Chain    []string

	nodes    []*graph.Node
	selected []*graph.Node
	chain    []*graph.Node
}

// Initialize resolves the selected and chain node references.
func (f *ChainCentroidForce) Initialize(nodes []*graph.Node) {
	f.nodes = nodes
	byID := make(map[string]*graph.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	f.selected = f.selected[:0]
	for _, id := range f.Selected {
		if n := byID[id]; n != nil {
			f.selected = append(f.selected, n)
		}
	}
	f.chain = f.chain[:0]
	for _, id := range f.Chain {
		if n := byID[id]; n != nil {
			f.chain = append(f.chain, n)
		}
	}
}

// Apply pulls every chain node's velocity toward the current centroid of the
// selected nodes.
func (f *ChainCentroidForce) Apply(alpha float64) {
	var cx, cy float64
	placed := 0
	for _, n := range f.selected {
		if !n.Placed() {
			continue
		}
		cx += n.X
		cy += n.Y
		placed++
	}
	if placed < 2 {
		return
	}
	cx /= float64(placed)
	cy /= float64(placed)

	k := chainStrength * alpha
	for _, n := range f.chain {
		if !n.Placed() {
			continue
		}
		n.VX += (cx - n.X) * k
		n.VY += (cy - n.Y) * k
	}
}
