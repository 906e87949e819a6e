package force

import (
	"math"

	"github.com/matzehuels/codemap/pkg/graph"
)

// ManyBody applies pairwise charge forces between all placed nodes. Negative
// strength repels (the usual setting); positive attracts. Magnitude falls off
// with the square of distance, clamped below minDistance to avoid blowups
// when nodes coincide.
type ManyBody struct {
	// Strength of the charge. Default -30 when zero.
	Strength float64

	nodes []*graph.Node
}

const manyBodyMinDistance = 1.0

// Initialize establishes the node slice reference.
func (f *ManyBody) Initialize(nodes []*graph.Node) { f.nodes = nodes }

// Apply accumulates charge forces into node velocities.
func (f *ManyBody) Apply(alpha float64) {
	strength := f.Strength
	if strength == 0 {
		strength = -30
	}
	for i := 0; i < len(f.nodes); i++ {
		a := f.nodes[i]
		if !a.Placed() {
			continue
		}
		for j := i + 1; j < len(f.nodes); j++ {
			b := f.nodes[j]
			if !b.Placed() {
				continue
			}
			dx, dy := b.X-a.X, b.Y-a.Y
			distSq := dx*dx + dy*dy
			if distSq < manyBodyMinDistance {
				distSq = manyBodyMinDistance
				dx, dy = manyBodyMinDistance, 0
			}
			// Negative k pushes a away from b and b away from a.
			k := strength * alpha / distSq
			a.VX += dx * k
			a.VY += dy * k
			b.VX -= dx * k
			b.VY -= dy * k
		}
	}
}

// Collision resolves circle overlaps between nodes, using each node's Val as
// its radius. Overlapping pairs are pushed apart positionally, split between
// both nodes, scaled by Strength.
type Collision struct {
	// Strength in [0, 1]. Default 0.7 when zero.
	Strength float64

	// Padding adds clearance beyond the sum of radii.
	Padding float64

	nodes []*graph.Node
}

// Initialize establishes the node slice reference.
func (f *Collision) Initialize(nodes []*graph.Node) { f.nodes = nodes }

// Apply separates overlapping node pairs.
func (f *Collision) Apply(alpha float64) {
	strength := f.Strength
	if strength == 0 {
		strength = 0.7
	}
	for i := 0; i < len(f.nodes); i++ {
		a := f.nodes[i]
		if !a.Placed() {
			continue
		}
		for j := i + 1; j < len(f.nodes); j++ {
			b := f.nodes[j]
			if !b.Placed() {
				continue
			}
			minDist := a.Radius() + b.Radius() + f.Padding
			dx, dy := b.X-a.X, b.Y-a.Y
			d := math.Hypot(dx, dy)
			if d >= minDist {
				continue
			}
			if d == 0 {
				// Coincident: split along +x.
				dx, d = 1e-6, 1e-6
			}
			overlap := (minDist - d) * strength / 2
			ux, uy := dx/d, dy/d
			a.X -= ux * overlap
			a.Y -= uy * overlap
			b.X += ux * overlap
			b.Y += uy * overlap
		}
	}
}

// Link applies spring forces along edges, pulling each endpoint pair toward
// Distance apart. Self-loops contribute no force.
type Link struct {
	// Edges to spring. Endpoints missing from the node slice are ignored.
	Edges []*graph.Edge

	// Distance is the ideal edge length. Default 60 when zero.
	Distance float64

	// Strength scales the pull. Default 0.1 when zero.
	Strength float64

	source []*graph.Node
	target []*graph.Node
}

// Initialize resolves edge endpoints against the node slice.
func (f *Link) Initialize(nodes []*graph.Node) {
	byID := make(map[string]*graph.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	f.source = f.source[:0]
	f.target = f.target[:0]
	for _, e := range f.Edges {
		if e.IsSelfLoop() {
			continue
		}
		s, t := byID[e.Source], byID[e.Target]
		if s == nil || t == nil {
			continue
		}
		f.source = append(f.source, s)
		f.target = append(f.target, t)
	}
}

// Apply accumulates spring forces into endpoint velocities.
func (f *Link) Apply(alpha float64) {
	distance := f.Distance
	if distance == 0 {
		distance = 60
	}
	strength := f.Strength
	if strength == 0 {
		strength = 0.1
	}
	for i := range f.source {
		s, t := f.source[i], f.target[i]
		if !s.Placed() || !t.Placed() {
			continue
		}
		dx, dy := t.X-s.X, t.Y-s.Y
		d := math.Hypot(dx, dy)
		if d == 0 {
			continue
		}
		k := (d - distance) * strength * alpha / d
		hx, hy := dx*k/2, dy*k/2
		s.VX += hx
		s.VY += hy
		t.VX -= hx
		t.VY -= hy
	}
}
