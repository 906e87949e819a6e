package selection

import (
	"github.com/matzehuels/codemap/pkg/force"
	"github.com/matzehuels/codemap/pkg/geom"
	"github.com/matzehuels/codemap/pkg/graph"
)

// ZoomState is the last known pan/zoom transform of the canvas:
// screen = graph*K + (X, Y).
type ZoomState struct {
	K float64 // Scale; 1 when unset.
	X float64 // Pan offset.
	Y float64
}

// ScreenToGraph inverse-transforms a raw pointer position into graph space.
// A zero scale is treated as identity.
func (z ZoomState) ScreenToGraph(sx, sy float64) (float64, float64) {
	k := z.K
	if k == 0 {
		k = 1
	}
	return (sx - z.X) / k, (sy - z.Y) / k
}

// BlobHull returns the clickable outline of a group at a nesting level: the
// convex hull of its placed members, expanded outward by the level's blob
// padding to match the rendered boundary. Groups with one or two placed
// members get synthetic wing polygons so they remain clickable.
// Returns nil when the group has no placed members.
func BlobHull(g *graph.Graph, level int, key string) []geom.Point {
	var pts []geom.Point
	for _, n := range g.GroupMembers(level, key) {
		if n.Placed() {
			pts = append(pts, geom.Point{X: n.X, Y: n.Y})
		}
	}
	if len(pts) == 0 {
		return nil
	}

	pad := force.LevelPadding(level)
	hull := geom.ConvexHull(pts)
	switch len(hull) {
	case 1:
		return geom.HullWings(hull[0], hull[0], pad)
	case 2:
		return geom.ExpandPolygon(geom.HullWings(hull[0], hull[1], pad/2), pad/2)
	default:
		return geom.ExpandPolygon(hull, pad)
	}
}

// HitBlob returns the key of the first group at the given level whose padded
// hull contains the graph-space point, or "" when the point is outside every
// hull. Groups are tested in the graph's first-seen key order.
func HitBlob(g *graph.Graph, level int, gx, gy float64) string {
	p := geom.Point{X: gx, Y: gy}
	for _, key := range g.GroupKeys(level) {
		hull := BlobHull(g, level, key)
		if len(hull) >= 3 && geom.PointInPolygon(p, hull) {
			return key
		}
	}
	return ""
}

// HitNode returns the ID of the first placed node whose circle contains the
// graph-space point, or "".
func HitNode(g *graph.Graph, gx, gy float64) string {
	p := geom.Point{X: gx, Y: gy}
	for _, n := range g.Nodes() {
		if !n.Placed() {
			continue
		}
		if geom.Dist(p, geom.Point{X: n.X, Y: n.Y}) <= n.Radius() {
			return n.ID
		}
	}
	return ""
}
