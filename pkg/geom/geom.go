// Package geom provides the small set of 2D geometry primitives used by the
// layout forces, hit-testing, and metrics: distances, centroids, convex hulls,
// segment intersection, and point-in-polygon tests.
//
// All functions are pure and allocation-light. Inputs with non-finite
// coordinates are tolerated: aggregate functions skip them rather than
// propagating NaN.
package geom

import (
	"math"
	"slices"
)

// Point is a position in graph space.
type Point struct {
	X float64
	Y float64
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Centroid returns the mean position of all finite points.
// Returns the zero point if no finite points exist.
func Centroid(pts []Point) Point {
	var sx, sy float64
	n := 0
	for _, p := range pts {
		if !p.IsFinite() {
			continue
		}
		sx += p.X
		sy += p.Y
		n++
	}
	if n == 0 {
		return Point{}
	}
	return Point{X: sx / float64(n), Y: sy / float64(n)}
}

// cross returns the z-component of (b-a) × (c-a).
// Positive when c is left of the directed line a→b.
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// ConvexHull computes the convex hull of the finite input points using the
// monotone chain algorithm. The hull is returned in counter-clockwise order
// without the closing point repeated.
//
// Degenerate inputs are returned as-is: 0, 1, or 2 distinct points produce a
// hull of the same size. Callers rendering blob shapes should pass two-point
// hulls through [HullWings] to obtain a drawable polygon.
func ConvexHull(pts []Point) []Point {
	finite := make([]Point, 0, len(pts))
	for _, p := range pts {
		if p.IsFinite() {
			finite = append(finite, p)
		}
	}
	if len(finite) < 3 {
		return finite
	}

	slices.SortFunc(finite, func(a, b Point) int {
		if a.X != b.X {
			if a.X < b.X {
				return -1
			}
			return 1
		}
		if a.Y < b.Y {
			return -1
		}
		if a.Y > b.Y {
			return 1
		}
		return 0
	})

	// Build lower then upper hull.
	var hull []Point
	for _, p := range finite {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(finite) - 2; i >= 0; i-- {
		p := finite[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// HullWings expands the degenerate two-point hull a–b into a four-point
// polygon by inserting synthetic wing points perpendicular to the segment at
// its midpoint. Without wings a two-node blob renders as a zero-area sliver.
func HullWings(a, b Point, width float64) []Point {
	mx, my := (a.X+b.X)/2, (a.Y+b.Y)/2
	dx, dy := b.X-a.X, b.Y-a.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		// Coincident points: emit a small diamond around the point.
		return []Point{
			{a.X - width, a.Y}, {a.X, a.Y - width},
			{a.X + width, a.Y}, {a.X, a.Y + width},
		}
	}
	// Unit normal.
	nx, ny := -dy/d, dx/d
	return []Point{
		a,
		{mx + nx*width, my + ny*width},
		b,
		{mx - nx*width, my - ny*width},
	}
}

// SegmentsCross reports whether the open segments p1–p2 and p3–p4 intersect
// strictly in their interiors. Endpoint touches do not count: the intersection
// parameters must both lie in (0.01, 0.99), which also filters near-endpoint
// grazes that a human would not perceive as a crossing.
func SegmentsCross(p1, p2, p3, p4 Point) bool {
	d1x, d1y := p2.X-p1.X, p2.Y-p1.Y
	d2x, d2y := p4.X-p3.X, p4.Y-p3.Y

	denom := d1x*d2y - d1y*d2x
	if denom == 0 {
		return false // Parallel or collinear.
	}

	t := ((p3.X-p1.X)*d2y - (p3.Y-p1.Y)*d2x) / denom
	u := ((p3.X-p1.X)*d1y - (p3.Y-p1.Y)*d1x) / denom
	return t > 0.01 && t < 0.99 && u > 0.01 && u < 0.99
}

// PointInPolygon reports whether p lies inside the polygon using the ray
// casting rule. The polygon does not need to repeat its closing point.
// Polygons with fewer than 3 vertices contain nothing.
func PointInPolygon(p Point, poly []Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// ExpandPolygon returns a copy of poly with every vertex pushed pad units
// away from the polygon centroid. This mirrors the padded outline that blob
// rendering draws around a raw hull, so hit-testing matches what is on screen.
func ExpandPolygon(poly []Point, pad float64) []Point {
	if len(poly) == 0 || pad == 0 {
		return slices.Clone(poly)
	}
	c := Centroid(poly)
	out := make([]Point, len(poly))
	for i, p := range poly {
		d := Dist(c, p)
		if d == 0 {
			out[i] = p
			continue
		}
		ux, uy := (p.X-c.X)/d, (p.Y-c.Y)/d
		out[i] = Point{X: p.X + ux*pad, Y: p.Y + uy*pad}
	}
	return out
}

// DistToSegment returns the distance from p to the closed segment a–b.
func DistToSegment(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Dist(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Dist(p, Point{X: a.X + t*dx, Y: a.Y + t*dy})
}
