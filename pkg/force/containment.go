package force

import (
	"math"
	"slices"

	"github.com/matzehuels/codemap/pkg/graph"
)

// Containment tuning constants. These are deliberately not configurable:
// they encode equilibrium behavior the rest of the force model depends on.
const (
	// attractAlphaFloor keeps centroid attraction alive at low alpha.
	// Without it, charge repulsion (alpha-independent in effect once nodes
	// drift) is unopposed after cooling and nodes leak outward permanently.
	attractAlphaFloor = 0.05

	// minGroupRadius floors each group's radius in the separation check so
	// single-node groups do not collapse the desired-distance computation.
	minGroupRadius = 40.0

	// maxBoundaryPush caps the fixed-pixel margin-zone correction per tick.
	maxBoundaryPush = 6.0

	// maxBoundaryPull caps the fractional pull applied to a node that has
	// already crossed past the Voronoi midpoint.
	maxBoundaryPull = 0.3
)

// Per-level base parameters for [NewNestedBlobForce].
const (
	baseAttractStrength    = 0.08
	baseSeparationStrength = 8.0
	basePadding            = 60.0
)

// ContainmentConfig parameterizes a [VoronoiContainmentForce].
type ContainmentConfig struct {
	// AttractStrength scales the per-tick velocity pull toward the group
	// centroid (stage 2).
	AttractStrength float64

	// SeparationStrength scales the direct positional push applied when two
	// blob territories overlap (stage 3). Units are pixels per tick at full
	// overlap.
	SeparationStrength float64

	// BlobPadding is the desired clearance between blob boundaries.
	BlobPadding float64

	// BlobLevel selects which group-path nesting level this force contains.
	BlobLevel int

	// BoundaryMargin widens the stage-4 correction zone: nodes within this
	// many units inside their own Voronoi boundary are already pushed home.
	// Zero restricts correction to nodes that have crossed the boundary.
	BoundaryMargin float64
}

// VoronoiContainmentForce keeps each group's nodes in their own territory.
//
// Each Apply runs four ordered stages; the order matters because stages 2-4
// read the centroids stage 1 computes from this tick's positions:
//
//  1. Aggregate per-group centroid and radius from current positions.
//  2. Pull member velocities toward their centroid (alpha-scaled, floored).
//  3. Push overlapping groups apart by editing positions directly
//     (alpha-independent, so it converges even after the simulation cools).
//  4. Correct stragglers near or past the Voronoi boundary toward another
//     group, and cancel velocity aimed at the other group's centroid.
type VoronoiContainmentForce struct {
	cfg   ContainmentConfig
	nodes []*graph.Node
}

// NewVoronoiContainmentForce creates a containment force with the given
// configuration.
func NewVoronoiContainmentForce(cfg ContainmentConfig) *VoronoiContainmentForce {
	return &VoronoiContainmentForce{cfg: cfg}
}

// LevelPadding returns the blob boundary padding for a nesting level. The
// hit-testing layer uses the same value to expand hulls, so clicks land on
// the boundary the renderer actually draws.
func LevelPadding(level int) float64 {
	return math.Max(15, basePadding-float64(level)*15)
}

// NewNestedBlobForce derives the containment force for one blob nesting
// level. Inner (finer) levels get attenuated strengths and tighter padding:
// outer blobs only mark coarse territory while inner blobs must stay crisp.
func NewNestedBlobForce(level int) *VoronoiContainmentForce {
	levelFactor := math.Max(0.4, 1-float64(level)*0.25)
	padding := LevelPadding(level)
	return NewVoronoiContainmentForce(ContainmentConfig{
		AttractStrength:    baseAttractStrength * levelFactor,
		SeparationStrength: baseSeparationStrength * levelFactor,
		BlobPadding:        padding,
		BlobLevel:          level,
		BoundaryMargin:     math.Round(0.6 * padding),
	})
}

// Config returns the force's configuration.
func (f *VoronoiContainmentForce) Config() ContainmentConfig { return f.cfg }

// Initialize establishes the force's reference to the live node slice.
func (f *VoronoiContainmentForce) Initialize(nodes []*graph.Node) {
	f.nodes = nodes
}

// blobGroup is the per-tick aggregate for one group key.
type blobGroup struct {
	cx, cy  float64
	radius  float64
	members []*graph.Node
}

// aggregate computes stage 1: per-group centroids and radii from the current
// positions. Unplaced nodes and ungrouped nodes are skipped.
func (f *VoronoiContainmentForce) aggregate() (map[string]*blobGroup, []string) {
	groups := make(map[string]*blobGroup)
	var keys []string

	for _, n := range f.nodes {
		if !n.Placed() {
			continue
		}
		key := n.GroupKey(f.cfg.BlobLevel)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &blobGroup{}
			groups[key] = g
			keys = append(keys, key)
		}
		g.cx += n.X
		g.cy += n.Y
		g.members = append(g.members, n)
	}

	for _, g := range groups {
		count := float64(len(g.members))
		g.cx /= count
		g.cy /= count
		for _, n := range g.members {
			if d := math.Hypot(n.X-g.cx, n.Y-g.cy); d > g.radius {
				g.radius = d
			}
		}
	}

	// Deterministic pair iteration.
	slices.Sort(keys)
	return groups, keys
}

// Apply runs the four containment stages for one tick.
func (f *VoronoiContainmentForce) Apply(alpha float64) {
	groups, keys := f.aggregate()
	if len(groups) == 0 {
		return
	}

	f.attract(groups, alpha)
	if len(groups) > 1 {
		f.separate(groups, keys)
		f.correctBoundaries(groups, keys)
	}
}

// attract is stage 2: velocity-based pull toward the own centroid. The alpha
// floor keeps a residual pull after cooling.
func (f *VoronoiContainmentForce) attract(groups map[string]*blobGroup, alpha float64) {
	effAlpha := math.Max(alpha, attractAlphaFloor)
	k := f.cfg.AttractStrength * effAlpha
	for _, g := range groups {
		for _, n := range g.members {
			n.VX += (g.cx - n.X) * k
			n.VY += (g.cy - n.Y) * k
		}
	}
}

// separate is stage 3: direct positional push between overlapping groups.
// Position edits bypass the cooled velocity integration, so two merged blobs
// still part ways after the simulation has nominally stopped.
func (f *VoronoiContainmentForce) separate(groups map[string]*blobGroup, keys []string) {
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			a, b := groups[keys[i]], groups[keys[j]]

			ra := math.Max(a.radius, minGroupRadius)
			rb := math.Max(b.radius, minGroupRadius)
			desired := ra + rb + f.cfg.BlobPadding

			d := math.Hypot(b.cx-a.cx, b.cy-a.cy)
			if d >= desired {
				continue
			}

			overlap := (desired - d) / desired
			push := overlap * f.cfg.SeparationStrength

			pushAway(a.members, b.cx, b.cy, push)
			pushAway(b.members, a.cx, a.cy, push)
		}
	}
}

// pushAway moves every node directly away from (cx, cy) by push units.
// Nodes sitting exactly on the point are nudged along +x so coincident
// centroids still resolve.
func pushAway(members []*graph.Node, cx, cy, push float64) {
	for _, n := range members {
		dx, dy := n.X-cx, n.Y-cy
		d := math.Hypot(dx, dy)
		if d == 0 {
			n.X += push
			continue
		}
		n.X += dx / d * push
		n.Y += dy / d * push
	}
}

// correctBoundaries is stage 4: per-node straggler correction against every
// other group's territory, plus momentum cancellation toward that territory.
//
// The signed boundary distance sbd = (dOwn - dOther)/2 is positive once a
// node has crossed the Voronoi midpoint toward the other group. With a zero
// margin only crossed nodes are corrected; with a positive margin the
// correction starts margin units before the boundary and ramps linearly,
// which removes the flat-edge equilibrium where stragglers pile up in a
// straight line just inside the boundary at low alpha.
func (f *VoronoiContainmentForce) correctBoundaries(groups map[string]*blobGroup, keys []string) {
	margin := f.cfg.BoundaryMargin
	for _, key := range keys {
		own := groups[key]
		for _, n := range own.members {
			dOwn := math.Hypot(n.X-own.cx, n.Y-own.cy)
			for _, otherKey := range keys {
				if otherKey == key {
					continue
				}
				other := groups[otherKey]
				dOther := math.Hypot(n.X-other.cx, n.Y-other.cy)
				sbd := (dOwn - dOther) / 2

				corrected := false
				switch {
				case margin == 0:
					if sbd > 0 && dOwn > 0 {
						frac := math.Min(sbd/dOwn, maxBoundaryPull)
						n.X += (own.cx - n.X) * frac
						n.Y += (own.cy - n.Y) * frac
						corrected = true
					}
				default:
					if sbd > -margin {
						ramp := math.Min((sbd+margin)/margin, 1)
						push := ramp * maxBoundaryPush
						if dOwn > 0 {
							n.X += (own.cx - n.X) / dOwn * push
							n.Y += (own.cy - n.Y) / dOwn * push
						}
						corrected = true
					}
				}

				if corrected && dOther > 0 {
					// Cancel momentum toward the other centroid so the node
					// does not re-approach next tick.
					tx, ty := (other.cx-n.X)/dOther, (other.cy-n.Y)/dOther
					if dot := n.VX*tx + n.VY*ty; dot > 0 {
						n.VX -= dot * tx
						n.VY -= dot * ty
					}
				}
			}
		}
	}
}
