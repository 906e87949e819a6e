package metrics

import (
	"math"
	"sort"

	"github.com/matzehuels/codemap/pkg/geom"
	"github.com/matzehuels/codemap/pkg/graph"
)

// Defaults used when a caller passes a zero option.
const (
	// DefaultVisibilityThreshold is the minimum node-surface gap (in graph
	// units) for an edge to read as visible to a human.
	DefaultVisibilityThreshold = 8.0

	// DefaultIdealEdgeLength scales graph distance into target geometric
	// distance for the stress metric.
	DefaultIdealEdgeLength = 60.0

	// DefaultHubMinDegree is the minimum degree for a node to count as a hub.
	DefaultHubMinDegree = 3

	// straightTurnDeg is the maximum consecutive-turn angle for a chain
	// segment to count as straight.
	straightTurnDeg = 30.0

	// maxAxisRatio guards the PCA axis ratio as a path degenerates toward a
	// point or perfect line (minor axis → 0).
	maxAxisRatio = 1e6
)

// placed returns the nodes with finite positions.
func placed(g *graph.Graph) []*graph.Node {
	out := make([]*graph.Node, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		if n.Placed() {
			out = append(out, n)
		}
	}
	return out
}

// measurableEdges returns non-self-loop edges whose endpoints are both placed.
func measurableEdges(g *graph.Graph) [][2]*graph.Node {
	var out [][2]*graph.Node
	for _, e := range g.Edges() {
		if e.IsSelfLoop() {
			continue
		}
		s, t := g.NodeByID(e.Source), g.NodeByID(e.Target)
		if s == nil || t == nil || !s.Placed() || !t.Placed() {
			continue
		}
		out = append(out, [2]*graph.Node{s, t})
	}
	return out
}

func nodeDist(a, b *graph.Node) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// =============================================================================
// Edge Visibility
// =============================================================================

// EdgeVisibilityResult reports how many edges have a legible gap between
// their endpoint circles.
type EdgeVisibilityResult struct {
	Total   int     // Measurable edges
	Visible int     // Edges with surface gap > threshold
	Ratio   float64 // Visible / Total; 1 when no measurable edges
}

// EdgeVisibility measures the fraction of edges whose node-surface gap
// (center distance minus both radii) exceeds threshold. A threshold <= 0
// selects [DefaultVisibilityThreshold].
func EdgeVisibility(g *graph.Graph, threshold float64) EdgeVisibilityResult {
	if threshold <= 0 {
		threshold = DefaultVisibilityThreshold
	}
	res := EdgeVisibilityResult{Ratio: 1}
	for _, e := range measurableEdges(g) {
		res.Total++
		gap := nodeDist(e[0], e[1]) - e[0].Radius() - e[1].Radius()
		if gap > threshold {
			res.Visible++
		}
	}
	if res.Total > 0 {
		res.Ratio = float64(res.Visible) / float64(res.Total)
	}
	return res
}

// =============================================================================
// Node Overlap
// =============================================================================

// NodeOverlapResult reports the fraction of node pairs whose circles overlap.
type NodeOverlapResult struct {
	Pairs       int
	Overlapping int
	Ratio       float64 // Overlapping / Pairs; 0 with fewer than 2 nodes
}

// NodeOverlap measures circle overlap across all placed node pairs.
func NodeOverlap(g *graph.Graph) NodeOverlapResult {
	nodes := placed(g)
	var res NodeOverlapResult
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			res.Pairs++
			if nodeDist(nodes[i], nodes[j]) < nodes[i].Radius()+nodes[j].Radius() {
				res.Overlapping++
			}
		}
	}
	if res.Pairs > 0 {
		res.Ratio = float64(res.Overlapping) / float64(res.Pairs)
	}
	return res
}

// =============================================================================
// Edge Crossings
// =============================================================================

// EdgeCrossingsResult counts geometrically intersecting edge pairs.
type EdgeCrossingsResult struct {
	Pairs     int // Edge pairs sharing no endpoint
	Crossings int
}

// EdgeCrossings counts strict interior intersections between edges that do
// not share an endpoint.
func EdgeCrossings(g *graph.Graph) EdgeCrossingsResult {
	edges := measurableEdges(g)
	var res EdgeCrossingsResult
	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			a, b := edges[i], edges[j]
			if a[0] == b[0] || a[0] == b[1] || a[1] == b[0] || a[1] == b[1] {
				continue
			}
			res.Pairs++
			if geom.SegmentsCross(
				geom.Point{X: a[0].X, Y: a[0].Y}, geom.Point{X: a[1].X, Y: a[1].Y},
				geom.Point{X: b[0].X, Y: b[0].Y}, geom.Point{X: b[1].X, Y: b[1].Y},
			) {
				res.Crossings++
			}
		}
	}
	return res
}

// =============================================================================
// Layout Stress
// =============================================================================

// StressResult reports how much geometric distances deviate from
// graph-theoretic distances.
type StressResult struct {
	Pairs  int     // Node pairs with finite graph distance
	Stress float64 // Mean squared relative error; 0 is perfect
}

// LayoutStress compares every connected node pair's geometric distance to
// graphDistance × idealEdgeLength. An idealEdgeLength <= 0 selects
// [DefaultIdealEdgeLength].
func LayoutStress(g *graph.Graph, idealEdgeLength float64) StressResult {
	if idealEdgeLength <= 0 {
		idealEdgeLength = DefaultIdealEdgeLength
	}
	nodes := placed(g)
	dists := g.AllPairsDistances()

	var res StressResult
	var sum float64
	for i := 0; i < len(nodes); i++ {
		row := dists[nodes[i].ID]
		for j := i + 1; j < len(nodes); j++ {
			hops, ok := row[nodes[j].ID]
			if !ok || hops == 0 {
				continue
			}
			ideal := float64(hops) * idealEdgeLength
			actual := nodeDist(nodes[i], nodes[j])
			rel := (actual - ideal) / ideal
			sum += rel * rel
			res.Pairs++
		}
	}
	if res.Pairs > 0 {
		res.Stress = sum / float64(res.Pairs)
	}
	return res
}

// =============================================================================
// Hub Centrality
// =============================================================================

// HubCentralityResult reports how far high-degree nodes sit from the
// centroid of their neighbors.
type HubCentralityResult struct {
	Hubs      int
	AvgOffset float64 // Mean normalized offset; 0 = every hub perfectly central
	MaxOffset float64
	PerHub    map[string]float64
}

// HubCentrality measures, for every node with degree >= minDegree, the
// distance from the node to its neighbors' centroid, normalized by the mean
// node-to-neighbor distance. A minDegree <= 0 selects [DefaultHubMinDegree].
func HubCentrality(g *graph.Graph, minDegree int) HubCentralityResult {
	if minDegree <= 0 {
		minDegree = DefaultHubMinDegree
	}
	res := HubCentralityResult{PerHub: make(map[string]float64)}
	var sum float64
	for _, n := range placed(g) {
		if g.Degree(n.ID) < minDegree {
			continue
		}
		var pts []geom.Point
		var distSum float64
		for _, nb := range g.Neighbors(n.ID) {
			if nb == nil || !nb.Placed() {
				continue
			}
			pts = append(pts, geom.Point{X: nb.X, Y: nb.Y})
			distSum += nodeDist(n, nb)
		}
		if len(pts) == 0 {
			continue
		}
		avgDist := distSum / float64(len(pts))
		if avgDist == 0 {
			continue
		}
		c := geom.Centroid(pts)
		offset := math.Hypot(n.X-c.X, n.Y-c.Y) / avgDist

		res.Hubs++
		res.PerHub[n.ID] = offset
		sum += offset
		if offset > res.MaxOffset {
			res.MaxOffset = offset
		}
	}
	if res.Hubs > 0 {
		res.AvgOffset = sum / float64(res.Hubs)
	}
	return res
}

// =============================================================================
// Chain Linearity
// =============================================================================

// ChainLinearityResult reports how line-like an ordered node path is.
type ChainLinearityResult struct {
	Points       int
	AxisRatio    float64 // PCA major/minor axis ratio; high = linear
	Straightness float64 // Fraction of consecutive turns below 30°
}

// ChainLinearity measures the linearity of an ordered path of node IDs via
// the ratio of the principal component axes plus a turn-angle straightness
// fraction. Paths with fewer than two placed points report the guarded
// maximum ratio and full straightness.
func ChainLinearity(g *graph.Graph, path []string) ChainLinearityResult {
	var pts []geom.Point
	for _, id := range path {
		if n := g.NodeByID(id); n != nil && n.Placed() {
			pts = append(pts, geom.Point{X: n.X, Y: n.Y})
		}
	}
	res := ChainLinearityResult{Points: len(pts), AxisRatio: maxAxisRatio, Straightness: 1}
	if len(pts) < 2 {
		return res
	}

	// PCA via the 2x2 covariance eigenvalues.
	c := geom.Centroid(pts)
	var sxx, syy, sxy float64
	for _, p := range pts {
		dx, dy := p.X-c.X, p.Y-c.Y
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	n := float64(len(pts))
	sxx, syy, sxy = sxx/n, syy/n, sxy/n

	tr, det := sxx+syy, sxx*syy-sxy*sxy
	disc := math.Sqrt(math.Max(0, tr*tr/4-det))
	major, minor := tr/2+disc, tr/2-disc
	if minor > 1e-9 {
		res.AxisRatio = math.Min(math.Sqrt(major/minor), maxAxisRatio)
	}

	// Straightness: consecutive turn angles under the threshold.
	if len(pts) >= 3 {
		straight, turns := 0, 0
		for i := 1; i < len(pts)-1; i++ {
			v1x, v1y := pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y
			v2x, v2y := pts[i+1].X-pts[i].X, pts[i+1].Y-pts[i].Y
			l1, l2 := math.Hypot(v1x, v1y), math.Hypot(v2x, v2y)
			if l1 == 0 || l2 == 0 {
				continue
			}
			cos := (v1x*v2x + v1y*v2y) / (l1 * l2)
			angle := math.Acos(math.Max(-1, math.Min(1, cos))) * 180 / math.Pi
			turns++
			if angle < straightTurnDeg {
				straight++
			}
		}
		if turns > 0 {
			res.Straightness = float64(straight) / float64(turns)
		}
	}
	return res
}

// =============================================================================
// Blob Integrity
// =============================================================================

// BlobIntegrityResult reports the fraction of nodes inside their own group's
// Voronoi territory.
type BlobIntegrityResult struct {
	Groups int
	Nodes  int
	Inside int
	Ratio  float64 // Inside / Nodes; 1 with fewer than 2 groups
}

// BlobIntegrity tests, per grouped node at the given nesting level, whether
// the node is strictly closer to its own group's centroid than to any other
// group's centroid.
func BlobIntegrity(g *graph.Graph, level int) BlobIntegrityResult {
	centroids, members := groupCentroids(g, level)
	res := BlobIntegrityResult{Groups: len(centroids), Ratio: 1}
	if len(centroids) < 2 {
		return res
	}
	for key, nodes := range members {
		own := centroids[key]
		for _, n := range nodes {
			res.Nodes++
			dOwn := math.Hypot(n.X-own.X, n.Y-own.Y)
			inside := true
			for otherKey, other := range centroids {
				if otherKey == key {
					continue
				}
				if math.Hypot(n.X-other.X, n.Y-other.Y) <= dOwn {
					inside = false
					break
				}
			}
			if inside {
				res.Inside++
			}
		}
	}
	if res.Nodes > 0 {
		res.Ratio = float64(res.Inside) / float64(res.Nodes)
	}
	return res
}

// groupCentroids aggregates placed grouped nodes at a nesting level.
func groupCentroids(g *graph.Graph, level int) (map[string]geom.Point, map[string][]*graph.Node) {
	members := make(map[string][]*graph.Node)
	for _, n := range placed(g) {
		key := n.GroupKey(level)
		if key == "" {
			continue
		}
		members[key] = append(members[key], n)
	}
	centroids := make(map[string]geom.Point, len(members))
	for key, nodes := range members {
		pts := make([]geom.Point, len(nodes))
		for i, n := range nodes {
			pts[i] = geom.Point{X: n.X, Y: n.Y}
		}
		centroids[key] = geom.Centroid(pts)
	}
	return centroids, members
}

// =============================================================================
// Blob Separation
// =============================================================================

// BlobSeparationResult reports clearance between blob territories.
// Clearance below zero means two blobs visually overlap.
type BlobSeparationResult struct {
	Pairs        int
	MinClearance float64 // +Inf with fewer than 2 groups
	AvgClearance float64
}

// BlobSeparation measures centroid distance minus the sum of group radii
// for every group pair at the given nesting level.
func BlobSeparation(g *graph.Graph, level int) BlobSeparationResult {
	centroids, members := groupCentroids(g, level)
	res := BlobSeparationResult{MinClearance: math.Inf(1)}
	if len(centroids) < 2 {
		return res
	}

	radii := make(map[string]float64, len(members))
	for key, nodes := range members {
		c := centroids[key]
		for _, n := range nodes {
			if d := math.Hypot(n.X-c.X, n.Y-c.Y); d > radii[key] {
				radii[key] = d
			}
		}
	}

	keys := make([]string, 0, len(centroids))
	for key := range centroids {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sum float64
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			a, b := keys[i], keys[j]
			d := math.Hypot(centroids[b].X-centroids[a].X, centroids[b].Y-centroids[a].Y)
			clearance := d - radii[a] - radii[b]
			res.Pairs++
			sum += clearance
			if clearance < res.MinClearance {
				res.MinClearance = clearance
			}
		}
	}
	res.AvgClearance = sum / float64(res.Pairs)
	return res
}

// =============================================================================
// Gestalt Proximity
// =============================================================================

// GestaltProximityResult reports perceptual grouping quality: within-group
// distances should be small relative to between-group distances.
type GestaltProximityResult struct {
	Ratio    float64 // Mean within-group dist / mean between-group dist
	Cohesion float64 // max(0, 1-Ratio); 1 = ideal grouping
}

// GestaltProximity compares mean pairwise distances within groups against
// those between groups at the given nesting level. With fewer than two
// groups there is nothing to confuse, so cohesion is reported as perfect.
func GestaltProximity(g *graph.Graph, level int) GestaltProximityResult {
	nodes := placed(g)
	var within, between float64
	var nWithin, nBetween int
	for i := 0; i < len(nodes); i++ {
		ki := nodes[i].GroupKey(level)
		if ki == "" {
			continue
		}
		for j := i + 1; j < len(nodes); j++ {
			kj := nodes[j].GroupKey(level)
			if kj == "" {
				continue
			}
			d := nodeDist(nodes[i], nodes[j])
			if ki == kj {
				within += d
				nWithin++
			} else {
				between += d
				nBetween++
			}
		}
	}
	if nBetween == 0 || nWithin == 0 || between == 0 {
		return GestaltProximityResult{Ratio: 0, Cohesion: 1}
	}
	ratio := (within / float64(nWithin)) / (between / float64(nBetween))
	return GestaltProximityResult{Ratio: ratio, Cohesion: math.Max(0, 1-ratio)}
}

// =============================================================================
// Angular Resolution
// =============================================================================

// AngularResolutionResult reports the smallest angle between edges meeting
// at a shared node. Below roughly 15° two edges appear merged to a human.
type AngularResolutionResult struct {
	NodesMeasured int
	MinDeg        float64 // Global minimum; 180 when no node has 2+ edges
	AvgMinDeg     float64 // Mean of per-node minima
}

// AngularResolution computes the minimum inter-edge angle at every node with
// at least two placed incident edges.
func AngularResolution(g *graph.Graph) AngularResolutionResult {
	incident := make(map[string][]float64)
	for _, e := range measurableEdges(g) {
		s, t := e[0], e[1]
		incident[s.ID] = append(incident[s.ID], math.Atan2(t.Y-s.Y, t.X-s.X))
		incident[t.ID] = append(incident[t.ID], math.Atan2(s.Y-t.Y, s.X-t.X))
	}

	res := AngularResolutionResult{MinDeg: 180, AvgMinDeg: 180}
	var sum float64
	for _, angles := range incident {
		if len(angles) < 2 {
			continue
		}
		sort.Float64s(angles)
		nodeMin := 360.0
		for i := range angles {
			next := angles[(i+1)%len(angles)]
			gap := next - angles[i]
			if gap < 0 {
				gap += 2 * math.Pi
			}
			deg := gap * 180 / math.Pi
			// The circular complement closes the fan; cap at 180.
			if deg > 180 {
				deg = 360 - deg
			}
			if deg < nodeMin {
				nodeMin = deg
			}
		}
		res.NodesMeasured++
		sum += nodeMin
		if nodeMin < res.MinDeg {
			res.MinDeg = nodeMin
		}
	}
	if res.NodesMeasured > 0 {
		res.AvgMinDeg = sum / float64(res.NodesMeasured)
	}
	return res
}

// =============================================================================
// Edge Length Uniformity
// =============================================================================

// EdgeLengthUniformityResult reports the spread of edge lengths.
type EdgeLengthUniformityResult struct {
	Edges  int
	Mean   float64
	StdDev float64
	CV     float64 // Coefficient of variation; 0 = perfectly uniform
}

// EdgeLengthUniformity computes the coefficient of variation of edge lengths.
func EdgeLengthUniformity(g *graph.Graph) EdgeLengthUniformityResult {
	var lengths []float64
	for _, e := range measurableEdges(g) {
		lengths = append(lengths, nodeDist(e[0], e[1]))
	}
	res := EdgeLengthUniformityResult{Edges: len(lengths)}
	if len(lengths) == 0 {
		return res
	}
	var sum float64
	for _, l := range lengths {
		sum += l
	}
	res.Mean = sum / float64(len(lengths))
	var sq float64
	for _, l := range lengths {
		d := l - res.Mean
		sq += d * d
	}
	res.StdDev = math.Sqrt(sq / float64(len(lengths)))
	if res.Mean > 0 {
		res.CV = res.StdDev / res.Mean
	}
	return res
}

// =============================================================================
// Composite Quality Score
// =============================================================================

// Component weights of the composite score. They sum to 100.
var scoreWeights = map[string]float64{
	"visibility":   25,
	"noOverlap":    20,
	"fewCrossings": 15,
	"lowStress":    20,
	"cohesion":     10,
	"integrity":    10,
}

// QualityScoreResult is the weighted composite layout score.
type QualityScoreResult struct {
	Score      float64            // 0-100
	Components map[string]float64 // Each clamped to [0, 1] before weighting
}

// QualityScore combines the individual metrics into a single 0-100 score.
func QualityScore(g *graph.Graph, level int) QualityScoreResult {
	clamp01 := func(v float64) float64 { return math.Max(0, math.Min(1, v)) }

	cross := EdgeCrossings(g)
	edgeCount := len(measurableEdges(g))
	fewCrossings := 1.0
	if edgeCount > 0 {
		fewCrossings = 1 - math.Min(1, float64(cross.Crossings)/float64(edgeCount))
	}

	components := map[string]float64{
		"visibility":   clamp01(EdgeVisibility(g, 0).Ratio),
		"noOverlap":    clamp01(1 - NodeOverlap(g).Ratio),
		"fewCrossings": clamp01(fewCrossings),
		"lowStress":    clamp01(1 - LayoutStress(g, 0).Stress),
		"cohesion":     clamp01(GestaltProximity(g, level).Cohesion),
		"integrity":    clamp01(BlobIntegrity(g, level).Ratio),
	}

	var score float64
	for name, weight := range scoreWeights {
		score += weight * components[name]
	}
	return QualityScoreResult{Score: score, Components: components}
}
