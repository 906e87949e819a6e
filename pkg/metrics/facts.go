package metrics

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/matzehuels/codemap/pkg/graph"
	"github.com/matzehuels/codemap/pkg/observability"
)

// Facts is a nested measurement bag addressed by dot paths, e.g.
// "blobSeparation.minClearance". Leaves are float64; branches are nested
// Facts maps. It is the input format of the pkg/eval constraint evaluator.
type Facts map[string]any

// Lookup resolves a dot path to a numeric leaf. The second return is false
// when any path segment is missing or the leaf is not numeric.
func (f Facts) Lookup(path string) (float64, bool) {
	parts := strings.Split(path, ".")
	cur := f
	for i, part := range parts {
		v, ok := cur[part]
		if !ok {
			return 0, false
		}
		if i == len(parts)-1 {
			switch n := v.(type) {
			case float64:
				return n, true
			case int:
				return float64(n), true
			default:
				return 0, false
			}
		}
		next, ok := v.(Facts)
		if !ok {
			return 0, false
		}
		cur = next
	}
	return 0, false
}

// Set writes a numeric leaf at a dot path, creating intermediate maps.
func (f Facts) Set(path string, v float64) {
	parts := strings.Split(path, ".")
	cur := f
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(Facts)
		if !ok {
			next = Facts{}
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = finiteOr(v)
}

// factClampLimit bounds stored fact values so the bag stays JSON-encodable.
// Infinities (e.g. minClearance with a single group) clamp to the limit.
const factClampLimit = 1e9

func finiteOr(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1), v > factClampLimit:
		return factClampLimit
	case math.IsInf(v, -1), v < -factClampLimit:
		return -factClampLimit
	}
	return v
}

// CollectOpts configures a [Collect] run. Zero values select defaults.
type CollectOpts struct {
	// Level is the grouping nesting level for blob and proximity metrics.
	Level int

	// VisibilityThreshold is the minimum edge surface gap in graph units.
	// Zero selects [DefaultVisibilityThreshold].
	VisibilityThreshold float64

	// HubMinDegree is the minimum degree for hub centrality.
	// Zero selects [DefaultHubMinDegree].
	HubMinDegree int

	// IdealEdgeLength scales graph distance for the stress metric.
	// Zero selects [DefaultIdealEdgeLength].
	IdealEdgeLength float64

	// ChainPath is an ordered node-ID path measured by chain linearity.
	// Empty skips the chainLinearity facts.
	ChainPath []string
}

// Collect runs every measurement over the graph's current positions and
// returns the resulting fact bag. All values are finite; see [Facts.Set].
func Collect(g *graph.Graph, opts CollectOpts) Facts {
	start := time.Now()
	facts := Facts{}

	vis := EdgeVisibility(g, opts.VisibilityThreshold)
	facts.Set("edgeVisibility.total", float64(vis.Total))
	facts.Set("edgeVisibility.visible", float64(vis.Visible))
	facts.Set("edgeVisibility.ratio", vis.Ratio)

	ov := NodeOverlap(g)
	facts.Set("nodeOverlap.pairs", float64(ov.Pairs))
	facts.Set("nodeOverlap.overlapping", float64(ov.Overlapping))
	facts.Set("nodeOverlap.ratio", ov.Ratio)

	cr := EdgeCrossings(g)
	facts.Set("edgeCrossings.pairs", float64(cr.Pairs))
	facts.Set("edgeCrossings.count", float64(cr.Crossings))

	st := LayoutStress(g, opts.IdealEdgeLength)
	facts.Set("layoutStress.pairs", float64(st.Pairs))
	facts.Set("layoutStress.stress", st.Stress)

	hub := HubCentrality(g, opts.HubMinDegree)
	facts.Set("hubCentrality.hubs", float64(hub.Hubs))
	facts.Set("hubCentrality.avgOffset", hub.AvgOffset)
	facts.Set("hubCentrality.maxOffset", hub.MaxOffset)

	if len(opts.ChainPath) > 0 {
		ch := ChainLinearity(g, opts.ChainPath)
		facts.Set("chainLinearity.points", float64(ch.Points))
		facts.Set("chainLinearity.axisRatio", ch.AxisRatio)
		facts.Set("chainLinearity.straightness", ch.Straightness)
	}

	bi := BlobIntegrity(g, opts.Level)
	facts.Set("blobIntegrity.groups", float64(bi.Groups))
	facts.Set("blobIntegrity.nodes", float64(bi.Nodes))
	facts.Set("blobIntegrity.inside", float64(bi.Inside))
	facts.Set("blobIntegrity.ratio", bi.Ratio)

	bs := BlobSeparation(g, opts.Level)
	facts.Set("blobSeparation.pairs", float64(bs.Pairs))
	facts.Set("blobSeparation.minClearance", bs.MinClearance)
	facts.Set("blobSeparation.avgClearance", bs.AvgClearance)

	gp := GestaltProximity(g, opts.Level)
	facts.Set("gestaltProximity.ratio", gp.Ratio)
	facts.Set("gestaltProximity.cohesion", gp.Cohesion)

	ar := AngularResolution(g)
	facts.Set("angularResolution.nodesMeasured", float64(ar.NodesMeasured))
	facts.Set("angularResolution.minDeg", ar.MinDeg)
	facts.Set("angularResolution.avgMinDeg", ar.AvgMinDeg)

	el := EdgeLengthUniformity(g)
	facts.Set("edgeLengthUniformity.edges", float64(el.Edges))
	facts.Set("edgeLengthUniformity.mean", el.Mean)
	facts.Set("edgeLengthUniformity.stdDev", el.StdDev)
	facts.Set("edgeLengthUniformity.cv", el.CV)

	qs := QualityScore(g, opts.Level)
	facts.Set("qualityScore.score", qs.Score)
	for name, v := range qs.Components {
		facts.Set("qualityScore."+name, v)
	}

	observability.Eval().OnMeasure(context.Background(), g.NodeCount(), g.EdgeCount(), time.Since(start))
	return facts
}
