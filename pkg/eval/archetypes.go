package eval

// BuiltinArchetypes returns the compiled-in virtual users. Each models a
// distinct audience reading the same layout: what counts as "legible" differs
// between someone skimming module structure and someone tracing a call chain.
func BuiltinArchetypes() []Archetype {
	return []Archetype{
		{
			ID:   "quick-glancer",
			Name: "Quick Glancer",
			Goal: "Grasp the module structure within a few seconds, without reading labels.",
			Constraints: []Constraint{
				{
					Name:        "blobs-clearly-separated",
					Description: "Group territories must not touch; overlapping blobs read as one module.",
					Fact:        "blobSeparation.minClearance",
					Op:          OpGT,
					Threshold:   20,
					Severity:    SeverityCritical,
				},
				{
					Name:        "groups-visually-cohesive",
					Description: "Members of a group must sit closer to each other than to other groups.",
					Fact:        "gestaltProximity.cohesion",
					Op:          OpGT,
					Threshold:   0.3,
					Severity:    SeverityCritical,
				},
				{
					Name:        "members-inside-own-blob",
					Description: "Stragglers outside their group's territory break the grouping at a glance.",
					Fact:        "blobIntegrity.ratio",
					Op:          OpGTE,
					Threshold:   0.95,
					Severity:    SeverityMajor,
				},
				{
					Name:        "few-overlapping-nodes",
					Description: "Overlapping circles hide node count and sizes.",
					Fact:        "nodeOverlap.ratio",
					Op:          OpLT,
					Threshold:   0.02,
					Severity:    SeverityMinor,
				},
			},
		},
		{
			ID:   "debug-tracer",
			Name: "Debug Tracer",
			Goal: "Follow a dependency chain hop by hop without losing the thread.",
			Constraints: []Constraint{
				{
					Name:        "chain-reads-as-line",
					Description: "The selected chain must stretch along one axis, not fold back on itself.",
					Fact:        "chainLinearity.axisRatio",
					Op:          OpGT,
					Threshold:   3,
					Severity:    SeverityCritical,
				},
				{
					Name:        "chain-turns-gentle",
					Description: "Sharp turns in the chain force the eye to re-orient at every hop.",
					Fact:        "chainLinearity.straightness",
					Op:          OpGTE,
					Threshold:   0.7,
					Severity:    SeverityMajor,
				},
				{
					Name:        "hubs-sit-central",
					Description: "A hub far from its neighbors scatters the fan-out across the canvas.",
					Fact:        "hubCentrality.avgOffset",
					Op:          OpLT,
					Threshold:   0.5,
					Severity:    SeverityMajor,
				},
				{
					Name:        "edges-distinguishable",
					Description: "Edges meeting at a node must be angularly separable.",
					Fact:        "angularResolution.avgMinDeg",
					Op:          OpGT,
					Threshold:   15,
					Severity:    SeverityMinor,
				},
			},
		},
		{
			ID:   "dependency-auditor",
			Name: "Dependency Auditor",
			Goal: "Judge coupling between modules by counting and following cross-group edges.",
			Constraints: []Constraint{
				{
					Name:        "edges-visible",
					Description: "An edge swallowed by its endpoint circles cannot be counted.",
					Fact:        "edgeVisibility.ratio",
					Op:          OpGTE,
					Threshold:   0.9,
					Severity:    SeverityCritical,
				},
				{
					Name:        "few-edge-crossings",
					Description: "Crossing edges are miscounted as connections that do not exist.",
					Fact:        "edgeCrossings.count",
					Op:          OpLTE,
					Threshold:   3,
					Severity:    SeverityMajor,
				},
				{
					Name:        "edge-lengths-even",
					Description: "Wildly uneven edge lengths suggest importance differences that are not there.",
					Fact:        "edgeLengthUniformity.cv",
					Op:          OpLT,
					Threshold:   0.8,
					Severity:    SeverityMinor,
				},
			},
		},
		{
			ID:   "map-reader",
			Name: "Map Reader",
			Goal: "Use the layout as a stable spatial map where distance means relatedness.",
			Constraints: []Constraint{
				{
					Name:        "distance-tracks-topology",
					Description: "Geometric distance must roughly follow graph distance.",
					Fact:        "layoutStress.stress",
					Op:          OpLT,
					Threshold:   0.5,
					Severity:    SeverityCritical,
				},
				{
					Name:        "overall-quality",
					Description: "The composite score is the floor for a publishable map.",
					Fact:        "qualityScore.score",
					Op:          OpGTE,
					Threshold:   60,
					Severity:    SeverityMajor,
				},
			},
		},
	}
}
