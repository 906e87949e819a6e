// Package metrics measures the legibility of a positioned graph layout.
//
// Each measurement is an independent pure function over a frozen node/edge
// snapshot - nothing here mutates positions, and nothing here runs during
// the interactive simulation. The metrics exist to make layout quality a
// testable, quantifiable property: regression tests run the physics, freeze
// the result, and assert on these numbers (usually through the pkg/eval
// constraint evaluator rather than raw thresholds).
//
// Every metric tolerates degenerate input - fewer than two nodes, zero
// edges, a single group - by returning its neutral best-case value instead
// of NaN or a panic. Nodes with non-finite positions are excluded from all
// measurements.
//
// [Collect] bundles every measurement into a [Facts] bag addressed by dot
// paths ("blobSeparation.minClearance"), the input format of the pkg/eval
// virtual-user evaluator.
package metrics
