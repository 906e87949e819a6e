// Package placement seeds the force simulation with a topology-aware initial
// arrangement: groups are placed on a circle in an order that minimizes
// weighted corridor crossings, so strongly-coupled group pairs start adjacent
// and the physics has less untangling to do.
//
// Two group-pairs (A,C) and (B,D) sharing no endpoint cross when, walking the
// circle from A to C, exactly one of B or D lies on that arc - their straight
// centroid-to-centroid corridors would visually intersect. The cost of a
// crossing is the sum of both pairs' edge weights.
//
// For small group counts the optimal order is found by exact enumeration;
// larger counts fall back to a first-improvement adjacent-swap hill climb.
package placement

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/codemap/pkg/geom"
	"github.com/matzehuels/codemap/pkg/graph"
)

// exactLimit is the largest group count solved by exhaustive enumeration.
// Beyond it, (n-1)! orderings are too many and local search takes over.
const exactLimit = 8

// PairWeights maps a normalized unordered pair key ("A|B" with A < B) to the
// cross-group edge count between the two groups.
type PairWeights map[string]float64

// PairKey returns the normalized unordered key for a group pair.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// Split returns the two group labels of a normalized pair key.
func splitPair(key string) (string, string) {
	i := strings.Index(key, "|")
	return key[:i], key[i+1:]
}

// CrossWeights counts, for every edge whose endpoints' groups differ at the
// given nesting level, one unit of coupling between the two groups.
// Self-loops and edges with an ungrouped endpoint are skipped.
func CrossWeights(g *graph.Graph, level int) PairWeights {
	w := make(PairWeights)
	for _, e := range g.Edges() {
		if e.IsSelfLoop() {
			continue
		}
		s, t := g.NodeByID(e.Source), g.NodeByID(e.Target)
		if s == nil || t == nil {
			continue
		}
		gs, gt := s.GroupKey(level), t.GroupKey(level)
		if gs == "" || gt == "" || gs == gt {
			continue
		}
		w[PairKey(gs, gt)]++
	}
	return w
}

// CrossingCost returns the total weighted corridor-crossing cost of placing
// the groups on a circle in the given order.
func CrossingCost(order []string, weights PairWeights) float64 {
	pos := make(map[string]int, len(order))
	for i, g := range order {
		pos[g] = i
	}

	type pair struct {
		a, b int
		w    float64
	}
	var pairs []pair
	for key, w := range weights {
		if w <= 0 {
			continue
		}
		ga, gb := splitPair(key)
		pa, okA := pos[ga]
		pb, okB := pos[gb]
		if !okA || !okB {
			continue
		}
		pairs = append(pairs, pair{pa, pb, w})
	}
	// Deterministic accumulation order.
	slices.SortFunc(pairs, func(x, y pair) int {
		if x.a != y.a {
			return x.a - y.a
		}
		return x.b - y.b
	})

	n := len(order)
	// onArc reports whether x lies strictly on the arc walked forward from a to b.
	onArc := func(a, b, x int) bool {
		for i := (a + 1) % n; i != b; i = (i + 1) % n {
			if i == x {
				return true
			}
		}
		return false
	}

	cost := 0.0
	for i := 0; i < len(pairs); i++ {
		for j := i + 1; j < len(pairs); j++ {
			p, q := pairs[i], pairs[j]
			if p.a == q.a || p.a == q.b || p.b == q.a || p.b == q.b {
				continue // Shared endpoint: corridors meet, not cross.
			}
			if onArc(p.a, p.b, q.a) != onArc(p.a, p.b, q.b) {
				cost += p.w + q.w
			}
		}
	}
	return cost
}

// OptimalOrder returns a circular ordering of groups minimizing the weighted
// corridor-crossing cost.
//
//   - n <= 2: the input order (nothing can cross)
//   - n <= 8: exact - the first group is fixed to break rotational symmetry
//     and all (n-1)! orderings of the rest are enumerated
//   - n > 8: first-improvement adjacent-swap hill climb until a full pass
//     yields no strict improvement
func OptimalOrder(groups []string, weights PairWeights) []string {
	order := slices.Clone(groups)
	if len(order) <= 2 {
		return order
	}
	if len(order) <= exactLimit {
		return exactOrder(order, weights)
	}
	return localSearchOrder(order, weights)
}

// exactOrder enumerates all orderings with the first element fixed.
func exactOrder(groups []string, weights PairWeights) []string {
	rest := groups[1:]
	best := slices.Clone(groups)
	bestCost := CrossingCost(best, weights)

	candidate := make([]string, len(groups))
	candidate[0] = groups[0]
	for _, perm := range permutations(len(rest)) {
		for i, idx := range perm {
			candidate[i+1] = rest[idx]
		}
		if cost := CrossingCost(candidate, weights); cost < bestCost {
			bestCost = cost
			copy(best, candidate)
		}
	}
	return best
}

// localSearchOrder repeatedly tries adjacent swaps, accepting any that
// strictly reduces cost (first-improvement), until a pass finds none.
func localSearchOrder(order []string, weights PairWeights) []string {
	cost := CrossingCost(order, weights)
	for improved := true; improved; {
		improved = false
		for i := 0; i < len(order); i++ {
			j := (i + 1) % len(order)
			order[i], order[j] = order[j], order[i]
			if next := CrossingCost(order, weights); next < cost {
				cost = next
				improved = true
			} else {
				order[i], order[j] = order[j], order[i] // Revert.
			}
		}
	}
	return order
}

// permutations returns all permutations of [0..n) using Heap's algorithm.
// Each returned slice is a separate allocation.
func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	state := make([]int, n)

	result := [][]int{slices.Clone(perm)}
	for i := 0; i < n; {
		if state[i] < i {
			if i&1 == 0 {
				perm[0], perm[i] = perm[i], perm[0]
			} else {
				perm[state[i]], perm[i] = perm[i], perm[state[i]]
			}
			result = append(result, slices.Clone(perm))
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return result
}

// OnCircle maps an ordering onto evenly spaced positions on a circle.
func OnCircle(order []string, center geom.Point, radius float64) map[string]geom.Point {
	out := make(map[string]geom.Point, len(order))
	for i, g := range order {
		angle := 2 * math.Pi * float64(i) / float64(len(order))
		out[g] = geom.Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return out
}

// SeedPositions assigns initial positions to every unplaced node: grouped
// nodes scatter deterministically around their group's circle position,
// ungrouped nodes around the center. Already-placed nodes are left alone.
// Level selects the grouping used for ordering (normally 0, the outermost).
func SeedPositions(g *graph.Graph, level int, center geom.Point, radius float64) {
	groups := g.GroupKeys(level)
	order := OptimalOrder(groups, CrossWeights(g, level))
	SeedFromOrder(g, level, order, center, radius)
}

// SeedFromOrder is [SeedPositions] with a precomputed group ordering, for
// callers that also want the ordering's crossing cost.
func SeedFromOrder(g *graph.Graph, level int, order []string, center geom.Point, radius float64) {
	anchors := OnCircle(order, center, radius)

	// Deterministic small scatter so coincident seeds do not trap the
	// many-body force at a zero-distance equilibrium.
	i := 0
	for _, n := range g.Nodes() {
		if n.Placed() {
			continue
		}
		anchor := center
		if a, ok := anchors[n.GroupKey(level)]; ok {
			anchor = a
		}
		angle := 2.399963 * float64(i) // Golden angle spiral.
		r := 10 * math.Sqrt(float64(i+1))
		n.X = anchor.X + r*math.Cos(angle)
		n.Y = anchor.Y + r*math.Sin(angle)
		n.VX, n.VY = 0, 0
		i++
	}
}
