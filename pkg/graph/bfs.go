package graph

// adjacency builds an undirected adjacency list, skipping self-loops.
func (g *Graph) adjacency() map[string][]string {
	adj := make(map[string][]string, len(g.nodes))
	for _, e := range g.edges {
		if e.IsSelfLoop() {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}
	return adj
}

// DepthsFrom returns a map of node ID → hop count from start, following edges
// in both directions, up to maxHops (inclusive). The start node has depth 0.
// A maxHops <= 0 means unlimited. Unknown start IDs yield an empty map.
func (g *Graph) DepthsFrom(start string, maxHops int) map[string]int {
	depths := make(map[string]int)
	if _, ok := g.byID[start]; !ok {
		return depths
	}
	adj := g.adjacency()
	depths[start] = 0
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := depths[cur]
		if maxHops > 0 && d >= maxHops {
			continue
		}
		for _, next := range adj[cur] {
			if _, seen := depths[next]; !seen {
				depths[next] = d + 1
				queue = append(queue, next)
			}
		}
	}
	return depths
}

// ShortestPath returns one shortest undirected path between from and to as a
// sequence of node IDs including both endpoints, or nil if unreachable within
// maxHops (<= 0 means unlimited).
func (g *Graph) ShortestPath(from, to string, maxHops int) []string {
	if _, ok := g.byID[from]; !ok {
		return nil
	}
	if _, ok := g.byID[to]; !ok {
		return nil
	}
	if from == to {
		return []string{from}
	}
	adj := g.adjacency()
	prev := map[string]string{from: from}
	depth := map[string]int{from: 0}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if maxHops > 0 && depth[cur] >= maxHops {
			continue
		}
		for _, next := range adj[cur] {
			if _, seen := prev[next]; seen {
				continue
			}
			prev[next] = cur
			depth[next] = depth[cur] + 1
			if next == to {
				// Walk back to reconstruct the path.
				path := []string{to}
				for at := to; at != from; {
					at = prev[at]
					path = append([]string{at}, path...)
				}
				return path
			}
			queue = append(queue, next)
		}
	}
	return nil
}

// ConnectingChain returns the union of nodes lying on a shortest path between
// any two of the selected IDs, within maxHops per pair. The selected nodes
// themselves are included when reachable. Order is deterministic: selected
// IDs first (input order), then intermediate nodes in discovery order.
func (g *Graph) ConnectingChain(selected []string, maxHops int) []string {
	seen := make(map[string]bool)
	var chain []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			chain = append(chain, id)
		}
	}
	for i := 0; i < len(selected); i++ {
		for j := i + 1; j < len(selected); j++ {
			for _, id := range g.ShortestPath(selected[i], selected[j], maxHops) {
				add(id)
			}
		}
	}
	return chain
}

// AllPairsDistances returns BFS hop distances between every pair of nodes,
// keyed by source then target ID. Unreachable pairs are absent. Used by the
// layout stress metric.
func (g *Graph) AllPairsDistances() map[string]map[string]int {
	out := make(map[string]map[string]int, len(g.nodes))
	for _, n := range g.nodes {
		out[n.ID] = g.DepthsFrom(n.ID, 0)
	}
	return out
}
