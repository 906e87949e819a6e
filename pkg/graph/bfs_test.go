package graph

import "testing"

// buildChainGraph creates a - b - c - d - e plus a side branch b - x.
func buildChainGraph(t *testing.T) *Graph {
	t.Helper()
	g := New()
	for _, id := range []string{"a", "b", "c", "d", "e", "x"} {
		mustAddNode(t, g, NewNode(id))
	}
	edges := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "e"}, {"b", "x"}}
	for _, e := range edges {
		if err := g.AddEdge(&Edge{Source: e[0], Target: e[1]}); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return g
}

func TestDepthsFrom(t *testing.T) {
	g := buildChainGraph(t)

	tests := []struct {
		name    string
		start   string
		maxHops int
		want    map[string]int
	}{
		{
			name:    "unlimited",
			start:   "a",
			maxHops: 0,
			want:    map[string]int{"a": 0, "b": 1, "c": 2, "x": 2, "d": 3, "e": 4},
		},
		{
			name:    "two hop limit",
			start:   "a",
			maxHops: 2,
			want:    map[string]int{"a": 0, "b": 1, "c": 2, "x": 2},
		},
		{
			name:    "unknown start",
			start:   "nope",
			maxHops: 0,
			want:    map[string]int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.DepthsFrom(tt.start, tt.maxHops)
			if len(got) != len(tt.want) {
				t.Fatalf("DepthsFrom = %v, want %v", got, tt.want)
			}
			for id, d := range tt.want {
				if got[id] != d {
					t.Errorf("depth[%s] = %d, want %d", id, got[id], d)
				}
			}
		})
	}
}

func TestShortestPath(t *testing.T) {
	g := buildChainGraph(t)

	tests := []struct {
		name     string
		from, to string
		maxHops  int
		want     []string
	}{
		{"direct chain", "a", "e", 0, []string{"a", "b", "c", "d", "e"}},
		{"same node", "c", "c", 0, []string{"c"}},
		{"adjacent", "a", "b", 0, []string{"a", "b"}},
		{"unreachable within limit", "a", "e", 2, nil},
		{"unknown endpoint", "a", "zz", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.ShortestPath(tt.from, tt.to, tt.maxHops)
			if len(got) != len(tt.want) {
				t.Fatalf("ShortestPath = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("path[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestConnectingChain(t *testing.T) {
	g := buildChainGraph(t)

	chain := g.ConnectingChain([]string{"a", "d"}, 0)
	want := map[string]bool{"a": true, "b": true, "c": true, "d": true}
	if len(chain) != len(want) {
		t.Fatalf("ConnectingChain = %v, want nodes %v", chain, want)
	}
	for _, id := range chain {
		if !want[id] {
			t.Errorf("unexpected chain node %q", id)
		}
	}

	t.Run("three selected unions paths", func(t *testing.T) {
		chain := g.ConnectingChain([]string{"a", "x", "d"}, 0)
		// Union of a-b-x, a-b-c-d, x-b-c-d.
		if len(chain) != 5 {
			t.Errorf("ConnectingChain = %v, want 5 nodes", chain)
		}
	})

	t.Run("empty selection", func(t *testing.T) {
		if chain := g.ConnectingChain(nil, 0); len(chain) != 0 {
			t.Errorf("ConnectingChain(nil) = %v, want empty", chain)
		}
	})
}

func TestAllPairsDistances(t *testing.T) {
	g := buildChainGraph(t)
	mustAddNode(t, g, NewNode("island"))

	dists := g.AllPairsDistances()
	if dists["a"]["e"] != 4 {
		t.Errorf("dist(a,e) = %d, want 4", dists["a"]["e"])
	}
	if _, ok := dists["a"]["island"]; ok {
		t.Error("unreachable pair should be absent")
	}
	if dists["island"]["island"] != 0 {
		t.Error("self distance should be 0")
	}
}
