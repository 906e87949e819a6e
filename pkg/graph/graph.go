package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
)

// =============================================================================
// Serialization Types
// =============================================================================

// nodeJSON is the wire form of a Node. Positions are pointers so that
// unplaced nodes (NaN coordinates) serialize as absent fields instead of
// invalid JSON.
type nodeJSON struct {
	ID        string   `json:"id"`
	Group     string   `json:"group,omitempty"`
	GroupPath []string `json:"group_path,omitempty"`
	Val       float64  `json:"val,omitempty"`
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`
}

type edgeJSON struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight,omitempty"`
}

type graphJSON struct {
	Nodes []nodeJSON `json:"nodes"`
	Edges []edgeJSON `json:"edges"`
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a Graph to pretty-printed JSON bytes.
// Nodes are sorted by ID for deterministic output.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a Graph as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// WriteGraphFile writes a Graph to a JSON file with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*Graph, error) {
	return readGraphFrom(r)
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
// Returns validation errors for duplicate IDs or dangling edges.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *Graph, w io.Writer) error {
	nodes := slices.Clone(g.nodes)
	slices.SortFunc(nodes, func(a, b *Node) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	out := graphJSON{
		Nodes: make([]nodeJSON, len(nodes)),
		Edges: make([]edgeJSON, len(g.edges)),
	}
	for i, n := range nodes {
		nj := nodeJSON{
			ID:        n.ID,
			Group:     n.Group,
			GroupPath: n.GroupPath,
			Val:       n.Val,
		}
		if n.Placed() {
			x, y := n.X, n.Y
			nj.X, nj.Y = &x, &y
		}
		out.Nodes[i] = nj
	}
	for i, e := range g.edges {
		out.Edges[i] = edgeJSON{Source: e.Source, Target: e.Target, Weight: e.Weight}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, error) {
	var data graphJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := New()
	for _, nj := range data.Nodes {
		n := &Node{
			ID:        nj.ID,
			Group:     nj.Group,
			GroupPath: nj.GroupPath,
			Val:       nj.Val,
			X:         math.NaN(),
			Y:         math.NaN(),
		}
		if n.Val == 0 {
			n.Val = DefaultVal
		}
		if nj.X != nil && nj.Y != nil {
			n.X, n.Y = *nj.X, *nj.Y
		}
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", nj.ID, err)
		}
	}
	for _, ej := range data.Edges {
		e := &Edge{Source: ej.Source, Target: ej.Target, Weight: ej.Weight}
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", ej.Source, ej.Target, err)
		}
	}
	return g, nil
}
