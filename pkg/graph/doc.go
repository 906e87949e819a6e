// Package graph provides the node-link data model for code-structure graphs
// and its canonical JSON serialization.
//
// # Core Types
//
//   - [Graph]: nodes plus edges with an identity index
//   - [Node]: a code symbol with grouping metadata and a mutable position
//   - [Edge]: a call/reference edge between two node identities
//
// # Grouping
//
// Nodes carry a GroupPath, the ordered sequence of grouping labels from
// outermost to innermost (for example ["auth", "handlers"]). Group is a
// backward-compatibility alias for GroupPath[0]. A blob nesting level L maps
// to the composite key GroupPath[0..L] joined with "::"; see [Node.GroupKey].
// Groups have no stored representation - they are recomputed aggregates over
// node positions.
//
// # Positions
//
// X and Y are NaN until a placement or simulation assigns them. Every
// consumer in this module skips nodes with non-finite positions rather than
// treating them as an error, so a partially placed graph never crashes a
// tick or a measurement.
//
// # Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "login", "group": "auth", "group_path": ["auth"], "val": 6, "x": 12.5, "y": -3.1}],
//	  "edges": [{"source": "login", "target": "parse", "weight": 2}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("calls.json")   // File → Graph
//	graph.WriteGraphFile(g, "calls.layout.json")
//	data, _ := graph.MarshalGraph(g)
//
// # Concurrency
//
// A Graph is safe for concurrent reads but not concurrent writes. During a
// simulation the active force set owns the node slice for the duration of a
// tick.
package graph
