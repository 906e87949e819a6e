package graph_test

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/codemap/pkg/graph"
)

func ExampleWriteGraph() {
	// Build a minimal two-symbol graph
	g := graph.New()
	_ = g.AddNode(graph.NewNode("app"))
	_ = g.AddNode(graph.NewNode("lib"))
	_ = g.AddEdge(&graph.Edge{Source: "app", Target: "lib"})

	// Write to a buffer (or any io.Writer)
	var buf bytes.Buffer
	if err := graph.WriteGraph(g, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "app",
	//       "val": 5
	//     },
	//     {
	//       "id": "lib",
	//       "val": 5
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "source": "app",
	//       "target": "lib"
	//     }
	//   ]
	// }
}

func ExampleReadGraph() {
	// JSON input as produced by a code-structure extractor
	jsonData := `{
		"nodes": [
			{"id": "auth::login", "group_path": ["auth"]},
			{"id": "auth::signup", "group_path": ["auth"]},
			{"id": "core::parse", "group_path": ["core"]}
		],
		"edges": [
			{"source": "auth::login", "target": "core::parse"}
		]
	}`

	g, err := graph.ReadGraph(bytes.NewReader([]byte(jsonData)))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Modules:", g.GroupKeys(0))
	// Output:
	// Nodes: 3
	// Edges: 1
	// Modules: [auth core]
}
