package eval_test

import (
	"fmt"

	"github.com/matzehuels/codemap/pkg/eval"
	"github.com/matzehuels/codemap/pkg/metrics"
)

func ExampleCheckUser() {
	// Facts would normally come from metrics.Collect over a settled layout
	facts := metrics.Facts{
		"blobSeparation": metrics.Facts{"minClearance": 42.0},
		"nodeOverlap":    metrics.Facts{"ratio": 0.08},
	}

	archetype := eval.Archetype{
		ID:   "quick-glancer",
		Name: "Quick Glancer",
		Goal: "See the module split instantly.",
		Constraints: []eval.Constraint{
			{Name: "separation", Fact: "blobSeparation.minClearance", Op: eval.OpGT, Threshold: 20, Severity: eval.SeverityCritical},
			{Name: "overlap", Fact: "nodeOverlap.ratio", Op: eval.OpLT, Threshold: 0.02, Severity: eval.SeverityMinor},
		},
	}

	result := eval.CheckUser(archetype, facts)

	fmt.Printf("satisfied=%v score=%.2f\n", result.Satisfied, result.Score)
	for _, f := range result.Failures {
		fmt.Println("failed:", f.Constraint.Name)
	}
	// Output:
	// satisfied=false score=0.50
	// failed: overlap
}
