package validate_test

import (
	"fmt"

	"github.com/flowdag/flowdag/pkg/graph"
	"github.com/flowdag/flowdag/pkg/validate"
)

func ExampleCheck() {
	nodes := []graph.Node{
		{ID: "ingest", Label: "Ingest"},
		{ID: "clean", Label: "Clean"},
		{ID: "train", Label: "Train"},
	}
	edges := []graph.Edge{
		{ID: "e1", Source: "ingest", Target: "clean"},
		{ID: "e2", Source: "clean", Target: "train"},
	}

	r := validate.Check(nodes, edges)
	fmt.Println("valid:", r.IsValid)
	fmt.Println("cycles:", r.HasCycles)
	// Output:
	// valid: true
	// cycles: false
}

func ExampleCheck_findings() {
	// A flow still being edited: one node loops onto itself and another
	// hangs unconnected. Every finding is reported at once.
	nodes := []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	edges := []graph.Edge{
		{ID: "e1", Source: "a", Target: "a"},
		{ID: "e2", Source: "a", Target: "b"},
	}

	r := validate.Check(nodes, edges)
	for _, msg := range r.Errors {
		fmt.Println(msg)
	}
	// Output:
	// self-loops detected; remove edges that connect a node to itself
	// cycle detected; a valid flow must be acyclic
	// some nodes are isolated from the rest of the flow
}

func ExampleCanConnect() {
	edges := []graph.Edge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "b", Target: "c"},
	}

	d := validate.CanConnect("c", "a", edges)
	fmt.Println("allowed:", d.CanConnect)
	fmt.Println("reason:", d.Reason)
	// Output:
	// allowed: false
	// reason: would create a cycle
}
