package layout_test

import (
	"fmt"

	"github.com/flowdag/flowdag/pkg/graph"
	"github.com/flowdag/flowdag/pkg/layout"
)

func ExampleApply() {
	nodes := []graph.Node{
		{ID: "extract", Label: "Extract"},
		{ID: "transform", Label: "Transform"},
		{ID: "load", Label: "Load"},
	}
	edges := []graph.Edge{
		{ID: "e1", Source: "extract", Target: "transform"},
		{ID: "e2", Source: "transform", Target: "load"},
	}

	for _, n := range layout.Apply(nodes, edges, layout.Options{}) {
		fmt.Printf("%s (%.0f, %.0f)\n", n.ID, n.Position.X, n.Position.Y)
	}
	// Output:
	// extract (-80, -24)
	// transform (-80, 116)
	// load (-80, 256)
}

func ExampleRanks() {
	// A diamond: fan-out from one source, fan-in to one sink.
	nodes := []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	edges := []graph.Edge{
		{ID: "e1", Source: "a", Target: "b"},
		{ID: "e2", Source: "a", Target: "c"},
		{ID: "e3", Source: "b", Target: "d"},
		{ID: "e4", Source: "c", Target: "d"},
	}

	ranks := layout.Ranks(nodes, edges)
	bands := layout.Bands(nodes, ranks)
	for r, band := range bands {
		fmt.Println(r, band)
	}
	// Output:
	// 0 [a]
	// 1 [b c]
	// 2 [d]
}
