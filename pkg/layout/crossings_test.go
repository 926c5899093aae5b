package layout

import (
	"testing"

	"github.com/flowdag/flowdag/pkg/graph"
)

func TestCrossings_ParallelEdges(t *testing.T) {
	// a b     straight down, nothing crosses
	// | |
	// c d
	nodes := nodesFor("a", "b", "c", "d")
	edges := []graph.Edge{edge("a", "c"), edge("b", "d")}

	if got := Crossings(nodes, edges); got != 0 {
		t.Errorf("Crossings() = %d, want 0", got)
	}
}

func TestCrossings_SinglePair(t *testing.T) {
	// a b     the two edges swap sides
	//  X
	// c d
	nodes := nodesFor("a", "b", "c", "d")
	edges := []graph.Edge{edge("a", "d"), edge("b", "c")}

	if got := Crossings(nodes, edges); got != 1 {
		t.Errorf("Crossings() = %d, want 1", got)
	}
}

func TestCrossings_CompleteBipartite(t *testing.T) {
	// Two parents sharing two children cross exactly once.
	nodes := nodesFor("a", "b", "c", "d")
	edges := []graph.Edge{
		edge("a", "c"), edge("a", "d"),
		edge("b", "c"), edge("b", "d"),
	}

	if got := Crossings(nodes, edges); got != 1 {
		t.Errorf("Crossings() = %d, want 1", got)
	}
}

func TestCrossings_MultipleBands(t *testing.T) {
	// Crossings accumulate per adjacent band pair.
	nodes := nodesFor("a", "b", "c", "d", "e", "f")
	edges := []graph.Edge{
		edge("a", "d"), edge("b", "c"), // bands 0→1: one crossing
		edge("c", "f"), edge("d", "e"), // bands 1→2: one crossing
	}

	if got := Crossings(nodes, edges); got != 2 {
		t.Errorf("Crossings() = %d, want 2", got)
	}
}

func TestCrossings_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name  string
		nodes []graph.Node
		edges []graph.Edge
	}{
		{"empty", nil, nil},
		{"single band", nodesFor("a", "b"), nil},
		{"single edge", nodesFor("a", "b"), []graph.Edge{edge("a", "b")}},
		{"cycle collapses to one band", nodesFor("a", "b"), []graph.Edge{edge("a", "b"), edge("b", "a")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Crossings(tt.nodes, tt.edges); got != 0 {
				t.Errorf("Crossings() = %d, want 0", got)
			}
		})
	}
}
