package layout

import (
	"slices"

	"github.com/flowdag/flowdag/pkg/graph"
)

// Crossings counts edge crossings in the layout Apply would produce: nodes
// are banded by rank and every pair of edges between adjacent bands is
// checked for inversion. Edges spanning more than one band and edges inside
// a band (possible on cyclic input) are not counted.
//
// The count is a layout quality diagnostic; nothing in the layout itself
// depends on it.
func Crossings(nodes []graph.Node, edges []graph.Edge) int {
	ranks := Ranks(nodes, edges)
	bands := Bands(nodes, ranks)
	adj := graph.NewAdjacency(nodes, edges)

	total := 0
	for i := 0; i+1 < len(bands); i++ {
		total += layerCrossings(adj, bands[i], bands[i+1])
	}
	return total
}

// layerCrossings counts crossings between two adjacent bands with a Fenwick
// tree in O(E log V). Two edges (u1,v1) and (u2,v2) cross iff
// pos(u1) < pos(u2) and pos(v1) > pos(v2); sorting edges by source position
// reduces the count to counting inversions among target positions.
func layerCrossings(adj *graph.Adjacency, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := graph.PosMap(lower)

	type hop struct{ upper, lower int }
	hops := make([]hop, 0, len(upper)*2)
	for i, id := range upper {
		for _, child := range adj.Neighbors(id) {
			if pos, ok := lowerPos[child]; ok {
				hops = append(hops, hop{i, pos})
			}
		}
	}
	if len(hops) < 2 {
		return 0
	}

	slices.SortFunc(hops, func(a, b hop) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, h := range hops {
		// Edges seen so far whose target sits right of this one cross it.
		lessOrEqual := 0
		for q := h.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := h.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}
