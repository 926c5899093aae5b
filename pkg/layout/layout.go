package layout

import (
	"slices"

	"github.com/flowdag/flowdag/pkg/graph"
)

// Default spacing applied by [Options.WithDefaults] for any dimension left
// at zero. Coordinates land on an integer grid with these values, so layout
// output is exactly reproducible.
const (
	DefaultSlotWidth   = 200.0
	DefaultRankSpacing = 140.0
	DefaultNodeWidth   = 160.0
	DefaultNodeHeight  = 48.0
)

// Options controls the geometry of a layout pass. The zero value is usable:
// unset dimensions take the package defaults.
type Options struct {
	SlotWidth   float64 `json:"slot_width"`   // horizontal distance between slot centers in a band
	RankSpacing float64 `json:"rank_spacing"` // vertical distance between bands
	NodeWidth   float64 `json:"node_width"`   // assumed node width, used to center on the slot
	NodeHeight  float64 `json:"node_height"`  // assumed node height, used to center on the band
}

// WithDefaults returns a copy with zero dimensions replaced by the package
// defaults. Negative values are kept as-is; callers own their weird canvases.
func (o Options) WithDefaults() Options {
	if o.SlotWidth == 0 {
		o.SlotWidth = DefaultSlotWidth
	}
	if o.RankSpacing == 0 {
		o.RankSpacing = DefaultRankSpacing
	}
	if o.NodeWidth == 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	return o
}

// Apply positions every node on the rank grid and returns the result as a
// new slice; the input is never modified and all non-position fields carry
// over unchanged. Apply is total: cyclic, disconnected, duplicated or
// dangling input lays out without error, and repeated calls on the same
// input produce identical coordinates.
//
// A node at band slot col and rank r is placed at
//
//	x = col*SlotWidth - NodeWidth/2
//	y = r*RankSpacing - NodeHeight/2
//
// so node centers land exactly on the slot gridpoints.
func Apply(nodes []graph.Node, edges []graph.Edge, opts Options) []graph.Node {
	opts = opts.WithDefaults()
	ranks := Ranks(nodes, edges)

	out := slices.Clone(nodes)
	slot := make(map[int]int, len(out))
	for i := range out {
		r := ranks[out[i].ID]
		col := slot[r]
		slot[r]++
		out[i].Position = graph.Position{
			X: float64(col)*opts.SlotWidth - opts.NodeWidth/2,
			Y: float64(r)*opts.RankSpacing - opts.NodeHeight/2,
		}
	}
	return out
}

// Ranks assigns each node the length of the longest directed path ending at
// it, via the topological traversal described in the package documentation.
// The returned map has an entry for every node id. Nodes on or behind a
// cycle never finalize and keep the best rank a finalized parent gave them
// (rank 0 if none did).
func Ranks(nodes []graph.Node, edges []graph.Edge) map[string]int {
	adj := graph.NewAdjacency(nodes, edges)

	inDegree := make(map[string]int, adj.Len())
	for _, id := range adj.IDs() {
		for _, child := range adj.Neighbors(id) {
			inDegree[child]++
		}
	}

	ranks := make(map[string]int, adj.Len())
	queue := make([]string, 0, adj.Len())
	for _, id := range adj.IDs() {
		ranks[id] = 0
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range adj.Neighbors(curr) {
			if r := ranks[curr] + 1; r > ranks[child] {
				ranks[child] = r
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return ranks
}

// Bands groups node ids by rank, bands in ascending rank order and ids in
// input order within each band. Ranks absent from the map count as 0.
// Returns nil for an empty node slice.
func Bands(nodes []graph.Node, ranks map[string]int) [][]string {
	if len(nodes) == 0 {
		return nil
	}
	maxRank := 0
	for _, n := range nodes {
		if r := ranks[n.ID]; r > maxRank {
			maxRank = r
		}
	}
	bands := make([][]string, maxRank+1)
	for _, n := range nodes {
		r := ranks[n.ID]
		bands[r] = append(bands[r], n.ID)
	}
	return bands
}
