package graph

import "slices"

// Adjacency is an immutable neighbor-list view over a node/edge pair.
// Node ids keep the input order of the node slice and every node owns an
// entry, even with no neighbors. Neighbor lists keep first-seen edge order
// and collapse duplicate (source, target) pairs to a single entry, so cycle
// and connectivity logic is unaffected by duplicated edges.
//
// Build one with [NewAdjacency] or [NewUndirected]; the zero value is an
// empty view.
type Adjacency struct {
	ids   []string
	index map[string]int
	next  map[string][]string
}

// NewAdjacency builds the directed view: each edge contributes its target to
// the source's neighbor list. Edges whose endpoints are missing from the
// node set are skipped; duplicate nodes keep their first occurrence.
func NewAdjacency(nodes []Node, edges []Edge) *Adjacency {
	a := newView(nodes)
	seen := make(map[[2]string]bool, len(edges))
	for _, e := range edges {
		if !a.Contains(e.Source) || !a.Contains(e.Target) {
			continue
		}
		pair := [2]string{e.Source, e.Target}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		a.next[e.Source] = append(a.next[e.Source], e.Target)
	}
	return a
}

// NewUndirected builds the direction-blind view: each edge contributes an
// entry on both endpoints. A self-loop contributes a single entry rather
// than two. Dangling and duplicate edges are handled as in [NewAdjacency].
func NewUndirected(nodes []Node, edges []Edge) *Adjacency {
	a := newView(nodes)
	seen := make(map[[2]string]bool, len(edges))
	for _, e := range edges {
		if !a.Contains(e.Source) || !a.Contains(e.Target) {
			continue
		}
		pair := [2]string{e.Source, e.Target}
		if e.Target < e.Source {
			pair = [2]string{e.Target, e.Source}
		}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		a.next[e.Source] = append(a.next[e.Source], e.Target)
		if e.Source != e.Target {
			a.next[e.Target] = append(a.next[e.Target], e.Source)
		}
	}
	return a
}

func newView(nodes []Node) *Adjacency {
	a := &Adjacency{
		index: make(map[string]int, len(nodes)),
		next:  make(map[string][]string, len(nodes)),
	}
	for _, n := range nodes {
		if _, dup := a.index[n.ID]; dup {
			continue
		}
		a.index[n.ID] = len(a.ids)
		a.ids = append(a.ids, n.ID)
		a.next[n.ID] = []string{}
	}
	return a
}

// IDs returns the node ids in input order.
// The returned slice is a copy and safe to modify.
func (a *Adjacency) IDs() []string { return slices.Clone(a.ids) }

// Len returns the number of nodes in the view.
func (a *Adjacency) Len() int { return len(a.ids) }

// Contains reports whether the id belongs to the node set.
func (a *Adjacency) Contains(id string) bool {
	_, ok := a.index[id]
	return ok
}

// Neighbors returns the neighbor ids of a node in first-seen order.
// Returns nil for an unknown id. The returned slice should not be
// modified - use it as a read-only view.
func (a *Adjacency) Neighbors(id string) []string { return a.next[id] }
