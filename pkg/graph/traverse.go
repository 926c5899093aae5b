package graph

// HasPath reports whether a directed path from -> ... -> to exists in the
// view. A node trivially reaches itself, so HasPath(adj, x, x) is true even
// when x is unknown to the view; callers needing strict non-trivial paths
// must special-case that separately. An unknown from with from != to is
// unreachable and reports false.
//
// The search is an explicit-stack depth-first walk in neighbor order, so the
// answer and the traversal path are deterministic for a given view.
func HasPath(adj *Adjacency, from, to string) bool {
	if from == to {
		return true
	}
	if !adj.Contains(from) {
		return false
	}

	visited := make(map[string]bool, adj.Len())
	stack := []string{from}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if curr == to {
			return true
		}
		if visited[curr] {
			continue
		}
		visited[curr] = true

		next := adj.Neighbors(curr)
		for i := len(next) - 1; i >= 0; i-- {
			if !visited[next[i]] {
				stack = append(stack, next[i])
			}
		}
	}
	return false
}

// WeaklyConnected reports whether every node is reachable from every other
// when edge direction is ignored. It must be handed the undirected view
// (see [NewUndirected]); on a directed view it answers reachability from the
// first node only, which is not weak connectivity.
//
// Zero or one nodes are trivially connected. Two or more nodes with no edges
// are not.
func WeaklyConnected(adj *Adjacency) bool {
	if adj.Len() <= 1 {
		return true
	}

	visited := make(map[string]bool, adj.Len())
	stack := []string{adj.ids[0]}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[curr] {
			continue
		}
		visited[curr] = true

		next := adj.Neighbors(curr)
		for i := len(next) - 1; i >= 0; i-- {
			if !visited[next[i]] {
				stack = append(stack, next[i])
			}
		}
	}
	return len(visited) == adj.Len()
}

// HasCycle reports whether the directed view contains a cycle, self-loops
// included. Detection is depth-first search with white/gray/black coloring:
// an edge back to a gray node (one still on the traversal stack) is a cycle.
// Every node is tried as a root, so cycles in disconnected components are
// found even when earlier roots exhaust their reachable sets.
func HasCycle(adj *Adjacency) bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, adj.Len())

	type frame struct {
		id   string
		next int
	}

	for _, root := range adj.ids {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack := []frame{{id: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := adj.Neighbors(top.id)
			if top.next < len(children) {
				child := children[top.next]
				top.next++
				switch color[child] {
				case white:
					color[child] = gray
					stack = append(stack, frame{id: child})
				case gray:
					return true
				}
				continue
			}
			color[top.id] = black
			stack = stack[:len(stack)-1]
		}
	}
	return false
}
