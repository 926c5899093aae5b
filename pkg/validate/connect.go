package validate

import "github.com/flowdag/flowdag/pkg/graph"

// Rejection reasons returned by [CanConnect], checked in this order.
const (
	// ReasonSelfConnection rejects an edge whose endpoints are the same node.
	ReasonSelfConnection = "cannot connect node to itself"

	// ReasonDuplicateConnection rejects an edge whose exact (source, target)
	// pair already exists. The reverse direction is a different connection.
	ReasonDuplicateConnection = "connection already exists"

	// ReasonWouldCycle rejects an edge that would close a directed cycle.
	ReasonWouldCycle = "would create a cycle"
)

// Decision is the outcome of a connection feasibility check. Reason is empty
// exactly when CanConnect is true.
type Decision struct {
	CanConnect bool   `json:"canConnect"`
	Reason     string `json:"reason,omitempty"`
}

// CanConnect decides whether a source -> target edge may be added to the
// existing edge set. The candidate is judged against the edges as they are,
// before insertion:
//
//  1. source == target is rejected ([ReasonSelfConnection]).
//  2. An identical (source, target) pair among the existing edges is
//     rejected ([ReasonDuplicateConnection]).
//  3. A directed path target -> ... -> source among the existing edges is
//     rejected ([ReasonWouldCycle]): adding source -> target would close it
//     into a cycle. Checking the reverse path is exact - no candidate edge
//     is materialized and no full cycle detection runs.
//
// Otherwise the connection is allowed. CanConnect has no side effects; the
// caller inserts the edge on acceptance.
func CanConnect(source, target string, edges []graph.Edge) Decision {
	if source == target {
		return Decision{Reason: ReasonSelfConnection}
	}
	for _, e := range edges {
		if e.Source == source && e.Target == target {
			return Decision{Reason: ReasonDuplicateConnection}
		}
	}
	adj := graph.NewAdjacency(endpointNodes(edges), edges)
	if graph.HasPath(adj, target, source) {
		return Decision{Reason: ReasonWouldCycle}
	}
	return Decision{CanConnect: true}
}

// endpointNodes derives the node set implied by the edges themselves, in
// first-seen order. The guard receives only edges, so the adjacency view is
// built over every id an edge mentions.
func endpointNodes(edges []graph.Edge) []graph.Node {
	seen := make(map[string]bool, len(edges)*2)
	var nodes []graph.Node
	for _, e := range edges {
		if !seen[e.Source] {
			seen[e.Source] = true
			nodes = append(nodes, graph.Node{ID: e.Source})
		}
		if !seen[e.Target] {
			seen[e.Target] = true
			nodes = append(nodes, graph.Node{ID: e.Target})
		}
	}
	return nodes
}
