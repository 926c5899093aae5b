package validate

import "github.com/flowdag/flowdag/pkg/graph"

// Finding messages appended to [Report.Errors], in check order. The strings
// are fixed so callers can match on them and tests can assert exact output.
const (
	// MsgNoNodes is reported when the flow has no nodes at all.
	MsgNoNodes = "no nodes present; add at least two nodes to begin"

	// MsgSingleNode is reported when the flow has exactly one node.
	MsgSingleNode = "only one node present; add at least one more node"

	// MsgSelfLoops is reported when any edge connects a node to itself.
	MsgSelfLoops = "self-loops detected; remove edges that connect a node to itself"

	// MsgCycle is reported when the directed graph contains a cycle.
	MsgCycle = "cycle detected; a valid flow must be acyclic"

	// MsgNoConnections is reported when two or more nodes share no edges at all.
	MsgNoConnections = "no connections between nodes"

	// MsgIsolatedNodes is reported when edges exist but leave some nodes
	// unreachable from the rest of the flow.
	MsgIsolatedNodes = "some nodes are isolated from the rest of the flow"
)

// Report is the result of a full validation pass. Every flag is populated on
// every call regardless of which checks fail, so partial UI feedback never
// observes a half-filled result. Errors lists one message per failed check
// in check order: node count, self-loops, cycles, connectivity.
type Report struct {
	IsValid           bool     `json:"isValid"`
	Errors            []string `json:"errors"`
	HasMinNodes       bool     `json:"hasMinNodes"`
	HasCycles         bool     `json:"hasCycles"`
	HasSelfLoops      bool     `json:"hasSelfLoops"`
	AllNodesConnected bool     `json:"allNodesConnected"`
}

// Check runs the four DAG invariant checks over a complete flow and
// aggregates them into a [Report]:
//
//  1. Minimum size: at least two nodes.
//  2. Self-loops: no edge may connect a node to itself.
//  3. Acyclicity: detected only when the flow has edges and more than one
//     node; an edgeless or singleton flow skips the traversal outright and
//     reports HasCycles = false.
//  4. Weak connectivity: every node reachable from every other, ignoring
//     edge direction.
//
// IsValid is the conjunction of all four. The checks are independent: a
// failed check never suppresses the ones after it. Check is pure, total and
// idempotent - edges referencing unknown nodes or duplicating an existing
// (source, target) pair are tolerated, and the same input always yields the
// same Report.
func Check(nodes []graph.Node, edges []graph.Edge) Report {
	r := Report{Errors: []string{}}

	r.HasMinNodes = len(nodes) >= 2
	if !r.HasMinNodes {
		if len(nodes) == 0 {
			r.Errors = append(r.Errors, MsgNoNodes)
		} else {
			r.Errors = append(r.Errors, MsgSingleNode)
		}
	}

	for _, e := range edges {
		if e.Source == e.Target {
			r.HasSelfLoops = true
			break
		}
	}
	if r.HasSelfLoops {
		r.Errors = append(r.Errors, MsgSelfLoops)
	}

	// An edgeless or singleton flow cannot contain a cycle; skipping the
	// traversal keeps the result deterministic on degenerate input.
	if len(edges) > 0 && len(nodes) > 1 {
		r.HasCycles = graph.HasCycle(graph.NewAdjacency(nodes, edges))
	}
	if r.HasCycles {
		r.Errors = append(r.Errors, MsgCycle)
	}

	r.AllNodesConnected = graph.WeaklyConnected(graph.NewUndirected(nodes, edges))
	if !r.AllNodesConnected && len(nodes) > 1 {
		if len(edges) == 0 {
			r.Errors = append(r.Errors, MsgNoConnections)
		} else {
			r.Errors = append(r.Errors, MsgIsolatedNodes)
		}
	}

	r.IsValid = r.HasMinNodes && !r.HasCycles && r.AllNodesConnected && !r.HasSelfLoops
	return r
}
