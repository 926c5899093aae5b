// Package graph provides the node/edge data model and the traversal
// primitives that power flow validation and layout.
//
// # Overview
//
// A flow is a pair of collections: nodes (id, label, canvas position) and
// directed edges (id, source, target). The package builds adjacency views
// over such a pair and answers reachability questions on them. Everything
// here is a pure function of its inputs: no hidden state, no caching across
// calls, no mutation of caller-owned slices.
//
// # Basic Usage
//
// Build an adjacency view with [NewAdjacency] (directed) or [NewUndirected]
// (direction ignored), then query it:
//
//	adj := graph.NewAdjacency(nodes, edges)
//	if graph.HasPath(adj, "fetch", "store") {
//		// a directed path fetch -> ... -> store exists
//	}
//
// [HasCycle] and [WeaklyConnected] operate on whole views and back the
// validator's acyclicity and connectivity checks.
//
// # Determinism
//
// Adjacency views preserve input order: node ids iterate in the order the
// node slice supplied them, and neighbor lists keep first-seen edge order.
// Traversals walk neighbors in that order, never in map iteration order, so
// repeated calls on the same input always take the same path and produce the
// same answer.
//
// # Tolerance
//
// Edges that reference an id missing from the node set are skipped when
// building adjacency. Duplicate (source, target) pairs collapse to a single
// adjacency entry. Both states occur transiently while a flow is being
// edited and are reported by the validator, never treated as structural
// failures here.
//
// # Concurrency
//
// An Adjacency is immutable after construction and safe for concurrent
// readers. The traversal functions allocate their own bookkeeping per call,
// so distinct goroutines may query the same view simultaneously.
package graph
