// Package layout computes deterministic hierarchical positions for the nodes
// of a flow.
//
// # Overview
//
// Nodes are arranged into horizontal bands by rank, where a node's rank is
// the length of the longest directed path ending at it. Sources (no incoming
// edges) sit at rank 0, and every node lands strictly below all of the
// parents that reached it. Within a band, nodes keep the order in which the
// caller supplied them.
//
// [Apply] is the entry point: it returns a new node slice with every
// position overwritten and every other field untouched. [Ranks], [Bands] and
// [Crossings] expose the intermediate steps for diagnostics.
//
// # Algorithm
//
// Ranks come from a longest-path topological traversal (Kahn's algorithm):
//
//  1. Seed a queue with indegree-0 nodes at rank 0, in input order.
//  2. Dequeue a node and raise each child to max(child rank, parent rank+1).
//  3. Decrement child indegrees; enqueue children that reach zero.
//  4. Repeat until the queue drains.
//
// Each node is dequeued at most once, so the traversal is bounded by the
// node count and runs in O(V+E) regardless of input shape.
//
// # Cycles
//
// Layout must stay total on invalid flows: a user can trigger it while the
// graph is temporarily cyclic. Nodes caught in a cycle never reach indegree
// zero and are never dequeued; they keep the highest rank a finalized parent
// pushed to them, which is rank 0 when no such parent exists. That fallback
// is the documented behavior, not an accident - the traversal terminates and
// positions every node no matter the input.
//
// # Determinism
//
// The same node/edge input always produces identical positions: ranks are
// order-independent maxima, bands order by input position, and coordinates
// are exact multiples of the spacing options. Running [Apply] on its own
// output changes nothing.
package layout
