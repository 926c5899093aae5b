package graph

// Position locates a node on the editor canvas. Coordinates are opaque to
// every algorithm in this package: validation never reads them, and layout
// overwrites them wholesale.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a vertex in a flow. Identity is by ID; Label and Position are
// presentation data with no effect on validity.
//
// The zero value is usable but anonymous - callers building flows by hand
// should at least set ID.
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Position Position `json:"position"`
}

// Edge is a directed connection Source -> Target between two nodes.
// Source == Target (a self-loop) is representable on purpose: malformed
// edges must be detectable by the validator rather than rejected at the
// model level.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// NodeIDs extracts the ID from each node in a slice.
// Returns a new slice containing the IDs in the same order as the input.
func NodeIDs(nodes []Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

// PosMap creates a position lookup map from a slice of node IDs.
// The returned map maps each ID to its index in the slice. Later duplicates
// overwrite earlier ones. Returns an empty map for a nil or empty slice.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}
