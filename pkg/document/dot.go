package document

import (
	"bytes"
	"fmt"

	"github.com/flowdag/flowdag/pkg/graph"
)

// ToDOT renders the flow as Graphviz DOT text. Nodes and edges appear in
// input order so the output is stable across runs. A node without a label
// falls back to its id; dangling edge references are emitted as written,
// since DOT declares unknown nodes implicitly.
func ToDOT(nodes []graph.Node, edges []graph.Edge) string {
	var buf bytes.Buffer
	buf.WriteString("digraph flow {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=rounded];\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, label)
	}
	if len(nodes) > 0 && len(edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}
