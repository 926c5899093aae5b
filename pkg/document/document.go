package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/flowdag/flowdag/pkg/errors"
	"github.com/flowdag/flowdag/pkg/graph"
)

// Metadata carries derived bookkeeping about a document. Counts are
// recomputed on every write and carry no authority on read.
type Metadata struct {
	NodeCount int    `json:"nodeCount"`
	EdgeCount int    `json:"edgeCount"`
	Timestamp string `json:"timestamp"`
}

// Document is the canvas file format: the flow's collections plus metadata.
type Document struct {
	Nodes    []graph.Node `json:"nodes"`
	Edges    []graph.Edge `json:"edges"`
	Metadata Metadata     `json:"metadata"`
}

// New assembles a document from the given collections, deriving metadata
// from them. Nil slices become empty so the JSON always contains arrays.
// The timestamp is now in UTC, formatted as RFC 3339.
func New(nodes []graph.Node, edges []graph.Edge, now time.Time) Document {
	if nodes == nil {
		nodes = []graph.Node{}
	}
	if edges == nil {
		edges = []graph.Edge{}
	}
	return Document{
		Nodes: nodes,
		Edges: edges,
		Metadata: Metadata{
			NodeCount: len(nodes),
			EdgeCount: len(edges),
			Timestamp: now.UTC().Format(time.RFC3339),
		},
	}
}

// Marshal encodes the document as indented JSON.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "encode document")
	}
	return append(data, '\n'), nil
}

// Write encodes the document as indented JSON to w.
func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "encode document")
	}
	return nil
}

// WriteFile encodes the document as indented JSON to the file at path,
// creating or truncating it.
func WriteFile(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := Write(f, doc); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Read decodes a document from r and checks that it can round-trip sanely:
// node ids must be present and unique, edge ids unique when set, endpoints
// present, and ids and labels free of control characters. Dangling edge
// references and self-loops pass through untouched; they are validity
// findings, not decode errors.
func Read(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}
	if doc.Nodes == nil {
		doc.Nodes = []graph.Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []graph.Edge{}
	}

	seenNodes := make(map[string]bool, len(doc.Nodes))
	for i, n := range doc.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return Document{}, fmt.Errorf("node %d: %w", i, err)
		}
		if err := errors.ValidateLabel(n.Label); err != nil {
			return Document{}, fmt.Errorf("node %s: %w", n.ID, err)
		}
		if seenNodes[n.ID] {
			return Document{}, errors.New(errors.ErrCodeInvalidNode, "node %s: duplicate id", n.ID)
		}
		seenNodes[n.ID] = true
	}

	seenEdges := make(map[string]bool, len(doc.Edges))
	for i, e := range doc.Edges {
		if err := errors.ValidateEdgeID(e.ID); err != nil {
			return Document{}, fmt.Errorf("edge %d: %w", i, err)
		}
		if e.Source == "" {
			return Document{}, errors.New(errors.ErrCodeInvalidEdge, "edge %d: missing source", i)
		}
		if e.Target == "" {
			return Document{}, errors.New(errors.ErrCodeInvalidEdge, "edge %d: missing target", i)
		}
		if e.ID != "" {
			if seenEdges[e.ID] {
				return Document{}, errors.New(errors.ErrCodeInvalidEdge, "edge %s: duplicate id", e.ID)
			}
			seenEdges[e.ID] = true
		}
	}
	return doc, nil
}

// ReadFile decodes a document from the file at path.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}
