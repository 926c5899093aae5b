// Package document serializes flows to and from the canvas JSON format and
// exports them as Graphviz DOT text.
//
// # Overview
//
// A document is the envelope the editor saves and every external tool
// consumes: the node and edge collections plus derived metadata. The schema
// mirrors the in-memory model field for field, so a flow survives the
// write/read round trip losslessly - ids, labels, positions and endpoints
// all come back exactly as written.
//
// # JSON Format
//
//	{
//	  "nodes": [
//	    {"id": "fetch", "label": "Fetch", "position": {"x": -80, "y": -24}}
//	  ],
//	  "edges": [
//	    {"id": "e1", "source": "fetch", "target": "parse"}
//	  ],
//	  "metadata": {"nodeCount": 1, "edgeCount": 1, "timestamp": "2026-08-25T12:00:00Z"}
//	}
//
// Metadata is always derived from the collections on write and never trusted
// on read: counts are informational and a missing metadata object is fine.
//
// # Decoding Strictness
//
// Unlike the engine, which tolerates any input, the decoder rejects
// documents that cannot round-trip sanely: empty or duplicate node ids,
// duplicate edge ids, edges with missing endpoints, and ids or labels
// containing control characters. Dangling edge references and self-loops
// are NOT decode errors - they are validity findings, and a saved document
// may legitimately contain them mid-edit.
//
// # DOT Export
//
// [ToDOT] renders the flow as Graphviz DOT text in input order, for piping
// into external graph tooling. Only the text is produced here; rasterizing
// it is the consumer's business.
package document
