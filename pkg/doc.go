// Package pkg provides the core libraries for flowdag flow validation and layout.
//
// # Overview
//
// Flowdag keeps node-based flow graphs honest: every edit to a flow is
// validated against the DAG invariants, candidate connections are judged
// before they are made, and nodes are positioned on a rank grid for
// display. The pkg directory is organized into three main areas:
//
//  1. Domain logic ([graph], [validate], [layout]) - pure, total functions
//     over nodes and edges
//  2. Serialization ([document]) - the flow JSON envelope and DOT export
//  3. Infrastructure ([cache], [config], [pipeline], [errors],
//     [observability], [buildinfo]) - everything the CLI and HTTP API share
//
// # Architecture
//
// The typical data flow through flowdag:
//
//	flow.json
//	     ↓
//	[document] package (decode + structural validation)
//	     ↓
//	[validate] package (DAG checks + connection guard)
//	     ↓
//	[layout] package (rank assignment + positions)
//	     ↓
//	[document] package (JSON / Graphviz DOT export)
//
// The [pipeline] package orchestrates those stages behind a cache so the
// CLI and the HTTP API behave identically.
//
// # Quick Start
//
// Validate a flow and lay it out:
//
//	import (
//	    "github.com/flowdag/flowdag/pkg/layout"
//	    "github.com/flowdag/flowdag/pkg/validate"
//	)
//
//	// 1. Check the DAG invariants
//	report := validate.Check(nodes, edges)
//	if !report.IsValid {
//	    fmt.Println(report.Errors)
//	}
//
//	// 2. Guard a new connection before adding it
//	if d := validate.CanConnect("a", "b", edges); !d.CanConnect {
//	    fmt.Println(d.Reason)
//	}
//
//	// 3. Assign positions
//	positioned := layout.Apply(nodes, edges, layout.Options{})
//
// # Main Packages
//
// [graph] - Nodes, edges, positions, and the adjacency index. Traversals
// (reachability, weak connectivity, cycle detection) are iterative and
// tolerate dangling references and duplicate edges.
//
// [validate] - The four flow checks (minimum size, self-loops, acyclicity,
// connectivity) aggregated into a Report, and the connection guard that
// decides whether a candidate edge may be added.
//
// [layout] - Longest-path rank assignment and the rank grid geometry.
// Cyclic flows still lay out: nodes on a cycle keep the best rank a
// finalized parent gave them.
//
// [document] - The flow JSON envelope (nodes, edges, metadata) with strict
// decoding, plus the Graphviz DOT exporter.
//
// [pipeline] - Load → validate → layout → export orchestration with
// content-addressed caching of reports and layouts.
//
// [cache] - Cache interface with file, Redis, and null backends, key
// derivation, and retry helpers.
//
// [config] - TOML configuration for layout geometry, cache backend
// selection, and the HTTP server.
//
// [errors] - Structured errors with stable codes shared by every package.
//
// [observability] - Pluggable pipeline, cache, and HTTP hooks.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/validate/... # Specific package
//	go test -run Example       # Examples only
//
// [graph]: https://pkg.go.dev/github.com/flowdag/flowdag/pkg/graph
// [validate]: https://pkg.go.dev/github.com/flowdag/flowdag/pkg/validate
// [layout]: https://pkg.go.dev/github.com/flowdag/flowdag/pkg/layout
// [document]: https://pkg.go.dev/github.com/flowdag/flowdag/pkg/document
// [pipeline]: https://pkg.go.dev/github.com/flowdag/flowdag/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/flowdag/flowdag/pkg/cache
// [config]: https://pkg.go.dev/github.com/flowdag/flowdag/pkg/config
// [errors]: https://pkg.go.dev/github.com/flowdag/flowdag/pkg/errors
// [observability]: https://pkg.go.dev/github.com/flowdag/flowdag/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/flowdag/flowdag/pkg/buildinfo
package pkg
