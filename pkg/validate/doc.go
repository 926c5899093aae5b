// Package validate decides whether a flow is a well-formed DAG and whether a
// proposed connection may be added to one.
//
// Two entry points cover the editor's needs. [Check] runs the full battery
// of invariant checks over a complete node/edge pair and returns a [Report]
// whose flags are always all populated, so a UI can light up per-check
// indicators even when several checks fail at once. [CanConnect] answers the
// incremental question for a single candidate edge before it is committed,
// returning a [Decision] with a human-readable rejection reason.
//
// Both functions are pure and total: any input - empty, self-looping,
// duplicated, cyclic, or referencing unknown nodes - produces a result,
// never an error. Findings are data, not failures.
package validate
