package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowdag/flowdag/pkg/document"
	"github.com/flowdag/flowdag/pkg/errors"
	"github.com/flowdag/flowdag/pkg/pipeline"
	"github.com/flowdag/flowdag/pkg/validate"
)

// validateCommand creates the validate command for checking flow documents.
func (c *CLI) validateCommand() *cobra.Command {
	var (
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "validate [flow.json]",
		Short: "Check that a flow document is a well-formed DAG",
		Long: `Check that a flow document is a well-formed DAG.

The validate command loads a flow.json file and runs four independent checks:
the flow has at least two nodes, no edge connects a node to itself, no
directed cycle exists, and every node is connected to the rest of the flow.
Each check prints its own status line; detailed findings follow for anything
that failed.

The exit code is 0 for a valid flow and 1 otherwise, so validate can gate
scripts and CI steps. Reports are cached locally; pass --refresh to force a
recheck.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], noCache, refresh)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recheck even if a cached report exists")

	return cmd
}

// runValidate loads the flow, runs the checks, and prints the report.
func (c *CLI) runValidate(ctx context.Context, input string, noCache, refresh bool) error {
	logger := loggerFromContext(ctx)

	doc, err := document.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load flow %s: %w", input, err)
	}
	logger.Debug("Loaded flow", "path", input, "nodes", len(doc.Nodes), "edges", len(doc.Edges))

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	opts := pipeline.Options{Refresh: refresh}
	report, cacheHit := runner.CheckWithCacheInfo(ctx, doc.Nodes, doc.Edges, opts)
	prog.done(fmt.Sprintf("Checked %d nodes and %d edges", len(doc.Nodes), len(doc.Edges)))

	printReport(report)
	printStats(len(doc.Nodes), len(doc.Edges), cacheHit)

	if !report.IsValid {
		return errors.New(errors.ErrCodeInvalidFlow, "flow is invalid")
	}

	printNewline()
	printNextStep("Layout", appName+" layout "+input)
	return nil
}

// printReport prints one status line per check, then the findings.
func printReport(report validate.Report) {
	printCheck(report.HasMinNodes, "at least two nodes")
	printCheck(!report.HasSelfLoops, "no self-loops")
	printCheck(!report.HasCycles, "acyclic")
	printCheck(report.AllNodesConnected, "all nodes connected")

	if len(report.Errors) > 0 {
		printNewline()
		for _, msg := range report.Errors {
			printDetail("%s", msg)
		}
	}
}
