package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowdag/flowdag/pkg/document"
	"github.com/flowdag/flowdag/pkg/errors"
	"github.com/flowdag/flowdag/pkg/validate"
)

// checkCommand creates the check command for testing connection feasibility.
func (c *CLI) checkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flow.json] [source] [target]",
		Short: "Check whether a connection between two nodes is allowed",
		Long: `Check whether a connection between two nodes is allowed.

The check command judges a candidate source -> target edge against the edges
already in the flow, using the same rules the editor applies: a node cannot
connect to itself, an identical connection cannot be added twice, and a
connection that would close a directed cycle is rejected.

The candidate edge is never added; the exit code is 0 when the connection is
allowed and 1 when it is rejected.

Examples:
  flowdag check flow.json fetch transform
  flowdag check flow.json transform fetch && echo "safe to connect"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(args[0], args[1], args[2])
		},
	}

	return cmd
}

// runCheck loads the flow and prints the guard's decision.
func (c *CLI) runCheck(input, source, target string) error {
	doc, err := document.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load flow %s: %w", input, err)
	}

	decision := validate.CanConnect(source, target, doc.Edges)
	if decision.CanConnect {
		printSuccess("%s %s %s is allowed", StyleHighlight.Render(source), iconArrow, StyleHighlight.Render(target))
		return nil
	}

	printError("%s %s %s is not allowed", StyleHighlight.Render(source), iconArrow, StyleHighlight.Render(target))
	printDetail("%s", decision.Reason)
	return errors.New(errors.ErrCodeInvalidEdge, "connection rejected")
}
