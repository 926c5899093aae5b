package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowdag/flowdag/pkg/document"
	"github.com/flowdag/flowdag/pkg/pipeline"
)

// exportCommand creates the export command for serializing flows.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export [flow.json]",
		Short: "Export a flow document as JSON or Graphviz DOT",
		Long: `Export a flow document to another format.

Positions are exported exactly as stored; run 'flowdag layout' first to
assign fresh ones. With no --output the result goes to stdout, so DOT
exports pipe straight into Graphviz:

  flowdag export flow.json -f dot | dot -Tsvg -o flow.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, "output format: json, dot")

	return cmd
}

// runExport loads the flow and writes it in the requested format.
func (c *CLI) runExport(ctx context.Context, input, output, format string) error {
	doc, err := document.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load flow %s: %w", input, err)
	}

	// Exports are plain serializations; no cache backend is needed.
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Formats: []string{format}}
	artifacts, err := runner.Export(ctx, doc.Nodes, doc.Edges, opts)
	if err != nil {
		return err
	}

	data := artifacts[format]
	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printSuccess("Exported %s", format)
	printFile(output)
	return nil
}
