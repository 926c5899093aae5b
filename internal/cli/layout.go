package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowdag/flowdag/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		formats string
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "layout [flow.json]",
		Short: "Assign node positions in a flow document",
		Long: `Assign node positions in a flow document.

The layout command loads a flow.json file, validates it, places every node on
a rank grid (sources on top, each node below the deepest node that points to
it), and writes the positioned flow back out. Validation findings are
reported but do not stop the layout; pass --fail-on-invalid to stop instead.

The output format defaults to JSON; --format dot exports Graphviz DOT, and
--format json,dot writes both.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd, args[0], opts, output, formats, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&formats, "format", "f", pipeline.FormatJSON, "output formats, comma separated: json, dot")

	// Layout flags
	cmd.Flags().Float64Var(&opts.SlotWidth, "slot-width", opts.SlotWidth, "horizontal distance between slot centers")
	cmd.Flags().Float64Var(&opts.RankSpacing, "rank-spacing", opts.RankSpacing, "vertical distance between ranks")
	cmd.Flags().Float64Var(&opts.NodeWidth, "node-width", opts.NodeWidth, "node width used for centering")
	cmd.Flags().Float64Var(&opts.NodeHeight, "node-height", opts.NodeHeight, "node height used for centering")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", opts.Refresh, "recompute even if cached results exist")
	cmd.Flags().BoolVar(&opts.FailOnInvalid, "fail-on-invalid", opts.FailOnInvalid, "abort when validation finds problems")

	return cmd
}

// runLayout runs the pipeline over the input flow and writes the artifacts.
func (c *CLI) runLayout(ctx context.Context, cmd *cobra.Command, input string, opts pipeline.Options, output, formats string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	applyLayoutConfig(cmd, &opts, cfg)

	runner, err := c.newRunnerWithConfig(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.InputPath = input
	opts.Formats = parseFormats(formats)
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if !result.Report.IsValid {
		printWarning("Flow has validation findings")
		for _, msg := range result.Report.Errors {
			printDetail("%s", msg)
		}
		printNewline()
	}

	paths := outputPaths(input, output, opts.Formats)
	written := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		path := paths[format]
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Layout complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Edit", appName+" edit "+written[0])

	return nil
}

// outputPaths maps each requested format to its output file. An explicit
// output path is used verbatim for a single format; with multiple formats
// its extension is replaced per format.
func outputPaths(input, output string, formats []string) map[string]string {
	ext := map[string]string{
		pipeline.FormatJSON: ".layout.json",
		pipeline.FormatDOT:  ".dot",
	}

	base := strings.TrimSuffix(input, filepath.Ext(input))
	paths := make(map[string]string, len(formats))
	for _, f := range formats {
		paths[f] = base + ext[f]
	}

	if output == "" {
		return paths
	}
	if len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	outBase := strings.TrimSuffix(output, filepath.Ext(output))
	for _, f := range formats {
		paths[f] = outBase + ext[f]
	}
	return paths
}
