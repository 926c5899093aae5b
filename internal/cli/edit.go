package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/flowdag/flowdag/pkg/document"
	"github.com/flowdag/flowdag/pkg/errors"
)

// editCommand creates the edit command for interactive flow editing.
func (c *CLI) editCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [flow.json]",
		Short: "Edit a flow document interactively",
		Long: `Edit a flow document in an interactive terminal editor.

The editor lists the flow's nodes and connections and revalidates after
every change, so the status line always shows whether the flow is a valid
DAG. New connections run through the same guard as 'flowdag check':
self-connections, duplicates, and cycle-closing edges are rejected with the
reason shown in the status line.

If the file does not exist the editor starts with an empty flow and creates
the file on save.

Keys:
  ↑/k ↓/j  move
  a        add a node
  c        connect two nodes
  d        delete a node and its connections
  l        recompute the layout
  s        save
  q        quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0])
		},
	}

	return cmd
}

// runEdit loads the flow (or starts an empty one) and runs the editor.
func (c *CLI) runEdit(ctx context.Context, input string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	doc, err := document.ReadFile(input)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			return fmt.Errorf("load flow %s: %w", input, err)
		}
		doc = document.New(nil, nil, time.Now())
		printInfo("%s does not exist yet; starting an empty flow", input)
	}

	m := NewEditorModel(input, doc.Nodes, doc.Edges, cfg.Layout.Options())
	p := tea.NewProgram(m, tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(EditorModel)
	if !ok {
		return nil
	}
	switch {
	case fm.Dirty:
		printWarning("Unsaved changes were discarded")
	case fm.Saved:
		printSuccess("Saved %s", input)
		printStats(len(fm.Nodes), len(fm.Edges), false)
	}
	return nil
}
