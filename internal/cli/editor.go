package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/flowdag/flowdag/pkg/document"
	"github.com/flowdag/flowdag/pkg/graph"
	"github.com/flowdag/flowdag/pkg/layout"
	"github.com/flowdag/flowdag/pkg/validate"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// editorMode identifies what the editor is currently asking of the user.
type editorMode int

const (
	modeBrowse editorMode = iota
	modeAddNode
	modePickSource
	modePickTarget
	modeConfirmDelete
)

// savedMsg reports the result of writing the flow to disk.
type savedMsg struct{ err error }

// =============================================================================
// EditorModel - Interactive flow editing
// =============================================================================

// EditorModel is the bubbletea model for the interactive flow editor. It
// owns the working node and edge slices, revalidates them after every
// structural change, and runs every new connection through the same guard
// the check command uses.
type EditorModel struct {
	Path  string
	Nodes []graph.Node
	Edges []graph.Edge

	Cursor int
	Mode   editorMode
	Input  string // label buffer while adding a node
	Source int    // picked source index while connecting
	Report validate.Report
	Status string // transient line under the lists
	Opts   layout.Options
	Dirty  bool
	Saved  bool
}

// NewEditorModel creates an editor over the given flow.
func NewEditorModel(path string, nodes []graph.Node, edges []graph.Edge, opts layout.Options) EditorModel {
	return EditorModel{
		Path:   path,
		Nodes:  nodes,
		Edges:  edges,
		Report: validate.Check(nodes, edges),
		Opts:   opts,
	}
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			m.Status = "save failed: " + msg.err.Error()
		} else {
			m.Dirty = false
			m.Saved = true
			m.Status = "saved " + m.Path
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.Mode {
		case modeAddNode:
			return m.updateAddNode(msg)
		case modePickSource:
			return m.updatePickSource(msg)
		case modePickTarget:
			return m.updatePickTarget(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m EditorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Nodes)-1 {
			m.Cursor++
		}
	case "a":
		m.Mode = modeAddNode
		m.Input = ""
		m.Status = ""
	case "c":
		if len(m.Nodes) < 2 {
			m.Status = "connecting needs at least two nodes"
			return m, nil
		}
		m.Mode = modePickSource
		m.Status = ""
	case "d":
		if len(m.Nodes) == 0 {
			return m, nil
		}
		m.Mode = modeConfirmDelete
		m.Status = ""
	case "l", "L":
		m.Nodes = layout.Apply(m.Nodes, m.Edges, m.Opts)
		m.Dirty = true
		m.Status = "layout applied"
	case "s":
		return m, saveFlow(m.Path, m.Nodes, m.Edges)
	}
	return m, nil
}

func (m EditorModel) updateAddNode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = modeBrowse
		m.Input = ""
	case "enter":
		label := strings.TrimSpace(m.Input)
		m.Mode = modeBrowse
		m.Input = ""
		if label == "" {
			return m, nil
		}
		m.Nodes = append(m.Nodes, graph.Node{ID: uuid.NewString(), Label: label})
		m.Cursor = len(m.Nodes) - 1
		m.Status = "added " + label
		m = m.recheck()
	case "backspace":
		if r := []rune(m.Input); len(r) > 0 {
			m.Input = string(r[:len(r)-1])
		}
	default:
		if msg.Type == tea.KeyRunes && !msg.Alt {
			m.Input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.Input += " "
		}
	}
	return m, nil
}

func (m EditorModel) updatePickSource(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = modeBrowse
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Nodes)-1 {
			m.Cursor++
		}
	case "enter":
		m.Source = m.Cursor
		m.Mode = modePickTarget
	}
	return m, nil
}

func (m EditorModel) updatePickTarget(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = modeBrowse
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Nodes)-1 {
			m.Cursor++
		}
	case "enter":
		source := m.Nodes[m.Source]
		target := m.Nodes[m.Cursor]
		m.Mode = modeBrowse

		decision := validate.CanConnect(source.ID, target.ID, m.Edges)
		if !decision.CanConnect {
			m.Status = decision.Reason
			return m, nil
		}
		m.Edges = append(m.Edges, graph.Edge{ID: uuid.NewString(), Source: source.ID, Target: target.ID})
		m.Status = fmt.Sprintf("connected %s %s %s", nodeTitle(source), iconArrow, nodeTitle(target))
		m = m.recheck()
	}
	return m, nil
}

func (m EditorModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		removed := m.Nodes[m.Cursor]
		m.Nodes = append(m.Nodes[:m.Cursor], m.Nodes[m.Cursor+1:]...)

		edges := m.Edges[:0]
		for _, e := range m.Edges {
			if e.Source != removed.ID && e.Target != removed.ID {
				edges = append(edges, e)
			}
		}
		m.Edges = edges

		if m.Cursor >= len(m.Nodes) && m.Cursor > 0 {
			m.Cursor--
		}
		m.Mode = modeBrowse
		m.Status = "deleted " + nodeTitle(removed)
		m = m.recheck()
	case "n", "esc":
		m.Mode = modeBrowse
	}
	return m, nil
}

// recheck reruns validation after a structural change.
func (m EditorModel) recheck() EditorModel {
	m.Report = validate.Check(m.Nodes, m.Edges)
	m.Dirty = true
	return m
}

// saveFlow writes the flow to disk off the update loop.
func saveFlow(path string, nodes []graph.Node, edges []graph.Edge) tea.Cmd {
	return func() tea.Msg {
		doc := document.New(nodes, edges, time.Now())
		return savedMsg{err: document.WriteFile(path, doc)}
	}
}

// =============================================================================
// View
// =============================================================================

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Flow Editor"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(m.Path))
	if m.Dirty {
		b.WriteString(StyleWarning.Render("  [unsaved]"))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.helpLine()))
	b.WriteString("\n\n")

	ranks := layout.Ranks(m.Nodes, m.Edges)

	if len(m.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (no nodes yet - press a to add one)"))
		b.WriteString("\n")
	}
	for i, n := range m.Nodes {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-24s rank %-3d (%6.0f, %6.0f)  %s",
			cursor, nodeTitle(n), ranks[n.ID], n.Position.X, n.Position.Y, shortID(n.ID))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case m.Mode == modePickTarget && i == m.Source:
			b.WriteString(StyleSuccess.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.Edges) > 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d connections", len(m.Edges))))
		b.WriteString("\n")
		for _, e := range m.Edges {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s %s %s", m.titleByID(e.Source), iconArrow, m.titleByID(e.Target))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch m.Mode {
	case modeAddNode:
		b.WriteString(StyleHighlight.Render("  New node label: "))
		b.WriteString(m.Input)
		b.WriteString("\n")
	case modeConfirmDelete:
		b.WriteString(StyleWarning.Render(fmt.Sprintf("  Delete %s and its connections? (y/n)", nodeTitle(m.Nodes[m.Cursor]))))
		b.WriteString("\n")
	}

	b.WriteString(m.statusBar())
	b.WriteString("\n")
	if m.Status != "" {
		b.WriteString(listDimStyle.Render("  " + m.Status))
		b.WriteString("\n")
	}

	return b.String()
}

// helpLine describes the keys available in the current mode.
func (m EditorModel) helpLine() string {
	switch m.Mode {
	case modeAddNode:
		return "type a label  ⏎ add  esc cancel"
	case modePickSource:
		return "↑/↓ pick source  ⏎ confirm  esc cancel"
	case modePickTarget:
		return "↑/↓ pick target  ⏎ connect  esc cancel"
	case modeConfirmDelete:
		return "y delete  n keep"
	default:
		return "↑/↓ move  a add  c connect  d delete  l layout  s save  q quit"
	}
}

// statusBar renders the live validity line: one indicator per check.
func (m EditorModel) statusBar() string {
	checks := []struct {
		ok    bool
		label string
	}{
		{m.Report.HasMinNodes, "size"},
		{!m.Report.HasSelfLoops, "loops"},
		{!m.Report.HasCycles, "cycles"},
		{m.Report.AllNodesConnected, "connected"},
	}

	parts := make([]string, 0, len(checks))
	for _, c := range checks {
		if c.ok {
			parts = append(parts, StyleSuccess.Render(iconSuccess+" "+c.label))
		} else {
			parts = append(parts, StyleError.Render(iconError+" "+c.label))
		}
	}

	head := StyleSuccess.Render(iconSuccess + " valid")
	if !m.Report.IsValid {
		head = StyleError.Render(iconError + " invalid")
	}
	return "  " + head + listDimStyle.Render("  |  ") + strings.Join(parts, listDimStyle.Render(" · "))
}

// titleByID resolves a node id to its display name. Dangling references
// fall back to the truncated id.
func (m EditorModel) titleByID(id string) string {
	for _, n := range m.Nodes {
		if n.ID == id {
			return nodeTitle(n)
		}
	}
	return shortID(id)
}

// nodeTitle is the node's display name: the label, or the id for unlabeled nodes.
func nodeTitle(n graph.Node) string {
	if n.Label != "" {
		return n.Label
	}
	return shortID(n.ID)
}

// shortID truncates uuid-sized ids for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
