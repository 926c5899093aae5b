package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flowdag/flowdag/pkg/cache"
	"github.com/flowdag/flowdag/pkg/errors"
	"github.com/flowdag/flowdag/pkg/graph"
)

const validFlow = `{
  "nodes": [
    {"id": "a", "label": "A"},
    {"id": "b", "label": "B"},
    {"id": "c", "label": "C"}
  ],
  "edges": [
    {"id": "e1", "source": "a", "target": "b"},
    {"id": "e2", "source": "b", "target": "c"}
  ]
}`

const cyclicFlow = `{
  "nodes": [
    {"id": "a"},
    {"id": "b"}
  ],
  "edges": [
    {"id": "e1", "source": "a", "target": "b"},
    {"id": "e2", "source": "b", "target": "a"}
  ]
}`

func writeFlow(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flow.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing flow: %v", err)
	}
	return path
}

func TestExecute_FullPipeline(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		InputPath: writeFlow(t, validFlow),
		Formats:   []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !result.Report.IsValid {
		t.Errorf("Report.IsValid = false, want true; findings: %v", result.Report.Errors)
	}
	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
		t.Errorf("Stats = %d nodes %d edges, want 3 and 2", result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if result.FlowHash == "" {
		t.Error("FlowHash should be set")
	}

	// Positions were computed: a chain stacks downward
	ys := map[string]float64{}
	for _, n := range result.Nodes {
		ys[n.ID] = n.Position.Y
	}
	if !(ys["a"] < ys["b"] && ys["b"] < ys["c"]) {
		t.Errorf("chain should stack downward, got %v", ys)
	}

	// Both artifacts were produced
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("missing json artifact")
	}
	dot, ok := result.Artifacts[FormatDOT]
	if !ok {
		t.Error("missing dot artifact")
	}
	if !strings.Contains(string(dot), `"a" -> "b";`) {
		t.Errorf("dot artifact missing edge:\n%s", dot)
	}
}

func TestExecute_SecondRunHitsCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{InputPath: writeFlow(t, validFlow)}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.ReportHit {
		t.Error("first run should not hit the cache")
	}

	second, err := runner.Execute(context.Background(), Options{InputPath: opts.InputPath})
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit the layout cache")
	}
	if !second.CacheInfo.ReportHit {
		t.Error("second run should hit the report cache")
	}

	// Cached positions match computed ones
	for i, n := range second.Nodes {
		if n != first.Nodes[i] {
			t.Errorf("node %d differs between runs: %+v vs %+v", i, n, first.Nodes[i])
		}
	}
}

func TestExecute_RefreshBypassesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	path := writeFlow(t, validFlow)
	if _, err := runner.Execute(context.Background(), Options{InputPath: path}); err != nil {
		t.Fatalf("warm-up Execute() error = %v", err)
	}

	result, err := runner.Execute(context.Background(), Options{InputPath: path, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute() error = %v", err)
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.ReportHit {
		t.Error("refresh run should bypass the cache")
	}
}

func TestExecute_FailOnInvalidStopsAfterValidation(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		InputPath:     writeFlow(t, cyclicFlow),
		FailOnInvalid: true,
	})
	if err == nil {
		t.Fatal("Execute() error = nil, want error for invalid flow")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeInvalidFlow {
		t.Errorf("GetCode(err) = %q, want %q", code, errors.ErrCodeInvalidFlow)
	}

	// The result still carries the report so callers can show findings
	if result == nil {
		t.Fatal("result should carry the report on failure")
	}
	if result.Report.IsValid {
		t.Error("Report.IsValid = true, want false")
	}
	if !result.Report.HasCycles {
		t.Error("Report.HasCycles = false, want true")
	}
	if len(result.Artifacts) != 0 {
		t.Error("no artifacts should be produced when validation fails the run")
	}
}

func TestExecute_InvalidFlowStillLaysOutByDefault(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		InputPath: writeFlow(t, cyclicFlow),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Report.IsValid {
		t.Error("Report.IsValid = true, want false")
	}

	// Cycle members fall back to rank 0 but still get positions
	if len(result.Nodes) != 2 {
		t.Fatalf("len(Nodes) = %d, want 2", len(result.Nodes))
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("artifacts should still be produced for invalid flows")
	}
}

func TestExecute_MissingInputFile(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		InputPath: filepath.Join(t.TempDir(), "absent.json"),
	})
	if err == nil {
		t.Fatal("Execute() error = nil, want error")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeFileNotFound {
		t.Errorf("GetCode(err) = %q, want %q", code, errors.ErrCodeFileNotFound)
	}
}

func TestFlowHash(t *testing.T) {
	nodes := []graph.Node{{ID: "a"}, {ID: "b"}}
	edges := []graph.Edge{{ID: "e1", Source: "a", Target: "b"}}

	// Deterministic
	if FlowHash(nodes, edges) != FlowHash(nodes, edges) {
		t.Error("FlowHash should be deterministic")
	}

	// Sensitive to structure
	if FlowHash(nodes, edges) == FlowHash(nodes, nil) {
		t.Error("FlowHash should change when edges change")
	}

	// Positions are node content, so a moved node changes the hash
	moved := []graph.Node{{ID: "a", Position: graph.Position{X: 10}}, {ID: "b"}}
	if FlowHash(nodes, edges) == FlowHash(moved, edges) {
		t.Error("FlowHash should change when node content changes")
	}
}

func TestCheck_InMemoryFlow(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	nodes := []graph.Node{{ID: "a"}, {ID: "b"}}
	edges := []graph.Edge{{ID: "e1", Source: "a", Target: "b"}}

	report := runner.Check(context.Background(), nodes, edges, Options{})
	if !report.IsValid {
		t.Errorf("Check() = %+v, want valid", report)
	}
}

func TestLayout_InMemoryFlow(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	nodes := []graph.Node{{ID: "a"}, {ID: "b"}}
	edges := []graph.Edge{{ID: "e1", Source: "a", Target: "b"}}

	positioned := runner.Layout(context.Background(), nodes, edges, Options{})
	if len(positioned) != 2 {
		t.Fatalf("len(positioned) = %d, want 2", len(positioned))
	}
	if positioned[0].Position.Y >= positioned[1].Position.Y {
		t.Errorf("a should sit above b: %v vs %v", positioned[0].Position, positioned[1].Position)
	}
}

func TestExport_Formats(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	nodes := []graph.Node{{ID: "a", Label: "A"}}

	artifacts, err := runner.Export(context.Background(), nodes, nil, Options{
		Formats: []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(string(artifacts[FormatJSON]), `"id": "a"`) {
		t.Errorf("json artifact missing node:\n%s", artifacts[FormatJSON])
	}
	if !strings.Contains(string(artifacts[FormatDOT]), `"a" [label="A"];`) {
		t.Errorf("dot artifact missing node:\n%s", artifacts[FormatDOT])
	}

	// Unknown format is rejected
	if _, err := runner.Export(context.Background(), nodes, nil, Options{Formats: []string{"svg"}}); err == nil {
		t.Error("Export() should reject unknown formats")
	}
}
