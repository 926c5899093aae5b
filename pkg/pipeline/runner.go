package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowdag/flowdag/pkg/cache"
	"github.com/flowdag/flowdag/pkg/document"
	"github.com/flowdag/flowdag/pkg/errors"
	"github.com/flowdag/flowdag/pkg/graph"
	"github.com/flowdag/flowdag/pkg/layout"
	"github.com/flowdag/flowdag/pkg/observability"
	"github.com/flowdag/flowdag/pkg/validate"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// FlowHash computes the content hash identifying a flow for cache keys and
// API responses. Only the collections participate; document metadata would
// change on every save and defeat content addressing.
func FlowHash(nodes []graph.Node, edges []graph.Edge) string {
	data, _ := json.Marshal(struct {
		Nodes []graph.Node `json:"nodes"`
		Edges []graph.Edge `json:"edges"`
	}{nodes, edges})
	return cache.Hash(data)
}

// Execute runs the complete load → validate → layout → export pipeline.
//
// When FailOnInvalid stops the run, the returned Result still carries the
// report so callers can show the findings alongside the error.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Nodes = doc.Nodes
	result.Edges = doc.Edges
	result.FlowHash = FlowHash(doc.Nodes, doc.Edges)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = len(doc.Nodes)
	result.Stats.EdgeCount = len(doc.Edges)

	r.Logger.Info("loaded flow",
		"path", opts.InputPath,
		"nodes", len(doc.Nodes),
		"edges", len(doc.Edges),
		"duration", result.Stats.LoadTime)

	// Stage 2: Validate
	validateStart := time.Now()
	report, reportHit := r.CheckWithCacheInfo(ctx, doc.Nodes, doc.Edges, opts)
	result.Report = report
	result.Stats.ValidateTime = time.Since(validateStart)
	result.CacheInfo.ReportHit = reportHit

	r.Logger.Info("validated flow",
		"valid", report.IsValid,
		"findings", len(report.Errors),
		"duration", result.Stats.ValidateTime)

	if opts.FailOnInvalid && !report.IsValid {
		return result, errors.New(errors.ErrCodeInvalidFlow,
			"flow is invalid: %s", strings.Join(report.Errors, "; "))
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	positioned, layoutHit := r.LayoutWithCacheInfo(ctx, doc.Nodes, doc.Edges, opts)
	result.Nodes = positioned
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(positioned),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 4: Export
	exportStart := time.Now()
	artifacts, err := r.Export(ctx, result.Nodes, result.Edges, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Info("exported flow",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Load reads and decodes the flow document at opts.InputPath.
func (r *Runner) Load(ctx context.Context, opts Options) (document.Document, error) {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.InputPath)
	start := time.Now()

	doc, err := document.ReadFile(opts.InputPath)
	hooks.OnLoadComplete(ctx, opts.InputPath, len(doc.Nodes), len(doc.Edges), time.Since(start), err)
	if err != nil {
		return document.Document{}, err
	}
	return doc, nil
}

// CheckWithCacheInfo validates a flow with report caching and returns cache hit info.
func (r *Runner) CheckWithCacheInfo(ctx context.Context, nodes []graph.Node, edges []graph.Edge, opts Options) (validate.Report, bool) {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	hooks.OnValidateStart(ctx, len(nodes), len(edges))
	start := time.Now()

	key := r.Keyer.ReportKey(FlowHash(nodes, edges))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached validate.Report
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "report")
				hooks.OnValidateComplete(ctx, cached.IsValid, len(cached.Errors), time.Since(start))
				return cached, true // Cache hit
			}
			opts.Logger.Warn("discarding undecodable cached report", "key", key)
		}
		observability.Cache().OnCacheMiss(ctx, "report")
	}

	report := validate.Check(nodes, edges)

	// Cache the result
	if data, err := json.Marshal(report); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLReport); err == nil {
			observability.Cache().OnCacheSet(ctx, "report", len(data))
		}
	}

	hooks.OnValidateComplete(ctx, report.IsValid, len(report.Errors), time.Since(start))
	return report, false // Cache miss
}

// Check is a convenience wrapper that calls CheckWithCacheInfo and discards the cache hit info.
func (r *Runner) Check(ctx context.Context, nodes []graph.Node, edges []graph.Edge, opts Options) validate.Report {
	report, _ := r.CheckWithCacheInfo(ctx, nodes, edges, opts)
	return report
}

// LayoutWithCacheInfo computes positions with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, nodes []graph.Node, edges []graph.Edge, opts Options) ([]graph.Node, bool) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(nodes))
	start := time.Now()

	key := r.Keyer.LayoutKey(FlowHash(nodes, edges), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached []graph.Node
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				hooks.OnLayoutComplete(ctx, true, time.Since(start), nil)
				return cached, true // Cache hit
			}
			// If deserialization fails, fall through to recompute
			opts.Logger.Warn("discarding undecodable cached layout", "key", key)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	positioned := layout.Apply(nodes, edges, opts.LayoutOptions())

	// Cache the result
	if data, err := json.Marshal(positioned); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	hooks.OnLayoutComplete(ctx, false, time.Since(start), nil)
	return positioned, false // Cache miss
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, nodes []graph.Node, edges []graph.Edge, opts Options) []graph.Node {
	positioned, _ := r.LayoutWithCacheInfo(ctx, nodes, edges, opts)
	return positioned
}

// Export serializes the flow in each requested format.
// Exports are plain serializations, so they are never cached.
func (r *Runner) Export(ctx context.Context, nodes []graph.Node, edges []graph.Edge, opts Options) (map[string][]byte, error) {
	opts.SetExportDefaults()
	r.applyLogger(&opts)
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnExportStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := document.Marshal(document.New(nodes, edges, time.Now()))
			if err != nil {
				hooks.OnExportComplete(ctx, opts.Formats, time.Since(start), err)
				return nil, fmt.Errorf("export json: %w", err)
			}
			artifacts[FormatJSON] = data
		case FormatDOT:
			artifacts[FormatDOT] = []byte(document.ToDOT(nodes, edges))
		}
	}

	hooks.OnExportComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
