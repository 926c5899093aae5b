// Package pipeline provides the core flow-processing pipeline for flowdag.
//
// This package implements the complete load → validate → layout → export
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read and decode a flow document from disk
//  2. Validate: Check the flow's structural validity
//  3. Layout: Compute canvas positions for every node
//  4. Export: Serialize the laid-out flow in the requested formats
//
// Each stage can be run independently or as part of the complete pipeline.
// Validation reports and computed layouts are cached under content-addressed
// keys, so repeated runs over an unchanged flow skip recomputation.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    InputPath: "flow.json",
//	    Formats:   []string{"json", "dot"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data := result.Artifacts["json"]
//
// Run individual stages against an in-memory flow:
//
//	report := runner.Check(ctx, nodes, edges, opts)
//	positioned := runner.Layout(ctx, nodes, edges, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowdag/flowdag/pkg/cache"
	"github.com/flowdag/flowdag/pkg/errors"
	"github.com/flowdag/flowdag/pkg/graph"
	"github.com/flowdag/flowdag/pkg/layout"
	"github.com/flowdag/flowdag/pkg/validate"
)

// Format constants for export formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the flow pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	InputPath string `json:"input_path,omitempty"`

	// Layout options
	SlotWidth   float64 `json:"slot_width,omitempty"`
	RankSpacing float64 `json:"rank_spacing,omitempty"`
	NodeWidth   float64 `json:"node_width,omitempty"`
	NodeHeight  float64 `json:"node_height,omitempty"`

	// Export options
	Formats []string `json:"formats,omitempty"`

	// FailOnInvalid stops the pipeline after validation when the flow has
	// findings, instead of laying out the flow as-is.
	FailOnInvalid bool `json:"fail_on_invalid,omitempty"`

	// Refresh bypasses cache reads, forcing recomputation.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Report is the validity report for the loaded flow.
	Report validate.Report

	// Nodes is the flow's node list with computed positions.
	Nodes []graph.Node

	// Edges is the flow's edge list, unchanged from the input.
	Edges []graph.Edge

	// FlowHash is the content hash of the loaded flow.
	FlowHash string

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	LoadTime     time.Duration
	ValidateTime time.Duration
	LayoutTime   time.Duration
	ExportTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ReportHit bool // Whether the validation report came from cache
	LayoutHit bool // Whether the layout came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an export format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.InputPath == "" {
		return errors.New(errors.ErrCodeInvalidOptions, "input path is required")
	}
	o.SetLayoutDefaults()
	o.SetExportDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.SlotWidth == 0 {
		o.SlotWidth = layout.DefaultSlotWidth
	}
	if o.RankSpacing == 0 {
		o.RankSpacing = layout.DefaultRankSpacing
	}
	if o.NodeWidth == 0 {
		o.NodeWidth = layout.DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = layout.DefaultNodeHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetExportDefaults sets default values for exporting.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutOptions converts the configured geometry to layout options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		SlotWidth:   o.SlotWidth,
		RankSpacing: o.RankSpacing,
		NodeWidth:   o.NodeWidth,
		NodeHeight:  o.NodeHeight,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		SlotWidth:   o.SlotWidth,
		RankSpacing: o.RankSpacing,
		NodeWidth:   o.NodeWidth,
		NodeHeight:  o.NodeHeight,
	}
}
