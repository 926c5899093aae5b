package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/flowdag/flowdag/pkg/buildinfo"
	"github.com/flowdag/flowdag/pkg/errors"
	"github.com/flowdag/flowdag/pkg/graph"
	"github.com/flowdag/flowdag/pkg/pipeline"
	"github.com/flowdag/flowdag/pkg/validate"
)

// Handler serves the flow API endpoints.
type Handler struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewHandler creates a handler backed by runner.
func NewHandler(runner *pipeline.Runner, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		runner: runner,
		logger: logger,
	}
}

// Routes assembles the router with all middleware and endpoints.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(recoverer(h.logger))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Probes
	r.Get("/health", h.health)
	r.Get("/ready", h.ready)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/validate", h.validateFlow)
		r.Post("/connections/check", h.checkConnection)
		r.Post("/layout", h.layoutFlow)
		r.Post("/export", h.exportFlow)
	})

	return r
}

// flowRequest is the request body carrying a flow's collections.
type flowRequest struct {
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
}

// connectionRequest is the request body for a connection guard check.
type connectionRequest struct {
	Source string       `json:"source"`
	Target string       `json:"target"`
	Edges  []graph.Edge `json:"edges"`
}

// layoutRequest carries a flow plus optional layout options.
type layoutRequest struct {
	Nodes   []graph.Node     `json:"nodes"`
	Edges   []graph.Edge     `json:"edges"`
	Options pipeline.Options `json:"options"`
}

// layoutResponse is the positioned flow.
type layoutResponse struct {
	Nodes    []graph.Node `json:"nodes"`
	FlowHash string       `json:"flowHash"`
	Cached   bool         `json:"cached"`
}

// exportRequest carries a flow plus the requested format.
type exportRequest struct {
	Nodes  []graph.Node `json:"nodes"`
	Edges  []graph.Edge `json:"edges"`
	Format string       `json:"format"`
}

// validateFlow handles POST /api/v1/validate.
func (h *Handler) validateFlow(w http.ResponseWriter, r *http.Request) {
	var req flowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	report := h.runner.Check(r.Context(), req.Nodes, req.Edges, pipeline.Options{})
	h.respondJSON(w, http.StatusOK, report)
}

// checkConnection handles POST /api/v1/connections/check.
func (h *Handler) checkConnection(w http.ResponseWriter, r *http.Request) {
	var req connectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	decision := validate.CanConnect(req.Source, req.Target, req.Edges)
	h.respondJSON(w, http.StatusOK, decision)
}

// layoutFlow handles POST /api/v1/layout.
func (h *Handler) layoutFlow(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	positioned, cached := h.runner.LayoutWithCacheInfo(r.Context(), req.Nodes, req.Edges, req.Options)
	h.respondJSON(w, http.StatusOK, layoutResponse{
		Nodes:    positioned,
		FlowHash: pipeline.FlowHash(req.Nodes, req.Edges),
		Cached:   cached,
	})
}

// exportFlow handles POST /api/v1/export.
func (h *Handler) exportFlow(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(req.Format); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, errors.UserMessage(err))
		return
	}

	artifacts, err := h.runner.Export(r.Context(), req.Nodes, req.Edges, pipeline.Options{
		Formats: []string{req.Format},
	})
	if err != nil {
		h.logger.Error("export failed", "format", req.Format, "err", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to export flow")
		return
	}

	switch req.Format {
	case pipeline.FormatDOT:
		w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[req.Format])
}

// health handles liveness checks.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": buildinfo.Short(),
	})
}

// ready handles readiness checks by probing the cache backend.
func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	if _, _, err := h.runner.Cache.Get(r.Context(), "ready:probe"); err != nil {
		h.logger.Error("readiness probe failed", "err", err)
		h.respondError(w, http.StatusServiceUnavailable, "Cache unavailable")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "err", err)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
