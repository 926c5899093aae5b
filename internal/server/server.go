// Package server implements the flowdag HTTP API.
//
// The API exposes the engine operations over JSON so canvas frontends and
// other services can validate flows, guard-check connections, and compute
// layouts without linking the Go packages:
//
//	POST /api/v1/validate           validate a flow
//	POST /api/v1/connections/check  guard-check a proposed edge
//	POST /api/v1/layout             compute node positions
//	POST /api/v1/export             serialize a flow (json or dot)
//	GET  /health                    liveness probe
//	GET  /ready                     readiness probe (checks the cache)
//
// Validation findings are data, not errors: an invalid flow still gets a
// 200 response carrying its report. Error statuses are reserved for broken
// requests (400), unknown export formats (422), and backend failures.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/flowdag/flowdag/pkg/pipeline"
)

// Server wraps the API handler with a listener lifecycle.
type Server struct {
	addr    string
	handler http.Handler
	logger  *log.Logger
}

// New creates a server listening on addr, serving the API backed by runner.
func New(addr string, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	h := NewHandler(runner, logger)
	return &Server{
		addr:    addr,
		handler: h.Routes(),
		logger:  logger,
	}
}

// Handler returns the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("api server listening", "addr", s.addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
