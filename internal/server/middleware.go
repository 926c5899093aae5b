package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flowdag/flowdag/pkg/observability"
)

// requestLogger logs every request with its status, size, and duration, and
// feeds the HTTP observability hooks.
func requestLogger(logger *log.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
			next.ServeHTTP(ww, r)
			duration := time.Since(start)
			observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", duration,
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// recoverer converts handler panics into JSON 500 responses. Unlike the
// stock chi recoverer it keeps the API's error envelope and feeds the
// observability hooks.
func recoverer(logger *log.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					// The stdlib relies on this sentinel propagating.
					panic(rec)
				}

				observability.HTTP().OnPanic(r.Context(), r.Method, r.URL.Path, rec)
				logger.Error("panic while serving request",
					"method", r.Method,
					"path", r.URL.Path,
					"panic", rec,
					"request_id", middleware.GetReqID(r.Context()),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":true,"message":"Internal server error","code":500}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
