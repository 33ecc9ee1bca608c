package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mecodix/dontsee/internal/logger"
	"github.com/mecodix/dontsee/pkg/config"
	"github.com/mecodix/dontsee/pkg/worker"
)

// NewRouter wires the chi router with middleware and the codec routes.
//
// Routes:
//   - GET  /health           - liveness probe
//   - GET  /health/ready     - readiness probe
//   - POST /api/v1/scan      - signature check
//   - POST /api/v1/conceal   - embed a message, returns PNG
//   - POST /api/v1/reveal    - extract a message
func NewRouter(w *worker.Worker, cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Route("/health", func(r chi.Router) {
		r.Get("/", Health)
		r.Get("/ready", Readiness)
	})

	codec := NewCodecHandler(w, cfg.MaxUploadSize.Int64())
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/scan", codec.Scan)
		r.Post("/conceal", codec.Conceal)
		r.Post("/reveal", codec.Reveal)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	return r
}

// requestLogger logs every request through the internal logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
			"request_id", middleware.GetReqID(r.Context()),
			"remote", r.RemoteAddr,
		)
	})
}
