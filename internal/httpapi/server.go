package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"offlined/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
// ServeHTTP handles every intercepted request.
type Service interface {
	http.Handler
	Ready() bool
	Snapshot() types.StatusResponse
	Release() bool
}

// NewMux mounts the admin endpoints under /_sw and hands every other path to svc.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(requestLogger)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsAllowedOrigins,
			AllowedMethods:   corsAllowedMethods,
			AllowedHeaders:   corsAllowedHeaders,
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route(adminPrefix, func(r chi.Router) {
		r.Use(inflight)
		// Security headers
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Content-Type-Options", "nosniff")
				next.ServeHTTP(w, r)
			})
		})

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})

		r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
			if svc.Ready() {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("ready"))
				return
			}
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("installing"))
		})

		r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(svc.Snapshot()); err != nil {
				writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
				return
			}
		})

		r.Post("/release", func(w http.ResponseWriter, r *http.Request) {
			if !svc.Release() {
				writeJSONError(w, http.StatusConflict, "no waiting version")
				return
			}
			zlog.Info().Msg("waiting version released")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(svc.Snapshot())
		})

		// Prometheus metrics endpoint
		r.Get("/metrics", promhttp.Handler().ServeHTTP)

		MountSwagger(r)
	})

	r.With(inflight).Handle("/*", svc)

	return r
}
