package api

import (
	"net/http"

	"github.com/futig/readme-backend/internal/api/docs"
	"github.com/futig/readme-backend/internal/api/middleware"
	readmeapi "github.com/futig/readme-backend/internal/api/readme"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(readmeHandler *readmeapi.Handler, allowedOrigins []string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)         // Recover from panics
	r.Use(chimiddleware.RequestID)         // Add request ID
	r.Use(middleware.Logger(logger))       // Log requests
	r.Use(middleware.CORS(allowedOrigins)) // Handle CORS
	r.Use(middleware.Metrics)              // Prometheus metrics

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	readmeapi.RegisterRoutes(r, readmeHandler)

	return r
}
