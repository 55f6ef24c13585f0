package routes

import (
	"net/http"
	"time"

	"agora/backend/internal/api"
	"agora/backend/internal/config"
	"agora/backend/internal/logging"
	"agora/backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options carries what the router needs beyond the handler dependencies
type Options struct {
	Config       *config.Config
	UpSince      time.Time
	Gatherer     prometheus.Gatherer
	HealthChecks []api.HealthCheck
	// RateLimiter guards the public auth routes; one is built from Config when nil
	RateLimiter *middleware.RateLimiter
}

func RegisterRoutes(deps *api.Dependencies, opts Options) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	if !opts.Config.IsProduction() {
		r.Use(middleware.Logging)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.Config.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(opts.UpSince, opts.HealthChecks...))
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	handlers := api.NewHandlers(deps)
	limiter := opts.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(opts.Config.RateLimit)
	}

	RegisterAPIRoutes(r, handlers, deps, limiter)

	logging.Info("Router initialized with metrics and logging middleware")
	return r
}
