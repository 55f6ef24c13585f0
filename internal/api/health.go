package api

import (
	"context"
	"net/http"
	"time"

	"agora/backend/internal/common"
	"agora/backend/internal/models/entities"
)

// HealthCheck probes one backing service
type HealthCheck struct {
	Name    string
	Details string
	Ping    func(ctx context.Context) error
}

// Pong handles GET /api/ping
func Pong(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// HealthCheckHandler handles GET /healthCheck; any failing probe turns the status to "down" and the code to 503
func HealthCheckHandler(upSince time.Time, checks ...HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		services := make(map[string]entities.ServiceStatus, len(checks))
		overallStatus := "ok"
		for _, check := range checks {
			start := time.Now()
			err := check.Ping(ctx)

			status := entities.ServiceStatus{Status: "ok", Details: check.Details, LatencyMS: time.Since(start).Milliseconds()}
			if err != nil {
				status.Status, status.Details = "down", err.Error()
				overallStatus = "down"
			}
			services[check.Name] = status
		}

		code := http.StatusOK
		if overallStatus != "ok" {
			code = http.StatusServiceUnavailable
		}

		common.RespondJSON(w, code, entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince.UTC(),
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		})
	}
}
