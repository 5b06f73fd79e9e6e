package main

import (
	"context"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

type DependencyStatus struct {
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status       string                      `json:"status"`
	Version      string                      `json:"version"`
	Env          string                      `json:"env"`
	Timestamp    time.Time                   `json:"timestamp"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
}

// healthcheckHandler godoc
//
//	@Summary		Healthcheck
//	@Description	Pings the database and checks the broker connection.
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	checks := map[string]func(context.Context) error{
		"database": app.pingStorage,
		"queue":    app.pingBroker,
	}

	response := HealthResponse{
		Status:       "healthy",
		Version:      version,
		Env:          app.config.env,
		Timestamp:    time.Now().UTC(),
		Dependencies: make(map[string]DependencyStatus, len(checks)),
	}

	status := http.StatusOK
	for name, check := range checks {
		start := time.Now()
		dep := DependencyStatus{Status: "ok"}
		if err := check(ctx); err != nil {
			dep.Status = "error"
			dep.Error = err.Error()
			response.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			app.logger.Warnw("health check failed", "dependency", name, "error", err)
		}
		dep.LatencyMs = time.Since(start).Milliseconds()
		response.Dependencies[name] = dep
	}

	if err := writeJson(w, status, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) pingStorage(ctx context.Context) error {
	if app.storage == nil {
		return errStorageNotConfigured
	}
	return app.storage.Ping(ctx)
}

func (app *application) pingBroker(ctx context.Context) error {
	if app.broker == nil {
		return errBrokerNotConfigured
	}
	return app.broker.Ping(ctx)
}
