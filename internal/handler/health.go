package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/agile/internal/middleware"
	"github.com/deppfellow/agile/internal/server"
	"github.com/labstack/echo/v4"
)

type dependencyCheck struct {
	name string
	ping func(ctx context.Context) error
}

// HealthHandler reports whether the service and the dependencies named in
// observability.health_checks.checks are reachable.
type HealthHandler struct {
	Handler
	checks  []dependencyCheck
	timeout time.Duration
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler: NewHandler(s),
		timeout: s.Config.Observability.HealthChecks.Timeout,
	}

	if s.Config.Observability.HasCheck("database") && s.DB != nil {
		h.checks = append(h.checks, dependencyCheck{name: "database", ping: s.DB.Pool.Ping})
	}
	if s.Config.Observability.HasCheck("redis") && s.Redis != nil {
		h.checks = append(h.checks, dependencyCheck{name: "redis", ping: func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}})
	}

	return h
}

// CheckHealth answers 200 when every check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{}, len(h.checks))
	healthy := true

	for _, check := range h.checks {
		timeout := h.timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)

		checkStart := time.Now()
		err := check.ping(ctx)
		cancel()

		result := map[string]interface{}{
			"status":        "healthy",
			"response_time": time.Since(checkStart).String(),
		}

		if err != nil {
			healthy = false
			result["status"] = "unhealthy"
			result["error"] = err.Error()

			logger.Error().
				Err(err).
				Str("check", check.name).
				Dur("response_time", time.Since(checkStart)).
				Msg("health check failed")

			h.recordFailure(check.name, err, time.Since(checkStart))
		}

		checks[check.name] = result
	}

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.environment(),
		"checks":      checks,
	}

	if !healthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) environment() string {
	if h.server == nil || h.server.Config == nil {
		return ""
	}
	return h.server.Config.Primary.Env
}

func (h *HealthHandler) recordFailure(check string, err error, elapsed time.Duration) {
	if h.server == nil || h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       check,
		"operation":        "health_check",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
