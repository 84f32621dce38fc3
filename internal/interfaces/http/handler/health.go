package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/erp/addresssync/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

type namedCheck struct {
	name  string
	check HealthCheck
}

// HealthHandler reports the status of the service's dependencies
type HealthHandler struct {
	checks    []namedCheck
	timeout   time.Duration
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler. Each check gets at most timeout.
func NewHealthHandler(timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthHandler{
		timeout:   timeout,
		startTime: time.Now(),
	}
}

// AddCheck registers a named dependency check
func (h *HealthHandler) AddCheck(name string, check HealthCheck) *HealthHandler {
	h.checks = append(h.checks, namedCheck{name: name, check: check})
	return h
}

// Health runs every check and replies 200 when all pass, 503 otherwise
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	results := make(gin.H, len(h.checks))
	healthy := true

	for _, nc := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		err := nc.check(ctx)
		cancel()

		if err != nil {
			healthy = false
			results[nc.name] = "error"
			logger.L(c.Request.Context()).Warn("Health check failed",
				zap.String("check", nc.name),
				zap.Error(err),
			)
			continue
		}
		results[nc.name] = "ok"
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
		"checks": results,
	})
}
