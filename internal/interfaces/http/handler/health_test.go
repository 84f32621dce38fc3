package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHealth(h *HealthHandler) (*httptest.ResponseRecorder, map[string]any) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", h.Health)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy with no checks", func(t *testing.T) {
		w, body := serveHealth(NewHealthHandler(time.Second))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("all checks pass", func(t *testing.T) {
		h := NewHealthHandler(time.Second).
			AddCheck("database", func(ctx context.Context) error { return nil }).
			AddCheck("redis", func(ctx context.Context) error { return nil })

		w, body := serveHealth(h)

		assert.Equal(t, http.StatusOK, w.Code)
		checks := body["checks"].(map[string]any)
		assert.Equal(t, "ok", checks["database"])
		assert.Equal(t, "ok", checks["redis"])
	})

	t.Run("one failing check makes the service unhealthy", func(t *testing.T) {
		h := NewHealthHandler(time.Second).
			AddCheck("database", func(ctx context.Context) error { return nil }).
			AddCheck("redis", func(ctx context.Context) error { return errors.New("connection refused") })

		w, body := serveHealth(h)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", body["status"])
		checks := body["checks"].(map[string]any)
		assert.Equal(t, "ok", checks["database"])
		assert.Equal(t, "error", checks["redis"])
		assert.NotContains(t, w.Body.String(), "connection refused")
	})

	t.Run("checks are bounded by the timeout", func(t *testing.T) {
		var deadline time.Time
		h := NewHealthHandler(50*time.Millisecond).
			AddCheck("slow", func(ctx context.Context) error {
				deadline, _ = ctx.Deadline()
				<-ctx.Done()
				return ctx.Err()
			})

		start := time.Now()
		w, _ := serveHealth(h)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.False(t, deadline.IsZero())
		assert.Less(t, time.Since(start), time.Second)
	})
}
