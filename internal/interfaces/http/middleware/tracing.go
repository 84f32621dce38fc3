// Package middleware provides HTTP middleware for the webhook server.
package middleware

import (
	"net/http"

	"github.com/erp/addresssync/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength bounds header-supplied ids copied into logs and spans
const MaxRequestIDLength = 128

// Span attribute keys set on webhook requests
const (
	AttrRequestID = attribute.Key("request_id")
	AttrEventID   = attribute.Key("webhook.event_id")
	AttrEventType = attribute.Key("webhook.event_type")
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
	// TracerProvider overrides the global provider when set.
	TracerProvider trace.TracerProvider
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "addresssync",
		Enabled:     true,
	}
}

// Tracing returns the tracing middleware chain with default configuration.
func Tracing() []gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig returns the tracing middleware chain:
// otelgin creates the server span, TracingAttributeInjector adds request
// attributes inside it and SpanErrorMarker flags 4xx/5xx responses.
// A disabled config yields an empty chain.
func TracingWithConfig(cfg TracingConfig) []gin.HandlerFunc {
	if !cfg.Enabled {
		return nil
	}

	var opts []otelgin.Option
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}

	return []gin.HandlerFunc{
		otelgin.Middleware(cfg.ServiceName, opts...),
		TracingAttributeInjector(),
		SpanErrorMarker(),
	}
}

// TracingAttributeInjector adds the request id and caller-supplied event id
// to the current span. It must run after otelgin.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if id := RequestIDFromContext(c); id != "" {
				span.SetAttributes(AttrRequestID.String(id))
			}
			if id := c.GetHeader(dto.EventIDHeader); id != "" {
				span.SetAttributes(AttrEventID.String(truncate(id, MaxRequestIDLength)))
			}
		}
		c.Next()
	}
}

// AnnotateEvent records the published event on the request span
func AnnotateEvent(c *gin.Context, eventID, eventType string) {
	span := trace.SpanFromContext(c.Request.Context())
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(AttrEventID.String(eventID), AttrEventType.String(eventType))
}

// SpanErrorMarker marks the span as failed for 4xx and 5xx responses.
// It must run after otelgin.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}

		var msg string
		switch {
		case status >= http.StatusInternalServerError:
			msg = "Internal Server Error"
		case status == http.StatusUnauthorized:
			msg = "Unauthorized"
		case status == http.StatusRequestEntityTooLarge:
			msg = "Request Too Large"
		default:
			msg = "Client Error"
		}
		span.SetStatus(codes.Error, msg)
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
}
