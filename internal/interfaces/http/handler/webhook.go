package handler

import (
	"net/http"

	"github.com/erp/addresssync/internal/domain/shared"
	"github.com/erp/addresssync/internal/infrastructure/logger"
	"github.com/erp/addresssync/internal/interfaces/http/dto"
	"github.com/erp/addresssync/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler turns inbound change notifications into bus events.
// Every notification that parses is acknowledged with 202 whatever the sync outcome.
type WebhookHandler struct {
	BaseHandler
	publisher shared.EventPublisher
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(publisher shared.EventPublisher) *WebhookHandler {
	return &WebhookHandler{publisher: publisher}
}

// CRMPost handles the CRM post-write notification
// POST /api/v1/webhooks/crm/post
func (h *WebhookHandler) CRMPost(c *gin.Context) {
	var req dto.CRMPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	h.publish(c, req.ToEvent(c.GetHeader(dto.EventIDHeader)))
}

// StoreCustomerAddress handles the store's customer address saved notification
// POST /api/v1/webhooks/store/customer-address
func (h *WebhookHandler) StoreCustomerAddress(c *gin.Context) {
	var req dto.StoreAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	event, err := req.ToEvent(c.GetHeader(dto.EventIDHeader))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Request validation failed",
			middleware.RequestIDFromContext(c),
			[]dto.ValidationDetail{{Field: "load_address", Message: "Must be one of: billing shipping"}},
		))
		return
	}

	h.publish(c, event)
}

func (h *WebhookHandler) publish(c *gin.Context, event shared.DomainEvent) {
	ctx := c.Request.Context()
	eventID := event.EventID().String()
	middleware.AnnotateEvent(c, eventID, event.EventType())

	log := logger.L(ctx).Zap().With(
		zap.String("event_id", eventID),
		zap.String("event_type", event.EventType()),
	)

	if err := h.publisher.Publish(ctx, event); err != nil {
		log.Error("failed to publish webhook event", zap.Error(err))
		h.HandleError(c, shared.ErrUnavailable)
		return
	}

	log.Debug("webhook event published")
	h.Accepted(c, dto.WebhookAcceptedResponse{
		EventID:   eventID,
		EventType: event.EventType(),
	})
}
