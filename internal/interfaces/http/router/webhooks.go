package router

import (
	"github.com/erp/addresssync/internal/interfaces/http/handler"
	"github.com/erp/addresssync/internal/interfaces/http/middleware"
)

// WebhooksPrefix is the webhook group path relative to /api/<version>
const WebhooksPrefix = "/webhooks"

// NewWebhookGroup builds the webhook routes, guarded by the shared secret
//
//	POST /webhooks/crm/post
//	POST /webhooks/store/customer-address
func NewWebhookGroup(h *handler.WebhookHandler, secret string) *DomainGroup {
	webhooks := NewDomainGroup("webhooks", WebhooksPrefix).
		Use(middleware.WebhookSecret(secret))

	webhooks.Group("crm", "/crm").POST("/post", h.CRMPost)
	webhooks.Group("store", "/store").POST("/customer-address", h.StoreCustomerAddress)

	return webhooks
}
