package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/erp/addresssync/internal/infrastructure/logger"
	"github.com/erp/addresssync/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookSecretHeader carries the shared secret on inbound notifications
const WebhookSecretHeader = "X-Webhook-Secret"

// WebhookSecret rejects requests whose secret header does not match.
// An empty secret disables the check.
func WebhookSecret(secret string) gin.HandlerFunc {
	expected := []byte(secret)
	return func(c *gin.Context) {
		if len(expected) == 0 {
			c.Next()
			return
		}

		got := []byte(c.GetHeader(WebhookSecretHeader))
		if subtle.ConstantTimeCompare(got, expected) != 1 {
			logger.L(c.Request.Context()).Warn("webhook rejected: bad secret",
				zap.Bool("header_present", len(got) > 0),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized,
				"Invalid webhook secret",
				RequestIDFromContext(c),
			))
			return
		}
		c.Next()
	}
}
