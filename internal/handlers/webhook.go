package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"digital-store-backend/internal/models"
	"digital-store-backend/internal/payments"
	"digital-store-backend/internal/services"
)

// SignatureHeader is where the gateway puts the HMAC of the webhook payload.
const SignatureHeader = "Payment-Signature"

type WebhookHandler struct {
	secret      string
	fulfillment *services.FulfillmentService
}

func NewWebhookHandler(secret string, fulfillment *services.FulfillmentService) *WebhookHandler {
	return &WebhookHandler{secret: secret, fulfillment: fulfillment}
}

// HandleWebhook godoc
// @Summary     Payment gateway webhook endpoint
// @Description Verifies the signed payload and records a paid order for a succeeded payment intent. Redelivered events are acknowledged without a second order.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Param       Payment-Signature header string true "t=<unix>,v1=<hex hmac-sha256>"
// @Success     200 {object} map[string]string
// @Failure     400 {object} models.ErrorResponse
// @Router      /webhooks/payments [post]
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read request body",
			Message: err.Error(),
		})
		return
	}

	event, err := payments.ConstructEvent(body, c.GetHeader(SignatureHeader), h.secret)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid webhook signature",
			Message: err.Error(),
		})
		return
	}

	if event.Type != payments.EventPaymentSucceeded {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	intent, err := event.PaymentIntent()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse event",
			Message: err.Error(),
		})
		return
	}

	order, err := h.fulfillment.HandlePaymentSucceeded(intent)
	if err != nil {
		// Non-2xx makes the gateway redeliver later.
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to fulfill payment",
			Message: err.Error(),
		})
		return
	}
	if order == nil {
		c.JSON(http.StatusOK, gin.H{"status": "already processed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "order_id": order.ID.String()})
}
