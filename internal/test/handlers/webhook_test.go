package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital-store-backend/internal/handlers"
	"digital-store-backend/internal/models"
	"digital-store-backend/internal/payments"
	"digital-store-backend/internal/services"
)

const webhookSecret = "whsec_test"

func newWebhookRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewWebhookHandler(webhookSecret, services.NewFulfillmentService(store))
	router := gin.New()
	router.POST("/webhooks/payments", handler.HandleWebhook)
	return router
}

func succeededEvent(t *testing.T, productID uuid.UUID, intentID string) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"id":   "evt_1",
		"type": payments.EventPaymentSucceeded,
		"data": map[string]any{
			"object": map[string]any{
				"id":            intentID,
				"amount":        500,
				"currency":      "aud",
				"receipt_email": "customer@example.com",
				"metadata":      map[string]string{"productId": productID.String()},
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func signedRequest(payload []byte) *http.Request {
	req, _ := http.NewRequest("POST", "/webhooks/payments", bytes.NewReader(payload))
	req.Header.Set(handlers.SignatureHeader, payments.SignatureHeader(payload, time.Now(), webhookSecret))
	return req
}

func TestWebhook_InvalidSignature(t *testing.T) {
	store := newFakeStore()
	router := newWebhookRouter(store)

	payload := succeededEvent(t, uuid.New(), "pi_1")
	req, _ := http.NewRequest("POST", "/webhooks/payments", bytes.NewReader(payload))
	req.Header.Set(handlers.SignatureHeader, payments.SignatureHeader(payload, time.Now(), "whsec_wrong"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.orders)
}

func TestWebhook_PaymentSucceededRecordsOrder(t *testing.T) {
	store := newFakeStore()
	product := &models.Product{ID: uuid.New(), Name: "Widget", PriceInCents: 500}
	require.NoError(t, store.CreateProduct(product))
	router := newWebhookRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(succeededEvent(t, product.ID, "pi_1")))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Len(t, store.orders, 1)
	var order *models.Order
	for _, o := range store.orders {
		order = o
	}
	assert.Equal(t, product.ID, order.ProductID)
	assert.Equal(t, int64(500), order.PricePaidInCents)
	assert.Equal(t, "pi_1", order.PaymentIntentID)
	assert.Equal(t, models.OrderStatusPaid, order.Status)

	// The customer was created from the receipt email
	user, ok := store.users["customer@example.com"]
	require.True(t, ok)
	assert.Equal(t, user.ID, order.UserID)
}

func TestWebhook_RedeliveredEventIsNoOp(t *testing.T) {
	store := newFakeStore()
	product := &models.Product{ID: uuid.New(), Name: "Widget", PriceInCents: 500}
	require.NoError(t, store.CreateProduct(product))
	router := newWebhookRouter(store)

	payload := succeededEvent(t, product.ID, "pi_1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(payload))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(payload))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already processed")

	assert.Len(t, store.orders, 1)
}

func TestWebhook_IgnoresOtherEventTypes(t *testing.T) {
	store := newFakeStore()
	router := newWebhookRouter(store)

	payload, err := json.Marshal(map[string]any{
		"id":   "evt_2",
		"type": "payment_intent.created",
		"data": map[string]any{"object": map[string]any{"id": "pi_9"}},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(payload))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
	assert.Empty(t, store.orders)
}

func TestWebhook_UnknownProductFails(t *testing.T) {
	store := newFakeStore()
	router := newWebhookRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(succeededEvent(t, uuid.New(), "pi_1")))

	// 5xx so the gateway redelivers once the product question is resolved
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, store.orders)
}
