package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"digital-store-backend/internal/database"
	"digital-store-backend/internal/models"
	"digital-store-backend/internal/payments"
)

type PurchaseStore interface {
	GetProduct(id uuid.UUID) (*models.Product, error)
}

// PurchaseHandler starts a checkout: one payment intent per purchase page
// view, scoped to the product's price.
type PurchaseHandler struct {
	store         PurchaseStore
	paymentClient *payments.Client
	currency      string
}

func NewPurchaseHandler(store PurchaseStore, paymentClient *payments.Client, currency string) *PurchaseHandler {
	return &PurchaseHandler{
		store:         store,
		paymentClient: paymentClient,
		currency:      currency,
	}
}

// Purchase godoc
// @Summary     Start a purchase
// @Description Creates a payment intent for the product's price and returns the client secret the hosted payment UI binds to.
// @Tags        purchase
// @Produce     json
// @Param       product_id path string true "Product ID (UUID)"
// @Success     200 {object} models.CheckoutResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /products/{product_id}/purchase [get]
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid product id"})
		return
	}

	// Product lookup comes first: an unknown id must not reach the gateway.
	product, err := h.store.GetProduct(productID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load product", Message: err.Error()})
		return
	}

	intent, err := h.paymentClient.CreatePaymentIntent(payments.CreateIntentParams{
		Amount:   product.PriceInCents,
		Currency: h.currency,
		Metadata: map[string]string{"productId": product.ID.String()},
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to create payment intent", Message: err.Error()})
		return
	}

	if intent.ClientSecret == "" {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "payment gateway returned no client secret"})
		return
	}

	c.JSON(http.StatusOK, models.CheckoutResponse{
		Product:      models.NewProductResponse(product),
		ClientSecret: intent.ClientSecret,
	})
}
