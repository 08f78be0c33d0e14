package services

import (
	"fmt"

	"github.com/google/uuid"

	"digital-store-backend/internal/models"
	"digital-store-backend/internal/payments"
)

// Store is the slice of the database the fulfillment flow needs.
type Store interface {
	GetProduct(id uuid.UUID) (*models.Product, error)
	UpsertUserByEmail(email string) (*models.User, error)
	CreateOrder(order *models.Order) (bool, error)
}

// FulfillmentService turns a succeeded payment intent into a paid order,
// which is what unlocks the product download. Orders are keyed by the
// gateway's intent id so redelivered events settle as no-ops.
type FulfillmentService struct {
	store Store
}

func NewFulfillmentService(store Store) *FulfillmentService {
	return &FulfillmentService{store: store}
}

func (s *FulfillmentService) HandlePaymentSucceeded(intent *payments.PaymentIntent) (*models.Order, error) {
	productIDStr := intent.Metadata["productId"]
	productID, err := uuid.Parse(productIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid productId in intent metadata: %q", productIDStr)
	}

	product, err := s.store.GetProduct(productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product for intent %s: %w", intent.ID, err)
	}

	if intent.ReceiptEmail == "" {
		return nil, fmt.Errorf("intent %s has no receipt email", intent.ID)
	}

	user, err := s.store.UpsertUserByEmail(intent.ReceiptEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert customer: %w", err)
	}

	order := &models.Order{
		ID:               uuid.New(),
		UserID:           user.ID,
		ProductID:        product.ID,
		PricePaidInCents: intent.Amount,
		PaymentIntentID:  intent.ID,
		Status:           models.OrderStatusPaid,
	}

	inserted, err := s.store.CreateOrder(order)
	if err != nil {
		return nil, fmt.Errorf("failed to record order: %w", err)
	}
	if !inserted {
		// Redelivered event; the original order stands.
		return nil, nil
	}

	return order, nil
}
