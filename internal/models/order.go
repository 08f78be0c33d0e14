package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	ProductID        uuid.UUID
	PricePaidInCents int64
	PaymentIntentID  string
	Status           string
	CreatedAt        time.Time
}

const (
	OrderStatusPaid = "paid"
)
