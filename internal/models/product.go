package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID                     uuid.UUID
	Name                   string
	Description            string
	PriceInCents           int64
	FilePath               string
	ImagePath              string
	IsAvailableForPurchase bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
