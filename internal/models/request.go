package models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AvailabilityRequest struct {
	IsAvailableForPurchase *bool `json:"is_available_for_purchase" binding:"required"`
}
