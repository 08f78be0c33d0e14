package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ValidationErrorResponse maps each failed form field to its error messages.
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

type ProductResponse struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Description            string    `json:"description"`
	PriceInCents           int64     `json:"price_in_cents"`
	ImagePath              string    `json:"image_path"`
	IsAvailableForPurchase bool      `json:"is_available_for_purchase"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

type StorefrontResponse struct {
	NewestProducts []ProductResponse `json:"newest_products"`
}

// CheckoutResponse carries what the hosted payment UI needs to render.
type CheckoutResponse struct {
	Product      ProductResponse `json:"product"`
	ClientSecret string          `json:"client_secret"`
}

type OrderResponse struct {
	ID               string    `json:"order_id"`
	ProductID        string    `json:"product_id"`
	PricePaidInCents int64     `json:"price_paid_in_cents"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func NewProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:                     p.ID.String(),
		Name:                   p.Name,
		Description:            p.Description,
		PriceInCents:           p.PriceInCents,
		ImagePath:              p.ImagePath,
		IsAvailableForPurchase: p.IsAvailableForPurchase,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func NewProductListResponse(products []Product) ProductListResponse {
	resp := ProductListResponse{Products: make([]ProductResponse, len(products))}
	for i := range products {
		resp.Products[i] = NewProductResponse(&products[i])
	}
	return resp
}
