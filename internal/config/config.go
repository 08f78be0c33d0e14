package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Payment gateway
	PaymentAPIKey        string
	PaymentAPIBaseURL    string
	PaymentWebhookSecret string
	Currency             string

	// Auth
	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	// File store
	FilesDir     string
	PublicDir    string
	PublicPrefix string

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
	BaseURL     string
}

func Load() (*Config, error) {
	// .env from the working dir or the repo root when running from cmd/server
	_ = godotenv.Load(".env", "../../.env")

	cfg := &Config{
		PaymentAPIKey:        getEnv("PAYMENT_API_KEY", ""),
		PaymentAPIBaseURL:    getEnv("PAYMENT_API_BASE_URL", "https://api.stripe.com/v1/"),
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),
		Currency:             getEnv("PAYMENT_CURRENCY", "aud"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		FilesDir:     getEnv("FILES_DIR", "products"),
		PublicDir:    getEnv("PUBLIC_DIR", "public/products"),
		PublicPrefix: getEnv("PUBLIC_PREFIX", "/products"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PaymentAPIKey == "" {
		return fmt.Errorf("PAYMENT_API_KEY is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
