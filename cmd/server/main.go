// @title           Digital Store Backend API
// @version         1.0.0
// @description     Backend API for a digital-products storefront: admins upload downloadable products with preview images, customers purchase through a hosted payment-intent flow and download paid files.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"digital-store-backend/internal/cache"
	"digital-store-backend/internal/config"
	"digital-store-backend/internal/database"
	"digital-store-backend/internal/handlers"
	"digital-store-backend/internal/middleware"
	"digital-store-backend/internal/models"
	"digital-store-backend/internal/payments"
	"digital-store-backend/internal/services"
	"digital-store-backend/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database
	store, err := database.NewStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	defer migrator.Close()
	if err := migrator.Run(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed successfully")

	if err := seedAdmin(store, cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// File store for private downloads and public preview images
	fileStore, err := storage.NewFileStore(cfg.FilesDir, cfg.PublicDir, cfg.PublicPrefix)
	if err != nil {
		log.Fatalf("Failed to initialize file store: %v", err)
	}

	// Payment gateway client
	paymentClient := payments.NewClient(cfg.PaymentAPIBaseURL, cfg.PaymentAPIKey)

	// Page cache invalidated by product mutations
	pageCache := cache.NewPageCache()

	// Services and handlers
	fulfillment := services.NewFulfillmentService(store)

	authHandler := handlers.NewAuthHandler(store, cfg)
	adminHandler := handlers.NewAdminProductsHandler(store, fileStore, pageCache)
	catalogHandler := handlers.NewCatalogHandler(store, pageCache)
	purchaseHandler := handlers.NewPurchaseHandler(store, paymentClient, cfg.Currency)
	downloadHandler := handlers.NewDownloadHandler(store, fileStore)
	webhookHandler := handlers.NewWebhookHandler(cfg.PaymentWebhookSecret, fulfillment)

	// Setup router
	router := gin.Default()

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Public preview images
	router.Static(cfg.PublicPrefix, cfg.PublicDir)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.NoCache())

	api.POST("/auth/login", authHandler.Login)

	// Customer-facing routes
	api.GET("/storefront", catalogHandler.Storefront)
	api.GET("/products", catalogHandler.List)
	api.GET("/products/:product_id", catalogHandler.Get)
	api.GET("/products/:product_id/purchase", purchaseHandler.Purchase)
	api.GET("/orders/:order_id/download", downloadHandler.Download)

	// Admin console routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireAdmin())
	admin.GET("/products", adminHandler.List)
	admin.POST("/products", adminHandler.Create)
	admin.PUT("/products/:product_id", adminHandler.Update)
	admin.PATCH("/products/:product_id/availability", adminHandler.SetAvailability)
	admin.DELETE("/products/:product_id", adminHandler.Delete)

	// Webhook (no auth, uses HMAC signature)
	router.POST("/api/v1/webhooks/payments", webhookHandler.HandleWebhook)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// seedAdmin makes sure the configured admin account exists so the console is
// reachable on a fresh database.
func seedAdmin(store *database.Store, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("Warning: ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	_, err := store.GetUserByEmail(cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	log.Printf("Seeding admin user %s", cfg.AdminEmail)
	return store.CreateUser(&models.User{
		ID:           uuid.New(),
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
}
