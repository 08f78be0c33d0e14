package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"digital-store-backend/internal/cache"
	"digital-store-backend/internal/database"
	"digital-store-backend/internal/models"
)

const storefrontProductLimit = 6

type CatalogStore interface {
	GetProduct(id uuid.UUID) (*models.Product, error)
	ListProducts(onlyAvailable bool) ([]models.Product, error)
	ListNewestProducts(limit int) ([]models.Product, error)
}

// CatalogHandler serves the customer-facing pages' data. List responses are
// held in the page cache until an admin mutation invalidates them.
type CatalogHandler struct {
	store CatalogStore
	cache *cache.PageCache
}

func NewCatalogHandler(store CatalogStore, pageCache *cache.PageCache) *CatalogHandler {
	return &CatalogHandler{store: store, cache: pageCache}
}

// List godoc
// @Summary     List purchasable products
// @Tags        catalog
// @Produce     json
// @Success     200 {object} models.ProductListResponse
// @Router      /products [get]
func (h *CatalogHandler) List(c *gin.Context) {
	if cached, ok := h.cache.Get(cache.ProductsPath); ok {
		if resp, ok := cached.(models.ProductListResponse); ok {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	products, err := h.store.ListProducts(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list products", Message: err.Error()})
		return
	}

	resp := models.NewProductListResponse(products)
	h.cache.Put(cache.ProductsPath, resp)
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary     Get a purchasable product
// @Tags        catalog
// @Produce     json
// @Param       product_id path string true "Product ID (UUID)"
// @Success     200 {object} models.ProductResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /products/{product_id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid product id"})
		return
	}

	product, err := h.store.GetProduct(productID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load product", Message: err.Error()})
		return
	}
	if !product.IsAvailableForPurchase {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "product not found"})
		return
	}

	c.JSON(http.StatusOK, models.NewProductResponse(product))
}

// Storefront returns the home page data: the newest purchasable products.
func (h *CatalogHandler) Storefront(c *gin.Context) {
	if cached, ok := h.cache.Get(cache.HomePath); ok {
		if resp, ok := cached.(models.StorefrontResponse); ok {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	products, err := h.store.ListNewestProducts(storefrontProductLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load storefront", Message: err.Error()})
		return
	}

	resp := models.StorefrontResponse{NewestProducts: models.NewProductListResponse(products).Products}
	h.cache.Put(cache.HomePath, resp)
	c.JSON(http.StatusOK, resp)
}
