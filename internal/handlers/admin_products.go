package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"digital-store-backend/internal/cache"
	"digital-store-backend/internal/database"
	"digital-store-backend/internal/models"
	"digital-store-backend/internal/storage"
	"digital-store-backend/internal/validation"
)

type ProductStore interface {
	CreateProduct(product *models.Product) error
	GetProduct(id uuid.UUID) (*models.Product, error)
	ListProducts(onlyAvailable bool) ([]models.Product, error)
	UpdateProduct(product *models.Product) error
	SetProductAvailability(id uuid.UUID, available bool) error
	DeleteProduct(id uuid.UUID) (*models.Product, error)
}

// AdminProductsHandler backs the admin console: product create, edit,
// availability toggle, delete and the full listing.
type AdminProductsHandler struct {
	store ProductStore
	files *storage.FileStore
	cache *cache.PageCache
}

func NewAdminProductsHandler(store ProductStore, files *storage.FileStore, pageCache *cache.PageCache) *AdminProductsHandler {
	return &AdminProductsHandler{
		store: store,
		files: files,
		cache: pageCache,
	}
}

// Create godoc
// @Summary     Create a product
// @Description Validates the multipart form, stores the download file and the preview image, and inserts the product as not yet available for purchase.
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       name formData string true "Product name"
// @Param       description formData string true "Description"
// @Param       priceInCents formData int true "Price in the smallest currency unit, minimum 1"
// @Param       file formData file true "Purchased download file"
// @Param       image formData file true "Public preview image"
// @Success     201 {object} models.ProductResponse
// @Failure     422 {object} models.ValidationErrorResponse
// @Router      /admin/products [post]
func (h *AdminProductsHandler) Create(c *gin.Context) {
	form, ok := h.parseForm(c)
	if !ok {
		return
	}

	productForm := validation.ParseProductForm(form)
	if errs := productForm.ValidateCreate(); errs != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{Errors: errs})
		return
	}

	fileData, err := readUpload(productForm.File)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
		return
	}
	imageData, err := readUpload(productForm.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read image", Message: err.Error()})
		return
	}

	// Blob writes and the row insert are not one transaction; a failure here
	// can leave an orphaned blob behind.
	filePath, err := h.files.SaveFile(productForm.File.Filename, fileData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to store file", Message: err.Error()})
		return
	}
	imagePath, err := h.files.SaveImage(productForm.Image.Filename, imageData)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to store image", Message: err.Error()})
		return
	}

	product := &models.Product{
		ID:                     uuid.New(),
		Name:                   productForm.Name,
		Description:            productForm.Description,
		PriceInCents:           productForm.PriceInCents,
		FilePath:               filePath,
		ImagePath:              imagePath,
		IsAvailableForPurchase: false,
	}
	if err := h.store.CreateProduct(product); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to create product", Message: err.Error()})
		return
	}

	h.cache.Invalidate(cache.HomePath, cache.ProductsPath)

	c.Header("Location", "/admin/products")
	c.JSON(http.StatusCreated, models.NewProductResponse(product))
}

// Update godoc
// @Summary     Update a product
// @Description Same form as create with file and image optional. A replacement blob deletes the previous one before the new write.
// @Tags        admin
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       product_id path string true "Product ID (UUID)"
// @Success     200 {object} models.ProductResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     422 {object} models.ValidationErrorResponse
// @Router      /admin/products/{product_id} [put]
func (h *AdminProductsHandler) Update(c *gin.Context) {
	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	form, ok := h.parseForm(c)
	if !ok {
		return
	}

	productForm := validation.ParseProductForm(form)
	if errs := productForm.ValidateUpdate(); errs != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{Errors: errs})
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

	if productForm.File != nil && productForm.File.Size > 0 {
		fileData, err := readUpload(productForm.File)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
			return
		}
		if err := h.files.RemoveFile(product.FilePath); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to remove old file", Message: err.Error()})
			return
		}
		product.FilePath, err = h.files.SaveFile(productForm.File.Filename, fileData)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to store file", Message: err.Error()})
			return
		}
	}

	if productForm.Image != nil && productForm.Image.Size > 0 {
		imageData, err := readUpload(productForm.Image)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read image", Message: err.Error()})
			return
		}
		if err := h.files.RemoveImage(product.ImagePath); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to remove old image", Message: err.Error()})
			return
		}
		product.ImagePath, err = h.files.SaveImage(productForm.Image.Filename, imageData)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to store image", Message: err.Error()})
			return
		}
	}

	product.Name = productForm.Name
	product.Description = productForm.Description
	product.PriceInCents = productForm.PriceInCents

	if err := h.store.UpdateProduct(product); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update product", Message: err.Error()})
		return
	}

	h.cache.Invalidate(cache.HomePath, cache.ProductsPath)

	c.Header("Location", "/admin/products")
	c.JSON(http.StatusOK, models.NewProductResponse(product))
}

// SetAvailability godoc
// @Summary     Toggle availability for purchase
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       product_id path string true "Product ID (UUID)"
// @Param       request body models.AvailabilityRequest true "Desired availability"
// @Success     200 {object} map[string]any
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/products/{product_id}/availability [patch]
func (h *AdminProductsHandler) SetAvailability(c *gin.Context) {
	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	var req models.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	err := h.store.SetProductAvailability(productID, *req.IsAvailableForPurchase)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update availability", Message: err.Error()})
		return
	}

	h.cache.Invalidate(cache.HomePath, cache.ProductsPath)

	c.JSON(http.StatusOK, gin.H{
		"id":                        productID.String(),
		"is_available_for_purchase": *req.IsAvailableForPurchase,
	})
}

// Delete godoc
// @Summary     Delete a product
// @Description Removes the row, then both of its blobs.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Param       product_id path string true "Product ID (UUID)"
// @Success     200 {object} map[string]string
// @Failure     404 {object} models.ErrorResponse
// @Router      /admin/products/{product_id} [delete]
func (h *AdminProductsHandler) Delete(c *gin.Context) {
	productID, ok := h.parseProductID(c)
	if !ok {
		return
	}

	product, err := h.store.DeleteProduct(productID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to delete product", Message: err.Error()})
		return
	}

	if err := h.files.RemoveFile(product.FilePath); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to remove file", Message: err.Error()})
		return
	}
	if err := h.files.RemoveImage(product.ImagePath); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to remove image", Message: err.Error()})
		return
	}

	h.cache.Invalidate(cache.HomePath, cache.ProductsPath)

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// List returns every product, available or not, for the admin table.
func (h *AdminProductsHandler) List(c *gin.Context) {
	products, err := h.store.ListProducts(false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list products", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.NewProductListResponse(products))
}

func (h *AdminProductsHandler) parseProductID(c *gin.Context) (uuid.UUID, bool) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid product id"})
		return uuid.Nil, false
	}
	return productID, true
}

func (h *AdminProductsHandler) parseForm(c *gin.Context) (*multipart.Form, bool) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return nil, false
	}
	form := c.Request.MultipartForm
	if form == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: "multipart form is nil",
		})
		return nil, false
	}
	return form, true
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}
