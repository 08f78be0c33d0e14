package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"digital-store-backend/internal/database"
	"digital-store-backend/internal/models"
	"digital-store-backend/internal/storage"
)

type OrderStore interface {
	GetOrder(id uuid.UUID) (*models.Order, error)
	GetProduct(id uuid.UUID) (*models.Product, error)
}

// DownloadHandler streams the private product file for a paid order.
type DownloadHandler struct {
	store OrderStore
	files *storage.FileStore
}

func NewDownloadHandler(store OrderStore, files *storage.FileStore) *DownloadHandler {
	return &DownloadHandler{store: store, files: files}
}

// Download godoc
// @Summary     Download a purchased file
// @Tags        orders
// @Produce     application/octet-stream
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {file} binary
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{order_id}/download [get]
func (h *DownloadHandler) Download(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid order id"})
		return
	}

	order, err := h.store.GetOrder(orderID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load order", Message: err.Error()})
		return
	}

	if order.Status != models.OrderStatusPaid {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "order not paid"})
		return
	}

	product, err := h.store.GetProduct(order.ProductID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load product", Message: err.Error()})
		return
	}

	file, info, err := h.files.OpenFile(product.FilePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to open file", Message: err.Error()})
		return
	}
	defer file.Close()

	downloadName := product.Name + filepath.Ext(product.FilePath)
	c.DataFromReader(http.StatusOK, info.Size(), "application/octet-stream", file, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", downloadName),
	})
}
