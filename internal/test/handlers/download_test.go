package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital-store-backend/internal/handlers"
	"digital-store-backend/internal/models"
	"digital-store-backend/internal/storage"
)

func newDownloadFixture(t *testing.T) (*fakeStore, *storage.FileStore, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	files, err := storage.NewFileStore(
		filepath.Join(t.TempDir(), "products"),
		filepath.Join(t.TempDir(), "public", "products"),
		"/products")
	require.NoError(t, err)

	store := newFakeStore()
	handler := handlers.NewDownloadHandler(store, files)
	router := gin.New()
	router.GET("/orders/:order_id/download", handler.Download)
	return store, files, router
}

func TestDownload_PaidOrderStreamsFile(t *testing.T) {
	store, files, router := newDownloadFixture(t)

	filePath, err := files.SaveFile("widget.zip", []byte("FILEDATA"))
	require.NoError(t, err)

	product := &models.Product{ID: uuid.New(), Name: "Widget", PriceInCents: 500, FilePath: filePath}
	require.NoError(t, store.CreateProduct(product))

	order := &models.Order{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		ProductID:        product.ID,
		PricePaidInCents: 500,
		PaymentIntentID:  "pi_1",
		Status:           models.OrderStatusPaid,
	}
	_, err = store.CreateOrder(order)
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/orders/"+order.ID.String()+"/download", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "FILEDATA", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Widget.zip")
}

func TestDownload_UnknownOrder(t *testing.T) {
	_, _, router := newDownloadFixture(t)

	req, _ := http.NewRequest("GET", "/orders/"+uuid.NewString()+"/download", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
