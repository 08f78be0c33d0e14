package validation_test

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital-store-backend/internal/validation"
)

func fileHeader(filename, contentType string, size int64) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: filename,
		Header:   header,
		Size:     size,
	}
}

func baseForm(price string) *multipart.Form {
	return &multipart.Form{
		Value: map[string][]string{
			"name":         {"Widget"},
			"description":  {"A widget"},
			"priceInCents": {price},
		},
		File: map[string][]*multipart.FileHeader{
			"file":  {fileHeader("widget.zip", "application/zip", 8)},
			"image": {fileHeader("widget.png", "image/png", 7)},
		},
	}
}

func TestValidateCreate_Valid(t *testing.T) {
	form := validation.ParseProductForm(baseForm("500"))

	errs := form.ValidateCreate()
	require.Nil(t, errs)
	assert.Equal(t, "Widget", form.Name)
	assert.Equal(t, int64(500), form.PriceInCents)
}

func TestValidateCreate_PriceBelowMinimum(t *testing.T) {
	form := validation.ParseProductForm(baseForm("0"))

	errs := form.ValidateCreate()
	require.NotNil(t, errs)
	assert.NotEmpty(t, errs["priceInCents"])
}

func TestValidateCreate_NonNumericPrice(t *testing.T) {
	form := validation.ParseProductForm(baseForm("abc"))

	errs := form.ValidateCreate()
	require.NotNil(t, errs)
	assert.NotEmpty(t, errs["priceInCents"])
}

func TestValidateCreate_MissingPrice(t *testing.T) {
	raw := baseForm("500")
	delete(raw.Value, "priceInCents")
	form := validation.ParseProductForm(raw)

	errs := form.ValidateCreate()
	require.NotNil(t, errs)
	assert.NotEmpty(t, errs["priceInCents"])
}

func TestValidateCreate_MissingFile(t *testing.T) {
	raw := baseForm("500")
	delete(raw.File, "file")
	form := validation.ParseProductForm(raw)

	errs := form.ValidateCreate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{"Required"}, errs["file"])
}

func TestValidateCreate_EmptyImage(t *testing.T) {
	raw := baseForm("500")
	raw.File["image"] = []*multipart.FileHeader{fileHeader("widget.png", "image/png", 0)}
	form := validation.ParseProductForm(raw)

	errs := form.ValidateCreate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{"Required"}, errs["image"])
}

func TestValidateCreate_NonImageContentType(t *testing.T) {
	raw := baseForm("500")
	raw.File["image"] = []*multipart.FileHeader{fileHeader("widget.txt", "text/plain", 7)}
	form := validation.ParseProductForm(raw)

	errs := form.ValidateCreate()
	require.NotNil(t, errs)
	assert.Equal(t, []string{"Must be an image"}, errs["image"])
}

func TestValidateUpdate_BlobsOptional(t *testing.T) {
	raw := baseForm("500")
	delete(raw.File, "file")
	delete(raw.File, "image")
	form := validation.ParseProductForm(raw)

	assert.Nil(t, form.ValidateUpdate())
}

func TestValidateUpdate_SuppliedImageStillTypeChecked(t *testing.T) {
	raw := baseForm("500")
	delete(raw.File, "file")
	raw.File["image"] = []*multipart.FileHeader{fileHeader("widget.txt", "text/plain", 7)}
	form := validation.ParseProductForm(raw)

	errs := form.ValidateUpdate()
	require.NotNil(t, errs)
	assert.NotEmpty(t, errs["image"])
}
