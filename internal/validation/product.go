package validation

import (
	"mime/multipart"
	"strconv"
	"strings"
)

// FieldErrors maps a form field name to its error messages.
type FieldErrors map[string][]string

func (e FieldErrors) add(field, message string) {
	e[field] = append(e[field], message)
}

// ProductForm is the parsed multipart form for product create/update.
// PriceInCents is only meaningful when the form validated.
type ProductForm struct {
	Name         string
	Description  string
	PriceInCents int64
	File         *multipart.FileHeader
	Image        *multipart.FileHeader
}

// ParseProductForm pulls the product fields out of a parsed multipart form.
// Missing files stay nil; validation decides whether that is an error.
func ParseProductForm(form *multipart.Form) *ProductForm {
	f := &ProductForm{
		Name:        formValue(form, "name"),
		Description: formValue(form, "description"),
	}
	if files := form.File["file"]; len(files) > 0 {
		f.File = files[0]
	}
	if images := form.File["image"]; len(images) > 0 {
		f.Image = images[0]
	}
	if price := formValue(form, "priceInCents"); price != "" {
		if v, err := strconv.ParseInt(price, 10, 64); err == nil {
			f.PriceInCents = v
		} else {
			f.PriceInCents = -1 // non-numeric, fails the minimum check
		}
	}
	return f
}

// ValidateCreate checks a create form: price at least one cent, file and
// image both present and non-empty, image with an image content type.
// Returns nil when the form is valid.
func (f *ProductForm) ValidateCreate() FieldErrors {
	errs := f.validateCommon()

	if f.File == nil || f.File.Size == 0 {
		errs.add("file", "Required")
	}
	if f.Image == nil || f.Image.Size == 0 {
		errs.add("image", "Required")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateUpdate is ValidateCreate with file and image optional. A supplied
// file or image must still be non-empty and well typed.
func (f *ProductForm) ValidateUpdate() FieldErrors {
	errs := f.validateCommon()

	if f.File != nil && f.File.Size == 0 {
		errs.add("file", "Required")
	}
	if f.Image != nil && f.Image.Size == 0 {
		errs.add("image", "Required")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (f *ProductForm) validateCommon() FieldErrors {
	errs := FieldErrors{}

	if f.PriceInCents < 1 {
		errs.add("priceInCents", "Number must be greater than or equal to 1")
	}

	// An empty image upload passes the type check; presence is checked
	// separately so each failure surfaces under its own message.
	if f.Image != nil && f.Image.Size > 0 {
		contentType := f.Image.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			errs.add("image", "Must be an image")
		}
	}

	return errs
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}
