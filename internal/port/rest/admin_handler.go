package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/go-chi/chi/v5"
)

const imageFormField = "image"

type AdminHandler struct {
	products       service.ProductAdminService
	maxUploadBytes int64
	log            logger.Logger
}

func NewAdminHandler(products service.ProductAdminService, maxUploadBytes int64, log logger.Logger) *AdminHandler {
	return &AdminHandler{products: products, maxUploadBytes: maxUploadBytes, log: log}
}

func (h *AdminHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var input entity.ProductInput
	if err := decodeJSON(w, r, &input, false); err != nil {
		writeError(w, h.log, err)
		return
	}

	product, err := h.products.CreateProduct(r.Context(), input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusCreated, map[string]string{"id": product.ID})
}

// HandleUpdateProduct accepts only known product fields.
func (h *AdminHandler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var patch entity.ProductPatch
	if err := decodeJSON(w, r, &patch, true); err != nil {
		writeError(w, h.log, err)
		return
	}

	if _, err := h.products.UpdateProduct(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, map[string]bool{"updated": true})
}

func (h *AdminHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, map[string]bool{"deleted": true})
}

// HandleUploadImage takes a multipart form with the file under "image".
func (h *AdminHandler) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, h.log, http.StatusRequestEntityTooLarge, errorResponse{Error: fmt.Sprintf("image exceeds %d bytes", h.maxUploadBytes)})
			return
		}
		writeError(w, h.log, fmt.Errorf("%w: %v", errMalformedBody, err))
		return
	}

	file, header, err := r.FormFile(imageFormField)
	if err != nil {
		writeError(w, h.log, entity.NewValidationError(imageFormField, "is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, h.log, fmt.Errorf("%w: %v", errMalformedBody, err))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	url, err := h.products.UploadImage(r.Context(), chi.URLParam(r, "id"), header.Filename, contentType, data)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusCreated, map[string]string{"url": url})
}
