package rest

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalog service.CatalogService
	log     logger.Logger
}

func NewProductHandler(catalog service.CatalogService, log logger.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, log: log}
}

// HandleListProducts serves GET /products?q=&category=&size=&color=&min_price=&max_price=
func (h *ProductHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCatalogFilter(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	products, err := h.catalog.Search(r.Context(), filter)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, products)
}

func (h *ProductHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, product)
}

func parseCatalogFilter(r *http.Request) (entity.CatalogFilter, error) {
	q := r.URL.Query()
	filter := entity.CatalogFilter{
		Query:    strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
		Size:     strings.TrimSpace(q.Get("size")),
		Color:    strings.TrimSpace(q.Get("color")),
	}

	verr := &entity.ValidationError{}
	filter.MinPrice = parsePriceBound(q.Get("min_price"), "min_price", verr)
	filter.MaxPrice = parsePriceBound(q.Get("max_price"), "max_price", verr)
	return filter, verr.ErrOrNil()
}

func parsePriceBound(raw, field string, verr *entity.ValidationError) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		verr.Add(field, "must be a number")
		return nil
	}
	return &v
}
