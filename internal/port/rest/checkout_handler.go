package rest

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/port/rest/middleware"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
)

type CheckoutHandler struct {
	checkout service.CheckoutService
	log      logger.Logger
}

func NewCheckoutHandler(checkout service.CheckoutService, log logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, log: log}
}

// HandleCheckout places an order. A bearer token is optional; when present
// the order is attributed to its user.
func (h *CheckoutHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, h.log, err)
		return
	}
	req.UserID = middleware.UserID(r.Context())

	result, err := h.checkout.Checkout(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusCreated, result)
}
