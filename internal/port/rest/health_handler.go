package rest

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
)

const apiName = "Fashion Commerce API"

type HealthHandler struct {
	health service.HealthService
	log    logger.Logger
}

func NewHealthHandler(health service.HealthService, log logger.Logger) *HealthHandler {
	return &HealthHandler{health: health, log: log}
}

func (h *HealthHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.log, http.StatusOK, map[string]string{"name": apiName, "status": "ok"})
}

// HandleHealth reports 200 even when degraded; the body says which.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, h.health.Check(r.Context()))
}
