package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/radclients/internal/models"
)

// ZoneService lists the zone lookup table.
type ZoneService interface {
	List(ctx context.Context) ([]models.Zone, error)
}

// ZoneHandler serves GET /zones.
type ZoneHandler struct {
	ZoneService ZoneService
	Logger      *zap.Logger
}

// List handles GET /zones.
func (h *ZoneHandler) List(w http.ResponseWriter, r *http.Request) {
	zones, err := h.ZoneService.List(r.Context())
	if err != nil {
		serverError(w, r, h.Logger, msgServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, zones)
}
