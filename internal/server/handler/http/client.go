package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/radclients/internal/models"
)

// ClientService defines the client operations required by ClientHandler.
type ClientService interface {
	List(ctx context.Context) ([]models.ClientView, error)
	Get(ctx context.Context, idNumber string) (*models.ClientView, error)
	Create(ctx context.Context, c *models.Client) (*models.Client, error)
	// Update overwrites the client; a non-empty zoneName replaces c.IDZone.
	Update(ctx context.Context, idNumber string, c *models.Client, zoneName string) (*models.Client, error)
	UpdateStatus(ctx context.Context, idNumber, status string) (*models.Client, error)
	Delete(ctx context.Context, idNumber string) error
}

var (
	errNoPassword = errors.New("password is required")
	errNoStatus   = errors.New("status is required")
)

// ClientHandler serves the /clients endpoints.
type ClientHandler struct {
	ClientService ClientService
	Logger        *zap.Logger
}

// clientRequest is the body of POST /clients and PUT /clients/{id_number}.
type clientRequest struct {
	Name     string  `json:"name"`
	LastName string  `json:"last_name"`
	IDNumber string  `json:"id_number"`
	Status   string  `json:"status"`
	IDZone   *int64  `json:"id_zone"`
	ZoneName string  `json:"zone_name"`
	Username string  `json:"username"`
	Password *string `json:"password"`
}

// client converts the request; a client cannot be stored without a password.
func (req clientRequest) client() (*models.Client, error) {
	if req.Password == nil {
		return nil, errNoPassword
	}
	return &models.Client{
		Name:     req.Name,
		LastName: req.LastName,
		IDNumber: req.IDNumber,
		Status:   req.Status,
		IDZone:   req.IDZone,
		Username: req.Username,
		Password: *req.Password,
	}, nil
}

// List handles GET /clients.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.ClientService.List(r.Context())
	if err != nil {
		serverError(w, r, h.Logger, msgServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// Get handles GET /clients/{id_number}. A missing client is a 200 with an
// empty body.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.ClientService.Get(r.Context(), chi.URLParam(r, "id_number"))
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeEmpty(w)
	case err != nil:
		serverError(w, r, h.Logger, msgServerError, err)
	default:
		writeJSON(w, http.StatusOK, c)
	}
}

// Create handles POST /clients.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		serverError(w, r, h.Logger, msgServerError, err)
		return
	}
	c, err := req.client()
	if err != nil {
		serverError(w, r, h.Logger, msgServerError, err)
		return
	}

	created, err := h.ClientService.Create(r.Context(), c)
	if err != nil {
		serverError(w, r, h.Logger, msgServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// Update handles PUT /clients/{id_number}.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := decodeJSON(r, &req); err != nil {
		serverError(w, r, h.Logger, msgServerError, err)
		return
	}
	c, err := req.client()
	if err != nil {
		serverError(w, r, h.Logger, msgServerError, err)
		return
	}

	updated, err := h.ClientService.Update(r.Context(), chi.URLParam(r, "id_number"), c, req.ZoneName)
	switch {
	case errors.Is(err, models.ErrZoneNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "Zona no encontrada"})
	case errors.Is(err, models.ErrNotFound):
		writeEmpty(w)
	case err != nil:
		serverError(w, r, h.Logger, msgServerError, err)
	default:
		writeJSON(w, http.StatusOK, updated)
	}
}

// UpdateStatus handles PUT /clients/{id_number}/status. A missing client is
// reported as a server error.
func (h *ClientHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status *string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		serverError(w, r, h.Logger, msgServerError, err)
		return
	}
	if req.Status == nil {
		serverError(w, r, h.Logger, msgServerError, errNoStatus)
		return
	}

	updated, err := h.ClientService.UpdateStatus(r.Context(), chi.URLParam(r, "id_number"), *req.Status)
	if err != nil {
		serverError(w, r, h.Logger, msgServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /clients/{id_number}.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ClientService.Delete(r.Context(), chi.URLParam(r, "id_number")); err != nil {
		serverError(w, r, h.Logger, msgServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Cliente eliminado"})
}
