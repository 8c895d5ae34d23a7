package http

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/radclients/internal/models"
)

// AuthService defines the login operation required by AuthHandler.
type AuthService interface {
	// Login returns models.ErrUnauthorized when the credentials do not match.
	Login(ctx context.Context, username, password string) error
}

// AuthHandler handles panel operator login.
type AuthHandler struct {
	AuthService AuthService
	Logger      *zap.Logger
}

// LoginRequest is the JSON payload of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /auth/login. No session or token is issued; the
// response only tells the frontend whether the credentials matched.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		serverError(w, r, h.Logger, msgLoginError, err)
		return
	}

	err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "Invalid username or password"})
	case err != nil:
		serverError(w, r, h.Logger, msgLoginError, err)
	default:
		writeJSON(w, http.StatusOK, messageResponse{Message: "Login successful"})
	}
}
