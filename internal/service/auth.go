package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/atinyakov/radclients/internal/models"
	"github.com/atinyakov/radclients/internal/repository"
)

// AuthService checks panel operator credentials.
type AuthService struct {
	repos repository.Manager
}

// NewAuthService constructs an AuthService.
func NewAuthService(repos repository.Manager) *AuthService {
	return &AuthService{repos: repos}
}

// Login succeeds when a user with the given username exists and its stored
// password equals password exactly. The stored value is plaintext; no
// session or token is issued.
// Returns models.ErrUnauthorized on an unknown user or a mismatch.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	user, err := s.repos.Users().GetByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrUnauthorized
	}
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return models.ErrUnauthorized
	}
	return nil
}
