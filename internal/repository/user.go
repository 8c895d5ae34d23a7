package repository

import (
	"context"
	"fmt"

	"github.com/atinyakov/radclients/internal/db"
	"github.com/atinyakov/radclients/internal/models"
)

// PostgresUserRepository implements UserRepository on the users table.
type PostgresUserRepository struct {
	DB db.DBTX
}

// NewPostgresUserRepository creates a PostgresUserRepository on db.
func NewPostgresUserRepository(db db.DBTX) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// GetByUsername returns the user with the given username, or models.ErrNotFound.
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, username, password FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", notFound(err))
	}
	return &u, nil
}
