package repository

import (
	"context"
	"fmt"

	"github.com/atinyakov/radclients/internal/db"
)

// PostgresRadCheckRepository implements RadCheckRepository on the
// FreeRADIUS radcheck table.
type PostgresRadCheckRepository struct {
	DB db.DBTX
}

// NewPostgresRadCheckRepository creates a PostgresRadCheckRepository on db.
func NewPostgresRadCheckRepository(db db.DBTX) *PostgresRadCheckRepository {
	return &PostgresRadCheckRepository{DB: db}
}

// Add inserts a single check attribute.
func (r *PostgresRadCheckRepository) Add(ctx context.Context, username, attribute, op, value string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO radcheck (username, attribute, op, value) VALUES ($1, $2, $3, $4)`,
		username, attribute, op, value,
	)
	if err != nil {
		return fmt.Errorf("insert radcheck %s: %w", attribute, err)
	}
	return nil
}

// SetValue updates the value of the username/attribute rows and reports how many changed.
func (r *PostgresRadCheckRepository) SetValue(ctx context.Context, username, attribute, value string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE radcheck SET value = $1 WHERE username = $2 AND attribute = $3`,
		value, username, attribute,
	)
	if err != nil {
		return 0, fmt.Errorf("update radcheck %s: %w", attribute, err)
	}
	return res.RowsAffected()
}

// DeleteAttribute removes the username/attribute rows.
func (r *PostgresRadCheckRepository) DeleteAttribute(ctx context.Context, username, attribute string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM radcheck WHERE username = $1 AND attribute = $2`,
		username, attribute,
	)
	if err != nil {
		return 0, fmt.Errorf("delete radcheck %s: %w", attribute, err)
	}
	return res.RowsAffected()
}

// DeleteByUsername removes every row of username.
func (r *PostgresRadCheckRepository) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM radcheck WHERE username = $1`, username)
	if err != nil {
		return 0, fmt.Errorf("delete radcheck rows: %w", err)
	}
	return res.RowsAffected()
}
