package repository

import (
	"context"
	"fmt"

	"github.com/atinyakov/radclients/internal/db"
	"github.com/atinyakov/radclients/internal/models"
)

// PostgresZoneRepository implements ZoneRepository.
type PostgresZoneRepository struct {
	DB db.DBTX
}

// NewPostgresZoneRepository creates a PostgresZoneRepository on db.
func NewPostgresZoneRepository(db db.DBTX) *PostgresZoneRepository {
	return &PostgresZoneRepository{DB: db}
}

// List returns every zone, unfiltered.
func (r *PostgresZoneRepository) List(ctx context.Context) ([]models.Zone, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, area FROM zone`)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	zones := make([]models.Zone, 0)
	for rows.Next() {
		var z models.Zone
		if err := rows.Scan(&z.ID, &z.Area); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	return zones, nil
}

// IDByArea resolves a zone name. Returns models.ErrNotFound for unknown names.
func (r *PostgresZoneRepository) IDByArea(ctx context.Context, area string) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM zone WHERE area = $1`, area).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("lookup zone: %w", notFound(err))
	}
	return id, nil
}
