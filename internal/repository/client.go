package repository

import (
	"context"
	"fmt"

	"github.com/atinyakov/radclients/internal/db"
	"github.com/atinyakov/radclients/internal/models"
)

const clientColumns = `id, name, last_name, id_number, status, id_zone, username, password`

// PostgresClientRepository implements ClientRepository against the clients
// table and the clients_view view.
type PostgresClientRepository struct {
	// DB is the pool or transaction executing the queries.
	DB db.DBTX
}

// NewPostgresClientRepository creates a PostgresClientRepository on db.
func NewPostgresClientRepository(db db.DBTX) *PostgresClientRepository {
	return &PostgresClientRepository{DB: db}
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(s rowScanner) (*models.Client, error) {
	var c models.Client
	if err := s.Scan(&c.ID, &c.Name, &c.LastName, &c.IDNumber, &c.Status, &c.IDZone, &c.Username, &c.Password); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanClientView(s rowScanner) (*models.ClientView, error) {
	var v models.ClientView
	if err := s.Scan(&v.ID, &v.Name, &v.LastName, &v.IDNumber, &v.Status, &v.IDZone, &v.Username, &v.Password, &v.Area); err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns all clients with their zone name. No ordering is guaranteed.
func (r *PostgresClientRepository) List(ctx context.Context) ([]models.ClientView, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+clientColumns+`, area FROM clients_view`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]models.ClientView, 0)
	for rows.Next() {
		v, err := scanClientView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		clients = append(clients, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// GetByIDNumber returns the first clients_view row with the given id_number,
// or models.ErrNotFound.
func (r *PostgresClientRepository) GetByIDNumber(ctx context.Context, idNumber string) (*models.ClientView, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+clientColumns+`, area FROM clients_view WHERE id_number = $1 LIMIT 1`,
		idNumber,
	)
	v, err := scanClientView(row)
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

// Create inserts c and returns the stored row, including its generated id.
func (r *PostgresClientRepository) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO clients (name, last_name, id_number, status, id_zone, username, password)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+clientColumns,
		c.Name, c.LastName, c.IDNumber, c.Status, c.IDZone, c.Username, c.Password,
	)
	created, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return created, nil
}

// Update overwrites every column of the client identified by idNumber,
// including id_number itself. Returns models.ErrNotFound when no row matched.
func (r *PostgresClientRepository) Update(ctx context.Context, idNumber string, c *models.Client) (*models.Client, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE clients
		   SET name = $1, last_name = $2, id_number = $3, status = $4, id_zone = $5, username = $6, password = $7
		 WHERE id_number = $8
		RETURNING `+clientColumns,
		c.Name, c.LastName, c.IDNumber, c.Status, c.IDZone, c.Username, c.Password, idNumber,
	)
	updated, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("update client: %w", notFound(err))
	}
	return updated, nil
}

// UpdateStatus sets the status of the client identified by idNumber.
// Returns models.ErrNotFound when no row matched.
func (r *PostgresClientRepository) UpdateStatus(ctx context.Context, idNumber, status string) (*models.Client, error) {
	row := r.DB.QueryRowContext(ctx,
		`UPDATE clients SET status = $1 WHERE id_number = $2 RETURNING `+clientColumns,
		status, idNumber,
	)
	updated, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("update client status: %w", notFound(err))
	}
	return updated, nil
}

// UsernameByIDNumber returns the username of the client identified by idNumber,
// or models.ErrNotFound.
func (r *PostgresClientRepository) UsernameByIDNumber(ctx context.Context, idNumber string) (string, error) {
	var username string
	err := r.DB.QueryRowContext(ctx,
		`SELECT username FROM clients WHERE id_number = $1`,
		idNumber,
	).Scan(&username)
	if err != nil {
		return "", fmt.Errorf("lookup username: %w", notFound(err))
	}
	return username, nil
}

// Delete removes the client identified by idNumber. Deleting a missing
// client is not an error.
func (r *PostgresClientRepository) Delete(ctx context.Context, idNumber string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM clients WHERE id_number = $1`, idNumber); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
