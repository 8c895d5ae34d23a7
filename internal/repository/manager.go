// Package repository provides PostgreSQL persistence for clients, zones,
// radcheck rows and panel users.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/atinyakov/radclients/internal/db"
	"github.com/atinyakov/radclients/internal/models"
)

// ClientRepository persists subscriber accounts.
type ClientRepository interface {
	// List returns every row of clients_view.
	List(ctx context.Context) ([]models.ClientView, error)
	// GetByIDNumber returns the first clients_view row with the given id_number.
	GetByIDNumber(ctx context.Context, idNumber string) (*models.ClientView, error)
	// Create inserts a client and returns the stored row.
	Create(ctx context.Context, c *models.Client) (*models.Client, error)
	// Update overwrites every column of the client identified by idNumber.
	Update(ctx context.Context, idNumber string, c *models.Client) (*models.Client, error)
	// UpdateStatus sets the status of the client identified by idNumber.
	UpdateStatus(ctx context.Context, idNumber, status string) (*models.Client, error)
	// UsernameByIDNumber returns the RADIUS username of a client.
	UsernameByIDNumber(ctx context.Context, idNumber string) (string, error)
	// Delete removes the client identified by idNumber.
	Delete(ctx context.Context, idNumber string) error
}

// ZoneRepository reads the zone lookup table.
type ZoneRepository interface {
	List(ctx context.Context) ([]models.Zone, error)
	// IDByArea resolves a zone name to its id.
	IDByArea(ctx context.Context, area string) (int64, error)
}

// RadCheckRepository writes the FreeRADIUS radcheck table.
type RadCheckRepository interface {
	// Add inserts one attribute row for username.
	Add(ctx context.Context, username, attribute, op, value string) error
	// SetValue updates the value of every username/attribute row.
	SetValue(ctx context.Context, username, attribute, value string) (int64, error)
	// DeleteAttribute removes every username/attribute row.
	DeleteAttribute(ctx context.Context, username, attribute string) (int64, error)
	// DeleteByUsername removes all rows of username.
	DeleteByUsername(ctx context.Context, username string) (int64, error)
}

// UserRepository reads panel operators.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Manager vends repositories bound to the pool or to a transaction.
type Manager interface {
	Clients() ClientRepository
	Zones() ZoneRepository
	RadCheck() RadCheckRepository
	Users() UserRepository
	// InTx runs fn with a Manager whose repositories share one transaction.
	// Any error returned by fn rolls every statement back.
	InTx(ctx context.Context, fn func(Manager) error) error
}

// Postgres implements Manager on a *sql.DB.
type Postgres struct {
	conn *sql.DB
	q    db.DBTX
	inTx bool
}

// NewPostgres returns a Manager whose repositories run on the pool.
func NewPostgres(conn *sql.DB) *Postgres {
	return &Postgres{conn: conn, q: conn}
}

// Clients returns the client repository.
func (p *Postgres) Clients() ClientRepository { return NewPostgresClientRepository(p.q) }

// Zones returns the zone repository.
func (p *Postgres) Zones() ZoneRepository { return NewPostgresZoneRepository(p.q) }

// RadCheck returns the radcheck repository.
func (p *Postgres) RadCheck() RadCheckRepository { return NewPostgresRadCheckRepository(p.q) }

// Users returns the panel user repository.
func (p *Postgres) Users() UserRepository { return NewPostgresUserRepository(p.q) }

// InTx starts a transaction, or joins the current one when p is already transactional.
func (p *Postgres) InTx(ctx context.Context, fn func(Manager) error) error {
	if p.inTx {
		return fn(p)
	}
	return db.WithTx(ctx, p.conn, nil, func(tx db.DBTX) error {
		return fn(&Postgres{conn: p.conn, q: tx, inTx: true})
	})
}

// notFound maps sql.ErrNoRows to models.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrNotFound
	}
	return err
}
