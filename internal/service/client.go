// Package service provides the business logic for subscriber management,
// keeping the clients table and the RADIUS radcheck table in step.
package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/radclients/internal/metrics"
	"github.com/atinyakov/radclients/internal/models"
	"github.com/atinyakov/radclients/internal/repository"
)

// bcryptCost matches the cost the panel has always used.
const bcryptCost = 10

// bcryptMaxLen is the longest input bcrypt looks at. Longer passwords are
// truncated for hashing only; the stored value is untouched.
const bcryptMaxLen = 72

// ClientService implements the client operations on top of a repository.Manager.
type ClientService struct {
	repos   repository.Manager
	metrics *metrics.Registry
	hash    func(password []byte, cost int) ([]byte, error)
}

// NewClientService constructs a ClientService. reg may be nil.
func NewClientService(repos repository.Manager, reg *metrics.Registry) *ClientService {
	return &ClientService{
		repos:   repos,
		metrics: reg,
		hash:    bcrypt.GenerateFromPassword,
	}
}

// radWrite is one radcheck change, reported to metrics after commit.
type radWrite struct {
	attribute string
	action    string
}

func (s *ClientService) record(writes []radWrite) {
	if s.metrics == nil {
		return
	}
	for _, w := range writes {
		s.metrics.RadCheckWrites.WithLabelValues(w.attribute, w.action).Inc()
	}
}

// checkPassword hashes the password and throws the hash away.
//
// FIXME: the hash is never stored. clients.password and the radcheck
// Cleartext-Password row both keep the plaintext, which FreeRADIUS needs
// for CHAP/MS-CHAP. Storing the hash would break RADIUS logins, so the
// plaintext stays until the radcheck side moves to a hashed attribute.
func (s *ClientService) checkPassword(password string) error {
	b := []byte(password)
	_, err := s.hash(b[:min(len(b), bcryptMaxLen)], bcryptCost)
	return err
}

// List returns all clients with their zone names.
func (s *ClientService) List(ctx context.Context) ([]models.ClientView, error) {
	return s.repos.Clients().List(ctx)
}

// Get returns the client with the given id_number, or models.ErrNotFound.
func (s *ClientService) Get(ctx context.Context, idNumber string) (*models.ClientView, error) {
	return s.repos.Clients().GetByIDNumber(ctx, idNumber)
}

// Create stores a new client together with its Cleartext-Password and
// Auth-Type=Accept radcheck rows, whatever the requested status.
// All three inserts commit or none do.
func (s *ClientService) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	if err := s.checkPassword(c.Password); err != nil {
		return nil, err
	}

	var created *models.Client
	err := s.repos.InTx(ctx, func(tx repository.Manager) error {
		var err error
		created, err = tx.Clients().Create(ctx, c)
		if err != nil {
			return err
		}
		if err := tx.RadCheck().Add(ctx, c.Username, models.AttrCleartextPassword, models.OpSet, c.Password); err != nil {
			return err
		}
		return tx.RadCheck().Add(ctx, c.Username, models.AttrAuthType, models.OpSet, models.AuthTypeAccept)
	})
	if err != nil {
		return nil, err
	}

	s.record([]radWrite{
		{models.AttrCleartextPassword, "insert"},
		{models.AttrAuthType, "insert"},
	})
	return created, nil
}

// Update overwrites the client identified by idNumber. A non-empty zoneName
// is resolved to a zone id first and replaces c.IDZone; an unknown name
// yields models.ErrZoneNotFound and nothing is written. radcheck rows are
// not touched.
func (s *ClientService) Update(ctx context.Context, idNumber string, c *models.Client, zoneName string) (*models.Client, error) {
	if zoneName != "" {
		id, err := s.repos.Zones().IDByArea(ctx, zoneName)
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrZoneNotFound
		}
		if err != nil {
			return nil, err
		}
		c.IDZone = &id
	}

	if err := s.checkPassword(c.Password); err != nil {
		return nil, err
	}

	return s.repos.Clients().Update(ctx, idNumber, c)
}

// UpdateStatus changes a client's status and mirrors it into radcheck:
// Auth-Type becomes Accept for "Active" and Reject otherwise; an Active
// client has no Session-Timeout row, any other status has exactly one
// with value 300.
func (s *ClientService) UpdateStatus(ctx context.Context, idNumber, status string) (*models.Client, error) {
	var (
		updated *models.Client
		writes  []radWrite
	)
	err := s.repos.InTx(ctx, func(tx repository.Manager) error {
		var err error
		updated, err = tx.Clients().UpdateStatus(ctx, idNumber, status)
		if err != nil {
			return err
		}

		rad := tx.RadCheck()
		if _, err := rad.SetValue(ctx, updated.Username, models.AttrAuthType, models.AuthTypeFor(status)); err != nil {
			return err
		}
		writes = append(writes, radWrite{models.AttrAuthType, "update"})

		removed, err := rad.DeleteAttribute(ctx, updated.Username, models.AttrSessionTimeout)
		if err != nil {
			return err
		}
		if status == models.StatusActive {
			if removed > 0 {
				writes = append(writes, radWrite{models.AttrSessionTimeout, "delete"})
			}
			return nil
		}

		if err := rad.Add(ctx, updated.Username, models.AttrSessionTimeout, models.OpSet, models.InactiveSessionTimeout); err != nil {
			return err
		}
		writes = append(writes, radWrite{models.AttrSessionTimeout, "insert"})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(writes)
	return updated, nil
}

// Delete removes the client identified by idNumber and every radcheck row
// of its username. A missing client yields models.ErrNotFound and no rows
// are touched.
func (s *ClientService) Delete(ctx context.Context, idNumber string) error {
	err := s.repos.InTx(ctx, func(tx repository.Manager) error {
		username, err := tx.Clients().UsernameByIDNumber(ctx, idNumber)
		if err != nil {
			return err
		}
		if _, err := tx.RadCheck().DeleteByUsername(ctx, username); err != nil {
			return err
		}
		return tx.Clients().Delete(ctx, idNumber)
	})
	if err != nil {
		return err
	}

	s.record([]radWrite{{"all", "delete"}})
	return nil
}
