package service_test

import (
	"context"

	"github.com/atinyakov/radclients/internal/models"
	"github.com/atinyakov/radclients/internal/repository"
)

// memStore is an in-memory repository.Manager. InTx snapshots the tables
// and restores them when fn fails. fail maps an operation name to the
// error it should return.
type memStore struct {
	clients  []models.Client
	zones    []models.Zone
	radcheck []models.RadCheck
	users    []models.User

	nextClientID int64
	nextRadID    int64

	fail      map[string]error
	txBegun   int
	rollbacks int
}

func newMemStore() *memStore {
	return &memStore{fail: map[string]error{}}
}

func (s *memStore) Clients() repository.ClientRepository    { return memClients{s} }
func (s *memStore) Zones() repository.ZoneRepository        { return memZones{s} }
func (s *memStore) RadCheck() repository.RadCheckRepository { return memRadCheck{s} }
func (s *memStore) Users() repository.UserRepository        { return memUsers{s} }

func (s *memStore) InTx(ctx context.Context, fn func(repository.Manager) error) error {
	s.txBegun++
	clients := append([]models.Client(nil), s.clients...)
	radcheck := append([]models.RadCheck(nil), s.radcheck...)

	if err := fn(s); err != nil {
		s.clients = clients
		s.radcheck = radcheck
		s.rollbacks++
		return err
	}
	return nil
}

// rows returns the radcheck rows of username.
func (s *memStore) rows(username string) []models.RadCheck {
	var out []models.RadCheck
	for _, r := range s.radcheck {
		if r.Username == username {
			out = append(out, r)
		}
	}
	return out
}

// attr returns the username/attribute rows.
func (s *memStore) attr(username, attribute string) []models.RadCheck {
	var out []models.RadCheck
	for _, r := range s.rows(username) {
		if r.Attribute == attribute {
			out = append(out, r)
		}
	}
	return out
}

func (s *memStore) clientByIDNumber(idNumber string) *models.Client {
	for i := range s.clients {
		if s.clients[i].IDNumber == idNumber {
			return &s.clients[i]
		}
	}
	return nil
}

type memClients struct{ s *memStore }

func (m memClients) view(c models.Client) models.ClientView {
	v := models.ClientView{Client: c}
	if c.IDZone != nil {
		for _, z := range m.s.zones {
			if z.ID == *c.IDZone {
				area := z.Area
				v.Area = &area
			}
		}
	}
	return v
}

func (m memClients) List(ctx context.Context) ([]models.ClientView, error) {
	if err := m.s.fail["clients.list"]; err != nil {
		return nil, err
	}
	out := make([]models.ClientView, 0, len(m.s.clients))
	for _, c := range m.s.clients {
		out = append(out, m.view(c))
	}
	return out, nil
}

func (m memClients) GetByIDNumber(ctx context.Context, idNumber string) (*models.ClientView, error) {
	c := m.s.clientByIDNumber(idNumber)
	if c == nil {
		return nil, models.ErrNotFound
	}
	v := m.view(*c)
	return &v, nil
}

func (m memClients) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	if err := m.s.fail["clients.create"]; err != nil {
		return nil, err
	}
	m.s.nextClientID++
	stored := *c
	stored.ID = m.s.nextClientID
	m.s.clients = append(m.s.clients, stored)
	return &stored, nil
}

func (m memClients) Update(ctx context.Context, idNumber string, c *models.Client) (*models.Client, error) {
	if err := m.s.fail["clients.update"]; err != nil {
		return nil, err
	}
	existing := m.s.clientByIDNumber(idNumber)
	if existing == nil {
		return nil, models.ErrNotFound
	}
	id := existing.ID
	*existing = *c
	existing.ID = id
	out := *existing
	return &out, nil
}

func (m memClients) UpdateStatus(ctx context.Context, idNumber, status string) (*models.Client, error) {
	if err := m.s.fail["clients.status"]; err != nil {
		return nil, err
	}
	existing := m.s.clientByIDNumber(idNumber)
	if existing == nil {
		return nil, models.ErrNotFound
	}
	existing.Status = status
	out := *existing
	return &out, nil
}

func (m memClients) UsernameByIDNumber(ctx context.Context, idNumber string) (string, error) {
	existing := m.s.clientByIDNumber(idNumber)
	if existing == nil {
		return "", models.ErrNotFound
	}
	return existing.Username, nil
}

func (m memClients) Delete(ctx context.Context, idNumber string) error {
	if err := m.s.fail["clients.delete"]; err != nil {
		return err
	}
	kept := m.s.clients[:0:0]
	for _, c := range m.s.clients {
		if c.IDNumber != idNumber {
			kept = append(kept, c)
		}
	}
	m.s.clients = kept
	return nil
}

type memZones struct{ s *memStore }

func (m memZones) List(ctx context.Context) ([]models.Zone, error) {
	if err := m.s.fail["zones.list"]; err != nil {
		return nil, err
	}
	return append([]models.Zone{}, m.s.zones...), nil
}

func (m memZones) IDByArea(ctx context.Context, area string) (int64, error) {
	if err := m.s.fail["zones.lookup"]; err != nil {
		return 0, err
	}
	for _, z := range m.s.zones {
		if z.Area == area {
			return z.ID, nil
		}
	}
	return 0, models.ErrNotFound
}

type memRadCheck struct{ s *memStore }

func (m memRadCheck) Add(ctx context.Context, username, attribute, op, value string) error {
	if err := m.s.fail["radcheck.add:"+attribute]; err != nil {
		return err
	}
	m.s.nextRadID++
	m.s.radcheck = append(m.s.radcheck, models.RadCheck{
		ID: m.s.nextRadID, Username: username, Attribute: attribute, Op: op, Value: value,
	})
	return nil
}

func (m memRadCheck) SetValue(ctx context.Context, username, attribute, value string) (int64, error) {
	if err := m.s.fail["radcheck.set"]; err != nil {
		return 0, err
	}
	var n int64
	for i := range m.s.radcheck {
		if m.s.radcheck[i].Username == username && m.s.radcheck[i].Attribute == attribute {
			m.s.radcheck[i].Value = value
			n++
		}
	}
	return n, nil
}

func (m memRadCheck) remove(keep func(models.RadCheck) bool) int64 {
	kept := m.s.radcheck[:0:0]
	var n int64
	for _, r := range m.s.radcheck {
		if keep(r) {
			kept = append(kept, r)
		} else {
			n++
		}
	}
	m.s.radcheck = kept
	return n
}

func (m memRadCheck) DeleteAttribute(ctx context.Context, username, attribute string) (int64, error) {
	if err := m.s.fail["radcheck.delattr"]; err != nil {
		return 0, err
	}
	return m.remove(func(r models.RadCheck) bool {
		return r.Username != username || r.Attribute != attribute
	}), nil
}

func (m memRadCheck) DeleteByUsername(ctx context.Context, username string) (int64, error) {
	if err := m.s.fail["radcheck.deluser"]; err != nil {
		return 0, err
	}
	return m.remove(func(r models.RadCheck) bool { return r.Username != username }), nil
}

type memUsers struct{ s *memStore }

func (m memUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := m.s.fail["users.get"]; err != nil {
		return nil, err
	}
	for _, u := range m.s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, models.ErrNotFound
}
