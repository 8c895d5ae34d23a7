// Package panel is a small HTTP client for the subscriber panel API, used
// by the operator shell in cmd/client.
package panel

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atinyakov/radclients/internal/models"
)

// ErrInvalidCredentials is returned by Login on a 401.
var ErrInvalidCredentials = errors.New("invalid username or password")

// API talks to a running panel backend.
type API struct {
	HTTP    *http.Client
	BaseURL string
}

// New returns an API for baseURL with a default timeout.
func New(baseURL string) *API {
	return &API{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// do sends body as JSON and decodes a 2xx response into out. An empty
// 2xx body leaves out untouched and reports found=false.
func (a *API) do(method, path string, body, out any) (found bool, err error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return false, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, a.BaseURL+path, rd)
	if err != nil {
		return false, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.HTTP.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return false, ErrInvalidCredentials
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("server error: %s", messageOf(data))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return false, fmt.Errorf("decode response: %w", err)
		}
	}
	return true, nil
}

// messageOf extracts {"message": ...} from an error body, or returns the
// trimmed plain-text body.
func messageOf(data []byte) string {
	var m struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &m) == nil && m.Message != "" {
		return m.Message
	}
	return strings.TrimSpace(string(data))
}

func clientPath(idNumber string) string {
	return "/clients/" + url.PathEscape(idNumber)
}

// Login checks operator credentials.
func (a *API) Login(username, password string) error {
	_, err := a.do(http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	return err
}

// Clients lists every client.
func (a *API) Clients() ([]models.ClientView, error) {
	var out []models.ClientView
	_, err := a.do(http.MethodGet, "/clients", nil, &out)
	return out, err
}

// Zones lists every zone.
func (a *API) Zones() ([]models.Zone, error) {
	var out []models.Zone
	_, err := a.do(http.MethodGet, "/zones", nil, &out)
	return out, err
}

// Client returns the client with idNumber, or nil when there is none.
func (a *API) Client(idNumber string) (*models.ClientView, error) {
	var out models.ClientView
	found, err := a.do(http.MethodGet, clientPath(idNumber), nil, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

// Create adds a client.
func (a *API) Create(c models.Client) (*models.Client, error) {
	var out models.Client
	if _, err := a.do(http.MethodPost, "/clients", c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update overwrites the client stored under idNumber. A non-empty zoneName
// is resolved by the server and replaces c.IDZone. A missing client yields
// nil.
func (a *API) Update(idNumber string, c models.Client, zoneName string) (*models.Client, error) {
	body := struct {
		models.Client
		ZoneName string `json:"zone_name,omitempty"`
	}{c, zoneName}

	var out models.Client
	found, err := a.do(http.MethodPut, clientPath(idNumber), body, &out)
	if err != nil || !found {
		return nil, err
	}
	return &out, nil
}

// SetStatus changes a client's status.
func (a *API) SetStatus(idNumber, status string) (*models.Client, error) {
	var out models.Client
	if _, err := a.do(http.MethodPut, clientPath(idNumber)+"/status", map[string]string{"status": status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a client and its RADIUS rows.
func (a *API) Delete(idNumber string) error {
	_, err := a.do(http.MethodDelete, clientPath(idNumber), nil, nil)
	return err
}
