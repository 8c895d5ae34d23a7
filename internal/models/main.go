// Package models defines the core data structures for subscribers, zones,
// RADIUS check attributes and panel users.
package models

import "errors"

var (
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrZoneNotFound is returned when a zone name does not resolve to a zone id.
	ErrZoneNotFound = errors.New("zone not found")
	// ErrUnauthorized is returned on a failed login.
	ErrUnauthorized = errors.New("invalid username or password")
)

// StatusActive is the only client status that lets RADIUS accept the user.
const StatusActive = "Active"

// RADIUS attribute names written to radcheck.
const (
	AttrCleartextPassword = "Cleartext-Password"
	AttrAuthType          = "Auth-Type"
	AttrSessionTimeout    = "Session-Timeout"
)

const (
	// OpSet is the FreeRADIUS ":=" operator.
	OpSet = ":="

	AuthTypeAccept = "Accept"
	AuthTypeReject = "Reject"

	// InactiveSessionTimeout is the Session-Timeout value, in seconds,
	// applied to clients that are not Active.
	InactiveSessionTimeout = "300"
)

// AuthTypeFor maps a client status to the RADIUS Auth-Type value.
func AuthTypeFor(status string) string {
	if status == StatusActive {
		return AuthTypeAccept
	}
	return AuthTypeReject
}

// Client is a subscriber account as stored in the clients table.
type Client struct {
	// ID is the internal surrogate key.
	ID int64 `json:"id"`
	// Name is the subscriber's first name.
	Name string `json:"name"`
	// LastName is the subscriber's family name.
	LastName string `json:"last_name"`
	// IDNumber is the external identifier used in URLs.
	IDNumber string `json:"id_number"`
	// Status is "Active" or any other free-form value.
	Status string `json:"status"`
	// IDZone references zone.id; nil when unset.
	IDZone *int64 `json:"id_zone"`
	// Username is the RADIUS login of the subscriber.
	Username string `json:"username"`
	// Password is stored in plaintext; it is mirrored as Cleartext-Password.
	Password string `json:"password"`
}

// ClientView is a row of clients_view: a client joined with its zone.
type ClientView struct {
	Client
	// Area is the zone name, nil when the client has no zone.
	Area *string `json:"area"`
}

// Zone is a named service area.
type Zone struct {
	ID   int64  `json:"id"`
	Area string `json:"area"`
}

// RadCheck is one row of the FreeRADIUS radcheck table.
type RadCheck struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Attribute string `json:"attribute"`
	Op        string `json:"op"`
	Value     string `json:"value"`
}

// User is a panel operator allowed to log in.
type User struct {
	ID       int64
	Username string
	// Password is compared in plaintext at login.
	Password string
}
