// Package migrations embeds the goose SQL migrations of the service schema.
package migrations

import "embed"

// Migrations holds the *.sql files applied at start-up.
//
//go:embed *.sql
var Migrations embed.FS
