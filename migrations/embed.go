// Package migrations holds the goose SQL migrations for the cabinet schema.
package migrations

import "embed"

// FS contains the embedded migrations, applied by cmd/migrate and the test
// database helper.
//
//go:embed *.sql
var FS embed.FS
