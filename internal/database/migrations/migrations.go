// Package migrations bundles the goose SQL migrations with the binary.
package migrations

import "embed"

// FS holds every migration file
//
//go:embed *.sql
var FS embed.FS
