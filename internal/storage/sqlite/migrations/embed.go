package migrations

import "embed"

// FS contains embedded SQLite migrations for noir storage.
//
//go:embed *.sql
var FS embed.FS
