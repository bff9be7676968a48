// Package migrations embeds the SQL schema applied by cmd/migrate.
package migrations

import "embed"

// FS holds the NNNNNN_name.up.sql and .down.sql files of this directory.
//
//go:embed *.sql
var FS embed.FS
