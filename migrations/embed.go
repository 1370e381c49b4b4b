// Package migrations embeds the SQL schema migrations applied to the local journal.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
