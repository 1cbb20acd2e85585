// Package migrations embeds the SQL files that define the users and
// tasks schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
