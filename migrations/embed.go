// Package migrations embeds the SQL schema so the binary can migrate without a checkout.
package migrations

import "embed"

// FS holds every *.up.sql / *.down.sql file in this directory
//
//go:embed *.sql
var FS embed.FS
