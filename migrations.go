// Package moveout exposes embedded assets shared by commands.
package moveout

import "embed"

// Migrations contains the embedded SQL migration files applied by the
// migrate subcommand.
//
//go:embed migrations/*.sql
var Migrations embed.FS
