package assets

import (
	"embed"
)

// Migrations
//
//go:embed migrations/*.sql
var Migrations embed.FS
