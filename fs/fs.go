package appfs

import "embed"

// FS holds the SQL migrations applied at start-up.
//
//go:embed migrations/*.sql
var FS embed.FS
