package migrations

import "embed"

// FS holds the embedded .sql migration files, applied in filename order.
//
//go:embed *.sql
var FS embed.FS
