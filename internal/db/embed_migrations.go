package db

import "embed"

// MigrationFS embeds the SQL migration files from internal/db/migrations.
// The migrate runner reads them through this FS so cmd/migrate ships as a
// single binary with no files to locate at runtime.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
