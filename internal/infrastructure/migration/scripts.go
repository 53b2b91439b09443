package migration

import "embed"

// scripts holds one goose migration directory per database driver.
//
//go:embed scripts/sqlite/*.sql scripts/mysql/*.sql
var scripts embed.FS
