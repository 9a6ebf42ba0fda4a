package main

import (
	"io/fs"
	"os"

	"bookshelf/db"
)

const defaultMigrationsDir = "db/migrations"

// migrationsDir is the on-disk directory used by "create" and, when
// BOOKSHELF_MIGRATIONS_DIR is set, by every other command.
func migrationsDir() string {
	if v := os.Getenv("BOOKSHELF_MIGRATIONS_DIR"); v != "" {
		return v
	}
	return defaultMigrationsDir
}

// migrationsSource returns the filesystem and directory to migrate from.
// Without an override the migrations compiled into the binary are used.
func migrationsSource() (fs.FS, string) {
	if v := os.Getenv("BOOKSHELF_MIGRATIONS_DIR"); v != "" {
		return os.DirFS(v), "."
	}
	return db.Migrations, db.MigrationsDir
}
