package main

import (
	"testing"

	"bookshelf/db"

	"github.com/stretchr/testify/assert"
)

func TestMigrationsDir_EnvOverride(t *testing.T) {
	t.Setenv("BOOKSHELF_MIGRATIONS_DIR", "/custom/migrations")

	if got := migrationsDir(); got != "/custom/migrations" {
		t.Fatalf("expected BOOKSHELF_MIGRATIONS_DIR override, got %q", got)
	}

	_, dir := migrationsSource()
	assert.Equal(t, ".", dir)
}

func TestMigrationsDir_Default(t *testing.T) {
	t.Setenv("BOOKSHELF_MIGRATIONS_DIR", "")

	if got := migrationsDir(); got != "db/migrations" {
		t.Fatalf("expected default migrations dir, got %q", got)
	}

	fsys, dir := migrationsSource()
	assert.Equal(t, db.Migrations, fsys)
	assert.Equal(t, db.MigrationsDir, dir)
}
