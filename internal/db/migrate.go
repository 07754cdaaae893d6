package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent
// (CREATE IF NOT EXISTS / tolerated duplicate-column errors) so the
// full list is re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id            TEXT PRIMARY KEY,
		number        TEXT NOT NULL UNIQUE,
		description   TEXT NOT NULL DEFAULT '',
		delivery_date TEXT,
		material_cost TEXT NOT NULL DEFAULT '0',
		completed     INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS assemblies (
		id             TEXT PRIMARY KEY,
		project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		number         TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		price          TEXT NOT NULL DEFAULT '0',
		delivery_date  TEXT,
		completed_date TEXT,
		completed      INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assemblies_project ON assemblies(project_id)`,

	`CREATE TABLE IF NOT EXISTS subassemblies (
		id          TEXT PRIMARY KEY,
		assembly_id TEXT NOT NULL REFERENCES assemblies(id) ON DELETE CASCADE,
		number      TEXT NOT NULL,
		completed   INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_subassemblies_assembly ON subassemblies(assembly_id)`,

	`CREATE TABLE IF NOT EXISTS items (
		id             TEXT PRIMARY KEY,
		assembly_id    TEXT REFERENCES assemblies(id) ON DELETE CASCADE,
		subassembly_id TEXT REFERENCES subassemblies(id) ON DELETE CASCADE,
		name           TEXT NOT NULL,
		number         TEXT NOT NULL DEFAULT '',
		description    TEXT NOT NULL DEFAULT '',
		supplier       TEXT NOT NULL DEFAULT '',
		price          TEXT NOT NULL DEFAULT '0',
		quantity       INTEGER NOT NULL DEFAULT 0,
		qty_required   INTEGER NOT NULL DEFAULT 0,
		received       INTEGER NOT NULL DEFAULT 0,
		arrived_date   TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		CHECK ((assembly_id IS NULL) != (subassembly_id IS NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_items_assembly ON items(assembly_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_subassembly ON items(subassembly_id)`,

	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role       TEXT NOT NULL CHECK(role IN ('manager','operator')),
		created_at TEXT NOT NULL,
		UNIQUE(project_id, user_id, role)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_project ON assignments(project_id)`,
}
