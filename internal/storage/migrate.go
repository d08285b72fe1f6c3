package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const createSchemaMigrations = `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)`

// MigrateUp applies every embedded up migration not yet recorded in
// schema_migrations, in file name order.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(createSchemaMigrations); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	names, err := migrationNames(".up.sql")
	if err != nil {
		return err
	}
	for _, name := range names {
		version := migrationVersion(name, ".up.sql")
		applied, err := isApplied(db, version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err := execMigration(db, name, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown reverts applied migrations, newest first.
func MigrateDown(db *sql.DB) error {
	if _, err := db.Exec(createSchemaMigrations); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	names, err := migrationNames(".down.sql")
	if err != nil {
		return err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	for _, name := range names {
		version := migrationVersion(name, ".down.sql")
		applied, err := isApplied(db, version)
		if err != nil {
			return err
		}
		if !applied {
			continue
		}
		if err := execMigration(db, name, `DELETE FROM schema_migrations WHERE version = ?`, version); err != nil {
			return err
		}
	}
	return nil
}

func migrationNames(suffix string) ([]string, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	return entries, nil
}

func migrationVersion(name, suffix string) string {
	return strings.TrimSuffix(path.Base(name), suffix)
}

func isApplied(db *sql.DB, version string) (bool, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, version).Scan(&n); err != nil {
		return false, fmt.Errorf("check migration %s: %w", version, err)
	}
	return n > 0, nil
}

func execMigration(db *sql.DB, name, record, version string) error {
	sqlBytes, err := migrationFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	if _, err := tx.Exec(string(sqlBytes)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	if _, err := tx.Exec(record, version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", name, err)
	}
	return tx.Commit()
}
