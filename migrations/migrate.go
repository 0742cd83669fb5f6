// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the goose SQL migrations for every supported
// database driver and applies them on startup.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

var (
	ErrNilDB              = errors.New("db is nil")
	ErrUnsupportedDialect = errors.New("unsupported migration dialect")
)

type dialect struct {
	goose string
	dir   string
}

// dialects is keyed by the database/sql driver name used in config.
var dialects = map[string]dialect{
	"postgres": {goose: "pgx", dir: "postgres"},
	"pgx":      {goose: "pgx", dir: "postgres"},
	"sqlite3":  {goose: "sqlite3", dir: "sqlite"},
}

// goose keeps its dialect and base FS in package state.
var gooseMu sync.Mutex

// Migrate applies every pending migration for driver to db.
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", ErrNilDB)
	}

	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("migration error: %w: %q", ErrUnsupportedDialect, driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// Files lists the embedded migration files for driver.
func Files(driver string) ([]string, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, driver)
	}

	return fs.Glob(embedMigrations, d.dir+"/*.sql")
}
