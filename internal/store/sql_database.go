// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/migrations"
)

// Dialect names the SQL flavour behind a DB. Values match the
// database/sql driver names used in config.
type Dialect string

const (
	DialectPostgres Dialect = config.DriverPostgres
	DialectSQLite   Dialect = config.DriverSQLite
)

const (
	retryAttempts = 3
	retryBackoff  = 50 * time.Millisecond
)

// DB is a *sql.DB bound to a dialect. It carries the squirrel statement
// builder with the right placeholder format and the dialect's error
// classifier.
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect Dialect, classifier ErrorClassificator, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Dollar
	if dialect == DialectSQLite {
		placeholder = sq.Question
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classifier,
		logger:             log,
	}
}

// NewConnect opens the database selected by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch Dialect(cfg.Driver) {
	case DialectPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case DialectSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

func (db *DB) Dialect() Dialect {
	return db.dialect
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// withRetry runs fn again while the classifier reports a transient error.
func (db *DB) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable || attempt == retryAttempts {
			return err
		}

		db.logger.Warn().Err(err).
			Str("func", "DB.withRetry").
			Int("attempt", attempt).
			Msg("retryable database error")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}

	return err
}

func (db *DB) isUniqueViolation(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.IsUniqueViolation(err)
}

func (db *DB) isForeignKeyViolation(err error) bool {
	return db.errorClassificator != nil && db.errorClassificator.IsForeignKeyViolation(err)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
