// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// ── sqlmock helpers ───────────────────────────────────────────────────────────

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL wraps a mocked *sql.DB as a PostgreSQL-dialect DB.
func newDBFromSQL(db *sql.DB) *DB {
	return newDB(db, DialectPostgres, NewPostgresErrorClassifier(), logger.Nop())
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func testContext() context.Context {
	return logger.Nop().WithContext(context.Background())
}

// ── sqlite helpers ────────────────────────────────────────────────────────────

func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()
	ctx := context.Background()

	db, err := NewConnectSQLite(ctx, config.DB{Driver: config.DriverSQLite, DSN: "file::memory:"}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	s := NewStoragesFromDB(db, logger.Nop())
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreateUser(t *testing.T, s *Storages, name string) models.User {
	t.Helper()
	u, err := s.UserRepository.CreateUser(testContext(), models.User{UserName: name, PasswordHash: "hash"})
	require.NoError(t, err)
	return u
}

func mustCreateNote(t *testing.T, s *Storages, ownerID int64, title string) models.Note {
	t.Helper()
	n, err := s.NoteRepository.CreateNote(testContext(), models.Note{UserID: ownerID, Title: title, Color: "white"})
	require.NoError(t, err)
	return n
}
