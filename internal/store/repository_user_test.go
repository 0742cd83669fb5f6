// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
)

func newTestUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return NewUserRepository(newDBFromSQL(db), logger.Nop()), mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows(userColumns)
}

func TestUserRepository_CreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now()

	user := models.User{UserName: "john@example.com", PasswordHash: "bcrypt", FirstName: "John"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.UserName, user.PasswordHash, "John", "", "", "", false).
		WillReturnRows(userRows().AddRow(1, user.UserName, user.PasswordHash, "John", "", "", "", false, now))

	created, err := repo.CreateUser(testContext(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, user.UserName, created.UserName)
	assert.False(t, created.IsVerified)
	assert.True(t, now.Equal(created.CreatedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(testContext(), models.User{UserName: "john@example.com"})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestUserRepository_CreateUser_UnexpectedError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateUser(testContext(), models.User{UserName: "john@example.com"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestUserRepository_FindUserByName(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery("SELECT .+ FROM users WHERE user_name = \\$1").
			WithArgs("a@b.c").
			WillReturnRows(userRows().AddRow(7, "a@b.c", "h", "", "", "", "", true, time.Now()))

		u, err := repo.FindUserByName(testContext(), "a@b.c")
		require.NoError(t, err)
		assert.Equal(t, int64(7), u.UserID)
		assert.True(t, u.IsVerified)
		assert.Equal(t, "h", u.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectQuery("SELECT .+ FROM users").WillReturnError(sql.ErrNoRows)

		_, err := repo.FindUserByName(testContext(), "missing@b.c")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepository_FindUserByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	mock.ExpectQuery("SELECT .+ FROM users WHERE user_id = \\$1").
		WithArgs(int64(99)).
		WillReturnRows(userRows())

	_, err := repo.FindUserByID(testContext(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_SetVerified(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec("UPDATE users SET is_verified = \\$1 WHERE user_id = \\$2").
			WithArgs(true, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SetVerified(testContext(), 3))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetVerified(testContext(), 3), ErrUserNotFound)
	})
}
