// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-notes-keeper/internal/cache"
	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/mailer"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/MKhiriev/go-notes-keeper/models"
)

func testContext() context.Context {
	return logger.Nop().WithContext(context.Background())
}

func strPtr(s string) *string { return &s }

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			TokenSignKey:        "test-sign-key",
			TokenIssuer:         "go-notes-keeper",
			TokenDuration:       time.Hour,
			VerifyTokenDuration: time.Hour,
			PasswordHashCost:    bcrypt.MinCost,
			Version:             "test",
		},
		Mail: config.Mail{
			From:           "no-reply@notes.test",
			VerifyLinkBase: "http://notes.test",
		},
	}
}

// ── mail recorder ─────────────────────────────────────────────────────────────

type mailRecorder struct {
	mu   sync.Mutex
	msgs []mailer.Message
	err  error
}

func (m *mailRecorder) Enqueue(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, msg)
	return nil
}

func (m *mailRecorder) last(t *testing.T) mailer.Message {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.msgs)
	return m.msgs[len(m.msgs)-1]
}

// tokenFromMail extracts the verification token from the link in msg.
func tokenFromMail(t *testing.T, msg mailer.Message) string {
	t.Helper()
	_, rest, ok := strings.Cut(msg.Body, "token=")
	require.True(t, ok, "no token in mail body")
	raw, _, _ := strings.Cut(rest, "\r\n")
	token, err := url.QueryUnescape(raw)
	require.NoError(t, err)
	return token
}

// ── flaky cache backend ───────────────────────────────────────────────────────

type flakyBackend struct {
	cache.Backend
	failLoad bool
	failPut  bool
}

var errFlaky = errors.New("cache unavailable")

func (f *flakyBackend) Load(ctx context.Context, userID int64) (map[int64]models.Note, error) {
	if f.failLoad {
		return nil, errFlaky
	}
	return f.Backend.Load(ctx, userID)
}

func (f *flakyBackend) Put(ctx context.Context, userID int64, note models.Note) error {
	if f.failPut {
		return errFlaky
	}
	return f.Backend.Put(ctx, userID, note)
}

// ── sqlite harness ────────────────────────────────────────────────────────────

type harness struct {
	storages   *store.Storages
	partitions *cache.Partitions
	mail       *mailRecorder
	*Services
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := store.NewConnectSQLite(context.Background(), config.DB{Driver: config.DriverSQLite, DSN: "file::memory:"}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	storages := store.NewStoragesFromDB(db, logger.Nop())
	t.Cleanup(func() { storages.Close() })

	partitions := cache.NewMemoryPartitions(nil)
	mail := &mailRecorder{}

	services, err := NewServices(storages, partitions, mail, testConfig(), models.AppBuildInfo{}, logger.Nop())
	require.NoError(t, err)

	return &harness{storages: storages, partitions: partitions, mail: mail, Services: services}
}

func (h *harness) registerVerified(t *testing.T, userName string) models.User {
	t.Helper()
	ctx := testContext()

	u, err := h.AuthService.RegisterUser(ctx, models.User{UserName: userName, Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, h.AuthService.Verify(ctx, u.UserID))
	return u
}

func (h *harness) createNote(t *testing.T, ownerID int64, title string) models.Note {
	t.Helper()
	n, err := h.NoteService.CreateNote(testContext(), ownerID, models.NoteInput{Title: title, Color: "white"})
	require.NoError(t, err)
	return n
}

func noteIDs(notes []models.Note) []int64 {
	ids := make([]int64, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.NoteID)
	}
	return ids
}
