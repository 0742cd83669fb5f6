// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationMessage(t *testing.T) {
	msg := VerificationMessage("no-reply@x", "alice@example.com", "https://notes.example.com/", "a.b+c")

	assert.Equal(t, "no-reply@x", msg.From)
	assert.Equal(t, "alice@example.com", msg.To)
	assert.NotEmpty(t, msg.Subject)
	assert.Contains(t, msg.Body, "https://notes.example.com/api/user/verify?token=a.b%2Bc")
}

func TestNew(t *testing.T) {
	log := logger.Nop()

	tests := []struct {
		name    string
		cfg     config.Mail
		want    any
		wantErr error
	}{
		{name: "default is log", cfg: config.Mail{}, want: &logMailer{}},
		{name: "log", cfg: config.Mail{Driver: config.MailLog}, want: &logMailer{}},
		{name: "smtp", cfg: config.Mail{Driver: config.MailSMTP, SMTPAddress: "localhost:25"}, want: &smtpMailer{}},
		{name: "http", cfg: config.Mail{Driver: config.MailHTTP, RelayURL: "http://relay"}, want: &httpMailer{}},
		{name: "unknown", cfg: config.Mail{Driver: "pigeon"}, wantErr: ErrUnsupportedDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.cfg, log)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, m)
		})
	}
}

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(logger.New(&buf, "test"))

	require.NoError(t, m.Send(context.Background(), Message{To: "bob@example.com", Subject: "hi"}))
	assert.Contains(t, buf.String(), "bob@example.com")
}

// ── smtp ──────────────────────────────────────────────────────────────────────

func TestSMTPMailer_Send(t *testing.T) {
	var (
		gotAddr string
		gotAuth smtp.Auth
		gotFrom string
		gotTo   []string
		gotMsg  string
	)
	fake := func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo, gotMsg = addr, a, from, to, string(msg)
		return nil
	}

	cfg := config.Mail{SMTPAddress: "smtp.example.com:587", From: "no-reply@example.com", SMTPUser: "u", SMTPPassword: "p"}
	m := newSMTPMailer(cfg, fake)

	err := m.Send(context.Background(), Message{To: "alice@example.com", Subject: "Verify", Body: "link"})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, "no-reply@example.com", gotFrom)
	assert.Equal(t, []string{"alice@example.com"}, gotTo)
	assert.True(t, strings.HasPrefix(gotMsg, "From: no-reply@example.com\r\n"))
	assert.Contains(t, gotMsg, "Subject: Verify\r\n")
	assert.True(t, strings.HasSuffix(gotMsg, "\r\n\r\nlink"))
}

func TestSMTPMailer_NoAuthWithoutUser(t *testing.T) {
	m := newSMTPMailer(config.Mail{SMTPAddress: "localhost:25"}, nil)
	assert.Nil(t, m.auth)
}

func TestSMTPMailer_SendError(t *testing.T) {
	m := newSMTPMailer(config.Mail{SMTPAddress: "localhost:25"}, func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	})

	err := m.Send(context.Background(), Message{To: "x@example.com"})
	assert.ErrorIs(t, err, ErrSendingMail)
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	called := false
	m := newSMTPMailer(config.Mail{SMTPAddress: "localhost:25"}, func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, Message{To: "x@example.com"}), context.Canceled)
	assert.False(t, called)
}

// ── http relay ────────────────────────────────────────────────────────────────

func TestHTTPMailer_Send(t *testing.T) {
	var got Message
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	cfg := config.Mail{RelayURL: srv.URL, RelayToken: "relay-secret", From: "no-reply@example.com"}
	m := NewHTTPMailer(cfg, utils.NewHTTPClient(0))

	require.NoError(t, m.Send(context.Background(), Message{To: "alice@example.com", Subject: "s", Body: "b"}))
	assert.Equal(t, "Bearer relay-secret", gotAuth)
	assert.Equal(t, Message{From: "no-reply@example.com", To: "alice@example.com", Subject: "s", Body: "b"}, got)
}

func TestHTTPMailer_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	m := NewHTTPMailer(config.Mail{RelayURL: srv.URL}, nil)

	err := m.Send(context.Background(), Message{To: "alice@example.com"})
	assert.ErrorIs(t, err, ErrRelayRejected)
}
