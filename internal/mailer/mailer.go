// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package mailer delivers the account verification mail. Delivery is
// decoupled from request handling through [Queue]; a background worker
// drains it and calls a [Mailer].
package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
)

var (
	ErrUnsupportedDriver = errors.New("unsupported mail driver")
	ErrQueueFull         = errors.New("mail queue is full")
	ErrQueueClosed       = errors.New("mail queue is closed")
	ErrRelayRejected     = errors.New("mail relay rejected message")
	ErrSendingMail       = errors.New("error sending mail")
)

// Message is a plain-text mail.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"text"`
}

// Mailer sends a single message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns the Mailer selected by cfg.Driver.
func New(cfg config.Mail, log *logger.Logger) (Mailer, error) {
	switch cfg.Driver {
	case "", config.MailLog:
		return NewLogMailer(log), nil
	case config.MailSMTP:
		return NewSMTPMailer(cfg), nil
	case config.MailHTTP:
		return NewHTTPMailer(cfg, nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// VerificationMessage builds the mail that carries the verification link
// "<linkBase>/api/user/verify?token=<token>".
func VerificationMessage(from, to, linkBase, token string) Message {
	link := strings.TrimRight(linkBase, "/") + "/api/user/verify?token=" + url.QueryEscape(token)

	var body strings.Builder
	body.WriteString("Welcome to go-notes-keeper!\r\n\r\n")
	body.WriteString("Please confirm your account by opening the link below:\r\n")
	body.WriteString(link)
	body.WriteString("\r\n")

	return Message{
		From:    from,
		To:      to,
		Subject: "Verify your go-notes-keeper account",
		Body:    body.String(),
	}
}

type logMailer struct {
	logger *logger.Logger
}

// NewLogMailer writes messages to the log instead of delivering them.
func NewLogMailer(log *logger.Logger) Mailer {
	return &logMailer{logger: log}
}

func (m *logMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info().
		Str("func", "logMailer.Send").
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("mail not delivered: log driver")
	return nil
}
