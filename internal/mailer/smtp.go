// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	address string
	from    string
	auth    smtp.Auth
	send    sendMailFunc
}

// NewSMTPMailer delivers through cfg.SMTPAddress. PLAIN auth is used when
// SMTPUser is set.
func NewSMTPMailer(cfg config.Mail) Mailer {
	return newSMTPMailer(cfg, smtp.SendMail)
}

func newSMTPMailer(cfg config.Mail, send sendMailFunc) *smtpMailer {
	m := &smtpMailer{
		address: cfg.SMTPAddress,
		from:    cfg.From,
		send:    send,
	}

	if cfg.SMTPUser != "" {
		host, _, err := net.SplitHostPort(cfg.SMTPAddress)
		if err != nil {
			host = cfg.SMTPAddress
		}
		m.auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, host)
	}

	return m
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := msg.From
	if from == "" {
		from = m.from
	}

	if err := m.send(m.address, m.auth, from, []string{msg.To}, formatRFC822(from, msg)); err != nil {
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}
	return nil
}

func formatRFC822(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}
