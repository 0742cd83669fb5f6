// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package mailer

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
)

type httpMailer struct {
	client   *utils.HTTPClient
	relayURL string
	token    string
	from     string
}

// NewHTTPMailer posts messages as JSON to an HTTP mail relay. A nil client
// gets a default one.
func NewHTTPMailer(cfg config.Mail, client *utils.HTTPClient) Mailer {
	if client == nil {
		client = utils.NewHTTPClient(0)
	}
	return &httpMailer{
		client:   client,
		relayURL: cfg.RelayURL,
		token:    cfg.RelayToken,
		from:     cfg.From,
	}
}

func (m *httpMailer) Send(ctx context.Context, msg Message) error {
	if msg.From == "" {
		msg.From = m.from
	}

	req := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg)
	if m.token != "" {
		req.SetAuthToken(m.token)
	}

	resp, err := req.Post(m.relayURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendingMail, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: status %d", ErrRelayRejected, resp.StatusCode())
	}
	return nil
}
