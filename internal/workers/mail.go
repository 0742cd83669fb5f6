// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/mailer"
)

const defaultSendTimeout = 10 * time.Second

// MailWorker delivers queued messages one at a time. Delivery failures are
// logged and the message is dropped.
type MailWorker struct {
	messages    <-chan mailer.Message
	mailer      mailer.Mailer
	sendTimeout time.Duration
	logger      *logger.Logger
}

func NewMailWorker(messages <-chan mailer.Message, m mailer.Mailer, log *logger.Logger) *MailWorker {
	return &MailWorker{
		messages:    messages,
		mailer:      m,
		sendTimeout: defaultSendTimeout,
		logger:      log,
	}
}

func (w *MailWorker) Run(ctx context.Context) error {
	log := w.logger.With().Str("worker", "mail").Logger()
	log.Info().Msg("mail worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Int("pending", len(w.messages)).Msg("mail worker stopped")
			return nil
		case msg, ok := <-w.messages:
			if !ok {
				log.Info().Msg("mail queue closed")
				return nil
			}
			w.send(ctx, msg)
		}
	}
}

func (w *MailWorker) send(ctx context.Context, msg mailer.Message) {
	sendCtx, cancel := context.WithTimeout(ctx, w.sendTimeout)
	defer cancel()

	if err := w.mailer.Send(sendCtx, msg); err != nil {
		w.logger.Err(err).
			Str("func", "MailWorker.send").
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("error sending mail")
		return
	}
	w.logger.Debug().Str("to", msg.To).Msg("mail sent")
}
