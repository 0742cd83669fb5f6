// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
)

const (
	defaultFlushInterval = 30 * time.Second
	finalFlushTimeout    = 5 * time.Second
)

// RequestLogWorker flushes aggregated request counters on a fixed interval
// and once more on shutdown.
type RequestLogWorker struct {
	flusher  Flusher
	interval time.Duration
	logger   *logger.Logger
}

func NewRequestLogWorker(flusher Flusher, interval time.Duration, log *logger.Logger) *RequestLogWorker {
	if interval <= 0 {
		interval = defaultFlushInterval
	}
	return &RequestLogWorker{flusher: flusher, interval: interval, logger: log}
}

func (w *RequestLogWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			finalCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalFlushTimeout)
			w.flush(finalCtx)
			cancel()
			return nil
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *RequestLogWorker) flush(ctx context.Context) {
	if err := w.flusher.Flush(ctx); err != nil {
		w.logger.Err(err).Str("func", "RequestLogWorker.flush").Msg("error flushing request logs")
	}
}
