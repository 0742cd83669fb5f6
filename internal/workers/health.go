// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
)

const (
	defaultHealthInterval = 15 * time.Second
	pingTimeout           = 3 * time.Second
)

// HealthWorker probes the database and mirrors the result into the gRPC
// health server for the overall ("") service and for service.
type HealthWorker struct {
	pinger   Pinger
	health   *health.Server
	service  string
	interval time.Duration
	logger   *logger.Logger
}

func NewHealthWorker(pinger Pinger, hs *health.Server, service string, interval time.Duration, log *logger.Logger) *HealthWorker {
	if interval <= 0 {
		interval = defaultHealthInterval
	}
	return &HealthWorker{
		pinger:   pinger,
		health:   hs,
		service:  service,
		interval: interval,
		logger:   log,
	}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			w.health.Shutdown()
			return nil
		case <-ticker.C:
			w.probe(ctx)
		}
	}
}

func (w *HealthWorker) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := w.pinger.Ping(pingCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Err(err).Str("func", "HealthWorker.probe").Msg("database is unreachable")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	w.health.SetServingStatus("", status)
	if w.service != "" {
		w.health.SetServingStatus(w.service, status)
	}
}
