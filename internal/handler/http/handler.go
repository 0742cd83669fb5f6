// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
)

type Handler struct {
	services *service.Services
	cfg      config.Server

	metrics  *httpMetrics
	gatherer prometheus.Gatherer

	logger *logger.Logger
}

// NewHandler registers the HTTP metrics on reg and serves them, together with
// everything else reg holds, on /metrics.
func NewHandler(services *service.Services, cfg config.Server, reg *prometheus.Registry, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		metrics:  newHTTPMetrics(reg),
		gatherer: reg,
		logger:   logger,
	}
}
