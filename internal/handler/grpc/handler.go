// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc exposes the standard grpc.health.v1 service of the notes
// server. Serving status is driven by the database health worker.
package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
)

// ServiceName is the health-checked service name reported next to the
// overall ("") status.
const ServiceName = "notes.NotesKeeper"

// Handler is the root gRPC transport handler.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler creates a handler whose health status starts as NOT_SERVING
// until the first database probe succeeds.
func NewHandler(logger *logger.Logger) *Handler {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		health: hs,
		logger: logger,
	}
}

// Health returns the health server whose status the health worker updates.
func (h *Handler) Health() *health.Server {
	return h.health
}

// Register attaches the health and reflection services to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
	reflection.Register(server)
}
