// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-notes-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
)

type grpcServer struct {
	server   *grpc.Server
	listener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("%w on %s: %w", errListening, cfg.GRPCAddress, err)
	}

	server := grpc.NewServer()
	handler.Register(server)

	return &grpcServer{
		server:   server,
		listener: listener,
		logger:   logger,
	}, nil
}

func (g *grpcServer) RunServer() {
	if err := g.server.Serve(g.listener); err != nil {
		g.logger.Err(err).Str("func", "grpcServer.RunServer").Msg("gRPC server Serve")
	}
}

// Shutdown stops gracefully, falling back to a hard stop when ctx expires.
func (g *grpcServer) Shutdown(ctx context.Context) {
	g.logger.Info().Msg("gRPC server Shutdown")

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		g.server.Stop()
	}
}
