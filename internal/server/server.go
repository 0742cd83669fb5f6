// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/handler"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
)

const shutdownTimeout = 15 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer
	workers    BackgroundWorkers

	logger *logger.Logger
}

// NewServer creates a listener per configured address. workers may be nil.
func NewServer(handlers *handler.Handlers, workers BackgroundWorkers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{workers: workers, logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		grpcSrv, err := newGRPCServer(handlers.GRPC, cfg, logger)
		if err != nil {
			return nil, err
		}
		servers.gRPCServer = grpcSrv
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

// RunServer serves until the process receives a stop signal.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.run(ctx)
}

func (s *server) Shutdown(ctx context.Context) {
	var wg sync.WaitGroup
	if s.httpServer != nil {
		wg.Go(func() { s.httpServer.Shutdown(ctx) })
	}
	if s.gRPCServer != nil {
		wg.Go(func() { s.gRPCServer.Shutdown(ctx) })
	}
	wg.Wait()
}

// run serves until ctx is done, then stops the listeners first and the
// workers second so that the last requests are still flushed and mailed.
func (s *server) run(ctx context.Context) {
	workersCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
	defer stopWorkers()

	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		if s.workers == nil {
			return
		}
		if err := s.workers.Run(workersCtx); err != nil {
			s.logger.Err(err).Str("func", "server.run").Msg("background worker failed")
		}
	}()

	if s.httpServer != nil {
		s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("Launching HTTP server")
		go s.httpServer.RunServer()
	}
	if s.gRPCServer != nil {
		s.logger.Info().Str("address", s.gRPCServer.listener.Addr().String()).Msg("Launching gRPC server")
		go s.gRPCServer.RunServer()
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	s.Shutdown(shutdownCtx)

	stopWorkers()
	select {
	case <-workersDone:
	case <-shutdownCtx.Done():
		s.logger.Warn().Msg("workers did not stop in time")
	}

	s.logger.Info().Msg("server Shutdown gracefully")
}
