// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/handler"
	myGRPC "github.com/MKhiriev/go-notes-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
)

type stubWorkers struct {
	started atomic.Bool
	stopped atomic.Bool
	err     error
}

func (w *stubWorkers) Run(ctx context.Context) error {
	w.started.Store(true)
	<-ctx.Done()
	w.stopped.Store(true)
	return w.err
}

func newTestHandlers(t *testing.T, cfg config.Server) *handler.Handlers {
	t.Helper()
	h, err := handler.NewHandlers(&service.Services{}, cfg, prometheus.NewRegistry(), logger.Nop())
	require.NoError(t, err)
	return h
}

func TestNewServer_NoAddresses(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, nil, config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_GRPCAddressInUse(t *testing.T) {
	cfg := config.Server{GRPCAddress: "127.0.0.1:0"}
	first, err := NewServer(newTestHandlers(t, cfg), nil, cfg, logger.Nop())
	require.NoError(t, err)
	taken := first.(*server).gRPCServer.listener
	defer taken.Close()

	cfg.GRPCAddress = taken.Addr().String()
	_, err = NewServer(newTestHandlers(t, cfg), nil, cfg, logger.Nop())
	assert.ErrorIs(t, err, errListening)
}

func TestServer_RunServesUntilCancelled(t *testing.T) {
	cfg := config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: "127.0.0.1:0"}
	handlers := newTestHandlers(t, cfg)
	handlers.GRPC.Health().SetServingStatus(myGRPC.ServiceName, healthpb.HealthCheckResponse_SERVING)

	workers := &stubWorkers{err: errors.New("ignored on shutdown")}
	srv, err := NewServer(handlers, workers, cfg, logger.Nop())
	require.NoError(t, err)
	s := srv.(*server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.run(ctx)
		close(done)
	}()

	require.Eventually(t, workers.started.Load, time.Second, 5*time.Millisecond)

	conn, err := grpc.NewClient(s.gRPCServer.listener.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	checkCtx, checkCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer checkCancel()
	resp, err := healthpb.NewHealthClient(conn).Check(checkCtx, &healthpb.HealthCheckRequest{Service: myGRPC.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	assert.False(t, workers.stopped.Load(), "workers run while serving")
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.True(t, workers.stopped.Load())
}
