// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/go-notes-keeper/internal/cache"
	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/handler"
	myGRPC "github.com/MKhiriev/go-notes-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/mailer"
	"github.com/MKhiriev/go-notes-keeper/internal/server"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/MKhiriev/go-notes-keeper/internal/workers"
	"github.com/MKhiriev/go-notes-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-notes-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	partitions, closeCache, err := cache.NewPartitionsFromConfig(ctx, cfg.Storage.Cache, reg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating note cache")
	}
	defer closeCache()

	mail, err := mailer.New(cfg.Mail, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mailer")
	}
	mailQueue := mailer.NewQueue(cfg.Workers.MailQueueSize)
	defer mailQueue.Close()

	services, err := service.NewServices(storages, partitions, mailQueue, *cfg,
		models.AppBuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, reg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background := []workers.Worker{
		workers.NewMailWorker(mailQueue.Messages(), mail, log),
		workers.NewRequestLogWorker(services.RequestLogService, cfg.Workers.RequestLogFlushInterval, log),
	}
	if handlers.GRPC != nil {
		background = append(background, workers.NewHealthWorker(storages, handlers.GRPC.Health(),
			myGRPC.ServiceName, cfg.Workers.HealthCheckInterval, log))
	}

	srv, err := server.NewServer(handlers, workers.NewWorkers(background...), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
