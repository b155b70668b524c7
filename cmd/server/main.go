package main

import (
	"context"
	"fmt"

	"github.com/djougoo/propass-central/internal/config"
	"github.com/djougoo/propass-central/internal/handler"
	"github.com/djougoo/propass-central/internal/logger"
	"github.com/djougoo/propass-central/internal/realtime"
	"github.com/djougoo/propass-central/internal/server"
	"github.com/djougoo/propass-central/internal/service"
	"github.com/djougoo/propass-central/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("propass-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	hub := realtime.NewHub(log)
	services := service.NewServices(storages, *cfg, hub, log)

	wsRouter := realtime.NewRouter(hub, services.QuotaService, log)
	wsHandler := realtime.NewHandler(hub, wsRouter, services.AuthService, log)

	monitor := realtime.NewMonitor(hub, log)
	monitor.Start(ctx, cfg.Realtime.HeartbeatInterval)

	handlers, err := handler.NewHandlers(services, wsHandler, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log, monitor.Stop)
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
