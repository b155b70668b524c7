package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/djougoo/propass-central/internal/agent"
	"github.com/djougoo/propass-central/internal/config"
	"github.com/djougoo/propass-central/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("propass-agent")
	cfg, err := config.GetAgentConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting agent configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	queue, err := agent.NewQueue(cfg.QueuePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening offline queue")
	}
	defer queue.Close()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	client := agent.NewClient(*cfg)
	if err := client.Login(ctx); err != nil {
		// offline start is normal; the syncer re-authenticates on demand
		log.Warn().Err(err).Msg("initial login failed, will retry during sync")
	}

	syncer := agent.NewSyncer(queue, client, log)
	syncer.Start(ctx, cfg.SyncInterval)

	<-ctx.Done()
	syncer.Stop()
	log.Info().Msg("agent shutdown gracefully")
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
