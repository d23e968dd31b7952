package cmd

import (
	"context"
	"fmt"
	"time"

	"wordler/application"
	"wordler/bot"
	"wordler/config"
	"wordler/events"
	"wordler/infrastructure"
	"wordler/infrastructure/observability"
	"wordler/repository"
	"wordler/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()

	if err := ConfigureLogging(cfg); err != nil {
		return err
	}
	if err := cfg.RequireDiscordToken(); err != nil {
		return err
	}
	log.WithField("environment", cfg.Environment).Info("Starting wordler bot...")

	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	stores := repository.NewChatStoreRegistry()
	if _, err := HydrateStores(ctx, stores, backend.Repository, time.Now().In(cfg.Timezone)); err != nil {
		return fmt.Errorf("failed to restore stored results: %w", err)
	}

	eventBus := events.NewBus()

	if servers := cfg.NATSServerList(); len(servers) > 0 {
		natsClient := infrastructure.NewNATSClient(servers)
		if err := natsClient.Connect(ctx); err != nil {
			return err
		}
		defer natsClient.Close()

		if err := natsClient.EnsureWordleStream(); err != nil {
			return err
		}
		infrastructure.NewNATSEventPublisher(natsClient).AttachToBus(eventBus)
	} else {
		log.Info("NATS_SERVERS not set, events stay in process")
	}

	session, err := bot.NewSession(cfg.DiscordToken)
	if err != nil {
		return err
	}
	members := bot.NewMemberDirectory(session)

	handler := application.NewWordleHandler(application.WordleHandlerDeps{
		Stores:     stores,
		Repository: backend.Repository,
		Members:    members,
		Bus:        eventBus,
		Location:   cfg.Timezone,
		Backend:    backend.Name,
	})
	statsService := service.NewStatsService(stores)
	tournamentService := service.NewTournamentService(backend.Repository)

	discordBot, err := bot.New(session, bot.Config{
		Token:              cfg.DiscordToken,
		Location:           cfg.Timezone,
		ReplyRatePerSecond: cfg.ReplyRatePerSecond,
		WatchesChannel:     cfg.WatchesChannel,
	}, handler, statsService, tournamentService)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	log.WithField("backend", backend.Name).Info("Bot is running")
	<-ctx.Done()

	log.Info("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down metrics")
	}

	log.Info("Shutdown completed")
	return nil
}
