package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gravadigital/community-api/internal/assistant"
	"github.com/gravadigital/community-api/internal/auth"
	"github.com/gravadigital/community-api/internal/config"
	"github.com/gravadigital/community-api/internal/domain/calendar"
	"github.com/gravadigital/community-api/internal/logger"
	"github.com/gravadigital/community-api/internal/metrics"
	"github.com/gravadigital/community-api/internal/server"
	"github.com/gravadigital/community-api/internal/services"
	"github.com/gravadigital/community-api/internal/storage"
	"github.com/gravadigital/community-api/internal/storage/objectstore"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(runMain())
}

// runMain returns the exit code so deferred cleanup runs before os.Exit.
func runMain() int {
	cfg := config.Load()

	logger.Initialize(cfg.Log.Level)
	log := logger.Service("api")

	storageType, err := storage.ValidateStorageType(cfg.Storage.Type)
	if err != nil {
		log.Error("Invalid storage configuration", "error", err)
		return 1
	}

	repos, err := storage.NewFactory(storageType).CreateContainer(cfg)
	if err != nil {
		log.Error("Failed to initialize storage", "type", cfg.Storage.Type, "error", err)
		return 1
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Error("Failed to close storage", "error", err)
		}
	}()

	deps, err := buildDeps(cfg, repos)
	if err != nil {
		log.Error("Failed to initialize dependencies", "error", err)
		return 1
	}

	srv := server.New(cfg, deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server stopped unexpectedly", "error", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Graceful shutdown failed", "error", err)
		return 1
	}

	log.Info("Server stopped")
	return 0
}

func buildDeps(cfg *config.Config, repos *storage.Repositories) (server.Deps, error) {
	log := logger.Service("api")

	location, err := services.LoadLocation(cfg.Birthdays.TimeZone)
	if err != nil {
		return server.Deps{}, err
	}

	deps := server.Deps{
		Repos:   repos,
		Metrics: metrics.New(),
		Clock:   calendar.SystemClock{Location: location},
		Locale:  services.ParseLocale(cfg.Birthdays.Locale),
	}

	verifier, err := auth.NewVerifier(cfg)
	if err != nil {
		log.Warn("Session verification disabled, RSVP writes will be rejected", "error", err)
	} else {
		deps.Verifier = verifier
	}

	avatars, err := objectstore.NewAvatarResolver(cfg)
	if err != nil {
		return server.Deps{}, err
	}
	deps.Avatars = avatars

	if client := assistant.NewClient(cfg); client.Configured() {
		deps.Assistant = client
	} else {
		log.Info("Assistant disabled, ASSISTANT_URL is not set")
	}

	return deps, nil
}
