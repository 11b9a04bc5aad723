package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mediagrab/media-grab-bot/internal/bot"
	"github.com/mediagrab/media-grab-bot/internal/config"
	"github.com/mediagrab/media-grab-bot/internal/db"
	"github.com/mediagrab/media-grab-bot/internal/downloader"
	"github.com/mediagrab/media-grab-bot/internal/extractor"
	"github.com/mediagrab/media-grab-bot/internal/i18n"
	"github.com/mediagrab/media-grab-bot/internal/observability"
	"github.com/mediagrab/media-grab-bot/internal/redirect"
	"github.com/mediagrab/media-grab-bot/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	if err := downloader.CheckBinary(); err != nil {
		logger.Fatal().Err(err).Msg("downloader preflight failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaults := db.ChatDefaults{
		Language:   cfg.DefaultLanguage,
		Captions:   cfg.DefaultCaptions,
		Silent:     cfg.DefaultSilent,
		NSFW:       cfg.DefaultNSFW,
		AlbumLimit: cfg.DefaultAlbumLimit,
		DeleteLink: cfg.DefaultDeleteLink,
	}

	database, err := db.New(ctx, cfg.PostgresDSN, defaults)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	loc, err := i18n.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load locales")
	}

	engine := extractor.NewEngine(redirect.New(cfg.RedirectRPS, cfg.RedirectTimeout), &logger)

	runner := downloader.New(downloader.Options{
		Dir:         cfg.DownloadsDir,
		MaxFileSize: cfg.MaxFileSize,
		Proxy:       cfg.Proxy,
		Timeout:     cfg.DownloadTimeout,
	}, &logger)

	access := config.NewAccess(cfg.WhitelistIDs, cfg.AdminIDs)

	b, err := bot.New(cfg, access, database, loc, engine, runner, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start telegram client")
	}

	go func() {
		if err := observability.NewServer(database, cfg.HealthPort, &logger).Start(ctx); err != nil {
			logger.Error().Err(err).Msg("health server error")
		}
	}()

	go func() {
		janitor := worker.NewJanitor(cfg.DownloadsDir, cfg.CleanupMaxAge, cfg.CleanupInterval, &logger)
		if err := janitor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("cleanup worker error")
		}
	}()

	if err := b.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("bot stopped")

			return
		}

		logger.Fatal().Err(err).Msg("bot error")
	}
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
