// Package bot runs the Telegram dispatch shell: it routes inbound
// updates, resolves detected URLs and delivers fetched media.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/mediagrab/media-grab-bot/internal/config"
	"github.com/mediagrab/media-grab-bot/internal/db"
	"github.com/mediagrab/media-grab-bot/internal/downloader"
	"github.com/mediagrab/media-grab-bot/internal/extractor"
	"github.com/mediagrab/media-grab-bot/internal/i18n"
)

const updateTimeoutSeconds = 60

type Bot struct {
	cfg      *config.Config
	access   *config.Access
	database *db.DB
	loc      *i18n.Localizer
	engine   *extractor.Engine
	runner   *downloader.Runner
	api      *tgbotapi.BotAPI
	logger   *zerolog.Logger
}

func New(
	cfg *config.Config,
	access *config.Access,
	database *db.DB,
	loc *i18n.Localizer,
	engine *extractor.Engine,
	runner *downloader.Runner,
	logger *zerolog.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}

	return &Bot{
		cfg:      cfg,
		access:   access,
		database: database,
		loc:      loc,
		engine:   engine,
		runner:   runner,
		api:      api,
		logger:   logger,
	}, nil
}

// Run long-polls for updates until the context is canceled. Each update
// is handled in its own goroutine; the update handlers share no mutable
// state beyond the chat rows, where last write wins per field.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.api.Self.UserName).Msg("bot polling started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()

			return ctx.Err()
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.InlineQuery != nil:
		b.handleInline(update.InlineQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// chatKind maps Telegram chat types onto the two kinds stored per chat.
func chatKind(chat *tgbotapi.Chat) string {
	if chat.IsGroup() || chat.IsSuperGroup() {
		return db.ChatKindGroup
	}

	return db.ChatKindPrivate
}
