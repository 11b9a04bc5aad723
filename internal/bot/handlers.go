package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mediagrab/media-grab-bot/internal/db"
	"github.com/mediagrab/media-grab-bot/internal/extractor"
	"github.com/mediagrab/media-grab-bot/internal/i18n"
)

const statsPeriodDays = 7

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)

		return
	}

	if !b.access.Allowed(msg.From.ID) {
		return
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	urls := extractor.ExtractURLs(text)
	if len(urls) == 0 {
		return
	}

	chat, err := b.database.GetOrCreateChat(ctx, msg.Chat.ID, chatKind(msg.Chat))
	if err != nil {
		b.logger.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("failed to load chat preferences")

		return
	}

	// Each URL is resolved and processed independently; one failing does
	// not block the others.
	for _, url := range urls {
		b.processURL(ctx, msg, chat, url)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		if !b.access.Allowed(msg.From.ID) {
			return
		}

		b.cmdStart(ctx, msg)
	case "settings":
		if !b.access.Allowed(msg.From.ID) {
			return
		}

		b.cmdSettings(ctx, msg)
	case "stats":
		if !b.access.Admin(msg.From.ID) {
			return
		}

		b.cmdStats(ctx, msg)
	case "derr":
		if !b.access.Admin(msg.From.ID) {
			return
		}

		b.cmdDebugError(ctx, msg)
	}
}

func (b *Bot) cmdStart(ctx context.Context, msg *tgbotapi.Message) {
	chat, err := b.database.GetOrCreateChat(ctx, msg.Chat.ID, chatKind(msg.Chat))
	if err != nil {
		b.logger.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("start: failed to load chat")

		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, b.loc.Lookup("StartMessage", b.lang(chat)))
	reply.ParseMode = tgbotapi.ModeHTML
	reply.DisableWebPagePreview = true
	reply.ReplyMarkup = b.mainKeyboard(b.lang(chat))

	b.send(reply)
}

func (b *Bot) cmdSettings(ctx context.Context, msg *tgbotapi.Message) {
	chat, err := b.database.GetOrCreateChat(ctx, msg.Chat.ID, chatKind(msg.Chat))
	if err != nil {
		b.logger.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("settings: failed to load chat")

		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, b.settingsText(chat))
	reply.ParseMode = tgbotapi.ModeHTML
	reply.DisableWebPagePreview = true
	reply.ReplyMarkup = b.settingsKeyboard(chat)

	b.send(reply)
}

func (b *Bot) settingsText(chat *db.Chat) string {
	key := "PrivateSettingsMessage"
	if chat.Kind == db.ChatKindGroup {
		key = "GroupSettingsMessage"
	}

	return b.loc.Lookup(key, b.lang(chat))
}

func (b *Bot) cmdStats(ctx context.Context, msg *tgbotapi.Message) {
	stats, err := b.database.GetStats(ctx, statsPeriodDays)
	if err != nil {
		b.logger.Error().Err(err).Msg("stats query failed")

		return
	}

	header := strings.ReplaceAll(
		b.loc.Lookup("StatsMessage", b.cfg.DefaultLanguage),
		"{days}", strconv.Itoa(statsPeriodDays),
	)

	text := fmt.Sprintf(
		"<b>%s</b>\nPrivate chats: %d\nGroup chats: %d\nDownloads: %d\nTotal size: %d bytes",
		header,
		stats.TotalPrivateChats,
		stats.TotalGroupChats,
		stats.TotalDownloads,
		stats.TotalDownloadsSize,
	)

	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = tgbotapi.ModeHTML

	b.send(reply)
}

func (b *Bot) cmdDebugError(ctx context.Context, msg *tgbotapi.Message) {
	id := strings.TrimSpace(msg.CommandArguments())
	if id == "" {
		return
	}

	stored, err := b.database.GetError(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			b.send(tgbotapi.NewMessage(msg.Chat.ID, b.loc.Lookup("ErrorNotFoundMessage", b.cfg.DefaultLanguage)))

			return
		}

		b.logger.Error().Err(err).Str("error_id", id).Msg("error lookup failed")

		return
	}

	text := fmt.Sprintf("%s\n\nseen %d time(s), last %s", stored.Message, stored.Occurrences, stored.LastSeen.UTC().Format("2006-01-02 15:04:05"))
	b.send(tgbotapi.NewMessage(msg.Chat.ID, text))
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil || !b.access.Allowed(query.From.ID) {
		return
	}

	defer b.answerCallback(query.ID)

	chat, err := b.database.GetOrCreateChat(ctx, query.Message.Chat.ID, chatKind(query.Message.Chat))
	if err != nil {
		b.logger.Error().Err(err).Int64("chat_id", query.Message.Chat.ID).Msg("callback: failed to load chat")

		return
	}

	data := query.Data

	switch {
	case data == cbStart:
		b.editText(query, b.loc.Lookup("StartMessage", b.lang(chat)), b.mainKeyboard(b.lang(chat)))
	case data == cbClose:
		b.request(tgbotapi.NewDeleteMessage(query.Message.Chat.ID, query.Message.MessageID))
	case data == cbSettings:
		b.editText(query, b.settingsText(chat), b.settingsKeyboard(chat))
	case data == cbExtractors:
		b.showExtractors(query, chat)
	case data == cbSelectLanguage:
		b.editText(query, b.loc.Lookup("LanguageSettingsMessage", b.lang(chat)), b.languagesKeyboard(chat))
	case data == cbSelectAlbumLimit:
		b.editText(query, b.loc.Lookup("MediaAlbumSettingsMessage", b.lang(chat)), b.albumLimitKeyboard(chat))
	case data == cbSelectDisabled:
		b.editText(query, b.loc.Lookup("DisabledExtractorsSettingsMessage", b.lang(chat)), b.extractorsKeyboard(chat))
	case strings.HasPrefix(data, cbTogglePrefix):
		b.toggleSetting(ctx, query, chat, strings.TrimPrefix(data, cbTogglePrefix))
	case strings.HasPrefix(data, cbLanguagePrefix):
		b.selectLanguage(ctx, query, chat, strings.TrimPrefix(data, cbLanguagePrefix))
	case strings.HasPrefix(data, cbAlbumPrefix):
		b.selectAlbumLimit(ctx, query, chat, strings.TrimPrefix(data, cbAlbumPrefix))
	case strings.HasPrefix(data, cbExtractorPrefix):
		b.toggleExtractor(ctx, query, chat, strings.TrimPrefix(data, cbExtractorPrefix))
	}
}

func (b *Bot) showExtractors(query *tgbotapi.CallbackQuery, chat *db.Chat) {
	lines := []string{b.loc.Lookup("ExtractorsMessage", b.lang(chat))}
	for _, desc := range extractor.ListVisible() {
		lines = append(lines, "• "+desc.DisplayName)
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.Lookup("BackButton", b.lang(chat)), cbStart),
		),
	)

	b.editText(query, strings.Join(lines, "\n"), kb)
}

func (b *Bot) toggleSetting(ctx context.Context, query *tgbotapi.CallbackQuery, chat *db.Chat, action string) {
	var err error

	switch action {
	case toggleActionCaptions:
		err = b.database.ToggleChatCaptions(ctx, chat.ChatID)
	case toggleActionSilent:
		err = b.database.ToggleChatSilent(ctx, chat.ChatID)
	case toggleActionNSFW:
		err = b.database.ToggleChatNSFW(ctx, chat.ChatID)
	case toggleActionDelete:
		err = b.database.ToggleChatDeleteLinks(ctx, chat.ChatID)
	default:
		return
	}

	if err != nil {
		b.logger.Error().Err(err).Str("action", action).Int64("chat_id", chat.ChatID).Msg("toggle failed")

		return
	}

	b.refreshSettingsMarkup(ctx, query)
}

func (b *Bot) selectLanguage(ctx context.Context, query *tgbotapi.CallbackQuery, chat *db.Chat, code string) {
	if _, ok := b.loc.Languages()[code]; !ok {
		return
	}

	if err := b.database.SetChatLanguage(ctx, chat.ChatID, code); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chat.ChatID).Msg("set language failed")

		return
	}

	chat, err := b.database.GetOrCreateChat(ctx, query.Message.Chat.ID, chatKind(query.Message.Chat))
	if err != nil {
		return
	}

	b.editText(query, b.settingsText(chat), b.settingsKeyboard(chat))
}

func (b *Bot) selectAlbumLimit(ctx context.Context, query *tgbotapi.CallbackQuery, chat *db.Chat, raw string) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return
	}

	if err := b.database.SetChatMediaAlbumLimit(ctx, chat.ChatID, b.cfg.ClampAlbumLimit(n)); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chat.ChatID).Msg("set album limit failed")

		return
	}

	chat, err = b.database.GetOrCreateChat(ctx, query.Message.Chat.ID, chatKind(query.Message.Chat))
	if err != nil {
		return
	}

	b.editText(query, b.settingsText(chat), b.settingsKeyboard(chat))
}

func (b *Bot) toggleExtractor(ctx context.Context, query *tgbotapi.CallbackQuery, chat *db.Chat, id string) {
	if !extractor.IsKnown(id) {
		return
	}

	prefs := extractor.Preferences{DisabledExtractors: chat.DisabledExtractors}

	var err error
	if prefs.Disabled(id) {
		err = b.database.RemoveDisabledExtractor(ctx, chat.ChatID, id)
	} else {
		err = b.database.AddDisabledExtractor(ctx, chat.ChatID, id)
	}

	if err != nil {
		b.logger.Error().Err(err).Str("extractor", id).Int64("chat_id", chat.ChatID).Msg("toggle extractor failed")

		return
	}

	chat, err = b.database.GetOrCreateChat(ctx, query.Message.Chat.ID, chatKind(query.Message.Chat))
	if err != nil {
		return
	}

	b.request(tgbotapi.NewEditMessageReplyMarkup(query.Message.Chat.ID, query.Message.MessageID, b.extractorsKeyboard(chat)))
}

func (b *Bot) refreshSettingsMarkup(ctx context.Context, query *tgbotapi.CallbackQuery) {
	chat, err := b.database.GetOrCreateChat(ctx, query.Message.Chat.ID, chatKind(query.Message.Chat))
	if err != nil {
		return
	}

	b.request(tgbotapi.NewEditMessageReplyMarkup(query.Message.Chat.ID, query.Message.MessageID, b.settingsKeyboard(chat)))
}

func (b *Bot) handleInline(query *tgbotapi.InlineQuery) {
	url := strings.TrimSpace(query.Query)

	var results []interface{}

	if url != "" && extractor.Match(url) != nil {
		article := tgbotapi.NewInlineQueryResultArticleHTML(
			"1",
			b.loc.Lookup("InlineShareMessage", i18n.BaseLanguage),
			b.loc.Lookup("InlineProcessingMessage", i18n.BaseLanguage),
		)
		results = append(results, article)
	}

	b.request(tgbotapi.InlineConfig{
		InlineQueryID: query.ID,
		Results:       results,
		IsPersonal:    true,
		CacheTime:     1,
	})
}

// Helpers around the Telegram API that only log failures: a lost edit or
// answer is not worth failing the interaction over.

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn().Err(err).Msg("telegram send failed")
	}
}

func (b *Bot) request(c tgbotapi.Chattable) {
	if _, err := b.api.Request(c); err != nil {
		b.logger.Warn().Err(err).Msg("telegram request failed")
	}
}

func (b *Bot) editText(query *tgbotapi.CallbackQuery, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(query.Message.Chat.ID, query.Message.MessageID, text, kb)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.DisableWebPagePreview = true

	b.send(edit)
}

func (b *Bot) answerCallback(id string) {
	b.request(tgbotapi.NewCallback(id, ""))
}
