package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mediagrab/media-grab-bot/internal/db"
	"github.com/mediagrab/media-grab-bot/internal/downloader"
	"github.com/mediagrab/media-grab-bot/internal/extractor"
	"github.com/mediagrab/media-grab-bot/internal/observability"
)

const captionDescriptionLimit = 900

// lang returns the language to render replies in, falling back to the
// instance default while the chat has not picked one.
func (b *Bot) lang(chat *db.Chat) string {
	if chat.Language == "" || chat.Language == db.LanguageUnset {
		return b.cfg.DefaultLanguage
	}

	return chat.Language
}

// processURL takes one detected URL through resolve, fetch and deliver.
func (b *Bot) processURL(ctx context.Context, msg *tgbotapi.Message, chat *db.Chat, url string) {
	prefs := extractor.Preferences{DisabledExtractors: chat.DisabledExtractors}

	outcome := b.engine.Resolve(ctx, url, prefs)
	if !outcome.Proceed {
		// Distinguish unknown hosts from extractors the chat turned off.
		label := observability.OutcomeNoMatch
		if extractor.Match(url) != nil {
			label = observability.OutcomeDisabled
		}

		observability.Resolutions.WithLabelValues(label).Inc()

		return
	}

	observability.Resolutions.WithLabelValues(observability.OutcomeProceed).Inc()

	processing := b.sendProcessing(msg, chat)

	start := time.Now()

	res, err := b.runner.Fetch(ctx, outcome.URL, chat.MediaAlbumLimit)

	observability.DownloadDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		observability.Downloads.WithLabelValues(outcome.ExtractorID, observability.StatusError).Inc()
		b.reportFailure(ctx, msg, chat, outcome, err)
		b.deleteProcessing(msg.Chat.ID, processing)

		return
	}

	observability.Downloads.WithLabelValues(outcome.ExtractorID, observability.StatusOK).Inc()

	b.deliver(ctx, msg, chat, outcome, res)
	b.deleteProcessing(msg.Chat.ID, processing)

	if chat.DeleteLinks {
		b.request(tgbotapi.NewDeleteMessage(msg.Chat.ID, msg.MessageID))
	}
}

// sendProcessing posts the transient "working on it" reply and returns
// its message id, or 0 if the send failed.
func (b *Bot) sendProcessing(msg *tgbotapi.Message, chat *db.Chat) int {
	reply := tgbotapi.NewMessage(msg.Chat.ID, b.loc.Lookup("ProcessingMessage", b.lang(chat)))
	reply.ReplyToMessageID = msg.MessageID
	reply.DisableNotification = true

	sent, err := b.api.Send(reply)
	if err != nil {
		b.logger.Warn().Err(err).Msg("processing notice send failed")

		return 0
	}

	return sent.MessageID
}

func (b *Bot) deleteProcessing(chatID int64, messageID int) {
	if messageID == 0 {
		return
	}

	b.request(tgbotapi.NewDeleteMessage(chatID, messageID))
}

// reportFailure archives the error under its short id and tells the chat
// only that id, keeping tool output out of user-facing messages.
func (b *Bot) reportFailure(ctx context.Context, msg *tgbotapi.Message, chat *db.Chat, outcome extractor.Outcome, ferr error) {
	var dlErr *downloader.Error
	if !errors.As(ferr, &dlErr) {
		dlErr = &downloader.Error{Message: ferr.Error()}
	}

	id := dlErr.ShortID()

	if err := b.database.LogError(ctx, id, dlErr.Message); err != nil {
		b.logger.Error().Err(err).Str("error_id", id).Msg("failed to archive error")
	}

	b.logger.Warn().
		Str("extractor", outcome.ExtractorID).
		Str("url", outcome.URL).
		Str("error_id", id).
		Msg("download failed")

	text := fmt.Sprintf("%s\n\nid: <code>%s</code>", b.loc.Lookup("ErrorMessage", b.lang(chat)), id)

	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = tgbotapi.ModeHTML
	reply.ReplyToMessageID = msg.MessageID
	reply.DisableNotification = chat.Silent

	b.send(reply)
}

// deliver uploads each fetched file back into the chat and records the
// download history rows.
func (b *Bot) deliver(ctx context.Context, msg *tgbotapi.Message, chat *db.Chat, outcome extractor.Outcome, res *downloader.Result) {
	if res.AgeRestricted && !chat.NSFW {
		reply := tgbotapi.NewMessage(msg.Chat.ID, b.loc.Lookup("NsfwDisallowedMessage", b.lang(chat)))
		reply.ReplyToMessageID = msg.MessageID
		reply.DisableNotification = chat.Silent

		b.send(reply)

		return
	}

	caption := ""
	if chat.Captions {
		caption = buildCaption(res)
	}

	for i, f := range res.Files {
		if !b.sendFile(msg.Chat.ID, f, captionFor(caption, i), chat) {
			continue
		}

		observability.DeliveredBytes.Add(float64(f.FileSize))

		record := &db.Download{
			ContentID:   res.ContentID,
			ContentURL:  outcome.URL,
			ExtractorID: outcome.ExtractorID,
			ChatID:      chat.ChatID,
			MediaType:   f.MediaType,
			AudioCodec:  f.AudioCodec,
			VideoCodec:  f.VideoCodec,
			FileSize:    f.FileSize,
			Duration:    f.Duration,
			Width:       f.Width,
			Height:      f.Height,
			Bitrate:     f.Bitrate,
		}

		if err := b.database.InsertDownload(ctx, record); err != nil {
			b.logger.Error().Err(err).Str("content_id", res.ContentID).Msg("failed to record download")
		}
	}
}

// captionFor puts the caption on the first file of a batch only.
func captionFor(caption string, index int) string {
	if index == 0 {
		return caption
	}

	return ""
}

func (b *Bot) sendFile(chatID int64, f downloader.File, caption string, chat *db.Chat) bool {
	var c tgbotapi.Chattable

	switch f.MediaType {
	case downloader.MediaTypeVideo:
		video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(f.Path))
		video.Caption = caption
		video.ParseMode = tgbotapi.ModeHTML
		video.DisableNotification = chat.Silent
		video.Duration = f.Duration
		video.SupportsStreaming = true
		c = video
	case downloader.MediaTypeAudio:
		audio := tgbotapi.NewAudio(chatID, tgbotapi.FilePath(f.Path))
		audio.Caption = caption
		audio.ParseMode = tgbotapi.ModeHTML
		audio.DisableNotification = chat.Silent
		audio.Duration = f.Duration
		c = audio
	default:
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(f.Path))
		doc.Caption = caption
		doc.ParseMode = tgbotapi.ModeHTML
		doc.DisableNotification = chat.Silent
		c = doc
	}

	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn().Err(err).Str("path", f.Path).Msg("media upload failed")

		return false
	}

	return true
}

// buildCaption renders the content metadata as HTML, truncating long
// descriptions so the caption stays inside Telegram's limit.
func buildCaption(res *downloader.Result) string {
	var parts []string

	if res.Title != "" {
		parts = append(parts, "<b>"+html.EscapeString(res.Title)+"</b>")
	}

	if res.Uploader != "" {
		parts = append(parts, html.EscapeString(res.Uploader))
	}

	if res.Description != "" && res.Description != res.Title {
		desc := res.Description
		if len(desc) > captionDescriptionLimit {
			desc = truncateRunes(desc, captionDescriptionLimit) + "…"
		}

		parts = append(parts, html.EscapeString(desc))
	}

	caption := ""
	for i, p := range parts {
		if i > 0 {
			caption += "\n\n"
		}

		caption += p
	}

	return caption
}

// truncateRunes cuts s to at most n runes without splitting a character.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
