package bot

import (
	"fmt"
	"sort"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mediagrab/media-grab-bot/internal/db"
	"github.com/mediagrab/media-grab-bot/internal/extractor"
)

// Callback routes. These strings are part of the persisted button
// payloads, so they stay stable across releases.
const (
	cbStart              = "start"
	cbClose              = "close"
	cbSettings           = "settings"
	cbExtractors         = "extractors"
	cbSelectLanguage     = "settings.select.language"
	cbSelectAlbumLimit   = "settings.select.album_limit"
	cbSelectDisabled     = "settings.select.disabled_extractors"
	cbTogglePrefix       = "settings.toggle."
	cbLanguagePrefix     = "settings.language."
	cbAlbumPrefix        = "settings.album."
	cbExtractorPrefix    = "settings.extractor."
	toggleActionCaptions = "captions"
	toggleActionSilent   = "silent"
	toggleActionNSFW     = "nsfw"
	toggleActionDelete   = "delete_links"
)

var albumLimitChoices = []int{1, 2, 3, 5, 10, 15, 20}

func (b *Bot) mainKeyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.Lookup("SettingsButton", lang), cbSettings),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.Lookup("ExtractorsButton", lang), cbExtractors),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.Lookup("CloseButton", lang), cbClose),
		),
	)
}

func (b *Bot) settingsKeyboard(chat *db.Chat) tgbotapi.InlineKeyboardMarkup {
	lang := b.lang(chat)

	onoff := func(v bool) string {
		if v {
			return b.loc.Lookup("EnabledButton", lang)
		}

		return b.loc.Lookup("DisabledButton", lang)
	}

	langName := b.loc.Languages()[lang]
	if langName == "" {
		langName = lang
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s: %s", b.loc.Lookup("LanguageButton", lang), langName),
				cbSelectLanguage,
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s: %s", b.loc.Lookup("CaptionsButton", lang), onoff(chat.Captions)),
				cbTogglePrefix+toggleActionCaptions,
			),
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s: %s", b.loc.Lookup("SilentButton", lang), onoff(chat.Silent)),
				cbTogglePrefix+toggleActionSilent,
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s: %s", b.loc.Lookup("NsfwButton", lang), onoff(chat.NSFW)),
				cbTogglePrefix+toggleActionNSFW,
			),
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s: %s", b.loc.Lookup("DeleteProcessedButton", lang), onoff(chat.DeleteLinks)),
				cbTogglePrefix+toggleActionDelete,
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s: %d", b.loc.Lookup("MediaAlbumButton", lang), chat.MediaAlbumLimit),
				cbSelectAlbumLimit,
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.Lookup("DisabledExtractorsButton", lang), cbSelectDisabled),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.loc.Lookup("BackButton", lang), cbStart),
			tgbotapi.NewInlineKeyboardButtonData(b.loc.Lookup("CloseButton", lang), cbClose),
		),
	)
}

func (b *Bot) languagesKeyboard(chat *db.Chat) tgbotapi.InlineKeyboardMarkup {
	langs := b.loc.Languages()

	codes := make([]string, 0, len(langs))
	for code := range langs {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(codes)+1)

	for _, code := range codes {
		name := langs[code]
		if code == b.lang(chat) {
			name += " ✅"
		}

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(name, cbLanguagePrefix+code),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.loc.Lookup("BackButton", b.lang(chat)), cbSettings),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) albumLimitKeyboard(chat *db.Chat) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(albumLimitChoices)+1)

	for _, n := range albumLimitChoices {
		label := fmt.Sprintf("%d", n)
		if n == chat.MediaAlbumLimit {
			label += " ✅"
		}

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", cbAlbumPrefix, n)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.loc.Lookup("BackButton", b.lang(chat)), cbSettings),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) extractorsKeyboard(chat *db.Chat) tgbotapi.InlineKeyboardMarkup {
	prefs := extractor.Preferences{DisabledExtractors: chat.DisabledExtractors}

	visible := extractor.ListVisible()
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(visible)+1)

	for _, desc := range visible {
		label := desc.DisplayName
		if prefs.Disabled(desc.ID) {
			label += fmt.Sprintf(" (%s)", b.loc.Lookup("DisabledButton", b.lang(chat)))
		}

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, cbExtractorPrefix+desc.ID),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.loc.Lookup("BackButton", b.lang(chat)), cbSettings),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
