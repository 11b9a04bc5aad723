package db

import (
	"context"
	"fmt"
)

// Chat kinds as stored in the chat table.
const (
	ChatKindPrivate = "private"
	ChatKindGroup   = "group"
)

// LanguageUnset is the sentinel meaning "still at instance default"; it
// may be overwritten once by automatic language detection, while a
// user-set language is never silently overwritten.
const LanguageUnset = "XX"

// Chat is one chat's durable preferences.
type Chat struct {
	ChatID             int64
	Kind               string
	Language           string
	Captions           bool
	Silent             bool
	NSFW               bool
	DeleteLinks        bool
	MediaAlbumLimit    int
	DisabledExtractors []string
}

// GetOrCreateChat upserts the chat and settings rows in one statement
// and returns the current preferences. Lazy creation on first
// interaction; the settings upsert only replaces a language equal to the
// unset sentinel, so user-chosen languages survive.
func (db *DB) GetOrCreateChat(ctx context.Context, chatID int64, kind string) (*Chat, error) {
	const query = `
		WITH upsert_chat AS (
			INSERT INTO chat (chat_id, type)
			VALUES ($1, $2)
			ON CONFLICT (chat_id) DO NOTHING
			RETURNING chat_id, type
		),
		upsert_settings AS (
			INSERT INTO settings (chat_id, language, captions, silent, nsfw, media_album_limit, delete_links)
			VALUES ($1, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (chat_id) DO UPDATE SET
				language = CASE
					WHEN settings.language = 'XX' THEN EXCLUDED.language
					ELSE settings.language
				END
			RETURNING chat_id, language, captions, silent, nsfw, media_album_limit, delete_links, disabled_extractors
		),
		final_chat AS (
			SELECT chat_id, type FROM upsert_chat
			UNION ALL
			SELECT chat_id, type FROM chat WHERE chat_id = $1 AND NOT EXISTS (SELECT 1 FROM upsert_chat)
		)
		SELECT
			c.chat_id,
			c.type,
			s.language,
			s.captions,
			s.silent,
			s.nsfw,
			s.delete_links,
			s.media_album_limit,
			s.disabled_extractors
		FROM final_chat c
		JOIN upsert_settings s ON s.chat_id = c.chat_id`

	chat := &Chat{}

	err := db.Pool.QueryRow(ctx, query,
		chatID,
		kind,
		db.defaults.Language,
		db.defaults.Captions,
		db.defaults.Silent,
		db.defaults.NSFW,
		db.defaults.AlbumLimit,
		db.defaults.DeleteLink,
	).Scan(
		&chat.ChatID,
		&chat.Kind,
		&chat.Language,
		&chat.Captions,
		&chat.Silent,
		&chat.NSFW,
		&chat.DeleteLinks,
		&chat.MediaAlbumLimit,
		&chat.DisabledExtractors,
	)
	if err != nil {
		return nil, fmt.Errorf("get or create chat %d: %w", chatID, err)
	}

	return chat, nil
}

func (db *DB) SetChatLanguage(ctx context.Context, chatID int64, language string) error {
	_, err := db.Pool.Exec(ctx,
		"UPDATE settings SET language = $1, updated_at = CURRENT_TIMESTAMP WHERE chat_id = $2",
		language, chatID)

	return err
}

func (db *DB) ToggleChatCaptions(ctx context.Context, chatID int64) error {
	return db.toggleField(ctx, chatID, "captions")
}

func (db *DB) ToggleChatSilent(ctx context.Context, chatID int64) error {
	return db.toggleField(ctx, chatID, "silent")
}

func (db *DB) ToggleChatNSFW(ctx context.Context, chatID int64) error {
	return db.toggleField(ctx, chatID, "nsfw")
}

func (db *DB) ToggleChatDeleteLinks(ctx context.Context, chatID int64) error {
	return db.toggleField(ctx, chatID, "delete_links")
}

// toggleField flips a single boolean column. Concurrent toggles of the
// same field are a benign last-write-wins race; different fields never
// conflict because each update touches one column.
func (db *DB) toggleField(ctx context.Context, chatID int64, column string) error {
	query := fmt.Sprintf("UPDATE settings SET %s = NOT %s, updated_at = CURRENT_TIMESTAMP WHERE chat_id = $1", column, column)

	_, err := db.Pool.Exec(ctx, query, chatID)

	return err
}

// SetChatMediaAlbumLimit stores an album limit. Callers clamp the value
// to the instance hard cap before calling.
func (db *DB) SetChatMediaAlbumLimit(ctx context.Context, chatID int64, limit int) error {
	_, err := db.Pool.Exec(ctx,
		"UPDATE settings SET media_album_limit = $1, updated_at = CURRENT_TIMESTAMP WHERE chat_id = $2",
		limit, chatID)

	return err
}

// AddDisabledExtractor opts the chat out of an extractor. Adding an id
// that is already present is a no-op.
func (db *DB) AddDisabledExtractor(ctx context.Context, chatID int64, extractorID string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE settings
		SET disabled_extractors = array_append(disabled_extractors, $1), updated_at = CURRENT_TIMESTAMP
		WHERE chat_id = $2 AND NOT ($1 = ANY(disabled_extractors))`,
		extractorID, chatID)

	return err
}

// RemoveDisabledExtractor re-enables an extractor. Removing an absent id
// is a no-op.
func (db *DB) RemoveDisabledExtractor(ctx context.Context, chatID int64, extractorID string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE settings
		SET disabled_extractors = array_remove(disabled_extractors, $1), updated_at = CURRENT_TIMESTAMP
		WHERE chat_id = $2`,
		extractorID, chatID)

	return err
}
