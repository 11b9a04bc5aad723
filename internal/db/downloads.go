package db

import (
	"context"
	"fmt"
)

// Download is one delivered file recorded for history and stats.
type Download struct {
	ContentID   string
	ContentURL  string
	ExtractorID string
	ChatID      int64
	MediaType   string
	AudioCodec  string
	VideoCodec  string
	FileSize    int64
	Duration    int
	Width       int
	Height      int
	Bitrate     int
}

// InsertDownload appends one history row per delivered file across the
// media, media_item and media_format tables.
func (db *DB) InsertDownload(ctx context.Context, d *Download) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin download insert: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var mediaID int64

	err = tx.QueryRow(ctx, `
		INSERT INTO media (content_id, content_url, extractor_id, chat_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		d.ContentID, d.ContentURL, d.ExtractorID, d.ChatID).Scan(&mediaID)
	if err != nil {
		return fmt.Errorf("insert media: %w", err)
	}

	var itemID int64

	err = tx.QueryRow(ctx, `
		INSERT INTO media_item (media_id)
		VALUES ($1)
		RETURNING id`,
		mediaID).Scan(&itemID)
	if err != nil {
		return fmt.Errorf("insert media item: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO media_format (
			item_id, format_id, type, audio_codec, video_codec,
			file_size, duration, width, height, bitrate
		)
		VALUES ($1, 'default', $2, $3, $4, $5, $6, $7, $8, $9)`,
		itemID, d.MediaType, d.AudioCodec, d.VideoCodec,
		d.FileSize, d.Duration, d.Width, d.Height, d.Bitrate)
	if err != nil {
		return fmt.Errorf("insert media format: %w", err)
	}

	return tx.Commit(ctx)
}
