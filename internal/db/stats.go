package db

import (
	"context"
	"fmt"
	"time"
)

// Stats aggregates chat and download counters over a period.
type Stats struct {
	TotalPrivateChats  int64
	TotalGroupChats    int64
	TotalDownloads     int64
	TotalDownloadsSize int64
}

const hoursPerDay = 24

// GetStats returns counters for the last periodDays days.
func (db *DB) GetStats(ctx context.Context, periodDays int) (*Stats, error) {
	since := time.Now().UTC().Add(-time.Duration(periodDays) * hoursPerDay * time.Hour)

	stats := &Stats{}

	err := db.Pool.QueryRow(ctx, `
		WITH downloads_stats AS (
			SELECT COUNT(*) AS total_downloads, COALESCE(SUM(mf.file_size), 0) AS total_size
			FROM media m
			JOIN media_item mi ON mi.media_id = m.id
			JOIN media_format mf ON mf.item_id = mi.id
			WHERE m.created_at >= $1
		)
		SELECT
			(SELECT COUNT(*) FROM chat WHERE type = 'private' AND created_at >= $1)::BIGINT,
			(SELECT COUNT(*) FROM chat WHERE type = 'group' AND created_at >= $1)::BIGINT,
			(SELECT total_downloads FROM downloads_stats)::BIGINT,
			(SELECT total_size FROM downloads_stats)::BIGINT`,
		since).Scan(
		&stats.TotalPrivateChats,
		&stats.TotalGroupChats,
		&stats.TotalDownloads,
		&stats.TotalDownloadsSize,
	)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	return stats, nil
}
