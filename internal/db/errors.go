package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrNotFound indicates a lookup matched no row.
var ErrNotFound = errors.New("not found")

// StoredError is one archived download error, addressable by its short id.
type StoredError struct {
	ID          string
	Message     string
	Occurrences int
	LastSeen    time.Time
}

// LogError archives a download error keyed by its deterministic short id.
// Repeated identical errors collapse to one row with an occurrence
// counter and a last-seen timestamp.
func (db *DB) LogError(ctx context.Context, id, message string) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO errors (id, message)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE
		SET occurrences = errors.occurrences + 1,
			last_seen = NOW()`,
		id, message)

	return err
}

// GetError retrieves an archived error by short id for operator
// diagnostics.
func (db *DB) GetError(ctx context.Context, id string) (*StoredError, error) {
	stored := &StoredError{}

	err := db.Pool.QueryRow(ctx,
		"SELECT id, message, occurrences, last_seen FROM errors WHERE id = $1",
		id).Scan(&stored.ID, &stored.Message, &stored.Occurrences, &stored.LastSeen)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return stored, nil
}
