// Package worker runs the background maintenance loops.
package worker

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"context"

	"github.com/rs/zerolog"

	"github.com/mediagrab/media-grab-bot/internal/observability"
)

// Janitor periodically removes delivered files from the downloads
// directory once they are old enough to be re-fetched cheaply.
type Janitor struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration
	logger   *zerolog.Logger
}

func NewJanitor(dir string, maxAge, interval time.Duration, logger *zerolog.Logger) *Janitor {
	return &Janitor{dir: dir, maxAge: maxAge, interval: interval, logger: logger}
}

// Run sweeps immediately and then on every tick until the context is
// canceled.
func (j *Janitor) Run(ctx context.Context) error {
	j.logger.Info().Str("dir", j.dir).Dur("interval", j.interval).Msg("starting downloads janitor")

	j.sweep()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("janitor loop: %w", ctx.Err())
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *Janitor) sweep() {
	cutoff := time.Now().Add(-j.maxAge)

	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			j.logger.Warn().Err(err).Str("dir", j.dir).Msg("janitor cannot read downloads dir")
		}

		return
	}

	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			j.logger.Warn().Err(err).Str("file", path).Msg("janitor failed to remove file")

			continue
		}

		removed++

		observability.CleanedFiles.Inc()
	}

	if removed > 0 {
		j.logger.Debug().Int("removed", removed).Msg("janitor sweep done")
	}
}
