// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"local"`
	PostgresDSN string `env:"POSTGRES_DSN,required"`
	BotToken    string `env:"BOT_TOKEN,required"`

	// Access control. An empty whitelist allows everyone; admins may run
	// operator commands regardless of the whitelist.
	WhitelistIDs []int64 `env:"WHITELIST_IDS" envSeparator:","`
	AdminIDs     []int64 `env:"ADMIN_IDS" envSeparator:","`

	DownloadsDir    string        `env:"DOWNLOADS_DIR" envDefault:"downloads"`
	DownloadTimeout time.Duration `env:"DOWNLOAD_TIMEOUT" envDefault:"10m"`
	RedirectTimeout time.Duration `env:"REDIRECT_TIMEOUT" envDefault:"15s"`
	RedirectRPS     float64       `env:"REDIRECT_RPS" envDefault:"2"`
	Proxy           string        `env:"PROXY"`
	MaxFileSize     int64         `env:"MAX_FILE_SIZE" envDefault:"1048576000"`

	// Per-chat defaults applied when a chat row is first created.
	DefaultCaptions   bool   `env:"DEFAULT_ENABLE_CAPTIONS" envDefault:"true"`
	DefaultSilent     bool   `env:"DEFAULT_ENABLE_SILENT" envDefault:"false"`
	DefaultNSFW       bool   `env:"DEFAULT_ENABLE_NSFW" envDefault:"false"`
	DefaultDeleteLink bool   `env:"DEFAULT_DELETE_LINKS" envDefault:"false"`
	DefaultAlbumLimit int    `env:"DEFAULT_MEDIA_ALBUM_LIMIT" envDefault:"10"`
	DefaultLanguage   string `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	// AlbumHardCap bounds every chat's album limit; 0 disables the cap.
	AlbumHardCap int `env:"MEDIA_ALBUM_HARD_CAP" envDefault:"10"`

	HealthPort      int           `env:"HEALTH_PORT" envDefault:"8080"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"30m"`
	CleanupMaxAge   time.Duration `env:"CLEANUP_MAX_AGE" envDefault:"1h"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	return cfg, nil
}

// ClampAlbumLimit bounds a requested album limit to [1, AlbumHardCap].
// Values above the cap are silently reduced, not rejected.
func (c *Config) ClampAlbumLimit(limit int) int {
	if limit < 1 {
		return 1
	}

	if c.AlbumHardCap > 0 && limit > c.AlbumHardCap {
		return c.AlbumHardCap
	}

	return limit
}
