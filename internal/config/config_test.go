package config

import (
	"os"
	"testing"
)

const (
	testEnvPostgresDSN = "POSTGRES_DSN"
	testEnvBotToken    = "BOT_TOKEN"

	testPostgresDSN = "postgres://localhost/test"
	testBotToken    = "123456:ABC-DEF"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()

	t.Setenv(testEnvPostgresDSN, testPostgresDSN)
	t.Setenv(testEnvBotToken, testBotToken)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv(testEnvPostgresDSN)
	os.Unsetenv(testEnvBotToken)

	_, err := Load()
	if err == nil {
		t.Error("expected error for missing required env vars")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q, want en", cfg.DefaultLanguage)
	}

	if cfg.DefaultAlbumLimit != 10 {
		t.Errorf("DefaultAlbumLimit = %d, want 10", cfg.DefaultAlbumLimit)
	}

	if !cfg.DefaultCaptions {
		t.Error("DefaultCaptions should default to true")
	}

	if cfg.DefaultSilent || cfg.DefaultNSFW || cfg.DefaultDeleteLink {
		t.Error("silent, nsfw and delete-links should default to false")
	}

	if cfg.AlbumHardCap != 10 {
		t.Errorf("AlbumHardCap = %d, want 10", cfg.AlbumHardCap)
	}
}

func TestLoad_Whitelist(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("WHITELIST_IDS", "1,2,3")
	t.Setenv("ADMIN_IDS", "9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.WhitelistIDs) != 3 || len(cfg.AdminIDs) != 1 {
		t.Errorf("unexpected id lists: %v %v", cfg.WhitelistIDs, cfg.AdminIDs)
	}
}

func TestClampAlbumLimit(t *testing.T) {
	tests := []struct {
		name    string
		hardCap int
		in      int
		want    int
	}{
		{name: "within range", hardCap: 10, in: 3, want: 3},
		{name: "above cap clamps down", hardCap: 10, in: 999, want: 10},
		{name: "at cap", hardCap: 10, in: 10, want: 10},
		{name: "below one clamps to one", hardCap: 10, in: 0, want: 1},
		{name: "negative clamps to one", hardCap: 10, in: -5, want: 1},
		{name: "zero cap means uncapped", hardCap: 0, in: 999, want: 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{AlbumHardCap: tt.hardCap}
			if got := cfg.ClampAlbumLimit(tt.in); got != tt.want {
				t.Errorf("ClampAlbumLimit(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
