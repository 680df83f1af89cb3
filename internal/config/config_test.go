package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "talent-track")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing required env")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_TTL", "")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Redis.Host != "localhost" || cfg.Redis.Port != "6379" {
		t.Fatalf("unexpected redis defaults: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
	}
	if cfg.Redis.TTL != 600*time.Second {
		t.Fatalf("unexpected redis ttl: %s", cfg.Redis.TTL)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("unexpected access expiry: %s", cfg.JWT.AccessExpiresIn)
	}
	if cfg.Sheets.Enabled() {
		t.Fatalf("sheets should be disabled without credentials")
	}
}

func TestLoad_DurationFormats(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_TTL", "120")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Redis.TTL != 120*time.Second {
		t.Fatalf("plain seconds not parsed: %s", cfg.Redis.TTL)
	}
	if cfg.JWT.AccessExpiresIn != 30*time.Minute {
		t.Fatalf("duration string not parsed: %s", cfg.JWT.AccessExpiresIn)
	}
}

func TestSheetsConfig_Enabled(t *testing.T) {
	c := SheetsConfig{SpreadsheetID: "sheet-id", CredentialsFile: "credentials.json"}
	if !c.Enabled() {
		t.Fatalf("expected enabled")
	}
	c = SheetsConfig{CredentialsFile: "credentials.json"}
	if c.Enabled() {
		t.Fatalf("expected disabled without spreadsheet id")
	}
}
