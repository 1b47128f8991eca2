package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.AppPort)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("expected default access TTL, got %v", cfg.AccessTokenTTL)
	}
	if cfg.LoginRateLimit.Requests != 5 {
		t.Fatalf("expected default login rate, got %d", cfg.LoginRateLimit.Requests)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
port = 9090
database_url = "postgres://example/db"
access_token_ttl = "30m"

[login_rate_limit]
requests = 10
window = "2m"

[object_store]
bucket = "media"
public_base_url = "https://cdn.example.com/"
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppPort != 9090 {
		t.Fatalf("expected port from file, got %d", cfg.AppPort)
	}
	if cfg.DatabaseURL != "postgres://example/db" {
		t.Fatalf("expected database url from file, got %q", cfg.DatabaseURL)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("expected access TTL from file, got %v", cfg.AccessTokenTTL)
	}
	if cfg.LoginRateLimit.Requests != 10 || cfg.LoginRateLimit.Window != 2*time.Minute {
		t.Fatalf("expected login rate from file, got %+v", cfg.LoginRateLimit)
	}
	if cfg.ObjectStore.Bucket != "media" {
		t.Fatalf("expected bucket from file, got %q", cfg.ObjectStore.Bucket)
	}
	if cfg.MigrationDir != "migrations" {
		t.Fatalf("unset file keys must keep defaults, got %q", cfg.MigrationDir)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("port = 9090\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("MEATDEALER_PORT", "7070")
	t.Setenv("MEATDEALER_ACCESS_TOKEN_TTL", "1h")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.AppPort != 7070 {
		t.Fatalf("expected env to override file, got %d", cfg.AppPort)
	}
	if cfg.AccessTokenTTL != time.Hour {
		t.Fatalf("expected env TTL, got %v", cfg.AccessTokenTTL)
	}
}

func TestLoadMissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing config file must not fail: %v", err)
	}
	if cfg.AppPort != 8080 {
		t.Fatalf("expected defaults, got %d", cfg.AppPort)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`access_token_ttl = "soon"`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}
