package config

import (
	"testing"
	"time"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("AUTH_RATE_LIMIT", "10")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if cfg.AccessTokenTTL != 5*time.Minute {
		t.Errorf("AccessTokenTTL = %v", cfg.AccessTokenTTL)
	}
	if cfg.AuthRateLimit != 10 {
		t.Errorf("AuthRateLimit = %d", cfg.AuthRateLimit)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if len(cfg.TrustedProxies) != 1 || cfg.TrustedProxies[0] != "10.0.0.1" {
		t.Errorf("TrustedProxies = %v", cfg.TrustedProxies)
	}
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	t.Setenv("REFRESH_TOKEN_TTL", "forever")
	t.Setenv("AUTH_RATE_LIMIT", "-1")

	cfg := Load()
	d := Defaults()
	if cfg.RefreshTokenTTL != d.RefreshTokenTTL {
		t.Errorf("RefreshTokenTTL = %v, want %v", cfg.RefreshTokenTTL, d.RefreshTokenTTL)
	}
	if cfg.AuthRateLimit != 3 {
		t.Errorf("AuthRateLimit = %d, want 3", cfg.AuthRateLimit)
	}
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	if _, err := Connect(&Config{DBDriver: "oracle"}); err == nil {
		t.Fatal("expected an error for an unknown driver")
	}
}
