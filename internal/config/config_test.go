package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.PostgresURL == "" {
		t.Fatalf("expected default postgres url")
	}
	if cfg.GeocodeTimeout() != 4*time.Second {
		t.Fatalf("expected default geocode timeout, got %v", cfg.GeocodeTimeout())
	}
	if cfg.GeocodeBatchPause() != 200*time.Millisecond {
		t.Fatalf("expected default batch pause, got %v", cfg.GeocodeBatchPause())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("POSTGRES_URL", "postgres://example")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("GOOGLE_MAPS_API_KEY", "key-123")
	t.Setenv("GEOCODE_TIMEOUT_SECONDS", "7")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.PostgresURL != "postgres://example" {
		t.Fatalf("expected override postgres")
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected override redis")
	}
	if cfg.GoogleMapsAPIKey != "key-123" {
		t.Fatalf("expected override maps key")
	}
	if cfg.GeocodeTimeout() != 7*time.Second {
		t.Fatalf("expected override timeout")
	}
}
