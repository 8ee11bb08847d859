package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(map[string]string{"SERVER_PORT": "", "ENV": ""})
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if cfg.DataDir != "./data" {
		t.Errorf("expected default data dir ./data, got %q", cfg.DataDir)
	}
	if cfg.AssetsDir != "./public" {
		t.Errorf("expected default assets dir ./public, got %q", cfg.AssetsDir)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("expected default server port 8080, got %d", cfg.ServerPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %q", cfg.LogLevel)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected default environment development, got %q", cfg.Environment)
	}
	if cfg.ShutdownGrace != 10*time.Second {
		t.Errorf("expected shutdown grace 10s, got %s", cfg.ShutdownGrace)
	}
	if cfg.DataFetchTimeout != 10*time.Second {
		t.Errorf("expected fetch timeout 10s, got %s", cfg.DataFetchTimeout)
	}
	if cfg.SentrySampleRate != 1 {
		t.Errorf("expected sentry sample rate 1, got %v", cfg.SentrySampleRate)
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 20 || cfg.RateLimitClientTTL != 10*time.Minute {
		t.Errorf("unexpected rate limit defaults: %v/%d/%s", cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.RateLimitClientTTL)
	}
	if cfg.PickupCount != 3 || cfg.UpdatesLimit != 8 {
		t.Errorf("unexpected listing defaults: pickup %d, updates %d", cfg.PickupCount, cfg.UpdatesLimit)
	}
	if cfg.DataWatch || cfg.WatchEnabled() {
		t.Errorf("expected watching to be disabled by default")
	}
	if cfg.SentryDSN != "" || cfg.DataBaseURL != "" {
		t.Errorf("expected empty optional values, got dsn %q base %q", cfg.SentryDSN, cfg.DataBaseURL)
	}
}

func TestLoadWithExplicitValues(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(map[string]string{
		"DATA_DIR":              "/srv/data",
		"DATA_WATCH":            "true",
		"DATA_FETCH_TIMEOUT":    "3s",
		"ASSETS_DIR":            "/srv/public",
		"SERVER_PORT":           "9090",
		"LOG_LEVEL":             "debug",
		"SENTRY_DSN":            "dsn",
		"ENV":                   "production",
		"SHUTDOWN_GRACE":        "30s",
		"RATE_LIMIT_RPS":        "2.5",
		"RATE_LIMIT_BURST":      "4",
		"RATE_LIMIT_CLIENT_TTL": "1m",
		"PICKUP_COUNT":          "5",
		"UPDATES_LIMIT":         "0",
	})
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if cfg.DataDir != "/srv/data" || cfg.AssetsDir != "/srv/public" {
		t.Errorf("unexpected directories: %q %q", cfg.DataDir, cfg.AssetsDir)
	}
	if !cfg.WatchEnabled() {
		t.Errorf("expected watching to be enabled")
	}
	if cfg.DataFetchTimeout != 3*time.Second {
		t.Errorf("expected fetch timeout 3s, got %s", cfg.DataFetchTimeout)
	}
	if cfg.ServerPort != 9090 {
		t.Errorf("expected server port 9090, got %d", cfg.ServerPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.SentryDSN != "dsn" {
		t.Errorf("expected Sentry DSN dsn, got %q", cfg.SentryDSN)
	}
	if cfg.Environment != "production" {
		t.Errorf("expected environment production, got %q", cfg.Environment)
	}
	if cfg.ShutdownGrace != 30*time.Second {
		t.Errorf("expected shutdown grace 30s, got %s", cfg.ShutdownGrace)
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 4 || cfg.RateLimitClientTTL != time.Minute {
		t.Errorf("unexpected rate limit values: %v/%d/%s", cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.RateLimitClientTTL)
	}
	if cfg.PickupCount != 5 || cfg.UpdatesLimit != 0 {
		t.Errorf("unexpected listing values: pickup %d, updates %d", cfg.PickupCount, cfg.UpdatesLimit)
	}
}

func TestRemoteDataDisablesWatching(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFrom(map[string]string{
		"DATA_BASE_URL": "https://example.com/data/",
		"DATA_WATCH":    "true",
	})
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.WatchEnabled() {
		t.Fatalf("expected watching to be disabled for remote data")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		vars    map[string]string
		mention string
	}{
		{name: "unparseable port", vars: map[string]string{"SERVER_PORT": "invalid"}, mention: "parsing environment"},
		{name: "port out of range", vars: map[string]string{"SERVER_PORT": "70000"}, mention: "SERVER_PORT"},
		{name: "zero burst", vars: map[string]string{"RATE_LIMIT_BURST": "0"}, mention: "RATE_LIMIT_BURST"},
		{name: "negative rps", vars: map[string]string{"RATE_LIMIT_RPS": "-1"}, mention: "RATE_LIMIT_RPS"},
		{name: "bad duration", vars: map[string]string{"SHUTDOWN_GRACE": "soon"}, mention: "parsing environment"},
		{name: "negative pickup", vars: map[string]string{"PICKUP_COUNT": "-2"}, mention: "PICKUP_COUNT"},
		{name: "sample rate above one", vars: map[string]string{"SENTRY_SAMPLE_RATE": "1.5"}, mention: "SENTRY_SAMPLE_RATE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadFrom(tc.vars)
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.mention) {
				t.Fatalf("expected error to mention %q, got %v", tc.mention, err)
			}
		})
	}
}
