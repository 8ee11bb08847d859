package bootstrap

import (
	"context"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"charapedia/app/internal/config"
	"charapedia/app/internal/data"
)

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig(t *testing.T, dataDir string) config.Config {
	t.Helper()

	cfg, err := config.LoadFrom(map[string]string{
		"DATA_DIR":   dataDir,
		"ASSETS_DIR": t.TempDir(),
	})
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	return *cfg
}

func writeTables(t *testing.T, dir string) {
	t.Helper()

	files := map[string]string{
		"characters.json":  `[{"code":"001","title":"アオイ","series":"0","colors":["#ff0000"]}]`,
		"series.json":      `{"0":{"id":0,"key":"Origin","nameJa":"はじまり"}}`,
		"arcList.json":     `{}`,
		"exhibitions.json": `["001_2024-01-01_sea.png"]`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
}

func get(handler stdhttp.Handler, target string) int {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, target, nil))
	return rec.Code
}

func TestBuildServesLoadedCatalog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTables(t, dir)

	result, err := Build(context.Background(), Dependencies{Config: testConfig(t, dir), Logger: silentLogger()})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	t.Cleanup(func() { _ = result.Cleanup() })

	if result.Watcher != nil {
		t.Fatalf("expected no watcher by default")
	}
	if code := get(result.HTTPServer.Handler(), "/characters/001"); code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	if code := get(result.HTTPServer.Handler(), "/healthz"); code != stdhttp.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
}

func TestBuildStartsWithoutData(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	result, err := Build(context.Background(), Dependencies{Config: testConfig(t, dir), Logger: silentLogger()})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	t.Cleanup(func() { _ = result.Cleanup() })

	if code := get(result.HTTPServer.Handler(), "/"); code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", code)
	}

	writeTables(t, dir)
	if err := result.Store.Reload(context.Background()); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	if code := get(result.HTTPServer.Handler(), "/"); code != stdhttp.StatusOK {
		t.Fatalf("expected status 200 after reload, got %d", code)
	}
}

func TestBuildCreatesWatcher(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTables(t, dir)

	cfg := testConfig(t, dir)
	cfg.DataWatch = true

	result, err := Build(context.Background(), Dependencies{Config: cfg, Logger: silentLogger()})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if result.Watcher == nil {
		t.Fatalf("expected a watcher")
	}
	if err := result.Cleanup(); err != nil {
		t.Fatalf("Cleanup returned error: %v", err)
	}
}

func TestOpenSourcePicksImplementation(t *testing.T) {
	t.Parallel()

	cfg := config.Config{DataFetchTimeout: time.Second}

	remote, err := OpenSource("https://example.com/data", cfg)
	if err != nil {
		t.Fatalf("OpenSource returned error: %v", err)
	}
	if _, ok := remote.(*data.HTTPSource); !ok {
		t.Fatalf("expected *data.HTTPSource, got %T", remote)
	}

	local, err := OpenSource(t.TempDir(), cfg)
	if err != nil {
		t.Fatalf("OpenSource returned error: %v", err)
	}
	if _, ok := local.(*data.DirSource); !ok {
		t.Fatalf("expected *data.DirSource, got %T", local)
	}

	if _, err := OpenSource(filepath.Join(t.TempDir(), "missing"), cfg); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
