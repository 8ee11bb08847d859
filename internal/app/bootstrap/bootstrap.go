package bootstrap

import (
	"context"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"charapedia/app/internal/config"
	"charapedia/app/internal/data"
	apphttp "charapedia/app/internal/http"
	"charapedia/app/internal/metrics"
	"charapedia/app/internal/showcase"
)

type Dependencies struct {
	Config    config.Config
	Logger    *logrus.Logger
	SentryHub *sentry.Hub
	Metrics   *metrics.Metrics
}

type Result struct {
	Store      *data.Store
	Showcase   showcase.Service
	HTTPServer *apphttp.Server
	// Watcher is nil unless DATA_WATCH applies.
	Watcher *data.Watcher
	Cleanup func() error
}

// OpenSource picks an HTTP source for http(s) locations and a directory source otherwise.
func OpenSource(location string, cfg config.Config) (data.Source, error) {
	trimmed := strings.TrimSpace(location)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return data.NewHTTPSource(trimmed, nil, cfg.DataFetchTimeout)
	}
	return data.NewDirSource(trimmed)
}

// Build composes the Charapedia application layers and performs the first catalogue load.
// A failed first load is logged and the server starts anyway, answering 503 until a reload succeeds.
func Build(ctx context.Context, deps Dependencies) (Result, error) {
	if deps.Logger == nil {
		return Result{}, eris.New("logger is required")
	}

	location := deps.Config.DataDir
	if deps.Config.DataBaseURL != "" {
		location = deps.Config.DataBaseURL
	}

	source, err := OpenSource(location, deps.Config)
	if err != nil {
		return Result{}, eris.Wrap(err, "opening data source")
	}

	loader, err := data.NewLoader(data.LoaderOptions{
		Source: source,
		Logger: deps.Logger,
	})
	if err != nil {
		return Result{}, eris.Wrap(err, "creating catalog loader")
	}

	store, err := data.NewStore(data.StoreOptions{
		Loader:    loader,
		Logger:    deps.Logger,
		SentryHub: deps.SentryHub,
		Metrics:   deps.Metrics,
	})
	if err != nil {
		return Result{}, eris.Wrap(err, "creating catalog store")
	}

	if err := store.Reload(ctx); err != nil {
		deps.Logger.WithError(err).Error("initial catalog load failed, serving unavailable pages until a reload succeeds")
	}

	service, err := showcase.NewService(showcase.Options{
		Snapshots: store,
		Logger:    deps.Logger,
		SentryHub: deps.SentryHub,
		Metrics:   deps.Metrics,
	})
	if err != nil {
		return Result{}, eris.Wrap(err, "creating showcase service")
	}

	httpServer, err := apphttp.NewServer(apphttp.Options{
		Showcase:  service,
		Logger:    deps.Logger,
		SentryHub: deps.SentryHub,
		Metrics:   deps.Metrics,
		AssetsDir: deps.Config.AssetsDir,
		RateLimiter: apphttp.RateLimiterSettings{
			Burst:             deps.Config.RateLimitBurst,
			RequestsPerSecond: deps.Config.RateLimitRPS,
			ClientTTL:         deps.Config.RateLimitClientTTL,
		},
		PickupCount:  deps.Config.PickupCount,
		UpdatesLimit: deps.Config.UpdatesLimit,
	})
	if err != nil {
		return Result{}, eris.Wrap(err, "initialising http server")
	}

	var watcher *data.Watcher
	if deps.Config.WatchEnabled() {
		watcher, err = data.NewWatcher(deps.Config.DataDir, store, deps.Logger, data.DefaultDebounce)
		if err != nil {
			httpServer.Close()
			return Result{}, eris.Wrap(err, "watching data directory")
		}
	}

	cleanup := func() error {
		httpServer.Close()
		if watcher != nil {
			return watcher.Close()
		}
		return nil
	}

	return Result{
		Store:      store,
		Showcase:   service,
		HTTPServer: httpServer,
		Watcher:    watcher,
		Cleanup:    cleanup,
	}, nil
}
