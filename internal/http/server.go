package http

import (
	stdhttp "net/http"
	"os"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"charapedia/app/internal/metrics"
	"charapedia/app/internal/showcase"
)

// Options configures the HTTP server wiring.
type Options struct {
	Showcase    showcase.Service
	Logger      *logrus.Logger
	SentryHub   *sentry.Hub
	Metrics     *metrics.Metrics
	RateLimiter RateLimiterSettings
	// AssetsDir is served under /images/. Empty disables static assets.
	AssetsDir    string
	PickupCount  int
	UpdatesLimit int
}

// RateLimiterSettings configures the HTTP rate limiter behaviour.
type RateLimiterSettings struct {
	RequestsPerSecond float64
	Burst             int
	ClientTTL         time.Duration
}

// Server wires the HTTP transport layer via Huma and templ components.
type Server struct {
	api          huma.API
	mux          *stdhttp.ServeMux
	showcase     showcase.Service
	logger       *logrus.Logger
	sentry       *sentry.Hub
	metrics      *metrics.Metrics
	rateLimiter  *RateLimiter
	assetsDir    string
	pickupCount  int
	updatesLimit int
}

// NewServer constructs the HTTP server.
func NewServer(opts Options) (*Server, error) {
	if opts.Showcase == nil {
		return nil, eris.New("showcase service is required")
	}
	if opts.Logger == nil {
		return nil, eris.New("logger is required")
	}

	assetsDir := strings.TrimSpace(opts.AssetsDir)
	if assetsDir != "" {
		info, err := os.Stat(assetsDir)
		if err != nil {
			return nil, eris.Wrapf(err, "inspecting assets directory %s", assetsDir)
		}
		if !info.IsDir() {
			return nil, eris.Errorf("assets path %s is not a directory", assetsDir)
		}
	}

	mux := stdhttp.NewServeMux()
	config := huma.DefaultConfig("Charapedia", "1.0.0")

	api := humago.New(mux, config)

	srv := &Server{
		api:          api,
		mux:          mux,
		showcase:     opts.Showcase,
		logger:       opts.Logger,
		sentry:       opts.SentryHub,
		metrics:      opts.Metrics,
		assetsDir:    assetsDir,
		pickupCount:  opts.PickupCount,
		updatesLimit: opts.UpdatesLimit,
	}

	settings := opts.RateLimiter
	if settings.Burst <= 0 {
		return nil, eris.New("rate limiter burst must be greater than zero")
	}
	if settings.RequestsPerSecond <= 0 {
		return nil, eris.New("rate limiter requests per second must be greater than zero")
	}
	if settings.ClientTTL <= 0 {
		return nil, eris.New("rate limiter client TTL must be greater than zero")
	}

	srv.rateLimiter = NewRateLimiter(settings.Burst, settings.RequestsPerSecond, settings.ClientTTL)

	srv.registerMiddlewares()
	srv.registerRoutes()

	return srv, nil
}

// Handler exposes the underlying HTTP handler for wiring into the application.
func (s *Server) Handler() stdhttp.Handler {
	return s.mux
}

// API exposes the underlying Huma API instance.
func (s *Server) API() huma.API {
	return s.api
}

// Close releases background resources.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

func (s *Server) registerMiddlewares() {
	s.api.UseMiddleware(
		s.sentryMiddleware(),
		s.recoveryMiddleware(),
		s.requestIDMiddleware(),
		s.metricsMiddleware(),
		s.rateLimitMiddleware(),
		s.loggingMiddleware(),
	)
}

func (s *Server) registerRoutes() {
	if s.assetsDir != "" {
		assets := stdhttp.StripPrefix("/images/", stdhttp.FileServer(stdhttp.Dir(s.assetsDir)))
		s.mux.Handle("GET /images/", assets)
		s.mux.Handle("HEAD /images/", assets)
	}
	if registry := s.metrics.Registry(); registry != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	s.registerHomeRoute()
	s.registerCharacterRoute()
	s.registerExhibitionRoute()
	s.registerTermsRoute()
	s.registerLinksRoute()
	s.registerAPIRoutes()
	s.registerHealthRoute()
}

func (s *Server) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.mux.ServeHTTP(w, r)
}
