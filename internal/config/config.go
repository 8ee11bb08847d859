package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
)

// Config holds runtime configuration values for the Charapedia server.
type Config struct {
	DataDir          string        `env:"DATA_DIR" envDefault:"./data"`
	DataBaseURL      string        `env:"DATA_BASE_URL"`
	DataWatch        bool          `env:"DATA_WATCH" envDefault:"false"`
	DataFetchTimeout time.Duration `env:"DATA_FETCH_TIMEOUT" envDefault:"10s"`
	AssetsDir        string        `env:"ASSETS_DIR" envDefault:"./public"`

	ServerPort    int           `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	SentryDSN        string  `env:"SENTRY_DSN"`
	SentrySampleRate float64 `env:"SENTRY_SAMPLE_RATE" envDefault:"1"`
	Environment   string        `env:"ENV" envDefault:"development"`
	ShutdownGrace time.Duration `env:"SHUTDOWN_GRACE" envDefault:"10s"`

	RateLimitRPS       float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
	RateLimitClientTTL time.Duration `env:"RATE_LIMIT_CLIENT_TTL" envDefault:"10m"`

	PickupCount  int `env:"PICKUP_COUNT" envDefault:"3"`
	UpdatesLimit int `env:"UPDATES_LIMIT" envDefault:"8"`
}

// Load reads configuration values from environment variables, applying defaults where necessary.
func Load() (*Config, error) {
	return LoadFrom(env.ToMap(os.Environ()))
}

// LoadFrom parses configuration from vars instead of the process environment.
// Empty values count as unset.
func LoadFrom(vars map[string]string) (*Config, error) {
	present := make(map[string]string, len(vars))
	for key, value := range vars {
		if strings.TrimSpace(value) != "" {
			present[key] = value
		}
	}

	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: present})
	if err != nil {
		return nil, eris.Wrap(err, "parsing environment")
	}

	cfg.DataDir = strings.TrimSpace(cfg.DataDir)
	cfg.DataBaseURL = strings.TrimSpace(cfg.DataBaseURL)
	cfg.AssetsDir = strings.TrimSpace(cfg.AssetsDir)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.ServerPort <= 0 || c.ServerPort > 65535:
		return eris.Errorf("invalid SERVER_PORT value: %d", c.ServerPort)
	case c.DataBaseURL == "" && c.DataDir == "":
		return eris.New("either DATA_DIR or DATA_BASE_URL must be set")
	case c.DataFetchTimeout <= 0:
		return eris.Errorf("invalid DATA_FETCH_TIMEOUT value: %s", c.DataFetchTimeout)
	case c.ShutdownGrace < 0:
		return eris.Errorf("invalid SHUTDOWN_GRACE value: %s", c.ShutdownGrace)
	case c.RateLimitRPS <= 0:
		return eris.Errorf("invalid RATE_LIMIT_RPS value: %v", c.RateLimitRPS)
	case c.RateLimitBurst <= 0:
		return eris.Errorf("invalid RATE_LIMIT_BURST value: %d", c.RateLimitBurst)
	case c.RateLimitClientTTL <= 0:
		return eris.Errorf("invalid RATE_LIMIT_CLIENT_TTL value: %s", c.RateLimitClientTTL)
	case c.PickupCount < 0:
		return eris.Errorf("invalid PICKUP_COUNT value: %d", c.PickupCount)
	case c.SentrySampleRate < 0 || c.SentrySampleRate > 1:
		return eris.Errorf("invalid SENTRY_SAMPLE_RATE value: %v", c.SentrySampleRate)
	case c.UpdatesLimit < 0:
		return eris.Errorf("invalid UPDATES_LIMIT value: %d", c.UpdatesLimit)
	}
	return nil
}

// WatchEnabled reports whether file watching applies; remote data cannot be watched.
func (c *Config) WatchEnabled() bool {
	return c.DataWatch && c.DataBaseURL == ""
}
