package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// Format selects how log entries are rendered.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Settings configures NewLogger.
type Settings struct {
	Level  string
	Format Format
	// Output defaults to stderr.
	Output io.Writer
}

// NewLogger constructs a logrus logger with the configured level. The server logs JSON; the CLI logs text.
func NewLogger(settings Settings) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetReportCaller(false)
	logger.SetLevel(logrus.InfoLevel)

	switch settings.Format {
	case FormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.TimeOnly})
	case FormatJSON, "":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		return nil, eris.Errorf("unknown log format: %s", settings.Format)
	}

	if settings.Output != nil {
		logger.SetOutput(settings.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}

	level := strings.TrimSpace(settings.Level)
	if level == "" {
		return logger, nil
	}

	parsedLevel, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, eris.Wrapf(err, "invalid log level: %s", level)
	}

	logger.SetLevel(parsedLevel)
	return logger, nil
}

// Component returns an entry tagged with the emitting component.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}
