package log

import (
	"context"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	sentrylogrus "github.com/getsentry/sentry-go/logrus"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

const sentryFlushTimeout = 2 * time.Second

// SentrySettings configures error reporting. An empty DSN disables it.
type SentrySettings struct {
	DSN         string
	Environment string
	Release     string
	// SampleRate is the share of error events sent; zero sends all of them.
	SampleRate float64
}

// InitSentry returns the hub shared by the HTTP layer and the catalogue
// services, and forwards error-level log entries to the same client.
func InitSentry(logger *logrus.Logger, settings SentrySettings) (*sentry.Hub, func(), error) {
	dsn := strings.TrimSpace(settings.DSN)
	if dsn == "" {
		return nil, func() {}, nil
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: settings.Environment,
		Release:     settings.Release,
		ServerName:  "charapedia",
		SampleRate:  settings.SampleRate,
		BeforeSend:  dropCancelledRequests,
	})
	if err != nil {
		return nil, nil, eris.Wrap(err, "initializing sentry client")
	}

	scope := sentry.NewScope()
	scope.SetTag("service", "charapedia")
	hub := sentry.NewHub(client, scope)

	logger.AddHook(sentrylogrus.NewLogHookFromClient([]logrus.Level{
		logrus.ErrorLevel,
		logrus.FatalLevel,
		logrus.PanicLevel,
	}, client))

	return hub, func() { hub.Flush(sentryFlushTimeout) }, nil
}

// dropCancelledRequests discards events caused by clients going away or
// requests running past their deadline.
func dropCancelledRequests(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
	if hint == nil || hint.OriginalException == nil {
		return event
	}
	if eris.Is(hint.OriginalException, context.Canceled) || eris.Is(hint.OriginalException, context.DeadlineExceeded) {
		return nil
	}
	return event
}
