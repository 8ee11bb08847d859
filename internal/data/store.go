package data

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"charapedia/app/internal/catalog"
	"charapedia/app/internal/metrics"
)

// ErrNotLoaded is returned by Store.Current before the first successful load.
var ErrNotLoaded = eris.New("catalog not loaded")

// SnapshotLoader produces catalog snapshots. *Loader implements it.
type SnapshotLoader interface {
	Load(ctx context.Context) (*catalog.Snapshot, error)
}

// Store holds the active snapshot. Readers never block; reloads are serialized
// and a failed reload keeps the last good snapshot.
type Store struct {
	loader  SnapshotLoader
	logger  *logrus.Logger
	hub     *sentry.Hub
	metrics *metrics.Metrics
	now     func() time.Time

	current atomic.Pointer[catalog.Snapshot]
	lastErr atomic.Pointer[error]
	mu      sync.Mutex
}

// StoreOptions configures a Store.
type StoreOptions struct {
	Loader    SnapshotLoader
	Logger    *logrus.Logger
	SentryHub *sentry.Hub
	Metrics   *metrics.Metrics
	Now       func() time.Time
}

// NewStore builds an empty store. Call Reload to populate it.
func NewStore(opts StoreOptions) (*Store, error) {
	if opts.Loader == nil {
		return nil, eris.New("snapshot loader is required")
	}
	if opts.Logger == nil {
		return nil, eris.New("logger is required")
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Store{
		loader:  opts.Loader,
		logger:  opts.Logger,
		hub:     opts.SentryHub,
		metrics: opts.Metrics,
		now:     now,
	}, nil
}

// Current returns the active snapshot.
func (s *Store) Current() (*catalog.Snapshot, error) {
	if snapshot := s.current.Load(); snapshot != nil {
		return snapshot, nil
	}
	if last := s.LastError(); last != nil {
		return nil, eris.Wrapf(ErrNotLoaded, "last load failed: %v", last)
	}
	return nil, ErrNotLoaded
}

// LastError returns the error of the most recent load, or nil when it succeeded.
func (s *Store) LastError() error {
	if p := s.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Reload loads a fresh snapshot and swaps it in on success.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := s.now()
	snapshot, err := s.loader.Load(ctx)
	s.metrics.ObserveReload(err, s.now().Sub(started))

	if err != nil {
		s.lastErr.Store(&err)
		fields := logrus.Fields{"component": "data.store"}
		if previous := s.current.Load(); previous != nil {
			fields["serving_loaded_at"] = previous.LoadedAt.Format(time.RFC3339)
		}
		recordError(s.logger, s.hub, fields, err, "catalog reload failed")
		return eris.Wrap(err, "reloading catalog")
	}

	s.lastErr.Store(nil)
	s.current.Store(snapshot)
	s.publishSizes(snapshot)
	return nil
}

func (s *Store) publishSizes(snapshot *catalog.Snapshot) {
	s.metrics.SetCatalogSize("characters", len(snapshot.Index.Characters()))
	s.metrics.SetCatalogSize("series", len(snapshot.Index.Series()))
	s.metrics.SetCatalogSize("arcs", snapshot.Index.Arcs().Len())
	s.metrics.SetCatalogSize("works", len(snapshot.Works))
	s.metrics.SetCatalogSize("updates", len(snapshot.Updates))
}

func recordError(logger *logrus.Logger, hub *sentry.Hub, fields logrus.Fields, err error, message string) {
	if err == nil {
		return
	}

	if fields == nil {
		fields = logrus.Fields{}
	}

	logger.WithFields(fields).WithError(err).Error(message)

	if hub != nil {
		hub.WithScope(func(scope *sentry.Scope) {
			for key, value := range fields {
				scope.SetExtra(key, value)
			}
			hub.CaptureException(err)
		})
	}
}
