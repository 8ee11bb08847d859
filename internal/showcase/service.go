// Package showcase assembles the pages of the character catalogue from the
// active data snapshot.
package showcase

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"charapedia/app/internal/catalog"
	"charapedia/app/internal/listing"
	"charapedia/app/internal/metrics"
)

// Service defines the read operations behind every page.
type Service interface {
	Characters(ctx context.Context, query CharacterQuery) (*CharacterListing, error)
	Character(ctx context.Context, code string) (*CharacterDetail, error)
	Exhibition(ctx context.Context, query ExhibitionQuery) (*ExhibitionListing, error)
	Options(ctx context.Context) (*FilterOptions, error)
	Glossary(ctx context.Context) (*Glossary, error)
	OfficialLinks(ctx context.Context) ([]catalog.Platform, error)
	LatestUpdates(ctx context.Context, limit int) ([]UpdateItem, error)
	Pickup(ctx context.Context, n int) ([]PickupItem, error)
	Status() Status
}

// SnapshotProvider exposes the active snapshot. *data.Store implements it.
type SnapshotProvider interface {
	Current() (*catalog.Snapshot, error)
	LastError() error
}

var (
	// ErrCatalogUnavailable indicates no snapshot has been loaded yet.
	ErrCatalogUnavailable = eris.New("catalog data unavailable")
	// ErrCharacterNotFound indicates the requested code is not in the catalogue.
	ErrCharacterNotFound = eris.New("character not found")
	// ErrExhibitionUnavailable indicates the exhibition table failed to load.
	ErrExhibitionUnavailable = eris.New("exhibition data unavailable")
)

const (
	defaultPickupCount  = 3
	defaultUpdatesLimit = 8
)

// Options configures the service.
type Options struct {
	Snapshots SnapshotProvider
	Logger    *logrus.Logger
	SentryHub *sentry.Hub
	Metrics   *metrics.Metrics
	// Random drives the pickup selection. Nil uses the global source.
	Random *rand.Rand
}

type service struct {
	snapshots SnapshotProvider
	logger    *logrus.Logger
	sentryHub *sentry.Hub
	metrics   *metrics.Metrics

	randMu sync.Mutex
	random *rand.Rand

	pages atomic.Pointer[pages]
}

var _ Service = (*service)(nil)

// pages caches the listing pipelines built for one snapshot.
type pages struct {
	snapshot   *catalog.Snapshot
	characters *listing.Pipeline[catalog.Character]
	works      *listing.Pipeline[catalog.Work]

	// reported holds the data problems already sent for this snapshot.
	reported sync.Map
}

// NewService wires the showcase service with its dependencies.
func NewService(opts Options) (Service, error) {
	if opts.Snapshots == nil {
		return nil, eris.New("snapshot provider is required")
	}
	if opts.Logger == nil {
		return nil, eris.New("logger is required")
	}

	return &service{
		snapshots: opts.Snapshots,
		logger:    opts.Logger,
		sentryHub: opts.SentryHub,
		metrics:   opts.Metrics,
		random:    opts.Random,
	}, nil
}

func (s *service) current() (*pages, error) {
	snapshot, err := s.snapshots.Current()
	if err != nil {
		return nil, eris.Wrapf(ErrCatalogUnavailable, "%v", err)
	}

	if cached := s.pages.Load(); cached != nil && cached.snapshot == snapshot {
		return cached, nil
	}

	built := &pages{
		snapshot:   snapshot,
		characters: listing.NewPipeline(snapshot.Index.Characters(), characterProfile(snapshot.Index)),
		works:      listing.NewPipeline(snapshot.Works, workProfile()),
	}
	s.pages.Store(built)
	return built, nil
}

// Status reports whether the catalogue can serve pages.
func (s *service) Status() Status {
	snapshot, err := s.snapshots.Current()
	if err != nil {
		status := Status{}
		if last := s.snapshots.LastError(); last != nil {
			status.Error = last.Error()
		} else {
			status.Error = err.Error()
		}
		return status
	}

	status := Status{
		Ready:           true,
		ExhibitionReady: snapshot.ExhibitionErr == nil,
		LoadedAt:        snapshot.LoadedAt,
		Characters:      len(snapshot.Index.Characters()),
		Works:           len(snapshot.Works),
		ReloadFailing:   s.snapshots.LastError() != nil,
	}
	if snapshot.ExhibitionErr != nil {
		status.Error = snapshot.ExhibitionErr.Error()
	}
	return status
}

func (s *service) shuffle(n int, swap func(i, j int)) {
	if s.random == nil {
		rand.Shuffle(n, swap)
		return
	}

	s.randMu.Lock()
	defer s.randMu.Unlock()
	s.random.Shuffle(n, swap)
}

func (s *service) recordError(fields logrus.Fields, err error, message string) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error()).WithField("component", "showcase")
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}

	if s.sentryHub != nil {
		s.sentryHub.CaptureException(err)
	}
}

// reportOnce records a data problem the first time a snapshot exposes it.
func (s *service) reportOnce(p *pages, key string, fields logrus.Fields, err error, message string) {
	if _, seen := p.reported.LoadOrStore(key, struct{}{}); seen {
		return
	}
	s.recordError(fields, err, message)
}

// Status summarises the health of the active snapshot.
type Status struct {
	Ready           bool      `json:"ready"`
	ExhibitionReady bool      `json:"exhibitionReady"`
	LoadedAt        time.Time `json:"loadedAt,omitempty"`
	Characters      int       `json:"characters"`
	Works           int       `json:"works"`
	ReloadFailing   bool      `json:"reloadFailing"`
	Error           string    `json:"error,omitempty"`
}

func splitValues(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
