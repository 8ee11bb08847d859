package data

import (
	"context"
	"encoding/json"
	"io"
	"path"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"charapedia/app/internal/catalog"
	applog "charapedia/app/internal/log"
)

// ErrRequiredTable indicates a table the listing pages cannot work without failed to load.
var ErrRequiredTable = eris.New("required data table unavailable")

const maxTableBytes = 32 << 20

// Files names every table relative to the source root. Names ending in .yaml or .yml are decoded as YAML.
type Files struct {
	Characters    string
	Series        string
	Arcs          string
	Exhibitions   string
	Links         string
	OfficialLinks string
	Updates       string
	Synopsis      string
}

// DefaultFiles returns the file names used by the published site.
func DefaultFiles() Files {
	return Files{
		Characters:    "characters.json",
		Series:        "series.json",
		Arcs:          "arcList.json",
		Exhibitions:   "exhibitions.json",
		Links:         "links.json",
		OfficialLinks: "officialLinks.json",
		Updates:       "updates.json",
		Synopsis:      "synopsis.json",
	}
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	Source Source
	Files  Files
	Logger *logrus.Logger
	Now    func() time.Time
}

// Loader fetches every table and assembles a catalog snapshot.
type Loader struct {
	source Source
	files  Files
	logger *logrus.Logger
	now    func() time.Time
}

// NewLoader validates the options. Empty file names fall back to DefaultFiles.
func NewLoader(opts LoaderOptions) (*Loader, error) {
	if opts.Source == nil {
		return nil, eris.New("data source is required")
	}

	files := opts.Files
	defaults := DefaultFiles()
	fillDefault(&files.Characters, defaults.Characters)
	fillDefault(&files.Series, defaults.Series)
	fillDefault(&files.Arcs, defaults.Arcs)
	fillDefault(&files.Exhibitions, defaults.Exhibitions)
	fillDefault(&files.Links, defaults.Links)
	fillDefault(&files.OfficialLinks, defaults.OfficialLinks)
	fillDefault(&files.Updates, defaults.Updates)
	fillDefault(&files.Synopsis, defaults.Synopsis)

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Loader{
		source: opts.Source,
		files:  files,
		logger: opts.Logger,
		now:    now,
	}, nil
}

// Load reads all tables concurrently. Characters, series and arcs must all
// succeed; otherwise no snapshot is returned. The exhibition table and the
// optional tables never abort the load.
func (l *Loader) Load(ctx context.Context) (*catalog.Snapshot, error) {
	var (
		characters []catalog.Character
		series     catalog.SeriesTable
		arcs       catalog.ArcTable

		works       catalog.WorkList
		worksErr    error
		galleries   map[string]catalog.Gallery
		platforms   []catalog.Platform
		updates     []catalog.Update
		synopses    map[string]catalog.Synopsis
		startedLoad = l.now()
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error { return l.required(groupCtx, l.files.Characters, &characters) })
	group.Go(func() error { return l.required(groupCtx, l.files.Series, &series) })
	group.Go(func() error { return l.required(groupCtx, l.files.Arcs, &arcs) })

	// Optional tables use the parent context so a required failure does not
	// turn into a cascade of cancellation warnings.
	group.Go(func() error {
		worksErr = l.decode(ctx, l.files.Exhibitions, &works)
		return nil
	})
	group.Go(func() error {
		loadOptional(ctx, l, l.files.Links, &galleries)
		return nil
	})
	group.Go(func() error {
		loadOptional(ctx, l, l.files.OfficialLinks, &platforms)
		return nil
	})
	group.Go(func() error {
		loadOptional(ctx, l, l.files.Updates, &updates)
		return nil
	})
	group.Go(func() error {
		loadOptional(ctx, l, l.files.Synopsis, &synopses)
		return nil
	})

	if err := group.Wait(); err != nil {
		l.log(logrus.ErrorLevel, logrus.Fields{"source": l.source.Describe(), "error": err.Error()}, "catalog load failed")
		return nil, err
	}

	index := catalog.NewIndex(characters, series, arcs)
	l.warnDuplicateCodes(index)

	snapshot := &catalog.Snapshot{
		Index:     index,
		Galleries: nonNilMap(galleries),
		Platforms: platforms,
		Updates:   updates,
		Synopses:  nonNilMap(synopses),
		LoadedAt:  l.now(),
	}

	if worksErr != nil {
		snapshot.ExhibitionErr = eris.Wrapf(worksErr, "loading %s", l.files.Exhibitions)
		l.log(logrus.WarnLevel, logrus.Fields{"file": l.files.Exhibitions, "error": worksErr.Error()}, "exhibition table unavailable")
	} else {
		snapshot.Works = make([]catalog.Work, 0, len(works))
		for _, entry := range works {
			snapshot.Works = append(snapshot.Works, catalog.ResolveWork(index, entry))
		}
	}

	l.log(logrus.InfoLevel, logrus.Fields{
		"source":      l.source.Describe(),
		"characters":  len(index.Characters()),
		"series":      len(index.Series()),
		"arcs":        index.Arcs().Len(),
		"works":       len(snapshot.Works),
		"duration_ms": float64(l.now().Sub(startedLoad).Microseconds()) / 1000,
	}, "catalog loaded")

	return snapshot, nil
}

func (l *Loader) required(ctx context.Context, name string, target any) error {
	if err := l.decode(ctx, name, target); err != nil {
		return eris.Wrapf(ErrRequiredTable, "%s: %v", name, err)
	}
	return nil
}

// loadOptional assigns target only when the whole table decodes, so a
// malformed table leaves the empty default in place.
func loadOptional[T any](ctx context.Context, l *Loader, name string, target *T) {
	var decoded T
	err := l.decode(ctx, name, &decoded)
	if err == nil {
		*target = decoded
		return
	}

	fields := logrus.Fields{"file": name}
	if eris.Is(err, ErrNotFound) {
		l.log(logrus.DebugLevel, fields, "optional table missing")
		return
	}
	fields["error"] = err.Error()
	l.log(logrus.WarnLevel, fields, "optional table unavailable, using empty default")
}

func (l *Loader) decode(ctx context.Context, name string, target any) error {
	reader, err := l.source.Open(ctx, name)
	if err != nil {
		return err
	}
	defer reader.Close()

	raw, err := io.ReadAll(io.LimitReader(reader, maxTableBytes+1))
	if err != nil {
		return eris.Wrapf(err, "reading %s", name)
	}
	if len(raw) > maxTableBytes {
		return eris.Errorf("%s exceeds %d bytes", name, maxTableBytes)
	}

	return Decode(name, raw, target)
}

// Decode unmarshals raw into target, choosing YAML or JSON by the file extension of name.
func Decode(name string, raw []byte, target any) error {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, target); err != nil {
			return eris.Wrapf(err, "decoding %s", name)
		}
	default:
		if err := json.Unmarshal(raw, target); err != nil {
			return eris.Wrapf(err, "decoding %s", name)
		}
	}
	return nil
}

func (l *Loader) warnDuplicateCodes(index *catalog.Index) {
	seen := make(map[string]struct{}, len(index.Characters()))
	for _, c := range index.Characters() {
		if _, dup := seen[c.Code]; dup {
			l.log(logrus.WarnLevel, logrus.Fields{"code": c.Code}, "duplicate character code, lookups use the first entry")
			continue
		}
		seen[c.Code] = struct{}{}
	}
}

func (l *Loader) log(level logrus.Level, fields logrus.Fields, message string) {
	if l.logger == nil {
		return
	}
	entry := applog.Component(l.logger, "data.loader")
	if len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	entry.Log(level, message)
}

func fillDefault(value *string, fallback string) {
	if strings.TrimSpace(*value) == "" {
		*value = fallback
	}
}

func nonNilMap[V any](m map[string]V) map[string]V {
	if m == nil {
		return map[string]V{}
	}
	return m
}
