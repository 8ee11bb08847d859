package data

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rotisserie/eris"

	"charapedia/app/internal/catalog"
	"charapedia/app/internal/metrics"
)

type stubLoader struct {
	mu        sync.Mutex
	snapshots []*catalog.Snapshot
	errs      []error
	calls     int
}

func (s *stubLoader) Load(context.Context) (*catalog.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.calls
	s.calls++
	var (
		snapshot *catalog.Snapshot
		err      error
	)
	if i < len(s.snapshots) {
		snapshot = s.snapshots[i]
	}
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return snapshot, err
}

func snapshotWith(codes ...string) *catalog.Snapshot {
	characters := make([]catalog.Character, 0, len(codes))
	for _, code := range codes {
		characters = append(characters, catalog.Character{Code: code, Title: code})
	}
	return &catalog.Snapshot{Index: catalog.NewIndex(characters, nil, catalog.ArcTable{})}
}

func newTestStore(t *testing.T, loader SnapshotLoader) *Store {
	t.Helper()

	store, err := NewStore(StoreOptions{Loader: loader, Logger: silentLogger(), Metrics: metrics.New()})
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	return store
}

func TestStoreCurrentBeforeLoad(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, &stubLoader{})

	if _, err := store.Current(); !eris.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
}

func TestStoreFailedFirstLoadReportsCause(t *testing.T) {
	t.Parallel()

	cause := eris.New("disk on fire")
	store := newTestStore(t, &stubLoader{errs: []error{cause}})

	if err := store.Reload(context.Background()); err == nil {
		t.Fatalf("expected reload error")
	}

	_, err := store.Current()
	if !eris.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	if store.LastError() == nil {
		t.Fatalf("expected last error to be kept")
	}
}

func TestStoreKeepsLastGoodSnapshot(t *testing.T) {
	t.Parallel()

	first := snapshotWith("001")
	loader := &stubLoader{
		snapshots: []*catalog.Snapshot{first, nil, snapshotWith("001", "002")},
		errs:      []error{nil, eris.New("broken json")},
	}
	store := newTestStore(t, loader)

	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("first reload failed: %v", err)
	}
	if err := store.Reload(context.Background()); err == nil {
		t.Fatalf("expected second reload to fail")
	}

	current, err := store.Current()
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	if current != first {
		t.Fatalf("expected previous snapshot to stay active")
	}

	if err := store.Reload(context.Background()); err != nil {
		t.Fatalf("third reload failed: %v", err)
	}
	current, _ = store.Current()
	if len(current.Index.Characters()) != 2 {
		t.Fatalf("expected refreshed snapshot, got %d characters", len(current.Index.Characters()))
	}
	if store.LastError() != nil {
		t.Fatalf("expected last error to clear after success")
	}
}

func TestNewStoreValidatesOptions(t *testing.T) {
	t.Parallel()

	if _, err := NewStore(StoreOptions{Logger: silentLogger()}); err == nil {
		t.Fatalf("expected error without loader")
	}
	if _, err := NewStore(StoreOptions{Loader: &stubLoader{}}); err == nil {
		t.Fatalf("expected error without logger")
	}
}

type signalReloader struct {
	calls chan struct{}
}

func (r *signalReloader) Reload(context.Context) error {
	r.calls <- struct{}{}
	return nil
}

func TestWatcherReloadsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	reloader := &signalReloader{calls: make(chan struct{}, 8)}

	watcher, err := NewWatcher(dir, reloader, silentLogger(), 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher returned error: %v", err)
	}
	t.Cleanup(func() { _ = watcher.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = watcher.Run(ctx) }()

	// Give the goroutine a moment to enter its loop; events are buffered regardless.
	time.Sleep(20 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "characters.json"), []byte("[]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case <-reloader.calls:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected reload after data file change")
	}
}

func TestRelevantFiltersEvents(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "json write", event: fsnotify.Event{Name: "a/characters.json", Op: fsnotify.Write}, want: true},
		{name: "yaml create", event: fsnotify.Event{Name: "series.yaml", Op: fsnotify.Create}, want: true},
		{name: "text write", event: fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}, want: false},
		{name: "chmod", event: fsnotify.Event{Name: "characters.json", Op: fsnotify.Chmod}, want: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := relevant(tc.event); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
