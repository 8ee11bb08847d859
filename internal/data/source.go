package data

import (
	"context"
	"errors"
	"io"
	"io/fs"
	stdhttp "net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// ErrNotFound is returned by a Source when a table does not exist.
var ErrNotFound = eris.New("data file not found")

// Source opens named data files.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Describe() string
}

// DirSource reads tables from a directory tree.
type DirSource struct {
	root string
	fsys fs.FS
}

// NewDirSource reads tables from the directory at root.
func NewDirSource(root string) (*DirSource, error) {
	trimmed := strings.TrimSpace(root)
	if trimmed == "" {
		return nil, eris.New("data directory is required")
	}

	info, err := os.Stat(trimmed)
	if err != nil {
		return nil, eris.Wrapf(err, "inspecting data directory %s", trimmed)
	}
	if !info.IsDir() {
		return nil, eris.Errorf("data path %s is not a directory", trimmed)
	}

	return &DirSource{root: trimmed, fsys: os.DirFS(trimmed)}, nil
}

// NewFSSource reads tables from an arbitrary file system, mostly for tests and embedded data.
func NewFSSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

// Root returns the directory backing the source, or "" when it is not on disk.
func (s *DirSource) Root() string {
	return s.root
}

// Open implements Source.
func (s *DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := s.fsys.Open(path.Clean(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, eris.Wrapf(ErrNotFound, "opening %s", name)
		}
		return nil, eris.Wrapf(err, "opening %s", name)
	}
	return file, nil
}

// Describe implements Source.
func (s *DirSource) Describe() string {
	if s.root == "" {
		return "fs"
	}
	return "dir:" + s.root
}

// HTTPSource fetches tables relative to a base URL, the way the static site fetches its JSON.
type HTTPSource struct {
	base   *url.URL
	client *stdhttp.Client
}

// NewHTTPSource builds a source for baseURL. A nil client gets the given timeout.
func NewHTTPSource(baseURL string, client *stdhttp.Client, timeout time.Duration) (*HTTPSource, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, eris.Wrapf(err, "parsing data base URL %s", baseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, eris.Errorf("data base URL must be http or https, got %q", baseURL)
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	if client == nil {
		client = &stdhttp.Client{Timeout: timeout}
	}

	return &HTTPSource{base: parsed, client: client}, nil
}

// Open implements Source.
func (s *HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	target := s.base.ResolveReference(&url.URL{Path: strings.TrimPrefix(name, "/")})

	req, err := stdhttp.NewRequestWithContext(ctx, stdhttp.MethodGet, target.String(), nil)
	if err != nil {
		return nil, eris.Wrapf(err, "building request for %s", name)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "fetching %s", target)
	}

	switch {
	case resp.StatusCode == stdhttp.StatusNotFound:
		_ = resp.Body.Close()
		return nil, eris.Wrapf(ErrNotFound, "fetching %s", target)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_ = resp.Body.Close()
		return nil, eris.Errorf("fetch failed: %s (%d)", target, resp.StatusCode)
	}

	return resp.Body, nil
}

// Describe implements Source.
func (s *HTTPSource) Describe() string {
	return "http:" + s.base.String()
}
