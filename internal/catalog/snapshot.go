package catalog

import "time"

// Snapshot bundles every table of one successful load. Snapshots are read-only and shared between requests.
type Snapshot struct {
	Index     *Index
	Works     []Work
	Galleries map[string]Gallery
	Platforms []Platform
	Updates   []Update
	Synopses  map[string]Synopsis
	LoadedAt  time.Time

	// ExhibitionErr is set when the exhibition table failed to load; Works is empty in that case.
	ExhibitionErr error
}

// WorksByCode returns the works of one character in table order.
func (s *Snapshot) WorksByCode(code string) []Work {
	if s == nil || code == "" {
		return nil
	}

	var works []Work
	for _, work := range s.Works {
		if work.Code == code {
			works = append(works, work)
		}
	}
	return works
}
