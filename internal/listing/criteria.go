// Package listing filters and orders record collections for the listing pages.
//
// The same engine serves every page type; a Profile tells it how to read the
// searchable text, series, arcs, colours, publication date and sort keys of a
// record. All operations are pure and return fresh slices.
package listing

import (
	"sort"
	"strings"
)

// Set is an unordered collection of selected option keys.
type Set map[string]struct{}

// NewSet builds a set from values, skipping blanks.
func NewSet(values ...string) Set {
	set := make(Set, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}
	return set
}

// Has reports whether value is selected.
func (s Set) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// Any reports whether at least one of values is selected.
func (s Set) Any(values []string) bool {
	for _, value := range values {
		if s.Has(value) {
			return true
		}
	}
	return false
}

// Values returns the selected keys sorted.
func (s Set) Values() []string {
	values := make([]string, 0, len(s))
	for value := range s {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

// Criteria describes one filter request. Zero values impose no constraint.
type Criteria struct {
	Text          string
	SeriesKeys    Set
	ArcCodes      Set
	ColorFamilies Set
	// DateFrom and DateTo are inclusive YYYY-MM-DD bounds.
	DateFrom string
	DateTo   string
}

// IsEmpty reports whether the criteria would match every record.
func (c Criteria) IsEmpty() bool {
	return c.needle() == "" &&
		len(c.SeriesKeys) == 0 &&
		len(c.ArcCodes) == 0 &&
		len(c.ColorFamilies) == 0 &&
		!c.hasDateRange()
}

func (c Criteria) needle() string {
	return strings.ToLower(strings.TrimSpace(c.Text))
}

func (c Criteria) hasDateRange() bool {
	return strings.TrimSpace(c.DateFrom) != "" || strings.TrimSpace(c.DateTo) != ""
}
