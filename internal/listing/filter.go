package listing

import (
	"strings"

	"charapedia/app/internal/color"
)

// Filter selects the records matching a Criteria. Categories are combined with AND,
// values within a category with OR.
type Filter[T any] struct {
	profile Profile[T]
}

// NewFilter builds a filter for the given profile.
func NewFilter[T any](profile Profile[T]) Filter[T] {
	return Filter[T]{profile: profile}
}

// Apply returns the matching records in input order. The input is never modified.
func (f Filter[T]) Apply(records []T, criteria Criteria) []T {
	if criteria.IsEmpty() {
		return append([]T(nil), records...)
	}

	matched := make([]T, 0, len(records))
	for _, record := range records {
		if f.Match(record, criteria) {
			matched = append(matched, record)
		}
	}
	return matched
}

// Match reports whether a single record satisfies every active category.
func (f Filter[T]) Match(record T, criteria Criteria) bool {
	return f.matchText(record, criteria.needle()) &&
		f.matchSeries(record, criteria.SeriesKeys) &&
		f.matchArcs(record, criteria.ArcCodes) &&
		f.matchColors(record, criteria.ColorFamilies) &&
		f.matchDates(record, strings.TrimSpace(criteria.DateFrom), strings.TrimSpace(criteria.DateTo))
}

func (f Filter[T]) matchText(record T, needle string) bool {
	if needle == "" {
		return true
	}

	var fields []string
	if f.profile.Surface != nil {
		fields = f.profile.Surface(record)
	} else {
		fields = []string{f.profile.code(record)}
	}

	haystack := strings.ToLower(strings.Join(fields, " "))
	return strings.Contains(haystack, needle)
}

func (f Filter[T]) matchSeries(record T, selected Set) bool {
	if len(selected) == 0 {
		return true
	}
	if f.profile.Series == nil {
		return false
	}

	series := f.profile.Series(record)
	return series != "" && selected.Has(series)
}

func (f Filter[T]) matchArcs(record T, selected Set) bool {
	if len(selected) == 0 {
		return true
	}
	if f.profile.Arcs == nil {
		return false
	}
	return selected.Any(f.profile.Arcs(record))
}

func (f Filter[T]) matchColors(record T, selected Set) bool {
	if len(selected) == 0 {
		return true
	}

	var colors []string
	if f.profile.Colors != nil {
		colors = f.profile.Colors(record)
	}

	for _, family := range color.FamiliesOf(colors) {
		if selected.Has(string(family)) {
			return true
		}
	}
	return false
}

func (f Filter[T]) matchDates(record T, from, to string) bool {
	if f.profile.PublishedAt == nil || (from == "" && to == "") {
		return true
	}

	published := f.profile.publishedAt(record)
	if published == "" {
		return false
	}
	if from != "" && published < from {
		return false
	}
	if to != "" && published > to {
		return false
	}
	return true
}
