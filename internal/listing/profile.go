package listing

import "slices"

// Mode names a fixed ordering.
type Mode string

const (
	// ModeCode restores load order.
	ModeCode Mode = "code"
	// ModeOriginal is an alias of ModeCode.
	ModeOriginal Mode = "original"
	// ModeTitle orders by reading using Japanese collation.
	ModeTitle Mode = "title"
	// ModePublishedAsc orders by publication date, oldest first.
	ModePublishedAsc Mode = "publishedAt-asc"
	// ModePublishedDesc orders by publication date, newest first.
	ModePublishedDesc Mode = "publishedAt-desc"
	// ModeRawCode orders by the code string itself.
	ModeRawCode Mode = "rawCode"
)

// Profile describes how a record type is searched and sorted. Nil accessors
// mean the record does not carry that attribute.
type Profile[T any] struct {
	// Code identifies a record; load-order positions are keyed by it.
	Code func(T) string
	// Surface lists the searchable text fields.
	Surface func(T) []string
	Series  func(T) string
	Arcs    func(T) []string
	// Colors returns raw hex strings; records without colours count as mono.
	Colors func(T) []string
	// PublishedAt returns a YYYY-MM-DD date or "". A nil accessor disables date filtering.
	PublishedAt func(T) string
	SortTitle   func(T) string

	// Modes lists the orderings the page accepts.
	Modes []Mode
	// DefaultMode is used for empty or unsupported modes.
	DefaultMode Mode
	// Aliases remaps accepted modes before sorting, e.g. a page whose "code" means rawCode.
	Aliases map[Mode]Mode
}

// Resolve returns the ordering that will actually be applied for mode.
func (p Profile[T]) Resolve(mode Mode) Mode {
	if mode == "" || (len(p.Modes) > 0 && !slices.Contains(p.Modes, mode)) {
		mode = p.DefaultMode
	}
	if alias, ok := p.Aliases[mode]; ok {
		mode = alias
	}
	if mode == "" {
		mode = ModeCode
	}
	return mode
}

// Supports reports whether mode is one of the page's accepted orderings.
func (p Profile[T]) Supports(mode Mode) bool {
	return len(p.Modes) == 0 || slices.Contains(p.Modes, mode)
}

func (p Profile[T]) code(record T) string {
	if p.Code == nil {
		return ""
	}
	return p.Code(record)
}

func (p Profile[T]) publishedAt(record T) string {
	if p.PublishedAt == nil {
		return ""
	}
	return p.PublishedAt(record)
}

func (p Profile[T]) sortTitle(record T) string {
	if p.SortTitle == nil {
		return ""
	}
	return p.SortTitle(record)
}
