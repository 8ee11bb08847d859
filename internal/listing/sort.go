package listing

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sorter orders records by one of the page's modes. Every ordering is stable.
type Sorter[T any] struct {
	profile   Profile[T]
	positions map[string]int
	unknown   int
}

// NewSorter remembers the load-order position of every code in original.
// Duplicate codes share the position of their first occurrence.
func NewSorter[T any](profile Profile[T], original []T) Sorter[T] {
	positions := make(map[string]int, len(original))
	for i, record := range original {
		code := profile.code(record)
		if _, seen := positions[code]; seen {
			continue
		}
		positions[code] = i
	}

	return Sorter[T]{
		profile:   profile,
		positions: positions,
		unknown:   len(original),
	}
}

// Apply returns a sorted copy of records.
func (s Sorter[T]) Apply(records []T, mode Mode) []T {
	sorted := append([]T(nil), records...)

	switch s.profile.Resolve(mode) {
	case ModeTitle:
		// Collators keep internal buffers and must not be shared between goroutines.
		collator := collate.New(language.Japanese)
		slices.SortStableFunc(sorted, func(a, b T) int {
			return collator.CompareString(s.profile.sortTitle(a), s.profile.sortTitle(b))
		})
	case ModePublishedAsc:
		slices.SortStableFunc(sorted, func(a, b T) int {
			return cmp.Compare(s.profile.publishedAt(a), s.profile.publishedAt(b))
		})
	case ModePublishedDesc:
		slices.SortStableFunc(sorted, func(a, b T) int {
			return cmp.Compare(s.profile.publishedAt(b), s.profile.publishedAt(a))
		})
	case ModeRawCode:
		slices.SortStableFunc(sorted, func(a, b T) int {
			return cmp.Compare(s.profile.code(a), s.profile.code(b))
		})
	default:
		slices.SortStableFunc(sorted, func(a, b T) int {
			return cmp.Compare(s.position(a), s.position(b))
		})
	}

	return sorted
}

// position falls back to the end of the catalog for records that were not part of the load.
func (s Sorter[T]) position(record T) int {
	if pos, ok := s.positions[s.profile.code(record)]; ok {
		return pos
	}
	return s.unknown
}
