package catalog

import (
	"sort"
	"strings"
)

// Index holds the characters and reference tables of one load. It is never mutated after construction.
type Index struct {
	characters []Character
	series     SeriesTable
	arcs       ArcTable
}

// NewIndex copies the character slice so callers cannot mutate the index afterwards.
func NewIndex(characters []Character, series SeriesTable, arcs ArcTable) *Index {
	if series == nil {
		series = SeriesTable{}
	}

	return &Index{
		characters: append([]Character(nil), characters...),
		series:     series,
		arcs:       arcs,
	}
}

// Characters returns the characters in load order.
func (idx *Index) Characters() []Character {
	return idx.characters
}

// Series returns the series table.
func (idx *Index) Series() SeriesTable {
	return idx.series
}

// Arcs returns the arc table.
func (idx *Index) Arcs() ArcTable {
	return idx.arcs
}

// FindByCode returns the first character with the given code.
func (idx *Index) FindByCode(code string) (*Character, bool) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, false
	}

	for i := range idx.characters {
		if idx.characters[i].Code == trimmed {
			return &idx.characters[i], true
		}
	}
	return nil, false
}

// UsedSeriesKeys returns the distinct series keys referenced by at least one character, sorted.
func (idx *Index) UsedSeriesKeys() []string {
	seen := make(map[string]struct{})
	for _, c := range idx.characters {
		if c.Series == "" {
			continue
		}
		seen[c.Series] = struct{}{}
	}
	return sortedKeys(seen)
}

// UsedArcCodes returns the distinct arc codes referenced by any ex or core slot, sorted.
func (idx *Index) UsedArcCodes() []string {
	seen := make(map[string]struct{})
	for _, c := range idx.characters {
		for _, code := range c.Arc.Codes() {
			seen[code] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
