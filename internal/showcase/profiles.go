package showcase

import (
	"slices"

	"charapedia/app/internal/catalog"
	"charapedia/app/internal/listing"
)

var (
	characterModes = []listing.Mode{listing.ModeCode, listing.ModeOriginal, listing.ModeTitle}
	workModes      = []listing.Mode{listing.ModePublishedAsc, listing.ModePublishedDesc, listing.ModeTitle, listing.ModeCode}
)

// characterProfile searches code, title, reading, colour label, series and arcs.
func characterProfile(idx *catalog.Index) listing.Profile[catalog.Character] {
	return listing.Profile[catalog.Character]{
		Code: func(c catalog.Character) string { return c.Code },
		Surface: func(c catalog.Character) []string {
			fields := []string{c.Code, c.Title, c.TitleYomi, c.MainColorLabel}
			if c.Series != "" {
				fields = append(fields, c.Series, idx.Series().Name(c.Series))
			}
			for _, code := range c.Arc.Codes() {
				fields = append(fields, code)
				if arc, ok := idx.Arcs().Get(code); ok {
					fields = append(fields, arc.Name)
				}
			}
			return fields
		},
		Series:      func(c catalog.Character) string { return c.Series },
		Arcs:        func(c catalog.Character) []string { return c.Arc.Codes() },
		Colors:      func(c catalog.Character) []string { return c.Colors },
		SortTitle:   func(c catalog.Character) string { return c.SortTitle() },
		Modes:       characterModes,
		DefaultMode: listing.ModeCode,
	}
}

// workProfile searches code, date, slug and the attributed character.
// "code" on the exhibition page sorts by the code string.
func workProfile() listing.Profile[catalog.Work] {
	return listing.Profile[catalog.Work]{
		Code: func(w catalog.Work) string { return w.Code },
		Surface: func(w catalog.Work) []string {
			fields := []string{w.Code, w.PublishedAt, w.Slug}
			if w.Character != nil {
				fields = append(fields, w.Character.Title, w.Character.TitleYomi, w.Character.MainColorLabel)
			}
			return fields
		},
		Series: func(w catalog.Work) string { return w.Series },
		Colors: func(w catalog.Work) []string {
			if w.Character == nil {
				return nil
			}
			return w.Character.Colors
		},
		PublishedAt: func(w catalog.Work) string { return w.PublishedAt },
		SortTitle: func(w catalog.Work) string {
			if w.Character != nil {
				if title := w.Character.SortTitle(); title != "" {
					return title
				}
			}
			return w.Slug
		},
		Modes:       workModes,
		DefaultMode: listing.ModePublishedAsc,
		Aliases:     map[listing.Mode]listing.Mode{listing.ModeCode: listing.ModeRawCode},
	}
}

// selectedMode is the mode a page reports back to its sort control.
func selectedMode(modes []listing.Mode, fallback listing.Mode, requested string) listing.Mode {
	mode := listing.Mode(requested)
	if mode == "" || !slices.Contains(modes, mode) {
		return fallback
	}
	return mode
}
