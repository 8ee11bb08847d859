package showcase

import (
	"cmp"
	"context"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"charapedia/app/internal/catalog"
)

var isoDate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

func (s *service) Glossary(ctx context.Context) (*Glossary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := s.current()
	if err != nil {
		return nil, err
	}

	idx := p.snapshot.Index
	glossary := &Glossary{
		Arcs:   make([]GlossaryArc, 0, idx.Arcs().Len()),
		Series: make([]GlossarySeries, 0, len(idx.Series())),
	}

	for _, code := range idx.Arcs().Codes() {
		arc, _ := idx.Arcs().Get(code)
		title := arc.Name
		if arc.Eng != "" {
			title = arc.Name + "（" + arc.Eng + "）"
		}
		glossary.Arcs = append(glossary.Arcs, GlossaryArc{
			Code:     code,
			Icon:     arc.Icon,
			Title:    title,
			Keywords: arc.Keywords,
		})
	}

	for _, key := range seriesKeysByNumber(idx.Series()) {
		series := idx.Series()[key]
		glossary.Series = append(glossary.Series, GlossarySeries{
			Key:         key,
			Title:       string(series.ID) + "_" + series.Key + " / " + series.NameJa,
			Description: series.Description,
		})
	}

	return glossary, nil
}

// seriesKeysByNumber orders table keys numerically; keys that are not numbers follow in lexical order.
func seriesKeysByNumber(table catalog.SeriesTable) []string {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}

	slices.SortFunc(keys, func(a, b string) int {
		na, errA := strconv.Atoi(a)
		nb, errB := strconv.Atoi(b)
		switch {
		case errA == nil && errB == nil:
			if c := cmp.Compare(na, nb); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		default:
			return cmp.Compare(a, b)
		}
	})
	return keys
}

func (s *service) OfficialLinks(ctx context.Context) ([]catalog.Platform, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := s.current()
	if err != nil {
		return nil, err
	}

	platforms := make([]catalog.Platform, 0, len(p.snapshot.Platforms))
	for _, platform := range p.snapshot.Platforms {
		if strings.TrimSpace(platform.Label()) == "" {
			continue
		}
		platforms = append(platforms, platform)
	}
	return platforms, nil
}

func (s *service) LatestUpdates(ctx context.Context, limit int) ([]UpdateItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultUpdatesLimit
	}

	p, err := s.current()
	if err != nil {
		return nil, err
	}

	updates := make([]catalog.Update, 0, len(p.snapshot.Updates))
	skipped := 0
	for _, update := range p.snapshot.Updates {
		if strings.TrimSpace(update.Date) == "" || strings.TrimSpace(update.Title) == "" {
			skipped++
			continue
		}
		updates = append(updates, update)
	}
	if skipped > 0 {
		s.reportOnce(p, "updates", logrus.Fields{"skipped": skipped},
			eris.Errorf("%d update entries lack a date or title", skipped), "incomplete update entries skipped")
	}

	slices.SortStableFunc(updates, func(a, b catalog.Update) int {
		return cmp.Compare(b.Date, a.Date)
	})
	if len(updates) > limit {
		updates = updates[:limit]
	}

	items := make([]UpdateItem, 0, len(updates))
	for _, update := range updates {
		items = append(items, UpdateItem{
			Date:    displayDate(update.Date),
			ISODate: update.Date,
			Title:   strings.TrimSpace(update.Title),
			URL:     strings.TrimSpace(update.URL),
		})
	}
	return items, nil
}

// displayDate turns YYYY-MM-DD into YYYY.MM.DD and leaves anything else untouched.
func displayDate(value string) string {
	m := isoDate.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return value
	}
	return m[1] + "." + m[2] + "." + m[3]
}
