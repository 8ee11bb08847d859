package showcase

import (
	"context"
	"strings"

	"charapedia/app/internal/catalog"
)

func (s *service) Pickup(ctx context.Context, n int) ([]PickupItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if n <= 0 {
		n = defaultPickupCount
	}

	p, err := s.current()
	if err != nil {
		return nil, err
	}

	snapshot := p.snapshot
	characters := snapshot.Index.Characters()

	var pool []catalog.Character
	for _, c := range characters {
		if pickupSummary(c, snapshot.Synopses) != "" {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, characters...)
	}

	s.shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > n {
		pool = pool[:n]
	}

	items := make([]PickupItem, 0, len(pool))
	for _, c := range pool {
		item := PickupItem{
			Card:    newCharacterCard(snapshot.Index, c),
			Theme:   c.Theme,
			ArcLine: arcLine(snapshot.Index.Arcs(), c.Arc),
		}
		if summary := pickupSummary(c, snapshot.Synopses); summary != "" {
			item.Summary = "〝" + strings.NewReplacer("〝", "", "〟", "").Replace(summary) + "〟"
		}
		items = append(items, item)
	}
	return items, nil
}

// pickupSummary prefers the catchcopy and falls back to the first line of the synopsis.
func pickupSummary(c catalog.Character, synopses map[string]catalog.Synopsis) string {
	if catchcopy := strings.TrimSpace(c.Catchcopy); catchcopy != "" {
		return catchcopy
	}
	summary := synopses[c.Code].Summary
	if strings.TrimSpace(summary) == "" {
		return ""
	}
	first, _, _ := strings.Cut(summary, "\n")
	return strings.TrimSpace(first)
}

func arcLine(arcs catalog.ArcTable, ref catalog.ArcRef) string {
	var parts []string
	for _, code := range ref.Codes() {
		if arc, ok := arcs.Get(code); ok {
			parts = append(parts, arc.Label())
		}
	}
	return strings.Join(parts, " / ")
}
