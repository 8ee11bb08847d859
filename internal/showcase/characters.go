package showcase

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"charapedia/app/internal/catalog"
	"charapedia/app/internal/color"
	"charapedia/app/internal/listing"
)

func (s *service) Characters(ctx context.Context, query CharacterQuery) (*CharacterListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := s.current()
	if err != nil {
		return nil, err
	}

	mode := selectedMode(characterModes, listing.ModeCode, strings.TrimSpace(query.Sort))
	visible := p.characters.Refresh(query.criteria(), mode)
	s.metrics.ObserveListing("characters", len(visible))

	idx := p.snapshot.Index
	cards := make([]CharacterCard, 0, len(visible))
	for _, c := range visible {
		cards = append(cards, newCharacterCard(idx, c))
	}

	return &CharacterListing{
		Items:   cards,
		Total:   p.characters.Len(),
		Sort:    mode,
		Query:   query,
		Options: characterOptions(idx),
	}, nil
}

func (s *service) Character(ctx context.Context, code string) (*CharacterDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, eris.Wrap(ErrCharacterNotFound, "code is required")
	}

	p, err := s.current()
	if err != nil {
		return nil, err
	}

	snapshot := p.snapshot
	character, ok := snapshot.Index.FindByCode(trimmed)
	if !ok {
		return nil, eris.Wrapf(ErrCharacterNotFound, "code %s", trimmed)
	}

	detail := &CharacterDetail{
		Card:            newCharacterCard(snapshot.Index, *character),
		Theme:           character.Theme,
		Catchcopy:       character.Catchcopy,
		Colors:          normalizedColors(character.Colors),
		ExArc:           arcSlot(snapshot.Index.Arcs(), character.Arc.Ex),
		CoreArc:         arcSlot(snapshot.Index.Arcs(), character.Arc.Core),
		Gallery:         gallerySections(snapshot.Galleries[character.Code]),
		Synopsis:        strings.TrimSpace(snapshot.Synopses[character.Code].Summary),
		ExhibitionReady: snapshot.ExhibitionErr == nil,
	}
	if len(detail.Gallery) == 0 {
		detail.GalleryNotice = EmptyGalleryNotice
	}

	works := listing.Refresh(snapshot.WorksByCode(character.Code), workProfile(), listing.Criteria{}, listing.ModePublishedAsc)
	detail.Works = make([]WorkCard, 0, len(works))
	for _, w := range works {
		detail.Works = append(detail.Works, newWorkCard(snapshot.Index, w))
	}

	return detail, nil
}

func (s *service) Options(ctx context.Context) (*FilterOptions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := s.current()
	if err != nil {
		return nil, err
	}

	options := characterOptions(p.snapshot.Index)
	return &options, nil
}

// characterOptions offers the series and arcs actually used by some character
// that also exist in their tables, plus every colour family.
func characterOptions(idx *catalog.Index) FilterOptions {
	options := FilterOptions{
		Series: seriesOptions(idx),
		Colors: colorOptions(),
	}

	for _, code := range idx.UsedArcCodes() {
		arc, ok := idx.Arcs().Get(code)
		if !ok {
			continue
		}
		options.Arcs = append(options.Arcs, Option{Value: code, Label: arc.Label()})
	}

	return options
}

func seriesOptions(idx *catalog.Index) []Option {
	var options []Option
	for _, key := range idx.UsedSeriesKeys() {
		series, ok := idx.Series()[key]
		if !ok {
			continue
		}
		options = append(options, Option{Value: key, Label: series.NameJa})
	}
	return options
}

func colorOptions() []Option {
	options := make([]Option, 0, len(color.Families))
	for _, family := range color.Families {
		options = append(options, Option{Value: string(family), Label: family.Label()})
	}
	return options
}

var galleryGroups = []struct {
	key     string
	heading string
	items   func(catalog.Gallery) []catalog.GalleryItem
}{
	{key: "music", heading: "Music", items: func(g catalog.Gallery) []catalog.GalleryItem { return g.Music }},
	{key: "novel", heading: "Novel / Text", items: func(g catalog.Gallery) []catalog.GalleryItem { return g.Novel }},
	{key: "video", heading: "Movie / PV", items: func(g catalog.Gallery) []catalog.GalleryItem { return g.Video }},
}

func gallerySections(gallery catalog.Gallery) []GallerySection {
	var sections []GallerySection
	for _, group := range galleryGroups {
		items := group.items(gallery)
		if len(items) == 0 {
			continue
		}
		sections = append(sections, GallerySection{Key: group.key, Heading: group.heading, Items: items})
	}
	return sections
}

func normalizedColors(colors []string) []string {
	out := make([]string, 0, len(colors))
	for _, raw := range colors {
		if hex, ok := color.Normalize(raw); ok {
			out = append(out, hex)
		}
	}
	return out
}
