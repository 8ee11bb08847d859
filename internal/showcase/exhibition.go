package showcase

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"charapedia/app/internal/listing"
)

func (s *service) Exhibition(ctx context.Context, query ExhibitionQuery) (*ExhibitionListing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := s.current()
	if err != nil {
		return nil, err
	}

	if p.snapshot.ExhibitionErr != nil {
		s.reportOnce(p, "exhibition", nil, p.snapshot.ExhibitionErr, "exhibition table unavailable")
		return nil, eris.Wrapf(ErrExhibitionUnavailable, "%v", p.snapshot.ExhibitionErr)
	}

	criteria := query.criteria()
	if invalidDate(criteria.DateFrom) || invalidDate(criteria.DateTo) {
		s.logger.WithFields(logrus.Fields{
			"component": "showcase",
			"from":      criteria.DateFrom,
			"to":        criteria.DateTo,
		}).Debug("ignoring malformed date bound")
		if invalidDate(criteria.DateFrom) {
			criteria.DateFrom = ""
		}
		if invalidDate(criteria.DateTo) {
			criteria.DateTo = ""
		}
	}

	mode := selectedMode(workModes, listing.ModePublishedAsc, strings.TrimSpace(query.Sort))
	visible := p.works.Refresh(criteria, mode)
	s.metrics.ObserveListing("exhibition", len(visible))

	idx := p.snapshot.Index
	cards := make([]WorkCard, 0, len(visible))
	for _, w := range visible {
		cards = append(cards, newWorkCard(idx, w))
	}

	return &ExhibitionListing{
		Items: cards,
		Total: p.works.Len(),
		Sort:  mode,
		Query: query,
		Options: FilterOptions{
			Series: seriesOptions(idx),
			Colors: colorOptions(),
		},
	}, nil
}

// invalidDate reports a non-empty bound that is not YYYY-MM-DD. Lexical
// comparison only works on that exact layout.
func invalidDate(value string) bool {
	if value == "" {
		return false
	}
	return !isoDate.MatchString(value)
}
