package http

import (
	"context"
	stdhttp "net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"charapedia/app/internal/showcase"
)

type characterListOutput struct {
	Body *showcase.CharacterListing
}

type characterDetailOutput struct {
	Body *showcase.CharacterDetail
}

type exhibitionListOutput struct {
	Body *showcase.ExhibitionListing
}

type filterOptionsOutput struct {
	Body *showcase.FilterOptions
}

type updatesInput struct {
	Limit int `query:"limit" minimum:"0" maximum:"100" doc:"Maximum number of entries, 0 for the site default"`
}

type updatesOutput struct {
	Body struct {
		Items []showcase.UpdateItem `json:"items"`
	}
}

func (s *Server) registerAPIRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-characters",
		Method:      stdhttp.MethodGet,
		Path:        "/api/characters",
		Summary:     "Filter and sort the character catalogue",
		Tags:        []string{"api"},
	}, s.apiCharactersHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-character",
		Method:      stdhttp.MethodGet,
		Path:        "/api/characters/{code}",
		Summary:     "Character detail with works and gallery",
		Tags:        []string{"api"},
	}, s.apiCharacterHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-exhibition",
		Method:      stdhttp.MethodGet,
		Path:        "/api/exhibition",
		Summary:     "Filter and sort published works",
		Tags:        []string{"api"},
	}, s.apiExhibitionHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-filter-options",
		Method:      stdhttp.MethodGet,
		Path:        "/api/options",
		Summary:     "Series, arc and colour filter choices",
		Tags:        []string{"api"},
	}, s.apiOptionsHandler)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-updates",
		Method:      stdhttp.MethodGet,
		Path:        "/api/updates",
		Summary:     "Latest site updates, newest first",
		Tags:        []string{"api"},
	}, s.apiUpdatesHandler)
}

func (s *Server) apiCharactersHandler(ctx context.Context, input *characterListInput) (*characterListOutput, error) {
	result, err := s.showcase.Characters(ctx, input.query())
	if err != nil {
		return nil, s.apiError(ctx, err, "listing characters", nil)
	}
	return &characterListOutput{Body: result}, nil
}

func (s *Server) apiCharacterHandler(ctx context.Context, input *characterInput) (*characterDetailOutput, error) {
	code := strings.TrimSpace(input.Code)
	detail, err := s.showcase.Character(ctx, code)
	if err != nil {
		return nil, s.apiError(ctx, err, "loading character", logrus.Fields{"code": code})
	}
	return &characterDetailOutput{Body: detail}, nil
}

func (s *Server) apiExhibitionHandler(ctx context.Context, input *exhibitionListInput) (*exhibitionListOutput, error) {
	result, err := s.showcase.Exhibition(ctx, input.query())
	if err != nil {
		return nil, s.apiError(ctx, err, "listing exhibition", nil)
	}
	return &exhibitionListOutput{Body: result}, nil
}

func (s *Server) apiOptionsHandler(ctx context.Context, _ *struct{}) (*filterOptionsOutput, error) {
	options, err := s.showcase.Options(ctx)
	if err != nil {
		return nil, s.apiError(ctx, err, "loading filter options", nil)
	}
	return &filterOptionsOutput{Body: options}, nil
}

func (s *Server) apiUpdatesHandler(ctx context.Context, input *updatesInput) (*updatesOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = s.updatesLimit
	}

	items, err := s.showcase.LatestUpdates(ctx, limit)
	if err != nil {
		return nil, s.apiError(ctx, err, "loading updates", nil)
	}

	out := &updatesOutput{}
	out.Body.Items = items
	if out.Body.Items == nil {
		out.Body.Items = []showcase.UpdateItem{}
	}
	return out, nil
}

// apiError converts a service error into a problem+json response.
func (s *Server) apiError(ctx context.Context, err error, action string, fields logrus.Fields) error {
	status, message := classifyError(err)
	switch status {
	case stdhttp.StatusNotFound:
		s.logWarn(ctx, err, action)
		return huma.Error404NotFound(message)
	case stdhttp.StatusServiceUnavailable:
		s.recordError(ctx, err, action, fields)
		return huma.Error503ServiceUnavailable(message)
	default:
		s.recordError(ctx, err, action, fields)
		return huma.Error500InternalServerError(message)
	}
}
