package http

import (
	"bytes"
	"context"
	"fmt"
	stdhttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/danielgtaylor/huma/v2"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"charapedia/app/internal/http/templates"
	"charapedia/app/internal/showcase"
)

const (
	htmlContentType      = "text/html; charset=utf-8"
	errorFallbackMessage = "ページを表示できませんでした。時間をおいて再度お試しください。"
)

type htmlResponse struct {
	Status      int
	ContentType string `header:"Content-Type"`
	Location    string `header:"Location"`
	Body        []byte
}

type characterInput struct {
	Code string `path:"code" maxLength:"32" doc:"Character code"`
}

type characterListInput struct {
	Query  string `query:"q" doc:"Case-insensitive text search"`
	Series string `query:"series" doc:"Series keys, comma separated or repeated"`
	Arc    string `query:"arc" doc:"Arc codes, comma separated or repeated"`
	Color  string `query:"color" doc:"Colour families, comma separated or repeated"`
	Sort   string `query:"sort" doc:"code, original or title"`
}

// Resolve folds repeated parameters, as sent by checkbox forms, into one list.
func (i *characterListInput) Resolve(ctx huma.Context) []error {
	u := ctx.URL()
	values := u.Query()
	i.Series = joinValues(values["series"])
	i.Arc = joinValues(values["arc"])
	i.Color = joinValues(values["color"])
	return nil
}

func (i *characterListInput) query() showcase.CharacterQuery {
	return showcase.CharacterQuery{
		Text:   strings.TrimSpace(i.Query),
		Series: splitParam(i.Series),
		Arcs:   splitParam(i.Arc),
		Colors: splitParam(i.Color),
		Sort:   strings.TrimSpace(i.Sort),
	}
}

type exhibitionListInput struct {
	Query  string `query:"q" doc:"Case-insensitive text search"`
	Series string `query:"series" doc:"Series keys, comma separated or repeated"`
	Color  string `query:"color" doc:"Colour families, comma separated or repeated"`
	From   string `query:"from" doc:"Inclusive lower publication date, YYYY-MM-DD"`
	To     string `query:"to" doc:"Inclusive upper publication date, YYYY-MM-DD"`
	Sort   string `query:"sort" doc:"publishedAt-asc, publishedAt-desc, title or code"`
}

// Resolve folds repeated parameters, as sent by checkbox forms, into one list.
func (i *exhibitionListInput) Resolve(ctx huma.Context) []error {
	u := ctx.URL()
	values := u.Query()
	i.Series = joinValues(values["series"])
	i.Color = joinValues(values["color"])
	return nil
}

func (i *exhibitionListInput) query() showcase.ExhibitionQuery {
	return showcase.ExhibitionQuery{
		Text:   strings.TrimSpace(i.Query),
		Series: splitParam(i.Series),
		Colors: splitParam(i.Color),
		From:   strings.TrimSpace(i.From),
		To:     strings.TrimSpace(i.To),
		Sort:   strings.TrimSpace(i.Sort),
	}
}

type healthResponse struct {
	Status int
	Body   struct {
		Status     string     `json:"status"`
		Catalog    string     `json:"catalog"`
		Exhibition string     `json:"exhibition"`
		LoadedAt   *time.Time `json:"loadedAt,omitempty"`
		Characters int        `json:"characters"`
		Works      int        `json:"works"`
		Error      string     `json:"error,omitempty"`
	}
}

func (s *Server) registerHomeRoute() {
	huma.Get(s.api, "/", s.homeHandler, htmlOperation(
		"Character index",
		stdhttp.StatusServiceUnavailable,
		stdhttp.StatusInternalServerError,
	))
}

func (s *Server) registerCharacterRoute() {
	huma.Get(s.api, "/characters/{code}", s.characterHandler, htmlOperation(
		"Character detail",
		stdhttp.StatusNotFound,
		stdhttp.StatusServiceUnavailable,
		stdhttp.StatusInternalServerError,
	))
}

func (s *Server) registerExhibitionRoute() {
	huma.Get(s.api, "/exhibition", s.exhibitionHandler, htmlOperation(
		"Exhibition gallery",
		stdhttp.StatusServiceUnavailable,
		stdhttp.StatusInternalServerError,
	))
}

func (s *Server) registerTermsRoute() {
	huma.Get(s.api, "/terms", s.termsHandler, htmlOperation(
		"Glossary of arcs and series",
		stdhttp.StatusServiceUnavailable,
		stdhttp.StatusInternalServerError,
	))
}

func (s *Server) registerLinksRoute() {
	huma.Get(s.api, "/links", s.linksHandler, htmlOperation(
		"Official accounts",
		stdhttp.StatusServiceUnavailable,
		stdhttp.StatusInternalServerError,
	))
}

func (s *Server) registerHealthRoute() {
	huma.Get(s.api, "/healthz", s.healthHandler, func(op *huma.Operation) {
		op.Summary = "Health check"
	})
}

func (s *Server) homeHandler(ctx context.Context, input *characterListInput) (*htmlResponse, error) {
	result, err := s.showcase.Characters(ctx, input.query())
	if err != nil {
		return s.serviceErrorResponse(ctx, err, "loading character listing", nil)
	}

	data := templates.HomePageData{Listing: result}

	if pickup, err := s.showcase.Pickup(ctx, s.pickupCount); err != nil {
		s.recordError(ctx, err, "selecting pickup characters", nil)
	} else {
		data.Pickup = pickup
	}

	if updates, err := s.showcase.LatestUpdates(ctx, s.updatesLimit); err != nil {
		s.recordError(ctx, err, "loading latest updates", nil)
	} else {
		data.Updates = updates
	}

	return s.renderPage(ctx, stdhttp.StatusOK, templates.HomePage(data), "rendering home page")
}

func (s *Server) characterHandler(ctx context.Context, input *characterInput) (*htmlResponse, error) {
	code := strings.TrimSpace(input.Code)
	detail, err := s.showcase.Character(ctx, code)
	if err != nil {
		return s.serviceErrorResponse(ctx, err, "loading character", logrus.Fields{"code": code})
	}

	return s.renderPage(ctx, stdhttp.StatusOK, templates.CharacterPage(templates.CharacterPageData{Detail: detail}), "rendering character page")
}

func (s *Server) exhibitionHandler(ctx context.Context, input *exhibitionListInput) (*htmlResponse, error) {
	result, err := s.showcase.Exhibition(ctx, input.query())
	if err != nil {
		if eris.Is(err, showcase.ErrExhibitionUnavailable) {
			s.logWarn(ctx, err, "exhibition requested while its table is unavailable")
			page := templates.ExhibitionPage(templates.ExhibitionPageData{ErrorMessage: templates.ExhibitionFailureMessage})
			return s.renderPage(ctx, stdhttp.StatusServiceUnavailable, page, "rendering exhibition error page")
		}
		return s.serviceErrorResponse(ctx, err, "loading exhibition listing", nil)
	}

	return s.renderPage(ctx, stdhttp.StatusOK, templates.ExhibitionPage(templates.ExhibitionPageData{Listing: result}), "rendering exhibition page")
}

func (s *Server) termsHandler(ctx context.Context, _ *struct{}) (*htmlResponse, error) {
	glossary, err := s.showcase.Glossary(ctx)
	if err != nil {
		return s.serviceErrorResponse(ctx, err, "loading glossary", nil)
	}

	return s.renderPage(ctx, stdhttp.StatusOK, templates.TermsPage(templates.TermsPageData{Glossary: glossary}), "rendering terms page")
}

func (s *Server) linksHandler(ctx context.Context, _ *struct{}) (*htmlResponse, error) {
	platforms, err := s.showcase.OfficialLinks(ctx)
	if err != nil {
		return s.serviceErrorResponse(ctx, err, "loading official links", nil)
	}

	return s.renderPage(ctx, stdhttp.StatusOK, templates.LinksPage(templates.LinksPageData{Platforms: platforms}), "rendering links page")
}

func (s *Server) healthHandler(_ context.Context, _ *struct{}) (*healthResponse, error) {
	status := s.showcase.Status()

	resp := &healthResponse{Status: stdhttp.StatusOK}
	resp.Body.Status = "ok"
	resp.Body.Catalog = "ready"
	resp.Body.Exhibition = "ready"
	resp.Body.Characters = status.Characters
	resp.Body.Works = status.Works
	resp.Body.Error = status.Error

	if !status.Ready {
		resp.Status = stdhttp.StatusServiceUnavailable
		resp.Body.Status = "unavailable"
		resp.Body.Catalog = "not loaded"
		resp.Body.Exhibition = "not loaded"
		return resp, nil
	}

	loadedAt := status.LoadedAt
	resp.Body.LoadedAt = &loadedAt

	if !status.ExhibitionReady {
		resp.Body.Status = "degraded"
		resp.Body.Exhibition = "error"
	}
	if status.ReloadFailing {
		resp.Body.Status = "degraded"
		resp.Body.Catalog = "stale"
	}

	return resp, nil
}

func (s *Server) renderPage(ctx context.Context, status int, page templ.Component, action string) (*htmlResponse, error) {
	body, err := renderComponent(ctx, page)
	if err != nil {
		s.recordError(ctx, err, action, nil)
		return s.renderErrorResponse(ctx, stdhttp.StatusInternalServerError, errorFallbackMessage)
	}
	return newHTMLResponse(status, body), nil
}

func renderComponent(ctx context.Context, component templ.Component) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(16 << 10)
	if err := component.Render(ctx, &buf); err != nil {
		return nil, eris.Wrap(err, "rendering component")
	}
	return buf.Bytes(), nil
}

func newHTMLResponse(status int, body []byte) *htmlResponse {
	return &htmlResponse{
		Status:      status,
		ContentType: htmlContentType,
		Body:        body,
	}
}

func htmlOperation(summary string, statuses ...int) func(op *huma.Operation) {
	return func(op *huma.Operation) {
		if summary != "" {
			op.Summary = summary
		}
		if op.Responses == nil {
			op.Responses = map[string]*huma.Response{}
		}

		statusCodes := append([]int{stdhttp.StatusOK}, statuses...)
		for _, status := range statusCodes {
			code := strconv.Itoa(status)
			op.Responses[code] = &huma.Response{
				Description: stdhttp.StatusText(status),
				Content: map[string]*huma.MediaType{
					htmlContentType: {
						Schema: &huma.Schema{Type: "string"},
					},
				},
			}
		}
	}
}

// classifyError maps service errors to a status and a message for the visitor.
func classifyError(err error) (int, string) {
	switch {
	case err == nil:
		return stdhttp.StatusInternalServerError, errorFallbackMessage
	case eris.Is(err, showcase.ErrCatalogUnavailable):
		return stdhttp.StatusServiceUnavailable, templates.DataUnavailableMessage
	case eris.Is(err, showcase.ErrExhibitionUnavailable):
		return stdhttp.StatusServiceUnavailable, templates.ExhibitionFailureMessage
	case eris.Is(err, showcase.ErrCharacterNotFound):
		return stdhttp.StatusNotFound, templates.CharacterMissingMessage
	case eris.Is(err, context.Canceled), eris.Is(err, context.DeadlineExceeded):
		return stdhttp.StatusServiceUnavailable, errorFallbackMessage
	default:
		return stdhttp.StatusInternalServerError, errorFallbackMessage
	}
}

func (s *Server) serviceErrorResponse(ctx context.Context, err error, action string, fields logrus.Fields) (*htmlResponse, error) {
	status, message := classifyError(err)
	if status == stdhttp.StatusNotFound {
		s.logWarn(ctx, err, action)
	} else {
		s.recordError(ctx, err, action, fields)
	}
	return s.renderErrorResponse(ctx, status, message)
}

func (s *Server) renderErrorResponse(ctx context.Context, status int, message string) (*htmlResponse, error) {
	label := fmt.Sprintf("%d %s", status, stdhttp.StatusText(status))
	template := templates.ErrorPage(templates.ErrorPageData{
		StatusLabel: label,
		Message:     message,
	})

	body, err := renderComponent(ctx, template)
	if err != nil {
		s.recordError(ctx, err, "rendering error page", logrus.Fields{"status": status})
		fallback := []byte(fmt.Sprintf("<html><body><h1>%s</h1><p>%s</p></body></html>", label, message))
		return newHTMLResponse(status, fallback), nil
	}

	return newHTMLResponse(status, body), nil
}

func (s *Server) recordError(ctx context.Context, err error, message string, fields logrus.Fields) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if fields != nil {
			entry = entry.WithFields(fields)
		}
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			entry = entry.WithField("request_id", requestID)
		}
		entry.Error(message)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	if s.sentry != nil {
		s.sentry.CaptureException(err)
	}
}

func (s *Server) logWarn(ctx context.Context, err error, message string) {
	if s.logger == nil {
		return
	}
	entry := s.logger.WithField("error", err.Error())
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	entry.Warn(message)
}

func joinValues(values []string) string {
	return strings.Join(values, ",")
}

func splitParam(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
