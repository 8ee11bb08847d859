package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// htmlWriter accumulates the first write error so components can emit markup without checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (hw *htmlWriter) raw(parts ...string) {
	for _, part := range parts {
		if hw.err != nil {
			return
		}
		_, hw.err = io.WriteString(hw.w, part)
	}
}

func (hw *htmlWriter) text(value string) {
	hw.raw(templ.EscapeString(value))
}

func (hw *htmlWriter) attr(name, value string) {
	hw.raw(" ", name, `="`)
	hw.text(value)
	hw.raw(`"`)
}

// href writes a URL attribute, replacing unsafe schemes.
func (hw *htmlWriter) href(name, target string) {
	hw.attr(name, string(templ.URL(target)))
}

// element writes <tag class=...>escaped content</tag>.
func (hw *htmlWriter) element(tag, class, content string) {
	hw.raw("<", tag)
	if class != "" {
		hw.attr("class", class)
	}
	hw.raw(">")
	hw.text(content)
	hw.raw("</", tag, ">")
}

func (hw *htmlWriter) render(component templ.Component) {
	if hw.err != nil || component == nil {
		return
	}
	hw.err = component.Render(hw.ctx, hw.w)
}

func component(fn func(hw *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		hw := newWriter(ctx, w)
		fn(hw)
		return hw.err
	})
}

// selectedValues expands repeated and comma separated parameters into a lookup set.
func selectedValues(values []string) map[string]bool {
	selected := map[string]bool{}
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				selected[strings.ToLower(trimmed)] = true
			}
		}
	}
	return selected
}

func isSelected(selected map[string]bool, value string) bool {
	return selected[strings.ToLower(value)]
}
