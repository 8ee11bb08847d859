package templates

import (
	"github.com/a-h/templ"

	"charapedia/app/internal/showcase"
)

// TermsPage renders the arc and series glossary.
func TermsPage(data TermsPageData) templ.Component {
	glossary := data.Glossary
	if glossary == nil {
		glossary = &showcase.Glossary{}
	}

	return Layout(PageMeta{Title: "用語", Active: "/terms"}, component(func(hw *htmlWriter) {
		hw.raw(`<section class="section-card" id="arc-list">`)
		hw.element("h2", "section-title", "アーク")
		hw.raw(`<div class="about-arc-list">`)
		for _, arc := range glossary.Arcs {
			hw.raw(`<div class="info-card about-arc-item"`)
			hw.attr("data-arc", arc.Code)
			hw.raw(`><div class="about-arc-item-header">`)
			hw.element("span", "arc-icon", arc.Icon)
			hw.element("span", "arc-name", arc.Title)
			hw.raw(`</div><div class="about-arc-keywords">`)
			for _, keyword := range arc.Keywords {
				hw.element("span", "about-arc-tag", keyword)
			}
			hw.raw(`</div></div>`)
		}
		hw.raw(`</div></section>`)

		hw.raw(`<section class="section-card" id="series-list">`)
		hw.element("h2", "section-title", "シリーズ")
		hw.raw(`<div class="about-theme-list">`)
		for _, series := range glossary.Series {
			hw.raw(`<div class="info-card about-theme-item">`)
			hw.element("h3", "", series.Title)
			hw.element("p", "about-theme-sub", series.Description)
			hw.raw(`</div>`)
		}
		hw.raw(`</div></section>`)
	}))
}
