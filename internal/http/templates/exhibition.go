package templates

import (
	"github.com/a-h/templ"

	"charapedia/app/internal/listing"
	"charapedia/app/internal/showcase"
)

var workSorts = []sortChoice{
	{Mode: listing.ModePublishedAsc, Label: "公開日（古い順）"},
	{Mode: listing.ModePublishedDesc, Label: "公開日（新しい順）"},
	{Mode: listing.ModeTitle, Label: "よみ順"},
	{Mode: listing.ModeCode, Label: "コード順"},
}

// ExhibitionPage renders the gallery of works with its filter panel.
func ExhibitionPage(data ExhibitionPageData) templ.Component {
	return Layout(PageMeta{Title: "展示", Active: "/exhibition"}, component(func(hw *htmlWriter) {
		if data.Listing == nil {
			message := data.ErrorMessage
			if message == "" {
				message = ExhibitionFailureMessage
			}
			hw.raw(`<section class="section-card">`)
			hw.element("p", "error-state", message)
			hw.raw(`</section>`)
			return
		}

		result := data.Listing
		writeExhibitionFilter(hw, result)

		hw.raw(`<section class="section-card"><p class="result-count">`)
		hw.text(countLabel(len(result.Items), result.Total))
		hw.raw(`</p>`)
		if len(result.Items) == 0 {
			hw.element("p", "empty-state", NoWorksMessage)
		} else {
			hw.raw(`<div id="exhibit-list" class="exhibit-list">`)
			for _, work := range result.Items {
				writeWorkCard(hw, work)
			}
			hw.raw(`</div>`)
		}
		hw.raw(`</section>`)
	}))
}

func writeExhibitionFilter(hw *htmlWriter, data *showcase.ExhibitionListing) {
	hw.raw(`<form class="search-panel" method="get" action="/exhibition">`)
	writeTextInput(hw, data.Query.Text)
	writeChipGroup(hw, "シリーズ", "series", data.Options.Series, selectedValues(data.Query.Series))
	writeColorGroup(hw, data.Options.Colors, selectedValues(data.Query.Colors))

	hw.raw(`<fieldset class="filter-group filter-dates">`)
	hw.element("legend", "", "公開日")
	hw.raw(`<input type="date" name="from"`)
	hw.attr("value", data.Query.From)
	hw.raw(`> 〜 <input type="date" name="to"`)
	hw.attr("value", data.Query.To)
	hw.raw(`></fieldset>`)

	writeSortSelect(hw, workSorts, data.Sort)
	hw.raw(`<div class="search-panel__actions"><button type="submit" id="search-decide">決定</button>`)
	hw.raw(`<a class="search-reset" href="/exhibition">リセット</a></div></form>`)
}

func writeWorkCard(hw *htmlWriter, work showcase.WorkCard) {
	hw.raw(`<figure class="exhibit-card"`)
	hw.attr("style", "--frame-color: "+work.FrameColor)
	hw.attr("data-file", work.File)
	if work.Code != "" {
		hw.attr("data-code", work.Code)
	}
	hw.raw(`><a target="_blank" rel="noopener"`)
	hw.href("href", work.ImagePath)
	hw.raw(`><img loading="lazy"`)
	hw.href("src", work.ImagePath)
	hw.attr("alt", work.DisplayTitle)
	hw.raw(`></a><figcaption class="exhibit-meta">`)
	if work.PublishedAt != "" {
		hw.raw(`<time class="exhibit-date"`)
		hw.attr("datetime", work.PublishedAt)
		hw.raw(">")
		hw.text(work.PublishedAt)
		hw.raw(`</time>`)
	}
	if work.CharacterPath != "" {
		hw.raw(`<a class="exhibit-title"`)
		hw.href("href", work.CharacterPath)
		hw.raw(">")
		hw.text(work.DisplayTitle)
		hw.raw(`</a>`)
	} else {
		hw.element("span", "exhibit-title", work.DisplayTitle)
	}
	if work.Credit != "" {
		hw.raw(`<span class="exhibit-credit">Illust: `)
		if work.CreditURL != "" {
			hw.raw(`<a target="_blank" rel="noopener noreferrer"`)
			hw.href("href", work.CreditURL)
			hw.raw(">")
			hw.text(work.Credit)
			hw.raw(`</a>`)
		} else {
			hw.text(work.Credit)
		}
		hw.raw(`</span>`)
	}
	hw.raw(`</figcaption></figure>`)
}
