package templates

import (
	"strings"

	"github.com/a-h/templ"

	"charapedia/app/internal/showcase"
)

// CharacterPage renders one character with its information table, gallery and exhibition works.
func CharacterPage(data CharacterPageData) templ.Component {
	detail := data.Detail
	if detail == nil {
		detail = &showcase.CharacterDetail{}
	}
	card := detail.Card

	return Layout(PageMeta{Title: card.Title, Description: detail.Catchcopy, Active: "/"}, component(func(hw *htmlWriter) {
		hw.raw(`<article class="char-page" id="character-content"`)
		hw.attr("style", "--frame-color: "+card.FrameColor)
		hw.raw(`><section class="char-hero"><div class="char-hero-card"><img class="char-hero-image"`)
		hw.href("src", card.ImagePath)
		hw.attr("alt", card.Title)
		hw.raw(`></div><div class="char-hero-meta">`)
		hw.element("div", "char-hero-code", "No."+card.Code)
		hw.element("h1", "char-hero-title", card.Title)
		if card.TitleYomi != "" {
			hw.element("div", "char-hero-yomi", card.TitleYomi)
		}
		if detail.Catchcopy != "" {
			hw.element("p", "char-hero-catch", detail.Catchcopy)
		}
		hw.raw(`<div class="char-hero-tags">`)
		if card.SeriesName != "" {
			hw.element("span", "char-tag", "シリーズ："+card.SeriesName)
		}
		if detail.Theme != "" {
			hw.element("span", "char-tag", "テーマ："+detail.Theme)
		}
		if card.MainColorLabel != "" {
			hw.element("span", "char-tag", "メインカラー："+card.MainColorLabel)
		}
		hw.raw(`</div></div></section>`)

		hw.raw(`<section class="char-section">`)
		hw.element("h2", "char-section-title", "INFORMATION")
		hw.raw(`<dl class="char-info-grid">`)
		infoRow(hw, "コード", card.Code)
		infoRow(hw, "タイトル", card.Title)
		infoRow(hw, "よみ", card.TitleYomi)
		infoRow(hw, "シリーズ", card.SeriesName)
		infoRow(hw, "テーマ", detail.Theme)
		infoRow(hw, "メインカラー", card.MainColorLabel)
		infoRow(hw, "サブカラー", strings.Join(detail.Colors, " / "))
		infoRow(hw, "キャッチコピー", detail.Catchcopy)
		arcRow(hw, "エクスアーク", detail.ExArc)
		arcRow(hw, "コアアーク", detail.CoreArc)
		hw.raw(`</dl></section>`)

		if detail.Synopsis != "" {
			hw.raw(`<section class="char-section">`)
			hw.element("h2", "char-section-title", "STORY")
			for _, line := range strings.Split(detail.Synopsis, "\n") {
				if strings.TrimSpace(line) == "" {
					continue
				}
				hw.element("p", "char-synopsis", line)
			}
			hw.raw(`</section>`)
		}

		hw.raw(`<section class="char-section char-gallery">`)
		hw.element("h2", "char-section-title", "GALLERY")
		if len(detail.Gallery) == 0 {
			hw.element("p", "char-gallery-empty", detail.GalleryNotice)
		}
		for _, section := range detail.Gallery {
			hw.raw(`<section class="char-gallery-group"`)
			hw.attr("data-group", section.Key)
			hw.raw(">")
			hw.element("h3", "char-gallery-heading", section.Heading)
			hw.raw(`<ul class="char-gallery-list">`)
			for _, item := range section.Items {
				hw.raw(`<li class="char-gallery-item"><a target="_blank" rel="noopener noreferrer"`)
				hw.href("href", item.URL)
				hw.raw(">")
				hw.text(item.Label)
				hw.raw(`</a></li>`)
			}
			hw.raw(`</ul></section>`)
		}
		hw.raw(`</section>`)

		if len(detail.Works) > 0 {
			hw.raw(`<section class="char-section">`)
			hw.element("h2", "char-section-title", "EXHIBITION")
			hw.raw(`<div class="exhibit-list">`)
			for _, work := range detail.Works {
				writeWorkCard(hw, work)
			}
			hw.raw(`</div></section>`)
		}

		hw.raw(`</article>`)
	}))
}

func infoRow(hw *htmlWriter, label, value string) {
	if value == "" {
		return
	}
	hw.raw(`<div class="char-info-row">`)
	hw.element("dt", "char-info-label", label)
	hw.element("dd", "char-info-value", value)
	hw.raw(`</div>`)
}

func arcRow(hw *htmlWriter, label string, slot showcase.ArcSlot) {
	hw.raw(`<div class="char-info-row">`)
	hw.element("dt", "char-info-label", label)
	hw.raw(`<dd class="char-info-value">`)
	if slot.Set() {
		hw.element("span", "arc-icon", slot.Icon)
		hw.text(" " + slot.Name)
	} else {
		hw.text(slot.Label)
	}
	hw.raw(`</dd></div>`)
}
