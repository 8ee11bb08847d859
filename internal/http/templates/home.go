package templates

import (
	"strconv"

	"github.com/a-h/templ"

	"charapedia/app/internal/listing"
	"charapedia/app/internal/showcase"
)

type sortChoice struct {
	Mode  listing.Mode
	Label string
}

var characterSorts = []sortChoice{
	{Mode: listing.ModeCode, Label: "コード順"},
	{Mode: listing.ModeTitle, Label: "よみ順"},
}

// HomePage renders the pickup, the news box and the character listing.
func HomePage(data HomePageData) templ.Component {
	return Layout(PageMeta{Active: "/", Description: "キャラクター図鑑"}, component(func(hw *htmlWriter) {
		if len(data.Pickup) > 0 {
			writePickup(hw, data.Pickup)
		}
		writeUpdates(hw, data.Updates)

		listingData := data.Listing
		if listingData == nil {
			listingData = &showcase.CharacterListing{}
		}

		writeCharacterFilter(hw, listingData)

		hw.raw(`<section class="section-card"><p class="result-count">`)
		hw.text(countLabel(len(listingData.Items), listingData.Total))
		hw.raw(`</p>`)
		if len(listingData.Items) == 0 {
			hw.element("p", "empty-state", NoCharactersMessage)
		} else {
			hw.raw(`<div id="card-list" class="card-list">`)
			for _, card := range listingData.Items {
				writeCharacterCard(hw, card)
			}
			hw.raw(`</div>`)
		}
		hw.raw(`</section>`)
	}))
}

func writeCharacterCard(hw *htmlWriter, card showcase.CharacterCard) {
	hw.raw(`<a class="card"`)
	hw.href("href", "/characters/"+card.Code)
	hw.attr("style", "--frame-color: "+card.FrameColor)
	hw.attr("data-code", card.Code)
	hw.raw(`><div class="card-image"><img loading="lazy"`)
	hw.href("src", card.ImagePath)
	hw.attr("alt", card.Title)
	hw.raw(`></div><div class="card-meta">`)
	hw.element("div", "card-code", "No."+card.Code)
	hw.element("div", "card-title", card.Title)
	hw.raw(`</div></a>`)
}

func writeCharacterFilter(hw *htmlWriter, data *showcase.CharacterListing) {
	hw.raw(`<form class="search-panel" method="get" action="/">`)
	writeTextInput(hw, data.Query.Text)

	selectedSeries := selectedValues(data.Query.Series)
	writeChipGroup(hw, "シリーズ", "series", data.Options.Series, selectedSeries)
	writeChipGroup(hw, "アーク", "arc", data.Options.Arcs, selectedValues(data.Query.Arcs))
	writeColorGroup(hw, data.Options.Colors, selectedValues(data.Query.Colors))
	writeSortSelect(hw, characterSorts, data.Sort)

	hw.raw(`<div class="search-panel__actions"><button type="submit" id="search-decide">決定</button>`)
	hw.raw(`<a class="search-reset" href="/">リセット</a></div></form>`)
}

func writeTextInput(hw *htmlWriter, value string) {
	hw.raw(`<label class="search-field"><span>キーワード</span><input id="search-input" type="search" name="q"`)
	hw.attr("value", value)
	hw.raw(`></label>`)
}

func writeChipGroup(hw *htmlWriter, heading, name string, options []showcase.Option, selected map[string]bool) {
	if len(options) == 0 {
		return
	}
	hw.raw(`<fieldset class="filter-group">`)
	hw.element("legend", "", heading)
	for _, option := range options {
		hw.raw(`<label class="filter-chip"><input type="checkbox"`)
		hw.attr("name", name)
		hw.attr("value", option.Value)
		if isSelected(selected, option.Value) {
			hw.raw(" checked")
		}
		hw.raw(">")
		hw.text(option.Label)
		hw.raw(`</label>`)
	}
	hw.raw(`</fieldset>`)
}

func writeColorGroup(hw *htmlWriter, options []showcase.Option, selected map[string]bool) {
	hw.raw(`<fieldset class="filter-group filter-colors">`)
	hw.element("legend", "", "カラー")
	for _, option := range options {
		hw.raw(`<label`)
		hw.attr("class", "color-option color-"+option.Value)
		hw.raw(`><input type="checkbox" name="color"`)
		hw.attr("value", option.Value)
		if isSelected(selected, option.Value) {
			hw.raw(" checked")
		}
		hw.raw(`><span class="color-badge"></span>`)
		hw.element("span", "color-label", option.Label)
		hw.raw(`</label>`)
	}
	hw.raw(`</fieldset>`)
}

func writeSortSelect(hw *htmlWriter, choices []sortChoice, current listing.Mode) {
	hw.raw(`<label class="sort-field"><span>並び替え</span><select name="sort">`)
	for _, choice := range choices {
		hw.raw("<option")
		hw.attr("value", string(choice.Mode))
		if choice.Mode == current {
			hw.raw(" selected")
		}
		hw.raw(">")
		hw.text(choice.Label)
		hw.raw("</option>")
	}
	hw.raw(`</select></label>`)
}

func writePickup(hw *htmlWriter, items []showcase.PickupItem) {
	hw.raw(`<section class="section-card pickup-section" id="pickup-section"><div class="pickup-label">PICKUP</div><div class="pickup-track">`)
	for _, item := range items {
		detail := "/characters/" + item.Card.Code
		hw.raw(`<div class="pickup-card"`)
		hw.attr("style", "--frame-color: "+item.Card.FrameColor)
		hw.raw(`><div class="pickup-thumb"><a`)
		hw.href("href", detail)
		hw.raw(`><img class="pickup-thumb-img"`)
		hw.href("src", item.Card.ImagePath)
		hw.attr("alt", item.Card.Title)
		hw.raw(`></a></div><div class="pickup-main"><div class="pickup-title-row">`)
		hw.element("span", "pickup-code", "No."+item.Card.Code)
		hw.raw(`<a class="pickup-title"`)
		hw.href("href", detail)
		hw.raw(">")
		hw.text(item.Card.Title)
		hw.raw(`</a></div><div class="pickup-meta">`)
		if item.Card.SeriesName != "" {
			hw.element("span", "pickup-series", "シリーズ："+item.Card.SeriesName)
		}
		if item.Theme != "" {
			hw.element("span", "pickup-theme", "テーマ："+item.Theme)
		}
		hw.raw(`</div>`)
		if item.ArcLine != "" {
			hw.element("div", "pickup-arc-row", item.ArcLine)
		}
		if item.Summary != "" {
			hw.element("p", "pickup-summary", item.Summary)
		}
		hw.raw(`<a class="pickup-cta"`)
		hw.href("href", detail)
		hw.raw(`>キャラ詳細を見る</a></div></div>`)
	}
	hw.raw(`</div></section>`)
}

func writeUpdates(hw *htmlWriter, items []showcase.UpdateItem) {
	hw.raw(`<section class="section-card official-update" id="official-update">`)
	hw.element("h2", "section-title", "UPDATE")
	if len(items) == 0 {
		hw.element("p", "official-update__empty", NoUpdatesMessage)
		hw.raw(`</section>`)
		return
	}

	hw.raw(`<div class="official-update__list">`)
	for _, item := range items {
		if item.URL != "" {
			hw.raw(`<a class="official-update__item"`)
			hw.href("href", item.URL)
			hw.raw(">")
		} else {
			hw.raw(`<div class="official-update__item is-static">`)
		}
		hw.raw(`<time class="official-update__date"`)
		hw.attr("datetime", item.ISODate)
		hw.raw(">")
		hw.text(item.Date)
		hw.raw(`</time>`)
		hw.element("div", "official-update__title", item.Title)
		if item.URL != "" {
			hw.raw(`</a>`)
		} else {
			hw.raw(`</div>`)
		}
	}
	hw.raw(`</div></section>`)
}

func countLabel(visible, total int) string {
	return strconv.Itoa(visible) + " / " + strconv.Itoa(total) + " 件"
}
