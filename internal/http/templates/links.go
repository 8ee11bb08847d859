package templates

import "github.com/a-h/templ"

// LinksPage renders the official accounts grouped by platform.
func LinksPage(data LinksPageData) templ.Component {
	return Layout(PageMeta{Title: "公式リンク", Active: "/links"}, component(func(hw *htmlWriter) {
		hw.raw(`<div id="links-container">`)
		if len(data.Platforms) == 0 {
			hw.element("p", "empty-state", NoLinksMessage)
		}
		for _, platform := range data.Platforms {
			hw.raw(`<section class="links-platform-section"`)
			hw.attr("data-platform", platform.PlatformID)
			hw.raw(`><h2 class="links-platform-title"><span class="links-platform-icon">`)
			if platform.Icon != "" {
				hw.raw("<i")
				hw.attr("class", platform.Icon)
				hw.raw("></i>")
			}
			hw.raw(`</span>`)
			hw.element("span", "", platform.Label())
			hw.raw(`</h2><div class="links-account-list">`)
			for _, account := range platform.Accounts {
				hw.raw(`<a class="links-account-card" target="_blank" rel="noopener noreferrer"`)
				hw.href("href", account.URL)
				hw.raw(`><div class="links-account-top">`)
				hw.element("span", "links-account-label", account.Label)
				if account.Handle != "" {
					hw.element("span", "links-account-handle", account.Handle)
				}
				hw.raw(`</div>`)
				hw.element("p", "links-account-desc", account.Description)
				hw.raw(`</a>`)
			}
			hw.raw(`</div></section>`)
		}
		hw.raw(`</div>`)
	}))
}
