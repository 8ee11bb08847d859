package templates

import "github.com/a-h/templ"

type navItem struct {
	Path  string
	Label string
}

var navigation = []navItem{
	{Path: "/", Label: "キャラクター"},
	{Path: "/exhibition", Label: "展示"},
	{Path: "/terms", Label: "用語"},
	{Path: "/links", Label: "公式リンク"},
}

// Layout wraps content in the shared page chrome.
func Layout(meta PageMeta, content templ.Component) templ.Component {
	return component(func(hw *htmlWriter) {
		title := SiteName
		if meta.Title != "" {
			title = meta.Title + " • " + SiteName
		}

		hw.raw(`<!DOCTYPE html><html lang="ja"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.element("title", "", title)
		if meta.Description != "" {
			hw.raw(`<meta name="description"`)
			hw.attr("content", meta.Description)
			hw.raw(">")
		}
		hw.raw(`<link rel="stylesheet" href="/images/ui/site.css"></head><body>`)

		hw.raw(`<header class="l-header"><a class="l-header__logo" href="/">`)
		hw.text(SiteName)
		hw.raw(`</a><nav class="l-header__nav"><ul>`)
		for _, item := range navigation {
			hw.raw("<li><a")
			hw.href("href", item.Path)
			if item.Path == meta.Active {
				hw.raw(` class="is-active" aria-current="page"`)
			}
			hw.raw(">")
			hw.text(item.Label)
			hw.raw("</a></li>")
		}
		hw.raw(`</ul></nav></header>`)

		hw.raw(`<main class="l-main">`)
		hw.render(content)
		hw.raw(`</main>`)

		hw.raw(`<footer class="l-footer"><p>`)
		hw.text("© " + SiteName)
		hw.raw(`</p></footer></body></html>`)
	})
}

// ErrorPage renders an error message inside the shared layout.
func ErrorPage(data ErrorPageData) templ.Component {
	return Layout(PageMeta{Title: data.StatusLabel}, component(func(hw *htmlWriter) {
		hw.raw(`<section class="section-card error-page">`)
		hw.element("h1", "error-page__status", data.StatusLabel)
		hw.element("p", "error-page__message", data.Message)
		hw.raw(`<p><a href="/">トップへ戻る</a></p></section>`)
	}))
}
