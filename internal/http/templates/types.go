package templates

import (
	"charapedia/app/internal/catalog"
	"charapedia/app/internal/showcase"
)

// SiteName is used in page titles and the header.
const SiteName = "Charapedia"

// User facing messages shared by the handlers and the templates.
const (
	NoCharactersMessage      = "該当するキャラクターがいません。"
	NoWorksMessage           = "該当する作品がありません。"
	NoUpdatesMessage         = "現在、更新情報はありません。"
	DataUnavailableMessage   = "データの読み込みに失敗しました。"
	ExhibitionFailureMessage = "展示データの読み込みに失敗しました。"
	NoLinksMessage           = "公式リンクは準備中です。"
	CharacterMissingMessage  = "キャラクターが見つかりませんでした。"
)

// PageMeta is shared by every page rendered through Layout.
type PageMeta struct {
	Title       string
	Description string
	// Active is the path of the navigation entry to highlight.
	Active string
}

// HomePageData bundles the character listing with the home page extras.
type HomePageData struct {
	Listing *showcase.CharacterListing
	Pickup  []showcase.PickupItem
	Updates []showcase.UpdateItem
}

// CharacterPageData holds one character's detail view.
type CharacterPageData struct {
	Detail *showcase.CharacterDetail
}

// ExhibitionPageData holds the exhibition listing, or an error message when the table is unavailable.
type ExhibitionPageData struct {
	Listing      *showcase.ExhibitionListing
	ErrorMessage string
}

// TermsPageData holds the glossary.
type TermsPageData struct {
	Glossary *showcase.Glossary
}

// LinksPageData holds the official account directory.
type LinksPageData struct {
	Platforms []catalog.Platform
}

// ErrorPageData holds information for rendering an error view.
type ErrorPageData struct {
	StatusLabel string
	Message     string
}
