package showcase

import (
	"strings"

	"charapedia/app/internal/catalog"
	"charapedia/app/internal/color"
	"charapedia/app/internal/listing"
)

const (
	// UnsetArcLabel is shown for an arc slot a character does not fill.
	UnsetArcLabel = "未設定"
	// EmptyGalleryNotice replaces the gallery when a character has no related content.
	EmptyGalleryNotice = "関連コンテンツは準備中です。"

	characterImageDir  = "/images/characters/"
	exhibitionImageDir = "/images/exhibition/"
)

// Option is one selectable filter value.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions lists the values the filter panel offers.
type FilterOptions struct {
	Series []Option `json:"series"`
	Arcs   []Option `json:"arcs,omitempty"`
	Colors []Option `json:"colors"`
}

// ArcBadge is an arc as shown next to a character.
type ArcBadge struct {
	Code string `json:"code"`
	Icon string `json:"icon"`
	Name string `json:"name"`
}

// Label renders the badge as "icon name".
func (b ArcBadge) Label() string {
	return strings.TrimSpace(b.Icon + " " + b.Name)
}

// CharacterCard is the listing view of a character.
type CharacterCard struct {
	Code           string     `json:"code"`
	Title          string     `json:"title"`
	TitleYomi      string     `json:"titleYomi,omitempty"`
	SeriesKey      string     `json:"series,omitempty"`
	SeriesName     string     `json:"seriesName,omitempty"`
	MainColorLabel string     `json:"mainColorLabel,omitempty"`
	Arcs           []ArcBadge `json:"arcs,omitempty"`
	Families       []string   `json:"colorFamilies"`
	FrameColor     string     `json:"frameColor"`
	ImagePath      string     `json:"image"`
}

// CharacterQuery carries the index page's filter and sort controls.
type CharacterQuery struct {
	Text   string   `json:"q,omitempty"`
	Series []string `json:"series,omitempty"`
	Arcs   []string `json:"arc,omitempty"`
	Colors []string `json:"color,omitempty"`
	Sort   string   `json:"sort,omitempty"`
}

func (q CharacterQuery) criteria() listing.Criteria {
	return listing.Criteria{
		Text:          q.Text,
		SeriesKeys:    listing.NewSet(splitValues(q.Series)...),
		ArcCodes:      listing.NewSet(splitValues(q.Arcs)...),
		ColorFamilies: colorSet(q.Colors),
	}
}

// CharacterListing is the result of one index page refresh.
type CharacterListing struct {
	Items   []CharacterCard `json:"items"`
	Total   int             `json:"total"`
	Sort    listing.Mode    `json:"sort"`
	Query   CharacterQuery  `json:"query"`
	Options FilterOptions   `json:"options"`
}

// ArcSlot is the ex or core arc of a character; Label is UnsetArcLabel when empty.
type ArcSlot struct {
	Code  string `json:"code,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Name  string `json:"name,omitempty"`
	Label string `json:"label"`
}

// Set reports whether the slot refers to a known arc.
func (a ArcSlot) Set() bool {
	return a.Name != "" || a.Icon != ""
}

// GallerySection is one group of related content links.
type GallerySection struct {
	Key     string                `json:"key"`
	Heading string                `json:"heading"`
	Items   []catalog.GalleryItem `json:"items"`
}

// CharacterDetail is the detail page of one character.
type CharacterDetail struct {
	Card            CharacterCard    `json:"card"`
	Theme           string           `json:"theme,omitempty"`
	Catchcopy       string           `json:"catchcopy,omitempty"`
	Colors          []string         `json:"colors,omitempty"`
	ExArc           ArcSlot          `json:"exArc"`
	CoreArc         ArcSlot          `json:"coreArc"`
	Gallery         []GallerySection `json:"gallery"`
	GalleryNotice   string           `json:"galleryNotice,omitempty"`
	Synopsis        string           `json:"synopsis,omitempty"`
	Works           []WorkCard       `json:"works"`
	ExhibitionReady bool             `json:"exhibitionReady"`
}

// WorkCard is the listing view of an exhibition work.
type WorkCard struct {
	File         string `json:"file"`
	Code         string `json:"code,omitempty"`
	PublishedAt  string `json:"publishedAt,omitempty"`
	Slug         string `json:"slug"`
	Valid        bool   `json:"valid"`
	DisplayTitle string `json:"displayTitle"`
	Credit       string `json:"credit,omitempty"`
	CreditURL    string `json:"creditUrl,omitempty"`
	SeriesKey    string `json:"series,omitempty"`
	SeriesName   string `json:"seriesName,omitempty"`
	FrameColor   string `json:"frameColor"`
	ImagePath    string `json:"image"`
	// CharacterPath links to the character's detail page when the work is attributed.
	CharacterPath string `json:"characterPath,omitempty"`
}

// ExhibitionQuery carries the exhibition page's filter and sort controls.
type ExhibitionQuery struct {
	Text   string   `json:"q,omitempty"`
	Series []string `json:"series,omitempty"`
	Colors []string `json:"color,omitempty"`
	From   string   `json:"from,omitempty"`
	To     string   `json:"to,omitempty"`
	Sort   string   `json:"sort,omitempty"`
}

func (q ExhibitionQuery) criteria() listing.Criteria {
	return listing.Criteria{
		Text:          q.Text,
		SeriesKeys:    listing.NewSet(splitValues(q.Series)...),
		ColorFamilies: colorSet(q.Colors),
		DateFrom:      strings.TrimSpace(q.From),
		DateTo:        strings.TrimSpace(q.To),
	}
}

// ExhibitionListing is the result of one exhibition page refresh.
type ExhibitionListing struct {
	Items   []WorkCard      `json:"items"`
	Total   int             `json:"total"`
	Sort    listing.Mode    `json:"sort"`
	Query   ExhibitionQuery `json:"query"`
	Options FilterOptions   `json:"options"`
}

// GlossaryArc is one arc entry of the terms page.
type GlossaryArc struct {
	Code     string   `json:"code"`
	Icon     string   `json:"icon"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords,omitempty"`
}

// GlossarySeries is one series entry of the terms page.
type GlossarySeries struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Glossary is the terms page.
type Glossary struct {
	Arcs   []GlossaryArc    `json:"arcs"`
	Series []GlossarySeries `json:"series"`
}

// UpdateItem is one news entry with its date formatted for display.
type UpdateItem struct {
	Date    string `json:"date"`
	ISODate string `json:"isoDate"`
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
}

// PickupItem is one featured character on the home page.
type PickupItem struct {
	Card    CharacterCard `json:"card"`
	Theme   string        `json:"theme,omitempty"`
	Summary string        `json:"summary,omitempty"`
	ArcLine string        `json:"arcLine,omitempty"`
}

func newCharacterCard(idx *catalog.Index, c catalog.Character) CharacterCard {
	families := color.FamiliesOf(c.Colors)
	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, string(family))
	}

	card := CharacterCard{
		Code:           c.Code,
		Title:          c.Title,
		TitleYomi:      c.TitleYomi,
		SeriesKey:      c.Series,
		MainColorLabel: c.MainColorLabel,
		Families:       names,
		FrameColor:     color.FrameColor(c.Colors),
		ImagePath:      characterImageDir + c.Code + ".png",
	}
	if c.Series != "" {
		card.SeriesName = idx.Series().Name(c.Series)
	}

	for _, code := range c.Arc.Codes() {
		badge := ArcBadge{Code: code}
		if arc, ok := idx.Arcs().Get(code); ok {
			badge.Icon = arc.Icon
			badge.Name = arc.Name
		}
		card.Arcs = append(card.Arcs, badge)
	}

	return card
}

func newWorkCard(idx *catalog.Index, w catalog.Work) WorkCard {
	card := WorkCard{
		File:         w.File,
		Code:         w.Code,
		PublishedAt:  w.PublishedAt,
		Slug:         w.Slug,
		Valid:        w.Valid,
		DisplayTitle: w.DisplayTitle,
		Credit:       w.Credit,
		CreditURL:    w.CreditURL,
		SeriesKey:    w.Series,
		FrameColor:   color.DefaultFrameColor,
		ImagePath:    exhibitionImageDir + w.File,
	}
	if w.Series != "" {
		card.SeriesName = idx.Series().Name(w.Series)
	}
	if w.Character != nil {
		card.FrameColor = color.FrameColor(w.Character.Colors)
		card.CharacterPath = "/characters/" + w.Character.Code
	}
	return card
}

func arcSlot(arcs catalog.ArcTable, code string) ArcSlot {
	if code == "" {
		return ArcSlot{Label: UnsetArcLabel}
	}
	arc, ok := arcs.Get(code)
	if !ok {
		return ArcSlot{Code: code, Label: UnsetArcLabel}
	}
	return ArcSlot{Code: code, Icon: arc.Icon, Name: arc.Name, Label: arc.Label()}
}

func colorSet(values []string) listing.Set {
	set := listing.Set{}
	for _, value := range splitValues(values) {
		set[strings.ToLower(value)] = struct{}{}
	}
	return set
}
