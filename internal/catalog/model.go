package catalog

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ArcRef points at the ex and core arcs of a character. Either slot may be empty.
type ArcRef struct {
	Ex   string `json:"ex,omitempty" yaml:"ex,omitempty"`
	Core string `json:"core,omitempty" yaml:"core,omitempty"`
}

// Codes returns the non-empty arc codes, ex first.
func (a ArcRef) Codes() []string {
	codes := make([]string, 0, 2)
	if a.Ex != "" {
		codes = append(codes, a.Ex)
	}
	if a.Core != "" {
		codes = append(codes, a.Core)
	}
	return codes
}

// Character is a single encyclopedia entry.
type Character struct {
	Code           string   `json:"code" yaml:"code"`
	Title          string   `json:"title" yaml:"title"`
	TitleYomi      string   `json:"titleYomi,omitempty" yaml:"titleYomi,omitempty"`
	Series         string   `json:"series,omitempty" yaml:"series,omitempty"`
	Arc            ArcRef   `json:"arc" yaml:"arc"`
	Colors         []string `json:"colors,omitempty" yaml:"colors,omitempty"`
	MainColorLabel string   `json:"mainColorLabel,omitempty" yaml:"mainColorLabel,omitempty"`
	Theme          string   `json:"theme,omitempty" yaml:"theme,omitempty"`
	Catchcopy      string   `json:"catchcopy,omitempty" yaml:"catchcopy,omitempty"`
}

// SortTitle is the reading used for title ordering.
func (c Character) SortTitle() string {
	if c.TitleYomi != "" {
		return c.TitleYomi
	}
	return c.Title
}

// Ident is an identifier that may be authored either as a string or as a number.
type Ident string

// UnmarshalJSON accepts both `"3"` and `3`.
func (i *Ident) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*i = ""
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return eris.Wrap(err, "decoding identifier string")
		}
		*i = Ident(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return eris.Wrap(err, "decoding identifier number")
	}
	*i = Ident(n.String())
	return nil
}

// UnmarshalYAML accepts any scalar.
func (i *Ident) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return eris.Errorf("identifier must be a scalar at line %d", node.Line)
	}
	*i = Ident(node.Value)
	return nil
}

// Series describes a story line a character belongs to.
type Series struct {
	ID          Ident  `json:"id" yaml:"id"`
	Key         string `json:"key" yaml:"key"`
	NameJa      string `json:"nameJa" yaml:"nameJa"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// SeriesTable maps a series key to its descriptor.
type SeriesTable map[string]Series

// Name returns the display name for key, or the key itself when the table has no entry.
func (t SeriesTable) Name(key string) string {
	if series, ok := t[key]; ok && series.NameJa != "" {
		return series.NameJa
	}
	return key
}

// Arc is a glossary term characters are tagged with.
type Arc struct {
	Icon     string   `json:"icon" yaml:"icon"`
	Name     string   `json:"name" yaml:"name"`
	Eng      string   `json:"eng,omitempty" yaml:"eng,omitempty"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Label renders the arc as "icon name".
func (a Arc) Label() string {
	return strings.TrimSpace(a.Icon + " " + a.Name)
}

// ArcTable maps arc codes to arcs and remembers the order they were authored in.
type ArcTable struct {
	order []string
	items map[string]Arc
}

// NewArcTable builds a table from codes in the given order. Duplicate codes keep the last value.
func NewArcTable(codes []string, arcs map[string]Arc) ArcTable {
	table := ArcTable{items: make(map[string]Arc, len(arcs))}
	for _, code := range codes {
		arc, ok := arcs[code]
		if !ok {
			continue
		}
		table.set(code, arc)
	}
	return table
}

func (t *ArcTable) set(code string, arc Arc) {
	if t.items == nil {
		t.items = make(map[string]Arc)
	}
	if _, exists := t.items[code]; !exists {
		t.order = append(t.order, code)
	}
	t.items[code] = arc
}

// Get looks an arc up by code.
func (t ArcTable) Get(code string) (Arc, bool) {
	arc, ok := t.items[code]
	return arc, ok
}

// Codes returns the arc codes in authoring order.
func (t ArcTable) Codes() []string {
	return append([]string(nil), t.order...)
}

// Len reports the number of arcs.
func (t ArcTable) Len() int {
	return len(t.order)
}

// UnmarshalJSON decodes a JSON object while keeping key order.
func (t *ArcTable) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return eris.Wrap(err, "reading arc table")
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return eris.New("arc table must be a JSON object")
	}

	table := ArcTable{items: make(map[string]Arc)}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return eris.Wrap(err, "reading arc code")
		}
		code, ok := keyToken.(string)
		if !ok {
			return eris.New("arc code must be a string")
		}

		var arc Arc
		if err := decoder.Decode(&arc); err != nil {
			return eris.Wrapf(err, "decoding arc %s", code)
		}
		table.set(code, arc)
	}

	if _, err := decoder.Token(); err != nil {
		return eris.Wrap(err, "closing arc table")
	}

	*t = table
	return nil
}

// MarshalJSON encodes the table as an object in authoring order.
func (t ArcTable) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, code := range t.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(code)
		if err != nil {
			return nil, eris.Wrapf(err, "encoding arc code %s", code)
		}
		value, err := json.Marshal(t.items[code])
		if err != nil {
			return nil, eris.Wrapf(err, "encoding arc %s", code)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping while keeping key order.
func (t *ArcTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return eris.Errorf("arc table must be a mapping at line %d", node.Line)
	}

	table := ArcTable{items: make(map[string]Arc)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		code := node.Content[i].Value
		var arc Arc
		if err := node.Content[i+1].Decode(&arc); err != nil {
			return eris.Wrapf(err, "decoding arc %s", code)
		}
		table.set(code, arc)
	}

	*t = table
	return nil
}

// GalleryItem is a single external link on a character page.
type GalleryItem struct {
	Label string `json:"label" yaml:"label"`
	URL   string `json:"url" yaml:"url"`
}

// Gallery groups related content for a character.
type Gallery struct {
	Music []GalleryItem `json:"music,omitempty" yaml:"music,omitempty"`
	Novel []GalleryItem `json:"novel,omitempty" yaml:"novel,omitempty"`
	Video []GalleryItem `json:"video,omitempty" yaml:"video,omitempty"`
}

// Empty reports whether no group has any item.
func (g Gallery) Empty() bool {
	return len(g.Music) == 0 && len(g.Novel) == 0 && len(g.Video) == 0
}

// Account is one official account on a platform.
type Account struct {
	Label       string `json:"label" yaml:"label"`
	Handle      string `json:"handle,omitempty" yaml:"handle,omitempty"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Platform groups official accounts, e.g. a video site or a social network.
type Platform struct {
	PlatformID    string    `json:"platformId" yaml:"platformId"`
	PlatformLabel string    `json:"platformLabel,omitempty" yaml:"platformLabel,omitempty"`
	Icon          string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Accounts      []Account `json:"accounts,omitempty" yaml:"accounts,omitempty"`
}

// Label returns the platform label, falling back to its id.
func (p Platform) Label() string {
	if p.PlatformLabel != "" {
		return p.PlatformLabel
	}
	return p.PlatformID
}

// Update is a news item shown on the home page.
type Update struct {
	Date  string `json:"date" yaml:"date"`
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Synopsis holds the longer story text for a character.
type Synopsis struct {
	Summary string `json:"summary" yaml:"summary"`
}
