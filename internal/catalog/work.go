package catalog

import (
	"bytes"
	"encoding/json"
	"path"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// workFilename matches {code}_{YYYY-MM-DD}_{slug}.{ext}.
var workFilename = regexp.MustCompile(`(?i)^(\d{3})_(\d{4}-\d{2}-\d{2})_(.+)\.(webp|png|jpg|jpeg)$`)

// Work is one exhibition piece. Code and PublishedAt are empty when the filename does not follow the naming scheme.
type Work struct {
	File         string     `json:"file"`
	Code         string     `json:"code,omitempty"`
	PublishedAt  string     `json:"publishedAt,omitempty"`
	Slug         string     `json:"slug"`
	Ext          string     `json:"ext"`
	Valid        bool       `json:"valid"`
	Credit       string     `json:"credit,omitempty"`
	CreditURL    string     `json:"creditUrl,omitempty"`
	Series       string     `json:"series,omitempty"`
	DisplayTitle string     `json:"displayTitle"`
	Character    *Character `json:"character,omitempty"`
}

// ParseWorkFilename derives the work fields from its file name. Directory components are dropped.
func ParseWorkFilename(file string) Work {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(file), "\\", "/"))
	if name == "." || name == "/" {
		name = ""
	}

	match := workFilename.FindStringSubmatch(name)
	if match == nil {
		ext := ""
		if dot := strings.LastIndex(name, "."); dot >= 0 {
			ext = strings.ToLower(name[dot+1:])
		}
		return Work{
			File: name,
			Slug: strings.TrimSuffix(name, path.Ext(name)),
			Ext:  ext,
		}
	}

	return Work{
		File:        name,
		Code:        match[1],
		PublishedAt: match[2],
		Slug:        match[3],
		Ext:         strings.ToLower(match[4]),
		Valid:       true,
	}
}

// ResolveWork parses entry and links it to its character in idx.
func ResolveWork(idx *Index, entry WorkEntry) Work {
	work := ParseWorkFilename(entry.File)
	work.Credit = entry.Credit
	work.CreditURL = entry.CreditURL

	if idx != nil && work.Code != "" {
		if character, ok := idx.FindByCode(work.Code); ok {
			work.Character = character
			work.Series = character.Series
		}
	}

	switch {
	case work.Character != nil && work.Character.Title != "" && work.Slug != "":
		work.DisplayTitle = work.Character.Title + " / " + work.Slug
	case work.Character != nil && work.Character.Title != "":
		work.DisplayTitle = work.Character.Title
	case work.Slug != "":
		work.DisplayTitle = work.Slug
	default:
		work.DisplayTitle = work.File
	}

	return work
}

// WorkEntry is one raw exhibition entry as authored.
type WorkEntry struct {
	File      string `json:"file" yaml:"file"`
	Credit    string `json:"credit,omitempty" yaml:"credit,omitempty"`
	CreditURL string `json:"creditUrl,omitempty" yaml:"creditUrl,omitempty"`
}

// WorkList is the exhibition table. It accepts an array of file names or entry objects,
// or an object with the same array under "items". Entries without a file are dropped.
type WorkList []WorkEntry

type workItems struct {
	Items []json.RawMessage `json:"items"`
}

// UnmarshalJSON normalises the accepted shapes.
func (l *WorkList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}

	var raw []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return eris.Wrap(err, "decoding exhibition array")
		}
	case '{':
		var wrapper workItems
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return eris.Wrap(err, "decoding exhibition object")
		}
		raw = wrapper.Items
	default:
		*l = nil
		return nil
	}

	entries := make(WorkList, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 {
			continue
		}

		var entry WorkEntry
		switch item[0] {
		case '"':
			if err := json.Unmarshal(item, &entry.File); err != nil {
				return eris.Wrap(err, "decoding exhibition file name")
			}
		case '{':
			if err := json.Unmarshal(item, &entry); err != nil {
				return eris.Wrap(err, "decoding exhibition entry")
			}
		default:
			continue
		}

		if strings.TrimSpace(entry.File) == "" {
			continue
		}
		entries = append(entries, entry)
	}

	*l = entries
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (l *WorkList) UnmarshalYAML(node *yaml.Node) error {
	items := node
	if node.Kind == yaml.MappingNode {
		items = nil
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "items" {
				items = node.Content[i+1]
				break
			}
		}
	}

	if items == nil || items.Kind != yaml.SequenceNode {
		*l = nil
		return nil
	}

	entries := make(WorkList, 0, len(items.Content))
	for _, item := range items.Content {
		var entry WorkEntry
		switch item.Kind {
		case yaml.ScalarNode:
			entry.File = item.Value
		case yaml.MappingNode:
			if err := item.Decode(&entry); err != nil {
				return eris.Wrapf(err, "decoding exhibition entry at line %d", item.Line)
			}
		default:
			continue
		}

		if strings.TrimSpace(entry.File) == "" {
			continue
		}
		entries = append(entries, entry)
	}

	*l = entries
	return nil
}
