package catalog

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestParseWorkFilename(t *testing.T) {
	t.Parallel()

	cases := []struct {
		file string
		want Work
	}{
		{
			file: "images/exhibition/012_2024-03-09_spring-walk.WEBP",
			want: Work{File: "012_2024-03-09_spring-walk.WEBP", Code: "012", PublishedAt: "2024-03-09", Slug: "spring-walk", Ext: "webp", Valid: true},
		},
		{
			file: "001_2023-01-01_a_b_c.png",
			want: Work{File: "001_2023-01-01_a_b_c.png", Code: "001", PublishedAt: "2023-01-01", Slug: "a_b_c", Ext: "png", Valid: true},
		},
		{
			file: "sketch.gif",
			want: Work{File: "sketch.gif", Slug: "sketch", Ext: "gif"},
		},
		{
			file: "01_2023-01-01_short-code.png",
			want: Work{File: "01_2023-01-01_short-code.png", Slug: "01_2023-01-01_short-code", Ext: "png"},
		},
		{
			file: "noext",
			want: Work{File: "noext", Slug: "noext"},
		},
	}

	for _, tc := range cases {
		got := ParseWorkFilename(tc.file)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("ParseWorkFilename(%q) mismatch (-want +got):\n%s", tc.file, diff)
		}
	}
}

func TestResolveWorkDisplayTitle(t *testing.T) {
	t.Parallel()

	idx := sampleIndex()

	resolved := ResolveWork(idx, WorkEntry{File: "001_2023-05-05_first.png", Credit: "artist"})
	if resolved.Character == nil || resolved.Character.Title != "Alpha" {
		t.Fatalf("expected work to resolve to Alpha, got %+v", resolved.Character)
	}
	if resolved.DisplayTitle != "Alpha / first" {
		t.Fatalf("expected display title 'Alpha / first', got %q", resolved.DisplayTitle)
	}
	if resolved.Series != "s1" {
		t.Fatalf("expected series s1, got %q", resolved.Series)
	}
	if resolved.Credit != "artist" {
		t.Fatalf("expected credit to be carried, got %q", resolved.Credit)
	}

	orphan := ResolveWork(idx, WorkEntry{File: "999_2023-05-05_ghost.png"})
	if orphan.Character != nil {
		t.Fatalf("expected unknown code to stay unresolved")
	}
	if orphan.DisplayTitle != "ghost" {
		t.Fatalf("expected slug as display title, got %q", orphan.DisplayTitle)
	}

	malformed := ResolveWork(idx, WorkEntry{File: "loose.png"})
	if malformed.Valid || malformed.Code != "" || malformed.PublishedAt != "" {
		t.Fatalf("expected malformed entry to be kept with empty fields, got %+v", malformed)
	}
	if malformed.DisplayTitle != "loose" {
		t.Fatalf("expected slug fallback, got %q", malformed.DisplayTitle)
	}
}

func TestWorkListAcceptsAuthoredShapes(t *testing.T) {
	t.Parallel()

	inputs := map[string]string{
		"array":  `["001_2023-01-01_a.png", {"file": "002_2023-02-02_b.png", "credit": "c", "creditUrl": "https://example.com"}, {"credit": "no file"}, 7]`,
		"object": `{"items": ["001_2023-01-01_a.png", {"file": "002_2023-02-02_b.png", "credit": "c", "creditUrl": "https://example.com"}, ""]}`,
	}

	want := WorkList{
		{File: "001_2023-01-01_a.png"},
		{File: "002_2023-02-02_b.png", Credit: "c", CreditURL: "https://example.com"},
	}

	for name, raw := range inputs {
		var list WorkList
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			t.Fatalf("%s: Unmarshal returned error: %v", name, err)
		}
		if diff := cmp.Diff(want, list); diff != "" {
			t.Errorf("%s: unexpected entries (-want +got):\n%s", name, diff)
		}
	}

	var empty WorkList
	if err := json.Unmarshal([]byte(`{"other": 1}`), &empty); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected unknown object shape to yield no entries, got %v", empty)
	}
}

func TestWorkListFromYAML(t *testing.T) {
	t.Parallel()

	raw := "items:\n  - 001_2023-01-01_a.png\n  - file: 002_2023-02-02_b.png\n    credit: c\n  - credit: missing\n"

	var list WorkList
	if err := yaml.Unmarshal([]byte(raw), &list); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	want := WorkList{{File: "001_2023-01-01_a.png"}, {File: "002_2023-02-02_b.png", Credit: "c"}}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Fatalf("unexpected entries (-want +got):\n%s", diff)
	}
}

func TestSnapshotWorksByCode(t *testing.T) {
	t.Parallel()

	snapshot := &Snapshot{Works: []Work{
		{File: "a", Code: "001"},
		{File: "b", Code: "002"},
		{File: "c", Code: "001"},
	}}

	works := snapshot.WorksByCode("001")
	if len(works) != 2 || works[0].File != "a" || works[1].File != "c" {
		t.Fatalf("expected works a and c, got %+v", works)
	}

	if works := snapshot.WorksByCode(""); works != nil {
		t.Fatalf("expected no works for empty code, got %+v", works)
	}
}
