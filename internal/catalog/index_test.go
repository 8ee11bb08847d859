package catalog

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func sampleIndex() *Index {
	characters := []Character{
		{Code: "003", Title: "Gamma", Series: "s2", Arc: ArcRef{Ex: "F", Core: "B"}},
		{Code: "001", Title: "Alpha", Series: "s1", Arc: ArcRef{Ex: "B"}},
		{Code: "002", Title: "Beta"},
		{Code: "001", Title: "Alpha duplicate", Series: "s3"},
	}
	series := SeriesTable{
		"s1": {ID: "0", Key: "s1", NameJa: "はじまり"},
		"s2": {ID: "1", Key: "s2", NameJa: "つづき"},
	}
	arcs := NewArcTable([]string{"F", "B"}, map[string]Arc{
		"F": {Icon: "🔥", Name: "フレア"},
		"B": {Icon: "🌸", Name: "ブルーム"},
	})
	return NewIndex(characters, series, arcs)
}

func TestIndexFindByCodeReturnsFirstMatch(t *testing.T) {
	t.Parallel()

	idx := sampleIndex()

	character, ok := idx.FindByCode(" 001 ")
	if !ok {
		t.Fatalf("expected code 001 to be found")
	}
	if character.Title != "Alpha" {
		t.Fatalf("expected first match Alpha, got %q", character.Title)
	}

	if _, ok := idx.FindByCode(""); ok {
		t.Fatalf("expected empty code to miss")
	}
	if _, ok := idx.FindByCode("999"); ok {
		t.Fatalf("expected unknown code to miss")
	}
}

func TestIndexUsedOptions(t *testing.T) {
	t.Parallel()

	idx := sampleIndex()

	if diff := cmp.Diff([]string{"s1", "s2", "s3"}, idx.UsedSeriesKeys()); diff != "" {
		t.Fatalf("unexpected series keys (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"B", "F"}, idx.UsedArcCodes()); diff != "" {
		t.Fatalf("unexpected arc codes (-want +got):\n%s", diff)
	}
}

func TestIndexCopiesInput(t *testing.T) {
	t.Parallel()

	characters := []Character{{Code: "001", Title: "Alpha"}}
	idx := NewIndex(characters, nil, ArcTable{})
	characters[0].Title = "mutated"

	if got := idx.Characters()[0].Title; got != "Alpha" {
		t.Fatalf("expected index to keep its own copy, got %q", got)
	}
	if idx.Series() == nil {
		t.Fatalf("expected nil series table to be replaced with an empty table")
	}
}

func TestArcTableKeepsAuthoringOrder(t *testing.T) {
	t.Parallel()

	raw := `{"Z": {"icon": "z", "name": "Zeta"}, "A": {"icon": "a", "name": "Alef", "keywords": ["k1"]}, "M": {"icon": "m", "name": "Mu"}}`

	var table ArcTable
	if err := json.Unmarshal([]byte(raw), &table); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if diff := cmp.Diff([]string{"Z", "A", "M"}, table.Codes()); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	arc, ok := table.Get("A")
	if !ok || arc.Name != "Alef" || len(arc.Keywords) != 1 {
		t.Fatalf("expected arc A to decode, got %+v (ok=%v)", arc, ok)
	}

	encoded, err := json.Marshal(table)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var roundTrip ArcTable
	if err := json.Unmarshal(encoded, &roundTrip); err != nil {
		t.Fatalf("Unmarshal of encoded table returned error: %v", err)
	}
	if diff := cmp.Diff(table.Codes(), roundTrip.Codes()); diff != "" {
		t.Fatalf("expected encoding to keep order (-want +got):\n%s", diff)
	}
}

func TestArcTableFromYAML(t *testing.T) {
	t.Parallel()

	raw := "Q:\n  icon: q\n  name: Quill\nB:\n  icon: b\n  name: Bloom\n"

	var table ArcTable
	if err := yaml.Unmarshal([]byte(raw), &table); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if diff := cmp.Diff([]string{"Q", "B"}, table.Codes()); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestArcTableRejectsNonObject(t *testing.T) {
	t.Parallel()

	var table ArcTable
	if err := json.Unmarshal([]byte(`["A"]`), &table); err == nil {
		t.Fatalf("expected error for array input")
	}
}

func TestSeriesIdentAcceptsNumbers(t *testing.T) {
	t.Parallel()

	var table SeriesTable
	raw := `{"s1": {"id": 0, "key": "Occupation", "nameJa": "そまりものがたり"}, "s2": {"id": "12", "key": "Other", "nameJa": "ほか"}}`
	if err := json.Unmarshal([]byte(raw), &table); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}

	if table["s1"].ID != "0" {
		t.Fatalf("expected numeric id to decode as \"0\", got %q", table["s1"].ID)
	}
	if table["s2"].ID != "12" {
		t.Fatalf("expected string id to decode as \"12\", got %q", table["s2"].ID)
	}
	if table.Name("s1") != "そまりものがたり" {
		t.Fatalf("expected series display name, got %q", table.Name("s1"))
	}
	if table.Name("missing") != "missing" {
		t.Fatalf("expected unknown key to fall back to itself, got %q", table.Name("missing"))
	}
}
