package listing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type item struct {
	code      string
	title     string
	yomi      string
	series    string
	arcs      []string
	colors    []string
	published string
}

func itemProfile() Profile[item] {
	return Profile[item]{
		Code:        func(i item) string { return i.code },
		Surface:     func(i item) []string { return []string{i.code, i.title, i.yomi} },
		Series:      func(i item) string { return i.series },
		Arcs:        func(i item) []string { return i.arcs },
		Colors:      func(i item) []string { return i.colors },
		PublishedAt: func(i item) string { return i.published },
		SortTitle: func(i item) string {
			if i.yomi != "" {
				return i.yomi
			}
			return i.title
		},
		Modes:       []Mode{ModeCode, ModeOriginal, ModeTitle, ModePublishedAsc, ModePublishedDesc, ModeRawCode},
		DefaultMode: ModeCode,
	}
}

func codes(items []item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.code)
	}
	return out
}

func fixture() []item {
	return []item{
		{code: "010", title: "Sakura", yomi: "さくら", series: "s1", arcs: []string{"B"}, colors: []string{"#ff0000"}, published: "2023-06-15"},
		{code: "002", title: "Aoi", yomi: "あおい", series: "s2", arcs: []string{"F", "B"}, colors: []string{"#0080ff"}, published: "2023-01-01"},
		{code: "005", title: "Kuro", series: "s1", colors: nil},
		{code: "001", title: "Midori", yomi: "みどり", arcs: []string{"F"}, colors: []string{"#00ff00", "#ffff00"}, published: "2023-02-01"},
	}
}

func TestFilterEmptyCriteriaReturnsInput(t *testing.T) {
	t.Parallel()

	records := fixture()
	got := NewFilter(itemProfile()).Apply(records, Criteria{})

	if diff := cmp.Diff(codes(records), codes(got)); diff != "" {
		t.Fatalf("expected identity (-want +got):\n%s", diff)
	}

	got[0].code = "mutated"
	if records[0].code != "010" {
		t.Fatalf("expected filter output not to alias input")
	}

	whitespace := NewFilter(itemProfile()).Apply(records, Criteria{Text: "   ", SeriesKeys: NewSet(), ArcCodes: Set{}})
	if len(whitespace) != len(records) {
		t.Fatalf("expected blank criteria to match everything, got %d records", len(whitespace))
	}
}

func TestFilterText(t *testing.T) {
	t.Parallel()

	filter := NewFilter(itemProfile())

	cases := map[string][]string{
		"  SAKU ": {"010"},
		"あお":     {"002"},
		"0":       {"010", "002", "005", "001"},
		"00":      {"002", "005", "001"},
		"nothing": {},
	}

	for text, want := range cases {
		got := codes(filter.Apply(fixture(), Criteria{Text: text}))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("text %q mismatch (-want +got):\n%s", text, diff)
		}
	}
}

func TestFilterCategories(t *testing.T) {
	t.Parallel()

	filter := NewFilter(itemProfile())

	cases := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"series or within category", Criteria{SeriesKeys: NewSet("s1", "s2")}, []string{"010", "002", "005"}},
		{"series excludes missing", Criteria{SeriesKeys: NewSet("s1")}, []string{"010", "005"}},
		{"arc ex or core", Criteria{ArcCodes: NewSet("F")}, []string{"002", "001"}},
		{"colour intersects", Criteria{ColorFamilies: NewSet("yellow")}, []string{"001"}},
		{"colour mono fallback", Criteria{ColorFamilies: NewSet("mono")}, []string{"005"}},
		{"and across categories", Criteria{SeriesKeys: NewSet("s1", "s2"), ArcCodes: NewSet("B"), ColorFamilies: NewSet("blue")}, []string{"002"}},
		{"date lower bound", Criteria{DateFrom: "2023-02-01"}, []string{"010", "001"}},
		{"date upper bound", Criteria{DateTo: "2023-02-01"}, []string{"002", "001"}},
		{"date inclusive range", Criteria{DateFrom: "2023-01-01", DateTo: "2023-01-01"}, []string{"002"}},
	}

	for _, tc := range cases {
		got := codes(filter.Apply(fixture(), tc.criteria))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}

func TestFilterDateRangeScenario(t *testing.T) {
	t.Parallel()

	works := []item{
		{code: "a", published: "2023-01-01"},
		{code: "b", published: "2023-06-15"},
		{code: "c"},
	}

	got := codes(NewFilter(itemProfile()).Apply(works, Criteria{DateFrom: "2023-02-01"}))
	if diff := cmp.Diff([]string{"b"}, got); diff != "" {
		t.Fatalf("unexpected works (-want +got):\n%s", diff)
	}
}

func TestFilterIgnoresDatesWithoutAccessor(t *testing.T) {
	t.Parallel()

	profile := itemProfile()
	profile.PublishedAt = nil

	got := NewFilter(profile).Apply(fixture(), Criteria{DateFrom: "2099-01-01"})
	if len(got) != len(fixture()) {
		t.Fatalf("expected date bounds to be ignored for undated records, got %d", len(got))
	}
}

func TestFilterOrderIndependence(t *testing.T) {
	t.Parallel()

	filter := NewFilter(itemProfile())
	parts := []Criteria{
		{Text: "o"},
		{SeriesKeys: NewSet("s1", "s2")},
		{ArcCodes: NewSet("B", "F")},
		{ColorFamilies: NewSet("red", "blue", "mono")},
		{DateFrom: "2023-01-01"},
	}

	for i := range parts {
		for j := range parts {
			if i == j {
				continue
			}
			ab := filter.Apply(filter.Apply(fixture(), parts[i]), parts[j])
			ba := filter.Apply(filter.Apply(fixture(), parts[j]), parts[i])
			if diff := cmp.Diff(codes(ab), codes(ba)); diff != "" {
				t.Errorf("criteria %d and %d do not commute (-ab +ba):\n%s", i, j, diff)
			}
		}
	}
}

func TestSortModes(t *testing.T) {
	t.Parallel()

	records := fixture()
	sorter := NewSorter(itemProfile(), records)

	cases := map[Mode][]string{
		ModeCode:          {"010", "002", "005", "001"},
		ModeOriginal:      {"010", "002", "005", "001"},
		ModeRawCode:       {"001", "002", "005", "010"},
		ModePublishedAsc:  {"005", "002", "001", "010"},
		ModePublishedDesc: {"010", "001", "002", "005"},
		ModeTitle:         {"005", "002", "010", "001"},
		"unsupported":     {"010", "002", "005", "001"},
	}

	for mode, want := range cases {
		reversed := []item{records[3], records[2], records[1], records[0]}
		got := codes(sorter.Apply(reversed, mode))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mode %s mismatch (-want +got):\n%s", mode, diff)
		}
		if reversed[0].code != "001" {
			t.Fatalf("mode %s mutated its input", mode)
		}
	}
}

func TestSortTitleUsesKanaCollation(t *testing.T) {
	t.Parallel()

	records := []item{
		{code: "1", title: "Sakura", yomi: "さくら"},
		{code: "2", title: "Aoi", yomi: "あおい"},
	}

	got := NewSorter(itemProfile(), records).Apply(records, ModeTitle)
	if got[0].yomi != "あおい" || got[1].yomi != "さくら" {
		t.Fatalf("expected あおい before さくら, got %q then %q", got[0].yomi, got[1].yomi)
	}
}

func TestSortIsStable(t *testing.T) {
	t.Parallel()

	records := []item{
		{code: "c", title: "same", published: "2023-01-01"},
		{code: "a", title: "same", published: "2023-01-01"},
		{code: "b", title: "same", published: "2023-01-01"},
	}
	sorter := NewSorter(itemProfile(), records)

	for _, mode := range []Mode{ModeTitle, ModePublishedAsc, ModePublishedDesc} {
		got := codes(sorter.Apply(records, mode))
		if diff := cmp.Diff([]string{"c", "a", "b"}, got); diff != "" {
			t.Errorf("mode %s is not stable (-want +got):\n%s", mode, diff)
		}
	}

	duplicates := []item{{code: "x", title: "first"}, {code: "y"}, {code: "x", title: "second"}}
	got := NewSorter(itemProfile(), duplicates).Apply(duplicates, ModeCode)
	if got[0].title != "first" || got[1].title != "second" || got[2].code != "y" {
		t.Fatalf("expected duplicate codes to share a position and keep relative order, got %+v", got)
	}
}

func TestSortPlacesUnknownRecordsLast(t *testing.T) {
	t.Parallel()

	sorter := NewSorter(itemProfile(), fixture())
	got := codes(sorter.Apply([]item{{code: "zzz"}, {code: "001"}}, ModeCode))

	if diff := cmp.Diff([]string{"001", "zzz"}, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestProfileResolveAliases(t *testing.T) {
	t.Parallel()

	profile := Profile[item]{
		Modes:       []Mode{ModePublishedAsc, ModeCode},
		DefaultMode: ModePublishedAsc,
		Aliases:     map[Mode]Mode{ModeCode: ModeRawCode},
	}

	if got := profile.Resolve(ModeCode); got != ModeRawCode {
		t.Fatalf("expected code to resolve to rawCode, got %s", got)
	}
	if got := profile.Resolve(ModeTitle); got != ModePublishedAsc {
		t.Fatalf("expected unsupported mode to fall back to default, got %s", got)
	}
	if got := profile.Resolve(""); got != ModePublishedAsc {
		t.Fatalf("expected empty mode to fall back to default, got %s", got)
	}
	if profile.Supports(ModeTitle) {
		t.Fatalf("expected title to be unsupported")
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	t.Parallel()

	records := []item{
		{code: "001", title: "Alpha", series: "s1"},
		{code: "002", title: "Beta", series: "s2"},
	}

	got := Refresh(records, itemProfile(), Criteria{SeriesKeys: NewSet("s1")}, ModeCode)
	if diff := cmp.Diff([]string{"001"}, codes(got)); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestPipelineIsIdempotent(t *testing.T) {
	t.Parallel()

	pipeline := NewPipeline(fixture(), itemProfile())
	criteria := Criteria{Text: "o", ColorFamilies: NewSet("blue", "mono", "green")}

	first := pipeline.Refresh(criteria, ModeTitle)
	second := pipeline.Refresh(criteria, ModeTitle)

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(item{})); diff != "" {
		t.Fatalf("expected identical output (-first +second):\n%s", diff)
	}

	if pipeline.Len() != 4 || pipeline.Source()[0].code != "010" {
		t.Fatalf("expected source to keep load order")
	}
}

func TestPipelineFilterBeforeSortMatchesSortBeforeFilter(t *testing.T) {
	t.Parallel()

	profile := itemProfile()
	records := fixture()
	criteria := Criteria{SeriesKeys: NewSet("s1", "s2")}

	for _, mode := range []Mode{ModeCode, ModeTitle, ModePublishedDesc, ModeRawCode} {
		filtered := NewPipeline(records, profile).Refresh(criteria, mode)
		sorted := NewSorter(profile, records).Apply(records, mode)
		sortedThenFiltered := NewFilter(profile).Apply(sorted, criteria)

		if diff := cmp.Diff(codes(filtered), codes(sortedThenFiltered)); diff != "" {
			t.Errorf("mode %s: stage order changed output (-filter-first +sort-first):\n%s", mode, diff)
		}
	}
}

func TestPipelineHandlesEmptySource(t *testing.T) {
	t.Parallel()

	got := NewPipeline[item](nil, itemProfile()).Refresh(Criteria{Text: "x", DateFrom: "2020-01-01"}, ModeTitle)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}
