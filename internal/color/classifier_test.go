package color

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyHueBuckets(t *testing.T) {
	t.Parallel()

	cases := []struct {
		hex    string
		family Family
	}{
		{"#FF0000", Red},
		{"#FF003C", Red},
		{"#FF0044", Pink},
		{"#FF8000", Orange},
		{"#FFFF00", Yellow},
		{"#00FF00", Green},
		{"#00FFFF", Cyan},
		{"#0080FF", Blue},
		{"#0000FF", Purple},
		{"#FF00FF", Pink},
		{"abc", Blue},
		{"  #f00 ", Red},
	}

	for _, tc := range cases {
		family, ok := Classify(tc.hex)
		if !ok {
			t.Fatalf("expected %q to be classifiable", tc.hex)
		}
		if family != tc.family {
			t.Errorf("expected %q to classify as %s, got %s", tc.hex, tc.family, family)
		}
	}
}

func TestClassifyAchromatic(t *testing.T) {
	t.Parallel()

	for _, hex := range []string{"#808080", "#000000", "#FFFFFF", "#140000", "#FFF0F0", "#101010"} {
		family, ok := Classify(hex)
		if !ok || family != Mono {
			t.Errorf("expected %q to classify as mono, got %q (ok=%v)", hex, family, ok)
		}
	}
}

func TestClassifyRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	for _, hex := range []string{"", "#", "#12", "#1234", "#12345", "#1234567", "#GGGGGG", "zzz", "# ff0000", "##ff0000", "rgb(0,0,0)"} {
		family, ok := Classify(hex)
		if ok {
			t.Errorf("expected %q to be unclassifiable, got %q", hex, family)
		}
		if family != "" {
			t.Errorf("expected empty family for %q, got %q", hex, family)
		}
	}
}

func TestFamiliesOfDeduplicatesInOrder(t *testing.T) {
	t.Parallel()

	got := FamiliesOf([]string{"#ff0000", "  ", "#00ff00", "not-a-colour", "#f00", "#808080"})
	want := []Family{Red, Green, Mono}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected families (-want +got):\n%s", diff)
	}
}

func TestFamiliesOfFallsBackToMono(t *testing.T) {
	t.Parallel()

	for _, colors := range [][]string{nil, {}, {"", "xyz"}} {
		got := FamiliesOf(colors)
		if diff := cmp.Diff([]Family{Mono}, got); diff != "" {
			t.Errorf("expected mono fallback for %v (-want +got):\n%s", colors, diff)
		}
	}
}

func TestFrameColor(t *testing.T) {
	t.Parallel()

	if got := FrameColor([]string{"bogus", " AbC "}); got != "#aabbcc" {
		t.Fatalf("expected first valid colour normalised to #aabbcc, got %q", got)
	}

	if got := FrameColor(nil); got != DefaultFrameColor {
		t.Fatalf("expected default frame colour, got %q", got)
	}
}

func TestParseFamily(t *testing.T) {
	t.Parallel()

	if family, ok := ParseFamily(" Blue "); !ok || family != Blue {
		t.Fatalf("expected blue, got %q (ok=%v)", family, ok)
	}

	if _, ok := ParseFamily("teal"); ok {
		t.Fatalf("expected teal to be rejected")
	}

	if len(Families) != 9 {
		t.Fatalf("expected nine families, got %d", len(Families))
	}
	for _, family := range Families {
		if family.Label() == "" {
			t.Errorf("expected label for %s", family)
		}
	}
}
