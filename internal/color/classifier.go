package color

import (
	"math"
	"strconv"
	"strings"
)

// Family is one of the nine colour buckets used to filter characters.
type Family string

const (
	Pink   Family = "pink"
	Red    Family = "red"
	Orange Family = "orange"
	Purple Family = "purple"
	Mono   Family = "mono"
	Yellow Family = "yellow"
	Blue   Family = "blue"
	Cyan   Family = "cyan"
	Green  Family = "green"
)

// DefaultFrameColor is used when a character has no usable colour.
const DefaultFrameColor = "#bfbfbf"

// Families lists every family in the order the filter chips are shown.
var Families = []Family{Pink, Red, Orange, Purple, Mono, Yellow, Blue, Cyan, Green}

var labels = map[Family]string{
	Pink:   "桃",
	Red:    "赤",
	Orange: "橙",
	Purple: "紫",
	Mono:   "白黒",
	Yellow: "黄",
	Blue:   "青",
	Cyan:   "水",
	Green:  "緑",
}

// Label returns the Japanese chip label for the family.
func (f Family) Label() string {
	return labels[f]
}

// Valid reports whether f names one of the nine families.
func (f Family) Valid() bool {
	_, ok := labels[f]
	return ok
}

// ParseFamily converts a user supplied family key, ignoring case and surrounding space.
func ParseFamily(value string) (Family, bool) {
	family := Family(strings.ToLower(strings.TrimSpace(value)))
	return family, family.Valid()
}

// Classify maps a 3- or 6-digit hex colour (optionally prefixed with '#') to its family.
// It returns false when the input cannot be parsed.
func Classify(hex string) (Family, bool) {
	r, g, b, ok := parseRGB(hex)
	if !ok {
		return "", false
	}

	h, s, l := toHSL(r, g, b)

	if s < 0.12 || l < 0.08 || l > 0.92 {
		return Mono, true
	}

	switch {
	case h >= 345 || h < 10:
		return Red, true
	case h < 35:
		return Orange, true
	case h < 65:
		return Yellow, true
	case h < 150:
		return Green, true
	case h < 195:
		return Cyan, true
	case h < 240:
		return Blue, true
	case h < 285:
		return Purple, true
	case h < 345:
		return Pink, true
	}

	return "", false
}

// FamiliesOf returns the distinct families of every parseable colour, in first-seen order.
// The result falls back to Mono and is never empty.
func FamiliesOf(colors []string) []Family {
	families := make([]Family, 0, len(colors))
	seen := make(map[Family]struct{}, len(colors))

	for _, raw := range colors {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		family, ok := Classify(trimmed)
		if !ok {
			continue
		}
		if _, dup := seen[family]; dup {
			continue
		}
		seen[family] = struct{}{}
		families = append(families, family)
	}

	if len(families) == 0 {
		return []Family{Mono}
	}
	return families
}

// Normalize returns the colour in "#rrggbb" form.
func Normalize(hex string) (string, bool) {
	digits, ok := expand(hex)
	if !ok {
		return "", false
	}
	return "#" + digits, true
}

// FrameColor picks the first valid colour of the list, or DefaultFrameColor.
func FrameColor(colors []string) string {
	for _, raw := range colors {
		if normalized, ok := Normalize(raw); ok {
			return normalized
		}
	}
	return DefaultFrameColor
}

func expand(hex string) (string, bool) {
	digits := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	switch len(digits) {
	case 3:
		var b strings.Builder
		b.Grow(6)
		for _, ch := range digits {
			b.WriteRune(ch)
			b.WriteRune(ch)
		}
		digits = b.String()
	case 6:
	default:
		return "", false
	}

	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return "", false
		}
	}

	return strings.ToLower(digits), true
}

func parseRGB(hex string) (float64, float64, float64, bool) {
	digits, ok := expand(hex)
	if !ok {
		return 0, 0, 0, false
	}

	channels := [3]float64{}
	for i := range channels {
		value, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return 0, 0, 0, false
		}
		channels[i] = float64(value) / 255
	}

	return channels[0], channels[1], channels[2], true
}

// toHSL returns hue in degrees [0,360) and saturation/lightness in [0,1].
func toHSL(r, g, b float64) (float64, float64, float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	delta := maxC - minC
	l := (maxC + minC) / 2

	if delta == 0 {
		return 0, 0, l
	}

	s := delta / (1 - math.Abs(2*l-1))

	var h float64
	switch maxC {
	case r:
		h = math.Mod((g-b)/delta, 6)
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	h *= 60
	if h < 0 {
		h += 360
	}

	return h, s, l
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
