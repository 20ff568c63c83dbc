package planner

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CityKey normalizes a free-text city name into a join key: diacritics are
// stripped, đ/Đ is folded to d/D (it carries a stroke, not a combining mark,
// so NFD alone leaves it untouched), then the result is trimmed and
// lowercased. "Đà Nẵng" and "da nang" both normalize to "da nang".
//
// Two names that normalize equal are treated as the same city for joining
// hotels and restaurants to itineraries. This is a heuristic, not a canonical
// city registry: differently spelled cities that strip to the same key will
// merge.
func CityKey(city string) string {
	if city == "" {
		return ""
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, city)
	if err != nil {
		stripped = city
	}

	stripped = strings.ReplaceAll(stripped, "đ", "d")
	stripped = strings.ReplaceAll(stripped, "Đ", "D")

	return strings.ToLower(strings.TrimSpace(stripped))
}

// SameCity reports whether two free-text city names normalize to the same key
func SameCity(a, b string) bool {
	return CityKey(a) == CityKey(b)
}
