package match

import "strings"

// relatedIndustries maps an industry family to the niches considered near it.
var relatedIndustries = map[string][]string{
	"fashion":    {"clothing", "beauty", "accessories", "lifestyle"},
	"technology": {"electronics", "gadgets", "software", "gaming"},
	"food":       {"cooking", "restaurant", "beverages", "nutrition"},
	"fitness":    {"health", "sports", "wellness", "nutrition"},
	"travel":     {"tourism", "hospitality", "adventure", "lifestyle"},
}

// RelatedNiche reports whether two industry/niche strings belong to the same
// family. The comparison is substring based and case-insensitive, so
// "High Fashion" is related to "Beauty Products".
func RelatedNiche(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)

	for key, values := range relatedIndustries {
		if strings.Contains(a, key) && (anyContained(values, b) || strings.Contains(b, key)) {
			return true
		}
		if strings.Contains(b, key) && (anyContained(values, a) || strings.Contains(a, key)) {
			return true
		}
		for _, v := range values {
			if strings.Contains(a, v) && strings.Contains(b, v) {
				return true
			}
		}
	}
	return false
}

func anyContained(values []string, s string) bool {
	for _, v := range values {
		if strings.Contains(s, v) {
			return true
		}
	}
	return false
}
