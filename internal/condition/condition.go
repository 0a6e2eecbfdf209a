// Package condition maps free-text weather descriptions to the closed set of
// categories that drive icon, background and animation selection.
package condition

import "strings"

type Category string

const (
	Thunderstorm Category = "thunderstorm"
	Rain         Category = "rain"
	Drizzle      Category = "drizzle"
	Snow         Category = "snow"
	Clear        Category = "clear"
	Clouds       Category = "clouds"
	Mist         Category = "mist"
	Wind         Category = "wind"
)

// Classify picks exactly one category for a free-text condition string.
// Matching is ordered substring containment, first match wins. The order
// matters: labels are not mutually exclusive substrings ("light rain and
// wind" must classify as rain, not wind), so thunder/storm is checked first
// and wind last before the fallback. Unrecognized or empty input is clouds.
func Classify(desc string) Category {
	s := strings.ToLower(desc)

	switch {
	case strings.Contains(s, "thunder") || strings.Contains(s, "storm"):
		return Thunderstorm
	case strings.Contains(s, "rain"):
		return Rain
	case strings.Contains(s, "drizzle"):
		return Drizzle
	case strings.Contains(s, "snow"):
		return Snow
	case strings.Contains(s, "clear") || strings.Contains(s, "sunny"):
		return Clear
	case strings.Contains(s, "cloud"):
		return Clouds
	case strings.Contains(s, "mist") || strings.Contains(s, "fog") || strings.Contains(s, "haze"):
		return Mist
	case strings.Contains(s, "wind"):
		return Wind
	default:
		return Clouds
	}
}

type Variant string

const (
	Day   Variant = "day"
	Night Variant = "night"
)

// VariantFor selects the day/night presentation variant from the local
// wall-clock hour: night before 06:00 and after 18:00.
func VariantFor(hour int) Variant {
	if hour < 6 || hour > 18 {
		return Night
	}
	return Day
}
