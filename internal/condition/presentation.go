package condition

import "strings"

// IconCode returns the icon identifier for a category and day/night variant,
// mirroring the OpenWeatherMap icon families.
func IconCode(cat Category, v Variant) string {
	night := v == Night

	switch cat {
	case Thunderstorm:
		return "zap"
	case Rain:
		return "cloud-rain"
	case Drizzle:
		return "cloud-drizzle"
	case Snow:
		return "cloud-snow"
	case Clear:
		if night {
			return "moon"
		}
		return "sun"
	case Mist:
		return "haze"
	case Wind:
		return "wind"
	default:
		if night {
			return "cloud-moon"
		}
		return "cloud"
	}
}

// Background returns the background variant key for a category.
func Background(cat Category) string {
	switch cat {
	case Clear:
		return "clear-sky"
	case Rain, Drizzle, Thunderstorm:
		return "storm-clouds"
	case Snow:
		return "snowfall"
	case Mist:
		return "fog-bank"
	default:
		return "overcast"
	}
}

type Intensity string

const (
	Light    Intensity = "light"
	Moderate Intensity = "moderate"
	Heavy    Intensity = "heavy"
)

// IntensityFor grades the animation effect from the raw description and the
// current wind speed in km/h.
func IntensityFor(desc string, windKmh int) Intensity {
	s := strings.ToLower(desc)

	if strings.Contains(s, "heavy") || strings.Contains(s, "storm") || windKmh > 30 {
		return Heavy
	}
	if strings.Contains(s, "light") || windKmh < 10 {
		return Light
	}
	return Moderate
}
