package weather

import "github.com/skycast-io/skycast/internal/condition"

// Snapshot is a single point-in-time weather reading, already converted to
// display units: integer degrees Celsius, integer km/h, km visibility.
type Snapshot struct {
	Location      string             `json:"location"`
	Country       string             `json:"country"`
	Temperature   int                `json:"temperature"`
	Description   string             `json:"description"`
	Condition     condition.Category `json:"condition"`
	Humidity      int                `json:"humidity"`
	WindSpeed     int                `json:"wind_speed"`
	WindDirection int                `json:"wind_direction"`
	Pressure      int                `json:"pressure"`
	UVIndex       int                `json:"uv_index"`
	Visibility    int                `json:"visibility"`
	Sunrise       int64              `json:"sunrise"`
	Sunset        int64              `json:"sunset"`
	Icon          string             `json:"icon"`
}

// HourlyPoint is one 3-hour forecast sample.
type HourlyPoint struct {
	Time        string `json:"time"`
	Hour        string `json:"hour"`
	Temp        int    `json:"temp"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// DailyPoint aggregates one calendar day of forecast samples.
type DailyPoint struct {
	Day         string             `json:"day"`
	Date        string             `json:"date"`
	Temp        int                `json:"temp"`
	TempMin     int                `json:"temp_min"`
	TempMax     int                `json:"temp_max"`
	Condition   condition.Category `json:"condition"`
	Description string             `json:"description"`
	Icon        string             `json:"icon"`
	Humidity    int                `json:"humidity"`
	WindSpeed   int                `json:"wind_speed"`
}

type Severity int

const (
	SeverityMinor Severity = iota
	SeverityModerate
	SeveritySevere
	SeverityExtreme
)

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "minor"
	case SeverityModerate:
		return "moderate"
	case SeveritySevere:
		return "severe"
	case SeverityExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"moderate"`:
		*s = SeverityModerate
	case `"severe"`:
		*s = SeveritySevere
	case `"extreme"`:
		*s = SeverityExtreme
	default:
		*s = SeverityMinor
	}
	return nil
}

// Alert is synthesized locally from thresholds on the current snapshot; it is
// not sourced from a real alerting feed.
type Alert struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Start       int64    `json:"start"`
	End         int64    `json:"end"`
	Tags        []string `json:"tags"`
}

// currentResponse is the OpenWeatherMap /weather payload. Visibility may be
// absent from the response.
type currentResponse struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Main struct {
		Temp     float64 `json:"temp"`
		Pressure int     `json:"pressure"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Visibility int `json:"visibility"`
}

// forecastResponse is the OpenWeatherMap 5-day /forecast payload.
type forecastResponse struct {
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}
