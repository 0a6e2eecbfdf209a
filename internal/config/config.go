package config

import (
	"sync/atomic"
)

var configValue atomic.Value

func GetConfig() *Config {
	return configValue.Load().(*Config)
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string          `mapstructure:"version"`
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Weather     WeatherConfig   `mapstructure:"weather"`
	Geocoding   GeocodingConfig `mapstructure:"geocoding"`
	Dashboard   DashboardConfig `mapstructure:"dashboard"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// WeatherConfig configures the OpenWeatherMap data client. The API key is
// injected here and never baked into code.
type WeatherConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"`
	Units   string `mapstructure:"units"`
}

// GeocodingConfig configures the location client, including outbound
// rate limiting against the geocoding API.
type GeocodingConfig struct {
	BaseURL      string  `mapstructure:"base_url"`
	APIKey       string  `mapstructure:"api_key"`
	Timeout      int     `mapstructure:"timeout"`
	SearchLimit  int     `mapstructure:"search_limit"`
	RateLimitRPS float64 `mapstructure:"rate_limit_rps"`
	RateBurst    int     `mapstructure:"rate_burst"`
}

// DashboardConfig tunes the orchestrator: the visual transition hold window,
// the search debounce interval, and the fallback coordinates used when no
// device position is available.
type DashboardConfig struct {
	TransitionWindowMS int     `mapstructure:"transition_window_ms"`
	SearchDebounceMS   int     `mapstructure:"search_debounce_ms"`
	DefaultLatitude    float64 `mapstructure:"default_latitude"`
	DefaultLongitude   float64 `mapstructure:"default_longitude"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5",
			APIKey:  "",
			Timeout: 10,
			Units:   "metric",
		},
		Geocoding: GeocodingConfig{
			BaseURL:      "https://api.openweathermap.org/geo/1.0",
			APIKey:       "",
			Timeout:      10,
			SearchLimit:  5,
			RateLimitRPS: 5,
			RateBurst:    3,
		},
		Dashboard: DashboardConfig{
			TransitionWindowMS: 1000,
			SearchDebounceMS:   300,
			DefaultLatitude:    51.5074,
			DefaultLongitude:   -0.1278,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "tempo:4317",
		},
	}
}
