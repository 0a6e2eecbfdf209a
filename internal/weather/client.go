// Package weather is the OpenWeatherMap data client: current conditions,
// hourly and daily forecasts, and locally synthesized alerts.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/skycast-io/skycast/internal/apierr"
	"github.com/skycast-io/skycast/internal/condition"
	"github.com/skycast-io/skycast/internal/config"
	"github.com/skycast-io/skycast/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type Client struct {
	baseURL string
	apiKey  string
	units   string
	client  *http.Client
	logger  *zap.Logger
	tele    *telemetry.Telemetry
	loc     *time.Location
}

func NewClient(cfg config.WeatherConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		units:   cfg.Units,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		logger: logger,
		tele:   tele,
		loc:    time.Local,
	}
}

// SetLocation overrides the time zone used for hour labels and daily
// grouping. Defaults to the process-local zone.
func (c *Client) SetLocation(loc *time.Location) {
	c.loc = loc
}

// Current fetches the current conditions for a coordinate pair.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*Snapshot, error) {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "weather.Current")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
	)

	var data currentResponse
	if err := c.get(ctx, "weather.Current", "/weather", lat, lon, &data); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	if len(data.Weather) == 0 {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, apierr.Network("weather.Current", 0, fmt.Errorf("response has no weather entries"))
	}

	visibility := data.Visibility
	if visibility == 0 {
		visibility = 10000
	}

	span.SetAttributes(attribute.Bool("success", true))

	return &Snapshot{
		Location:      data.Name,
		Country:       data.Sys.Country,
		Temperature:   roundInt(data.Main.Temp),
		Description:   data.Weather[0].Description,
		Condition:     condition.Classify(data.Weather[0].Main),
		Humidity:      data.Main.Humidity,
		WindSpeed:     kmh(data.Wind.Speed),
		WindDirection: data.Wind.Deg,
		Pressure:      data.Main.Pressure,
		UVIndex:       0, // requires the separate One Call endpoint
		Visibility:    roundInt(float64(visibility) / 1000),
		Sunrise:       data.Sys.Sunrise,
		Sunset:        data.Sys.Sunset,
		Icon:          data.Weather[0].Icon,
	}, nil
}

// Hourly returns the next 8 forecast samples (~24h at 3h resolution),
// preserving provider order.
func (c *Client) Hourly(ctx context.Context, lat, lon float64) ([]HourlyPoint, error) {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "weather.Hourly")
	defer span.End()

	var data forecastResponse
	if err := c.get(ctx, "weather.Hourly", "/forecast", lat, lon, &data); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	items := data.List
	if len(items) > 8 {
		items = items[:8]
	}

	points := make([]HourlyPoint, 0, len(items))
	for _, item := range items {
		if len(item.Weather) == 0 {
			continue
		}
		t := time.Unix(item.Dt, 0).In(c.loc)
		points = append(points, HourlyPoint{
			Time:        t.Format(time.RFC3339),
			Hour:        fmt.Sprintf("%02d", t.Hour()),
			Temp:        roundInt(item.Main.Temp),
			Humidity:    item.Main.Humidity,
			WindSpeed:   kmh(item.Wind.Speed),
			Description: item.Weather[0].Description,
			Icon:        item.Weather[0].Icon,
		})
	}

	span.SetAttributes(attribute.Int("points", len(points)))
	return points, nil
}

func (c *Client) get(ctx context.Context, op, path string, lat, lon float64, target interface{}) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return apierr.Network(op, 0, err)
	}

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("appid", c.apiKey)
	q.Set("units", c.units)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return apierr.Network(op, 0, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Weather API request failed", zap.String("op", op), zap.Error(err))
		return apierr.Wrap(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Weather API returned non-success status",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode))
		return apierr.Network(op, resp.StatusCode, nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return apierr.Network(op, 0, err)
	}

	return nil
}

// kmh converts provider wind speed in m/s to rounded km/h.
func kmh(ms float64) int {
	return roundInt(ms * 3.6)
}

func roundInt(f float64) int {
	return int(math.Round(f))
}
