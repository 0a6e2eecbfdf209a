// Package location is the geocoding client: forward search, best-effort
// reverse lookup, and the static popular-cities list.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skycast-io/skycast/internal/apierr"
	"github.com/skycast-io/skycast/internal/config"
	"github.com/skycast-io/skycast/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Place is a geocoded place candidate. The ID is derived from coordinates
// and result index and is not globally stable.
type Place struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Country     string  `json:"country"`
	State       string  `json:"state,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

type geocodeResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

type Client struct {
	baseURL      string
	apiKey       string
	defaultLimit int
	client       *http.Client
	limiter      *rate.Limiter
	logger       *zap.Logger
	tele         *telemetry.Telemetry
}

func NewClient(cfg config.GeocodingConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Client {
	return &Client{
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		defaultLimit: cfg.SearchLimit,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateBurst),
		logger:  logger,
		tele:    tele,
	}
}

// Search resolves free text to place candidates. Queries shorter than two
// characters after trimming return an empty slice without touching the
// network; the user is presumably still typing.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []Place{}, nil
	}

	if limit <= 0 {
		limit = c.defaultLimit
	}

	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "location.Search")
	defer span.End()
	span.SetAttributes(attribute.String("query", query), attribute.Int("limit", limit))

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	results, err := c.get(ctx, "location.Search", "/direct", params)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	places := make([]Place, 0, len(results))
	for i, r := range results {
		places = append(places, placeFromResult(r, i))
	}

	span.SetAttributes(attribute.Int("results", len(places)))
	return places, nil
}

// Reverse looks up a place name for coordinates. It is best effort: zero
// results and transport errors both yield nil, with the error logged only.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) *Place {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "location.Reverse")
	defer span.End()

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("limit", "1")

	results, err := c.get(ctx, "location.Reverse", "/reverse", params)
	if err != nil {
		c.logger.Warn("Reverse geocode failed",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err))
		span.SetAttributes(attribute.Bool("success", false))
		return nil
	}

	if len(results) == 0 {
		return nil
	}

	place := placeFromResult(results[0], 0)
	return &place
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values) ([]geocodeResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apierr.Wrap(op, err)
	}

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, apierr.Network(op, 0, err)
	}

	q := u.Query()
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("appid", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, apierr.Network(op, 0, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apierr.Wrap(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apierr.Network(op, resp.StatusCode, nil)
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, apierr.Network(op, 0, err)
	}

	return results, nil
}

func placeFromResult(r geocodeResult, index int) Place {
	return Place{
		ID:          fmt.Sprintf("%g-%g-%d", r.Lat, r.Lon, index),
		Name:        r.Name,
		DisplayName: DisplayName(r.Name, r.State, r.Country),
		Country:     r.Country,
		State:       r.State,
		Lat:         r.Lat,
		Lon:         r.Lon,
	}
}

// DisplayName composes "name[, state][, country]"; the state segment is
// included only when present.
func DisplayName(name, state, country string) string {
	display := name
	if state != "" {
		display += ", " + state
	}
	if country != "" {
		display += ", " + country
	}
	return display
}
