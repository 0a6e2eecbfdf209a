package location

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skycast-io/skycast/internal/apierr"
	"github.com/skycast-io/skycast/internal/config"
	"github.com/skycast-io/skycast/pkg/telemetry"
	"go.uber.org/zap"
)

type mockRoundTripper struct {
	handler http.Handler
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := httptest.NewRecorder()
	m.handler.ServeHTTP(rec, req)
	return rec.Result(), nil
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	tele, err := telemetry.New(context.Background(), config.TelemetryConfig{Enabled: false})
	if err != nil {
		t.Fatalf("telemetry.New: %v", err)
	}

	c := NewClient(config.GeocodingConfig{
		BaseURL:      "http://geo.test/geo/1.0",
		APIKey:       "test-key",
		Timeout:      5,
		SearchLimit:  5,
		RateLimitRPS: 100,
		RateBurst:    10,
	}, zap.NewNop(), tele)
	c.client = &http.Client{Transport: &mockRoundTripper{handler: handler}}

	return c
}

func TestSearchShortQuerySkipsNetwork(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("short query must not reach the network")
	})
	client := newTestClient(t, handler)

	for _, q := range []string{"", "a", " a ", "  "} {
		places, err := client.Search(context.Background(), q, 5)
		if err != nil {
			t.Fatalf("Search(%q): unexpected error %v", q, err)
		}
		if len(places) != 0 {
			t.Errorf("Search(%q) returned %d places, want 0", q, len(places))
		}
	}
}

func TestSearchMapsResults(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geo/1.0/direct" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "paris" {
			t.Errorf("expected q=paris, got %s", r.URL.Query().Get("q"))
		}
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("expected limit=5, got %s", r.URL.Query().Get("limit"))
		}

		w.Write([]byte(`[
			{"name": "Paris", "lat": 48.8566, "lon": 2.3522, "country": "FR"},
			{"name": "Paris", "lat": 33.6609, "lon": -95.5555, "country": "US", "state": "Texas"}
		]`))
	})

	places, err := newTestClient(t, handler).Search(context.Background(), "paris", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(places) != 2 {
		t.Fatalf("expected 2 places, got %d", len(places))
	}

	if places[0].DisplayName != "Paris, FR" {
		t.Errorf("display name = %q, want %q", places[0].DisplayName, "Paris, FR")
	}
	if places[1].DisplayName != "Paris, Texas, US" {
		t.Errorf("display name = %q, want %q", places[1].DisplayName, "Paris, Texas, US")
	}
	if places[0].ID == places[1].ID {
		t.Error("candidate ids must differ by index")
	}
}

func TestSearchNonSuccessStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := newTestClient(t, handler).Search(context.Background(), "paris", 5)
	if err == nil {
		t.Fatal("expected error for non-success status")
	}
	if !apierr.IsNetwork(err) {
		t.Errorf("expected network error kind, got %v", err)
	}
}

func TestReverseBestEffort(t *testing.T) {
	// Upstream failure yields nil, not an error.
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	if place := newTestClient(t, failing).Reverse(context.Background(), 48.85, 2.35); place != nil {
		t.Errorf("expected nil on upstream failure, got %+v", place)
	}

	// Zero results also yields nil.
	empty := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	if place := newTestClient(t, empty).Reverse(context.Background(), 0, 0); place != nil {
		t.Errorf("expected nil for zero results, got %+v", place)
	}
}

func TestReverseReturnsPlace(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geo/1.0/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "1" {
			t.Errorf("expected limit=1, got %s", r.URL.Query().Get("limit"))
		}

		w.Write([]byte(`[{"name": "New York", "lat": 40.7128, "lon": -74.006, "country": "US", "state": "NY"}]`))
	})

	place := newTestClient(t, handler).Reverse(context.Background(), 40.7128, -74.006)
	if place == nil {
		t.Fatal("expected a place")
	}
	if place.DisplayName != "New York, NY, US" {
		t.Errorf("display name = %q, want %q", place.DisplayName, "New York, NY, US")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name, state, country string
		want                 string
	}{
		{"Paris", "", "FR", "Paris, FR"},
		{"New York", "NY", "US", "New York, NY, US"},
		{"Springfield", "Illinois", "US", "Springfield, Illinois, US"},
		{"Atlantis", "", "", "Atlantis"},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.name, tt.state, tt.country); got != tt.want {
			t.Errorf("DisplayName(%q, %q, %q) = %q, want %q", tt.name, tt.state, tt.country, got, tt.want)
		}
	}
}

func TestPopularCitiesStable(t *testing.T) {
	first := PopularCities()
	second := PopularCities()

	if len(first) != 5 {
		t.Fatalf("expected 5 popular cities, got %d", len(first))
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("popular cities not stable at index %d", i)
		}
	}

	if first[0].Name != "New York" || first[4].Name != "Sydney" {
		t.Errorf("unexpected ordering: %s ... %s", first[0].Name, first[4].Name)
	}
}
