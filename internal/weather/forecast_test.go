package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/skycast-io/skycast/internal/condition"
)

func itemJSON(dt int64, temp float64, humidity int, wind float64, main, desc string) string {
	return fmt.Sprintf(`{
		"dt": %d,
		"main": {"temp": %g, "humidity": %d},
		"weather": [{"main": %q, "description": %q, "icon": "03d"}],
		"wind": {"speed": %g}
	}`, dt, temp, humidity, main, desc, wind)
}

func TestItemJSONFieldPlacement(t *testing.T) {
	var item forecastItem
	if err := json.Unmarshal([]byte(itemJSON(1705309200, 12.5, 70, 4.2, "Rain", "light rain")), &item); err != nil {
		t.Fatalf("helper produced invalid JSON: %v", err)
	}

	if item.Dt != 1705309200 || item.Main.Temp != 12.5 || item.Main.Humidity != 70 {
		t.Errorf("unexpected main fields: %+v", item)
	}
	if item.Wind.Speed != 4.2 {
		t.Errorf("wind speed = %g, want 4.2", item.Wind.Speed)
	}
	if len(item.Weather) != 1 || item.Weather[0].Main != "Rain" || item.Weather[0].Description != "light rain" {
		t.Errorf("unexpected weather entry: %+v", item.Weather)
	}
}

func forecastHandler(items ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"list":[` + strings.Join(items, ",") + `]}`))
	})
}

func TestDailyAggregatesPerDate(t *testing.T) {
	// Two local dates, three samples each: temps [10,12,14] and [20,18,16].
	day1 := int64(1705309200) // 2024-01-15T09:00:00Z
	day2 := day1 + 86400

	handler := forecastHandler(
		itemJSON(day1, 10, 60, 5, "Clouds", "scattered clouds"),
		itemJSON(day1+10800, 12, 70, 5, "Clouds", "scattered clouds"),
		itemJSON(day1+21600, 14, 80, 5, "Clouds", "scattered clouds"),
		itemJSON(day2, 20, 50, 10, "Clear", "clear sky"),
		itemJSON(day2+10800, 18, 50, 10, "Clear", "clear sky"),
		itemJSON(day2+21600, 16, 50, 10, "Clear", "clear sky"),
	)

	days, err := newTestClient(t, handler).Daily(context.Background(), 52.52, 13.41)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}

	first := days[0]
	if first.Temp != 12 || first.TempMin != 10 || first.TempMax != 14 {
		t.Errorf("day 1 temps = %d/%d/%d, want 12/10/14", first.Temp, first.TempMin, first.TempMax)
	}
	if first.Date != "2024-01-15" || first.Day != "Monday" {
		t.Errorf("day 1 labeled %s %s, want Monday 2024-01-15", first.Day, first.Date)
	}
	if first.Humidity != 70 {
		t.Errorf("day 1 humidity = %d, want 70", first.Humidity)
	}
	if first.WindSpeed != 18 {
		t.Errorf("day 1 wind = %d, want 18 (5 m/s averaged)", first.WindSpeed)
	}

	second := days[1]
	if second.Temp != 18 || second.TempMin != 16 || second.TempMax != 20 {
		t.Errorf("day 2 temps = %d/%d/%d, want 18/16/20", second.Temp, second.TempMin, second.TempMax)
	}
	if second.Condition != condition.Clear {
		t.Errorf("day 2 condition = %s, want clear", second.Condition)
	}
}

func TestDailyDominantConditionByFrequency(t *testing.T) {
	day := int64(1705309200)

	handler := forecastHandler(
		itemJSON(day, 10, 60, 5, "Clouds", "scattered clouds"),
		itemJSON(day+10800, 11, 60, 5, "Rain", "light rain"),
		itemJSON(day+21600, 12, 60, 5, "Rain", "moderate rain"),
	)

	days, err := newTestClient(t, handler).Daily(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if days[0].Condition != condition.Rain {
		t.Errorf("dominant condition = %s, want rain", days[0].Condition)
	}
	// Description comes from the first sample of the dominant condition.
	if days[0].Description != "light rain" {
		t.Errorf("description = %q, want %q", days[0].Description, "light rain")
	}
}

func TestDailyTieBreaksToFirstSeen(t *testing.T) {
	day := int64(1705309200)

	// Rain and Clouds both occur twice; Rain appears first.
	handler := forecastHandler(
		itemJSON(day, 10, 60, 5, "Rain", "light rain"),
		itemJSON(day+10800, 11, 60, 5, "Clouds", "scattered clouds"),
		itemJSON(day+21600, 12, 60, 5, "Clouds", "broken clouds"),
		itemJSON(day+32400, 13, 60, 5, "Rain", "moderate rain"),
	)

	days, err := newTestClient(t, handler).Daily(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if days[0].Condition != condition.Rain {
		t.Errorf("tie broke to %s, want rain (first seen)", days[0].Condition)
	}
}

func TestDailyBoundedToSevenDays(t *testing.T) {
	day := int64(1705309200)

	items := make([]string, 0, 9)
	for i := 0; i < 9; i++ {
		items = append(items, itemJSON(day+int64(i)*86400, 10, 60, 5, "Clouds", "scattered clouds"))
	}

	days, err := newTestClient(t, forecastHandler(items...)).Daily(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(days) != 7 {
		t.Errorf("expected 7 days, got %d", len(days))
	}
}
