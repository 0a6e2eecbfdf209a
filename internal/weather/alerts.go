package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Alert thresholds on the current snapshot.
const (
	windAlertKmh  = 50
	heatAlertTemp = 35
	coldAlertTemp = -10
)

// Alerts derives synthetic alerts from one additional current-weather fetch.
// It never fails outward: any error yields an empty slice. Alerts are a
// best-effort enhancement, not critical path.
func (c *Client) Alerts(ctx context.Context, lat, lon float64) []Alert {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "weather.Alerts")
	defer span.End()

	snap, err := c.Current(ctx, lat, lon)
	if err != nil {
		c.logger.Warn("Skipping alert synthesis", zap.Error(err))
		span.SetAttributes(attribute.Bool("success", false))
		return []Alert{}
	}

	alerts := SynthesizeAlerts(snap, time.Now())
	span.SetAttributes(attribute.Int("alerts", len(alerts)))
	return alerts
}

// SynthesizeAlerts applies the threshold rules to a snapshot.
func SynthesizeAlerts(snap *Snapshot, now time.Time) []Alert {
	alerts := []Alert{}
	start := now.UnixMilli()

	if snap.WindSpeed > windAlertKmh {
		alerts = append(alerts, Alert{
			ID:          "wind-warning",
			Title:       "High Wind Warning",
			Description: fmt.Sprintf("Strong winds of %d km/h detected. Secure loose objects and avoid unnecessary travel.", snap.WindSpeed),
			Severity:    SeverityModerate,
			Start:       start,
			End:         now.Add(6 * time.Hour).UnixMilli(),
			Tags:        []string{"wind"},
		})
	}

	cond := strings.ToLower(string(snap.Condition))
	if strings.Contains(cond, "storm") || strings.Contains(cond, "thunder") {
		alerts = append(alerts, Alert{
			ID:          "storm-warning",
			Title:       "Thunderstorm Alert",
			Description: "Thunderstorms with heavy rain and lightning are in your area. Stay indoors and avoid outdoor activities.",
			Severity:    SeveritySevere,
			Start:       start,
			End:         now.Add(4 * time.Hour).UnixMilli(),
			Tags:        []string{"storm", "rain", "lightning"},
		})
	}

	if snap.Temperature > heatAlertTemp {
		alerts = append(alerts, Alert{
			ID:          "heat-warning",
			Title:       "Extreme Heat Warning",
			Description: fmt.Sprintf("Temperature of %d°C poses health risks. Stay hydrated and avoid prolonged sun exposure.", snap.Temperature),
			Severity:    SeverityModerate,
			Start:       start,
			End:         now.Add(8 * time.Hour).UnixMilli(),
			Tags:        []string{"heat"},
		})
	}

	if snap.Temperature < coldAlertTemp {
		alerts = append(alerts, Alert{
			ID:          "cold-warning",
			Title:       "Extreme Cold Warning",
			Description: fmt.Sprintf("Temperature of %d°C poses risk of frostbite. Dress warmly and limit outdoor exposure.", snap.Temperature),
			Severity:    SeveritySevere,
			Start:       start,
			End:         now.Add(12 * time.Hour).UnixMilli(),
			Tags:        []string{"cold"},
		})
	}

	return alerts
}
