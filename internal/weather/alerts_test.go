package weather

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/skycast-io/skycast/internal/condition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeAlertsWind(t *testing.T) {
	snap := &Snapshot{WindSpeed: 60, Temperature: 20, Condition: condition.Clear}

	alerts := SynthesizeAlerts(snap, time.Now())

	require.Len(t, alerts, 1)
	assert.Equal(t, "wind-warning", alerts[0].ID)
	assert.Equal(t, []string{"wind"}, alerts[0].Tags)
	assert.Equal(t, SeverityModerate, alerts[0].Severity)
}

func TestSynthesizeAlertsHeat(t *testing.T) {
	snap := &Snapshot{WindSpeed: 10, Temperature: 38, Condition: condition.Clear}

	alerts := SynthesizeAlerts(snap, time.Now())

	require.Len(t, alerts, 1)
	assert.Equal(t, "heat-warning", alerts[0].ID)
	assert.Equal(t, []string{"heat"}, alerts[0].Tags)
}

func TestSynthesizeAlertsCold(t *testing.T) {
	snap := &Snapshot{WindSpeed: 10, Temperature: -15, Condition: condition.Snow}

	alerts := SynthesizeAlerts(snap, time.Now())

	require.Len(t, alerts, 1)
	assert.Equal(t, "cold-warning", alerts[0].ID)
	assert.Equal(t, SeveritySevere, alerts[0].Severity)
}

func TestSynthesizeAlertsStorm(t *testing.T) {
	snap := &Snapshot{WindSpeed: 20, Temperature: 20, Condition: condition.Thunderstorm}

	alerts := SynthesizeAlerts(snap, time.Now())

	require.Len(t, alerts, 1)
	assert.Equal(t, "storm-warning", alerts[0].ID)
	assert.Contains(t, alerts[0].Tags, "storm")
}

func TestSynthesizeAlertsMultipleThresholds(t *testing.T) {
	snap := &Snapshot{WindSpeed: 60, Temperature: 38, Condition: condition.Clear}

	alerts := SynthesizeAlerts(snap, time.Now())

	require.Len(t, alerts, 2)
	assert.Equal(t, "wind-warning", alerts[0].ID)
	assert.Equal(t, "heat-warning", alerts[1].ID)
}

func TestSynthesizeAlertsNoneBelowThresholds(t *testing.T) {
	snap := &Snapshot{WindSpeed: 50, Temperature: 35, Condition: condition.Clear}

	alerts := SynthesizeAlerts(snap, time.Now())
	assert.Empty(t, alerts)
}

func TestAlertsSwallowsUpstreamErrors(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	alerts := newTestClient(t, handler).Alerts(context.Background(), 0, 0)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestSeverityOrdering(t *testing.T) {
	assert.True(t, SeverityMinor < SeverityModerate)
	assert.True(t, SeverityModerate < SeveritySevere)
	assert.True(t, SeveritySevere < SeverityExtreme)
	assert.Equal(t, "severe", SeveritySevere.String())
}
