// Package dashboard ties the clients together: it resolves a position,
// runs concurrent fetch cycles against the weather client, and owns the
// state the HTTP surface renders from.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/skycast-io/skycast/internal/condition"
	"github.com/skycast-io/skycast/internal/config"
	"github.com/skycast-io/skycast/internal/geolocate"
	"github.com/skycast-io/skycast/internal/location"
	"github.com/skycast-io/skycast/internal/weather"
	"github.com/skycast-io/skycast/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseLocating      Phase = "locating"
	PhaseFetching      Phase = "fetching"
	PhaseTransitioning Phase = "transitioning"
	PhaseSettled       Phase = "settled"
)

// WeatherAPI is the slice of the weather client the orchestrator needs.
type WeatherAPI interface {
	Current(ctx context.Context, lat, lon float64) (*weather.Snapshot, error)
	Hourly(ctx context.Context, lat, lon float64) ([]weather.HourlyPoint, error)
	Daily(ctx context.Context, lat, lon float64) ([]weather.DailyPoint, error)
	Alerts(ctx context.Context, lat, lon float64) []weather.Alert
}

// LocationAPI is the slice of the location client the orchestrator needs.
type LocationAPI interface {
	Reverse(ctx context.Context, lat, lon float64) *location.Place
}

// State is a read-only view of the dashboard, safe to hand to handlers.
type State struct {
	Phase             Phase                  `json:"phase"`
	Loading           bool                   `json:"loading"`
	Transitioning     bool                   `json:"transitioning"`
	UsingGeolocation  bool                   `json:"using_geolocation"`
	Coordinates       *geolocate.Coordinates `json:"coordinates,omitempty"`
	Place             *location.Place        `json:"place,omitempty"`
	Current           *weather.Snapshot      `json:"current,omitempty"`
	PreviousCondition condition.Category     `json:"previous_condition,omitempty"`
	Hourly            []weather.HourlyPoint  `json:"hourly,omitempty"`
	Daily             []weather.DailyPoint   `json:"daily,omitempty"`
	Alerts            []weather.Alert        `json:"alerts"`
	LocationError     string                 `json:"location_error,omitempty"`
}

type Orchestrator struct {
	weather   WeatherAPI
	locations LocationAPI
	geo       geolocate.Provider
	logger    *zap.Logger
	tele      *telemetry.Telemetry

	transitionWindow time.Duration

	mu                sync.RWMutex
	phase             Phase
	loading           bool
	transitioning     bool
	usingGeo          bool
	coords            *geolocate.Coordinates
	place             *location.Place
	current           *weather.Snapshot
	pending           *weather.Snapshot
	previousCondition condition.Category
	hourly            []weather.HourlyPoint
	daily             []weather.DailyPoint
	alerts            []weather.Alert
	dismissed         map[string]struct{}
	locationError     string

	transitionTimer *time.Timer
	transitionGen   uint64
	closed          bool
}

func New(w WeatherAPI, l LocationAPI, geo geolocate.Provider, cfg config.DashboardConfig, logger *zap.Logger, tele *telemetry.Telemetry) *Orchestrator {
	return &Orchestrator{
		weather:          w,
		locations:        l,
		geo:              geo,
		logger:           logger,
		tele:             tele,
		transitionWindow: time.Duration(cfg.TransitionWindowMS) * time.Millisecond,
		phase:            PhaseIdle,
		usingGeo:         true,
		dismissed:        make(map[string]struct{}),
	}
}

// Start resolves the device position and runs the first fetch cycle.
// A geolocation failure leaves the dashboard idle with the error recorded;
// the user can still search for a place explicitly.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	o.phase = PhaseLocating
	o.mu.Unlock()

	coords, err := o.geo.Locate(ctx)
	if err != nil {
		o.logger.Warn("Geolocation failed", zap.Error(err))
		o.mu.Lock()
		o.phase = PhaseIdle
		o.locationError = err.Error()
		o.mu.Unlock()
		return err
	}

	o.mu.Lock()
	o.coords = &coords
	o.usingGeo = true
	o.locationError = ""
	o.mu.Unlock()

	if err := o.fetchCycle(ctx, coords.Latitude, coords.Longitude); err != nil {
		return err
	}

	o.resolvePlaceName(ctx, coords)
	return nil
}

// Refresh re-runs the fetch cycle for whatever position is active: the
// selected place when search chose one, the device position otherwise.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	o.mu.RLock()
	place := o.place
	coords := o.coords
	usingGeo := o.usingGeo
	o.mu.RUnlock()

	switch {
	case !usingGeo && place != nil:
		return o.fetchCycle(ctx, place.Lat, place.Lon)
	case coords != nil:
		return o.fetchCycle(ctx, coords.Latitude, coords.Longitude)
	default:
		return o.Start(ctx)
	}
}

// SelectPlace switches the dashboard to an explicitly chosen place and
// disables automatic device positioning until UseCurrentLocation.
func (o *Orchestrator) SelectPlace(ctx context.Context, place location.Place) error {
	o.mu.Lock()
	o.place = &place
	o.usingGeo = false
	o.mu.Unlock()

	return o.fetchCycle(ctx, place.Lat, place.Lon)
}

// UseCurrentLocation re-enables device positioning and refreshes.
func (o *Orchestrator) UseCurrentLocation(ctx context.Context) error {
	coords, err := o.geo.Locate(ctx)
	if err != nil {
		o.logger.Warn("Geolocation failed", zap.Error(err))
		o.mu.Lock()
		o.locationError = err.Error()
		o.mu.Unlock()
		return err
	}

	o.mu.Lock()
	o.coords = &coords
	o.usingGeo = true
	o.locationError = ""
	o.mu.Unlock()

	if err := o.fetchCycle(ctx, coords.Latitude, coords.Longitude); err != nil {
		return err
	}

	o.resolvePlaceName(ctx, coords)
	return nil
}

// DismissAlert hides an alert for this session. The set is local: the next
// fetch cycle may resurrect the same id.
func (o *Orchestrator) DismissAlert(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dismissed[id] = struct{}{}
}

// State returns a copy of the current dashboard view with dismissed alerts
// filtered out.
func (o *Orchestrator) State() State {
	o.mu.RLock()
	defer o.mu.RUnlock()

	visible := make([]weather.Alert, 0, len(o.alerts))
	for _, a := range o.alerts {
		if _, hidden := o.dismissed[a.ID]; !hidden {
			visible = append(visible, a)
		}
	}

	return State{
		Phase:             o.phase,
		Loading:           o.loading,
		Transitioning:     o.transitioning,
		UsingGeolocation:  o.usingGeo,
		Coordinates:       o.coords,
		Place:             o.place,
		Current:           o.current,
		PreviousCondition: o.previousCondition,
		Hourly:            o.hourly,
		Daily:             o.daily,
		Alerts:            visible,
		LocationError:     o.locationError,
	}
}

// Close stops the transition timer. Required before discarding the
// orchestrator so no timer fires against released state.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closed = true
	o.transitionGen++
	if o.transitionTimer != nil {
		o.transitionTimer.Stop()
		o.transitionTimer = nil
	}
}

// fetchCycle issues the four weather calls concurrently and applies the
// results atomically: if any call fails the previous state stays on display
// and the error propagates for a user notification.
func (o *Orchestrator) fetchCycle(ctx context.Context, lat, lon float64) error {
	tracer := o.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "dashboard.fetchCycle")
	defer span.End()

	span.SetAttributes(
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
	)

	o.mu.Lock()
	// A cycle overlapping a pending transition commits the held snapshot
	// first; the timer is single-owner.
	o.commitPendingLocked()
	o.loading = true
	o.phase = PhaseFetching
	o.mu.Unlock()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error

		current *weather.Snapshot
		hourly  []weather.HourlyPoint
		daily   []weather.DailyPoint
		alerts  []weather.Alert
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		snap, err := o.weather.Current(ctx, lat, lon)
		if err != nil {
			fail(err)
			return
		}
		current = snap
	}()
	go func() {
		defer wg.Done()
		points, err := o.weather.Hourly(ctx, lat, lon)
		if err != nil {
			fail(err)
			return
		}
		hourly = points
	}()
	go func() {
		defer wg.Done()
		points, err := o.weather.Daily(ctx, lat, lon)
		if err != nil {
			fail(err)
			return
		}
		daily = points
	}()
	go func() {
		defer wg.Done()
		// Alert synthesis swallows its own errors.
		alerts = o.weather.Alerts(ctx, lat, lon)
	}()

	wg.Wait()

	o.mu.Lock()
	defer o.mu.Unlock()

	o.loading = false

	if firstErr != nil {
		span.SetAttributes(attribute.Bool("success", false))
		o.logger.Error("Fetch cycle failed, keeping previous data", zap.Error(firstErr))
		if o.current != nil {
			o.phase = PhaseSettled
		} else {
			o.phase = PhaseIdle
		}
		return firstErr
	}

	o.hourly = hourly
	o.daily = daily
	o.alerts = alerts
	// A fresh cycle rebuilds the alert set from scratch; previously
	// dismissed ids may legitimately come back.
	o.dismissed = make(map[string]struct{})

	if o.current != nil && o.current.Condition != current.Condition {
		// Hold the old snapshot on screen for the transition window, then
		// swap.
		o.previousCondition = o.current.Condition
		o.pending = current
		o.transitioning = true
		o.phase = PhaseTransitioning

		o.transitionGen++
		gen := o.transitionGen
		if o.transitionTimer != nil {
			o.transitionTimer.Stop()
		}
		o.transitionTimer = time.AfterFunc(o.transitionWindow, func() {
			o.completeTransition(gen)
		})
	} else {
		o.current = current
		o.transitioning = false
		o.phase = PhaseSettled
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("alerts", len(alerts)),
	)

	o.logger.Info("Fetch cycle complete",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.String("condition", string(current.Condition)),
		zap.Bool("transitioning", o.transitioning),
		zap.Int("alerts", len(alerts)))

	return nil
}

func (o *Orchestrator) completeTransition(gen uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || gen != o.transitionGen {
		return
	}
	o.commitPendingLocked()
	o.phase = PhaseSettled
}

func (o *Orchestrator) commitPendingLocked() {
	if o.pending == nil {
		o.transitioning = false
		return
	}
	o.current = o.pending
	o.pending = nil
	o.transitioning = false
	if o.transitionTimer != nil {
		o.transitionTimer.Stop()
		o.transitionTimer = nil
	}
	o.transitionGen++
}

// resolvePlaceName attaches a display name to device coordinates, best
// effort.
func (o *Orchestrator) resolvePlaceName(ctx context.Context, coords geolocate.Coordinates) {
	place := o.locations.Reverse(ctx, coords.Latitude, coords.Longitude)
	if place == nil {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.usingGeo {
		o.place = place
	}
}
