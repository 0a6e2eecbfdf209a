package weather

import (
	"context"
	"time"

	"github.com/skycast-io/skycast/internal/condition"
	"go.opentelemetry.io/otel/attribute"
)

// Daily groups the 5-day forecast list by local calendar date and aggregates
// each of the first 7 distinct dates: mean/min/max temperature, averaged
// humidity and wind, and the dominant condition of the day. Dominance is by
// sample frequency; ties break to the condition seen first in sample order.
func (c *Client) Daily(ctx context.Context, lat, lon float64) ([]DailyPoint, error) {
	tracer := c.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "weather.Daily")
	defer span.End()

	var data forecastResponse
	if err := c.get(ctx, "weather.Daily", "/forecast", lat, lon, &data); err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	type group struct {
		date  time.Time
		items []forecastItem
	}

	var order []string
	groups := make(map[string]*group)

	for _, item := range data.List {
		if len(item.Weather) == 0 {
			continue
		}
		t := time.Unix(item.Dt, 0).In(c.loc)
		key := t.Format("2006-01-02")
		g, ok := groups[key]
		if !ok {
			g = &group{date: t}
			groups[key] = g
			order = append(order, key)
		}
		g.items = append(g.items, item)
	}

	if len(order) > 7 {
		order = order[:7]
	}

	points := make([]DailyPoint, 0, len(order))
	for _, key := range order {
		points = append(points, aggregateDay(groups[key].date, groups[key].items))
	}

	span.SetAttributes(attribute.Int("days", len(points)))
	return points, nil
}

func aggregateDay(date time.Time, items []forecastItem) DailyPoint {
	var tempSum, windSum float64
	var humiditySum int
	tempMin := items[0].Main.Temp
	tempMax := items[0].Main.Temp

	counts := make(map[string]int)
	var firstSeen []string

	for _, item := range items {
		tempSum += item.Main.Temp
		windSum += item.Wind.Speed
		humiditySum += item.Main.Humidity

		if item.Main.Temp < tempMin {
			tempMin = item.Main.Temp
		}
		if item.Main.Temp > tempMax {
			tempMax = item.Main.Temp
		}

		main := item.Weather[0].Main
		if _, ok := counts[main]; !ok {
			firstSeen = append(firstSeen, main)
		}
		counts[main]++
	}

	// Walk conditions in first-seen order so that a frequency tie resolves
	// to the earliest sample of the day.
	dominant := firstSeen[0]
	for _, main := range firstSeen[1:] {
		if counts[main] > counts[dominant] {
			dominant = main
		}
	}

	var description, icon string
	for _, item := range items {
		if item.Weather[0].Main == dominant {
			description = item.Weather[0].Description
			icon = item.Weather[0].Icon
			break
		}
	}

	n := float64(len(items))
	return DailyPoint{
		Day:         date.Weekday().String(),
		Date:        date.Format("2006-01-02"),
		Temp:        roundInt(tempSum / n),
		TempMin:     roundInt(tempMin),
		TempMax:     roundInt(tempMax),
		Condition:   condition.Classify(dominant),
		Description: description,
		Icon:        icon,
		Humidity:    roundInt(float64(humiditySum) / n),
		WindSpeed:   roundInt(windSum / n * 3.6),
	}
}
