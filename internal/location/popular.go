package location

// PopularCities returns the fixed suggestion list shown before the user has
// typed a query. Pure and idempotent: same five entries, stable order.
func PopularCities() []Place {
	return []Place{
		{
			ID:          "popular-nyc",
			Name:        "New York",
			DisplayName: "New York, NY, US",
			Country:     "US",
			State:       "NY",
			Lat:         40.7128,
			Lon:         -74.0060,
		},
		{
			ID:          "popular-london",
			Name:        "London",
			DisplayName: "London, GB",
			Country:     "GB",
			Lat:         51.5074,
			Lon:         -0.1278,
		},
		{
			ID:          "popular-tokyo",
			Name:        "Tokyo",
			DisplayName: "Tokyo, JP",
			Country:     "JP",
			Lat:         35.6762,
			Lon:         139.6503,
		},
		{
			ID:          "popular-paris",
			Name:        "Paris",
			DisplayName: "Paris, FR",
			Country:     "FR",
			Lat:         48.8566,
			Lon:         2.3522,
		},
		{
			ID:          "popular-sydney",
			Name:        "Sydney",
			DisplayName: "Sydney, NSW, AU",
			Country:     "AU",
			State:       "NSW",
			Lat:         -33.8688,
			Lon:         151.2093,
		},
	}
}
