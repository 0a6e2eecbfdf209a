package condition

import "testing"

func TestClassifyPrecedence(t *testing.T) {
	// Thunder/storm wins over any co-occurring rain or wind substring.
	tests := []struct {
		desc string
		want Category
	}{
		{"thunderstorm", Thunderstorm},
		{"Thunderstorm with heavy rain", Thunderstorm},
		{"storm and wind", Thunderstorm},
		{"tropical storm with rain and wind", Thunderstorm},
		{"light rain and wind", Rain},
		{"rain", Rain},
		{"light drizzle", Drizzle},
		{"snow", Snow},
		{"light snow showers", Snow},
		{"clear sky", Clear},
		{"sunny", Clear},
		{"scattered clouds", Clouds},
		{"mist", Mist},
		{"fog", Mist},
		{"haze", Mist},
		{"windy", Wind},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := Classify(tt.desc); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.desc, got, tt.want)
			}
		})
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	if got := Classify("THUNDERSTORM"); got != Thunderstorm {
		t.Errorf("Classify(THUNDERSTORM) = %q, want %q", got, Thunderstorm)
	}
	if got := Classify("Light Rain"); got != Rain {
		t.Errorf("Classify(Light Rain) = %q, want %q", got, Rain)
	}
}

func TestClassifyDefault(t *testing.T) {
	for _, desc := range []string{"", "dust", "volcanic ash", "squalls", "tornado"} {
		if got := Classify(desc); got != Clouds {
			t.Errorf("Classify(%q) = %q, want %q", desc, got, Clouds)
		}
	}
}

func TestVariantFor(t *testing.T) {
	tests := []struct {
		hour int
		want Variant
	}{
		{0, Night},
		{5, Night},
		{6, Day},
		{12, Day},
		{18, Day},
		{19, Night},
		{23, Night},
	}

	for _, tt := range tests {
		if got := VariantFor(tt.hour); got != tt.want {
			t.Errorf("VariantFor(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestIconCode(t *testing.T) {
	if got := IconCode(Clear, Day); got != "sun" {
		t.Errorf("IconCode(Clear, Day) = %q, want sun", got)
	}
	if got := IconCode(Clear, Night); got != "moon" {
		t.Errorf("IconCode(Clear, Night) = %q, want moon", got)
	}
	if got := IconCode(Clouds, Night); got != "cloud-moon" {
		t.Errorf("IconCode(Clouds, Night) = %q, want cloud-moon", got)
	}
	if got := IconCode(Thunderstorm, Day); got != "zap" {
		t.Errorf("IconCode(Thunderstorm, Day) = %q, want zap", got)
	}
}

func TestIntensityFor(t *testing.T) {
	tests := []struct {
		desc string
		wind int
		want Intensity
	}{
		{"heavy rain", 15, Heavy},
		{"thunderstorm", 15, Heavy},
		{"clear sky", 35, Heavy},
		{"light rain", 15, Light},
		{"clear sky", 5, Light},
		{"moderate rain", 20, Moderate},
	}

	for _, tt := range tests {
		if got := IntensityFor(tt.desc, tt.wind); got != tt.want {
			t.Errorf("IntensityFor(%q, %d) = %q, want %q", tt.desc, tt.wind, got, tt.want)
		}
	}
}
