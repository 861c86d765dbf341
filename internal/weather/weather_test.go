package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }

func TestDescribe(t *testing.T) {
	tests := []struct {
		code int
		text string
		icon string
	}{
		{0, "Klar", "clear"},
		{2, "Leicht bewölkt", "cloud"},
		{3, "Bedeckt", "cloud"},
		{45, "Nebel", "fog"},
		{61, "Niesel / Regen", "rain"},
		{73, "Schnee", "snow"},
		{81, "Regen", "rain"},
		{86, "Starker Schneefall", "snow"},
		{99, "Gewitter", "storm"},
		{90, "Unbekannt", "cloud"},
		{-1, "Unbekannt", "cloud"},
	}
	for _, tt := range tests {
		if got := Describe(tt.code); got.Text != tt.text || got.Icon != tt.icon {
			t.Errorf("Describe(%d) = %+v, want %s/%s", tt.code, got, tt.text, tt.icon)
		}
	}
}

func TestHazard(t *testing.T) {
	tests := []struct {
		name string
		code int
		temp *float64
		wind *float64
		want string
	}{
		{"showers above zero", 81, f(4), nil, HazardAquaplaning},
		{"showers below zero", 81, f(-1), nil, HazardIce},
		{"snow", 73, f(2), nil, HazardIce},
		{"frost", 0, f(0), nil, HazardIce},
		{"thunderstorm", 95, f(20), f(60), HazardStorm},
		{"heat", 0, f(31), nil, HazardHeat},
		{"heat wins over wind", 1, f(30), f(55), HazardHeat},
		{"wind", 3, f(15), f(50), HazardWind},
		{"unknown code still warns on heat", -1, f(32), nil, HazardHeat},
		{"unknown code skips frost", -1, f(-5), nil, ""},
		{"calm", 2, f(18), f(10), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hazard(tt.code, tt.temp, tt.wind); got != tt.want {
				t.Errorf("Hazard() = %q, want %q", got, tt.want)
			}
		})
	}
}

const sampleResponse = `{
  "current_weather": {"temperature": 12.5, "windspeed": 18.0, "weathercode": 61, "time": "2024-06-10T10:00"},
  "hourly": {
    "time": ["2024-06-10T08:00", "2024-06-10T14:00", "2024-06-10T20:00", "2024-06-11T08:00", "2024-06-11T14:00"],
    "temperature_2m": [9.0, 15.0, 11.0, 10.0, null],
    "weathercode": [3, 61, 0, 1, 95]
  },
  "daily": {
    "time": ["2024-06-10", "2024-06-11", "2024-06-12", "2024-06-13", "2024-06-14", "2024-06-15"],
    "weathercode": [61, 1, 0, 3, 95, 0],
    "temperature_2m_max": [16.0, 20.0, 22.0, 19.0, 25.0, 24.0],
    "temperature_2m_min": [8.0, 9.0, 10.0, 11.0, 14.0, 13.0]
  }
}`

func TestFetch(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	c := NewClient(50.609, 10.694, loc)
	c.Endpoint = srv.URL

	now := time.Date(2024, 6, 10, 10, 0, 0, 0, loc)
	report, err := c.Fetch(context.Background(), now)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}

	if query["latitude"][0] != "50.609" || query["current_weather"][0] != "true" || query["timezone"][0] != "Europe/Berlin" {
		t.Errorf("unexpected query: %v", query)
	}

	if report.Text != "Niesel / Regen" || report.Icon != "rain" || *report.TemperatureC != 12.5 {
		t.Errorf("current = %+v", report)
	}
	if report.HazardText != "" {
		t.Errorf("HazardText = %q, want none", report.HazardText)
	}

	// 08 Uhr today has passed, so tomorrow's slot is used
	if len(report.TodayTimeline) != 3 {
		t.Fatalf("timeline has %d slots, want 3", len(report.TodayTimeline))
	}
	if got := report.TodayTimeline[0]; got.Label != "08 Uhr" || got.Time != "2024-06-11T08:00" {
		t.Errorf("08 Uhr slot = %+v", got)
	}
	if got := report.TodayTimeline[1]; got.Time != "2024-06-10T14:00" || got.Icon != "rain" {
		t.Errorf("14 Uhr slot = %+v", got)
	}

	if len(report.DailyForecast) != 5 {
		t.Fatalf("forecast has %d days, want 5", len(report.DailyForecast))
	}
	if got := report.DailyForecast[0]; got.Weekday != "Mo." || *got.MaxTemperatureC != 16 {
		t.Errorf("first forecast day = %+v", got)
	}
}

func TestFetchPastSlotFallsBackToFirst(t *testing.T) {
	data := forecastResponse{}
	data.Hourly.Time = []string{"2024-06-10T20:00"}
	now := time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC)

	slot, ok := findSlot(data, "20 Uhr", 20, now, time.UTC)
	if !ok || slot.Time != "2024-06-10T20:00" {
		t.Errorf("findSlot() = %+v, %v", slot, ok)
	}
	if slot.TemperatureC != nil || slot.Text != "Unbekannt" {
		t.Errorf("missing values should stay unknown: %+v", slot)
	}
	if _, ok := findSlot(data, "08 Uhr", 8, now, time.UTC); ok {
		t.Error("findSlot() without matching hour should report false")
	}
}

func TestFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad coordinates", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(0, 0, time.UTC)
	c.Endpoint = srv.URL
	if _, err := c.Fetch(context.Background(), time.Now()); err == nil {
		t.Error("Fetch() should fail on non-200 responses")
	}
}
