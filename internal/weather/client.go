package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/constants"
	"github.com/julianstephens/leitstand/internal/logger"
)

// Slot is one point of the intraday timeline
type Slot struct {
	Label        string   `json:"label"`
	Time         string   `json:"time"`
	TemperatureC *float64 `json:"temperatureC"`
	Condition
}

// DayForecast is one row of the multi-day forecast
type DayForecast struct {
	Date            string   `json:"date"`
	Weekday         string   `json:"weekday"`
	MaxTemperatureC *float64 `json:"maxTemperatureC"`
	MinTemperatureC *float64 `json:"minTemperatureC"`
	Condition
}

// Report is the weather block of the kiosk dashboard
type Report struct {
	TemperatureC  *float64      `json:"temperatureC"`
	WindSpeedKmh  *float64      `json:"windSpeedKmh"`
	Time          string        `json:"time,omitempty"`
	HazardText    string        `json:"hazardText"`
	TodayTimeline []Slot        `json:"todayTimeline"`
	DailyForecast []DayForecast `json:"dailyForecast"`
	FetchedAt     time.Time     `json:"fetchedAt"`
	Condition
}

// forecastDays is the length of the multi-day forecast
const forecastDays = 5

var timelineSlots = []struct {
	label string
	hour  int
}{
	{"08 Uhr", 8},
	{"14 Uhr", 14},
	{"20 Uhr", 20},
}

var germanWeekdays = [...]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature *float64 `json:"temperature"`
		WindSpeed   *float64 `json:"windspeed"`
		WeatherCode *int     `json:"weathercode"`
		Time        string   `json:"time"`
	} `json:"current_weather"`
	Hourly struct {
		Time        []string   `json:"time"`
		Temperature []*float64 `json:"temperature_2m"`
		WeatherCode []*int     `json:"weathercode"`
	} `json:"hourly"`
	Daily struct {
		Time        []string   `json:"time"`
		WeatherCode []*int     `json:"weathercode"`
		Max         []*float64 `json:"temperature_2m_max"`
		Min         []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// Client fetches forecasts from Open-Meteo
type Client struct {
	Endpoint  string
	Latitude  float64
	Longitude float64
	Location  *time.Location
	HTTP      *http.Client
}

// NewClient returns a client for the given coordinates in loc
func NewClient(lat, lon float64, loc *time.Location) *Client {
	if loc == nil {
		loc = time.Local
	}
	return &Client{
		Endpoint:  constants.OpenMeteoForecastURL,
		Latitude:  lat,
		Longitude: lon,
		Location:  loc,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) url() (string, error) {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid weather endpoint: %w", err)
	}
	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(c.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(c.Longitude, 'f', -1, 64))
	q.Set("current_weather", "true")
	q.Set("timezone", c.Location.String())
	q.Set("hourly", "temperature_2m,weathercode")
	q.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch retrieves the forecast and builds a Report relative to now
func (c *Client) Fetch(ctx context.Context, now time.Time) (*Report, error) {
	target, err := c.url()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather request: %w", err)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("weather request failed: %d %s", resp.StatusCode, strings.TrimSpace(string(text)))
	}

	var data forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	report := buildReport(data, now, c.Location)
	logger.Debug("Fetched weather", "condition", report.Text, "hazard", report.HazardText)
	return report, nil
}

func codeOrUnknown(code *int) int {
	if code == nil {
		return -1
	}
	return *code
}

func at[T any](list []*T, i int) *T {
	if i < 0 || i >= len(list) {
		return nil
	}
	return list[i]
}

func buildReport(data forecastResponse, now time.Time, loc *time.Location) *Report {
	cur := data.CurrentWeather
	code := codeOrUnknown(cur.WeatherCode)

	report := &Report{
		TemperatureC:  cur.Temperature,
		WindSpeedKmh:  cur.WindSpeed,
		Time:          cur.Time,
		HazardText:    Hazard(code, cur.Temperature, cur.WindSpeed),
		Condition:     Describe(code),
		TodayTimeline: []Slot{},
		DailyForecast: []DayForecast{},
		FetchedAt:     now,
	}

	for _, s := range timelineSlots {
		if slot, ok := findSlot(data, s.label, s.hour, now, loc); ok {
			report.TodayTimeline = append(report.TodayTimeline, slot)
		}
	}

	for i := 0; i < len(data.Daily.Time) && i < forecastDays; i++ {
		date := data.Daily.Time[i]
		weekday := ""
		if d, ok := calendar.Parse(date); ok {
			weekday = germanWeekdays[d.Weekday()]
		}
		report.DailyForecast = append(report.DailyForecast, DayForecast{
			Date:            date,
			Weekday:         weekday,
			MaxTemperatureC: at(data.Daily.Max, i),
			MinTemperatureC: at(data.Daily.Min, i),
			Condition:       Describe(codeOrUnknown(at(data.Daily.WeatherCode, i))),
		})
	}

	return report
}

// findSlot picks the first hourly entry at hour that is not in the past,
// falling back to the first entry at that hour
func findSlot(data forecastResponse, label string, hour int, now time.Time, loc *time.Location) (Slot, bool) {
	first, future := -1, -1
	for i, raw := range data.Hourly.Time {
		t, err := time.ParseInLocation("2006-01-02T15:04", raw, loc)
		if err != nil || t.Hour() != hour {
			continue
		}
		if first == -1 {
			first = i
		}
		if !t.Before(now) {
			future = i
			break
		}
	}

	idx := future
	if idx == -1 {
		idx = first
	}
	if idx == -1 {
		return Slot{}, false
	}
	return Slot{
		Label:        label,
		Time:         data.Hourly.Time[idx],
		TemperatureC: at(data.Hourly.Temperature, idx),
		Condition:    Describe(codeOrUnknown(at(data.Hourly.WeatherCode, idx))),
	}, true
}
