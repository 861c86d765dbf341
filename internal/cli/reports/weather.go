package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/leitstand/internal/cli"
	"github.com/julianstephens/leitstand/internal/weather"
)

type WeatherCmd struct {
	JSON bool `help:"Print the raw report as JSON."`
}

func (c *WeatherCmd) Run(ctx *cli.Context) error {
	client := ctx.WeatherClient()
	if client == nil {
		return errors.New("weather is disabled in the config")
	}

	fctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	report, err := client.Fetch(fctx, ctx.Time())
	if err != nil {
		return fmt.Errorf("failed to fetch weather: %w", err)
	}

	if c.JSON {
		return ctx.PrintJSON(report)
	}
	printReport(ctx, report)
	return nil
}

func temp(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.0f °C", *v)
}

func printReport(ctx *cli.Context, r *weather.Report) {
	wind := "–"
	if r.WindSpeedKmh != nil {
		wind = fmt.Sprintf("%.0f km/h", *r.WindSpeedKmh)
	}
	ctx.Printf("%s %s, %s, Wind %s\n", r.Icon, r.Text, temp(r.TemperatureC), wind)
	if r.HazardText != "" {
		ctx.Printf("⚠ %s\n", r.HazardText)
	}

	if len(r.TodayTimeline) > 0 {
		rows := make([][]string, 0, len(r.TodayTimeline))
		for _, s := range r.TodayTimeline {
			rows = append(rows, []string{s.Label, s.Time, s.Icon + " " + s.Text, temp(s.TemperatureC)})
		}
		ctx.PrintTable([]string{"Heute", "Uhrzeit", "Wetter", "Temperatur"}, rows)
	}

	if len(r.DailyForecast) > 0 {
		rows := make([][]string, 0, len(r.DailyForecast))
		for _, d := range r.DailyForecast {
			rows = append(rows, []string{d.Weekday, d.Date, d.Icon + " " + d.Text, temp(d.MinTemperatureC), temp(d.MaxTemperatureC)})
		}
		ctx.PrintTable([]string{"Tag", "Datum", "Wetter", "Min", "Max"}, rows)
	}
}
