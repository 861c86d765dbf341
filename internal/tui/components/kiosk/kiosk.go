// Package kiosk renders the driver dashboard for a wall-mounted terminal.
package kiosk

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/dashboard"
	"github.com/julianstephens/leitstand/internal/weather"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Underline(true).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	tickerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)

	hazardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	severityColors = map[dashboard.Severity]lipgloss.Color{
		dashboard.SeveritySperrung:  lipgloss.Color("196"),
		dashboard.SeverityUmleitung: lipgloss.Color("214"),
		dashboard.SeverityBaustelle: lipgloss.Color("220"),
		dashboard.SeverityInfo:      lipgloss.Color("39"),
	}
)

type Model struct {
	viewport viewport.Model
	Kiosk    *dashboard.Kiosk
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Kiosk == nil {
		return "Lade Daten…"
	}
	if m.height <= 0 {
		return Render(*m.Kiosk, m.width)
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetKiosk(k dashboard.Kiosk) {
	m.Kiosk = &k
	m.Render()
}

func (m *Model) Render() {
	if m.Kiosk == nil {
		m.viewport.SetContent("Keine Daten geladen.")
		return
	}
	m.viewport.SetContent(Render(*m.Kiosk, m.width))
}

// Render lays out the kiosk as plain terminal text
func Render(k dashboard.Kiosk, width int) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Fahrdienst  %s  %s  %s", k.Header.Week, k.Header.Date, k.Header.Time)))
	b.WriteString("\n")
	ticker := tickerStyle
	if width > 0 {
		ticker = ticker.Width(width)
	}
	b.WriteString(ticker.Render(k.Ticker))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Wetter"))
	b.WriteString("\n")
	b.WriteString(renderWeather(k.Weather, k.WeatherError))

	if len(k.Disturbances) > 0 {
		b.WriteString(sectionStyle.Render("Störungen"))
		b.WriteString("\n")
		for _, msg := range k.Disturbances {
			b.WriteString(hazardStyle.Render("! "+msg.Title) + " " + mutedStyle.Render(msg.Description) + "\n")
		}
	}

	b.WriteString(sectionStyle.Render("Baustellen"))
	b.WriteString("\n")
	if len(k.Roadworks) == 0 {
		b.WriteString(mutedStyle.Render("Keine Baustellen.") + "\n")
	}
	for _, r := range k.Roadworks {
		tag := lipgloss.NewStyle().Foreground(severityColors[r.Severity]).Render(fmt.Sprintf("%-10s", r.Severity))
		period := display(r.StartDate)
		if r.EndDate != "" {
			period += " – " + display(r.EndDate)
		}
		line := fmt.Sprintf("%s %s  %s", tag, r.Title, mutedStyle.Render(period))
		if len(r.Lines) > 0 {
			line += mutedStyle.Render("  Linie " + r.Lines.String())
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(sectionStyle.Render("Schulungen (60 Tage)"))
	b.WriteString("\n")
	if len(k.UpcomingTrainings) == 0 {
		b.WriteString(mutedStyle.Render("Keine anstehenden Schulungen.") + "\n")
	}
	for _, t := range k.UpcomingTrainings {
		line := display(t.DateFrom) + "  " + t.Title
		if t.TargetGroup != "" {
			line += mutedStyle.Render("  (" + t.TargetGroup + ")")
		}
		b.WriteString(line + "\n")
	}

	if len(k.Infos) > 0 {
		b.WriteString(sectionStyle.Render("Infos"))
		b.WriteString("\n")
		for _, msg := range k.Infos {
			b.WriteString("• " + msg.Title + " " + mutedStyle.Render(msg.Description) + "\n")
		}
	}

	if k.Quote != nil {
		b.WriteString("\n" + mutedStyle.Italic(true).Render("„"+k.Quote.Title+"“ "+k.Quote.Description) + "\n")
	}
	return b.String()
}

func renderWeather(r *weather.Report, errText string) string {
	if r == nil {
		if errText != "" {
			return mutedStyle.Render("Wetterdaten nicht verfügbar: "+errText) + "\n"
		}
		return mutedStyle.Render("Wetterdaten werden geladen…") + "\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s  Wind %s\n", temp(r.TemperatureC), r.Text, speed(r.WindSpeedKmh)))
	if r.HazardText != "" {
		b.WriteString(hazardStyle.Render(r.HazardText) + "\n")
	}
	var slots []string
	for _, s := range r.TodayTimeline {
		slots = append(slots, fmt.Sprintf("%s %s %s", s.Label, temp(s.TemperatureC), s.Text))
	}
	if len(slots) > 0 {
		b.WriteString(mutedStyle.Render(strings.Join(slots, "  |  ")) + "\n")
	}
	var days []string
	for _, d := range r.DailyForecast {
		days = append(days, fmt.Sprintf("%s %s/%s", d.Weekday, temp(d.MinTemperatureC), temp(d.MaxTemperatureC)))
	}
	if len(days) > 0 {
		b.WriteString(mutedStyle.Render(strings.Join(days, "  ")) + "\n")
	}
	if errText != "" {
		b.WriteString(mutedStyle.Render("Letzte Aktualisierung fehlgeschlagen: "+errText) + "\n")
	}
	return b.String()
}

func temp(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.0f°C", *v)
}

func speed(v *float64) string {
	if v == nil {
		return "–"
	}
	return fmt.Sprintf("%.0f km/h", *v)
}

func display(s string) string {
	if d, ok := calendar.Parse(s); ok {
		return d.Display()
	}
	return s
}
