// Package dashboard derives the driver kiosk view and the overview tiles
// from a record snapshot.
package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/constants"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/weather"
)

// Severity is the icon class of a roadwork on the kiosk
type Severity string

const (
	SeveritySperrung  Severity = "sperrung"
	SeverityUmleitung Severity = "umleitung"
	SeverityBaustelle Severity = "baustelle"
	SeverityInfo      Severity = "info"
)

// RoadworkSeverity derives the severity from title keywords, then status
func RoadworkSeverity(r models.Roadwork) Severity {
	title := strings.ToLower(r.Title)
	switch {
	case strings.Contains(title, "sperrung"):
		return SeveritySperrung
	case strings.Contains(title, "umleitung"):
		return SeverityUmleitung
	case strings.Contains(title, "baustelle"):
		return SeverityBaustelle
	}
	switch strings.ToLower(string(r.Status)) {
	case "laufend":
		return SeverityBaustelle
	case "angekündigt":
		return SeverityUmleitung
	default:
		return SeverityInfo
	}
}

// SortField selects the roadwork sort key
type SortField string

const (
	SortByStartDate SortField = "startDate"
	SortByEndDate   SortField = "endDate"
	SortByStatus    SortField = "status"
)

func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case "", SortByStartDate:
		return SortByStartDate, nil
	case SortByEndDate, SortByStatus:
		return SortField(s), nil
	default:
		return "", fmt.Errorf("unknown sort field %q (expected startDate, endDate or status)", s)
	}
}

// SortRoadworks returns a sorted copy of list. Keys compare as strings,
// which orders ISO dates chronologically.
func SortRoadworks(list []models.Roadwork, by SortField, desc bool) []models.Roadwork {
	out := append([]models.Roadwork(nil), list...)
	key := func(r models.Roadwork) string {
		switch by {
		case SortByEndDate:
			return r.EndDate
		case SortByStatus:
			return string(r.Status)
		default:
			return r.StartDate
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return key(out[i]) > key(out[j])
		}
		return key(out[i]) < key(out[j])
	})
	return out
}

// UpcomingTrainings returns trainings starting within [today, today+days],
// ordered by start date
func UpcomingTrainings(list []models.Training, today calendar.Day, days int) []models.Training {
	limit := today.AddDays(days)
	out := []models.Training{}
	for _, t := range list {
		d, ok := calendar.Parse(t.DateFrom)
		if !ok || !d.Between(today, limit) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateFrom < out[j].DateFrom })
	return out
}

// Messages is the service message split of the kiosk
type Messages struct {
	Disturbances []models.ServiceMessage `json:"disturbances"`
	Infos        []models.ServiceMessage `json:"infos"`
	Quote        *models.ServiceMessage  `json:"quote"`
}

func SplitMessages(list []models.ServiceMessage) Messages {
	m := Messages{Disturbances: []models.ServiceMessage{}, Infos: []models.ServiceMessage{}}
	for _, msg := range list {
		switch msg.Type {
		case models.MessageDisturbance:
			m.Disturbances = append(m.Disturbances, msg)
		case models.MessageInfo, models.MessagePlan:
			m.Infos = append(m.Infos, msg)
		case models.MessageQuote:
			if m.Quote == nil {
				quote := msg
				m.Quote = &quote
			}
		}
	}
	return m
}

const (
	TickerSeparator = " +++ "
	TickerEmpty     = "Keine aktuellen Hinweise."
)

// Ticker joins the ticker-flagged messages into one scrolling line
func Ticker(list []models.ServiceMessage) string {
	var parts []string
	for _, m := range list {
		if !m.ShowInTicker {
			continue
		}
		part := m.Title
		if m.Description != "" {
			part += " – " + m.Description
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return TickerEmpty
	}
	return strings.Join(parts, TickerSeparator)
}

// RoadworkRow is a roadwork with its kiosk severity
type RoadworkRow struct {
	models.Roadwork
	Severity Severity `json:"severity"`
}

// Header is the clock block of the kiosk
type Header struct {
	Week string `json:"week"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// Kiosk is everything the driver dashboard shows
type Kiosk struct {
	Header            Header            `json:"header"`
	Ticker            string            `json:"ticker"`
	Roadworks         []RoadworkRow     `json:"roadworks"`
	UpcomingTrainings []models.Training `json:"upcomingTrainings"`
	Messages
	Weather      *weather.Report `json:"weather,omitempty"`
	WeatherError string          `json:"weatherError,omitempty"`
}

// Options controls the roadwork ordering of the kiosk
type Options struct {
	SortBy SortField
	Desc   bool
}

// Build assembles the kiosk from the non-archived records at now. report
// may be nil when the forecast is unavailable.
func Build(s *models.Snapshot, now time.Time, loc *time.Location, report *weather.Report, opts Options) Kiosk {
	if loc == nil {
		loc = time.Local
	}
	active := &models.Snapshot{}
	if s != nil {
		active = s.Active()
	}
	today := calendar.Today(now, loc)

	rows := []RoadworkRow{}
	for _, r := range SortRoadworks(active.Roadworks, opts.SortBy, opts.Desc) {
		rows = append(rows, RoadworkRow{Roadwork: r, Severity: RoadworkSeverity(r)})
	}

	local := now.In(loc)
	return Kiosk{
		Header: Header{
			Week: calendar.WeekLabel(today),
			Date: local.Format(constants.DisplayDateFormat),
			Time: local.Format("15:04"),
		},
		Ticker:            Ticker(active.ServiceMessages),
		Roadworks:         rows,
		UpcomingTrainings: UpcomingTrainings(active.Trainings, today, constants.UpcomingTrainingDays),
		Messages:          SplitMessages(active.ServiceMessages),
		Weather:           report,
	}
}
