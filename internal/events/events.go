// Package events derives calendar events from records.
package events

import (
	"fmt"
	"sort"

	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/models"
)

// Category tags the kind an event came from
type Category string

const (
	CategoryAbsence     Category = "absence"
	CategoryRoadwork    Category = "roadwork"
	CategoryCharter     Category = "charter"
	CategoryAppointment Category = "appointment"
	CategoryMedical     Category = "medical"
	CategoryTodo        Category = "todo"
	CategoryTraining    Category = "training"
)

// Categories lists every category in legend order
func Categories() []Category {
	return []Category{
		CategoryAbsence,
		CategoryRoadwork,
		CategoryCharter,
		CategoryAppointment,
		CategoryMedical,
		CategoryTodo,
		CategoryTraining,
	}
}

// ParseCategory validates a category name
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Color is the event bar color of the category
func (c Category) Color() string {
	switch c {
	case CategoryAbsence, CategoryMedical:
		return "#0ea5e9"
	case CategoryRoadwork:
		return "#f97316"
	case CategoryCharter:
		return "#8b5cf6"
	case CategoryAppointment:
		return "#22c55e"
	case CategoryTodo:
		return "#ef4444"
	case CategoryTraining:
		return "#eab308"
	default:
		return "#64748b"
	}
}

// Label is the German legend entry
func (c Category) Label() string {
	switch c {
	case CategoryAbsence:
		return "Abwesenheiten"
	case CategoryRoadwork:
		return "Baustellen"
	case CategoryCharter:
		return "Fahrten"
	case CategoryAppointment:
		return "Termine"
	case CategoryMedical:
		return "Betriebsarzt"
	case CategoryTodo:
		return "To-Dos"
	case CategoryTraining:
		return "Schulungen"
	default:
		return string(c)
	}
}

// Collection is the record collection the category is derived from
func (c Category) Collection() models.Collection {
	switch c {
	case CategoryAbsence:
		return models.CollectionAbsences
	case CategoryRoadwork:
		return models.CollectionRoadworks
	case CategoryCharter:
		return models.CollectionCharterTrips
	case CategoryAppointment:
		return models.CollectionAppointments
	case CategoryMedical:
		return models.CollectionMedicalAppointments
	case CategoryTodo:
		return models.CollectionTodos
	case CategoryTraining:
		return models.CollectionTrainings
	default:
		return ""
	}
}

// extendedAbsenceColor marks absences with status "verlängert"
const extendedAbsenceColor = "#1d4ed8"

// Event is a calendar entry. End is exclusive: one day past the last day shown.
type Event struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Start    calendar.Day `json:"start"`
	End      calendar.Day `json:"end"`
	Category Category     `json:"category"`
	Color    string       `json:"color"`
	Payload  any          `json:"payload"`
}

// Days returns the number of calendar days the event covers
func (e Event) Days() int {
	return calendar.Diff(e.End, e.Start)
}

// Overlaps reports whether the event touches the half-open range [from, to)
func (e Event) Overlaps(from, to calendar.Day) bool {
	return e.Start.Before(to) && e.End.After(from)
}

// Skipped describes a record left out because its start date could not be parsed
type Skipped struct {
	Category Category `json:"category"`
	RecordID string   `json:"recordId"`
	Field    string   `json:"field"`
	Value    string   `json:"value"`
}

func (s Skipped) String() string {
	return fmt.Sprintf("%s/%s: %s %q is not a valid date", s.Category, s.RecordID, s.Field, s.Value)
}

// Mapping is the result of deriving events from one or more record lists
type Mapping struct {
	Events  []Event   `json:"events"`
	Skipped []Skipped `json:"skipped"`
}

// Merge appends other to m
func (m *Mapping) Merge(other Mapping) {
	m.Events = append(m.Events, other.Events...)
	m.Skipped = append(m.Skipped, other.Skipped...)
}

// Sort orders events by start, then category legend order, then id
func (m *Mapping) Sort() {
	order := make(map[Category]int, 7)
	for i, c := range Categories() {
		order[c] = i
	}
	sort.SliceStable(m.Events, func(i, j int) bool {
		a, b := m.Events[i], m.Events[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.Category != b.Category {
			return order[a.Category] < order[b.Category]
		}
		return a.ID < b.ID
	})
}

// source is one record's contribution before date parsing
type source struct {
	id         string
	title      string
	startField string
	start      string
	end        string
	color      string
	payload    any
}

// build turns sources into events. Records with an unparseable start are
// dropped and reported in Skipped. An end that is empty or unparseable is
// replaced by the start, and the end is then advanced by one day.
func build(category Category, sources []source) Mapping {
	out := Mapping{Events: []Event{}, Skipped: []Skipped{}}
	for _, s := range sources {
		start, ok := calendar.Parse(s.start)
		if !ok {
			out.Skipped = append(out.Skipped, Skipped{
				Category: category,
				RecordID: s.id,
				Field:    s.startField,
				Value:    s.start,
			})
			continue
		}
		end, ok := calendar.Parse(s.end)
		if !ok {
			end = start
		}
		color := s.color
		if color == "" {
			color = category.Color()
		}
		out.Events = append(out.Events, Event{
			ID:       fmt.Sprintf("%s-%s", category, s.id),
			Title:    s.title,
			Start:    start,
			End:      end.AddDays(1),
			Category: category,
			Color:    color,
			Payload:  s.payload,
		})
	}
	return out
}
