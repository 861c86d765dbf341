package events

import (
	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/models"
)

// Filter selects what FromSnapshot derives
type Filter struct {
	// Categories to include; empty means all
	Categories []Category
	// ShowArchived includes archived records, which are hidden by default
	ShowArchived bool
	// From and To bound the result to events overlapping [From, To) when set
	From calendar.Day
	To   calendar.Day
}

func (f Filter) includes(c Category) bool {
	if len(f.Categories) == 0 {
		return true
	}
	for _, want := range f.Categories {
		if want == c {
			return true
		}
	}
	return false
}

func visible[T any, PT interface {
	*T
	models.Record
}](list []T, showArchived bool) []T {
	if showArchived {
		return list
	}
	out := make([]T, 0, len(list))
	for i := range list {
		if !PT(&list[i]).IsArchived() {
			out = append(out, list[i])
		}
	}
	return out
}

// FromSnapshot derives the events of every selected category, sorted
func FromSnapshot(s *models.Snapshot, f Filter) Mapping {
	out := Mapping{Events: []Event{}, Skipped: []Skipped{}}
	if s == nil {
		return out
	}

	mappers := []struct {
		category Category
		run      func() Mapping
	}{
		{CategoryAbsence, func() Mapping { return MapAbsences(visible(s.Absences, f.ShowArchived)) }},
		{CategoryRoadwork, func() Mapping { return MapRoadworks(visible(s.Roadworks, f.ShowArchived)) }},
		{CategoryCharter, func() Mapping { return MapCharterTrips(visible(s.CharterTrips, f.ShowArchived)) }},
		{CategoryAppointment, func() Mapping { return MapAppointments(visible(s.Appointments, f.ShowArchived)) }},
		{CategoryMedical, func() Mapping { return MapMedicalAppointments(visible(s.MedicalAppointments, f.ShowArchived)) }},
		{CategoryTodo, func() Mapping { return MapTodos(visible(s.Todos, f.ShowArchived)) }},
		{CategoryTraining, func() Mapping { return MapTrainings(visible(s.Trainings, f.ShowArchived)) }},
	}

	for _, m := range mappers {
		if f.includes(m.category) {
			out.Merge(m.run())
		}
	}

	if !f.From.IsZero() || !f.To.IsZero() {
		kept := out.Events[:0]
		for _, e := range out.Events {
			if !f.From.IsZero() && !e.End.After(f.From) {
				continue
			}
			if !f.To.IsZero() && !e.Start.Before(f.To) {
				continue
			}
			kept = append(kept, e)
		}
		out.Events = kept
	}

	out.Sort()
	return out
}
