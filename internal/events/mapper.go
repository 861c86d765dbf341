package events

import (
	"fmt"

	"github.com/julianstephens/leitstand/internal/models"
)

// MapAbsences maps absences from startDate to endDate; extended ones get their own color
func MapAbsences(list []models.Absence) Mapping {
	sources := make([]source, 0, len(list))
	for _, a := range list {
		color := ""
		if a.Status == models.AbsenceExtended {
			color = extendedAbsenceColor
		}
		sources = append(sources, source{
			id:         a.ID,
			title:      fmt.Sprintf("Abwesenheit %s (%s)", a.PersonnelNumber, a.Type),
			startField: "startDate",
			start:      a.StartDate,
			end:        a.EndDate,
			color:      color,
			payload:    a,
		})
	}
	return build(CategoryAbsence, sources)
}

// MapRoadworks maps roadworks over their construction period
func MapRoadworks(list []models.Roadwork) Mapping {
	sources := make([]source, 0, len(list))
	for _, r := range list {
		title := "Baustelle"
		if r.Title != "" {
			title = "Baustelle: " + r.Title
		}
		sources = append(sources, source{
			id:         r.ID,
			title:      title,
			startField: "startDate",
			start:      r.StartDate,
			end:        r.EndDate,
			payload:    r,
		})
	}
	return build(CategoryRoadwork, sources)
}

// MapCharterTrips maps charter trips as single-day events
func MapCharterTrips(list []models.CharterTrip) Mapping {
	sources := make([]source, 0, len(list))
	for _, c := range list {
		title := "Gelegenheitsfahrt"
		if c.Label != "" {
			title = "Fahrt: " + c.Label
		}
		sources = append(sources, source{
			id:         c.ID,
			title:      title,
			startField: "date",
			start:      c.Date,
			payload:    c,
		})
	}
	return build(CategoryCharter, sources)
}

// MapAppointments maps appointments on their date, falling back to dateFrom
func MapAppointments(list []models.Appointment) Mapping {
	sources := make([]source, 0, len(list))
	for _, a := range list {
		title := a.Title
		if title == "" {
			title = "Termin"
		}
		field := "date"
		if a.Date == "" && a.DateFrom != "" {
			field = "dateFrom"
		}
		sources = append(sources, source{
			id:         a.ID,
			title:      title,
			startField: field,
			start:      a.Day(),
			payload:    a,
		})
	}
	return build(CategoryAppointment, sources)
}

// MapMedicalAppointments maps occupational health appointments by personnel number
func MapMedicalAppointments(list []models.MedicalAppointment) Mapping {
	sources := make([]source, 0, len(list))
	for _, m := range list {
		title := "Betriebsarzt " + m.PersonalNumber
		if m.Time != "" {
			title += " " + m.Time
		}
		sources = append(sources, source{
			id:         m.ID,
			title:      title,
			startField: "date",
			start:      m.Date,
			payload:    m,
		})
	}
	return build(CategoryMedical, sources)
}

// MapTodos leaves out todos without a due date; they have no place on a calendar
func MapTodos(list []models.Todo) Mapping {
	sources := make([]source, 0, len(list))
	for _, t := range list {
		if t.DueDate == "" {
			continue
		}
		title := t.Title
		if title == "" {
			title = "To-Do"
		}
		sources = append(sources, source{
			id:         t.ID,
			title:      title,
			startField: "dueDate",
			start:      t.DueDate,
			payload:    t,
		})
	}
	return build(CategoryTodo, sources)
}

// MapTrainings maps trainings from dateFrom to dateTo
func MapTrainings(list []models.Training) Mapping {
	sources := make([]source, 0, len(list))
	for _, t := range list {
		title := t.Title
		if title == "" {
			title = "Schulung"
		}
		sources = append(sources, source{
			id:         t.ID,
			title:      title,
			startField: "dateFrom",
			start:      t.DateFrom,
			end:        t.DateTo,
			payload:    t,
		})
	}
	return build(CategoryTraining, sources)
}
