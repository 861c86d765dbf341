// Package briefing assembles the compact today/next-7-days feed for the AI
// assistant and calls the chat-completions endpoint with it.
package briefing

import (
	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/constants"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/trafficlight"
)

// Item types as they appear in the payload
const (
	TypeAbsence     = "absence"
	TypeRoadwork    = "roadwork"
	TypeCharterTrip = "charterTrip"
	TypeAppointment = "appointment"
	TypeTodo        = "todo"
	TypeTraining    = "training"
)

// Item is one record excerpt. Fields that do not apply to a type are omitted.
type Item struct {
	Type           string             `json:"type"`
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	From           string             `json:"from,omitempty"`
	To             string             `json:"to,omitempty"`
	Date           string             `json:"date,omitempty"`
	ReturnDate     string             `json:"returnDate,omitempty"`
	PersonalNumber string             `json:"personalNumber,omitempty"`
	Status         string             `json:"status,omitempty"`
	Lines          []string           `json:"lines,omitempty"`
	OutboundTime   string             `json:"outboundTime,omitempty"`
	ReturnTime     string             `json:"returnTime,omitempty"`
	PassengerCount *int               `json:"passengerCount,omitempty"`
	TimeFrom       string             `json:"timeFrom,omitempty"`
	TimeTo         string             `json:"timeTo,omitempty"`
	Location       string             `json:"location,omitempty"`
	DueDate        string             `json:"dueDate,omitempty"`
	DueTime        string             `json:"dueTime,omitempty"`
	Priority       models.Priority    `json:"priority,omitempty"`
	Done           *bool              `json:"done,omitempty"`
	TargetGroup    string             `json:"targetGroup,omitempty"`
	Color          trafficlight.Light `json:"color"`
}

// Payload is the request body handed to the assistant
type Payload struct {
	TodayItems     []Item `json:"todayItems"`
	Next7DaysItems []Item `json:"next7DaysItems"`
}

// Len returns the number of items in both sections
func (p Payload) Len() int {
	return len(p.TodayItems) + len(p.Next7DaysItems)
}

type builder struct {
	today   calendar.Day
	payload Payload
}

// add files item under today when todayCheck is today, otherwise under the
// next days when rangeCheck lies within the horizon
func (b *builder) add(item Item, todayCheck, rangeCheck string) {
	if d, ok := calendar.Parse(todayCheck); ok && d.Equal(b.today) {
		b.payload.TodayItems = append(b.payload.TodayItems, item)
		return
	}
	if d, ok := calendar.Parse(rangeCheck); ok {
		diff := calendar.Diff(d, b.today)
		if diff > 0 && diff <= constants.BriefingHorizonDays {
			b.payload.Next7DaysItems = append(b.payload.Next7DaysItems, item)
		}
	}
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Build collects the non-archived absences, roadworks, charter trips,
// appointments, todos and trainings relevant for today and the next days.
func Build(s *models.Snapshot, today calendar.Day) Payload {
	b := &builder{today: today, payload: Payload{TodayItems: []Item{}, Next7DaysItems: []Item{}}}
	if s == nil {
		return b.payload
	}

	for _, a := range s.Absences {
		if a.Archived {
			continue
		}
		title := "Abwesenheit"
		if a.PersonnelNumber != "" {
			title += " PN " + a.PersonnelNumber
		}
		b.add(Item{
			Type:           TypeAbsence,
			ID:             a.ID,
			Title:          title,
			From:           a.StartDate,
			To:             firstOf(a.EndDate, a.StartDate),
			ReturnDate:     a.ReturnDate,
			PersonalNumber: a.PersonnelNumber,
			Status:         string(a.Status),
			Color:          trafficlight.Absence(a, today),
		}, a.StartDate, firstOf(a.EndDate, a.StartDate))
	}

	for _, r := range s.Roadworks {
		if r.Archived {
			continue
		}
		lines := []string(r.Lines)
		if lines == nil {
			lines = []string{}
		}
		b.add(Item{
			Type:   TypeRoadwork,
			ID:     r.ID,
			Title:  firstOf(r.Title, "Baustelle"),
			From:   r.StartDate,
			To:     firstOf(r.EndDate, r.StartDate),
			Status: string(r.Status),
			Lines:  lines,
			Color:  trafficlight.Roadwork(r, today),
		}, r.StartDate, r.StartDate)
	}

	for _, c := range s.CharterTrips {
		if c.Archived {
			continue
		}
		b.add(Item{
			Type:           TypeCharterTrip,
			ID:             c.ID,
			Title:          firstOf(c.Label, "Fahrt"),
			Date:           c.Date,
			OutboundTime:   c.OutboundTime,
			ReturnTime:     c.ReturnTime,
			PassengerCount: c.PassengerCount,
			Status:         string(c.Status),
			Color:          trafficlight.CharterTrip(c, today),
		}, c.Date, c.Date)
	}

	for _, a := range s.Appointments {
		if a.Archived {
			continue
		}
		b.add(Item{
			Type:     TypeAppointment,
			ID:       a.ID,
			Title:    firstOf(a.Title, "Termin"),
			Date:     a.Day(),
			TimeFrom: a.TimeFrom,
			TimeTo:   a.TimeTo,
			Location: a.Location,
			Color:    trafficlight.Appointment(a, today),
		}, a.Day(), a.Day())
	}

	for _, t := range s.Todos {
		if t.Archived {
			continue
		}
		priority := t.Priority
		if priority == "" {
			priority = models.PriorityNormal
		}
		done := t.Done
		b.add(Item{
			Type:     TypeTodo,
			ID:       t.ID,
			Title:    firstOf(t.Title, "To-Do"),
			DueDate:  t.DueDate,
			DueTime:  t.DueTime,
			Priority: priority,
			Done:     &done,
			Color:    trafficlight.Todo(t, today),
		}, t.DueDate, t.DueDate)
	}

	for _, tr := range s.Trainings {
		if tr.Archived {
			continue
		}
		b.add(Item{
			Type:        TypeTraining,
			ID:          tr.ID,
			Title:       firstOf(tr.Title, "Schulung"),
			From:        tr.DateFrom,
			To:          firstOf(tr.DateTo, tr.DateFrom),
			TargetGroup: tr.TargetGroup,
			Color:       trafficlight.Training(tr, today),
		}, tr.DateFrom, tr.DateFrom)
	}

	return b.payload
}
