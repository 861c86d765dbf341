package trafficlight

import (
	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/models"
)

// Subject is the normalized view of a record that rules are evaluated against
type Subject struct {
	// Terminal forces green before any date is looked at (archived, done, ended)
	Terminal bool
	// Resolved forces green once the anchor date is known (confirmed return)
	Resolved bool
	Start    string
	End      string
}

// Evaluate applies rule to s as of today. It never fails: missing or
// unparseable anchor dates, or a zero today, yield None.
func Evaluate(rule Rule, s Subject, today calendar.Day) Light {
	if s.Terminal {
		return Green
	}

	start, hasStart := calendar.Parse(s.Start)
	end, hasEnd := start, hasStart
	if s.End != "" {
		end, hasEnd = calendar.Parse(s.End)
	}

	anchor, ok := start, hasStart
	if rule.Anchor == AnchorEnd {
		anchor, ok = end, hasEnd
	}
	if !ok || today.IsZero() {
		return None
	}
	// A bad end date cannot bound a running range; treat the record as a single day
	if !hasEnd {
		end = start
	}

	if s.Resolved {
		return Green
	}

	if rule.RunningIsRed && hasStart && today.Between(start, end) {
		return Red
	}

	d := calendar.Diff(anchor, today)
	switch {
	case rule.Red.Contains(d):
		return Red
	case rule.Yellow.Contains(d):
		return rule.YellowAs
	default:
		return Green
	}
}

func evaluate(kind Kind, s Subject, today calendar.Day) Light {
	return Evaluate(Rules[kind], s, today)
}

// Absence is red while the effective end is at most three days away or past,
// unless a return date confirms the employee is back.
func Absence(a models.Absence, today calendar.Day) Light {
	return evaluate(KindAbsence, Subject{
		Terminal: a.Archived,
		Resolved: a.ReturnDate != "",
		Start:    a.StartDate,
		End:      a.EndDate,
	}, today)
}

// Roadwork is red while running or starting within two days and yellow up to two weeks ahead
func Roadwork(r models.Roadwork, today calendar.Day) Light {
	return evaluate(KindRoadwork, Subject{
		Terminal: r.Archived || r.Status == models.RoadworkEnded,
		Start:    r.StartDate,
		End:      r.EndDate,
	}, today)
}

// CharterTrip is red on the trip day only
func CharterTrip(c models.CharterTrip, today calendar.Day) Light {
	return evaluate(KindCharterTrip, Subject{Terminal: c.Archived, Start: c.Date}, today)
}

// Appointment is red on the appointment day only
func Appointment(a models.Appointment, today calendar.Day) Light {
	return evaluate(KindAppointment, Subject{Terminal: a.Archived, Start: a.Day()}, today)
}

// MedicalAppointment follows the appointment rule
func MedicalAppointment(m models.MedicalAppointment, today calendar.Day) Light {
	return evaluate(KindAppointment, Subject{Terminal: m.Archived, Start: m.Date}, today)
}

// Todo is red when due today or overdue. Only Done is terminal; archived
// todos are still classified by their due date.
func Todo(t models.Todo, today calendar.Day) Light {
	return evaluate(KindTodo, Subject{Terminal: t.Done, Start: t.DueDate}, today)
}

// Training is red while running or starting tomorrow at the latest
func Training(t models.Training, today calendar.Day) Light {
	return evaluate(KindTraining, Subject{
		Terminal: t.Archived,
		Start:    t.DateFrom,
		End:      t.DateTo,
	}, today)
}

// Classify dispatches on the record type. Records without a rule
// (notices, service messages, users) yield None.
func Classify(rec any, today calendar.Day) Light {
	switch r := rec.(type) {
	case models.Absence:
		return Absence(r, today)
	case *models.Absence:
		return Absence(*r, today)
	case models.Roadwork:
		return Roadwork(r, today)
	case *models.Roadwork:
		return Roadwork(*r, today)
	case models.CharterTrip:
		return CharterTrip(r, today)
	case *models.CharterTrip:
		return CharterTrip(*r, today)
	case models.Appointment:
		return Appointment(r, today)
	case *models.Appointment:
		return Appointment(*r, today)
	case models.MedicalAppointment:
		return MedicalAppointment(r, today)
	case *models.MedicalAppointment:
		return MedicalAppointment(*r, today)
	case models.Todo:
		return Todo(r, today)
	case *models.Todo:
		return Todo(*r, today)
	case models.Training:
		return Training(r, today)
	case *models.Training:
		return Training(*r, today)
	default:
		return None
	}
}

// Counts tallies the lights of every classified record in s
func Counts(s *models.Snapshot, c models.Collection, today calendar.Day) map[Light]int {
	counts := make(map[Light]int, 4)
	for _, rec := range s.Records(c) {
		counts[Classify(rec, today)]++
	}
	return counts
}
