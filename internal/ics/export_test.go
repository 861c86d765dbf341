package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/events"
	"github.com/julianstephens/leitstand/internal/models"
)

func sampleEvents() []events.Event {
	m := events.MapAbsences([]models.Absence{
		{Meta: models.Meta{ID: "a1"}, PersonnelNumber: "4711", Type: models.AbsenceSick, StartDate: "2024-03-01", EndDate: "2024-03-03"},
	})
	m.Merge(events.MapCharterTrips([]models.CharterTrip{
		{Meta: models.Meta{ID: "c1"}, Label: "Schulausflug", Date: "2024-03-05"},
	}))
	return m.Events
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	stamp := time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC)
	if err := Write(&buf, sampleEvents(), Options{Name: "Leitstand", Stamp: stamp}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"BEGIN:VCALENDAR", "PRODID:" + productID, "X-WR-CALNAME:Leitstand", "METHOD:PUBLISH"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("generated calendar does not parse: %v", err)
	}
	evs := cal.Events()
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}

	first := evs[0]
	if uid := first.GetProperty(ical.ComponentPropertyUniqueId).Value; uid != "absence-a1@leitstand" {
		t.Errorf("UID = %s", uid)
	}
	if v := first.GetProperty(ical.ComponentPropertyDtStart).Value; v != "20240301" {
		t.Errorf("DTSTART = %s, want 20240301", v)
	}
	// DTEND is exclusive: the absence ends on the 3rd
	if v := first.GetProperty(ical.ComponentPropertyDtEnd).Value; v != "20240304" {
		t.Errorf("DTEND = %s, want 20240304", v)
	}
	if v := first.GetProperty(ical.ComponentPropertyCategories).Value; v != events.CategoryAbsence.Label() {
		t.Errorf("CATEGORIES = %s", v)
	}

	second := evs[1]
	if v := second.GetProperty(ical.ComponentPropertyDtEnd).Value; v != "20240306" {
		t.Errorf("single-day DTEND = %s, want 20240306", v)
	}
	if !strings.Contains(second.GetProperty(ical.ComponentPropertySummary).Value, "Schulausflug") {
		t.Errorf("summary lost the trip label: %s", second.GetProperty(ical.ComponentPropertySummary).Value)
	}
}

func TestBuildEmpty(t *testing.T) {
	cal := Build(nil, Options{})
	if len(cal.Events()) != 0 {
		t.Errorf("expected no events, got %d", len(cal.Events()))
	}
	if !strings.Contains(cal.Serialize(), "X-WR-CALNAME:leitstand") {
		t.Error("default calendar name missing")
	}
}

func TestBuildWithLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("timezone database unavailable")
	}
	e := events.Event{ID: "todo-t1", Title: "Aushang", Start: calendar.MustParse("2024-10-27"), End: calendar.MustParse("2024-10-28"), Category: events.CategoryTodo}
	cal := Build([]events.Event{e}, Options{Location: loc})
	ev := cal.Events()[0]
	if v := ev.GetProperty(ical.ComponentPropertyDtStart).Value; v != "20241027" {
		t.Errorf("DTSTART across DST change = %s", v)
	}
}
