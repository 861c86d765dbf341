// Package ics exports calendar events as an iCalendar feed.
package ics

import (
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/julianstephens/leitstand/internal/constants"
	"github.com/julianstephens/leitstand/internal/events"
)

const (
	productID = "-//leitstand//Leitstand Kalender//DE"
	uidDomain = "leitstand"
)

// Options controls the calendar header and timestamps
type Options struct {
	// Name is written as X-WR-CALNAME
	Name string
	// Stamp is the DTSTAMP of every event; zero means time.Now
	Stamp time.Time
	// Location places the all-day dates; nil means UTC
	Location *time.Location
}

// UID returns the stable iCalendar UID of an event
func UID(e events.Event) string {
	return e.ID + "@" + uidDomain
}

// Build converts events into an iCalendar object with one all-day VEVENT
// per event. DTEND keeps the exclusive end of the event.
func Build(list []events.Event, opts Options) *ical.Calendar {
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	name := opts.Name
	if name == "" {
		name = constants.AppName
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)
	if opts.Location != nil {
		cal.SetXWRTimezone(opts.Location.String())
	}

	for _, e := range list {
		ev := cal.AddEvent(UID(e))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetSummary(e.Title)
		ev.SetAllDayStartAt(e.Start.Time(opts.Location))
		ev.SetAllDayEndAt(e.End.Time(opts.Location))
		ev.SetProperty(ical.ComponentPropertyCategories, e.Category.Label())
	}
	return cal
}

// Write serializes events as an iCalendar document to w
func Write(w io.Writer, list []events.Event, opts Options) error {
	return Build(list, opts).SerializeTo(w)
}
