package calendar

import (
	"fmt"
	"time"
)

// Thuringian public holidays with a fixed month-day. Easter-based holidays are not computed.
var fixedHolidays = map[string]string{
	"01-01": "Neujahr",
	"05-01": "Tag der Arbeit",
	"10-03": "Tag der Deutschen Einheit",
	"10-31": "Reformationstag",
	"12-25": "1. Weihnachtstag",
	"12-26": "2. Weihnachtstag",
}

// Shading is the background tint of a calendar day cell
type Shading string

const (
	ShadeNone     Shading = ""
	ShadeHoliday  Shading = "holiday"
	ShadeSunday   Shading = "sunday"
	ShadeSaturday Shading = "saturday"
)

// Color is the cell background for the shading
func (s Shading) Color() string {
	switch s {
	case ShadeHoliday:
		return "#fef9c3"
	case ShadeSunday:
		return "#fee2e2"
	case ShadeSaturday:
		return "#dcfce7"
	default:
		return ""
	}
}

func monthDay(d Day) string {
	return fmt.Sprintf("%02d-%02d", int(d.Month()), d.DayOfMonth())
}

// IsHoliday reports whether d falls on a fixed public holiday, ignoring the year
func IsHoliday(d Day) bool {
	if d.IsZero() {
		return false
	}
	_, ok := fixedHolidays[monthDay(d)]
	return ok
}

// HolidayName returns the holiday name for d, or "" when d is not a holiday
func HolidayName(d Day) string {
	if d.IsZero() {
		return ""
	}
	return fixedHolidays[monthDay(d)]
}

// IsWeekend reports whether d is a Saturday or Sunday
func IsWeekend(d Day) bool {
	if d.IsZero() {
		return false
	}
	wd := d.Weekday()
	return wd == time.Sunday || wd == time.Saturday
}

// Shade picks the day-cell tint. Holidays win over weekends.
func Shade(d Day) Shading {
	switch {
	case IsHoliday(d):
		return ShadeHoliday
	case d.IsZero():
		return ShadeNone
	case d.Weekday() == time.Sunday:
		return ShadeSunday
	case d.Weekday() == time.Saturday:
		return ShadeSaturday
	default:
		return ShadeNone
	}
}

// ISOWeek returns the ISO 8601 week number of d
func ISOWeek(d Day) int {
	_, week := d.t.ISOWeek()
	return week
}

// WeekLabel formats the ISO week as shown in the kiosk header, e.g. "KW 24"
func WeekLabel(d Day) string {
	return fmt.Sprintf("KW %d", ISOWeek(d))
}
