// Package calendar normalizes record dates into calendar days and provides
// the holiday and weekend rules used to shade calendar grids.
package calendar

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/leitstand/internal/constants"
)

const msPerDay = float64(24 * time.Hour)

// dateTimeLayouts are tried after the date-only layout. Layouts without an
// offset are read as wall-clock values and keep their written date.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Day is a date without a time-of-day component. It is stored at midnight UTC
// so that differences between days are exact multiples of 24h.
// The zero Day means "no day".
type Day struct {
	t time.Time
}

// Date builds a Day from its components
func Date(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime returns the calendar day of t in t's own location
func FromTime(t time.Time) Day {
	if t.IsZero() {
		return Day{}
	}
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the calendar day of now in loc. A nil loc uses now's location.
func Today(now time.Time, loc *time.Location) Day {
	if loc != nil {
		now = now.In(loc)
	}
	return FromTime(now)
}

// Parse reads a date-only or date-time string. Date-times carrying an offset
// are converted to the local calendar day. It returns false for empty or
// unparseable input.
func Parse(s string) (Day, bool) {
	return ParseIn(s, time.Local)
}

// ParseIn is Parse with an explicit location for offset-bearing date-times
func ParseIn(s string, loc *time.Location) (Day, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Day{}, false
	}
	if t, err := time.Parse(constants.DateFormat, s); err == nil {
		return FromTime(t), !t.IsZero()
	}
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if layout == time.RFC3339Nano && loc != nil {
			t = t.In(loc)
		}
		return FromTime(t), !t.IsZero()
	}
	return Day{}, false
}

// MustParse is Parse for literals in tests and tables; it panics on bad input
func MustParse(s string) Day {
	d, ok := Parse(s)
	if !ok {
		panic(fmt.Sprintf("calendar: invalid day %q", s))
	}
	return d
}

// ToDay normalizes the date representations found in records: strings,
// time values and Days. Unsupported, empty and unparseable values return false.
func ToDay(v any) (Day, bool) {
	switch val := v.(type) {
	case nil:
		return Day{}, false
	case Day:
		return val, !val.IsZero()
	case *Day:
		if val == nil {
			return Day{}, false
		}
		return *val, !val.IsZero()
	case string:
		return Parse(val)
	case *string:
		if val == nil {
			return Day{}, false
		}
		return Parse(*val)
	case time.Time:
		return FromTime(val), !val.IsZero()
	case *time.Time:
		if val == nil {
			return Day{}, false
		}
		return FromTime(*val), !val.IsZero()
	default:
		return Day{}, false
	}
}

// Diff returns a minus b in whole days, rounded to absorb sub-day drift
func Diff(a, b Day) int {
	return int(math.Round(float64(a.t.Sub(b.t)) / msPerDay))
}

func (d Day) IsZero() bool { return d.t.IsZero() }

// AddDays returns d shifted by n calendar days
func (d Day) AddDays(n int) Day {
	if d.IsZero() {
		return d
	}
	return Day{t: d.t.AddDate(0, 0, n)}
}

func (d Day) Before(o Day) bool { return d.t.Before(o.t) }
func (d Day) After(o Day) bool  { return d.t.After(o.t) }
func (d Day) Equal(o Day) bool  { return d.t.Equal(o.t) }

// Between reports whether from <= d <= to
func (d Day) Between(from, to Day) bool {
	return !d.Before(from) && !d.After(to)
}

func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) Year() int             { return d.t.Year() }
func (d Day) Month() time.Month     { return d.t.Month() }
func (d Day) DayOfMonth() int       { return d.t.Day() }

// Time returns midnight of d in loc
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), 0, 0, 0, 0, loc)
}

// String formats d as YYYY-MM-DD, or "" for the zero Day
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(constants.DateFormat)
}

// Display formats d as TT.MM.JJJJ
func (d Day) Display() string {
	if d.IsZero() {
		return "-"
	}
	return d.t.Format(constants.DisplayDateFormat)
}

func (d Day) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Day{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Day{}
		return nil
	}
	parsed, ok := Parse(s)
	if !ok {
		return fmt.Errorf("calendar: invalid day %q", s)
	}
	*d = parsed
	return nil
}
