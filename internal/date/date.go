// Package date provides a calendar day type with no time-of-day component.
// Trip ranges and itinerary days are whole days; using time.Time for them
// invites off-by-one bugs around midnight and time zones.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Format is the ISO-8601 layout used to read and write dates.
const Format = "2006-01-02"

// Date is a calendar day. The zero value means "unset".
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date, so New(2024, 2, 30) is 2024-03-01.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.Time().Date()
	return d
}

// Of returns the calendar day of t in t's own location.
func Of(t time.Time) Date { return New(t.Date()) }

// In returns the calendar day of t as observed in loc.
func In(t time.Time, loc *time.Location) Date { return Of(t.In(loc)) }

// Parse reads a date in "2006-01-02" form.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", s, Format, err)
	}
	return Of(t), nil
}

// MustParse is like Parse but panics on error. Use it in tests and fixtures.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int          { return d.d }

// Add returns the date n days later (earlier when n is negative).
func (d Date) Add(n int) Date { return New(d.y, d.m, d.d+n) }

func (d Date) Before(x Date) bool { return d.Time().Before(x.Time()) }
func (d Date) After(x Date) bool  { return d.Time().After(x.Time()) }

// DaysUntil returns the number of days from d to x; negative when x is earlier.
// Both days are midnight UTC, so the difference is a whole number of days at
// any distance. time.Duration would saturate past about 292 years.
func (d Date) DaysUntil(x Date) int {
	return int((x.Time().Unix() - d.Time().Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// String formats the date as "2006-01-02", or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(Format)
}

// MarshalJSON writes the date as a JSON string, or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a "2006-01-02" string or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)
