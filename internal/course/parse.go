package course

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout = "Jan 2, 2006"
	timeLayout = "3:04 PM"
)

// Date is a calendar day without a clock component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date of t in t's location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Valid reports whether d names a real day.
func (d Date) Valid() bool {
	return d.Month >= time.January && d.Month <= time.December &&
		d.Day >= 1 && NewDate(d.Time(time.UTC)) == d
}

// Weekday returns the day of the week d falls on.
func (d Date) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// AddDays returns d moved n days forward.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Time(time.UTC).AddDate(0, 0, n))
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	return d.Time(time.UTC).Before(o.Time(time.UTC))
}

func (d Date) String() string {
	return d.Time(time.UTC).Format("2006-01-02")
}

// MarshalText renders d as YYYY-MM-DD.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// TimeOfDay is a wall clock time without a calendar component.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Valid reports whether t is within 00:00 and 23:59.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

// On combines t with the calendar day d in loc.
func (t TimeOfDay) On(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, 0, 0, loc)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalText renders t as HH:MM.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseTimeOfDay parses a 12-hour clock such as "2:00 PM" or "02:00 pm".
func ParseTimeOfDay(text string) (TimeOfDay, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(text), " "))
	t, err := time.Parse(timeLayout, normalized)
	if err != nil {
		return TimeOfDay{}, &ParseError{Kind: "time", Text: text, Err: err}
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// ParseDate parses catalog dates such as "Jan 21, 2025".
// Impossible days like "Feb 30, 2025" are rejected.
func ParseDate(text string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.Join(strings.Fields(text), " "))
	if err != nil {
		return Date{}, &ParseError{Kind: "date", Text: text, Err: err}
	}
	return NewDate(t), nil
}
