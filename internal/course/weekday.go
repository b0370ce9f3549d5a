package course

import (
	"strings"
	"time"
)

// Weekday is an iCalendar two-letter day code.
type Weekday string

const (
	Sunday    Weekday = "SU"
	Monday    Weekday = "MO"
	Tuesday   Weekday = "TU"
	Wednesday Weekday = "WE"
	Thursday  Weekday = "TH"
	Friday    Weekday = "FR"
	Saturday  Weekday = "SA"
)

// weekdays is indexed like time.Weekday: Sunday is 0.
var weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// weekdayAliases lists the spellings the catalog uses for each day.
var weekdayAliases = map[Weekday][]string{
	Monday:    {"mo", "mon", "monday"},
	Tuesday:   {"tu", "tue", "tuesday"},
	Wednesday: {"we", "wed", "wednesday"},
	Thursday:  {"th", "thu", "thursday"},
	Friday:    {"fr", "fri", "friday"},
	Saturday:  {"sa", "sat", "saturday"},
	Sunday:    {"su", "sun", "sunday"},
}

// aliasIndex is the reverse of weekdayAliases.
var aliasIndex = func() map[string]Weekday {
	idx := make(map[string]Weekday)
	for day, aliases := range weekdayAliases {
		for _, a := range aliases {
			idx[a] = day
		}
	}
	return idx
}()

// ResolveWeekday maps a day name or abbreviation such as "Tue", "thursday"
// or "MO" to its code. Matching ignores case and surrounding whitespace.
func ResolveWeekday(text string) (Weekday, error) {
	if day, ok := aliasIndex[strings.ToLower(strings.TrimSpace(text))]; ok {
		return day, nil
	}
	return "", &ParseError{Kind: "weekday", Text: text}
}

// Valid reports whether w is one of the seven codes.
func (w Weekday) Valid() bool {
	return w.Index() >= 0
}

// Index returns the Sunday=0 ... Saturday=6 number of w, or -1.
func (w Weekday) Index() int {
	for i, d := range weekdays {
		if d == w {
			return i
		}
	}
	return -1
}

// WeekdayOf returns the code for a time.Weekday.
func WeekdayOf(d time.Weekday) Weekday {
	return weekdays[d]
}
