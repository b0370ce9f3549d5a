package calendar

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/pfrederiksen/course-ical/internal/course"
)

var rruleDays = map[course.Weekday]rrule.Weekday{
	course.Sunday:    rrule.SU,
	course.Monday:    rrule.MO,
	course.Tuesday:   rrule.TU,
	course.Wednesday: rrule.WE,
	course.Thursday:  rrule.TH,
	course.Friday:    rrule.FR,
	course.Saturday:  rrule.SA,
}

// Occurrences expands e into the start time of every meeting, in the
// event's zone. DTSTART is always the first instance, even when it falls
// after the recurrence end. A non-recurring event has exactly one.
func (e *Event) Occurrences() ([]time.Time, error) {
	loc, err := LoadZone(e.Zone)
	if err != nil {
		return nil, err
	}
	start := inZone(e.Start, loc)
	if e.Recurrence == nil {
		return []time.Time{start}, nil
	}

	byDay := make([]rrule.Weekday, 0, len(e.Recurrence.Days))
	for _, d := range e.Recurrence.Days {
		wd, ok := rruleDays[d]
		if !ok {
			return nil, fmt.Errorf("invalid meeting day %q", d)
		}
		byDay = append(byDay, wd)
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   start,
		Byweekday: byDay,
		Until:     e.Recurrence.Until,
	})
	if err != nil {
		return nil, fmt.Errorf("building recurrence: %w", err)
	}

	meetings := r.All()
	if len(meetings) == 0 || !meetings[0].Equal(start) {
		meetings = append([]time.Time{start}, meetings...)
	}
	return meetings, nil
}

// Verify parses doc as an iCalendar document and returns how many events it
// holds. Every event must carry DTSTART and SUMMARY.
func Verify(doc string) (int, error) {
	if !strings.HasSuffix(doc, "\n") {
		doc += "\r\n"
	}

	cal, err := ical.ParseCalendar(bytes.NewBufferString(doc))
	if err != nil {
		return 0, fmt.Errorf("parsing calendar: %w", err)
	}

	events := cal.Events()
	for i, ev := range events {
		if ev.GetProperty(ical.ComponentPropertyDtStart) == nil {
			return 0, fmt.Errorf("event %d has no DTSTART", i)
		}
		if ev.GetProperty(ical.ComponentPropertySummary) == nil {
			return 0, fmt.Errorf("event %d has no SUMMARY", i)
		}
	}
	return len(events), nil
}
