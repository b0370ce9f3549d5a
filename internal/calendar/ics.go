package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/course-ical/internal/course"
)

const (
	// DefaultZone is the TZID of the Berkeley catalog.
	DefaultZone = "America/Los_Angeles"

	// DefaultDuration applies when a course lists no end time.
	DefaultDuration = 30 * time.Minute

	localLayout = "20060102T150405"
	utcLayout   = "20060102T150405Z"
)

// FirstMeeting returns the first date on or after start that falls on one
// of days. It panics if days holds no valid code; validated records always
// have at least one.
func FirstMeeting(start course.Date, days []course.Weekday) course.Date {
	var meets [7]bool
	for _, d := range days {
		idx := d.Index()
		if idx < 0 {
			panic(fmt.Sprintf("calendar: invalid meeting day %q", d))
		}
		meets[idx] = true
	}

	day := start
	for range 7 {
		if meets[day.Weekday()] {
			return day
		}
		day = day.AddDays(1)
	}
	panic("calendar: no meeting days")
}

// Recurrence is a weekly rule ending at Until, inclusive. Until is the last
// second of the course end date in the event's zone, expressed in UTC.
type Recurrence struct {
	Days  []course.Weekday
	Until time.Time
}

// Event is the first meeting of a course plus its recurrence.
type Event struct {
	Zone        string
	Start       time.Time
	End         time.Time
	Recurrence  *Recurrence
	Summary     string
	Location    string
	Description string
}

// NewEvent builds the event for r labeled with zone. An unknown zone bounds
// the recurrence in UTC; callers validate the zone with LoadZone first.
func NewEvent(r *course.Record, zone string) *Event {
	first := FirstMeeting(r.StartDate, r.MeetingDays)

	start := r.MeetingStartTime.On(first, time.UTC)
	end := start.Add(DefaultDuration)
	if r.MeetingEndTime != nil {
		end = r.MeetingEndTime.On(first, time.UTC)
	}

	evt := &Event{
		Zone:        zone,
		Start:       start,
		End:         end,
		Summary:     r.Title,
		Location:    r.Location,
		Description: describe(r),
	}

	if r.EndDate != nil {
		loc, err := LoadZone(zone)
		if err != nil {
			loc = time.UTC
		}
		days := make([]course.Weekday, len(r.MeetingDays))
		copy(days, r.MeetingDays)
		evt.Recurrence = &Recurrence{
			Days:  days,
			Until: time.Date(r.EndDate.Year, r.EndDate.Month, r.EndDate.Day, 23, 59, 59, 0, loc).UTC(),
		}
	}
	return evt
}

func describe(r *course.Record) string {
	return fmt.Sprintf("Instructors: %s\nCapacity: %d\nEnrollments: %d\n\n%s",
		strings.Join(r.Instructors, ", "), r.Capacity, r.Enrollments, r.Description)
}

// ICS renders the VEVENT block with CRLF line endings and no trailing
// line break.
func (e *Event) ICS() string {
	lines := []string{
		"BEGIN:VEVENT",
		fmt.Sprintf("DTSTART;TZID=%s:%s", e.Zone, e.Start.Format(localLayout)),
		fmt.Sprintf("DTEND;TZID=%s:%s", e.Zone, e.End.Format(localLayout)),
	}

	if e.Recurrence != nil {
		days := make([]string, len(e.Recurrence.Days))
		for i, d := range e.Recurrence.Days {
			days[i] = string(d)
		}
		lines = append(lines, fmt.Sprintf("RRULE:FREQ=WEEKLY;BYDAY=%s;UNTIL=%s",
			strings.Join(days, ","), e.Recurrence.Until.UTC().Format(utcLayout)))
	}

	lines = append(lines,
		"SUMMARY:"+escapeICS(e.Summary),
		"LOCATION:"+escapeICS(e.Location),
		"DESCRIPTION:"+escapeICS(e.Description),
		"END:VEVENT",
	)
	return strings.Join(lines, "\r\n")
}

// GenerateCalendar wraps event blocks in a VCALENDAR document. Events are
// separated by a single line break.
func GenerateCalendar(events []*Event) string {
	if len(events) == 0 {
		return ""
	}

	blocks := make([]string, len(events))
	for i, evt := range events {
		blocks[i] = evt.ICS()
	}
	return "BEGIN:VCALENDAR\nVERSION:2.0\n" + strings.Join(blocks, "\n") + "\nEND:VCALENDAR"
}

// escapeICS escapes special characters for iCalendar TEXT values
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
