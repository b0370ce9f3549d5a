// Package calendar turns course records into iCalendar events.
//
// Every event starts on the first day on or after the course start date
// that is one of its meeting days, and repeats weekly until the course end
// date when one is known.
//
// Times are naive wall-clock values labeled with a single TZID. They are
// carried in time.UTC internally and never converted, so no daylight saving
// adjustment happens; a calendar client applies the zone rules itself when
// it reads the TZID. Only the recurrence end is resolved against the zone,
// so a meeting on the last day is inside UNTIL whatever its time.
//
// Summary, location and description are escaped as iCalendar TEXT, so the
// document holds "Efros\, Malik" where a consumer that unescapes the value
// sees "Efros, Malik".
package calendar
