package calendar

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// LoadZone resolves a TZID to its location. Names that cannot be written as
// a TZID parameter, and "Local", are rejected.
func LoadZone(zone string) (*time.Location, error) {
	if zone == "" || zone == "Local" || strings.ContainsAny(zone, ":;,\"") {
		return nil, fmt.Errorf("invalid time zone %q", zone)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", zone, err)
	}
	return loc, nil
}

// inZone reads the naive wall-clock value t as a time in loc.
func inZone(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}
