//go:build ignore

// sample-calendar writes a one-course .ics file for checking how calendar
// apps render the generated events. Run with: go run scripts/sample-calendar.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/course-ical/internal/calendar"
	"github.com/pfrederiksen/course-ical/internal/course"
)

func main() {
	end := course.Date{Year: 2025, Month: time.May, Day: 9}
	endTime := course.TimeOfDay{Hour: 15, Minute: 29}
	rec := &course.Record{
		Title:            "COMPSCI C280 - Computer Vision",
		Description:      "Paradigms and techniques in computer vision.",
		Instructors:      []string{"Alexei Efros", "Jitendra Malik"},
		StartDate:        course.Date{Year: 2025, Month: time.January, Day: 21},
		EndDate:          &end,
		MeetingDays:      []course.Weekday{course.Tuesday, course.Thursday},
		MeetingStartTime: course.TimeOfDay{Hour: 14},
		MeetingEndTime:   &endTime,
		Location:         "Li Ka Shing 245",
		Enrollments:      45,
		Capacity:         50,
	}
	if err := rec.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid sample record: %v\n", err)
		os.Exit(1)
	}

	doc := calendar.GenerateCalendar([]*calendar.Event{calendar.NewEvent(rec, calendar.DefaultZone)})

	filename := "sample-course.ics"
	if err := os.WriteFile(filename, []byte(doc), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated calendar file: %s\n\n", filename)
	fmt.Println("Import it into Google Calendar, Apple Calendar, or Outlook to check it.")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(doc)
}
