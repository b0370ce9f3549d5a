package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/course-ical/internal/calendar"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

const summaryTimeLayout = "Mon Jan 2, 2006 15:04"

// CourseSummary describes the event written for one course.
type CourseSummary struct {
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	FirstMeeting time.Time `json:"first_meeting"`
	LastMeeting  time.Time `json:"last_meeting"`
	Meetings     int       `json:"meetings"`
	Recurring    bool      `json:"recurring"`
}

// Failure is a page left out of the calendar.
type Failure struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// OutputResult contains data to be output
type OutputResult struct {
	GeneratedAt time.Time       `json:"generated_at"`
	File        string          `json:"file,omitempty"`
	CourseCount int             `json:"course_count"`
	Courses     []CourseSummary `json:"courses"`
	Skipped     []Failure       `json:"skipped,omitempty"`
}

func summarize(url string, evt *calendar.Event) (CourseSummary, error) {
	meetings, err := evt.Occurrences()
	if err != nil {
		return CourseSummary{}, fmt.Errorf("expanding %s: %w", url, err)
	}
	return CourseSummary{
		URL:          url,
		Title:        evt.Summary,
		FirstMeeting: meetings[0],
		LastMeeting:  meetings[len(meetings)-1],
		Meetings:     len(meetings),
		Recurring:    evt.Recurrence != nil,
	}, nil
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	noun := "courses"
	if result.CourseCount == 1 {
		noun = "course"
	}
	fmt.Fprintf(w, "Extracted %d %s.\n", result.CourseCount, noun)

	for _, c := range result.Courses {
		fmt.Fprintf(w, "\n%s\n", c.Title)
		fmt.Fprintf(w, "  First meeting: %s\n", c.FirstMeeting.Format(summaryTimeLayout))
		if c.Recurring {
			fmt.Fprintf(w, "  Meetings: %d (last %s)\n", c.Meetings, c.LastMeeting.Format(summaryTimeLayout))
		} else {
			fmt.Fprintln(w, "  Meetings: 1 (no end date)")
		}
		if verbose {
			fmt.Fprintf(w, "  URL: %s\n", c.URL)
		}
	}

	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped %d page(s):\n", len(result.Skipped))
		for _, f := range result.Skipped {
			fmt.Fprintf(w, "  %s: %s\n", f.URL, f.Error)
		}
	}

	if result.File != "" {
		fmt.Fprintf(w, "\niCal file generated at %q.\n", result.File)
	}
	return nil
}
