package scraper

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/pfrederiksen/course-ical/internal/course"
	"github.com/pfrederiksen/course-ical/internal/logger"
)

// FieldSpec says where one record field lives on a catalog page and how its
// text becomes a typed value.
type FieldSpec struct {
	Name      string
	Selector  string
	Transform func(text string) (any, error)

	matcher goquery.Matcher
}

func newField(name, selector string, transform func(string) (any, error)) FieldSpec {
	return FieldSpec{
		Name:      name,
		Selector:  selector,
		Transform: transform,
		matcher:   goquery.SingleMatcher(cascadia.MustCompile(selector)),
	}
}

// Selectors for classes.berkeley.edu course pages, e.g.
// https://classes.berkeley.edu/content/2025-spring-compsci-c280-001-lec-001
const (
	selTitle       = "h2.sf--course-title"
	selDescription = "section#section-course-description div.section-content"
	selInstructors = "div.sf--details div.sf--instructors p"
	selDates       = "div.sf--details div.sf--meeting-dates"
	selDays        = "div.sf--details div.sf--meeting-days"
	selTime        = "div.sf--details div.sf--meeting-time"
	selLocation    = "div.sf--details div.sf--location"
	selEnrolled    = `section.current-enrollment .stats div:contains("Enrolled:")`
	selCapacity    = `section.current-enrollment .stats div:contains("Capacity:")`
)

// fieldTable is built once and only read afterwards, so concurrent
// extractions share it.
var fieldTable = []FieldSpec{
	newField(course.FieldTitle, selTitle, plainText),
	newField(course.FieldDescription, selDescription, plainText),
	newField(course.FieldInstructors, selInstructors, instructors),
	newField(course.FieldStartDate, selDates, rangeStart(course.FieldStartDate, course.ParseDate)),
	newField(course.FieldEndDate, selDates, rangeEnd(course.FieldEndDate, course.ParseDate)),
	newField(course.FieldMeetingDays, selDays, meetingDays),
	newField(course.FieldMeetingStartTime, selTime, rangeStart(course.FieldMeetingStartTime, course.ParseTimeOfDay)),
	newField(course.FieldMeetingEndTime, selTime, rangeEnd(course.FieldMeetingEndTime, course.ParseTimeOfDay)),
	newField(course.FieldLocation, selLocation, plainText),
	newField(course.FieldEnrollments, selEnrolled, firstNumber(course.FieldEnrollments)),
	newField(course.FieldCapacity, selCapacity, firstNumber(course.FieldCapacity)),
}

// Fields returns a copy of the extraction table in extraction order.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(fieldTable))
	copy(out, fieldTable)
	return out
}

func plainText(text string) (any, error) {
	return strings.TrimSpace(text), nil
}

// splitList splits on commas, trims each piece and drops empty ones.
func splitList(text string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func instructors(text string) (any, error) {
	return splitList(text), nil
}

func meetingDays(text string) (any, error) {
	parts := splitList(text)
	days := make([]course.Weekday, 0, len(parts))
	for _, part := range parts {
		day, err := course.ResolveWeekday(part)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// rangeStart parses the part before the first "-". The start of a range is
// mandatory: when the delimiter or the start segment is missing the whole
// text is parsed as a single value instead.
func rangeStart[T any](field string, parse func(string) (T, error)) func(string) (any, error) {
	return func(text string) (any, error) {
		start, _, found := strings.Cut(text, "-")
		start = strings.TrimSpace(start)
		if !found || start == "" {
			logger.Warn("range start missing, parsing whole text as one value", logger.Fields{
				"field": field,
				"text":  text,
			})
			return parse(strings.TrimSpace(text))
		}
		return parse(start)
	}
}

// rangeEnd parses the part after the first "-". A missing end segment
// yields a nil *T.
func rangeEnd[T any](field string, parse func(string) (T, error)) func(string) (any, error) {
	return func(text string) (any, error) {
		_, end, found := strings.Cut(text, "-")
		end = strings.TrimSpace(end)
		if !found || end == "" {
			logger.Debug("range end missing, leaving field absent", logger.Fields{
				"field": field,
				"text":  text,
			})
			return (*T)(nil), nil
		}
		v, err := parse(end)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
}

var digitRun = regexp.MustCompile(`\d+`)

// firstNumber extracts the first run of digits, so "Enrolled: 45 / 50"
// yields 45.
func firstNumber(field string) func(string) (any, error) {
	return func(text string) (any, error) {
		digits := digitRun.FindString(text)
		if digits == "" {
			return nil, &course.ExtractionError{Field: field, Text: text}
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil, &course.ExtractionError{Field: field, Text: text}
		}
		return n, nil
	}
}

// attachField names the field on errors raised by parsers that do not know
// which field they serve.
func attachField(err error, field string) error {
	var pe *course.ParseError
	if errors.As(err, &pe) && pe.Field == "" {
		pe.Field = field
	}
	return err
}
