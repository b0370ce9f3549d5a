package course

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field names of the extraction table. They double as the JSON keys of
// Record so validation failures name the same field the table does.
const (
	FieldTitle            = "title"
	FieldDescription      = "description"
	FieldInstructors      = "instructors"
	FieldStartDate        = "start_date"
	FieldEndDate          = "end_date"
	FieldMeetingDays      = "meeting_days"
	FieldMeetingStartTime = "meeting_start_time"
	FieldMeetingEndTime   = "meeting_end_time"
	FieldLocation         = "location"
	FieldEnrollments      = "number_of_enrollments"
	FieldCapacity         = "capacity"
)

// Record is one validated course. EndDate and MeetingEndTime are nil when
// the catalog page gives no end.
type Record struct {
	Title            string     `json:"title" validate:"required"`
	Description      string     `json:"description"`
	Instructors      []string   `json:"instructors" validate:"dive,required"`
	StartDate        Date       `json:"start_date"`
	EndDate          *Date      `json:"end_date"`
	MeetingDays      []Weekday  `json:"meeting_days" validate:"min=1,unique,dive,weekday"`
	MeetingStartTime TimeOfDay  `json:"meeting_start_time"`
	MeetingEndTime   *TimeOfDay `json:"meeting_end_time"`
	Location         string     `json:"location"`
	Enrollments      int        `json:"number_of_enrollments" validate:"gte=0"`
	Capacity         int        `json:"capacity" validate:"gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return Weekday(fl.Field().String()).Valid()
	})
	v.RegisterStructValidation(validateCalendar, Record{})
	return v
}

// validateCalendar covers the date and time fields, which are structs the
// tag rules cannot reach.
func validateCalendar(sl validator.StructLevel) {
	r := sl.Current().Interface().(Record)

	if !r.StartDate.Valid() {
		sl.ReportError(r.StartDate, FieldStartDate, "StartDate", "calendar_date", "")
	}
	if r.EndDate != nil {
		if !r.EndDate.Valid() {
			sl.ReportError(*r.EndDate, FieldEndDate, "EndDate", "calendar_date", "")
		} else if r.EndDate.Before(r.StartDate) {
			sl.ReportError(*r.EndDate, FieldEndDate, "EndDate", "gtefield", FieldStartDate)
		} else if !meetsBetween(r.StartDate, *r.EndDate, r.MeetingDays) {
			sl.ReportError(*r.EndDate, FieldEndDate, "EndDate", "first_meeting", FieldMeetingDays)
		}
	}
	if !r.MeetingStartTime.Valid() {
		sl.ReportError(r.MeetingStartTime, FieldMeetingStartTime, "MeetingStartTime", "time_of_day", "")
	}
	if r.MeetingEndTime != nil && !r.MeetingEndTime.Valid() {
		sl.ReportError(*r.MeetingEndTime, FieldMeetingEndTime, "MeetingEndTime", "time_of_day", "")
	}
}

// meetsBetween reports whether any of days falls on or between start and
// end. Invalid codes are left to the meeting_days rules.
func meetsBetween(start, end Date, days []Weekday) bool {
	var meets [7]bool
	for _, w := range days {
		if i := w.Index(); i >= 0 {
			meets[i] = true
		}
	}
	for d, n := start, 0; n < 7 && !end.Before(d); d, n = d.AddDays(1), n+1 {
		if meets[d.Weekday()] {
			return true
		}
	}
	return false
}

// Validate checks r against the record schema and returns the first
// violation as a *ValidationError.
func (r *Record) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: topLevelField(fe.Namespace()), Value: fe.Value(), Rule: fe.Tag()}
	}
	return err
}

// topLevelField trims "Record.meeting_days[1]" down to "meeting_days".
func topLevelField(namespace string) string {
	_, name, found := strings.Cut(namespace, ".")
	if !found {
		name = namespace
	}
	if i := strings.IndexAny(name, ".["); i >= 0 {
		name = name[:i]
	}
	return name
}

// Assemble builds a Record from extracted values keyed by field name and
// validates it. A missing key or a value of the wrong type is reported as a
// *ValidationError for that field.
func Assemble(values map[string]any) (*Record, error) {
	a := assembler{values: values}
	r := &Record{
		Title:            get[string](&a, FieldTitle),
		Description:      get[string](&a, FieldDescription),
		Instructors:      get[[]string](&a, FieldInstructors),
		StartDate:        get[Date](&a, FieldStartDate),
		EndDate:          get[*Date](&a, FieldEndDate),
		MeetingDays:      get[[]Weekday](&a, FieldMeetingDays),
		MeetingStartTime: get[TimeOfDay](&a, FieldMeetingStartTime),
		MeetingEndTime:   get[*TimeOfDay](&a, FieldMeetingEndTime),
		Location:         get[string](&a, FieldLocation),
		Enrollments:      get[int](&a, FieldEnrollments),
		Capacity:         get[int](&a, FieldCapacity),
	}
	if a.err != nil {
		return nil, a.err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

type assembler struct {
	values map[string]any
	err    error
}

func get[T any](a *assembler, field string) T {
	var zero T
	if a.err != nil {
		return zero
	}
	raw, ok := a.values[field]
	if !ok {
		a.err = &ValidationError{Field: field, Value: nil, Rule: "required"}
		return zero
	}
	v, ok := raw.(T)
	if !ok {
		a.err = &ValidationError{Field: field, Value: raw, Rule: "type"}
		return zero
	}
	return v
}
