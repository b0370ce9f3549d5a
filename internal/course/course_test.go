package course

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validValues() map[string]any {
	end := Date{Year: 2025, Month: time.May, Day: 9}
	endTime := TimeOfDay{Hour: 15, Minute: 30}
	return map[string]any{
		FieldTitle:            "COMPSCI C280 - Computer Vision",
		FieldDescription:      "Paradigms and techniques.",
		FieldInstructors:      []string{"Alexei Efros", "Jitendra Malik"},
		FieldStartDate:        Date{Year: 2025, Month: time.January, Day: 21},
		FieldEndDate:          &end,
		FieldMeetingDays:      []Weekday{Tuesday, Thursday},
		FieldMeetingStartTime: TimeOfDay{Hour: 14},
		FieldMeetingEndTime:   &endTime,
		FieldLocation:         "Li Ka Shing 245",
		FieldEnrollments:      45,
		FieldCapacity:         50,
	}
}

func TestAssemble(t *testing.T) {
	r, err := Assemble(validValues())
	require.NoError(t, err)
	assert.Equal(t, "COMPSCI C280 - Computer Vision", r.Title)
	assert.Equal(t, []Weekday{Tuesday, Thursday}, r.MeetingDays)
	require.NotNil(t, r.EndDate)
	assert.Equal(t, time.May, r.EndDate.Month)
	assert.Equal(t, 45, r.Enrollments)
}

func TestAssemble_SingleMeetingOnEndDate(t *testing.T) {
	values := validValues()
	start := Date{Year: 2025, Month: time.January, Day: 19} // Sunday
	end := Date{Year: 2025, Month: time.January, Day: 21}   // Tuesday
	values[FieldStartDate] = start
	values[FieldEndDate] = &end

	_, err := Assemble(values)
	assert.NoError(t, err)
}

func TestAssemble_OptionalFieldsAbsent(t *testing.T) {
	values := validValues()
	values[FieldEndDate] = (*Date)(nil)
	values[FieldMeetingEndTime] = (*TimeOfDay)(nil)
	values[FieldLocation] = ""
	values[FieldInstructors] = []string{}

	r, err := Assemble(values)
	require.NoError(t, err)
	assert.Nil(t, r.EndDate)
	assert.Nil(t, r.MeetingEndTime)
}

func TestAssemble_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(map[string]any)
		wantField string
		wantRule  string
	}{
		{
			name:      "empty title",
			mutate:    func(v map[string]any) { v[FieldTitle] = "" },
			wantField: FieldTitle,
			wantRule:  "required",
		},
		{
			name:      "no meeting days",
			mutate:    func(v map[string]any) { v[FieldMeetingDays] = []Weekday{} },
			wantField: FieldMeetingDays,
			wantRule:  "min",
		},
		{
			name:      "duplicate meeting day",
			mutate:    func(v map[string]any) { v[FieldMeetingDays] = []Weekday{Tuesday, Tuesday} },
			wantField: FieldMeetingDays,
			wantRule:  "unique",
		},
		{
			name:      "unknown weekday code",
			mutate:    func(v map[string]any) { v[FieldMeetingDays] = []Weekday{Tuesday, "XX"} },
			wantField: FieldMeetingDays,
			wantRule:  "weekday",
		},
		{
			name:      "empty instructor",
			mutate:    func(v map[string]any) { v[FieldInstructors] = []string{"A. Efros", ""} },
			wantField: FieldInstructors,
			wantRule:  "required",
		},
		{
			name:      "negative capacity",
			mutate:    func(v map[string]any) { v[FieldCapacity] = -1 },
			wantField: FieldCapacity,
			wantRule:  "gte",
		},
		{
			name:      "enrollment of wrong type",
			mutate:    func(v map[string]any) { v[FieldEnrollments] = "45" },
			wantField: FieldEnrollments,
			wantRule:  "type",
		},
		{
			name:      "missing field",
			mutate:    func(v map[string]any) { delete(v, FieldLocation) },
			wantField: FieldLocation,
			wantRule:  "required",
		},
		{
			name:      "impossible start date",
			mutate:    func(v map[string]any) { v[FieldStartDate] = Date{Year: 2025, Month: time.February, Day: 30} },
			wantField: FieldStartDate,
			wantRule:  "calendar_date",
		},
		{
			name: "end date before start date",
			mutate: func(v map[string]any) {
				end := Date{Year: 2024, Month: time.December, Day: 1}
				v[FieldEndDate] = &end
			},
			wantField: FieldEndDate,
			wantRule:  "gtefield",
		},
		{
			name: "no meeting day before end date",
			mutate: func(v map[string]any) {
				day := Date{Year: 2025, Month: time.January, Day: 20} // Monday
				v[FieldStartDate] = day
				v[FieldEndDate] = &day
			},
			wantField: FieldEndDate,
			wantRule:  "first_meeting",
		},
		{
			name:      "impossible start time",
			mutate:    func(v map[string]any) { v[FieldMeetingStartTime] = TimeOfDay{Hour: 25} },
			wantField: FieldMeetingStartTime,
			wantRule:  "time_of_day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validValues()
			tt.mutate(values)

			r, err := Assemble(values)
			assert.Nil(t, r)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, tt.wantRule, ve.Rule)
			assert.Contains(t, ve.Error(), tt.wantField)
		})
	}
}

func TestAssemble_EndDateOnStartDate(t *testing.T) {
	values := validValues()
	end := Date{Year: 2025, Month: time.January, Day: 21}
	values[FieldEndDate] = &end

	_, err := Assemble(values)
	assert.NoError(t, err)
}
