package scraper

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/course-ical/internal/course"
)

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/compsci-c280.html")
	require.NoError(t, err)
	return string(data)
}

func pageFrom(t *testing.T, html string) *Page {
	t.Helper()
	page, err := NewPage(strings.NewReader(html))
	require.NoError(t, err)
	return page
}

func TestExtract(t *testing.T) {
	rec, err := Extract(pageFrom(t, loadFixture(t)))
	require.NoError(t, err)

	assert.Equal(t, "Computer Vision", rec.Title)
	assert.True(t, strings.HasPrefix(rec.Description, "Paradigms and techniques"))
	assert.Equal(t, []string{"Alexei Efros", "Jitendra Malik"}, rec.Instructors)
	assert.Equal(t, course.Date{Year: 2025, Month: time.January, Day: 21}, rec.StartDate)
	require.NotNil(t, rec.EndDate)
	assert.Equal(t, course.Date{Year: 2025, Month: time.May, Day: 9}, *rec.EndDate)
	assert.Equal(t, []course.Weekday{course.Tuesday, course.Thursday}, rec.MeetingDays)
	assert.Equal(t, course.TimeOfDay{Hour: 14}, rec.MeetingStartTime)
	require.NotNil(t, rec.MeetingEndTime)
	assert.Equal(t, course.TimeOfDay{Hour: 15, Minute: 29}, *rec.MeetingEndTime)
	assert.Equal(t, "Li Ka Shing 245", rec.Location)
	assert.Equal(t, 45, rec.Enrollments)
	assert.Equal(t, 50, rec.Capacity)
}

func TestExtract_OpenEndedCourse(t *testing.T) {
	html := strings.NewReplacer(
		"Jan 21, 2025 - May 9, 2025", "Jan 21, 2025",
		"2:00 pm - 3:29 pm", "2:00 pm",
	).Replace(loadFixture(t))

	rec, err := Extract(pageFrom(t, html))
	require.NoError(t, err)
	assert.Nil(t, rec.EndDate)
	assert.Nil(t, rec.MeetingEndTime)
	assert.Equal(t, course.TimeOfDay{Hour: 14}, rec.MeetingStartTime)
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name      string
		old, new  string
		check     func(t *testing.T, err error)
		wantField string
	}{
		{
			name: "unknown weekday",
			old:  "Tuesday, Thursday", new: "Tuesday, Blursday",
			wantField: course.FieldMeetingDays,
			check: func(t *testing.T, err error) {
				var pe *course.ParseError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, course.FieldMeetingDays, pe.Field)
			},
		},
		{
			name: "no meeting days",
			old:  `<div class="sf--meeting-days">Tuesday, Thursday</div>`, new: "",
			wantField: course.FieldMeetingDays,
			check: func(t *testing.T, err error) {
				var ve *course.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, course.FieldMeetingDays, ve.Field)
			},
		},
		{
			name: "capacity without digits",
			old:  "Capacity: 50", new: "Capacity: TBD",
			wantField: course.FieldCapacity,
			check: func(t *testing.T, err error) {
				var ee *course.ExtractionError
				require.ErrorAs(t, err, &ee)
				assert.Equal(t, "Capacity: TBD", ee.Text)
			},
		},
		{
			name: "missing title",
			old:  `<h2 class="sf--course-title">`, new: `<h2 class="other">`,
			wantField: course.FieldTitle,
			check: func(t *testing.T, err error) {
				var ve *course.ValidationError
				require.ErrorAs(t, err, &ve)
			},
		},
		{
			name: "impossible date",
			old:  "Jan 21, 2025 - May 9, 2025", new: "Feb 30, 2025 - May 9, 2025",
			wantField: course.FieldStartDate,
			check: func(t *testing.T, err error) {
				var pe *course.ParseError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, "Feb 30, 2025", pe.Text)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := strings.Replace(loadFixture(t), tt.old, tt.new, 1)

			rec, err := Extract(pageFrom(t, html))
			assert.Nil(t, rec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantField)
			tt.check(t, err)
		})
	}
}

func TestExtract_EmptyPage(t *testing.T) {
	_, err := Extract(pageFrom(t, "<html><body></body></html>"))
	require.Error(t, err)
}
