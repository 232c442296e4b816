package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/classhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMarksCSV(t *testing.T) {
	exam := &models.Exam{Name: "Midterm", Class: "7A", Subject: "Math", Term: "Term 1", MaxMarks: 100}
	marks := []models.Mark{
		{StudentID: "S-001", StudentName: "Amina Yusuf", Score: 82},
		{StudentID: "S-002", StudentName: "Brian Ochieng", Score: 67.5},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMarksCSV(&buf, exam, marks))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Student ID", rows[0][0])
	assert.Equal(t, []string{"S-001", "Amina Yusuf", "82", "100", "Midterm", "7A", "Math", "Term 1"}, rows[1])
	assert.Equal(t, "67.50", rows[2][2])
}

func TestWriteAttendanceCSV(t *testing.T) {
	records := []models.AttendanceRecord{
		{Date: "2026-09-07", Class: "8B", StudentID: "S-010", StudentName: "Chep Koech", Status: models.AttendancePresent, MarkedBy: "joseph@school.test"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAttendanceCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2026-09-07", "8B", "S-010", "Chep Koech", "Present", "joseph@school.test"}, rows[1])
}

func TestWriteCalendarICS(t *testing.T) {
	events := []models.CalendarEvent{
		{ID: "ev-1", Title: "End of Term Exams", Category: models.EventExam, StartDate: "2026-11-23", EndDate: "2026-11-27"},
		{ID: "ev-2", Title: "Sports Day; all classes", Category: models.EventActivity, StartDate: "2026-10-02"},
		{ID: "ev-3", Title: "Bad date", Category: models.EventMeeting, StartDate: "not-a-date"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCalendarICS(&buf, events))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.Contains(t, out, "UID:ev-1@classhub")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20261123")
	// DTEND is exclusive: the last exam day is the 27th, so DTEND is the 28th.
	assert.Contains(t, out, "DTEND;VALUE=DATE:20261128")
	// One-day events span a single day.
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20261002")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20261003")
	// Semicolons in titles are escaped.
	assert.Contains(t, out, "SUMMARY:Sports Day\\; all classes")
	// Unparseable dates are skipped, not fatal.
	assert.NotContains(t, out, "ev-3")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
}
