// Package export renders marks, attendance and calendar data into the
// download formats the school office expects: CSV sheets and an ICS feed.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/classhub/backend/internal/models"
)

// WriteMarksCSV writes one row per student for an exam.
func WriteMarksCSV(w io.Writer, exam *models.Exam, marks []models.Mark) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Student ID", "Student Name", "Score", "Max Marks", "Exam", "Class", "Subject", "Term"}); err != nil {
		return err
	}
	for _, m := range marks {
		record := []string{
			m.StudentID,
			m.StudentName,
			formatScore(m.Score),
			formatScore(exam.MaxMarks),
			exam.Name,
			exam.Class,
			exam.Subject,
			exam.Term,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteAttendanceCSV writes one row per attendance record.
func WriteAttendanceCSV(w io.Writer, records []models.AttendanceRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Date", "Class", "Student ID", "Student Name", "Status", "Marked By"}); err != nil {
		return err
	}
	for _, r := range records {
		record := []string{r.Date, r.Class, r.StudentID, r.StudentName, r.Status, r.MarkedBy}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatScore(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.2f", f)
}
