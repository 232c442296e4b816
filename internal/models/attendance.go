package models

import (
	"time"

	"gorm.io/gorm"
)

// Attendance statuses.
const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceLate    = "Late"
	AttendanceExcused = "Excused"
)

// AttendanceRecord is one student's attendance for a class on a date.
// Re-marking the same (class, date, student) overwrites the previous status.
type AttendanceRecord struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Class       string `gorm:"not null;uniqueIndex:idx_attendance_class_date_student" json:"class"`
	Date        string `gorm:"not null;uniqueIndex:idx_attendance_class_date_student" json:"date"`
	StudentID   string `gorm:"not null;uniqueIndex:idx_attendance_class_date_student" json:"student_id"`
	StudentName string `json:"student_name"`
	Status      string `gorm:"not null" json:"status"`
	MarkedBy    string `json:"marked_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = generateUUID()
	}
	return nil
}

// ValidAttendanceStatus reports whether s is one of the accepted statuses.
func ValidAttendanceStatus(s string) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}
