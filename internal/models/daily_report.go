package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyReport is a teacher's end-of-lesson record of what was actually taught.
type DailyReport struct {
	ID           string `gorm:"primaryKey" json:"id"`
	TeacherEmail string `gorm:"not null;index" json:"teacher_email"`
	TeacherName  string `json:"teacher_name"`

	Class   string `gorm:"not null;index:idx_reports_class_date" json:"class"`
	Subject string `gorm:"not null" json:"subject"`
	Date    string `gorm:"not null;index:idx_reports_class_date" json:"date"`

	TopicCovered      string `gorm:"type:text" json:"topic_covered"`
	Remarks           string `gorm:"type:text" json:"remarks"`
	AttendanceSummary string `json:"attendance_summary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *DailyReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = generateUUID()
	}
	return nil
}
