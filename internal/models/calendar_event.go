package models

import (
	"time"

	"gorm.io/gorm"
)

// Calendar event categories.
const (
	EventExam     = "Exam"
	EventHoliday  = "Holiday"
	EventMeeting  = "Meeting"
	EventActivity = "Activity"
)

// CalendarEvent is an entry on the school calendar. Dates are YYYY-MM-DD
// strings; all-day events only, matching the form values.
type CalendarEvent struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Category    string `gorm:"not null;index" json:"category"`
	StartDate   string `gorm:"not null;index" json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *CalendarEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = generateUUID()
	}
	return nil
}

// ValidEventCategory reports whether c is one of the accepted categories.
func ValidEventCategory(c string) bool {
	switch c {
	case EventExam, EventHoliday, EventMeeting, EventActivity:
		return true
	}
	return false
}
