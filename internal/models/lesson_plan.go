package models

import (
	"time"

	"gorm.io/gorm"
)

// Lesson plan statuses. Pending Preparation rows are placeholders created
// ahead of content submission; submitting content moves a plan to Pending
// Review, and a reviewer moves it to Ready.
const (
	StatusPendingPreparation = "Pending Preparation"
	StatusPendingReview      = "Pending Review"
	StatusReady              = "Ready"
)

// LessonPlan is one row in the lesson-plan table. The business key is
// (class, subject, session, chapter); it is not unique for placeholder rows.
type LessonPlan struct {
	ID           string `gorm:"primaryKey" json:"id"`
	TeacherEmail string `gorm:"index" json:"teacher_email"`
	TeacherName  string `json:"teacher_name"`

	Class   string `gorm:"not null;index:idx_lesson_plans_key" json:"class"`
	Subject string `gorm:"not null;index:idx_lesson_plans_key" json:"subject"`
	// Chapter may be empty; it is resolved from the scheme of work when a
	// scheme_id is supplied on submission.
	Chapter string `json:"chapter"`
	// Session is the ordinal lesson number within the chapter, >= 0.
	Session int `gorm:"index:idx_lesson_plans_key" json:"session"`

	Objectives string `gorm:"type:text" json:"objectives"`
	Activities string `gorm:"type:text" json:"activities"`

	Status          string `gorm:"not null;index" json:"status"`
	ReviewerRemarks string `gorm:"type:text" json:"reviewer_remarks"`

	// Date is the planned/submission date as entered, kept as a string to
	// match the submitted form value.
	Date string `json:"date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *LessonPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = generateUUID()
	}
	if p.Status == "" {
		p.Status = StatusPendingReview
	}
	return nil
}

// IsPlaceholder reports whether this row was created ahead of content
// submission and is still waiting to be filled.
func (p *LessonPlan) IsPlaceholder() bool {
	return p.Status == StatusPendingPreparation
}

// SchemeOfWork maps a chapter to a class/subject/term slot. Lesson-plan
// submissions reference a scheme to resolve their chapter.
type SchemeOfWork struct {
	ID         string `gorm:"primaryKey" json:"id"`
	Class      string `gorm:"not null;index:idx_schemes_class_subject" json:"class"`
	Subject    string `gorm:"not null;index:idx_schemes_class_subject" json:"subject"`
	Chapter    string `gorm:"not null" json:"chapter"`
	Term       string `json:"term"`
	WeekNumber int    `json:"week_number"`
	Objectives string `gorm:"type:text" json:"objectives"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *SchemeOfWork) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = generateUUID()
	}
	return nil
}
