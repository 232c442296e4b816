package models

import (
	"time"

	"gorm.io/gorm"
)

// Exam is an assessment scheduled for a class and subject.
type Exam struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	Class    string  `gorm:"not null;index:idx_exams_class_term" json:"class"`
	Subject  string  `gorm:"not null" json:"subject"`
	Term     string  `gorm:"index:idx_exams_class_term" json:"term"`
	MaxMarks float64 `gorm:"default:100" json:"max_marks"`
	Date     string  `json:"date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Exam) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = generateUUID()
	}
	return nil
}

// Mark is one student's score on an exam. Re-entering a mark for the same
// (exam_id, student_id) overwrites the previous score, last write wins.
type Mark struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	ExamID      string  `gorm:"not null;uniqueIndex:idx_marks_exam_student" json:"exam_id"`
	Exam        Exam    `gorm:"foreignKey:ExamID" json:"-"`
	StudentID   string  `gorm:"not null;uniqueIndex:idx_marks_exam_student" json:"student_id"`
	StudentName string  `json:"student_name"`
	Score       float64 `json:"score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Mark) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = generateUUID()
	}
	return nil
}
