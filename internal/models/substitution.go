package models

import (
	"time"

	"gorm.io/gorm"
)

// Substitution statuses.
const (
	SubstitutionOpen     = "Open"
	SubstitutionAssigned = "Assigned"
)

// Substitution covers a period left open by an absent teacher.
type Substitution struct {
	ID     string `gorm:"primaryKey" json:"id"`
	Date   string `gorm:"not null;index" json:"date"`
	Period int    `gorm:"not null" json:"period"`

	Class   string `gorm:"not null" json:"class"`
	Subject string `json:"subject"`

	AbsentTeacher     string `gorm:"not null" json:"absent_teacher"`
	SubstituteTeacher string `gorm:"index" json:"substitute_teacher"`

	Status     string     `gorm:"not null;index" json:"status"`
	AssignedAt *time.Time `json:"assigned_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Substitution) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = generateUUID()
	}
	if s.Status == "" {
		s.Status = SubstitutionOpen
	}
	return nil
}
