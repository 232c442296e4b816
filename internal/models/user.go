package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. Reviewers can approve lesson plans; admins additionally manage
// exams, substitutions and calendar events.
const (
	RoleTeacher  = "teacher"
	RoleReviewer = "reviewer"
	RoleAdmin    = "admin"
)

// User represents a staff account with unified auth (password or Google).
type User struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	Name  string `gorm:"not null" json:"name"`

	// Native auth fields
	PasswordHash *string `gorm:"type:text" json:"-"`

	// OAuth provider ID (nullable - users can have native accounts)
	GoogleID *string `gorm:"uniqueIndex" json:"-"`

	Role string `gorm:"default:teacher" json:"role"`

	LastActiveAt *time.Time `json:"last_active_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = generateUUID()
	}
	if u.Role == "" {
		u.Role = RoleTeacher
	}
	return nil
}

// IsStaffAdmin reports whether the user may hit admin-only endpoints.
func (u *User) IsStaffAdmin() bool {
	return u.Role == RoleAdmin
}

// CanReview reports whether the user may review lesson plans.
func (u *User) CanReview() bool {
	return u.Role == RoleReviewer || u.Role == RoleAdmin
}

func generateUUID() string {
	return uuid.New().String()
}
