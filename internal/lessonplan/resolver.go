// Package lessonplan decides what a lesson-plan submission means: a new
// record, an update to an existing one, a placeholder being filled, or a
// rejected duplicate. The resolver is the server-side authority; the
// validator in this package is the advisory pre-flight mirror of its
// duplicate rule.
package lessonplan

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/classhub/backend/internal/models"
	"gorm.io/gorm"
)

// Outcome says which path a successful submission took.
type Outcome string

const (
	OutcomeCreated           Outcome = "created"
	OutcomeUpdatedByID       Outcome = "updated"
	OutcomeFilledPlaceholder Outcome = "filled_placeholder"
)

// Submission is the payload of a lesson-plan form post.
type Submission struct {
	// ID, when present and matching an existing record, selects an
	// unconditional update: the caller is assumed to know the record it
	// is editing, so no duplicate check runs on this path.
	ID string `json:"id"`

	Class   string  `json:"class"`
	Subject string  `json:"subject"`
	Session FlexInt `json:"session"`

	// SchemeID selects the scheme of work the chapter is resolved from.
	// Resolution is best-effort: a missing or unknown scheme leaves the
	// chapter empty and processing continues.
	SchemeID string `json:"scheme_id"`

	Objectives string `json:"objectives"`
	Activities string `json:"activities"`
	Date       string `json:"date"`

	TeacherEmail string `json:"teacher_email"`
	TeacherName  string `json:"teacher_name"`
}

// Result reports the applied outcome and the persisted record.
type Result struct {
	Outcome Outcome
	Plan    *models.LessonPlan
}

// DuplicateError rejects a submission that clashes with an existing
// non-placeholder record on (class, subject, session, chapter).
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string { return e.Message }

// IsDuplicate reports whether err is a duplicate rejection.
func IsDuplicate(err error) bool {
	var d *DuplicateError
	return errors.As(err, &d)
}

// Resolver applies submissions against the lesson-plan table.
type Resolver struct {
	db *gorm.DB
}

// NewResolver creates a resolver bound to a database handle.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve decides and applies exactly one of: update-by-id, fill-placeholder,
// reject-as-duplicate, create-new. The whole decision runs in one transaction,
// and the partial unique index on the business key backs the scan, so two
// racing submissions cannot both create the same plan.
func (r *Resolver) Resolve(sub Submission) (*Result, error) {
	class := strings.TrimSpace(sub.Class)
	subject := strings.TrimSpace(sub.Subject)
	session := int(sub.Session)

	var result *Result
	err := r.db.Transaction(func(tx *gorm.DB) error {
		chapter, _ := ResolveChapter(tx, sub.SchemeID)

		// Explicit id: unconditional update, no duplicate check.
		if sub.ID != "" {
			var plan models.LessonPlan
			err := tx.First(&plan, "id = ?", sub.ID).Error
			switch {
			case err == nil:
				applyContentUpdate(&plan, sub, class, subject, session, chapter)
				if err := tx.Save(&plan).Error; err != nil {
					return translateDuplicate(err, plan.Class, plan.Subject, plan.Session, plan.Chapter)
				}
				result = &Result{Outcome: OutcomeUpdatedByID, Plan: &plan}
				return nil
			case errors.Is(err, gorm.ErrRecordNotFound):
				// Unknown id behaves as if no id were given.
			default:
				return err
			}
		}

		// The id path tolerates a missing class or subject: omitted fields
		// on an update stay unchanged. Every other path needs the business
		// key to match or create against.
		if class == "" || subject == "" {
			return fmt.Errorf("class and subject are required")
		}

		// Placeholder match: a row created ahead of content is filled in
		// place. Not a duplicate by definition, so no rejection here; the
		// unique index still catches the rare case where a filled
		// placeholder would collide with an already-submitted plan.
		var placeholder models.LessonPlan
		err := tx.Where("class = ? AND subject = ? AND session = ? AND status = ?",
			class, subject, session, models.StatusPendingPreparation).
			First(&placeholder).Error
		switch {
		case err == nil:
			fillPlaceholder(&placeholder, sub, chapter)
			if err := tx.Save(&placeholder).Error; err != nil {
				return translateDuplicate(err, class, subject, session, placeholder.Chapter)
			}
			result = &Result{Outcome: OutcomeFilledPlaceholder, Plan: &placeholder}
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		// Duplicate scan over non-placeholders. Empty chapter matches empty
		// chapter; an empty and a non-empty chapter never match.
		var existing models.LessonPlan
		err = tx.Where("class = ? AND subject = ? AND session = ? AND chapter = ? AND status <> ?",
			class, subject, session, chapter, models.StatusPendingPreparation).
			First(&existing).Error
		switch {
		case err == nil:
			return &DuplicateError{Message: duplicateMessage(class, subject, session, chapter)}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		plan := models.LessonPlan{
			TeacherEmail: sub.TeacherEmail,
			TeacherName:  sub.TeacherName,
			Class:        class,
			Subject:      subject,
			Chapter:      chapter,
			Session:      session,
			Objectives:   sub.Objectives,
			Activities:   sub.Activities,
			Status:       models.StatusPendingReview,
			Date:         sub.Date,
			CreatedAt:    time.Now().UTC(),
		}
		if err := tx.Create(&plan).Error; err != nil {
			return translateDuplicate(err, class, subject, session, chapter)
		}
		result = &Result{Outcome: OutcomeCreated, Plan: &plan}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyContentUpdate overwrites the record with the submitted content.
// Empty incoming values never erase existing class/subject/chapter, and
// session is only written when the incoming value is positive.
func applyContentUpdate(plan *models.LessonPlan, sub Submission, class, subject string, session int, chapter string) {
	if class != "" {
		plan.Class = class
	}
	if subject != "" {
		plan.Subject = subject
	}
	if chapter != "" {
		plan.Chapter = chapter
	}
	if session > 0 {
		plan.Session = session
	}
	if sub.Objectives != "" {
		plan.Objectives = sub.Objectives
	}
	if sub.Activities != "" {
		plan.Activities = sub.Activities
	}
	if sub.Date != "" {
		plan.Date = sub.Date
	}
	if sub.TeacherEmail != "" {
		plan.TeacherEmail = sub.TeacherEmail
	}
	if sub.TeacherName != "" {
		plan.TeacherName = sub.TeacherName
	}
	plan.Status = models.StatusPendingReview
}

// fillPlaceholder moves a Pending Preparation row to Pending Review with the
// submitted content.
func fillPlaceholder(plan *models.LessonPlan, sub Submission, chapter string) {
	if chapter != "" {
		plan.Chapter = chapter
	}
	plan.Objectives = sub.Objectives
	plan.Activities = sub.Activities
	if sub.Date != "" {
		plan.Date = sub.Date
	}
	if sub.TeacherEmail != "" {
		plan.TeacherEmail = sub.TeacherEmail
	}
	if sub.TeacherName != "" {
		plan.TeacherName = sub.TeacherName
	}
	plan.Status = models.StatusPendingReview
}

// ResolveChapter looks the chapter up from a scheme of work. It never fails:
// an empty scheme id, an unknown scheme, or a lookup error all resolve to an
// empty chapter and the submission continues without one.
func ResolveChapter(tx *gorm.DB, schemeID string) (string, bool) {
	if schemeID == "" {
		return "", false
	}
	var scheme models.SchemeOfWork
	if err := tx.First(&scheme, "id = ?", schemeID).Error; err != nil {
		return "", false
	}
	return scheme.Chapter, true
}

// translateDuplicate maps a unique-index violation on the business key to
// the same rejection the scan produces, so racing submissions get the
// duplicate error instead of a bare constraint failure.
func translateDuplicate(err error, class, subject string, session int, chapter string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateError{Message: duplicateMessage(class, subject, session, chapter)}
	}
	return err
}

func duplicateMessage(class, subject string, session int, chapter string) string {
	if chapter == "" {
		return fmt.Sprintf("A lesson plan already exists for class %s, subject %s, session %d (no chapter)",
			class, subject, session)
	}
	return fmt.Sprintf("A lesson plan already exists for class %s, subject %s, session %d, chapter %q",
		class, subject, session, chapter)
}
