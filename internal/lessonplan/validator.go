package lessonplan

import (
	"strings"

	"github.com/classhub/backend/internal/models"
)

// Candidate is the view of a submission the pre-flight check operates on.
// Unlike Submission it carries the chapter directly: callers validate
// against a snapshot of plans they already hold, without a scheme lookup.
type Candidate struct {
	ID      string  `json:"id"`
	Class   string  `json:"class"`
	Subject string  `json:"subject"`
	Session FlexInt `json:"session"`
	Chapter string  `json:"chapter"`
}

// CheckResult is the outcome of a pre-flight duplicate check.
type CheckResult struct {
	IsDuplicate bool   `json:"is_duplicate"`
	Message     string `json:"message,omitempty"`
}

// CheckDuplicate is the advisory mirror of the resolver's duplicate rule.
// It is a pure function over the caller's snapshot of existing plans, so it
// can be stale relative to the server's authoritative check; the resolver
// remains the actual guard.
//
// A candidate carrying an id is never flagged: id-based updates are exempt
// from duplicate checking. Placeholder rows in the snapshot are ignored.
func CheckDuplicate(candidate Candidate, existing []models.LessonPlan) CheckResult {
	if candidate.ID != "" {
		return CheckResult{}
	}

	class := strings.TrimSpace(candidate.Class)
	subject := strings.TrimSpace(candidate.Subject)
	session := int(candidate.Session)
	chapter := candidate.Chapter

	for _, plan := range existing {
		if plan.IsPlaceholder() {
			continue
		}
		if plan.Class != class || plan.Subject != subject || plan.Session != session {
			continue
		}
		// Two empty chapters are equal; empty never matches non-empty.
		if plan.Chapter != chapter {
			continue
		}
		return CheckResult{
			IsDuplicate: true,
			Message:     duplicateMessage(class, subject, session, chapter),
		}
	}
	return CheckResult{}
}
