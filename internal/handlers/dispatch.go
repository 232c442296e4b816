package handlers

import (
	"net/http"

	"github.com/classhub/backend/internal/lessonplan"
	"github.com/classhub/backend/internal/middleware"
	"github.com/classhub/backend/internal/util"
	"github.com/gin-gonic/gin"
)

// Dispatch is the compatibility façade for clients that still call a single
// endpoint with an action parameter. Each action maps onto the same handler
// as the REST route; only the lesson-plan submission keeps its legacy
// response shape.
// GET|POST /api/exec?action=...
func (h *Handlers) Dispatch(c *gin.Context) {
	action := c.Query("action")
	if action == "" {
		action = c.PostForm("action")
	}

	handler, ok := h.dispatchTable()[action]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action: " + action})
		return
	}
	handler(c)
}

func (h *Handlers) dispatchTable() map[string]gin.HandlerFunc {
	return map[string]gin.HandlerFunc{
		"submitLessonPlanDetails": h.legacySubmitLessonPlan,
		"checkDuplicatePlan":      h.ValidateLessonPlan,
		"getTeacherLessonPlans":   h.GetMyLessonPlans,
		"getAllLessonPlans":       h.GetAllLessonPlans,
		"getSchemes":              h.GetSchemes,
		"submitDailyReport":       h.CreateDailyReport,
		"getDailyReports":         h.GetDailyReports,
		"getExams":                h.GetExams,
		"enterMarks":              h.EnterMarks,
		"getSubstitutions":        h.GetSubstitutions,
		"assignSubstitution":      h.AssignSubstitution,
		"markAttendance":          h.MarkAttendance,
		"getAttendance":           h.GetAttendance,
		"getCalendarEvents":       h.GetCalendarEvents,
		"getDashboard":            h.GetDashboard,
	}
}

// legacySubmitLessonPlan mirrors the original form backend: 200 with
// {submitted:true} on any accepted outcome, 200 with {error:...} on a
// duplicate. New clients should use the REST route, which returns 409.
func (h *Handlers) legacySubmitLessonPlan(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var sub lessonplan.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	sub.TeacherEmail = user.Email
	if sub.TeacherName == "" {
		sub.TeacherName = user.Name
	}

	result, err := h.resolver.Resolve(sub)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}

	middleware.RecordLessonPlanOutcome(string(result.Outcome))

	c.JSON(http.StatusOK, gin.H{"submitted": true, "id": result.Plan.ID})
}
