package handlers

import (
	"net/http"

	"github.com/classhub/backend/internal/database"
	apierrors "github.com/classhub/backend/internal/errors"
	"github.com/classhub/backend/internal/lessonplan"
	"github.com/classhub/backend/internal/logger"
	"github.com/classhub/backend/internal/middleware"
	"github.com/classhub/backend/internal/models"
	"github.com/classhub/backend/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmitLessonPlan runs a submission through the resolver: update by id,
// fill a placeholder, reject as duplicate, or create.
// POST /api/v1/lesson-plans
func (h *Handlers) SubmitLessonPlan(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var sub lessonplan.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	// Submissions are always attributed to the authenticated teacher.
	sub.TeacherEmail = user.Email
	if sub.TeacherName == "" {
		sub.TeacherName = user.Name
	}

	result, err := h.resolver.Resolve(sub)
	if err != nil {
		if lessonplan.IsDuplicate(err) {
			util.RespondWithAPIError(c, apierrors.Duplicate(err.Error()))
			return
		}
		logger.ErrorWithFields("Lesson plan submission failed", err,
			zap.String("teacher", user.Email))
		util.RespondBadRequest(c, err.Error())
		return
	}

	middleware.RecordLessonPlanOutcome(string(result.Outcome))

	c.JSON(http.StatusOK, gin.H{
		"submitted": true,
		"outcome":   result.Outcome,
		"plan":      result.Plan,
	})
}

// ValidateLessonPlan is the advisory pre-flight duplicate check. It runs
// against the teacher's current plans on the server rather than a browser
// snapshot, but stays advisory: the submission itself is the real guard.
// POST /api/v1/lesson-plans/validate
func (h *Handlers) ValidateLessonPlan(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var candidate lessonplan.Candidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	var existing []models.LessonPlan
	if err := database.DB.Where("teacher_email = ?", user.Email).Find(&existing).Error; err != nil {
		util.RespondInternalError(c, "Failed to load lesson plans")
		return
	}

	c.JSON(http.StatusOK, lessonplan.CheckDuplicate(candidate, existing))
}

// GetMyLessonPlans lists the authenticated teacher's plans.
// GET /api/v1/lesson-plans
func (h *Handlers) GetMyLessonPlans(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var plans []models.LessonPlan
	query := database.DB.Where("teacher_email = ?", user.Email)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at DESC").Find(&plans).Error; err != nil {
		util.RespondInternalError(c, "Failed to load lesson plans")
		return
	}

	c.JSON(http.StatusOK, gin.H{"lesson_plans": plans, "count": len(plans)})
}

// GetAllLessonPlans lists every plan, for reviewers.
// GET /api/v1/lesson-plans/all
func (h *Handlers) GetAllLessonPlans(c *gin.Context) {
	var plans []models.LessonPlan
	query := database.DB
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if class := c.Query("class"); class != "" {
		query = query.Where("class = ?", class)
	}
	if err := query.Order("created_at DESC").Find(&plans).Error; err != nil {
		util.RespondInternalError(c, "Failed to load lesson plans")
		return
	}

	c.JSON(http.StatusOK, gin.H{"lesson_plans": plans, "count": len(plans)})
}

// GetLessonPlan fetches one plan.
// GET /api/v1/lesson-plans/:id
func (h *Handlers) GetLessonPlan(c *gin.Context) {
	var plan models.LessonPlan
	if err := database.DB.First(&plan, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "lesson plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ReviewLessonPlan approves a plan or sends it back with remarks.
// POST /api/v1/lesson-plans/:id/review
func (h *Handlers) ReviewLessonPlan(c *gin.Context) {
	var req struct {
		Approved bool   `json:"approved"`
		Remarks  string `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	var plan models.LessonPlan
	if err := database.DB.First(&plan, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "lesson plan")
		return
	}

	if plan.IsPlaceholder() {
		util.RespondValidationError(c, "status", "A placeholder has no content to review")
		return
	}

	if req.Approved {
		plan.Status = models.StatusReady
	} else {
		plan.Status = models.StatusPendingReview
	}
	plan.ReviewerRemarks = req.Remarks

	if err := database.DB.Save(&plan).Error; err != nil {
		util.RespondInternalError(c, "Failed to save review")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// CreatePlaceholders bulk-creates Pending Preparation rows for a class,
// subject and session range, so teachers can fill them in later.
// POST /api/v1/lesson-plans/placeholders
func (h *Handlers) CreatePlaceholders(c *gin.Context) {
	var req struct {
		Class       string `json:"class" binding:"required"`
		Subject     string `json:"subject" binding:"required"`
		FromSession int    `json:"from_session" binding:"required,min=0"`
		ToSession   int    `json:"to_session" binding:"required,min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if req.ToSession < req.FromSession {
		util.RespondValidationError(c, "to_session", "to_session must not be before from_session")
		return
	}

	created := make([]models.LessonPlan, 0, req.ToSession-req.FromSession+1)
	for session := req.FromSession; session <= req.ToSession; session++ {
		// Skip sessions that already have a row, placeholder or not.
		var count int64
		database.DB.Model(&models.LessonPlan{}).
			Where("class = ? AND subject = ? AND session = ?", req.Class, req.Subject, session).
			Count(&count)
		if count > 0 {
			continue
		}

		plan := models.LessonPlan{
			Class:   req.Class,
			Subject: req.Subject,
			Session: session,
			Status:  models.StatusPendingPreparation,
		}
		if err := database.DB.Create(&plan).Error; err != nil {
			util.RespondInternalError(c, "Failed to create placeholders")
			return
		}
		created = append(created, plan)
	}

	c.JSON(http.StatusCreated, gin.H{"created": created, "count": len(created)})
}
