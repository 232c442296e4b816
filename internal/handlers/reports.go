package handlers

import (
	"net/http"

	"github.com/classhub/backend/internal/database"
	"github.com/classhub/backend/internal/models"
	"github.com/classhub/backend/internal/util"
	"github.com/gin-gonic/gin"
)

// CreateDailyReport records what was actually taught in a lesson.
// POST /api/v1/reports
func (h *Handlers) CreateDailyReport(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Class             string `json:"class" binding:"required"`
		Subject           string `json:"subject" binding:"required"`
		Date              string `json:"date" binding:"required"`
		TopicCovered      string `json:"topic_covered" binding:"required"`
		Remarks           string `json:"remarks"`
		AttendanceSummary string `json:"attendance_summary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	report := models.DailyReport{
		TeacherEmail:      user.Email,
		TeacherName:       user.Name,
		Class:             req.Class,
		Subject:           req.Subject,
		Date:              req.Date,
		TopicCovered:      req.TopicCovered,
		Remarks:           req.Remarks,
		AttendanceSummary: req.AttendanceSummary,
	}
	if err := database.DB.Create(&report).Error; err != nil {
		util.RespondInternalError(c, "Failed to save report")
		return
	}

	c.JSON(http.StatusCreated, report)
}

// GetDailyReports lists reports. Teachers see their own; reviewers and
// admins see everyone's.
// GET /api/v1/reports
func (h *Handlers) GetDailyReports(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	query := database.DB
	if !user.CanReview() {
		query = query.Where("teacher_email = ?", user.Email)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if class := c.Query("class"); class != "" {
		query = query.Where("class = ?", class)
	}

	var reports []models.DailyReport
	if err := query.Order("date DESC, created_at DESC").Find(&reports).Error; err != nil {
		util.RespondInternalError(c, "Failed to load reports")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
}
