package handlers

import (
	"net/http"
	"time"

	"github.com/classhub/backend/internal/database"
	"github.com/classhub/backend/internal/models"
	"github.com/classhub/backend/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDashboard returns summary counts for the landing page: the caller's plan
// totals by status, today's open substitutions, and upcoming calendar events.
// GET /api/v1/dashboard
func (h *Handlers) GetDashboard(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	today := time.Now().UTC().Format("2006-01-02")

	countQueries := []struct {
		name  string
		query *gorm.DB
	}{
		{"my_plans", database.DB.Model(&models.LessonPlan{}).
			Where("teacher_email = ?", user.Email)},
		{"pending_review", database.DB.Model(&models.LessonPlan{}).
			Where("status = ?", models.StatusPendingReview)},
		{"placeholders", database.DB.Model(&models.LessonPlan{}).
			Where("status = ?", models.StatusPendingPreparation)},
		{"open_substitutions", database.DB.Model(&models.Substitution{}).
			Where("date = ? AND status = ?", today, models.SubstitutionOpen)},
		{"reports_today", database.DB.Model(&models.DailyReport{}).
			Where("date = ?", today)},
	}

	summary := gin.H{"date": today}
	for _, q := range countQueries {
		var count int64
		if err := q.query.Count(&count).Error; err != nil {
			util.RespondInternalError(c, "Failed to load dashboard")
			return
		}
		summary[q.name] = count
	}

	var upcomingEvents []models.CalendarEvent
	if err := database.DB.
		Where("start_date >= ?", today).
		Order("start_date").Limit(5).Find(&upcomingEvents).Error; err != nil {
		util.RespondInternalError(c, "Failed to load dashboard")
		return
	}
	summary["upcoming_events"] = upcomingEvents

	c.JSON(http.StatusOK, summary)
}
