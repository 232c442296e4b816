package handlers

import (
	"net/http"

	"github.com/classhub/backend/internal/database"
	"github.com/classhub/backend/internal/export"
	"github.com/classhub/backend/internal/models"
	"github.com/classhub/backend/internal/util"
	"github.com/gin-gonic/gin"
)

// CreateCalendarEvent adds an entry to the school calendar.
// POST /api/v1/calendar
func (h *Handlers) CreateCalendarEvent(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Category    string `json:"category" binding:"required"`
		StartDate   string `json:"start_date" binding:"required"`
		EndDate     string `json:"end_date"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if !models.ValidEventCategory(req.Category) {
		util.RespondValidationError(c, "category", "invalid event category")
		return
	}
	if req.EndDate == "" {
		req.EndDate = req.StartDate
	}

	event := models.CalendarEvent{
		Title:       req.Title,
		Category:    req.Category,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}
	if err := database.DB.Create(&event).Error; err != nil {
		util.RespondInternalError(c, "Failed to create event")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast("calendar.created", event)
	}

	c.JSON(http.StatusCreated, event)
}

// GetCalendarEvents lists events, optionally filtered by category or a
// from/to date window on the start date.
// GET /api/v1/calendar
func (h *Handlers) GetCalendarEvents(c *gin.Context) {
	events, err := loadCalendarEvents(c)
	if err != nil {
		util.RespondInternalError(c, "Failed to load events")
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
}

// DeleteCalendarEvent removes a calendar entry.
// DELETE /api/v1/calendar/:id
func (h *Handlers) DeleteCalendarEvent(c *gin.Context) {
	var event models.CalendarEvent
	if err := database.DB.First(&event, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "event")
		return
	}
	if err := database.DB.Delete(&event).Error; err != nil {
		util.RespondInternalError(c, "Failed to delete event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ExportCalendar downloads the calendar as an iCalendar file.
// GET /api/v1/calendar/export
func (h *Handlers) ExportCalendar(c *gin.Context) {
	events, err := loadCalendarEvents(c)
	if err != nil {
		util.RespondInternalError(c, "Failed to load events")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="calendar.ics"`)
	c.Header("Content-Type", "text/calendar")
	if err := export.WriteCalendarICS(c.Writer, events); err != nil {
		util.RespondInternalError(c, "Failed to write calendar")
	}
}

func loadCalendarEvents(c *gin.Context) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	query := database.DB
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("start_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("start_date <= ?", to)
	}
	err := query.Order("start_date").Find(&events).Error
	return events, err
}
