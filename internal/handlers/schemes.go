package handlers

import (
	"net/http"

	"github.com/classhub/backend/internal/database"
	"github.com/classhub/backend/internal/models"
	"github.com/classhub/backend/internal/util"
	"github.com/gin-gonic/gin"
)

// CreateScheme adds a scheme-of-work entry.
// POST /api/v1/schemes
func (h *Handlers) CreateScheme(c *gin.Context) {
	var req struct {
		Class      string `json:"class" binding:"required"`
		Subject    string `json:"subject" binding:"required"`
		Chapter    string `json:"chapter" binding:"required"`
		Term       string `json:"term"`
		WeekNumber int    `json:"week_number"`
		Objectives string `json:"objectives"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	scheme := models.SchemeOfWork{
		Class:      req.Class,
		Subject:    req.Subject,
		Chapter:    req.Chapter,
		Term:       req.Term,
		WeekNumber: req.WeekNumber,
		Objectives: req.Objectives,
	}
	if err := database.DB.Create(&scheme).Error; err != nil {
		util.RespondInternalError(c, "Failed to create scheme")
		return
	}

	c.JSON(http.StatusCreated, scheme)
}

// GetSchemes lists schemes, optionally filtered by class and subject.
// GET /api/v1/schemes
func (h *Handlers) GetSchemes(c *gin.Context) {
	var schemes []models.SchemeOfWork
	query := database.DB
	if class := c.Query("class"); class != "" {
		query = query.Where("class = ?", class)
	}
	if subject := c.Query("subject"); subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if err := query.Order("class, subject, week_number").Find(&schemes).Error; err != nil {
		util.RespondInternalError(c, "Failed to load schemes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"schemes": schemes, "count": len(schemes)})
}

// GetScheme fetches one scheme.
// GET /api/v1/schemes/:id
func (h *Handlers) GetScheme(c *gin.Context) {
	var scheme models.SchemeOfWork
	if err := database.DB.First(&scheme, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "scheme")
		return
	}
	c.JSON(http.StatusOK, scheme)
}
