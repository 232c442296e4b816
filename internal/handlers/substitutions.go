package handlers

import (
	"net/http"
	"time"

	"github.com/classhub/backend/internal/database"
	"github.com/classhub/backend/internal/models"
	"github.com/classhub/backend/internal/util"
	"github.com/gin-gonic/gin"
)

// CreateSubstitution opens a substitution slot for an absent teacher's period.
// POST /api/v1/substitutions
func (h *Handlers) CreateSubstitution(c *gin.Context) {
	var req struct {
		Date          string `json:"date" binding:"required"`
		Period        int    `json:"period" binding:"required,min=1"`
		Class         string `json:"class" binding:"required"`
		Subject       string `json:"subject"`
		AbsentTeacher string `json:"absent_teacher" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	sub := models.Substitution{
		Date:          req.Date,
		Period:        req.Period,
		Class:         req.Class,
		Subject:       req.Subject,
		AbsentTeacher: req.AbsentTeacher,
		Status:        models.SubstitutionOpen,
	}
	if err := database.DB.Create(&sub).Error; err != nil {
		util.RespondInternalError(c, "Failed to create substitution")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast("substitution.opened", sub)
	}

	c.JSON(http.StatusCreated, sub)
}

// AssignSubstitution assigns a substitute teacher to an open slot. Assigning
// an already-assigned slot reassigns it to the new teacher.
// POST /api/v1/substitutions/:id/assign
func (h *Handlers) AssignSubstitution(c *gin.Context) {
	var req struct {
		SubstituteTeacher string `json:"substitute_teacher" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	id := c.Param("id")
	if id == "" {
		id = c.Query("id")
	}
	var sub models.Substitution
	if err := database.DB.First(&sub, "id = ?", id).Error; err != nil {
		util.RespondNotFound(c, "substitution")
		return
	}

	now := time.Now().UTC()
	sub.SubstituteTeacher = req.SubstituteTeacher
	sub.Status = models.SubstitutionAssigned
	sub.AssignedAt = &now
	if err := database.DB.Save(&sub).Error; err != nil {
		util.RespondInternalError(c, "Failed to assign substitution")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast("substitution.assigned", sub)
	}

	c.JSON(http.StatusOK, sub)
}

// GetSubstitutions lists substitutions, optionally filtered by date and status.
// GET /api/v1/substitutions
func (h *Handlers) GetSubstitutions(c *gin.Context) {
	var subs []models.Substitution
	query := database.DB
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("date DESC, period").Find(&subs).Error; err != nil {
		util.RespondInternalError(c, "Failed to load substitutions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"substitutions": subs, "count": len(subs)})
}

// GetMySubstitutions lists slots assigned to the authenticated teacher.
// GET /api/v1/substitutions/mine
func (h *Handlers) GetMySubstitutions(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var subs []models.Substitution
	if err := database.DB.
		Where("substitute_teacher = ?", user.Name).
		Order("date DESC, period").
		Find(&subs).Error; err != nil {
		util.RespondInternalError(c, "Failed to load substitutions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"substitutions": subs, "count": len(subs)})
}
