package handlers

import (
	"fmt"
	"net/http"

	"github.com/classhub/backend/internal/database"
	"github.com/classhub/backend/internal/export"
	"github.com/classhub/backend/internal/models"
	"github.com/classhub/backend/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// MarkAttendance bulk-upserts attendance for a class on a date. Re-marking a
// student overwrites the previous status.
// POST /api/v1/attendance
func (h *Handlers) MarkAttendance(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Class   string `json:"class" binding:"required"`
		Date    string `json:"date" binding:"required"`
		Entries []struct {
			StudentID   string `json:"student_id" binding:"required"`
			StudentName string `json:"student_name"`
			Status      string `json:"status" binding:"required"`
		} `json:"entries" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	for _, entry := range req.Entries {
		if !models.ValidAttendanceStatus(entry.Status) {
			util.RespondValidationError(c, "status",
				fmt.Sprintf("invalid status %q for %s", entry.Status, entry.StudentID))
			return
		}
	}

	records := make([]models.AttendanceRecord, 0, len(req.Entries))
	for _, entry := range req.Entries {
		records = append(records, models.AttendanceRecord{
			Class:       req.Class,
			Date:        req.Date,
			StudentID:   entry.StudentID,
			StudentName: entry.StudentName,
			Status:      entry.Status,
			MarkedBy:    user.Name,
		})
	}

	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "class"}, {Name: "date"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"student_name", "status", "marked_by", "updated_at"}),
	}).Create(&records).Error
	if err != nil {
		util.RespondInternalError(c, "Failed to save attendance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": len(records)})
}

// GetAttendance lists attendance records filtered by class and/or date.
// GET /api/v1/attendance
func (h *Handlers) GetAttendance(c *gin.Context) {
	class := c.Query("class")
	date := c.Query("date")
	if class == "" && date == "" {
		util.RespondBadRequest(c, "class or date filter is required")
		return
	}

	records, err := loadAttendance(class, date)
	if err != nil {
		util.RespondInternalError(c, "Failed to load attendance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

// ExportAttendance downloads attendance records as CSV.
// GET /api/v1/attendance/export
func (h *Handlers) ExportAttendance(c *gin.Context) {
	class := c.Query("class")
	date := c.Query("date")
	if class == "" && date == "" {
		util.RespondBadRequest(c, "class or date filter is required")
		return
	}

	records, err := loadAttendance(class, date)
	if err != nil {
		util.RespondInternalError(c, "Failed to load attendance")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="attendance.csv"`)
	c.Header("Content-Type", "text/csv")
	if err := export.WriteAttendanceCSV(c.Writer, records); err != nil {
		util.RespondInternalError(c, "Failed to write CSV")
	}
}

func loadAttendance(class, date string) ([]models.AttendanceRecord, error) {
	var records []models.AttendanceRecord
	query := database.DB
	if class != "" {
		query = query.Where("class = ?", class)
	}
	if date != "" {
		query = query.Where("date = ?", date)
	}
	err := query.Order("date DESC, class, student_id").Find(&records).Error
	return records, err
}
