package handlers

import (
	"fmt"
	"net/http"

	"github.com/classhub/backend/internal/database"
	"github.com/classhub/backend/internal/export"
	"github.com/classhub/backend/internal/models"
	"github.com/classhub/backend/internal/stats"
	"github.com/classhub/backend/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// CreateExam schedules an exam.
// POST /api/v1/exams
func (h *Handlers) CreateExam(c *gin.Context) {
	var req struct {
		Name     string  `json:"name" binding:"required"`
		Class    string  `json:"class" binding:"required"`
		Subject  string  `json:"subject" binding:"required"`
		Term     string  `json:"term"`
		MaxMarks float64 `json:"max_marks"`
		Date     string  `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if req.MaxMarks <= 0 {
		req.MaxMarks = 100
	}

	exam := models.Exam{
		Name:     req.Name,
		Class:    req.Class,
		Subject:  req.Subject,
		Term:     req.Term,
		MaxMarks: req.MaxMarks,
		Date:     req.Date,
	}
	if err := database.DB.Create(&exam).Error; err != nil {
		util.RespondInternalError(c, "Failed to create exam")
		return
	}

	c.JSON(http.StatusCreated, exam)
}

// GetExams lists exams, optionally filtered by class and term.
// GET /api/v1/exams
func (h *Handlers) GetExams(c *gin.Context) {
	var exams []models.Exam
	query := database.DB
	if class := c.Query("class"); class != "" {
		query = query.Where("class = ?", class)
	}
	if term := c.Query("term"); term != "" {
		query = query.Where("term = ?", term)
	}
	if err := query.Order("date DESC").Find(&exams).Error; err != nil {
		util.RespondInternalError(c, "Failed to load exams")
		return
	}

	c.JSON(http.StatusOK, gin.H{"exams": exams, "count": len(exams)})
}

// markEntry is one row of a bulk marks submission.
type markEntry struct {
	StudentID   string  `json:"student_id" binding:"required"`
	StudentName string  `json:"student_name"`
	Score       float64 `json:"score"`
}

// EnterMarks bulk-upserts marks for an exam. Re-entering a student's mark
// overwrites the previous score, last write wins.
// POST /api/v1/exams/:id/marks
func (h *Handlers) EnterMarks(c *gin.Context) {
	exam, ok := h.loadExam(c)
	if !ok {
		return
	}

	var req struct {
		Marks []markEntry `json:"marks" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	for _, entry := range req.Marks {
		if entry.Score < 0 || entry.Score > exam.MaxMarks {
			util.RespondValidationError(c, "score",
				fmt.Sprintf("score for %s must be between 0 and %g", entry.StudentID, exam.MaxMarks))
			return
		}
	}

	marks := make([]models.Mark, 0, len(req.Marks))
	for _, entry := range req.Marks {
		marks = append(marks, models.Mark{
			ExamID:      exam.ID,
			StudentID:   entry.StudentID,
			StudentName: entry.StudentName,
			Score:       entry.Score,
		})
	}

	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "exam_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"student_name", "score", "updated_at"}),
	}).Create(&marks).Error
	if err != nil {
		util.RespondInternalError(c, "Failed to save marks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": len(marks)})
}

// GetMarks lists the marks entered for an exam.
// GET /api/v1/exams/:id/marks
func (h *Handlers) GetMarks(c *gin.Context) {
	exam, ok := h.loadExam(c)
	if !ok {
		return
	}

	var marks []models.Mark
	if err := database.DB.Where("exam_id = ?", exam.ID).Order("student_id").Find(&marks).Error; err != nil {
		util.RespondInternalError(c, "Failed to load marks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"exam": exam, "marks": marks, "count": len(marks)})
}

// GetExamStats summarizes the score distribution of an exam. The pass mark
// defaults to half the maximum and can be overridden with ?pass_mark=.
// GET /api/v1/exams/:id/stats
func (h *Handlers) GetExamStats(c *gin.Context) {
	exam, ok := h.loadExam(c)
	if !ok {
		return
	}

	var marks []models.Mark
	if err := database.DB.Where("exam_id = ?", exam.ID).Find(&marks).Error; err != nil {
		util.RespondInternalError(c, "Failed to load marks")
		return
	}

	scores := make([]float64, 0, len(marks))
	for _, m := range marks {
		scores = append(scores, m.Score)
	}

	passMark := exam.MaxMarks / 2
	if raw := c.Query("pass_mark"); raw != "" {
		passMark = util.ParseFloat(raw, passMark)
	}

	c.JSON(http.StatusOK, gin.H{
		"exam":      exam,
		"pass_mark": passMark,
		"stats":     stats.Summarize(scores, passMark),
	})
}

// ExportMarks downloads an exam's marks as CSV.
// GET /api/v1/exams/:id/marks/export
func (h *Handlers) ExportMarks(c *gin.Context) {
	exam, ok := h.loadExam(c)
	if !ok {
		return
	}

	var marks []models.Mark
	if err := database.DB.Where("exam_id = ?", exam.ID).Order("student_id").Find(&marks).Error; err != nil {
		util.RespondInternalError(c, "Failed to load marks")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exam.Name+"-marks.csv"))
	c.Header("Content-Type", "text/csv")
	if err := export.WriteMarksCSV(c.Writer, exam, marks); err != nil {
		util.RespondInternalError(c, "Failed to write CSV")
	}
}

func (h *Handlers) loadExam(c *gin.Context) (*models.Exam, bool) {
	id := c.Param("id")
	if id == "" {
		id = c.Query("id")
	}
	var exam models.Exam
	if err := database.DB.First(&exam, "id = ?", id).Error; err != nil {
		util.RespondNotFound(c, "exam")
		return nil, false
	}
	return &exam, true
}
