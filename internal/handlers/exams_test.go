package handlers

import (
	"net/http"
	"strings"

	"github.com/classhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *HandlersTestSuite) createExam(maxMarks float64) *models.Exam {
	exam := models.Exam{
		Name: "Midterm", Class: "7A", Subject: "Math",
		Term: "Term 1", MaxMarks: maxMarks, Date: "2026-10-05",
	}
	require.NoError(suite.T(), suite.db.Create(&exam).Error)
	return &exam
}

func (suite *HandlersTestSuite) TestCreateExamAdminOnly() {
	t := suite.T()

	body := map[string]any{"name": "Midterm", "class": "7A", "subject": "Math"}

	w := suite.request("POST", "/api/v1/exams", body, suite.teacher)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = suite.request("POST", "/api/v1/exams", body, suite.admin)
	assert.Equal(t, http.StatusCreated, w.Code, "Response body: %s", w.Body.String())

	resp := decodeBody(t, w)
	// Unspecified max marks defaults to 100.
	assert.Equal(t, float64(100), resp["max_marks"])
}

func (suite *HandlersTestSuite) TestEnterMarksUpsertsOnReentry() {
	t := suite.T()
	exam := suite.createExam(100)

	w := suite.request("POST", "/api/v1/exams/"+exam.ID+"/marks", map[string]any{
		"marks": []map[string]any{
			{"student_id": "S001", "student_name": "Kofi", "score": 62},
			{"student_id": "S002", "student_name": "Ama", "score": 81},
		},
	}, suite.teacher)
	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	// Re-entering S001 overwrites, last write wins.
	w = suite.request("POST", "/api/v1/exams/"+exam.ID+"/marks", map[string]any{
		"marks": []map[string]any{
			{"student_id": "S001", "student_name": "Kofi", "score": 70},
		},
	}, suite.teacher)
	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	var marks []models.Mark
	require.NoError(t, suite.db.Where("exam_id = ?", exam.ID).Order("student_id").Find(&marks).Error)
	require.Len(t, marks, 2)
	assert.Equal(t, float64(70), marks[0].Score)
}

func (suite *HandlersTestSuite) TestEnterMarksRejectsOutOfRangeScore() {
	t := suite.T()
	exam := suite.createExam(50)

	w := suite.request("POST", "/api/v1/exams/"+exam.ID+"/marks", map[string]any{
		"marks": []map[string]any{
			{"student_id": "S001", "score": 62},
		},
	}, suite.teacher)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var count int64
	suite.db.Model(&models.Mark{}).Where("exam_id = ?", exam.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func (suite *HandlersTestSuite) TestExamStats() {
	t := suite.T()
	exam := suite.createExam(100)

	for i, score := range []float64{40, 50, 60, 70, 80} {
		mark := models.Mark{ExamID: exam.ID, StudentID: "S00" + string(rune('1'+i)), Score: score}
		require.NoError(t, suite.db.Create(&mark).Error)
	}

	w := suite.request("GET", "/api/v1/exams/"+exam.ID+"/stats", nil, suite.teacher)
	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	body := decodeBody(t, w)
	stats, ok := body["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), stats["count"])
	assert.Equal(t, float64(60), stats["mean"])
	assert.Equal(t, float64(60), stats["median"])
	// Pass mark defaults to half of max: 50/60/70/80 pass.
	assert.Equal(t, 0.8, stats["pass_rate"])
}

func (suite *HandlersTestSuite) TestExportMarksCSV() {
	t := suite.T()
	exam := suite.createExam(100)

	mark := models.Mark{ExamID: exam.ID, StudentID: "S001", StudentName: "Kofi", Score: 62.5}
	require.NoError(t, suite.db.Create(&mark).Error)

	w := suite.request("GET", "/api/v1/exams/"+exam.ID+"/marks/export", nil, suite.teacher)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "S001")
	assert.Contains(t, lines[1], "62.5")
}

func (suite *HandlersTestSuite) TestGetMarksUnknownExam() {
	t := suite.T()

	w := suite.request("GET", "/api/v1/exams/nope/marks", nil, suite.teacher)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
