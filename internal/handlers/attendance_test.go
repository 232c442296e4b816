package handlers

import (
	"net/http"
	"strings"

	"github.com/classhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *HandlersTestSuite) TestMarkAttendanceBulk() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/attendance", map[string]any{
		"class": "7A",
		"date":  "2026-09-14",
		"entries": []map[string]any{
			{"student_id": "S001", "student_name": "Kofi", "status": "Present"},
			{"student_id": "S002", "student_name": "Ama", "status": "Absent"},
		},
	}, suite.teacher)

	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	var records []models.AttendanceRecord
	require.NoError(t, suite.db.Where("class = ? AND date = ?", "7A", "2026-09-14").Find(&records).Error)
	assert.Len(t, records, 2)
	assert.Equal(t, suite.teacher.Name, records[0].MarkedBy)
}

func (suite *HandlersTestSuite) TestMarkAttendanceRemarkOverwrites() {
	t := suite.T()

	mark := func(status string) *models.AttendanceRecord {
		w := suite.request("POST", "/api/v1/attendance", map[string]any{
			"class": "7A",
			"date":  "2026-09-14",
			"entries": []map[string]any{
				{"student_id": "S001", "status": status},
			},
		}, suite.teacher)
		require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

		var record models.AttendanceRecord
		require.NoError(t, suite.db.First(&record, "student_id = ?", "S001").Error)
		return &record
	}

	first := mark(models.AttendanceAbsent)
	second := mark(models.AttendanceLate)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.AttendanceLate, second.Status)

	var count int64
	suite.db.Model(&models.AttendanceRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func (suite *HandlersTestSuite) TestMarkAttendanceRejectsUnknownStatus() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/attendance", map[string]any{
		"class": "7A",
		"date":  "2026-09-14",
		"entries": []map[string]any{
			{"student_id": "S001", "status": "Sleeping"},
		},
	}, suite.teacher)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlersTestSuite) TestGetAttendanceRequiresFilter() {
	t := suite.T()

	w := suite.request("GET", "/api/v1/attendance", nil, suite.teacher)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestExportAttendanceCSV() {
	t := suite.T()

	record := models.AttendanceRecord{
		Class: "7A", Date: "2026-09-14", StudentID: "S001",
		StudentName: "Kofi", Status: models.AttendancePresent, MarkedBy: "Amina",
	}
	require.NoError(t, suite.db.Create(&record).Error)

	w := suite.request("GET", "/api/v1/attendance/export?class=7A", nil, suite.teacher)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "S001")
	assert.Contains(t, lines[1], "Present")
}
