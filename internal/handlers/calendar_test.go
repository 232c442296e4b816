package handlers

import (
	"net/http"

	"github.com/classhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *HandlersTestSuite) TestCreateCalendarEventDefaultsEndDate() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/calendar", map[string]any{
		"title":      "Founders Day",
		"category":   models.EventHoliday,
		"start_date": "2026-09-21",
	}, suite.admin)

	assert.Equal(t, http.StatusCreated, w.Code, "Response body: %s", w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "2026-09-21", body["end_date"])
}

func (suite *HandlersTestSuite) TestCreateCalendarEventRejectsBadCategory() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/calendar", map[string]any{
		"title":      "Party",
		"category":   "Rave",
		"start_date": "2026-09-21",
	}, suite.admin)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlersTestSuite) TestGetCalendarEventsWindow() {
	t := suite.T()

	inside := models.CalendarEvent{Title: "Midterm", Category: models.EventExam, StartDate: "2026-10-05", EndDate: "2026-10-05"}
	outside := models.CalendarEvent{Title: "Sports Day", Category: models.EventActivity, StartDate: "2026-12-01", EndDate: "2026-12-01"}
	require.NoError(t, suite.db.Create(&inside).Error)
	require.NoError(t, suite.db.Create(&outside).Error)

	w := suite.request("GET", "/api/v1/calendar?from=2026-10-01&to=2026-10-31", nil, suite.teacher)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
}

func (suite *HandlersTestSuite) TestExportCalendarICS() {
	t := suite.T()

	event := models.CalendarEvent{Title: "Midterm", Category: models.EventExam, StartDate: "2026-10-05", EndDate: "2026-10-06"}
	require.NoError(t, suite.db.Create(&event).Error)

	w := suite.request("GET", "/api/v1/calendar/export", nil, suite.teacher)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, w.Body.String(), "SUMMARY:Midterm")
}

func (suite *HandlersTestSuite) TestDeleteCalendarEvent() {
	t := suite.T()

	event := models.CalendarEvent{Title: "Midterm", Category: models.EventExam, StartDate: "2026-10-05"}
	require.NoError(t, suite.db.Create(&event).Error)

	w := suite.request("DELETE", "/api/v1/calendar/"+event.ID, nil, suite.admin)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.CalendarEvent{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func (suite *HandlersTestSuite) TestDashboardCounts() {
	t := suite.T()

	plan := models.LessonPlan{Class: "7A", Subject: "Math", Session: 1, TeacherEmail: suite.teacher.Email, Status: models.StatusPendingReview}
	require.NoError(t, suite.db.Create(&plan).Error)

	w := suite.request("GET", "/api/v1/dashboard", nil, suite.teacher)
	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["my_plans"])
	assert.Equal(t, float64(1), body["pending_review"])
	for _, key := range []string{"placeholders", "open_substitutions", "reports_today", "upcoming_events", "date"} {
		assert.Contains(t, body, key)
	}
	assert.Equal(t, float64(0), body["placeholders"])
	assert.Equal(t, float64(0), body["open_substitutions"])
}
