package handlers

import (
	"net/http"

	"github.com/classhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *HandlersTestSuite) TestSubmitLessonPlanCreates() {
	t := suite.T()

	scheme := models.SchemeOfWork{Class: "7A", Subject: "Math", Chapter: "Algebra"}
	require.NoError(t, suite.db.Create(&scheme).Error)

	w := suite.request("POST", "/api/v1/lesson-plans", map[string]any{
		"class":      "7A",
		"subject":    "Math",
		"session":    3,
		"scheme_id":  scheme.ID,
		"objectives": "Factorize quadratics",
	}, suite.teacher)

	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["submitted"])
	assert.Equal(t, "created", body["outcome"])

	var plan models.LessonPlan
	require.NoError(t, suite.db.First(&plan, "class = ? AND session = ?", "7A", 3).Error)
	assert.Equal(t, suite.teacher.Email, plan.TeacherEmail)
	assert.Equal(t, "Algebra", plan.Chapter)
	assert.Equal(t, models.StatusPendingReview, plan.Status)
}

func (suite *HandlersTestSuite) TestSubmitLessonPlanDuplicateIs409() {
	t := suite.T()

	scheme := models.SchemeOfWork{Class: "7A", Subject: "Math", Chapter: "Algebra"}
	require.NoError(t, suite.db.Create(&scheme).Error)

	existing := models.LessonPlan{
		Class: "7A", Subject: "Math", Session: 3, Chapter: "Algebra",
		Status: models.StatusPendingReview,
	}
	require.NoError(t, suite.db.Create(&existing).Error)

	w := suite.request("POST", "/api/v1/lesson-plans", map[string]any{
		"class":     "7A",
		"subject":   "Math",
		"session":   3,
		"scheme_id": scheme.ID,
	}, suite.teacher)

	assert.Equal(t, http.StatusConflict, w.Code, "Response body: %s", w.Body.String())

	body := decodeBody(t, w)
	assert.Contains(t, body["message"], "7A")
	assert.Contains(t, body["message"], "Math")
}

func (suite *HandlersTestSuite) TestSubmitLessonPlanFillsPlaceholder() {
	t := suite.T()

	placeholder := models.LessonPlan{
		Class: "7A", Subject: "Math", Session: 5,
		Status: models.StatusPendingPreparation,
	}
	require.NoError(t, suite.db.Create(&placeholder).Error)

	w := suite.request("POST", "/api/v1/lesson-plans", map[string]any{
		"class":      "7A",
		"subject":    "Math",
		"session":    5,
		"objectives": "Simultaneous equations",
	}, suite.teacher)

	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "filled_placeholder", body["outcome"])

	var plan models.LessonPlan
	require.NoError(t, suite.db.First(&plan, "id = ?", placeholder.ID).Error)
	assert.Equal(t, models.StatusPendingReview, plan.Status)
	assert.Equal(t, "Simultaneous equations", plan.Objectives)
}

func (suite *HandlersTestSuite) TestSubmitLessonPlanCoercesGarbageSession() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/lesson-plans", map[string]any{
		"class":   "7A",
		"subject": "Math",
		"session": "not-a-number",
	}, suite.teacher)

	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	var plan models.LessonPlan
	require.NoError(t, suite.db.First(&plan, "class = ?", "7A").Error)
	assert.Equal(t, 0, plan.Session)
}

func (suite *HandlersTestSuite) TestValidateLessonPlanReportsDuplicate() {
	t := suite.T()

	existing := models.LessonPlan{
		Class: "7A", Subject: "Math", Session: 3, Chapter: "Algebra",
		TeacherEmail: suite.teacher.Email,
		Status:       models.StatusPendingReview,
	}
	require.NoError(t, suite.db.Create(&existing).Error)

	w := suite.request("POST", "/api/v1/lesson-plans/validate", map[string]any{
		"class":   "7A",
		"subject": "Math",
		"session": 3,
		"chapter": "Algebra",
	}, suite.teacher)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["is_duplicate"])
}

func (suite *HandlersTestSuite) TestGetMyLessonPlansScopedToTeacher() {
	t := suite.T()

	mine := models.LessonPlan{Class: "7A", Subject: "Math", Session: 1, TeacherEmail: suite.teacher.Email}
	theirs := models.LessonPlan{Class: "7B", Subject: "Math", Session: 1, TeacherEmail: "other@school.test"}
	require.NoError(t, suite.db.Create(&mine).Error)
	require.NoError(t, suite.db.Create(&theirs).Error)

	w := suite.request("GET", "/api/v1/lesson-plans", nil, suite.teacher)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
}

func (suite *HandlersTestSuite) TestReviewLessonPlanRequiresReviewer() {
	t := suite.T()

	plan := models.LessonPlan{Class: "7A", Subject: "Math", Session: 1, Status: models.StatusPendingReview}
	require.NoError(t, suite.db.Create(&plan).Error)

	w := suite.request("POST", "/api/v1/lesson-plans/"+plan.ID+"/review",
		map[string]any{"approved": true}, suite.teacher)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = suite.request("POST", "/api/v1/lesson-plans/"+plan.ID+"/review",
		map[string]any{"approved": true}, suite.reviewer)
	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	var reviewed models.LessonPlan
	require.NoError(t, suite.db.First(&reviewed, "id = ?", plan.ID).Error)
	assert.Equal(t, models.StatusReady, reviewed.Status)
}

func (suite *HandlersTestSuite) TestReviewRejectsPlaceholder() {
	t := suite.T()

	plan := models.LessonPlan{Class: "7A", Subject: "Math", Session: 1, Status: models.StatusPendingPreparation}
	require.NoError(t, suite.db.Create(&plan).Error)

	w := suite.request("POST", "/api/v1/lesson-plans/"+plan.ID+"/review",
		map[string]any{"approved": true}, suite.reviewer)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlersTestSuite) TestCreatePlaceholdersSkipsExistingSessions() {
	t := suite.T()

	existing := models.LessonPlan{Class: "8B", Subject: "Science", Session: 2, Status: models.StatusPendingReview}
	require.NoError(t, suite.db.Create(&existing).Error)

	w := suite.request("POST", "/api/v1/lesson-plans/placeholders", map[string]any{
		"class":        "8B",
		"subject":      "Science",
		"from_session": 1,
		"to_session":   3,
	}, suite.reviewer)

	assert.Equal(t, http.StatusCreated, w.Code, "Response body: %s", w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["count"])

	var placeholders int64
	suite.db.Model(&models.LessonPlan{}).
		Where("class = ? AND status = ?", "8B", models.StatusPendingPreparation).
		Count(&placeholders)
	assert.Equal(t, int64(2), placeholders)
}

func (suite *HandlersTestSuite) TestUnauthenticatedRequestRejected() {
	t := suite.T()

	w := suite.request("GET", "/api/v1/lesson-plans", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
