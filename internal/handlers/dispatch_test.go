package handlers

import (
	"net/http"

	"github.com/classhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *HandlersTestSuite) TestDispatchUnknownAction() {
	t := suite.T()

	w := suite.request("GET", "/api/exec?action=doSomethingWeird", nil, suite.teacher)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "doSomethingWeird")
}

func (suite *HandlersTestSuite) TestDispatchSubmitKeepsLegacyShape() {
	t := suite.T()

	w := suite.request("POST", "/api/exec?action=submitLessonPlanDetails", map[string]any{
		"class":      "7A",
		"subject":    "Math",
		"session":    4,
		"objectives": "Inequalities",
	}, suite.teacher)

	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, true, body["submitted"])
	assert.NotEmpty(t, body["id"])
}

func (suite *HandlersTestSuite) TestDispatchDuplicateIs200WithError() {
	t := suite.T()

	existing := models.LessonPlan{
		Class: "7A", Subject: "Math", Session: 4, Chapter: "",
		Status: models.StatusPendingReview,
	}
	require.NoError(t, suite.db.Create(&existing).Error)

	w := suite.request("POST", "/api/exec?action=submitLessonPlanDetails", map[string]any{
		"class":   "7A",
		"subject": "Math",
		"session": 4,
	}, suite.teacher)

	// The legacy façade reports errors in-band, always 200.
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Nil(t, body["submitted"])
	assert.Contains(t, body["error"], "already exists")
}

func (suite *HandlersTestSuite) TestDispatchRoutesReadActions() {
	t := suite.T()

	plan := models.LessonPlan{Class: "7A", Subject: "Math", Session: 1, TeacherEmail: suite.teacher.Email}
	require.NoError(t, suite.db.Create(&plan).Error)

	w := suite.request("GET", "/api/exec?action=getTeacherLessonPlans", nil, suite.teacher)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
}

func (suite *HandlersTestSuite) TestDispatchAssignSubstitutionByQueryID() {
	t := suite.T()

	sub := models.Substitution{
		Date: "2026-09-14", Period: 3, Class: "7A",
		AbsentTeacher: "Amina", Status: models.SubstitutionOpen,
	}
	require.NoError(t, suite.db.Create(&sub).Error)

	w := suite.request("POST", "/api/exec?action=assignSubstitution&id="+sub.ID,
		map[string]any{"substitute_teacher": "Head of Dept"}, suite.admin)

	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	var assigned models.Substitution
	require.NoError(t, suite.db.First(&assigned, "id = ?", sub.ID).Error)
	assert.Equal(t, models.SubstitutionAssigned, assigned.Status)
}
