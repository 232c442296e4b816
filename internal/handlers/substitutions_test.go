package handlers

import (
	"net/http"

	"github.com/classhub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *HandlersTestSuite) TestCreateSubstitutionOpensSlot() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/substitutions", map[string]any{
		"date":           "2026-09-14",
		"period":         3,
		"class":          "7A",
		"subject":        "Math",
		"absent_teacher": "Amina",
	}, suite.admin)

	assert.Equal(t, http.StatusCreated, w.Code, "Response body: %s", w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, models.SubstitutionOpen, body["status"])
	assert.Empty(t, body["substitute_teacher"])
}

func (suite *HandlersTestSuite) TestAssignSubstitution() {
	t := suite.T()

	sub := models.Substitution{
		Date: "2026-09-14", Period: 3, Class: "7A",
		AbsentTeacher: "Amina", Status: models.SubstitutionOpen,
	}
	require.NoError(t, suite.db.Create(&sub).Error)

	w := suite.request("POST", "/api/v1/substitutions/"+sub.ID+"/assign",
		map[string]any{"substitute_teacher": "Head of Dept"}, suite.admin)

	assert.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	var assigned models.Substitution
	require.NoError(t, suite.db.First(&assigned, "id = ?", sub.ID).Error)
	assert.Equal(t, models.SubstitutionAssigned, assigned.Status)
	assert.Equal(t, "Head of Dept", assigned.SubstituteTeacher)
	assert.NotNil(t, assigned.AssignedAt)
}

func (suite *HandlersTestSuite) TestAssignSubstitutionReassigns() {
	t := suite.T()

	sub := models.Substitution{
		Date: "2026-09-14", Period: 3, Class: "7A",
		AbsentTeacher: "Amina", SubstituteTeacher: "First",
		Status: models.SubstitutionAssigned,
	}
	require.NoError(t, suite.db.Create(&sub).Error)

	w := suite.request("POST", "/api/v1/substitutions/"+sub.ID+"/assign",
		map[string]any{"substitute_teacher": "Second"}, suite.admin)

	assert.Equal(t, http.StatusOK, w.Code)

	var assigned models.Substitution
	require.NoError(t, suite.db.First(&assigned, "id = ?", sub.ID).Error)
	assert.Equal(t, "Second", assigned.SubstituteTeacher)
}

func (suite *HandlersTestSuite) TestGetSubstitutionsFilteredByDate() {
	t := suite.T()

	today := models.Substitution{Date: "2026-09-14", Period: 1, Class: "7A", AbsentTeacher: "A", Status: models.SubstitutionOpen}
	tomorrow := models.Substitution{Date: "2026-09-15", Period: 1, Class: "7A", AbsentTeacher: "A", Status: models.SubstitutionOpen}
	require.NoError(t, suite.db.Create(&today).Error)
	require.NoError(t, suite.db.Create(&tomorrow).Error)

	w := suite.request("GET", "/api/v1/substitutions?date=2026-09-14", nil, suite.teacher)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
}

func (suite *HandlersTestSuite) TestGetMySubstitutions() {
	t := suite.T()

	mine := models.Substitution{
		Date: "2026-09-14", Period: 1, Class: "7A", AbsentTeacher: "Other",
		SubstituteTeacher: suite.teacher.Name, Status: models.SubstitutionAssigned,
	}
	other := models.Substitution{
		Date: "2026-09-14", Period: 2, Class: "7B", AbsentTeacher: "Other",
		SubstituteTeacher: "Someone Else", Status: models.SubstitutionAssigned,
	}
	require.NoError(t, suite.db.Create(&mine).Error)
	require.NoError(t, suite.db.Create(&other).Error)

	w := suite.request("GET", "/api/v1/substitutions/mine", nil, suite.teacher)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
}
