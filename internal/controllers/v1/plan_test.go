package v1_test

import (
	"net/http"

	v1 "github.com/condofacil/backend/internal/controllers/v1"
	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreatePlan() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plans", map[string]any{
		"codigo":       "basico",
		"nome":         "Plano Básico",
		"valor":        "R$ 199,90",
		"maxMoradores": 30,
	}, suite.bearer(models.RoleAdmin, ""))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.PlanResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	assert.Equal(suite.T(), "BASICO", response.Data.Codigo, "the plan code is normalized to uppercase")
	assert.Equal(suite.T(), "R$ 199,90", response.Data.ValorFormatado)
	suite.Require().NotNil(response.Data.MaxMoradores)
	assert.Equal(suite.T(), int64(30), *response.Data.MaxMoradores)
}

func (suite *TestSuiteStandard) TestCreatePlanRequiresAdmin() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/plans", map[string]string{
		"codigo": "BASICO",
		"valor":  "R$ 199,90",
	}, suite.bearer(models.RoleManager, "12345678100"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestGetPlansAnySession() {
	suite.createTestPlan("BASICO", 199.90, nil)
	suite.createTestPlan("PREMIUM", 399.90, nil)

	// The catalog is readable by residents too
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/plans", "", suite.bearer(models.RoleResident, "12345678100"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PlanListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 2)
	assert.Equal(suite.T(), "BASICO", response.Data[0].Codigo, "plans are ordered by code")
}

func (suite *TestSuiteStandard) TestGetPlanNotFound() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/plans/UNKNOWN", "", suite.bearer(models.RoleAdmin, ""))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdatePlanWritesChangelog() {
	suite.createTestPlan("BASICO", 199.90, nil)

	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/plans/BASICO", map[string]string{
		"valor": "R$ 219,90",
	}, suite.bearer(models.RoleAdmin, ""))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/changelogs/plans/BASICO", "", suite.bearer(models.RoleAdmin, ""))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var changes v1.PlanChangeListResponse
	test.DecodeResponse(suite.T(), &recorder, &changes)
	suite.Require().Len(changes.Data, 1)
	assert.Equal(suite.T(), "valor", changes.Data[0].Campo)
	assert.Equal(suite.T(), "199.9", changes.Data[0].ValorAnterior)
	assert.Equal(suite.T(), "219.9", changes.Data[0].ValorNovo)
}

func (suite *TestSuiteStandard) TestDeletePlanInUse() {
	suite.createTestPlan("BASICO", 199.90, nil)

	condominium := suite.createTestCondominium()
	condominium.PlanoContratado = "BASICO"
	suite.Require().NoError(models.DB.Save(&condominium).Error)

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/plans/BASICO", "", suite.bearer(models.RoleAdmin, ""))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDeletePlanUnused() {
	suite.createTestPlan("BASICO", 199.90, nil)

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/plans/BASICO", "", suite.bearer(models.RoleAdmin, ""))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/plans/BASICO", "", suite.bearer(models.RoleAdmin, ""))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}
