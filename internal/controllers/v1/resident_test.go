package v1_test

import (
	"net/http"

	v1 "github.com/condofacil/backend/internal/controllers/v1"
	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) residentBody(nome string) map[string]string {
	return map[string]string{
		"matricula": "12345678100",
		"nome":      nome,
		"unidade":   "Apto 42",
	}
}

func (suite *TestSuiteStandard) TestCreateResident() {
	suite.createTestCondominium()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/residents", suite.residentBody("Maria da Silva"), suite.bearer(models.RoleManager, "12345678100"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ResidentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	assert.True(suite.T(), response.Data.Active, "new residents are active by default")
}

func (suite *TestSuiteStandard) TestCreateResidentPlanCapacity() {
	one := int64(1)
	suite.createTestPlan("MINI", 99.90, &one)

	condominium := suite.createTestCondominium()
	condominium.PlanoContratado = "MINI"
	suite.Require().NoError(models.DB.Save(&condominium).Error)

	headers := suite.bearer(models.RoleManager, "12345678100")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/residents", suite.residentBody("Maria da Silva"), headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	// The plan allows a single resident
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/residents", suite.residentBody("João Pereira"), headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateResidentReactivation() {
	one := int64(1)
	suite.createTestPlan("MINI", 99.90, &one)

	condominium := suite.createTestCondominium()
	condominium.PlanoContratado = "MINI"
	suite.Require().NoError(models.DB.Save(&condominium).Error)

	inactive := models.Resident{Matricula: "12345678100", Nome: "Maria da Silva", Active: false}
	suite.Require().NoError(models.DB.Create(&inactive).Error)

	active := models.Resident{Matricula: "12345678100", Nome: "João Pereira", Active: true}
	suite.Require().NoError(models.DB.Create(&active).Error)

	// Reactivation would exceed the plan capacity
	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/residents/"+inactive.ID.String(), map[string]bool{
		"active": true,
	}, suite.bearer(models.RoleManager, "12345678100"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestResidentMatriculaImmutable() {
	suite.createTestCondominium()
	headers := suite.bearer(models.RoleAdmin, "")

	resident := models.Resident{Matricula: "12345678100", Nome: "Maria da Silva", Active: true}
	suite.Require().NoError(models.DB.Create(&resident).Error)

	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/residents/"+resident.ID.String(), map[string]string{
		"matricula": "99999999001",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ResidentResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	assert.Equal(suite.T(), "12345678100", response.Data.Matricula, "a resident never moves between condominiums")
}
