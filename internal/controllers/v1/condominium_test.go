package v1_test

import (
	"net/http"

	v1 "github.com/condofacil/backend/internal/controllers/v1"
	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestRegisterCondominium() {
	suite.createTestPlan("BASICO", 199.90, nil)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/condominiums", map[string]string{
		"nome":                 "Residencial das Flores",
		"cep":                  "12345-678",
		"numero":               "100",
		"email":                "sindico@example.com",
		"planoContratado":      "BASICO",
		"password":             "hunter2hunter2",
		"passwordConfirmation": "hunter2hunter2",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.CondominiumResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	assert.Equal(suite.T(), "12345678100", response.Data.Matricula)
	assert.Equal(suite.T(), models.DocumentTypeRecibo, response.Data.TipoDocumento)
	assert.True(suite.T(), response.Data.Ativo)
	assert.Equal(suite.T(), "R$ 199,90", response.Data.ValorMensalFormatado)

	// Registration also creates the manager login
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/login", map[string]string{
		"email":    "sindico@example.com",
		"password": "hunter2hunter2",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var login v1.LoginResponse
	test.DecodeResponse(suite.T(), &recorder, &login)
	suite.Require().NotNil(login.Data)
	assert.NotEmpty(suite.T(), login.Data.Token)
	assert.Equal(suite.T(), models.RoleManager, login.Data.User.Role)
	assert.Equal(suite.T(), "12345678100", login.Data.User.Matricula)

	// The issued token works for authenticated requests
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/condominiums/12345678100", "", map[string]string{
		"Authorization": "Bearer " + login.Data.Token,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestRegisterCondominiumPasswordMismatch() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/condominiums", map[string]string{
		"nome":                 "Residencial das Flores",
		"cep":                  "12345-678",
		"numero":               "100",
		"email":                "sindico@example.com",
		"password":             "hunter2hunter2",
		"passwordConfirmation": "something-else",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestLoginWrongPassword() {
	condominium := suite.createTestCondominium()

	user := models.User{Email: condominium.Email, Role: models.RoleManager, Matricula: condominium.Matricula}
	suite.Require().NoError(user.SetPassword("hunter2hunter2"))
	suite.Require().NoError(models.DB.Create(&user).Error)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/login", map[string]string{
		"email":    condominium.Email,
		"password": "wrong",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)

	// An unknown address gets the same response as a wrong password
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "hunter2hunter2",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestGetCondominiumUnauthenticated() {
	suite.createTestCondominium()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/condominiums/12345678100", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestGetCondominiumTenantScope() {
	suite.createTestCondominium()

	// A manager of another condominium may not read this one
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/condominiums/12345678100", "", suite.bearer(models.RoleManager, "99999999001"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)

	// Admins may read any tenant
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/condominiums/12345678100", "", suite.bearer(models.RoleAdmin, ""))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestGetCondominiumsRequiresAdmin() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/condominiums", "", suite.bearer(models.RoleManager, "12345678100"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/condominiums", "", suite.bearer(models.RoleAdmin, ""))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
}

func (suite *TestSuiteStandard) TestUpdateCondominiumDiscount() {
	suite.createTestPlan("BASICO", 199.90, nil)

	condominium := suite.createTestCondominium()
	condominium.PlanoContratado = "BASICO"
	condominium.ValorPlano = decimal.NewFromFloat(199.90)
	suite.Require().NoError(models.DB.Save(&condominium).Error)

	headers := suite.bearer(models.RoleManager, condominium.Matricula)

	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/condominiums/"+condominium.Matricula, map[string]string{
		"desconto": "R$ 50,00",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.CondominiumResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	assert.Equal(suite.T(), "R$ 149,90", response.Data.ValorMensalFormatado)

	// The change shows up in the audit log
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/changelogs/condominiums/"+condominium.Matricula, "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var changes v1.CondominiumChangeListResponse
	test.DecodeResponse(suite.T(), &recorder, &changes)
	suite.Require().NotEmpty(changes.Data)

	var fields []string
	for _, change := range changes.Data {
		fields = append(fields, change.Campo)
	}
	assert.Contains(suite.T(), fields, "desconto")
}

func (suite *TestSuiteStandard) TestUpdateCondominiumMatriculaImmutable() {
	condominium := suite.createTestCondominium()

	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/condominiums/"+condominium.Matricula, map[string]string{
		"cep": "99999-999",
	}, suite.bearer(models.RoleManager, condominium.Matricula))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
