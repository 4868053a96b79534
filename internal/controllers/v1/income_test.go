package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/condofacil/backend/internal/controllers/v1"
	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) incomeBody(valor string) map[string]any {
	return map[string]any{
		"matricula":      "12345678100",
		"categoria":      "taxaCondominio",
		"valor":          valor,
		"referenceMonth": time.Now().In(time.UTC).Format("2006-01"),
		"paymentDate":    time.Now().In(time.UTC).Add(-24 * time.Hour).Format(time.RFC3339),
		"unidade":        "Apto 42",
	}
}

func (suite *TestSuiteStandard) TestCreateIncome() {
	suite.createTestCondominium()
	headers := suite.bearer(models.RoleManager, "12345678100")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/incomes", suite.incomeBody("R$ 350,00"), headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.IncomeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	assert.Equal(suite.T(), "R$ 350,00", response.Data.ValorFormatado)

	// The cached balance reflects the entry
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/balances/12345678100", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var balance v1.BalanceResponse
	test.DecodeResponse(suite.T(), &recorder, &balance)
	suite.Require().NotNil(balance.Data)
	assert.Equal(suite.T(), "R$ 350,00", balance.Data.AmountFormatado)
}

func (suite *TestSuiteStandard) TestCreateIncomeDuplicate() {
	suite.createTestCondominium()
	headers := suite.bearer(models.RoleManager, "12345678100")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/incomes", suite.incomeBody("R$ 350,00"), headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	// Same category, month and unit is rejected
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/incomes", suite.incomeBody("R$ 350,00"), headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)

	// Unless the client confirms it
	body := suite.incomeBody("R$ 350,00")
	body["confirmed"] = true
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/incomes", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)
}

func (suite *TestSuiteStandard) TestCreateIncomeTenantScope() {
	suite.createTestCondominium()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/incomes", suite.incomeBody("R$ 350,00"), suite.bearer(models.RoleManager, "99999999001"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestCreateIncomePaymentDateInFuture() {
	suite.createTestCondominium()

	body := suite.incomeBody("R$ 350,00")
	body["paymentDate"] = time.Now().In(time.UTC).Add(48 * time.Hour).Format(time.RFC3339)

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/incomes", body, suite.bearer(models.RoleManager, "12345678100"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDeleteIncomeRestoresBalance() {
	suite.createTestCondominium()
	headers := suite.bearer(models.RoleManager, "12345678100")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/incomes", suite.incomeBody("R$ 350,00"), headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.IncomeResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	recorder = test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/incomes/"+response.Data.ID.String(), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/balances/12345678100", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var balance v1.BalanceResponse
	test.DecodeResponse(suite.T(), &recorder, &balance)
	suite.Require().NotNil(balance.Data)
	assert.Equal(suite.T(), "R$ 0,00", balance.Data.AmountFormatado)
}
