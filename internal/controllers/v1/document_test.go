package v1_test

import (
	"net/http"

	v1 "github.com/condofacil/backend/internal/controllers/v1"
	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestDocumentNameGlob() {
	suite.createTestCondominium()
	headers := suite.bearer(models.RoleManager, "12345678100")

	for _, nome := range []string{"ata-assembleia-2024-07.pdf", "ata-assembleia-2024-08.pdf", "regimento-interno.pdf"} {
		recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/documents", map[string]string{
			"matricula": "12345678100",
			"nome":      nome,
			"tipo":      "ata",
			"url":       "https://storage.example.com/docs/" + nome,
		}, headers)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)
	}

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/documents?matricula=12345678100&nome=ata-*", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DocumentListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 2)
	for _, document := range response.Data {
		assert.Contains(suite.T(), document.Nome, "ata-assembleia")
	}
}

func (suite *TestSuiteStandard) TestCreateDocumentResidentForbidden() {
	suite.createTestCondominium()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/documents", map[string]string{
		"matricula": "12345678100",
		"nome":      "ata.pdf",
	}, suite.bearer(models.RoleResident, "12345678100"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}
