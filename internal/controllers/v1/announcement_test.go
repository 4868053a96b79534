package v1_test

import (
	"net/http"

	v1 "github.com/condofacil/backend/internal/controllers/v1"
	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestAnnouncementLifecycle() {
	suite.createTestCondominium()
	headers := suite.bearer(models.RoleManager, "12345678100")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/announcements", map[string]string{
		"matricula": "12345678100",
		"titulo":    "Assembleia geral",
		"mensagem":  "A assembleia acontece dia 15 às 19h no salão de festas.",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.AnnouncementResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	assert.Nil(suite.T(), response.Data.PublishedAt, "a new announcement is a draft")
	assert.Equal(suite.T(), "manager@example.com", response.Data.Autor)

	// No residents with an email address, so publishing only stamps the time
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/announcements/"+response.Data.ID.String()+"/publish", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	assert.NotNil(suite.T(), response.Data.PublishedAt)

	// Publishing twice is rejected
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/announcements/"+response.Data.ID.String()+"/publish", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCreateAnnouncementResidentForbidden() {
	suite.createTestCondominium()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/announcements", map[string]string{
		"matricula": "12345678100",
		"titulo":    "Assembleia geral",
		"mensagem":  "Texto",
	}, suite.bearer(models.RoleResident, "12345678100"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusForbidden)
}
