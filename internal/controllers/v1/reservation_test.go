package v1_test

import (
	"net/http"

	v1 "github.com/condofacil/backend/internal/controllers/v1"
	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) reservationBody() map[string]string {
	return map[string]string{
		"matricula": "12345678100",
		"area":      "Salão de festas",
		"date":      "2026-09-20T00:00:00Z",
		"unidade":   "Apto 42",
	}
}

func (suite *TestSuiteStandard) TestCreateReservation() {
	suite.createTestCondominium()

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/reservations", suite.reservationBody(), suite.bearer(models.RoleResident, "12345678100"))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ReservationResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)
	assert.Equal(suite.T(), models.ReservationPendente, response.Data.Status)
}

func (suite *TestSuiteStandard) TestCreateReservationConflict() {
	suite.createTestCondominium()
	headers := suite.bearer(models.RoleResident, "12345678100")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/reservations", suite.reservationBody(), headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	// The area is already booked for that day
	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/reservations", suite.reservationBody(), headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestUpdateReservationStatus() {
	suite.createTestCondominium()
	headers := suite.bearer(models.RoleManager, "12345678100")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/reservations", suite.reservationBody(), headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ReservationResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	recorder = test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/reservations/"+response.Data.ID.String(), map[string]string{
		"status": "confirmada",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), models.ReservationConfirmada, response.Data.Status)

	// Unknown statuses are rejected
	recorder = test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/reservations/"+response.Data.ID.String(), map[string]string{
		"status": "aguardando",
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDeleteReservationFreesDate() {
	suite.createTestCondominium()
	headers := suite.bearer(models.RoleResident, "12345678100")

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/reservations", suite.reservationBody(), headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.ReservationResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotNil(response.Data)

	recorder = test.Request(suite.T(), http.MethodDelete, "http://example.com/v1/reservations/"+response.Data.ID.String(), "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/reservations", suite.reservationBody(), headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)
}
