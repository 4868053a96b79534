package models_test

import (
	"time"

	"github.com/condofacil/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestReservationDefaults() {
	reservation := models.Reservation{
		Matricula: "12345678100",
		Area:      " Salão de festas ",
		Date:      time.Date(2024, 7, 20, 15, 4, 5, 0, time.UTC),
		Unidade:   "Apto 42",
	}

	suite.Require().NoError(models.DB.Create(&reservation).Error)

	assert.Equal(suite.T(), "Salão de festas", reservation.Area)
	assert.Equal(suite.T(), models.ReservationPendente, reservation.Status)
	assert.Equal(suite.T(), time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC), reservation.Date, "the date is truncated to the day")
}

func (suite *TestSuiteStandard) TestReservationConflict() {
	reservation := models.Reservation{
		Matricula: "12345678100",
		Area:      "Salão de festas",
		Date:      time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
	}
	suite.Require().NoError(models.DB.Create(&reservation).Error)

	// Same area, same day, different time of day
	conflicting := models.Reservation{
		Matricula: "12345678100",
		Area:      "Salão de festas",
		Date:      time.Date(2024, 7, 20, 18, 0, 0, 0, time.UTC),
	}
	err := models.DB.Create(&conflicting).Error
	assert.ErrorIs(suite.T(), err, models.ErrReservationConflict)

	// Another condominium can book its own area on the same day
	other := models.Reservation{
		Matricula: "99999999001",
		Area:      "Salão de festas",
		Date:      time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(suite.T(), models.DB.Create(&other).Error)
}
