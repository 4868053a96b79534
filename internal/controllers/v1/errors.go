package v1

import (
	"errors"
	"net/http"

	"github.com/condofacil/backend/internal/functions"
	"github.com/condofacil/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no condominium matching your query"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, functions.ErrRemote) {
		return http.StatusBadGateway
	}

	if errors.Is(err, errDuplicateEntry) || errors.Is(err, models.ErrReservationConflict) {
		return http.StatusConflict
	}

	if errors.Is(err, errMatriculaForbidden) {
		return http.StatusForbidden
	}

	return http.StatusBadRequest
}

var (
	errMatriculaForbidden = errors.New("you may not access resources of another condominium")
	errDuplicateEntry     = errors.New("an entry with the same category, reference month and unit already exists. Send confirmed=true to save it anyway")
	errCredentialsInvalid = errors.New("email or password incorrect")
	errActiveQueryInvalid = errors.New("the active parameter must be true or false")
)
