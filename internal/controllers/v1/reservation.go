package v1

import (
	"net/http"
	"time"

	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/httputil"
	"github.com/condofacil/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterReservationRoutes registers the routes for common-area
// reservations.
func RegisterReservationRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsReservationList)
		r.GET("", GetReservations)
		r.POST("", CreateReservation)
	}

	{
		r.OPTIONS("/:id", OptionsReservationDetail)
		r.GET("/:id", GetReservation)
		r.PATCH("/:id", UpdateReservationStatus)
		r.DELETE("/:id", DeleteReservation)
	}
}

// ReservationEditable represents all user configurable parameters.
type ReservationEditable struct {
	Matricula string    `json:"matricula" example:"12345678100"`
	Area      string    `json:"area" example:"Salão de festas"`
	Date      time.Time `json:"date" example:"2024-07-20T00:00:00Z"` // Truncated to the day
	Unidade   string    `json:"unidade" example:"Apto 42"`
}

// ReservationStatusWrite is the request body for the status transition.
type ReservationStatusWrite struct {
	Status models.ReservationStatus `json:"status" example:"confirmada"`
}

type ReservationResponse struct {
	Data  *models.Reservation `json:"data"`  // The Reservation data
	Error *string             `json:"error"` // The error, if any occurred
}

type ReservationListResponse struct {
	Data  []models.Reservation `json:"data"`  // List of Reservations
	Error *string              `json:"error"` // The error, if any occurred
}

type ReservationQueryFilter struct {
	Matricula string `form:"matricula"` // Condominium to list reservations for
	Area      string `form:"area"`      // Filter by common area
	Status    string `form:"status"`    // Filter by status
	Offset    uint   `form:"offset"`    // The offset of the first Reservation returned. Defaults to 0.
	Limit     int    `form:"limit"`     // Maximum number of Reservations to return. Defaults to 50.
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reservations
// @Success		204
// @Router			/v1/reservations [options]
func OptionsReservationList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reservations
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/reservations/{id} [options]
func OptionsReservationDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create reservation
// @Description	Books a common area for a date. A second booking of the same area on the same day is rejected with 409.
// @Tags			Reservations
// @Accept			json
// @Produce		json
// @Success		201			{object}	ReservationResponse
// @Failure		400			{object}	ReservationResponse
// @Failure		403			{object}	ReservationResponse
// @Failure		409			{object}	ReservationResponse
// @Failure		500			{object}	ReservationResponse
// @Param			reservation	body		ReservationEditable	true	"Reservation"
// @Router			/v1/reservations [post]
func CreateReservation(c *gin.Context) {
	var editable ReservationEditable

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), ReservationResponse{Error: &e})
		return
	}

	if !auth.MatriculaAllowed(c, editable.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, ReservationResponse{Error: &e})
		return
	}

	reservation := models.Reservation{
		Matricula: editable.Matricula,
		Area:      editable.Area,
		Date:      editable.Date,
		Unidade:   editable.Unidade,
	}

	if err := models.DB.Create(&reservation).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), ReservationResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, ReservationResponse{Data: &reservation})
}

// @Summary		List reservations
// @Description	Returns the reservations of a condominium, next date first
// @Tags			Reservations
// @Produce		json
// @Success		200	{object}	ReservationListResponse
// @Failure		403	{object}	ReservationListResponse
// @Router			/v1/reservations [get]
// @Param			matricula	query	string	true	"Condominium to list reservations for"
// @Param			area		query	string	false	"Filter by common area"
// @Param			status		query	string	false	"Filter by status"
// @Param			offset		query	uint	false	"The offset of the first Reservation returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Reservations to return. Defaults to 50."
func GetReservations(c *gin.Context) {
	var filter ReservationQueryFilter
	_ = c.Bind(&filter)

	if !auth.MatriculaAllowed(c, filter.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, ReservationListResponse{Error: &e})
		return
	}

	q := models.DB.
		Where("matricula = ?", filter.Matricula).
		Order("date ASC")

	if filter.Area != "" {
		q = q.Where("area = ?", filter.Area)
	}

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var reservations []models.Reservation
	err := q.Offset(int(filter.Offset)).
		Limit(limitOrDefault(filter.Limit)).
		Find(&reservations).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReservationListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ReservationListResponse{Data: reservations})
}

// @Summary		Get reservation
// @Description	Returns a specific reservation
// @Tags			Reservations
// @Produce		json
// @Success		200	{object}	ReservationResponse
// @Failure		400	{object}	ReservationResponse
// @Failure		403	{object}	ReservationResponse
// @Failure		404	{object}	ReservationResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/reservations/{id} [get]
func GetReservation(c *gin.Context) {
	reservation, ok := reservationFromURI(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ReservationResponse{Data: &reservation})
}

// @Summary		Update reservation status
// @Description	Moves a reservation to pendente, confirmada or cancelada
// @Tags			Reservations
// @Accept			json
// @Produce		json
// @Success		200			{object}	ReservationResponse
// @Failure		400			{object}	ReservationResponse
// @Failure		403			{object}	ReservationResponse
// @Failure		404			{object}	ReservationResponse
// @Param			id			path		string					true	"ID formatted as string"
// @Param			reservation	body		ReservationStatusWrite	true	"Status"
// @Router			/v1/reservations/{id} [patch]
func UpdateReservationStatus(c *gin.Context) {
	reservation, ok := reservationFromURI(c)
	if !ok {
		return
	}

	var write ReservationStatusWrite
	if err := httputil.BindData(c, &write); err != nil {
		e := err.Error()
		c.JSON(status(err), ReservationResponse{Error: &e})
		return
	}

	switch write.Status {
	case models.ReservationPendente, models.ReservationConfirmada, models.ReservationCancelada:
	default:
		e := "the status must be pendente, confirmada or cancelada"
		c.JSON(http.StatusBadRequest, ReservationResponse{Error: &e})
		return
	}

	reservation.Status = write.Status
	if err := models.DB.Save(&reservation).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), ReservationResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ReservationResponse{Data: &reservation})
}

// @Summary		Delete reservation
// @Description	Deletes a reservation, freeing the area and date for a new booking
// @Tags			Reservations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/reservations/{id} [delete]
func DeleteReservation(c *gin.Context) {
	if _, ok := reservationFromURI(c); !ok {
		return
	}

	deleteResource[models.Reservation](c)
}

func reservationFromURI(c *gin.Context) (models.Reservation, bool) {
	var reservation models.Reservation
	if !firstByID(c, &reservation) {
		return models.Reservation{}, false
	}

	if !auth.MatriculaAllowed(c, reservation.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, ReservationResponse{Error: &e})
		return models.Reservation{}, false
	}

	return reservation, true
}
