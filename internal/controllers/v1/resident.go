package v1

import (
	"net/http"

	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/httputil"
	"github.com/condofacil/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterResidentRoutes registers the routes for residents.
func RegisterResidentRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsResidentList)
		r.GET("", GetResidents)
		r.POST("", CreateResident)
	}

	{
		r.OPTIONS("/:id", OptionsResidentDetail)
		r.GET("/:id", GetResident)
		r.PATCH("/:id", UpdateResident)
		r.DELETE("/:id", DeleteResident)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Residents
// @Success		204
// @Router			/v1/residents [options]
func OptionsResidentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Residents
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/residents/{id} [options]
func OptionsResidentDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create resident
// @Description	Creates a new resident. Creating an active resident runs the plan-capacity guard.
// @Tags			Residents
// @Accept			json
// @Produce		json
// @Success		201			{object}	ResidentResponse
// @Failure		400			{object}	ResidentResponse
// @Failure		403			{object}	ResidentResponse
// @Failure		500			{object}	ResidentResponse
// @Param			resident	body		ResidentEditable	true	"Resident"
// @Router			/v1/residents [post]
func CreateResident(c *gin.Context) {
	var editable ResidentEditable

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), ResidentResponse{Error: &e})
		return
	}

	if !auth.MatriculaAllowed(c, editable.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, ResidentResponse{Error: &e})
		return
	}

	resident := editable.model()

	if resident.Active {
		if err := checkCapacity(resident.Matricula, 1); err != nil {
			e := err.Error()
			c.JSON(status(err), ResidentResponse{Error: &e})
			return
		}
	}

	if err := models.DB.Create(&resident).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), ResidentResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, ResidentResponse{Data: &resident})
}

// @Summary		List residents
// @Description	Returns the residents of a condominium
// @Tags			Residents
// @Produce		json
// @Success		200	{object}	ResidentListResponse
// @Failure		400	{object}	ResidentListResponse
// @Failure		403	{object}	ResidentListResponse
// @Router			/v1/residents [get]
// @Param			matricula	query	string	true	"Condominium to list residents for"
// @Param			unidade		query	string	false	"Filter by unit label"
// @Param			active		query	string	false	"Filter by active flag"
// @Param			search		query	string	false	"Search for this text in name and email"
// @Param			offset		query	uint	false	"The offset of the first Resident returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Residents to return. Defaults to 50."
func GetResidents(c *gin.Context) {
	var filter ResidentQueryFilter
	_ = c.Bind(&filter)

	if !auth.MatriculaAllowed(c, filter.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, ResidentListResponse{Error: &e})
		return
	}

	q := models.DB.Model(&models.Resident{}).
		Where("matricula = ?", filter.Matricula).
		Order("unidade ASC, nome ASC")

	if filter.Unidade != "" {
		q = q.Where("unidade = ?", filter.Unidade)
	}

	if filter.Active != "" {
		if filter.Active != "true" && filter.Active != "false" {
			e := errActiveQueryInvalid.Error()
			c.JSON(http.StatusBadRequest, ResidentListResponse{Error: &e})
			return
		}
		q = q.Where("active = ?", filter.Active == "true")
	}

	if filter.Search != "" {
		q = q.Where("nome LIKE ? OR email LIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	q = q.Offset(int(filter.Offset)).Limit(limitOrDefault(filter.Limit))

	var residents []models.Resident
	if err := q.Find(&residents).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), ResidentListResponse{Error: &e})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), ResidentListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ResidentListResponse{
		Data: residents,
		Pagination: &Pagination{
			Count:  len(residents),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limitOrDefault(filter.Limit),
		},
	})
}

// @Summary		Get resident
// @Description	Returns a specific resident
// @Tags			Residents
// @Produce		json
// @Success		200	{object}	ResidentResponse
// @Failure		400	{object}	ResidentResponse
// @Failure		403	{object}	ResidentResponse
// @Failure		404	{object}	ResidentResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/residents/{id} [get]
func GetResident(c *gin.Context) {
	resident, ok := residentFromURI(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, ResidentResponse{Data: &resident})
}

// @Summary		Update resident
// @Description	Updates a resident. Only values to be updated need to be specified. Reactivating a resident runs the plan-capacity guard.
// @Tags			Residents
// @Accept			json
// @Produce		json
// @Success		200			{object}	ResidentResponse
// @Failure		400			{object}	ResidentResponse
// @Failure		403			{object}	ResidentResponse
// @Failure		404			{object}	ResidentResponse
// @Param			id			path		string				true	"ID formatted as string"
// @Param			resident	body		ResidentEditable	true	"Resident"
// @Router			/v1/residents/{id} [patch]
func UpdateResident(c *gin.Context) {
	resident, ok := residentFromURI(c)
	if !ok {
		return
	}

	editable := residentEditable(resident)
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), ResidentResponse{Error: &e})
		return
	}

	// A resident never moves between condominiums.
	editable.Matricula = resident.Matricula

	updated := editable.model()
	updated.DefaultModel = resident.DefaultModel

	if updated.Active && !resident.Active {
		if err := checkCapacity(resident.Matricula, 1); err != nil {
			e := err.Error()
			c.JSON(status(err), ResidentResponse{Error: &e})
			return
		}
	}

	if err := models.DB.Save(&updated).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), ResidentResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ResidentResponse{Data: &updated})
}

// @Summary		Delete resident
// @Description	Deletes a resident
// @Tags			Residents
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/residents/{id} [delete]
func DeleteResident(c *gin.Context) {
	if _, ok := residentFromURI(c); !ok {
		return
	}

	deleteResource[models.Resident](c)
}

func residentFromURI(c *gin.Context) (models.Resident, bool) {
	var resident models.Resident
	if !firstByID(c, &resident) {
		return models.Resident{}, false
	}

	if !auth.MatriculaAllowed(c, resident.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, ResidentResponse{Error: &e})
		return models.Resident{}, false
	}

	return resident, true
}

// checkCapacity verifies that adding n active residents to the condominium
// stays within its plan's capacity.
func checkCapacity(matricula string, n int64) error {
	condominium, err := models.CondominiumByMatricula(models.DB, matricula)
	if err != nil {
		return err
	}

	if condominium.PlanoContratado == "" {
		return nil
	}

	plan, err := models.PlanByCode(models.DB, condominium.PlanoContratado)
	if err != nil {
		return err
	}

	count, err := models.ActiveResidentCount(models.DB, matricula)
	if err != nil {
		return err
	}

	return plan.CanAssign(count + n)
}
