package v1

import (
	"net/http"

	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/httputil"
	"github.com/condofacil/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterChangelogRoutes registers the read-only routes for the audit
// change logs. The logs are append-only; there are no write endpoints.
func RegisterChangelogRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/condominiums/:matricula", OptionsChangelog)
	r.GET("/condominiums/:matricula", GetCondominiumChanges)
	r.OPTIONS("/plans/:codigo", OptionsChangelog)
	r.GET("/plans/:codigo", GetPlanChanges)
}

type ChangeQueryFilter struct {
	Offset uint `form:"offset"` // The offset of the first row returned. Defaults to 0.
	Limit  int  `form:"limit"`  // Maximum number of rows to return. Defaults to 50.
}

type CondominiumChangeListResponse struct {
	Data  []models.CondominiumChangeLog `json:"data"`  // List of change log rows
	Error *string                       `json:"error"` // The error, if any occurred
}

type PlanChangeListResponse struct {
	Data  []models.PlanChangeLog `json:"data"`  // List of change log rows
	Error *string                `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Changelogs
// @Success		204
// @Router			/v1/changelogs/condominiums/{matricula} [options]
func OptionsChangelog(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		List condominium changes
// @Description	Returns the audit rows for a condominium, newest first. One row is written per changed field.
// @Tags			Changelogs
// @Produce		json
// @Success		200			{object}	CondominiumChangeListResponse
// @Failure		403			{object}	CondominiumChangeListResponse
// @Failure		500			{object}	CondominiumChangeListResponse
// @Param			matricula	path		string	true	"Matricula of the condominium"
// @Param			offset		query		uint	false	"The offset of the first row returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of rows to return. Defaults to 50."
// @Router			/v1/changelogs/condominiums/{matricula} [get]
func GetCondominiumChanges(c *gin.Context) {
	var uri URIMatricula
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CondominiumChangeListResponse{Error: &e})
		return
	}

	if !auth.MatriculaAllowed(c, uri.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, CondominiumChangeListResponse{Error: &e})
		return
	}

	var filter ChangeQueryFilter
	_ = c.Bind(&filter)

	entries, err := models.CondominiumChanges(models.DB, uri.Matricula, filter.Offset, limitOrDefault(filter.Limit))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CondominiumChangeListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, CondominiumChangeListResponse{Data: entries})
}

// @Summary		List plan changes
// @Description	Returns the audit rows for a plan, newest first
// @Tags			Changelogs
// @Produce		json
// @Success		200		{object}	PlanChangeListResponse
// @Failure		400		{object}	PlanChangeListResponse
// @Param			codigo	path		string	true	"Code of the plan"
// @Param			offset	query		uint	false	"The offset of the first row returned. Defaults to 0."
// @Param			limit	query		int		false	"Maximum number of rows to return. Defaults to 50."
// @Router			/v1/changelogs/plans/{codigo} [get]
func GetPlanChanges(c *gin.Context) {
	var uri URICodigo
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, PlanChangeListResponse{Error: &e})
		return
	}

	var filter ChangeQueryFilter
	_ = c.Bind(&filter)

	entries, err := models.PlanChanges(models.DB, uri.Codigo, filter.Offset, limitOrDefault(filter.Limit))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PlanChangeListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, PlanChangeListResponse{Data: entries})
}
