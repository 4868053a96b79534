package v1

import (
	"net/http"

	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/httputil"
	"github.com/condofacil/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterPlanRoutes registers the routes for plans.
//
// The catalog is readable by any session; writes are for platform admins.
func RegisterPlanRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsPlanList)
		r.GET("", GetPlans)
		r.POST("", auth.RequireRole(models.RoleAdmin), CreatePlan)
	}

	{
		r.OPTIONS("/:codigo", OptionsPlanDetail)
		r.GET("/:codigo", GetPlan)
		r.PATCH("/:codigo", auth.RequireRole(models.RoleAdmin), UpdatePlan)
		r.DELETE("/:codigo", auth.RequireRole(models.RoleAdmin), DeletePlan)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Plans
// @Success		204
// @Router			/v1/plans [options]
func OptionsPlanList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Plans
// @Success		204
// @Param			codigo	path	string	true	"Code of the plan"
// @Router			/v1/plans/{codigo} [options]
func OptionsPlanDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create plan
// @Description	Creates a new plan
// @Tags			Plans
// @Accept			json
// @Produce		json
// @Success		201		{object}	PlanResponse
// @Failure		400		{object}	PlanResponse
// @Failure		500		{object}	PlanResponse
// @Param			plan	body		PlanEditable	true	"Plan"
// @Router			/v1/plans [post]
func CreatePlan(c *gin.Context) {
	var editable PlanEditable

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), PlanResponse{Error: &e})
		return
	}

	plan := editable.model()
	if err := models.DB.Create(&plan).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), PlanResponse{Error: &e})
		return
	}

	data := newPlan(c, plan)
	c.JSON(http.StatusCreated, PlanResponse{Data: &data})
}

// @Summary		List plans
// @Description	Returns the plan catalog, ordered by code
// @Tags			Plans
// @Produce		json
// @Success		200	{object}	PlanListResponse
// @Failure		500	{object}	PlanListResponse
// @Router			/v1/plans [get]
func GetPlans(c *gin.Context) {
	var plans []models.Plan
	err := models.DB.Order("codigo ASC").Find(&plans).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PlanListResponse{Error: &e})
		return
	}

	apiResources := make([]Plan, 0, len(plans))
	for _, plan := range plans {
		apiResources = append(apiResources, newPlan(c, plan))
	}

	c.JSON(http.StatusOK, PlanListResponse{Data: apiResources})
}

// @Summary		Get plan
// @Description	Returns a specific plan
// @Tags			Plans
// @Produce		json
// @Success		200		{object}	PlanResponse
// @Failure		404		{object}	PlanResponse
// @Param			codigo	path		string	true	"Code of the plan"
// @Router			/v1/plans/{codigo} [get]
func GetPlan(c *gin.Context) {
	plan, ok := planFromURI(c)
	if !ok {
		return
	}

	data := newPlan(c, plan)
	c.JSON(http.StatusOK, PlanResponse{Data: &data})
}

// @Summary		Update plan
// @Description	Updates a plan. The code is immutable. Every changed field is recorded in the plan change log.
// @Tags			Plans
// @Accept			json
// @Produce		json
// @Success		200		{object}	PlanResponse
// @Failure		400		{object}	PlanResponse
// @Failure		404		{object}	PlanResponse
// @Param			codigo	path		string			true	"Code of the plan"
// @Param			plan	body		PlanEditable	true	"Plan"
// @Router			/v1/plans/{codigo} [patch]
func UpdatePlan(c *gin.Context) {
	plan, ok := planFromURI(c)
	if !ok {
		return
	}

	editable := planEditable(plan)
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), PlanResponse{Error: &e})
		return
	}

	if err := models.UpdatePlan(models.DB, &plan, editable.model(), auth.Actor(c)); err != nil {
		e := err.Error()
		c.JSON(status(err), PlanResponse{Error: &e})
		return
	}

	data := newPlan(c, plan)
	c.JSON(http.StatusOK, PlanResponse{Data: &data})
}

// @Summary		Delete plan
// @Description	Deletes a plan. Fails while condominiums are still subscribed to it.
// @Tags			Plans
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			codigo	path		string	true	"Code of the plan"
// @Router			/v1/plans/{codigo} [delete]
func DeletePlan(c *gin.Context) {
	plan, ok := planFromURI(c)
	if !ok {
		return
	}

	if err := models.DB.Unscoped().Delete(&plan).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func planFromURI(c *gin.Context) (models.Plan, bool) {
	var uri URICodigo
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, PlanResponse{Error: &e})
		return models.Plan{}, false
	}

	plan, err := models.PlanByCode(models.DB, uri.Codigo)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PlanResponse{Error: &e})
		return models.Plan{}, false
	}

	return plan, true
}
