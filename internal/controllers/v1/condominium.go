package v1

import (
	"net/http"

	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/httputil"
	"github.com/condofacil/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RegisterCondominiumRoutes registers the routes for condominiums.
//
// Registration is a public signup endpoint; everything else requires a
// session.
func RegisterCondominiumRoutes(public, protected *gin.RouterGroup) {
	{
		public.OPTIONS("", OptionsCondominiumList)
		public.POST("", CreateCondominium)
	}

	{
		protected.GET("", auth.RequireRole(models.RoleAdmin), GetCondominiums)
		protected.OPTIONS("/:matricula", OptionsCondominiumDetail)
		protected.GET("/:matricula", GetCondominium)
		protected.PATCH("/:matricula", auth.RequireRole(models.RoleAdmin, models.RoleManager), UpdateCondominium)
		protected.POST("/:matricula/active", auth.RequireRole(models.RoleAdmin, models.RoleManager), SetCondominiumActive)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Condominiums
// @Success		204
// @Router			/v1/condominiums [options]
func OptionsCondominiumList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Condominiums
// @Success		204
// @Param			matricula	path	string	true	"Matricula of the condominium"
// @Router			/v1/condominiums/{matricula} [options]
func OptionsCondominiumDetail(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Register condominium
// @Description	Registers a new condominium and its manager login. The matricula is derived from the postal code and the building number.
// @Tags			Condominiums
// @Accept			json
// @Produce		json
// @Success		201			{object}	CondominiumResponse
// @Failure		400			{object}	CondominiumResponse
// @Failure		500			{object}	CondominiumResponse
// @Param			condominium	body		CondominiumEditable	true	"Condominium"
// @Router			/v1/condominiums [post]
func CreateCondominium(c *gin.Context) {
	var editable CondominiumEditable

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), CondominiumResponse{Error: &e})
		return
	}

	if editable.Password == "" || editable.Password != editable.PasswordConfirmation {
		e := models.ErrPasswordConfirmation.Error()
		c.JSON(http.StatusBadRequest, CondominiumResponse{Error: &e})
		return
	}

	if err := models.ValidatePixKey(editable.ChavePix); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CondominiumResponse{Error: &e})
		return
	}

	condominium := editable.model()

	if condominium.PlanoContratado != "" {
		plan, err := models.PlanByCode(models.DB, condominium.PlanoContratado)
		if err != nil {
			e := models.ErrPlanUnknown.Error()
			c.JSON(http.StatusBadRequest, CondominiumResponse{Error: &e})
			return
		}

		condominium.ValorPlano = plan.Valor
	}

	if err := models.DB.Create(&condominium).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), CondominiumResponse{Error: &e})
		return
	}

	user := models.User{
		Email:     condominium.Email,
		Nome:      condominium.Nome,
		Role:      models.RoleManager,
		Matricula: condominium.Matricula,
	}

	if err := user.SetPassword(editable.Password); err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, CondominiumResponse{Error: &e})
		return
	}

	if err := models.DB.Create(&user).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), CondominiumResponse{Error: &e})
		return
	}

	data := newCondominium(c, condominium)
	c.JSON(http.StatusCreated, CondominiumResponse{Data: &data})
}

// @Summary		List condominiums
// @Description	Returns a list of condominiums
// @Tags			Condominiums
// @Produce		json
// @Success		200	{object}	CondominiumListResponse
// @Failure		500	{object}	CondominiumListResponse
// @Router			/v1/condominiums [get]
// @Param			cidade	query	string	false	"Filter by city"
// @Param			ativo	query	string	false	"Filter by lifecycle flag"
// @Param			search	query	string	false	"Search for this text in name and email"
// @Param			offset	query	uint	false	"The offset of the first Condominium returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Condominiums to return. Defaults to 50."
func GetCondominiums(c *gin.Context) {
	var filter CondominiumQueryFilter
	_ = c.Bind(&filter)

	q := models.DB.Model(&models.Condominium{}).Order("matricula ASC")

	if filter.Cidade != "" {
		q = q.Where("cidade = ?", filter.Cidade)
	}

	if filter.Ativo != "" {
		if filter.Ativo != "true" && filter.Ativo != "false" {
			e := errActiveQueryInvalid.Error()
			c.JSON(http.StatusBadRequest, CondominiumListResponse{Error: &e})
			return
		}
		q = q.Where("ativo = ?", filter.Ativo == "true")
	}

	if filter.Search != "" {
		q = q.Where("nome LIKE ? OR email LIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	q = q.Offset(int(filter.Offset)).Limit(limitOrDefault(filter.Limit))

	var condominiums []models.Condominium
	if err := q.Find(&condominiums).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), CondominiumListResponse{Error: &e})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), CondominiumListResponse{Error: &e})
		return
	}

	apiResources := make([]Condominium, 0, len(condominiums))
	for _, condominium := range condominiums {
		apiResources = append(apiResources, newCondominium(c, condominium))
	}

	c.JSON(http.StatusOK, CondominiumListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limitOrDefault(filter.Limit),
		},
	})
}

// @Summary		Get condominium
// @Description	Returns a specific condominium
// @Tags			Condominiums
// @Produce		json
// @Success		200			{object}	CondominiumResponse
// @Failure		400			{object}	CondominiumResponse
// @Failure		404			{object}	CondominiumResponse
// @Param			matricula	path		string	true	"Matricula of the condominium"
// @Router			/v1/condominiums/{matricula} [get]
func GetCondominium(c *gin.Context) {
	condominium, ok := condominiumFromURI(c)
	if !ok {
		return
	}

	data := newCondominium(c, condominium)
	c.JSON(http.StatusOK, CondominiumResponse{Data: &data})
}

// @Summary		Update condominium
// @Description	Updates a condominium. Only values to be updated need to be specified. Postal code and building number are immutable. A plan change runs the capacity guard before anything is persisted.
// @Tags			Condominiums
// @Accept			json
// @Produce		json
// @Success		200			{object}	CondominiumResponse
// @Failure		400			{object}	CondominiumResponse
// @Failure		404			{object}	CondominiumResponse
// @Param			matricula	path		string				true	"Matricula of the condominium"
// @Param			condominium	body		CondominiumEditable	true	"Condominium"
// @Router			/v1/condominiums/{matricula} [patch]
func UpdateCondominium(c *gin.Context) {
	condominium, ok := condominiumFromURI(c)
	if !ok {
		return
	}

	// Binding into the current state gives merge semantics: fields the
	// client does not send keep their value.
	editable := condominiumEditable(condominium)
	editable.Password = ""
	editable.PasswordConfirmation = ""
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), CondominiumResponse{Error: &e})
		return
	}

	if editable.Password != "" || editable.PasswordConfirmation != "" {
		if editable.Password != editable.PasswordConfirmation {
			e := models.ErrPasswordConfirmation.Error()
			c.JSON(http.StatusBadRequest, CondominiumResponse{Error: &e})
			return
		}
	}

	updated := editable.model()
	updated.Ativo = condominium.Ativo
	updated.ValorPlano = condominium.ValorPlano

	if err := models.UpdateCondominium(models.DB, &condominium, updated, auth.Actor(c)); err != nil {
		e := err.Error()
		c.JSON(status(err), CondominiumResponse{Error: &e})
		return
	}

	if editable.Password != "" {
		rotateManagerPassword(condominium, editable.Password)
	}

	data := newCondominium(c, condominium)
	c.JSON(http.StatusOK, CondominiumResponse{Data: &data})
}

// @Summary		Activate or deactivate condominium
// @Description	Flips the lifecycle flag. Deactivation is the subscription-cancellation path and also deactivates all residents, best-effort.
// @Tags			Condominiums
// @Accept			json
// @Produce		json
// @Success		200			{object}	CondominiumResponse
// @Failure		400			{object}	CondominiumResponse
// @Failure		404			{object}	CondominiumResponse
// @Param			matricula	path		string			true	"Matricula of the condominium"
// @Param			toggle		body		ActiveToggle	true	"Lifecycle flag"
// @Router			/v1/condominiums/{matricula}/active [post]
func SetCondominiumActive(c *gin.Context) {
	condominium, ok := condominiumFromURI(c)
	if !ok {
		return
	}

	var toggle ActiveToggle
	if err := httputil.BindData(c, &toggle); err != nil {
		e := err.Error()
		c.JSON(status(err), CondominiumResponse{Error: &e})
		return
	}

	if err := models.SetActive(models.DB, &condominium, toggle.Ativo, auth.Actor(c)); err != nil {
		e := err.Error()
		c.JSON(status(err), CondominiumResponse{Error: &e})
		return
	}

	data := newCondominium(c, condominium)
	c.JSON(http.StatusOK, CondominiumResponse{Data: &data})
}

// condominiumFromURI loads the condominium from the URI parameter and
// enforces tenant scoping.
func condominiumFromURI(c *gin.Context) (models.Condominium, bool) {
	var uri URIMatricula
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CondominiumResponse{Error: &e})
		return models.Condominium{}, false
	}

	if !auth.MatriculaAllowed(c, uri.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, CondominiumResponse{Error: &e})
		return models.Condominium{}, false
	}

	condominium, err := models.CondominiumByMatricula(models.DB, uri.Matricula)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CondominiumResponse{Error: &e})
		return models.Condominium{}, false
	}

	return condominium, true
}

// rotateManagerPassword rewrites the manager login hash. Best-effort, the
// condominium update has already been committed.
func rotateManagerPassword(condominium models.Condominium, password string) {
	user, err := models.UserByEmail(models.DB, condominium.Email)
	if err == nil {
		if err = user.SetPassword(password); err == nil {
			err = models.DB.Save(&user).Error
		}
	}

	if err != nil {
		log.Warn().Err(err).Str("matricula", condominium.Matricula).Msg("manager password rotation failed")
	}
}
