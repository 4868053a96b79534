package v1

import (
	"net/http"

	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/currency"
	"github.com/condofacil/backend/internal/httputil"
	"github.com/condofacil/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterBalanceRoutes registers the routes for the cached balance.
func RegisterBalanceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:matricula", OptionsBalanceDetail)
	r.GET("/:matricula", GetBalance)
	r.PUT("/:matricula", auth.RequireRole(models.RoleAdmin, models.RoleManager), SetBalance)
	r.POST("/:matricula/recompute", auth.RequireRole(models.RoleAdmin, models.RoleManager), RecomputeBalance)
	r.GET("/:matricula/adjustments", GetAdjustments)
}

// BalanceWrite is the request body for the manual balance override.
type BalanceWrite struct {
	Amount string `json:"amount" example:"R$ 1.530,25"` // Localized amount string
}

// BalanceData is the API representation of a balance.
type BalanceData struct {
	models.Balance
	AmountFormatado string `json:"amountFormatado" example:"R$ 1.530,25"` // Localized amount
}

func newBalance(model models.Balance) BalanceData {
	return BalanceData{
		Balance:         model,
		AmountFormatado: currency.Format(model.Amount),
	}
}

type BalanceResponse struct {
	Data  *BalanceData `json:"data"`  // The Balance data
	Error *string      `json:"error"` // The error, if any occurred
}

type AdjustmentListResponse struct {
	Data  []models.BalanceAdjustment `json:"data"`  // List of BalanceAdjustments
	Error *string                    `json:"error"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Balances
// @Success		204
// @Param			matricula	path	string	true	"Matricula of the condominium"
// @Router			/v1/balances/{matricula} [options]
func OptionsBalanceDetail(c *gin.Context) {
	c.Header("allow", "GET, PUT")
	c.Status(http.StatusNoContent)
}

// @Summary		Get balance
// @Description	Returns the cached balance of a condominium. A zero balance row is created on first read.
// @Tags			Balances
// @Produce		json
// @Success		200			{object}	BalanceResponse
// @Failure		403			{object}	BalanceResponse
// @Failure		500			{object}	BalanceResponse
// @Param			matricula	path		string	true	"Matricula of the condominium"
// @Router			/v1/balances/{matricula} [get]
func GetBalance(c *gin.Context) {
	matricula, ok := balanceMatricula(c)
	if !ok {
		return
	}

	balance, err := models.GetBalance(models.DB, matricula)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceResponse{Error: &e})
		return
	}

	data := newBalance(balance)
	c.JSON(http.StatusOK, BalanceResponse{Data: &data})
}

// @Summary		Override balance
// @Description	Manually overrides the cached balance. An adjustment audit row recording the previous and new value is written first; its date becomes the floor for new income payment dates.
// @Tags			Balances
// @Accept			json
// @Produce		json
// @Success		200			{object}	BalanceResponse
// @Failure		400			{object}	BalanceResponse
// @Failure		403			{object}	BalanceResponse
// @Failure		500			{object}	BalanceResponse
// @Param			matricula	path		string			true	"Matricula of the condominium"
// @Param			balance		body		BalanceWrite	true	"Balance"
// @Router			/v1/balances/{matricula} [put]
func SetBalance(c *gin.Context) {
	matricula, ok := balanceMatricula(c)
	if !ok {
		return
	}

	var write BalanceWrite
	if err := httputil.BindData(c, &write); err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceResponse{Error: &e})
		return
	}

	balance, err := models.SetBalance(models.DB, matricula, currency.Parse(write.Amount), auth.Actor(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceResponse{Error: &e})
		return
	}

	data := newBalance(balance)
	c.JSON(http.StatusOK, BalanceResponse{Data: &data})
}

// @Summary		Recompute balance
// @Description	Recomputes the cached balance from the income and expense entries and returns the fresh value
// @Tags			Balances
// @Produce		json
// @Success		200			{object}	BalanceResponse
// @Failure		403			{object}	BalanceResponse
// @Failure		500			{object}	BalanceResponse
// @Param			matricula	path		string	true	"Matricula of the condominium"
// @Router			/v1/balances/{matricula}/recompute [post]
func RecomputeBalance(c *gin.Context) {
	matricula, ok := balanceMatricula(c)
	if !ok {
		return
	}

	balance, err := models.RecomputeBalance(models.DB, matricula)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceResponse{Error: &e})
		return
	}

	data := newBalance(balance)
	c.JSON(http.StatusOK, BalanceResponse{Data: &data})
}

// @Summary		List balance adjustments
// @Description	Returns the manual balance adjustments of a condominium, newest first
// @Tags			Balances
// @Produce		json
// @Success		200			{object}	AdjustmentListResponse
// @Failure		403			{object}	AdjustmentListResponse
// @Failure		500			{object}	AdjustmentListResponse
// @Param			matricula	path		string	true	"Matricula of the condominium"
// @Param			offset		query		uint	false	"The offset of the first adjustment returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of adjustments to return. Defaults to 50."
// @Router			/v1/balances/{matricula}/adjustments [get]
func GetAdjustments(c *gin.Context) {
	matricula, ok := balanceMatricula(c)
	if !ok {
		return
	}

	var filter ChangeQueryFilter
	_ = c.Bind(&filter)

	adjustments, err := models.Adjustments(models.DB, matricula, filter.Offset, limitOrDefault(filter.Limit))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AdjustmentListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AdjustmentListResponse{Data: adjustments})
}

func balanceMatricula(c *gin.Context) (string, bool) {
	var uri URIMatricula
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BalanceResponse{Error: &e})
		return "", false
	}

	if !auth.MatriculaAllowed(c, uri.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, BalanceResponse{Error: &e})
		return "", false
	}

	return uri.Matricula, true
}
