package v1

import (
	"net/http"

	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/httputil"
	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// RegisterIncomeRoutes registers the routes for income entries.
func RegisterIncomeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsIncomeList)
		r.GET("", GetIncomes)
		r.POST("", CreateIncome)
	}

	{
		r.OPTIONS("/:id", OptionsIncomeDetail)
		r.GET("/:id", GetIncome)
		r.DELETE("/:id", DeleteIncome)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Router			/v1/incomes [options]
func OptionsIncomeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/incomes/{id} [options]
func OptionsIncomeDetail(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Create income
// @Description	Records an income entry and adds its amount to the cached balance. When an entry with the same category, reference month and unit exists, the request is rejected with 409 unless confirmed is set.
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		201		{object}	IncomeResponse
// @Failure		400		{object}	IncomeResponse
// @Failure		403		{object}	IncomeResponse
// @Failure		409		{object}	IncomeResponse
// @Failure		500		{object}	IncomeResponse
// @Param			income	body		IncomeEditable	true	"Income"
// @Router			/v1/incomes [post]
func CreateIncome(c *gin.Context) {
	var editable IncomeEditable

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	if !auth.MatriculaAllowed(c, editable.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, IncomeResponse{Error: &e})
		return
	}

	income := editable.model()

	if !editable.Confirmed {
		existing, err := models.FindDuplicateIncome(models.DB, income)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), IncomeResponse{Error: &e})
			return
		}

		if existing != nil {
			e := errDuplicateEntry.Error()
			c.JSON(http.StatusConflict, IncomeResponse{Error: &e})
			return
		}
	}

	if err := models.CreateIncome(models.DB, &income); err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeResponse{Error: &e})
		return
	}

	data := newIncome(income)
	c.JSON(http.StatusCreated, IncomeResponse{Data: &data})
}

// @Summary		List incomes
// @Description	Returns the income entries of a condominium, newest payment first
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeListResponse
// @Failure		400	{object}	IncomeListResponse
// @Failure		403	{object}	IncomeListResponse
// @Router			/v1/incomes [get]
// @Param			matricula	query	string	true	"Condominium to list entries for"
// @Param			categoria	query	string	false	"Filter by category"
// @Param			month		query	string	false	"Filter by reference month, formatted YYYY-MM"
// @Param			unidade		query	string	false	"Filter by unit label"
// @Param			offset		query	uint	false	"The offset of the first entry returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of entries to return. Defaults to 50."
func GetIncomes(c *gin.Context) {
	var filter EntryQueryFilter
	_ = c.Bind(&filter)

	if !auth.MatriculaAllowed(c, filter.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, IncomeListResponse{Error: &e})
		return
	}

	q := models.DB.Model(&models.FinancialIncome{}).
		Where("matricula = ?", filter.Matricula).
		Order("payment_date DESC")

	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, IncomeListResponse{Error: &e})
			return
		}
		q = q.Where("reference_month = ?", month)
	}

	if filter.Unidade != "" {
		q = q.Where("unidade = ?", filter.Unidade)
	}

	q = q.Offset(int(filter.Offset)).Limit(limitOrDefault(filter.Limit))

	var incomes []models.FinancialIncome
	if err := q.Find(&incomes).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeListResponse{Error: &e})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeListResponse{Error: &e})
		return
	}

	apiResources := make([]Income, 0, len(incomes))
	for _, income := range incomes {
		apiResources = append(apiResources, newIncome(income))
	}

	c.JSON(http.StatusOK, IncomeListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limitOrDefault(filter.Limit),
		},
	})
}

// @Summary		Get income
// @Description	Returns a specific income entry
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeResponse
// @Failure		400	{object}	IncomeResponse
// @Failure		403	{object}	IncomeResponse
// @Failure		404	{object}	IncomeResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/incomes/{id} [get]
func GetIncome(c *gin.Context) {
	income, ok := incomeFromURI(c)
	if !ok {
		return
	}

	data := newIncome(income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &data})
}

// @Summary		Delete income
// @Description	Deletes an income entry, compensates the cached balance and recomputes it from the remaining entries
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/incomes/{id} [delete]
func DeleteIncome(c *gin.Context) {
	income, ok := incomeFromURI(c)
	if !ok {
		return
	}

	if err := models.DeleteIncome(models.DB, income); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func incomeFromURI(c *gin.Context) (models.FinancialIncome, bool) {
	var income models.FinancialIncome
	if !firstByID(c, &income) {
		return models.FinancialIncome{}, false
	}

	if !auth.MatriculaAllowed(c, income.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, IncomeResponse{Error: &e})
		return models.FinancialIncome{}, false
	}

	return income, true
}
