package v1

import (
	"net/http"

	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/httputil"
	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// RegisterExpenseRoutes registers the routes for expense entries.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsExpenseList)
		r.GET("", GetExpenses)
		r.POST("", CreateExpense)
	}

	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.GET("/:id", GetExpense)
		r.DELETE("/:id", DeleteExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Create expense
// @Description	Records an expense entry and subtracts its amount from the cached balance. When an entry with the same category, reference month and unit exists, the request is rejected with 409 unless confirmed is set.
// @Tags			Expenses
// @Accept			json
// @Produce		json
// @Success		201		{object}	ExpenseResponse
// @Failure		400		{object}	ExpenseResponse
// @Failure		403		{object}	ExpenseResponse
// @Failure		409		{object}	ExpenseResponse
// @Failure		500		{object}	ExpenseResponse
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses [post]
func CreateExpense(c *gin.Context) {
	var editable ExpenseEditable

	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	if !auth.MatriculaAllowed(c, editable.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, ExpenseResponse{Error: &e})
		return
	}

	expense := editable.model()

	if !editable.Confirmed {
		existing, err := models.FindDuplicateExpense(models.DB, expense)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), ExpenseResponse{Error: &e})
			return
		}

		if existing != nil {
			e := errDuplicateEntry.Error()
			c.JSON(http.StatusConflict, ExpenseResponse{Error: &e})
			return
		}
	}

	if err := models.CreateExpense(models.DB, &expense); err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	data := newExpense(expense)
	c.JSON(http.StatusCreated, ExpenseResponse{Data: &data})
}

// @Summary		List expenses
// @Description	Returns the expense entries of a condominium, newest due date first
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseListResponse
// @Failure		400	{object}	ExpenseListResponse
// @Failure		403	{object}	ExpenseListResponse
// @Router			/v1/expenses [get]
// @Param			matricula	query	string	true	"Condominium to list entries for"
// @Param			categoria	query	string	false	"Filter by category"
// @Param			month		query	string	false	"Filter by reference month, formatted YYYY-MM"
// @Param			unidade		query	string	false	"Filter by unit label"
// @Param			offset		query	uint	false	"The offset of the first entry returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of entries to return. Defaults to 50."
func GetExpenses(c *gin.Context) {
	var filter EntryQueryFilter
	_ = c.Bind(&filter)

	if !auth.MatriculaAllowed(c, filter.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, ExpenseListResponse{Error: &e})
		return
	}

	q := models.DB.Model(&models.FinancialExpense{}).
		Where("matricula = ?", filter.Matricula).
		Order("due_date DESC")

	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, ExpenseListResponse{Error: &e})
			return
		}
		q = q.Where("reference_month = ?", month)
	}

	if filter.Unidade != "" {
		q = q.Where("unidade = ?", filter.Unidade)
	}

	q = q.Offset(int(filter.Offset)).Limit(limitOrDefault(filter.Limit))

	var expenses []models.FinancialExpense
	if err := q.Find(&expenses).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseListResponse{Error: &e})
		return
	}

	var count int64
	if err := q.Limit(-1).Offset(-1).Count(&count).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseListResponse{Error: &e})
		return
	}

	apiResources := make([]Expense, 0, len(expenses))
	for _, expense := range expenses {
		apiResources = append(apiResources, newExpense(expense))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limitOrDefault(filter.Limit),
		},
	})
}

// @Summary		Get expense
// @Description	Returns a specific expense entry
// @Tags			Expenses
// @Produce		json
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	ExpenseResponse
// @Failure		403	{object}	ExpenseResponse
// @Failure		404	{object}	ExpenseResponse
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [get]
func GetExpense(c *gin.Context) {
	expense, ok := expenseFromURI(c)
	if !ok {
		return
	}

	data := newExpense(expense)
	c.JSON(http.StatusOK, ExpenseResponse{Data: &data})
}

// @Summary		Delete expense
// @Description	Deletes an expense entry, compensates the cached balance and recomputes it from the remaining entries
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	expense, ok := expenseFromURI(c)
	if !ok {
		return
	}

	if err := models.DeleteExpense(models.DB, expense); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func expenseFromURI(c *gin.Context) (models.FinancialExpense, bool) {
	var expense models.FinancialExpense
	if !firstByID(c, &expense) {
		return models.FinancialExpense{}, false
	}

	if !auth.MatriculaAllowed(c, expense.Matricula) {
		e := errMatriculaForbidden.Error()
		c.JSON(http.StatusForbidden, ExpenseResponse{Error: &e})
		return models.FinancialExpense{}, false
	}

	return expense, true
}
