package v1

import (
	"net/http"

	"github.com/condofacil/backend/internal/auth"
	"github.com/condofacil/backend/internal/currency"
	"github.com/condofacil/backend/internal/functions"
	"github.com/condofacil/backend/internal/httputil"
	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// RegisterReportRoutes registers the routes that proxy to the hosted
// functions.
func (co Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/accounting", OptionsReport)
	r.POST("/accounting", auth.RequireRole(models.RoleAdmin, models.RoleManager), co.SendAccountingReport)
	r.OPTIONS("/historical-data", OptionsReport)
	r.POST("/historical-data", auth.RequireRole(models.RoleAdmin, models.RoleManager), co.RequestHistoricalData)
}

// AccountingReportRequest is the request body for the accounting report
// email.
type AccountingReportRequest struct {
	Matricula string      `json:"matricula" example:"12345678100"`
	Month     types.Month `json:"month" example:"2024-07"` // Reference month to report on
}

// HistoricalDataRequest is the request body for the historical data export.
type HistoricalDataRequest struct {
	Matricula string `json:"matricula" example:"12345678100"`
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/accounting [options]
func OptionsReport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Send accounting report
// @Description	Collects the entries of a reference month and asks the hosted function to email the bookkeeping to the manager
// @Tags			Reports
// @Accept			json
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		403		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		502		{object}	httpError
// @Param			report	body		AccountingReportRequest	true	"Report"
// @Router			/v1/reports/accounting [post]
func (co Controller) SendAccountingReport(c *gin.Context) {
	var request AccountingReportRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if !auth.MatriculaAllowed(c, request.Matricula) {
		c.JSON(http.StatusForbidden, httpError{Error: errMatriculaForbidden.Error()})
		return
	}

	condominium, err := models.CondominiumByMatricula(models.DB, request.Matricula)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var incomes []models.FinancialIncome
	err = models.DB.
		Where("matricula = ? AND reference_month = ?", request.Matricula, request.Month).
		Order("payment_date ASC").
		Find(&incomes).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var expenses []models.FinancialExpense
	err = models.DB.
		Where("matricula = ? AND reference_month = ?", request.Matricula, request.Month).
		Order("due_date ASC").
		Find(&expenses).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	balance, err := models.GetBalance(models.DB, request.Matricula)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	report := functions.AccountingReport{
		Matricula:      request.Matricula,
		Email:          condominium.Email,
		ReferenceMonth: request.Month,
		Incomes:        make([]functions.ReportEntry, 0, len(incomes)),
		Expenses:       make([]functions.ReportEntry, 0, len(expenses)),
		Balance:        currency.Format(balance.Amount),
	}

	for _, income := range incomes {
		report.Incomes = append(report.Incomes, functions.ReportEntry{
			Categoria: string(income.Categoria),
			Valor:     currency.Format(income.Valor),
			Unidade:   income.Unidade,
			Data:      income.PaymentDate.Format("2006-01-02"),
		})
	}

	for _, expense := range expenses {
		report.Expenses = append(report.Expenses, functions.ReportEntry{
			Categoria: string(expense.Categoria),
			Valor:     currency.Format(expense.Valor),
			Unidade:   expense.Unidade,
			Data:      expense.DueDate.Format("2006-01-02"),
		})
	}

	if err := co.Functions.SendAccountingReport(c.Request.Context(), report); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Request historical data
// @Description	Queues an export of the condominium's historical records, delivered by email
// @Tags			Reports
// @Accept			json
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		403		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		502		{object}	httpError
// @Param			request	body		HistoricalDataRequest	true	"Request"
// @Router			/v1/reports/historical-data [post]
func (co Controller) RequestHistoricalData(c *gin.Context) {
	var request HistoricalDataRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if !auth.MatriculaAllowed(c, request.Matricula) {
		c.JSON(http.StatusForbidden, httpError{Error: errMatriculaForbidden.Error()})
		return
	}

	condominium, err := models.CondominiumByMatricula(models.DB, request.Matricula)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := co.Functions.RequestHistoricalData(c.Request.Context(), request.Matricula, condominium.Email); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
