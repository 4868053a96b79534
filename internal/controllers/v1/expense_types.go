package v1

import (
	"time"

	"github.com/condofacil/backend/internal/currency"
	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/internal/types"
)

// ExpenseEditable represents all user configurable parameters.
type ExpenseEditable struct {
	Matricula      string                 `json:"matricula" example:"12345678100"`
	Categoria      models.ExpenseCategory `json:"categoria" example:"limpeza"`
	Valor          string                 `json:"valor" example:"R$ 250,00"` // Localized amount string
	ReferenceMonth types.Month            `json:"referenceMonth" example:"2024-07"`
	DueDate        time.Time              `json:"dueDate" example:"2024-07-10T00:00:00Z"`
	PaymentDate    *time.Time             `json:"paymentDate" example:"2024-07-08T00:00:00Z"` // Omit while the expense is unpaid
	Unidade        string                 `json:"unidade" example:""`
	Observacoes    string                 `json:"observacoes" example:""`

	// Confirmed skips the duplicate check. The frontend sets it after the
	// user acknowledged the duplicate warning.
	Confirmed bool `json:"confirmed" example:"false"`
}

// model returns the database resource for the editable fields.
func (editable ExpenseEditable) model() models.FinancialExpense {
	return models.FinancialExpense{
		Matricula:      editable.Matricula,
		Categoria:      editable.Categoria,
		Valor:          currency.Parse(editable.Valor),
		ReferenceMonth: editable.ReferenceMonth,
		DueDate:        editable.DueDate,
		PaymentDate:    editable.PaymentDate,
		Unidade:        editable.Unidade,
		Observacoes:    editable.Observacoes,
	}
}

// Expense is the API representation of an expense entry.
type Expense struct {
	models.FinancialExpense
	ValorFormatado string `json:"valorFormatado" example:"R$ 250,00"` // Localized amount
}

func newExpense(model models.FinancialExpense) Expense {
	return Expense{
		FinancialExpense: model,
		ValorFormatado:   currency.Format(model.Valor),
	}
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`  // The Expense data
	Error *string  `json:"error"` // The error, if any occurred
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`       // List of Expenses
	Error      *string     `json:"error"`      // The error, if any occurred
	Pagination *Pagination `json:"pagination"` // Pagination information
}
