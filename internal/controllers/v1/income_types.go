package v1

import (
	"time"

	"github.com/condofacil/backend/internal/currency"
	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/internal/types"
)

// IncomeEditable represents all user configurable parameters.
type IncomeEditable struct {
	Matricula      string                `json:"matricula" example:"12345678100"`
	Categoria      models.IncomeCategory `json:"categoria" example:"taxaCondominio"`
	Valor          string                `json:"valor" example:"R$ 350,00"` // Localized amount string
	ReferenceMonth types.Month           `json:"referenceMonth" example:"2024-07"`
	PaymentDate    time.Time             `json:"paymentDate" example:"2024-07-05T00:00:00Z"`
	Unidade        string                `json:"unidade" example:"Apto 42"`
	Observacoes    string                `json:"observacoes" example:""`

	// Confirmed skips the duplicate check. The frontend sets it after the
	// user acknowledged the duplicate warning.
	Confirmed bool `json:"confirmed" example:"false"`
}

// model returns the database resource for the editable fields.
func (editable IncomeEditable) model() models.FinancialIncome {
	return models.FinancialIncome{
		Matricula:      editable.Matricula,
		Categoria:      editable.Categoria,
		Valor:          currency.Parse(editable.Valor),
		ReferenceMonth: editable.ReferenceMonth,
		PaymentDate:    editable.PaymentDate,
		Unidade:        editable.Unidade,
		Observacoes:    editable.Observacoes,
	}
}

// Income is the API representation of an income entry.
type Income struct {
	models.FinancialIncome
	ValorFormatado string `json:"valorFormatado" example:"R$ 350,00"` // Localized amount
}

func newIncome(model models.FinancialIncome) Income {
	return Income{
		FinancialIncome: model,
		ValorFormatado:  currency.Format(model.Valor),
	}
}

type IncomeResponse struct {
	Data  *Income `json:"data"`  // The Income data
	Error *string `json:"error"` // The error, if any occurred
}

type IncomeListResponse struct {
	Data       []Income    `json:"data"`       // List of Incomes
	Error      *string     `json:"error"`      // The error, if any occurred
	Pagination *Pagination `json:"pagination"` // Pagination information
}

type EntryQueryFilter struct {
	Matricula string `form:"matricula"` // Condominium to list entries for
	Categoria string `form:"categoria"` // Filter by category
	Month     string `form:"month"`     // Filter by reference month, formatted YYYY-MM
	Unidade   string `form:"unidade"`   // Filter by unit label
	Offset    uint   `form:"offset"`    // The offset of the first entry returned. Defaults to 0.
	Limit     int    `form:"limit"`     // Maximum number of entries to return. Defaults to 50.
}
