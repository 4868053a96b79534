package v1

import (
	"fmt"

	"github.com/condofacil/backend/internal/currency"
	"github.com/condofacil/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// PlanEditable represents all user configurable parameters.
type PlanEditable struct {
	Codigo       string `json:"codigo" example:"BASICO"`              // Uppercase plan code, immutable after creation
	Nome         string `json:"nome" example:"Plano Básico"`          // Display name
	Descricao    string `json:"descricao" example:"Até 30 moradores"` // Description
	Valor        string `json:"valor" example:"R$ 199,90"`            // Localized monthly price
	MaxMoradores *int64 `json:"maxMoradores" example:"30"`            // Resident capacity, omit for unlimited
}

// model returns the database resource for the editable fields.
func (editable PlanEditable) model() models.Plan {
	return models.Plan{
		Codigo:       editable.Codigo,
		Nome:         editable.Nome,
		Descricao:    editable.Descricao,
		Valor:        currency.Parse(editable.Valor),
		MaxMoradores: editable.MaxMoradores,
	}
}

func planEditable(model models.Plan) PlanEditable {
	return PlanEditable{
		Codigo:       model.Codigo,
		Nome:         model.Nome,
		Descricao:    model.Descricao,
		Valor:        currency.Format(model.Valor),
		MaxMoradores: model.MaxMoradores,
	}
}

type PlanLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/plans/BASICO"`
	Changes string `json:"changes" example:"https://example.com/api/v1/changelogs/plans/BASICO"`
}

// Plan is the API representation of a plan.
type Plan struct {
	models.Plan
	ValorFormatado string    `json:"valorFormatado" example:"R$ 199,90"` // Localized price
	Links          PlanLinks `json:"links"`
}

func newPlan(c *gin.Context, model models.Plan) Plan {
	url := requestURL(c)

	return Plan{
		Plan:           model,
		ValorFormatado: currency.Format(model.Valor),
		Links: PlanLinks{
			Self:    fmt.Sprintf("%s/v1/plans/%s", url, model.Codigo),
			Changes: fmt.Sprintf("%s/v1/changelogs/plans/%s", url, model.Codigo),
		},
	}
}

type PlanResponse struct {
	Data  *Plan   `json:"data"`  // The Plan data
	Error *string `json:"error"` // The error, if any occurred
}

type PlanListResponse struct {
	Data  []Plan  `json:"data"`  // List of Plans
	Error *string `json:"error"` // The error, if any occurred
}
