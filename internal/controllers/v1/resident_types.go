package v1

import (
	"github.com/condofacil/backend/internal/models"
)

// ResidentEditable represents all user configurable parameters.
type ResidentEditable struct {
	Matricula string `json:"matricula" example:"12345678100"` // Condominium the resident belongs to
	Nome      string `json:"nome" example:"Maria da Silva"`
	Email     string `json:"email" example:"maria@example.com"`
	Unidade   string `json:"unidade" example:"Apto 42"`
	CPF       string `json:"cpf" example:"12345678901"`
	Telefone  string `json:"telefone" example:"+5511988887777"`
	Active    *bool  `json:"active" example:"true"` // Omit to keep the current value
}

// model returns the database resource for the editable fields.
func (editable ResidentEditable) model() models.Resident {
	active := true
	if editable.Active != nil {
		active = *editable.Active
	}

	return models.Resident{
		Matricula: editable.Matricula,
		Nome:      editable.Nome,
		Email:     editable.Email,
		Unidade:   editable.Unidade,
		CPF:       editable.CPF,
		Telefone:  editable.Telefone,
		Active:    active,
	}
}

func residentEditable(model models.Resident) ResidentEditable {
	active := model.Active

	return ResidentEditable{
		Matricula: model.Matricula,
		Nome:      model.Nome,
		Email:     model.Email,
		Unidade:   model.Unidade,
		CPF:       model.CPF,
		Telefone:  model.Telefone,
		Active:    &active,
	}
}

type ResidentResponse struct {
	Data  *models.Resident `json:"data"`  // The Resident data
	Error *string          `json:"error"` // The error, if any occurred
}

type ResidentListResponse struct {
	Data       []models.Resident `json:"data"`       // List of Residents
	Error      *string           `json:"error"`      // The error, if any occurred
	Pagination *Pagination       `json:"pagination"` // Pagination information
}

type ResidentQueryFilter struct {
	Matricula string `form:"matricula"` // Condominium to list residents for
	Unidade   string `form:"unidade"`   // Filter by unit label
	Active    string `form:"active"`    // Filter by active flag ("true" or "false")
	Search    string `form:"search"`    // Search in name and email
	Offset    uint   `form:"offset"`    // The offset of the first Resident returned. Defaults to 0.
	Limit     int    `form:"limit"`     // Maximum number of Residents to return. Defaults to 50.
}
