package v1

import (
	"fmt"

	"github.com/condofacil/backend/internal/currency"
	"github.com/condofacil/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// CondominiumEditable represents all user configurable parameters.
//
// Monetary amounts are sent the way the frontend renders them, as
// localized display strings.
type CondominiumEditable struct {
	Nome            string              `json:"nome" example:"Residencial das Flores"`
	CEP             string              `json:"cep" example:"12345678"`    // Immutable after registration
	Numero          string              `json:"numero" example:"100"`      // Immutable after registration
	Endereco        string              `json:"endereco" example:"Rua das Flores"`
	Bairro          string              `json:"bairro" example:"Centro"`
	Cidade          string              `json:"cidade" example:"São Paulo"`
	Estado          string              `json:"estado" example:"SP"`
	Email           string              `json:"email" example:"sindico@example.com"`
	Telefone        string              `json:"telefone" example:"+5511999990000"`
	CNPJ            string              `json:"cnpj" example:"12345678000190"`
	ChavePix        string              `json:"chavePix" example:"12345678000190"`
	PlanoContratado string              `json:"planoContratado" example:"BASICO"`
	Desconto        string              `json:"desconto" example:"R$ 50,00"` // Localized amount string
	TipoDocumento   models.DocumentType `json:"tipoDocumento" example:"recibo" default:"recibo"`

	// Required on registration; optional on update, where both fields
	// must be sent together to change the password.
	Password             string `json:"password,omitempty" example:"hunter2hunter2"`
	PasswordConfirmation string `json:"passwordConfirmation,omitempty" example:"hunter2hunter2"`
}

// model returns the database resource for the editable fields.
func (editable CondominiumEditable) model() models.Condominium {
	return models.Condominium{
		Nome:            editable.Nome,
		CEP:             editable.CEP,
		Numero:          editable.Numero,
		Endereco:        editable.Endereco,
		Bairro:          editable.Bairro,
		Cidade:          editable.Cidade,
		Estado:          editable.Estado,
		Email:           editable.Email,
		Telefone:        editable.Telefone,
		CNPJ:            editable.CNPJ,
		ChavePix:        editable.ChavePix,
		PlanoContratado: editable.PlanoContratado,
		Desconto:        currency.Parse(editable.Desconto),
		TipoDocumento:   editable.TipoDocumento,
	}
}

// editable returns the API representation of a stored condominium, used to
// merge partial updates into the current state.
func condominiumEditable(model models.Condominium) CondominiumEditable {
	return CondominiumEditable{
		Nome:            model.Nome,
		CEP:             model.CEP,
		Numero:          model.Numero,
		Endereco:        model.Endereco,
		Bairro:          model.Bairro,
		Cidade:          model.Cidade,
		Estado:          model.Estado,
		Email:           model.Email,
		Telefone:        model.Telefone,
		CNPJ:            model.CNPJ,
		ChavePix:        model.ChavePix,
		PlanoContratado: model.PlanoContratado,
		Desconto:        currency.Format(model.Desconto),
		TipoDocumento:   model.TipoDocumento,
	}
}

type CondominiumLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/condominiums/12345678100"`
	Residents  string `json:"residents" example:"https://example.com/api/v1/residents?matricula=12345678100"`
	Balance    string `json:"balance" example:"https://example.com/api/v1/balances/12345678100"`
	Changes    string `json:"changes" example:"https://example.com/api/v1/changelogs/condominiums/12345678100"`
}

// Condominium is the API representation of a condominium.
type Condominium struct {
	models.Condominium
	ValorPlanoFormatado  string           `json:"valorPlanoFormatado" example:"R$ 199,90"`  // Localized plan price
	ValorMensalFormatado string           `json:"valorMensalFormatado" example:"R$ 149,90"` // Localized monthly value
	Links                CondominiumLinks `json:"links"`
}

func newCondominium(c *gin.Context, model models.Condominium) Condominium {
	url := requestURL(c)

	return Condominium{
		Condominium:          model,
		ValorPlanoFormatado:  currency.Format(model.ValorPlano),
		ValorMensalFormatado: currency.Format(model.ValorMensal),
		Links: CondominiumLinks{
			Self:      fmt.Sprintf("%s/v1/condominiums/%s", url, model.Matricula),
			Residents: fmt.Sprintf("%s/v1/residents?matricula=%s", url, model.Matricula),
			Balance:   fmt.Sprintf("%s/v1/balances/%s", url, model.Matricula),
			Changes:   fmt.Sprintf("%s/v1/changelogs/condominiums/%s", url, model.Matricula),
		},
	}
}

type CondominiumResponse struct {
	Data  *Condominium `json:"data"`  // The Condominium data
	Error *string      `json:"error"` // The error, if any occurred
}

type CondominiumListResponse struct {
	Data       []Condominium `json:"data"`       // List of Condominiums
	Error      *string       `json:"error"`      // The error, if any occurred
	Pagination *Pagination   `json:"pagination"` // Pagination information
}

type CondominiumQueryFilter struct {
	Cidade string `form:"cidade" filterField:"false"` // Filter by city
	Ativo  string `form:"ativo" filterField:"false"`  // Filter by lifecycle flag ("true" or "false")
	Search string `form:"search" filterField:"false"` // Search in name and email
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Condominium returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Condominiums to return. Defaults to 50.
}

// ActiveToggle is the request body for the lifecycle endpoint.
type ActiveToggle struct {
	Ativo bool `json:"ativo" example:"false"`
}
