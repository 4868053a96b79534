package models

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DocumentType selects the billing document a condominium receives.
type DocumentType string

const (
	DocumentTypeNotaFiscal DocumentType = "notaFiscal"
	DocumentTypeRecibo     DocumentType = "recibo"
)

// Condominium is the tenant entity. All other resources are scoped by its
// matricula.
type Condominium struct {
	DefaultModel
	Matricula string `json:"matricula" gorm:"uniqueIndex" example:"12345678100"` // Derived from CEP + building number, immutable
	Nome      string `json:"nome" example:"Residencial das Flores"`              // Legal name
	CEP       string `json:"cep" example:"12345678"`                             // Postal code, immutable after registration
	Numero    string `json:"numero" example:"100"`                               // Building number, immutable after registration
	Endereco  string `json:"endereco" example:"Rua das Flores"`
	Bairro    string `json:"bairro" example:"Centro"`
	Cidade    string `json:"cidade" example:"São Paulo"`
	Estado    string `json:"estado" example:"SP"`
	Email     string `json:"email" example:"sindico@example.com"`
	Telefone  string `json:"telefone" example:"+5511999990000"`
	CNPJ      string `json:"cnpj" example:"12345678000190"` // Blank for condominiums without a legal entity
	ChavePix  string `json:"chavePix" example:"12345678000190"`

	PlanoContratado string          `json:"planoContratado" example:"BASICO"`                         // Code of the contracted plan
	Desconto        decimal.Decimal `json:"desconto" gorm:"type:DECIMAL(20,8)" example:"50"`          // Monthly discount
	ValorPlano      decimal.Decimal `json:"valorPlano" gorm:"type:DECIMAL(20,8)" example:"199.9"`     // Snapshot of the plan price at contract time
	ValorMensal     decimal.Decimal `json:"valorMensal" gorm:"type:DECIMAL(20,8)" example:"149.9"`    // ValorPlano - Desconto, floored at zero
	TipoDocumento   DocumentType    `json:"tipoDocumento" example:"recibo"`                           // Forced to recibo while CNPJ is blank
	Ativo           bool            `json:"ativo" example:"true"`                                     // Lifecycle flag, records are never hard-deleted
}

var digitsOnly = regexp.MustCompile(`[^0-9]`)

// NewMatricula derives the tenant identifier from the postal code and the
// building number. Non-digits are stripped from the postal code so that
// "12345-678" and "12345678" produce the same matricula.
func NewMatricula(cep, numero string) string {
	return digitsOnly.ReplaceAllString(cep, "") + strings.TrimSpace(numero)
}

// MonthlyValue computes the monthly value from the plan price and the
// discount. It never goes below zero.
func MonthlyValue(valorPlano, desconto decimal.Decimal) decimal.Decimal {
	value := valorPlano.Sub(desconto)
	if value.IsNegative() {
		return decimal.Zero
	}

	return value
}

// NormalizeDocumentType enforces the invoice-type invariant: "nota fiscal"
// requires a CNPJ, everything else falls back to "recibo".
func NormalizeDocumentType(tipo DocumentType, cnpj string) DocumentType {
	if strings.TrimSpace(cnpj) == "" || tipo == "" {
		return DocumentTypeRecibo
	}

	return tipo
}

var (
	pixPhone = regexp.MustCompile(`^\+?[0-9]{10,14}$`)
	pixEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidatePixKey accepts CPF (11 digits), CNPJ (14 digits), email
// addresses and phone numbers. An empty key is valid, collecting fees via
// PIX is optional.
func ValidatePixKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}

	digits := digitsOnly.ReplaceAllString(key, "")
	if !strings.ContainsAny(key, "@+ ") && (len(digits) == 11 || len(digits) == 14) && digits == key {
		return nil
	}

	if pixEmail.MatchString(key) || pixPhone.MatchString(key) {
		return nil
	}

	return ErrPixKeyInvalid
}

// BeforeSave trims whitespace and recomputes the derived fields so that
// the invariants hold no matter which code path persisted the record.
func (c *Condominium) BeforeSave(_ *gorm.DB) error {
	c.Nome = strings.TrimSpace(c.Nome)
	c.CEP = strings.TrimSpace(c.CEP)
	c.Numero = strings.TrimSpace(c.Numero)
	c.Email = strings.TrimSpace(c.Email)
	c.CNPJ = strings.TrimSpace(c.CNPJ)
	c.ChavePix = strings.TrimSpace(c.ChavePix)
	c.PlanoContratado = strings.ToUpper(strings.TrimSpace(c.PlanoContratado))

	c.TipoDocumento = NormalizeDocumentType(c.TipoDocumento, c.CNPJ)
	c.ValorMensal = MonthlyValue(c.ValorPlano, c.Desconto)

	return nil
}

// BeforeCreate derives the matricula from CEP and building number.
func (c *Condominium) BeforeCreate(tx *gorm.DB) error {
	if err := c.DefaultModel.BeforeCreate(tx); err != nil {
		return err
	}

	if c.CEP == "" || strings.TrimSpace(c.Numero) == "" {
		return ErrMatriculaFieldsMissing
	}

	c.Matricula = NewMatricula(c.CEP, c.Numero)
	c.Ativo = true

	return nil
}

// CondominiumByMatricula returns the condominium with the given matricula.
func CondominiumByMatricula(db *gorm.DB, matricula string) (Condominium, error) {
	var condominium Condominium
	err := db.Where("matricula = ?", matricula).First(&condominium).Error
	return condominium, err
}

// auditValues returns the audited fields as strings for change logging.
func (c Condominium) auditValues() map[string]string {
	return map[string]string{
		"nome":             c.Nome,
		"endereco":         c.Endereco,
		"bairro":           c.Bairro,
		"cidade":           c.Cidade,
		"estado":           c.Estado,
		"email":            c.Email,
		"telefone":         c.Telefone,
		"cnpj":             c.CNPJ,
		"chave_pix":        c.ChavePix,
		"plano_contratado": c.PlanoContratado,
		"desconto":         c.Desconto.String(),
		"valor_plano":      c.ValorPlano.String(),
		"valor_mensal":     c.ValorMensal.String(),
		"tipo_documento":   string(c.TipoDocumento),
		"ativo":            boolString(c.Ativo),
	}
}

// Audited field names in a stable order, so that change log rows for one
// update always appear in the same order.
var auditedFields = []string{
	"nome", "endereco", "bairro", "cidade", "estado", "email", "telefone",
	"cnpj", "chave_pix", "plano_contratado", "desconto", "valor_plano",
	"valor_mensal", "tipo_documento", "ativo",
}

func boolString(b bool) string {
	if b {
		return "true"
	}

	return "false"
}

// UpdateCondominium persists an update to a condominium record.
//
// It enforces matricula immutability, runs the plan-capacity guard when the
// plan changes, snapshots the new plan price, recomputes the derived fields
// and appends one change log row per changed field.
func UpdateCondominium(db *gorm.DB, condominium *Condominium, updated Condominium, actor string) error {
	if updated.CEP != condominium.CEP || updated.Numero != condominium.Numero {
		return ErrMatriculaImmutable
	}

	if err := ValidatePixKey(updated.ChavePix); err != nil {
		return err
	}

	updated.PlanoContratado = strings.ToUpper(strings.TrimSpace(updated.PlanoContratado))
	if updated.PlanoContratado != condominium.PlanoContratado {
		plan, err := PlanByCode(db, updated.PlanoContratado)
		if err != nil {
			return ErrPlanUnknown
		}

		count, err := ActiveResidentCount(db, condominium.Matricula)
		if err != nil {
			return err
		}

		if err := plan.CanAssign(count); err != nil {
			return err
		}

		updated.ValorPlano = plan.Valor
	}

	updated.TipoDocumento = NormalizeDocumentType(updated.TipoDocumento, updated.CNPJ)
	updated.ValorMensal = MonthlyValue(updated.ValorPlano, updated.Desconto)

	changes := diffAudit(condominium.auditValues(), updated.auditValues())

	updated.ID = condominium.ID
	updated.Matricula = condominium.Matricula
	updated.CreatedAt = condominium.CreatedAt
	if err := db.Save(&updated).Error; err != nil {
		return err
	}

	*condominium = updated

	logCondominiumChanges(db, condominium.Matricula, actor, changes)
	return nil
}

// diffAudit compares two audit value maps and returns the changed fields.
func diffAudit(old, new map[string]string) []fieldChange {
	changes := make([]fieldChange, 0)
	for _, field := range auditedFields {
		if old[field] != new[field] {
			changes = append(changes, fieldChange{Campo: field, Anterior: old[field], Novo: new[field]})
		}
	}

	return changes
}

// SetActive flips the lifecycle flag.
//
// Deactivation is the subscription-cancellation path: all residents of the
// condominium are deactivated as well. The cascade is best-effort, a failed
// resident update is logged but does not roll back the deactivation.
func SetActive(db *gorm.DB, condominium *Condominium, active bool, actor string) error {
	if condominium.Ativo == active {
		return nil
	}

	previous := condominium.Ativo
	condominium.Ativo = active
	if err := db.Save(condominium).Error; err != nil {
		condominium.Ativo = previous
		return err
	}

	if !active {
		err := db.Model(&Resident{}).
			Where("matricula = ? AND active = ?", condominium.Matricula, true).
			Update("active", false).Error
		if err != nil {
			log.Warn().Err(err).Str("matricula", condominium.Matricula).Msg("resident deactivation cascade failed")
		}
	}

	logCondominiumChanges(db, condominium.Matricula, actor, []fieldChange{
		{Campo: "ativo", Anterior: boolString(previous), Novo: boolString(active)},
	})

	return nil
}
