package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Plan represents a subscription plan that condominiums contract.
//
// Condominiums reference plans by their code, not their ID, as the
// code is what managers see and select in the frontend.
type Plan struct {
	DefaultModel
	Codigo       string          `json:"codigo" gorm:"uniqueIndex" example:"BASICO"`          // Uppercase plan code
	Nome         string          `json:"nome" example:"Plano Básico"`                         // Display name
	Descricao    string          `json:"descricao" example:"Até 30 moradores"`                // Description
	Valor        decimal.Decimal `json:"valor" gorm:"type:DECIMAL(20,8)" example:"199.90"`    // Monthly price
	MaxMoradores *int64          `json:"maxMoradores" example:"30"`                           // Resident capacity. Plans without a capacity accept any number of residents.
}

// BeforeSave normalizes the plan code to uppercase and trims whitespace
// from all strings.
func (p *Plan) BeforeSave(_ *gorm.DB) error {
	p.Codigo = strings.ToUpper(strings.TrimSpace(p.Codigo))
	p.Nome = strings.TrimSpace(p.Nome)
	p.Descricao = strings.TrimSpace(p.Descricao)

	return nil
}

// BeforeDelete blocks deletion of plans that condominiums are still
// subscribed to. There is no real foreign key for the code reference, so
// the check is done here and the error surfaced to the caller.
func (p *Plan) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Condominium{}).Where("plano_contratado = ?", p.Codigo).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return fmt.Errorf("%w: %d condominiums use plan %s", ErrPlanInUse, count, p.Codigo)
	}

	return nil
}

// CanAssign checks the plan capacity against the number of active
// residents a condominium currently has.
func (p Plan) CanAssign(activeResidents int64) error {
	if p.MaxMoradores == nil || activeResidents <= *p.MaxMoradores {
		return nil
	}

	return fmt.Errorf("%w: plan %s allows %d residents, but %d are registered", ErrPlanCapacityExceeded, p.Codigo, *p.MaxMoradores, activeResidents)
}

// PlanByCode returns the plan with the given code.
func PlanByCode(db *gorm.DB, code string) (Plan, error) {
	var plan Plan
	err := db.Where("codigo = ?", strings.ToUpper(strings.TrimSpace(code))).First(&plan).Error
	return plan, err
}

// PlanValue resolves a plan code to its current price.
//
// Unknown codes resolve to a zero value so that callers rendering
// derived fields do not have to special-case missing plans.
func PlanValue(db *gorm.DB, code string) (decimal.Decimal, bool) {
	plan, err := PlanByCode(db, code)
	if err != nil {
		return decimal.Zero, false
	}

	return plan.Valor, true
}

// UpdatePlan persists changes to a plan and appends one change log row per
// changed field. Unchanged fields are filtered out before writing.
func UpdatePlan(db *gorm.DB, plan *Plan, updated Plan, actor string) error {
	changes := diff([]fieldChange{
		{"nome", plan.Nome, updated.Nome},
		{"descricao", plan.Descricao, updated.Descricao},
		{"valor", plan.Valor.String(), updated.Valor.String()},
		{"max_moradores", formatCapacity(plan.MaxMoradores), formatCapacity(updated.MaxMoradores)},
	})

	updated.ID = plan.ID
	updated.Codigo = plan.Codigo
	updated.CreatedAt = plan.CreatedAt
	err := db.Save(&updated).Error
	if err != nil {
		return err
	}

	*plan = updated

	logPlanChanges(db, plan.Codigo, actor, changes)
	return nil
}

func formatCapacity(c *int64) string {
	if c == nil {
		return ""
	}

	return fmt.Sprintf("%d", *c)
}
