package models

import (
	"strings"

	"gorm.io/gorm"
)

// Resident is a person living in a condominium unit.
type Resident struct {
	DefaultModel
	Matricula string `json:"matricula" gorm:"index" example:"12345678100"` // Condominium the resident belongs to
	Nome      string `json:"nome" example:"Maria da Silva"`
	Email     string `json:"email" example:"maria@example.com"`
	Unidade   string `json:"unidade" example:"Apto 42"` // Unit label
	CPF       string `json:"cpf" example:"12345678901"`
	Telefone  string `json:"telefone" example:"+5511988887777"`
	Active    bool   `json:"active" example:"true"` // Deactivated residents stay on file but do not count against plan capacity
}

// BeforeSave trims whitespace from all strings.
func (r *Resident) BeforeSave(_ *gorm.DB) error {
	r.Nome = strings.TrimSpace(r.Nome)
	r.Email = strings.TrimSpace(r.Email)
	r.Unidade = strings.TrimSpace(r.Unidade)
	r.CPF = strings.TrimSpace(r.CPF)
	r.Telefone = strings.TrimSpace(r.Telefone)

	return nil
}

// ActiveResidentCount returns how many active residents a condominium has.
// This is the number the plan-capacity guard compares against.
func ActiveResidentCount(db *gorm.DB, matricula string) (int64, error) {
	var count int64
	err := db.Model(&Resident{}).
		Where("matricula = ? AND active = ?", matricula, true).
		Count(&count).Error

	return count, err
}
