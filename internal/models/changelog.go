package models

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CondominiumChangeLog is one immutable audit row for a changed
// condominium field.
type CondominiumChangeLog struct {
	DefaultModel
	Matricula     string `json:"matricula" gorm:"index" example:"12345678100"` // Condominium the change belongs to
	Campo         string `json:"campo" example:"desconto"`                     // Name of the changed field
	ValorAnterior string `json:"valorAnterior" example:"0"`                    // Value before the change
	ValorNovo     string `json:"valorNovo" example:"50"`                       // Value after the change
	Autor         string `json:"autor" example:"sindico@example.com"`          // Email of the user who made the change
}

// PlanChangeLog is one immutable audit row for a changed plan field.
type PlanChangeLog struct {
	DefaultModel
	Codigo        string `json:"codigo" gorm:"index" example:"BASICO"` // Plan the change belongs to
	Campo         string `json:"campo" example:"valor"`                // Name of the changed field
	ValorAnterior string `json:"valorAnterior" example:"199.9"`        // Value before the change
	ValorNovo     string `json:"valorNovo" example:"219.9"`            // Value after the change
	Autor         string `json:"autor" example:"admin@example.com"`    // Email of the user who made the change
}

type fieldChange struct {
	Campo    string
	Anterior string
	Novo     string
}

// diff filters no-op changes so that audit rows are only written for
// fields whose value actually changed.
func diff(changes []fieldChange) []fieldChange {
	result := make([]fieldChange, 0, len(changes))
	for _, change := range changes {
		if change.Anterior != change.Novo {
			result = append(result, change)
		}
	}

	return result
}

// logCondominiumChanges appends one audit row per changed field.
//
// Audit writes are best-effort: the primary operation has already been
// committed when this runs, so failures are logged and not propagated.
func logCondominiumChanges(db *gorm.DB, matricula, autor string, changes []fieldChange) {
	for _, change := range changes {
		entry := CondominiumChangeLog{
			Matricula:     matricula,
			Campo:         change.Campo,
			ValorAnterior: change.Anterior,
			ValorNovo:     change.Novo,
			Autor:         autor,
		}

		if err := db.Create(&entry).Error; err != nil {
			log.Warn().Err(err).Str("matricula", matricula).Str("campo", change.Campo).Msg("condominium change log write failed")
		}
	}
}

// logPlanChanges appends one audit row per changed field.
func logPlanChanges(db *gorm.DB, codigo, autor string, changes []fieldChange) {
	for _, change := range changes {
		entry := PlanChangeLog{
			Codigo:        codigo,
			Campo:         change.Campo,
			ValorAnterior: change.Anterior,
			ValorNovo:     change.Novo,
			Autor:         autor,
		}

		if err := db.Create(&entry).Error; err != nil {
			log.Warn().Err(err).Str("codigo", codigo).Str("campo", change.Campo).Msg("plan change log write failed")
		}
	}
}

// CondominiumChanges returns the audit rows for a condominium,
// newest first.
func CondominiumChanges(db *gorm.DB, matricula string, offset uint, limit int) ([]CondominiumChangeLog, error) {
	var entries []CondominiumChangeLog
	err := db.
		Where("matricula = ?", matricula).
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(limit).
		Find(&entries).Error

	return entries, err
}

// PlanChanges returns the audit rows for a plan, newest first.
func PlanChanges(db *gorm.DB, codigo string, offset uint, limit int) ([]PlanChangeLog, error) {
	var entries []PlanChangeLog
	err := db.
		Where("codigo = ?", codigo).
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(limit).
		Find(&entries).Error

	return entries, err
}
