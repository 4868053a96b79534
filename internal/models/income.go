package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/condofacil/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// IncomeCategory classifies a financial income entry.
type IncomeCategory string

const (
	IncomeTaxaCondominio IncomeCategory = "taxaCondominio"
	IncomeFundoReserva   IncomeCategory = "fundoReserva"
	IncomeMulta          IncomeCategory = "multa"
	IncomeOutros         IncomeCategory = "outros"
)

// IncomeCategories lists all valid income categories.
var IncomeCategories = []IncomeCategory{IncomeTaxaCondominio, IncomeFundoReserva, IncomeMulta, IncomeOutros}

// FinancialIncome is a discrete income entry in the tenant's ledger.
type FinancialIncome struct {
	DefaultModel
	Matricula      string          `json:"matricula" gorm:"index" example:"12345678100"`
	Categoria      IncomeCategory  `json:"categoria" example:"taxaCondominio"`
	Valor          decimal.Decimal `json:"valor" gorm:"type:DECIMAL(20,8)" example:"100"`
	ReferenceMonth types.Month     `json:"referenceMonth" example:"2024-07"` // Month the income belongs to
	PaymentDate    time.Time       `json:"paymentDate" example:"2024-07-05T00:00:00Z"`
	Unidade        string          `json:"unidade" example:"Apto 42"` // Unit the payment came from
	Observacoes    string          `json:"observacoes" example:""`
}

// BeforeSave normalizes the payment date to UTC.
func (i *FinancialIncome) BeforeSave(_ *gorm.DB) error {
	if err := i.Categoria.Validate(); err != nil {
		return err
	}

	i.PaymentDate = i.PaymentDate.In(time.UTC)
	return nil
}

// AfterFind updates the payment date to use UTC as timezone, not +0000.
func (i *FinancialIncome) AfterFind(_ *gorm.DB) error {
	i.PaymentDate = i.PaymentDate.In(time.UTC)
	return nil
}

// Validate checks that the category is one of the known values.
func (c IncomeCategory) Validate() error {
	if !slices.Contains(IncomeCategories, c) {
		return fmt.Errorf("%w: %s", ErrCategoryInvalid, c)
	}

	return nil
}

// validatePaymentDate enforces the ledger rules for income payment dates:
// not in the future and not before the most recent balance adjustment,
// which acts as a floor for new entries.
func validatePaymentDate(db *gorm.DB, matricula string, paymentDate time.Time) error {
	if paymentDate.After(time.Now().In(time.UTC)) {
		return ErrPaymentDateInFuture
	}

	adjustment, err := LatestAdjustment(db, matricula)
	if err != nil {
		return err
	}

	if adjustment != nil && paymentDate.Before(adjustment.AdjustmentDate) {
		return fmt.Errorf("%w (%s)", ErrPaymentDateBeforeAdjustment, adjustment.AdjustmentDate.Format("2006-01-02"))
	}

	return nil
}

// FindDuplicateIncome returns an existing entry with the same category,
// reference month and unit, if any. Duplicate detection is advisory: the
// caller decides whether to ask for confirmation or go ahead.
func FindDuplicateIncome(db *gorm.DB, income FinancialIncome) (*FinancialIncome, error) {
	var existing FinancialIncome
	err := db.Where("matricula = ? AND categoria = ? AND reference_month = ? AND unidade = ?",
		income.Matricula, income.Categoria, income.ReferenceMonth, income.Unidade).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &existing, nil
}

// CreateIncome validates and inserts an income entry, then adds its amount
// to the cached balance. The balance write is best-effort, drift is
// corrected by the next recompute.
func CreateIncome(db *gorm.DB, income *FinancialIncome) error {
	if err := validatePaymentDate(db, income.Matricula, income.PaymentDate); err != nil {
		return err
	}

	if err := db.Create(income).Error; err != nil {
		return err
	}

	applyBalanceDelta(db, income.Matricula, income.Valor)
	return nil
}

// DeleteIncome removes an income entry.
//
// The cached balance is first compensated by the entry's amount and then
// fully recomputed from the remaining entries. The recompute corrects any
// drift the cache accumulated since the last manual adjustment.
func DeleteIncome(db *gorm.DB, income FinancialIncome) error {
	if err := db.Unscoped().Delete(&income).Error; err != nil {
		return err
	}

	applyBalanceDelta(db, income.Matricula, income.Valor.Neg())

	_, err := RecomputeBalance(db, income.Matricula)
	return err
}
