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

// ExpenseCategory classifies a financial expense entry.
type ExpenseCategory string

const (
	ExpenseAgua       ExpenseCategory = "agua"
	ExpenseLuz        ExpenseCategory = "luz"
	ExpenseLimpeza    ExpenseCategory = "limpeza"
	ExpenseManutencao ExpenseCategory = "manutencao"
	ExpenseSalarios   ExpenseCategory = "salarios"
	ExpenseOutros     ExpenseCategory = "outros"
)

// ExpenseCategories lists all valid expense categories.
var ExpenseCategories = []ExpenseCategory{ExpenseAgua, ExpenseLuz, ExpenseLimpeza, ExpenseManutencao, ExpenseSalarios, ExpenseOutros}

// FinancialExpense is a discrete expense entry in the tenant's ledger.
type FinancialExpense struct {
	DefaultModel
	Matricula      string          `json:"matricula" gorm:"index" example:"12345678100"`
	Categoria      ExpenseCategory `json:"categoria" example:"limpeza"`
	Valor          decimal.Decimal `json:"valor" gorm:"type:DECIMAL(20,8)" example:"250"`
	ReferenceMonth types.Month     `json:"referenceMonth" example:"2024-07"` // Month the expense belongs to
	DueDate        time.Time       `json:"dueDate" example:"2024-07-10T00:00:00Z"`
	PaymentDate    *time.Time      `json:"paymentDate" example:"2024-07-08T00:00:00Z"` // Unset while the expense is unpaid
	Unidade        string          `json:"unidade" example:""`                         // Optional unit the expense relates to
	Observacoes    string          `json:"observacoes" example:""`
}

// Validate checks that the category is one of the known values.
func (c ExpenseCategory) Validate() error {
	if !slices.Contains(ExpenseCategories, c) {
		return fmt.Errorf("%w: %s", ErrCategoryInvalid, c)
	}

	return nil
}

// BeforeSave normalizes the dates to UTC.
func (e *FinancialExpense) BeforeSave(_ *gorm.DB) error {
	if err := e.Categoria.Validate(); err != nil {
		return err
	}

	e.DueDate = e.DueDate.In(time.UTC)
	if e.PaymentDate != nil {
		utc := e.PaymentDate.In(time.UTC)
		e.PaymentDate = &utc
	}

	return nil
}

// FindDuplicateExpense returns an existing entry with the same category,
// reference month and unit, if any.
func FindDuplicateExpense(db *gorm.DB, expense FinancialExpense) (*FinancialExpense, error) {
	var existing FinancialExpense
	err := db.Where("matricula = ? AND categoria = ? AND reference_month = ? AND unidade = ?",
		expense.Matricula, expense.Categoria, expense.ReferenceMonth, expense.Unidade).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &existing, nil
}

// CreateExpense inserts an expense entry and subtracts its amount from the
// cached balance.
func CreateExpense(db *gorm.DB, expense *FinancialExpense) error {
	if err := db.Create(expense).Error; err != nil {
		return err
	}

	applyBalanceDelta(db, expense.Matricula, expense.Valor.Neg())
	return nil
}

// DeleteExpense removes an expense entry, compensates the cached balance
// and recomputes it from the remaining entries.
func DeleteExpense(db *gorm.DB, expense FinancialExpense) error {
	if err := db.Unscoped().Delete(&expense).Error; err != nil {
		return err
	}

	applyBalanceDelta(db, expense.Matricula, expense.Valor)

	_, err := RecomputeBalance(db, expense.Matricula)
	return err
}
