package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Balance is the cached running balance of a tenant. One row per matricula.
//
// The cache can diverge from the entry sums when manual adjustments have
// been applied; RecomputeBalance brings it back in line with the entries.
type Balance struct {
	DefaultModel
	Matricula string          `json:"matricula" gorm:"uniqueIndex" example:"12345678100"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"1530.25"`
}

// BalanceAdjustment is the append-only audit record for a manual balance
// override. The most recent adjustment acts as a floor for income payment
// dates.
type BalanceAdjustment struct {
	DefaultModel
	Matricula       string          `json:"matricula" gorm:"index" example:"12345678100"`
	PreviousBalance decimal.Decimal `json:"previousBalance" gorm:"type:DECIMAL(20,8)" example:"1000"`
	NewBalance      decimal.Decimal `json:"newBalance" gorm:"type:DECIMAL(20,8)" example:"1530.25"`
	AdjustmentDate  time.Time       `json:"adjustmentDate" example:"2024-07-01T12:00:00Z"`
	Autor           string          `json:"autor" example:"sindico@example.com"`
}

// GetBalance returns the balance row for a matricula, creating a zero row
// if none exists yet.
func GetBalance(db *gorm.DB, matricula string) (Balance, error) {
	var balance Balance
	err := db.Where(Balance{Matricula: matricula}).FirstOrCreate(&balance).Error
	return balance, err
}

// SetBalance manually overrides the cached balance.
//
// The adjustment audit row is written before the balance itself. When the
// audit insert fails the balance update is still attempted: the override is
// what the user asked for, the missing audit row is logged. This matches
// the documented best-effort semantics and is intentionally not atomic.
func SetBalance(db *gorm.DB, matricula string, newValue decimal.Decimal, actor string) (Balance, error) {
	balance, err := GetBalance(db, matricula)
	if err != nil {
		return Balance{}, err
	}

	adjustment := BalanceAdjustment{
		Matricula:       matricula,
		PreviousBalance: balance.Amount,
		NewBalance:      newValue,
		AdjustmentDate:  time.Now().In(time.UTC),
		Autor:           actor,
	}

	if err := db.Create(&adjustment).Error; err != nil {
		log.Warn().Err(err).Str("matricula", matricula).Msg("balance adjustment audit write failed")
	}

	balance.Amount = newValue
	err = db.Save(&balance).Error
	return balance, err
}

// RecomputeBalance derives the balance from the entries:
// sum of incomes minus sum of expenses.
func RecomputeBalance(db *gorm.DB, matricula string) (Balance, error) {
	var incomeSum, expenseSum decimal.NullDecimal

	err := db.Table("financial_incomes").
		Where("matricula = ? AND deleted_at IS NULL", matricula).
		Select("SUM(valor)").
		Row().
		Scan(&incomeSum)
	if err != nil {
		return Balance{}, err
	}

	err = db.Table("financial_expenses").
		Where("matricula = ? AND deleted_at IS NULL", matricula).
		Select("SUM(valor)").
		Row().
		Scan(&expenseSum)
	if err != nil {
		return Balance{}, err
	}

	balance, err := GetBalance(db, matricula)
	if err != nil {
		return Balance{}, err
	}

	balance.Amount = incomeSum.Decimal.Sub(expenseSum.Decimal)
	err = db.Save(&balance).Error
	return balance, err
}

// applyBalanceDelta shifts the cached balance by a signed amount.
//
// Cache maintenance is best-effort: a failure is logged and left for the
// next recompute to correct.
func applyBalanceDelta(db *gorm.DB, matricula string, delta decimal.Decimal) {
	balance, err := GetBalance(db, matricula)
	if err == nil {
		balance.Amount = balance.Amount.Add(delta)
		err = db.Save(&balance).Error
	}

	if err != nil {
		log.Warn().Err(err).Str("matricula", matricula).Msg("cached balance update failed")
	}
}

// LatestAdjustment returns the most recent balance adjustment for a
// matricula, or nil when none exists.
func LatestAdjustment(db *gorm.DB, matricula string) (*BalanceAdjustment, error) {
	var adjustment BalanceAdjustment
	err := db.Where("matricula = ?", matricula).
		Order("adjustment_date DESC").
		Limit(1).
		Find(&adjustment).Error
	if err != nil {
		return nil, err
	}

	if adjustment.ID == uuid.Nil {
		return nil, nil
	}

	return &adjustment, nil
}

// Adjustments returns the balance adjustments for a matricula, newest first.
func Adjustments(db *gorm.DB, matricula string, offset uint, limit int) ([]BalanceAdjustment, error) {
	var adjustments []BalanceAdjustment
	err := db.Where("matricula = ?", matricula).
		Order("adjustment_date DESC").
		Offset(int(offset)).
		Limit(limit).
		Find(&adjustments).Error

	return adjustments, err
}
