package models_test

import (
	"time"

	"github.com/condofacil/backend/internal/models"
	"github.com/condofacil/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) income(matricula string, valor float64) models.FinancialIncome {
	return models.FinancialIncome{
		Matricula:      matricula,
		Categoria:      models.IncomeTaxaCondominio,
		Valor:          decimal.NewFromFloat(valor),
		ReferenceMonth: types.MonthOf(time.Now()),
		PaymentDate:    time.Now().In(time.UTC),
		Unidade:        "Apto 42",
	}
}

func (suite *TestSuiteStandard) TestGetBalanceCreatesRow() {
	balance, err := models.GetBalance(models.DB, "12345678100")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), balance.Amount.IsZero())

	// The row is reused on the second read
	again, err := models.GetBalance(models.DB, "12345678100")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), balance.ID, again.ID)
}

func (suite *TestSuiteStandard) TestIncomeBalanceLifecycle() {
	income := suite.income("12345678100", 100)

	suite.Require().NoError(models.CreateIncome(models.DB, &income))

	balance, err := models.GetBalance(models.DB, "12345678100")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromFloat(100).Equal(balance.Amount), "balance is %s", balance.Amount)

	// Deleting the entry restores the previous balance
	suite.Require().NoError(models.DeleteIncome(models.DB, income))

	balance, err = models.GetBalance(models.DB, "12345678100")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), balance.Amount.IsZero(), "balance is %s", balance.Amount)
}

func (suite *TestSuiteStandard) TestExpenseBalanceLifecycle() {
	expense := models.FinancialExpense{
		Matricula:      "12345678100",
		Categoria:      models.ExpenseLimpeza,
		Valor:          decimal.NewFromFloat(250),
		ReferenceMonth: types.MonthOf(time.Now()),
		DueDate:        time.Now().In(time.UTC),
	}

	suite.Require().NoError(models.CreateExpense(models.DB, &expense))

	balance, err := models.GetBalance(models.DB, "12345678100")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromFloat(-250).Equal(balance.Amount), "balance is %s", balance.Amount)

	suite.Require().NoError(models.DeleteExpense(models.DB, expense))

	balance, err = models.GetBalance(models.DB, "12345678100")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), balance.Amount.IsZero(), "balance is %s", balance.Amount)
}

func (suite *TestSuiteStandard) TestRecomputeBalance() {
	for _, valor := range []float64{100, 200} {
		income := suite.income("12345678100", valor)
		suite.Require().NoError(models.CreateIncome(models.DB, &income))
	}

	expense := models.FinancialExpense{
		Matricula:      "12345678100",
		Categoria:      models.ExpenseLuz,
		Valor:          decimal.NewFromFloat(50),
		ReferenceMonth: types.MonthOf(time.Now()),
		DueDate:        time.Now().In(time.UTC),
	}
	suite.Require().NoError(models.CreateExpense(models.DB, &expense))

	// Drift the cache on purpose
	_, err := models.SetBalance(models.DB, "12345678100", decimal.NewFromFloat(9999), "admin@example.com")
	suite.Require().NoError(err)

	balance, err := models.RecomputeBalance(models.DB, "12345678100")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromFloat(250).Equal(balance.Amount), "balance is %s", balance.Amount)
}

func (suite *TestSuiteStandard) TestSetBalanceWritesAdjustment() {
	_, err := models.SetBalance(models.DB, "12345678100", decimal.NewFromFloat(1530.25), "sindico@example.com")
	suite.Require().NoError(err)

	adjustment, err := models.LatestAdjustment(models.DB, "12345678100")
	assert.NoError(suite.T(), err)
	suite.Require().NotNil(adjustment)

	assert.True(suite.T(), adjustment.PreviousBalance.IsZero())
	assert.True(suite.T(), decimal.NewFromFloat(1530.25).Equal(adjustment.NewBalance))
	assert.Equal(suite.T(), "sindico@example.com", adjustment.Autor)

	balance, err := models.GetBalance(models.DB, "12345678100")
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), decimal.NewFromFloat(1530.25).Equal(balance.Amount))
}

func (suite *TestSuiteStandard) TestLatestAdjustmentEmpty() {
	adjustment, err := models.LatestAdjustment(models.DB, "12345678100")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), adjustment)
}

func (suite *TestSuiteStandard) TestIncomePaymentDateInFuture() {
	income := suite.income("12345678100", 100)
	income.PaymentDate = time.Now().In(time.UTC).Add(48 * time.Hour)

	err := models.CreateIncome(models.DB, &income)
	assert.ErrorIs(suite.T(), err, models.ErrPaymentDateInFuture)
}

func (suite *TestSuiteStandard) TestIncomePaymentDateBeforeAdjustment() {
	_, err := models.SetBalance(models.DB, "12345678100", decimal.NewFromFloat(1000), "sindico@example.com")
	suite.Require().NoError(err)

	income := suite.income("12345678100", 100)
	income.PaymentDate = time.Now().In(time.UTC).Add(-48 * time.Hour)

	err = models.CreateIncome(models.DB, &income)
	assert.ErrorIs(suite.T(), err, models.ErrPaymentDateBeforeAdjustment)
}

func (suite *TestSuiteStandard) TestFindDuplicateIncome() {
	income := suite.income("12345678100", 100)
	suite.Require().NoError(models.CreateIncome(models.DB, &income))

	duplicate, err := models.FindDuplicateIncome(models.DB, suite.income("12345678100", 150))
	assert.NoError(suite.T(), err)
	suite.Require().NotNil(duplicate)
	assert.Equal(suite.T(), income.ID, duplicate.ID)

	// A different unit is not a duplicate
	other := suite.income("12345678100", 100)
	other.Unidade = "Apto 1"
	duplicate, err = models.FindDuplicateIncome(models.DB, other)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), duplicate)
}

func (suite *TestSuiteStandard) TestIncomeCategoryInvalid() {
	income := suite.income("12345678100", 100)
	income.Categoria = "piscina"

	err := models.CreateIncome(models.DB, &income)
	assert.ErrorIs(suite.T(), err, models.ErrCategoryInvalid)
}

func (suite *TestSuiteStandard) TestExpenseCategoryInvalid() {
	expense := models.FinancialExpense{
		Matricula:      "12345678100",
		Categoria:      "jardinagem",
		Valor:          decimal.NewFromFloat(10),
		ReferenceMonth: types.MonthOf(time.Now()),
		DueDate:        time.Now().In(time.UTC),
	}

	err := models.CreateExpense(models.DB, &expense)
	assert.ErrorIs(suite.T(), err, models.ErrCategoryInvalid)
}
