package models_test

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripsplit/backend/internal/models"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestExpenseAfterSave() {
	tests := []struct {
		amount decimal.Decimal
		err    error
	}{
		{decimal.NewFromFloat(-10), models.ErrAmountNotPositive},
		{decimal.NewFromFloat(0), models.ErrAmountNotPositive},
		{decimal.NewFromFloat(17.5), nil},
	}

	for _, tt := range tests {
		e := models.Expense{
			Amount: tt.amount,
		}

		err := e.AfterSave(&gorm.DB{})
		assert.Equal(suite.T(), tt.err, err)
	}
}

func (suite *TestSuiteStandard) TestExpenseDescriptionRequired() {
	person := suite.createTestPerson(models.Person{Name: "Ana"})

	err := models.DB.Create(&models.Expense{
		Description: "  \t ",
		Amount:      decimal.NewFromFloat(10),
		PaidBy:      person.Name,
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrDescriptionRequired)
}

func (suite *TestSuiteStandard) TestExpensePayerMustExist() {
	_ = suite.createTestPerson(models.Person{Name: "Ana"})

	err := models.DB.Create(&models.Expense{
		Description: "Fuel",
		Amount:      decimal.NewFromFloat(10),
		PaidBy:      "Nobody",
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrEntityNotFound)
}

func (suite *TestSuiteStandard) TestExpensePayerCanonicalised() {
	_ = suite.createTestPerson(models.Person{Name: "Ana"})

	expense := suite.createTestExpense(models.Expense{
		Description: "Groceries",
		Amount:      decimal.NewFromFloat(42),
		PaidBy:      "ANA",
	})

	// The payer is stored with the entity's exact spelling so that balance
	// computation can match it by name.
	assert.Equal(suite.T(), "Ana", expense.PaidBy)

	_ = suite.createTestPerson(models.Person{Name: "Éric"})

	err := models.DB.Model(&expense).Select("PaidBy").Updates(models.Expense{PaidBy: "éric"}).Error
	require.Nil(suite.T(), err)

	var reloaded models.Expense
	require.Nil(suite.T(), models.DB.First(&reloaded, expense.ID).Error)
	assert.Equal(suite.T(), "Éric", reloaded.PaidBy)
}

func (suite *TestSuiteStandard) TestExpenseGroupPayer() {
	a := suite.createTestPerson(models.Person{})
	b := suite.createTestPerson(models.Person{})
	group := suite.createTestGroup(models.Group{
		Name:    "Família",
		Members: []models.GroupMember{{PersonID: a.ID}, {PersonID: b.ID}},
	})

	_ = suite.createTestExpense(models.Expense{
		Description: "Dinner",
		Amount:      decimal.NewFromFloat(90),
		PaidBy:      group.Name,
	})
}

func (suite *TestSuiteStandard) TestExpenseTrimWhitespace() {
	person := suite.createTestPerson(models.Person{Name: "Ana"})

	description := "  Groceries \t"
	expense := suite.createTestExpense(models.Expense{
		Description: description,
		Amount:      decimal.NewFromFloat(10),
		PaidBy:      person.Name,
	})

	assert.Equal(suite.T(), strings.TrimSpace(description), expense.Description)
}

func (suite *TestSuiteStandard) TestExpenseDateDefaults() {
	person := suite.createTestPerson(models.Person{Name: "Ana"})

	expense := suite.createTestExpense(models.Expense{
		Amount: decimal.NewFromFloat(10),
		PaidBy: person.Name,
	})
	assert.False(suite.T(), expense.Date.IsZero())

	date := time.Date(2024, 7, 14, 12, 0, 0, 0, time.UTC)
	expense = suite.createTestExpense(models.Expense{
		Amount: decimal.NewFromFloat(10),
		PaidBy: person.Name,
		Date:   date,
	})
	assert.True(suite.T(), date.Equal(expense.Date))
}

func (suite *TestSuiteStandard) TestExpenseUpdatePayerChecked() {
	person := suite.createTestPerson(models.Person{Name: "Ana"})

	expense := suite.createTestExpense(models.Expense{
		Amount: decimal.NewFromFloat(10),
		PaidBy: person.Name,
	})

	err := models.DB.Model(&expense).Select("PaidBy").Updates(models.Expense{PaidBy: "Nobody"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrEntityNotFound)
}

func (suite *TestSuiteStandard) TestExpensesNewestFirst() {
	t := suite.T()

	person := suite.createTestPerson(models.Person{Name: "Ana"})

	old := suite.createTestExpense(models.Expense{
		Description: "Old",
		Amount:      decimal.NewFromFloat(10),
		PaidBy:      person.Name,
		Date:        time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	recent := suite.createTestExpense(models.Expense{
		Description: "Recent",
		Amount:      decimal.NewFromFloat(10),
		PaidBy:      person.Name,
		Date:        time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
	})

	expenses, err := models.Expenses(models.DB)
	require.Nil(t, err)
	require.Len(t, expenses, 2)

	assert.Equal(t, recent.Description, expenses[0].Description)
	assert.Equal(t, old.Description, expenses[1].Description)
}
