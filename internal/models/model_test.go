package models_test

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripsplit/backend/internal/models"
)

func (suite *TestSuiteStandard) TestExportRegistry() {
	t := suite.T()

	person := suite.createTestPerson(models.Person{Name: "Ana"})
	_ = suite.createTestPerson(models.Person{Name: "Bruno"})
	_ = suite.createTestExpense(models.Expense{
		Amount: decimal.NewFromFloat(10),
		PaidBy: person.Name,
	})

	for _, model := range models.Registry {
		raw, err := model.Export()
		require.Nil(t, err, "export failed for %T", model)

		var records []map[string]any
		require.Nil(t, json.Unmarshal(raw, &records), "export of %T is not a JSON array", model)
	}

	raw, err := models.Person{}.Export()
	require.Nil(t, err)

	var persons []models.Person
	require.Nil(t, json.Unmarshal(raw, &persons))
	assert.Len(t, persons, 2)
}

func (suite *TestSuiteStandard) TestUUIDSetOnCreate() {
	person := suite.createTestPerson(models.Person{Name: "Ana"})
	assert.NotEmpty(suite.T(), person.ID)
	assert.False(suite.T(), person.CreatedAt.IsZero())
}
