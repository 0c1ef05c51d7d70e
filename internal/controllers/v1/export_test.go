package v1_test

import (
	"encoding/json"
	"net/http"
	"time"

	v1 "github.com/tripsplit/backend/internal/controllers/v1"
	"github.com/tripsplit/backend/internal/models"
	"github.com/tripsplit/backend/test"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExport verifies that the export works correctly
//
// Thorough checks are only executed for the non-data fields since
// the data fields are populated by the Export() methods of the models
func (suite *TestSuiteStandard) TestExport() {
	t := suite.T()

	person := createTestPerson(t, v1.PersonEditable{Name: "Ana"})
	_ = createTestPerson(t, v1.PersonEditable{Name: "Bruno"})
	expense := createTestExpense(t, v1.ExpenseEditable{
		Description: "Groceries",
		Amount:      decimal.NewFromInt(120),
		PaidBy:      "Ana",
	})

	recorder := test.Request(t, http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(t, &recorder, http.StatusOK)

	var response v1.ExportResponse
	test.DecodeResponse(t, &recorder, &response)

	assert.Equal(t, "0.0.0", response.Version)

	// Not sure if this is a good test, if it ever fails we'll re-evaluate
	now := time.Now()
	difference := response.CreationTime.Sub(now).Seconds()
	assert.Less(t, difference, float64(1))

	// Basic tests for the data fields. Full testing is done in the respective Export() methods
	// of the models
	assert.Len(t, response.Data, len(models.Registry), "Number of models in export does not match registry")

	var persons []models.Person
	require.Nil(t, json.Unmarshal(response.Data["Person"], &persons))
	require.Len(t, persons, 2)
	assert.Equal(t, person.Data.CreatedAt, persons[0].CreatedAt)

	var expenses []models.Expense
	require.Nil(t, json.Unmarshal(response.Data["Expense"], &expenses))
	require.Len(t, expenses, 1)
	assert.Equal(t, expense.Data.ID, expenses[0].ID)
}

func (suite *TestSuiteStandard) TestExportDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
