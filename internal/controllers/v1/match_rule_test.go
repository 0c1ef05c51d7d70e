package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/tripsplit/backend/internal/controllers/v1"
	"github.com/tripsplit/backend/test"
)

func createTestMatchRule(t *testing.T, matchRule v1.MatchRuleEditable, expectedStatus ...int) v1.MatchRuleResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.MatchRuleEditable{matchRule}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/match-rules", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.MatchRuleCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.MatchRuleResponse{}
}

func (suite *TestSuiteStandard) TestMatchRulesCreate() {
	matchRule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{
		Priority: 1,
		Match:    "Shell*",
		Category: "car-bruno",
	})

	assert.Equal(suite.T(), uint(1), matchRule.Data.Priority)
	assert.Equal(suite.T(), "Shell*", matchRule.Data.Match)
	assert.Equal(suite.T(), "car-bruno", matchRule.Data.Category)
}

// TestMatchRulesList verifies the list endpoint. Rules come back in the
// order the importer tries them.
func (suite *TestSuiteStandard) TestMatchRulesList() {
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{Priority: 2, Match: "*supermarket*", Category: "general"})
	_ = createTestMatchRule(suite.T(), v1.MatchRuleEditable{Priority: 1, Match: "Shell*", Category: "car-bruno"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All", "", 2},
		{"By priority", "priority=1", 1},
		{"By match", "match=market", 1},
		{"By category", "category=car-bruno", 1},
		{"No results", "match=zzz", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/match-rules?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.MatchRuleListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}

	// Ordered by priority, then pattern
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/match-rules", "")
	var response v1.MatchRuleListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "Shell*", response.Data[0].Match)
}

func (suite *TestSuiteStandard) TestMatchRulesUpdateDelete() {
	matchRule := createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "Shell*", Category: "car-bruno"})

	recorder := test.Request(suite.T(), http.MethodPatch, matchRule.Data.Links.Self, map[string]any{"category": "car-ana"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.MatchRuleResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "car-ana", response.Data.Category)
	assert.Equal(suite.T(), "Shell*", response.Data.Match)

	recorder = test.Request(suite.T(), http.MethodDelete, matchRule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, matchRule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

// TestMatchRulesApplyOnImport verifies that an existing rule assigns its
// category to imported expenses without one.
func (suite *TestSuiteStandard) TestMatchRulesApplyOnImport() {
	t := suite.T()

	_ = createTestMatchRule(t, v1.MatchRuleEditable{Match: "Shell*", Category: "car-bruno"})

	body, headers := test.LoadTestFile(t, "trip.json")
	recorder := test.Request(t, http.MethodPost, "http://example.com/v1/import", body, headers)
	test.AssertHTTPStatus(t, &recorder, http.StatusCreated)

	recorder = test.Request(t, http.MethodGet, "http://example.com/v1/expenses?description=Shell", "")
	var expenses v1.ExpenseListResponse
	test.DecodeResponse(t, &recorder, &expenses)
	require.Len(t, expenses.Data, 1)
	assert.Equal(t, "car-bruno", expenses.Data[0].Category)
}

func (suite *TestSuiteStandard) TestMatchRulesDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/match-rules", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
