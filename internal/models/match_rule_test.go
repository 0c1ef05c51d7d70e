package models_test

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripsplit/backend/internal/models"
)

func (suite *TestSuiteStandard) TestMatchRuleTrimWhitespace() {
	rule := suite.createTestMatchRule(models.MatchRule{
		Match:    "  Shell* ",
		Category: " car-bruno  ",
	})

	assert.Equal(suite.T(), "Shell*", rule.Match)
	assert.Equal(suite.T(), "car-bruno", rule.Category)
}

func (suite *TestSuiteStandard) TestMatchRulesPriorityOrder() {
	t := suite.T()

	_ = suite.createTestMatchRule(models.MatchRule{Priority: 2, Match: "*beer*", Category: "drinks"})
	_ = suite.createTestMatchRule(models.MatchRule{Priority: 1, Match: "Shell*", Category: "car-bruno"})
	_ = suite.createTestMatchRule(models.MatchRule{Priority: 1, Match: "Aral*", Category: "car-ana"})

	rules, err := models.MatchRules(models.DB)
	require.Nil(t, err)
	require.Len(t, rules, 3)

	assert.Equal(t, "Aral*", rules[0].Match)
	assert.Equal(t, "Shell*", rules[1].Match)
	assert.Equal(t, "*beer*", rules[2].Match)
}
