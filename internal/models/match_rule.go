package models

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// MatchRule maps expense descriptions to a category during import.
//
// Match is a glob pattern, e.g. "Shell*" or "*supermarket*". Rules with a
// lower priority value are tried first.
type MatchRule struct {
	DefaultModel
	Priority uint   `json:"priority" example:"1"`
	Match    string `json:"match" example:"Shell*"`
	Category string `json:"category" example:"car-bruno"`
}

func (m *MatchRule) BeforeSave(_ *gorm.DB) error {
	m.Match = strings.TrimSpace(m.Match)
	m.Category = strings.TrimSpace(m.Category)

	return nil
}

// MatchRules returns all match rules ordered by priority.
func MatchRules(db *gorm.DB) ([]MatchRule, error) {
	var rules []MatchRule
	err := db.Order("priority ASC, match ASC").Find(&rules).Error
	return rules, err
}

// Returns all match rules on this instance for export
func (MatchRule) Export() (json.RawMessage, error) {
	var rules []MatchRule
	err := DB.Where(&MatchRule{}).Find(&rules).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&rules)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
