// Package importer creates the resources of a parsed legacy dump.
package importer

import (
	"fmt"

	"github.com/ryanuber/go-glob"
	"github.com/tripsplit/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// Create writes all parsed resources to the database.
//
// Everything runs in one transaction, a dump is imported fully or not at
// all. Match rules already in the database assign categories to expenses
// the dump left uncategorized.
func Create(db *gorm.DB, resources ParsedResources) error {
	rules, err := models.MatchRules(db)
	if err != nil {
		return err
	}

	// Start a transaction so we can roll back all created resources if an error occurs
	tx := db.Begin()

	for idx, person := range resources.Persons {
		err := tx.Create(&person).Error
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error on creation of person '%s': %w", person.Name, err)
		}

		// Update the person in the resources struct so that it also contains the ID
		resources.Persons[idx] = person
	}

	for _, group := range resources.Groups {
		members := make([]models.GroupMember, 0, len(group.Members))
		for position, name := range group.Members {
			pIdx := slices.IndexFunc(resources.Persons, func(p models.Person) bool { return p.Name == name })
			if pIdx == -1 {
				tx.Rollback()
				return fmt.Errorf("the person '%s' in group '%s' could not be found in the list of persons", name, group.Model.Name)
			}

			members = append(members, models.GroupMember{
				PersonID: resources.Persons[pIdx].ID,
				Position: uint(position),
			})
		}

		toCreate := group.Model
		toCreate.Members = members
		err := tx.Create(&toCreate).Error
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error on creation of group '%s': %w", group.Model.Name, err)
		}
	}

	for _, expense := range resources.Expenses {
		if expense.Category == "" {
			expense.Category = matchCategory(rules, expense.Description)
		}

		err := tx.Create(&expense).Error
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error on creation of expense '%s': %w", expense.Description, err)
		}
	}

	for i, payment := range resources.Payments {
		err := tx.Create(&payment).Error
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error on creation of payment %d: %w", i, err)
		}
	}

	// No errors happened, commit the transaction
	tx.Commit()
	return nil
}

// matchCategory returns the category of the first match rule whose pattern
// matches the description. Rules come pre-sorted, highest priority first.
func matchCategory(rules []models.MatchRule, description string) string {
	for _, rule := range rules {
		if glob.Glob(rule.Match, description) {
			return rule.Category
		}
	}

	return ""
}
