package models

import (
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// minRosterSize is the number of persons that must always exist. A trip
// with fewer than two participants has nothing to split.
const minRosterSize = 2

// Person is one trip participant.
type Person struct {
	DefaultModel
	Name       string
	NameFolded string `gorm:"uniqueIndex"` // Unicode case fold of Name, enforces case-insensitive uniqueness
	Car        string // car identifier, empty when the person has no car assigned
	Drinks     bool   // shares expenses in the drinks category
	Finished   bool   // informational only, not used in balance math
}

func (Person) TableName() string {
	return "persons"
}

// foldName normalizes a name for case-insensitive comparison.
func foldName(name string) string {
	return cases.Fold().String(name)
}

// BeforeSave trims whitespace and keeps the folded name in sync.
func (p *Person) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Car = strings.TrimSpace(p.Car)
	p.NameFolded = foldName(p.Name)

	return nil
}

func (p *Person) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Person)
	return p.checkNameFree(tx, *toSave)
}

// BeforeUpdate verifies the new name does not collide with a group when
// the person is renamed.
func (p *Person) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Name") {
		toSave := tx.Statement.Dest.(Person)
		return p.checkNameFree(tx, toSave)
	}

	return nil
}

// BeforeDelete enforces the roster minimum and removes the person from
// their group. A group that drops below two members is deleted with them.
func (p *Person) BeforeDelete(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&Person{}).Count(&count).Error; err != nil {
		return err
	}
	if count <= minRosterSize {
		return ErrPersonRosterMinimum
	}

	var membership GroupMember
	err := tx.Where(&GroupMember{PersonID: p.ID}).First(&membership).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if err := tx.Delete(&membership).Error; err != nil {
		return err
	}

	var remaining int64
	err = tx.Model(&GroupMember{}).Where(&GroupMember{GroupID: membership.GroupID}).Count(&remaining).Error
	if err != nil {
		return err
	}

	if remaining < 2 {
		return tx.Delete(&Group{DefaultModel: DefaultModel{ID: membership.GroupID}}).Error
	}

	return nil
}

// checkNameFree returns an error when a group already uses the name.
// Collisions with other persons are caught by the unique index.
func (p *Person) checkNameFree(tx *gorm.DB, toSave Person) error {
	if strings.TrimSpace(toSave.Name) == "" {
		return ErrNameRequired
	}

	var count int64
	err := tx.Model(&Group{}).Where(&Group{NameFolded: foldName(toSave.Name)}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrPersonNameIsGroup
	}

	return nil
}

// Persons returns the full roster in creation order.
func Persons(db *gorm.DB) ([]Person, error) {
	var persons []Person
	err := db.Order("created_at ASC, id ASC").Find(&persons).Error
	return persons, err
}

// Returns all persons on this instance for export
func (Person) Export() (json.RawMessage, error) {
	var persons []Person
	err := DB.Where(&Person{}).Find(&persons).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&persons)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
