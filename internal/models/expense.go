package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is money spent for the trip by one entity on behalf of the
// persons its category makes eligible.
//
// PaidBy holds an entity name, not a foreign key: balances must survive an
// entity disappearing, a dangling name simply contributes nothing.
type Expense struct {
	DefaultModel
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category    string
	PaidBy      string
	Date        time.Time
	Attachments []Attachment `gorm:"foreignKey:ExpenseID;constraint:OnDelete:CASCADE"`
}

// BeforeSave validates the expense and defaults the date to now.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Description = strings.TrimSpace(e.Description)
	e.Category = strings.TrimSpace(e.Category)
	e.PaidBy = strings.TrimSpace(e.PaidBy)

	if e.Description == "" {
		return ErrDescriptionRequired
	}

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return nil
}

func (e *Expense) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(e.Amount) {
		return ErrAmountNotPositive
	}

	return nil
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Expense)

	name, err := canonicalEntityName(tx, toSave.PaidBy)
	if err != nil {
		return err
	}

	toSave.PaidBy = name
	return nil
}

func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("PaidBy") {
		toSave := tx.Statement.Dest.(Expense)

		name, err := canonicalEntityName(tx, toSave.PaidBy)
		if err != nil {
			return err
		}

		tx.Statement.SetColumn("PaidBy", name)
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, see DefaultModel.
func (e *Expense) AfterFind(tx *gorm.DB) error {
	_ = e.DefaultModel.AfterFind(tx)

	e.Date = e.Date.In(time.UTC)
	return nil
}

// canonicalEntityName resolves a name to the person or group it refers to,
// compared case-insensitively, and returns that entity's exact name. Expenses
// and payments store the canonical spelling so that balance computation can
// match entities by name alone.
func canonicalEntityName(tx *gorm.DB, name string) (string, error) {
	folded := foldName(strings.TrimSpace(name))

	var names []string
	err := tx.Model(&Person{}).Where(&Person{NameFolded: folded}).Limit(1).Pluck("name", &names).Error
	if err != nil {
		return "", err
	}
	if len(names) > 0 {
		return names[0], nil
	}

	err = tx.Model(&Group{}).Where(&Group{NameFolded: folded}).Limit(1).Pluck("name", &names).Error
	if err != nil {
		return "", err
	}
	if len(names) > 0 {
		return names[0], nil
	}

	return "", ErrEntityNotFound
}

// Expenses returns all expenses, newest first.
func Expenses(db *gorm.DB) ([]Expense, error) {
	var expenses []Expense
	err := db.Preload("Attachments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("date DESC, created_at DESC").Find(&expenses).Error
	return expenses, err
}

// Returns all expenses on this instance for export
func (Expense) Export() (json.RawMessage, error) {
	var expenses []Expense
	err := DB.Where(&Expense{}).Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&expenses)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
