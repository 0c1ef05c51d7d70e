package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is a direct reimbursement from one entity to another.
//
// Like Expense.PaidBy, Source and Destination hold entity names. The
// category is kept for display grouping only and has no effect on
// eligibility.
type Payment struct {
	DefaultModel
	Note        string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category    string
	Source      string
	Destination string
	Date        time.Time
	Attachments []Attachment `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE"`
}

// BeforeSave validates the payment and defaults the date to now.
func (p *Payment) BeforeSave(_ *gorm.DB) error {
	p.Note = strings.TrimSpace(p.Note)
	p.Category = strings.TrimSpace(p.Category)
	p.Source = strings.TrimSpace(p.Source)
	p.Destination = strings.TrimSpace(p.Destination)

	if p.Date.IsZero() {
		p.Date = time.Now().In(time.UTC)
	} else {
		p.Date = p.Date.In(time.UTC)
	}

	return nil
}

// AfterSave validates the final state of the payment. The checks run here
// instead of BeforeSave so that partial updates are validated against the
// merged record.
func (p *Payment) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(p.Amount) {
		return ErrAmountNotPositive
	}

	if foldName(p.Source) == foldName(p.Destination) {
		return ErrSourceEqualsDestination
	}

	return nil
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Payment)

	name, err := canonicalEntityName(tx, toSave.Source)
	if err != nil {
		return err
	}
	toSave.Source = name

	name, err = canonicalEntityName(tx, toSave.Destination)
	if err != nil {
		return err
	}
	toSave.Destination = name

	return nil
}

func (p *Payment) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Payment)

	if tx.Statement.Changed("Source") {
		name, err := canonicalEntityName(tx, toSave.Source)
		if err != nil {
			return err
		}

		tx.Statement.SetColumn("Source", name)
	}

	if tx.Statement.Changed("Destination") {
		name, err := canonicalEntityName(tx, toSave.Destination)
		if err != nil {
			return err
		}

		tx.Statement.SetColumn("Destination", name)
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, see DefaultModel.
func (p *Payment) AfterFind(tx *gorm.DB) error {
	_ = p.DefaultModel.AfterFind(tx)

	p.Date = p.Date.In(time.UTC)
	return nil
}

// Payments returns all payments, newest first.
func Payments(db *gorm.DB) ([]Payment, error) {
	var payments []Payment
	err := db.Preload("Attachments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("date DESC, created_at DESC").Find(&payments).Error
	return payments, err
}

// Returns all payments on this instance for export
func (Payment) Export() (json.RawMessage, error) {
	var payments []Payment
	err := DB.Where(&Payment{}).Find(&payments).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&payments)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
