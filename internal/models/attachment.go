package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment is a receipt image or document stored inline as a data URL.
//
// An attachment belongs to exactly one expense or one payment. Position
// orders the attachments of a record.
type Attachment struct {
	DefaultModel
	ExpenseID *uuid.UUID `json:"expenseId"`
	PaymentID *uuid.UUID `json:"paymentId"`
	Name      string     `json:"name"`
	DataURL   string     `json:"dataUrl"`
	Position  uint       `json:"position"`
}

// BeforeSave verifies that the attachment has exactly one owner.
func (a *Attachment) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)

	if (a.ExpenseID == nil) == (a.PaymentID == nil) {
		return ErrAttachmentUnowned
	}

	return nil
}

// Returns all attachments on this instance for export
func (Attachment) Export() (json.RawMessage, error) {
	var attachments []Attachment
	err := DB.Where(&Attachment{}).Find(&attachments).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&attachments)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
