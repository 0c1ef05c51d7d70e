package tripjson

import (
	"github.com/shopspring/decimal"
)

// Dump is the root object of a legacy trip export.
//
// Unused fields of the legacy format have been removed to keep the structs
// as small as possible.
type Dump struct {
	Persons  []Person  `json:"persons"`
	Groups   []Group   `json:"groups"`
	Expenses []Expense `json:"expenses"`
	Payments []Payment `json:"payments"`
}

type Person struct {
	Name     string `json:"name"`
	Car      string `json:"car"`
	Drinks   bool   `json:"drinks"`
	Finished bool   `json:"finished"`
}

type Group struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type Expense struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	PaidBy      string          `json:"paidBy"`
	Date        string          `json:"date"`

	// Canonical attachment list. Old records carry a single attachment in
	// the two singular fields instead.
	Attachments       []Attachment `json:"attachments"`
	AttachmentName    string       `json:"attachmentName"`
	AttachmentDataURL string       `json:"attachmentDataUrl"`
}

type Payment struct {
	Note        string          `json:"note"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Source      string          `json:"source"`
	Destination string          `json:"destination"`
	Date        string          `json:"date"`

	Attachments       []Attachment `json:"attachments"`
	AttachmentName    string       `json:"attachmentName"`
	AttachmentDataURL string       `json:"attachmentDataUrl"`
}

type Attachment struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
}
