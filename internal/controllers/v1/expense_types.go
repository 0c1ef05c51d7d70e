package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tripsplit/backend/internal/models"
)

// AttachmentEditable represents all user configurable parameters of an attachment
type AttachmentEditable struct {
	Name    string `json:"name" example:"receipt.jpg" default:""`                 // File name of the attachment
	DataURL string `json:"dataUrl" example:"data:image/jpeg;base64,/9j/4A" default:""` // Content as data URL
}

// attachmentModels converts the attachment list into model rows.
func attachmentModels(editables []AttachmentEditable) []models.Attachment {
	attachments := make([]models.Attachment, 0, len(editables))
	for position, editable := range editables {
		attachments = append(attachments, models.Attachment{
			Name:     editable.Name,
			DataURL:  editable.DataURL,
			Position: uint(position),
		})
	}

	return attachments
}

func newAttachments(attachments []models.Attachment) []AttachmentEditable {
	data := make([]AttachmentEditable, 0, len(attachments))
	for _, attachment := range attachments {
		data = append(data, AttachmentEditable{
			Name:    attachment.Name,
			DataURL: attachment.DataURL,
		})
	}

	return data
}

// ExpenseEditable represents all user configurable parameters
type ExpenseEditable struct {
	Description string               `json:"description" example:"Groceries" default:""`       // What the money was spent on
	Amount      decimal.Decimal      `json:"amount" example:"54.99"`                           // Amount that was paid
	Category    string               `json:"category" example:"drinks" default:""`             // Category deciding who shares the expense, empty for everyone
	PaidBy      string               `json:"paidBy" example:"Ana"`                             // Name of the person or group that paid
	Date        time.Time            `json:"date" example:"2024-07-14T00:00:00Z"`              // Date the expense was made, defaults to the creation time
	Attachments []AttachmentEditable `json:"attachments"`                                      // Receipts for the expense, in display order
}

func (editable ExpenseEditable) model() models.Expense {
	return models.Expense{
		Description: editable.Description,
		Amount:      editable.Amount,
		Category:    editable.Category,
		PaidBy:      editable.PaidBy,
		Date:        editable.Date,
	}
}

type ExpenseLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/expenses/d430d7c3-d14c-4712-9336-ee56965a6673"` // The expense itself
}

type Expense struct {
	models.DefaultModel
	ExpenseEditable
	Links ExpenseLinks `json:"links"`
}

func newExpense(c *gin.Context, model models.Expense) Expense {
	url := c.GetString(string(models.DBContextURL))

	return Expense{
		DefaultModel: model.DefaultModel,
		ExpenseEditable: ExpenseEditable{
			Description: model.Description,
			Amount:      model.Amount,
			Category:    model.Category,
			PaidBy:      model.PaidBy,
			Date:        model.Date,
			Attachments: newAttachments(model.Attachments),
		},
		Links: ExpenseLinks{
			Self: fmt.Sprintf("%s/v1/expenses/%s", url, model.ID),
		},
	}
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`                                                          // List of Expenses
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ExpenseCreateResponse struct {
	Data  []ExpenseResponse `json:"data"`                                                          // List of the created Expenses or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (e *ExpenseCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	e.Data = append(e.Data, ExpenseResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ExpenseResponse struct {
	Data  *Expense `json:"data"`                                                          // Data for the Expense
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ExpenseQueryFilter struct {
	Description string `form:"description" filterField:"false"` // By description
	Category    string `form:"category"`                        // By category
	PaidBy      string `form:"paidBy"`                          // By the name of the paying entity
	Search      string `form:"search" filterField:"false"`      // Search for this text in the description
	Offset      uint   `form:"offset" filterField:"false"`      // The offset of the first Expense returned. Defaults to 0.
	Limit       int    `form:"limit" filterField:"false"`       // Maximum number of Expenses to return. Defaults to 50.
}

func (f ExpenseQueryFilter) model() models.Expense {
	return models.Expense{
		Category: f.Category,
		PaidBy:   f.PaidBy,
	}
}
