package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tripsplit/backend/internal/models"
)

// PaymentEditable represents all user configurable parameters
type PaymentEditable struct {
	Note        string               `json:"note" example:"Settling up after the trip" default:""` // Note for the payment
	Amount      decimal.Decimal      `json:"amount" example:"14.50"`                               // Amount that was paid
	Category    string               `json:"category" example:"drinks" default:""`                 // Category for display grouping, has no effect on balances
	Source      string               `json:"source" example:"Bruno"`                               // Name of the person or group that paid
	Destination string               `json:"destination" example:"Ana"`                            // Name of the person or group that received the money
	Date        time.Time            `json:"date" example:"2024-07-20T00:00:00Z"`                  // Date of the payment, defaults to the creation time
	Attachments []AttachmentEditable `json:"attachments"`                                          // Receipts for the payment, in display order
}

func (editable PaymentEditable) model() models.Payment {
	return models.Payment{
		Note:        editable.Note,
		Amount:      editable.Amount,
		Category:    editable.Category,
		Source:      editable.Source,
		Destination: editable.Destination,
		Date:        editable.Date,
	}
}

type PaymentLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/payments/d430d7c3-d14c-4712-9336-ee56965a6673"` // The payment itself
}

type Payment struct {
	models.DefaultModel
	PaymentEditable
	Links PaymentLinks `json:"links"`
}

func newPayment(c *gin.Context, model models.Payment) Payment {
	url := c.GetString(string(models.DBContextURL))

	return Payment{
		DefaultModel: model.DefaultModel,
		PaymentEditable: PaymentEditable{
			Note:        model.Note,
			Amount:      model.Amount,
			Category:    model.Category,
			Source:      model.Source,
			Destination: model.Destination,
			Date:        model.Date,
			Attachments: newAttachments(model.Attachments),
		},
		Links: PaymentLinks{
			Self: fmt.Sprintf("%s/v1/payments/%s", url, model.ID),
		},
	}
}

type PaymentListResponse struct {
	Data       []Payment   `json:"data"`                                                          // List of Payments
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PaymentCreateResponse struct {
	Data  []PaymentResponse `json:"data"`                                                          // List of the created Payments or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *PaymentCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, PaymentResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PaymentResponse struct {
	Data  *Payment `json:"data"`                                                          // Data for the Payment
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PaymentQueryFilter struct {
	Note        string `form:"note" filterField:"false"`   // By note
	Category    string `form:"category"`                   // By category
	Source      string `form:"source"`                     // By the name of the paying entity
	Destination string `form:"destination"`                // By the name of the receiving entity
	Search      string `form:"search" filterField:"false"` // Search for this text in the note
	Offset      uint   `form:"offset" filterField:"false"` // The offset of the first Payment returned. Defaults to 0.
	Limit       int    `form:"limit" filterField:"false"`  // Maximum number of Payments to return. Defaults to 50.
}

func (f PaymentQueryFilter) model() models.Payment {
	return models.Payment{
		Category:    f.Category,
		Source:      f.Source,
		Destination: f.Destination,
	}
}

// SplitPaymentEditable is one logical payment made by several payers at
// once. It is recorded as one payment per payer.
type SplitPaymentEditable struct {
	Note        string          `json:"note" example:"Dinner paid together" default:""` // Note for all created payments
	Amount      decimal.Decimal `json:"amount" example:"90"`                            // Total amount paid by all payers together
	Category    string          `json:"category" example:"" default:""`                 // Category for display grouping
	Sources     []string        `json:"sources" example:"Ana,Bruno"`                    // Names of the paying entities
	Destination string          `json:"destination" example:"Carla"`                    // Name of the receiving entity
	Date        time.Time       `json:"date" example:"2024-07-20T00:00:00Z"`            // Date of the payment, defaults to the creation time
}
