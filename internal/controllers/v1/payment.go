package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripsplit/backend/internal/balance"
	"github.com/tripsplit/backend/internal/httputil"
	"github.com/tripsplit/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterPaymentRoutes registers the routes for payments with
// the RouterGroup that is passed.
func RegisterPaymentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPaymentList)
		r.GET("", GetPayments)
		r.POST("", CreatePayments)
	}

	// Split payments
	{
		r.OPTIONS("/split", OptionsPaymentSplit)
		r.POST("/split", CreateSplitPayment)
	}

	// Payment with ID
	{
		r.OPTIONS("/:id", OptionsPaymentDetail)
		r.GET("/:id", GetPayment)
		r.PATCH("/:id", UpdatePayment)
		r.DELETE("/:id", DeletePayment)
	}
}

func OptionsPaymentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsPaymentSplit(c *gin.Context) {
	httputil.OptionsPost(c)
}

func OptionsPaymentDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Payment{})
}

// CreatePayments creates new payments
func CreatePayments(c *gin.Context) {
	var editables []PaymentEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := PaymentCreateResponse{}

	for _, editable := range editables {
		payment := editable.model()
		payment.Attachments = attachmentModels(editable.Attachments)

		err = models.DB.Create(&payment).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newPayment(c, payment)
		r.Data = append(r.Data, PaymentResponse{Data: &data})
	}

	c.JSON(status, r)
}

// CreateSplitPayment creates one payment per payer. The total amount is
// apportioned to the payers so that the shares sum to the total exactly.
func CreateSplitPayment(c *gin.Context) {
	var editable SplitPaymentEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentCreateResponse{
			Error: &e,
		})
		return
	}

	if len(editable.Sources) == 0 {
		e := errSplitNoPayers.Error()
		c.JSON(http.StatusBadRequest, PaymentCreateResponse{
			Error: &e,
		})
		return
	}

	shares := balance.Apportion(editable.Amount, len(editable.Sources))

	tx := models.DB.Begin()

	r := PaymentCreateResponse{}
	for i, source := range editable.Sources {
		payment := models.Payment{
			Note:        editable.Note,
			Amount:      shares[i],
			Category:    editable.Category,
			Source:      source,
			Destination: editable.Destination,
			Date:        editable.Date,
		}

		err = tx.Create(&payment).Error
		if err != nil {
			tx.Rollback()
			s := err.Error()
			c.JSON(status(err), PaymentCreateResponse{
				Error: &s,
			})
			return
		}

		data := newPayment(c, payment)
		r.Data = append(r.Data, PaymentResponse{Data: &data})
	}

	tx.Commit()
	c.JSON(http.StatusCreated, r)
}

// GetPayments returns all payments, newest first
func GetPayments(c *gin.Context) {
	var filter PaymentQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("date DESC, created_at DESC").
		Where(&filterModel, queryFields...)

	if filter.Note != "" {
		q = q.Where("note LIKE ?", fmt.Sprintf("%%%s%%", filter.Note))
	} else if slices.Contains(setFields, "Note") {
		q = q.Where("note = ''")
	}

	if filter.Search != "" {
		q = q.Where("note LIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 payments and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var payments []models.Payment
	err := q.Find(&payments).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Payment, 0, len(payments))
	for _, payment := range payments {
		data = append(data, newPayment(c, payment))
	}

	c.JSON(http.StatusOK, PaymentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetPayment returns a specific payment
func GetPayment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	var payment models.Payment
	err = models.DB.Preload("Attachments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&payment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	data := newPayment(c, payment)
	c.JSON(http.StatusOK, PaymentResponse{Data: &data})
}

// UpdatePayment updates an existing payment. An attachment list in the
// request body replaces the current attachments.
func UpdatePayment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	var payment models.Payment
	err = models.DB.First(&payment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PaymentEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	var data PaymentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	tx := models.DB.Begin()

	if slices.Contains(updateFields, "Attachments") {
		err = replaceAttachments(tx, &models.Attachment{PaymentID: &payment.ID}, attachmentModels(data.Attachments))
		if err != nil {
			tx.Rollback()
			s := err.Error()
			c.JSON(status(err), PaymentResponse{
				Error: &s,
			})
			return
		}

		// Attachments is not a column of the payments table
		updateFields = slices.DeleteFunc(updateFields, func(f any) bool { return f == "Attachments" })
	}

	if len(updateFields) > 0 {
		err = tx.Model(&payment).Select("", updateFields...).Updates(data.model()).Error
		if err != nil {
			tx.Rollback()
			s := err.Error()
			c.JSON(status(err), PaymentResponse{
				Error: &s,
			})
			return
		}
	}

	tx.Commit()

	err = models.DB.Preload("Attachments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&payment, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PaymentResponse{
			Error: &s,
		})
		return
	}

	r := newPayment(c, payment)
	c.JSON(http.StatusOK, PaymentResponse{Data: &r})
}

// DeletePayment deletes a payment and its attachments
func DeletePayment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var payment models.Payment
	err = models.DB.First(&payment, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&payment).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
