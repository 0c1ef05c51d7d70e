package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripsplit/backend/internal/models"
	"gorm.io/gorm"
)

// Cleanup permanently deletes all resources of the instance.
func Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errCleanupConfirmation.Error(),
		})
		return
	}

	// The order is important here since there are foreign keys to consider!
	resources := []models.Exportable{
		models.Attachment{},
		models.Expense{},
		models.Payment{},
		models.MatchRule{},
		models.GroupMember{},
		models.Group{},
		models.Person{},
	}

	// Use a transaction so that we can roll back if errors happen.
	// Hooks are skipped since their invariants, like the roster minimum,
	// do not apply to a full wipe.
	tx := models.DB.Session(&gorm.Session{SkipHooks: true}).Begin()

	for _, model := range resources {
		err := tx.Unscoped().Where("true").Delete(&model).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, httpError{
				Error: err.Error(),
			})
			tx.Rollback()
			return
		}
	}

	tx.Commit()
	c.JSON(http.StatusNoContent, nil)
}
