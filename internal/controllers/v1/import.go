package v1

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tripsplit/backend/internal/httputil"
	"github.com/tripsplit/backend/internal/importer"
	"github.com/tripsplit/backend/internal/importer/parser/tripjson"
	"github.com/tripsplit/backend/internal/models"
)

// ImportSummary reports the number of resources that an import created.
type ImportSummary struct {
	Persons  int `json:"persons" example:"4"`   // Number of persons created
	Groups   int `json:"groups" example:"1"`    // Number of groups created
	Expenses int `json:"expenses" example:"27"` // Number of expenses created
	Payments int `json:"payments" example:"3"`  // Number of payments created
}

type ImportResponse struct {
	Error *string        `json:"error" example:"could not parse the file"` // The error, if any occurred
	Data  *ImportSummary `json:"data"`                                     // Summary of the import
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	return formFile.Open()
}

// RegisterImportRoutes registers the routes for imports.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsImport)
	r.POST("", Import)
}

func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// Import parses a trip dump file and creates all resources it contains.
//
// Imports are only allowed into an empty instance so that resolved names
// cannot collide with existing resources.
func Import(c *gin.Context) {
	f, err := getUploadedFile(c, ".json")
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{Error: &s})
		return
	}

	var count int64
	err = models.DB.Model(&models.Person{}).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{Error: &s})
		return
	}

	if count > 0 {
		s := errImportNotEmpty.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{Error: &s})
		return
	}

	resources, err := tripjson.Parse(f)
	if err != nil {
		// tripjson.Parse returns a usable error already, no translation necessary
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{Error: &s})
		return
	}

	err = importer.Create(models.DB, resources)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, ImportResponse{
		Data: &ImportSummary{
			Persons:  len(resources.Persons),
			Groups:   len(resources.Groups),
			Expenses: len(resources.Expenses),
			Payments: len(resources.Payments),
		},
	})
}
