package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripsplit/backend/internal/httputil"
	"github.com/tripsplit/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterPersonRoutes registers the routes for persons with
// the RouterGroup that is passed.
func RegisterPersonRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsPersonList)
		r.GET("", GetPersons)
		r.POST("", CreatePersons)
	}

	// Person with ID
	{
		r.OPTIONS("/:id", OptionsPersonDetail)
		r.GET("/:id", GetPerson)
		r.PATCH("/:id", UpdatePerson)
		r.DELETE("/:id", DeletePerson)
	}
}

func OptionsPersonList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsPersonDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Person{})
}

// CreatePersons creates new persons
func CreatePersons(c *gin.Context) {
	var editables []PersonEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PersonCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := PersonCreateResponse{}

	for _, editable := range editables {
		person := editable.model()

		err = models.DB.Create(&person).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newPerson(c, person)
		r.Data = append(r.Data, PersonResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetPersons returns the roster in creation order
func GetPersons(c *gin.Context) {
	var filter PersonQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("created_at ASC, id ASC").
		Where(&filterModel, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	if filter.Search != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 persons and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var persons []models.Person
	err := q.Find(&persons).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PersonListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PersonListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Person, 0, len(persons))
	for _, person := range persons {
		data = append(data, newPerson(c, person))
	}

	c.JSON(http.StatusOK, PersonListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetPerson returns a specific person
func GetPerson(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &s,
		})
		return
	}

	var person models.Person
	err = models.DB.First(&person, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &s,
		})
		return
	}

	data := newPerson(c, person)
	c.JSON(http.StatusOK, PersonResponse{Data: &data})
}

// UpdatePerson updates an existing person. Only values to be updated need to be specified.
func UpdatePerson(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &s,
		})
		return
	}

	var person models.Person
	err = models.DB.First(&person, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PersonEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &s,
		})
		return
	}

	// The folded name is derived from the name and has to be written
	// together with it.
	if slices.Contains(updateFields, "Name") {
		updateFields = append(updateFields, "NameFolded")
	}

	var data PersonEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&person).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PersonResponse{
			Error: &s,
		})
		return
	}

	r := newPerson(c, person)
	c.JSON(http.StatusOK, PersonResponse{Data: &r})
}

// DeletePerson deletes a person
func DeletePerson(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var person models.Person
	err = models.DB.First(&person, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&person).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
