package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/tripsplit/backend/internal/models"
)

// PersonEditable represents all user configurable parameters
type PersonEditable struct {
	Name     string `json:"name" example:"Ana" default:""`            // Name of the person
	Car      string `json:"car" example:"car-ana" default:""`         // Identifier of the car the person rides in, empty for none
	Drinks   bool   `json:"drinks" example:"true" default:"false"`    // Does the person share drinks expenses?
	Finished bool   `json:"finished" example:"false" default:"false"` // Has the person finished entering their expenses?
}

func (editable PersonEditable) model() models.Person {
	return models.Person{
		Name:     editable.Name,
		Car:      editable.Car,
		Drinks:   editable.Drinks,
		Finished: editable.Finished,
	}
}

type PersonLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/persons/d1b4a9d6-4d5e-4c8a-8b1e-9c0f5c1b1a0a"` // The person itself
}

type Person struct {
	models.DefaultModel
	PersonEditable
	Links PersonLinks `json:"links"`
}

func newPerson(c *gin.Context, model models.Person) Person {
	url := c.GetString(string(models.DBContextURL))

	return Person{
		DefaultModel: model.DefaultModel,
		PersonEditable: PersonEditable{
			Name:     model.Name,
			Car:      model.Car,
			Drinks:   model.Drinks,
			Finished: model.Finished,
		},
		Links: PersonLinks{
			Self: fmt.Sprintf("%s/v1/persons/%s", url, model.ID),
		},
	}
}

type PersonListResponse struct {
	Data       []Person    `json:"data"`                                                          // List of Persons
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type PersonCreateResponse struct {
	Data  []PersonResponse `json:"data"`                                                          // List of the created Persons or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (p *PersonCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	p.Data = append(p.Data, PersonResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type PersonResponse struct {
	Data  *Person `json:"data"`                                                          // Data for the Person
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PersonQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Car      string `form:"car"`                        // By car identifier
	Drinks   bool   `form:"drinks"`                     // Does the person share drinks expenses?
	Finished bool   `form:"finished"`                   // Has the person finished entering their expenses?
	Search   string `form:"search" filterField:"false"` // Search for this text in the name
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Person returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Persons to return. Defaults to 50.
}

func (f PersonQueryFilter) model() models.Person {
	return models.Person{
		Car:      f.Car,
		Drinks:   f.Drinks,
		Finished: f.Finished,
	}
}
