package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/tripsplit/backend/internal/controllers/v1"
	"github.com/tripsplit/backend/internal/models"
	"github.com/tripsplit/backend/test"
)

func (suite *TestSuiteStandard) TestPersonsCreate() {
	person := createTestPerson(suite.T(), v1.PersonEditable{Name: "Ana", Car: "car-ana", Drinks: true})

	assert.Equal(suite.T(), "Ana", person.Data.Name)
	assert.Equal(suite.T(), "car-ana", person.Data.Car)
	assert.True(suite.T(), person.Data.Drinks)
	assert.False(suite.T(), person.Data.Finished)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/persons/%s", person.Data.ID), person.Data.Links.Self)
}

// TestPersonsCreateErrors verifies that creation errors are reported
// per resource in the batch response.
func (suite *TestSuiteStandard) TestPersonsCreateErrors() {
	_ = createTestPerson(suite.T(), v1.PersonEditable{Name: "Ana"})

	tests := []struct {
		name   string
		body   any
		status int
		err    error
	}{
		{"Duplicate name", []v1.PersonEditable{{Name: "Ana"}}, http.StatusBadRequest, models.ErrPersonNameNotUnique},
		{"Duplicate name folded", []v1.PersonEditable{{Name: "ANA"}}, http.StatusBadRequest, models.ErrPersonNameNotUnique},
		{"Empty name", []v1.PersonEditable{{Name: ""}}, http.StatusBadRequest, models.ErrNameRequired},
		{"Broken body", `{ "name": `, http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodPost, "http://example.com/v1/persons", tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)

			if tt.err != nil {
				var response v1.PersonCreateResponse
				test.DecodeResponse(t, &recorder, &response)
				require.Len(t, response.Data, 1)
				assert.Contains(t, *response.Data[0].Error, tt.err.Error())
			}
		})
	}
}

// TestPersonsCreateMixed verifies that a batch with one valid and one
// invalid person creates the valid one and reports the error for the other.
func (suite *TestSuiteStandard) TestPersonsCreateMixed() {
	body := []v1.PersonEditable{
		{Name: "Ana"},
		{Name: "Ana"},
	}

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/persons", body)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.PersonCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	require.Len(suite.T(), response.Data, 2)

	assert.NotNil(suite.T(), response.Data[0].Data)
	assert.Nil(suite.T(), response.Data[0].Error)
	assert.NotNil(suite.T(), response.Data[1].Error)
}

func (suite *TestSuiteStandard) TestPersonsGetSingle() {
	person := createTestPerson(suite.T(), v1.PersonEditable{Name: "Bruno"})

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Existing", person.Data.ID.String(), http.StatusOK},
		{"Nonexistent", uuid.NewString(), http.StatusNotFound},
		{"Invalid ID", "definitely-not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/persons/%s", tt.id), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)

			if tt.status == http.StatusOK {
				var response v1.PersonResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Equal(t, "Bruno", response.Data.Name)
			}
		})
	}
}

// TestPersonsList verifies the list endpoint with its filters. The roster
// is returned in creation order.
func (suite *TestSuiteStandard) TestPersonsList() {
	_ = createTestPerson(suite.T(), v1.PersonEditable{Name: "Ana", Car: "car-ana", Drinks: true})
	_ = createTestPerson(suite.T(), v1.PersonEditable{Name: "Bruno"})
	_ = createTestPerson(suite.T(), v1.PersonEditable{Name: "Carla", Car: "car-ana", Drinks: true, Finished: true})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All", "", 3},
		{"By car", "car=car-ana", 2},
		{"Drinks", "drinks=true", 2},
		{"Finished", "finished=true", 1},
		{"Not finished", "finished=false", 2},
		{"By name", "name=Bruno", 1},
		{"Search", "search=a", 2},
		{"Search no match", "search=zzz", 0},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/persons?%s", tt.query), "")
			test.AssertHTTPStatus(t, &recorder, http.StatusOK)

			var response v1.PersonListResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}

	// The roster is ordered by creation
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/persons", "")
	var response v1.PersonListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	require.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), "Ana", response.Data[0].Name)
	assert.Equal(suite.T(), "Bruno", response.Data[1].Name)
	assert.Equal(suite.T(), "Carla", response.Data[2].Name)

	require.NotNil(suite.T(), response.Pagination)
	assert.Equal(suite.T(), int64(3), response.Pagination.Total)
	assert.Equal(suite.T(), 50, response.Pagination.Limit)
}

func (suite *TestSuiteStandard) TestPersonsUpdate() {
	person := createTestPerson(suite.T(), v1.PersonEditable{Name: "Ana"})

	recorder := test.Request(suite.T(), http.MethodPatch, person.Data.Links.Self, map[string]any{
		"car":    "car-bruno",
		"drinks": true,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PersonResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Ana", response.Data.Name)
	assert.Equal(suite.T(), "car-bruno", response.Data.Car)
	assert.True(suite.T(), response.Data.Drinks)
}

func (suite *TestSuiteStandard) TestPersonsUpdateRename() {
	person := createTestPerson(suite.T(), v1.PersonEditable{Name: "Ana"})
	_ = createTestPerson(suite.T(), v1.PersonEditable{Name: "Bruno"})

	// Renaming to a name that is only taken in another case fails
	recorder := test.Request(suite.T(), http.MethodPatch, person.Data.Links.Self, map[string]any{"name": "BRUNO"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodPatch, person.Data.Links.Self, map[string]any{"name": "Alícia"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PersonResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Alícia", response.Data.Name)
}

func (suite *TestSuiteStandard) TestPersonsDelete() {
	person := createTestPerson(suite.T(), v1.PersonEditable{Name: "Ana"})
	_ = createTestPerson(suite.T(), v1.PersonEditable{Name: "Bruno"})
	_ = createTestPerson(suite.T(), v1.PersonEditable{Name: "Carla"})

	recorder := test.Request(suite.T(), http.MethodDelete, person.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, person.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

// TestPersonsDeleteRosterMinimum verifies that the roster cannot shrink
// below two persons.
func (suite *TestSuiteStandard) TestPersonsDeleteRosterMinimum() {
	person := createTestPerson(suite.T(), v1.PersonEditable{Name: "Ana"})
	_ = createTestPerson(suite.T(), v1.PersonEditable{Name: "Bruno"})

	recorder := test.Request(suite.T(), http.MethodDelete, person.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), response.Error, models.ErrPersonRosterMinimum.Error())
}

func (suite *TestSuiteStandard) TestPersonsDBClosed() {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestPerson(t, v1.PersonEditable{Name: "Ana"}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/persons", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.PersonListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}
