package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TripContext is the type for keys of values that handlers store in the
// request context.
type TripContext string

const (
	// DBContextURL is the key for the base URL the API is reachable at.
	DBContextURL TripContext = "tripsplit-backend-url"
)

// Exportable is implemented by every model that is part of a full export.
type Exportable interface {
	Export() (json.RawMessage, error)
}

// Registry lists all models for the export endpoint.
var Registry = []Exportable{
	Person{},
	Group{},
	GroupMember{},
	Expense{},
	Payment{},
	Attachment{},
	MatchRule{},
}

// DefaultModel is the base model for all models in the backend.
type DefaultModel struct {
	ID uuid.UUID `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"` // UUID for the resource
	Timestamps
}

// Timestamps contains the timestamps that gorm sets automatically.
//
// There is no DeletedAt: expense and roster records are deleted for real,
// soft-deleted rows would keep occupying the unique name indexes.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" example:"2022-04-02T19:28:44.491514Z"` // Time the resource was created
	UpdatedAt time.Time `json:"updatedAt" example:"2022-04-17T20:14:01.048145Z"` // Last time the resource was updated
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (m *DefaultModel) AfterFind(_ *gorm.DB) error {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)

	return nil
}

// BeforeCreate is set to generate a UUID for the resource.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) error {
	m.ID = uuid.New()
	return nil
}
