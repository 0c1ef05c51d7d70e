package importer

import (
	"github.com/tripsplit/backend/internal/models"
)

// ParsedResources is the struct containing all resources that are to be created.
//
// Attachments are already normalized to the canonical shape and hang off
// their expense or payment, names reference persons and groups by name.
type ParsedResources struct {
	Persons  []models.Person
	Groups   []Group
	Expenses []models.Expense
	Payments []models.Payment
}

// Group represents a group to be imported. Members are person names, the
// creator resolves them to IDs after the persons are created.
type Group struct {
	Model   models.Group
	Members []string
}
