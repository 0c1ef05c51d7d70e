package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrNameRequired     = errors.New("the name must not be empty")
)

// Person errors
var (
	ErrPersonNameNotUnique = errors.New("the person name is already in use")
	ErrPersonRosterMinimum = errors.New("at least 2 persons must remain on the roster")
	ErrPersonNameIsGroup   = errors.New("a group with this name already exists")
)

// Group errors
var (
	ErrGroupNameNotUnique   = errors.New("the group name is already in use")
	ErrGroupNameIsPerson    = errors.New("a person with this name already exists")
	ErrGroupTooSmall        = errors.New("a group needs at least 2 distinct members")
	ErrPersonAlreadyGrouped = errors.New("the person already belongs to a group")
)

// Expense and payment errors
var (
	ErrAmountNotPositive       = errors.New("amounts must be larger than zero")
	ErrDescriptionRequired     = errors.New("expenses must have a description")
	ErrSourceEqualsDestination = errors.New("source and destination of a payment must be different")
	ErrEntityNotFound          = errors.New("no person or group has this name")
)

// Attachment errors
var ErrAttachmentUnowned = errors.New("an attachment must belong to exactly one expense or payment")
