package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is a named set of persons that pays, gets paid and owes as one
// entity. Its members share one balance.
type Group struct {
	DefaultModel
	Name       string
	NameFolded string        `gorm:"uniqueIndex"` // Unicode case fold of Name, enforces case-insensitive uniqueness
	Members    []GroupMember `gorm:"constraint:OnDelete:CASCADE"`
}

// GroupMember links one person to the group they belong to.
//
// The unique index on PersonID enforces that a person belongs to at most
// one group.
type GroupMember struct {
	DefaultModel
	GroupID  uuid.UUID
	PersonID uuid.UUID `gorm:"uniqueIndex"`
	Person   Person
	Position uint // order of the member within the group
}

// BeforeSave trims whitespace and keeps the folded name in sync.
func (g *Group) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.NameFolded = foldName(g.Name)

	return nil
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Group)
	return g.checkIntegrity(tx, *toSave)
}

func (g *Group) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Name") {
		toSave := tx.Statement.Dest.(Group)
		return g.checkNameFree(tx, toSave)
	}

	return nil
}

// BeforeDelete ungroups the members. They revert to being entities of
// their own, history referencing the group name dangles on purpose.
func (g *Group) BeforeDelete(tx *gorm.DB) error {
	return tx.Where(&GroupMember{GroupID: g.ID}).Delete(&GroupMember{}).Error
}

// checkIntegrity verifies the group invariants on creation: at least two
// distinct members and a name no person uses. Membership in another group
// is caught by the unique index on GroupMember.PersonID.
func (g *Group) checkIntegrity(tx *gorm.DB, toSave Group) error {
	distinct := make(map[uuid.UUID]bool, len(toSave.Members))
	for _, member := range toSave.Members {
		distinct[member.PersonID] = true
	}
	if len(distinct) < 2 {
		return ErrGroupTooSmall
	}

	return g.checkNameFree(tx, toSave)
}

// checkNameFree returns an error when a person already uses the name.
// Collisions with other groups are caught by the unique index.
func (g *Group) checkNameFree(tx *gorm.DB, toSave Group) error {
	if strings.TrimSpace(toSave.Name) == "" {
		return ErrNameRequired
	}

	var count int64
	err := tx.Model(&Person{}).Where(&Person{NameFolded: foldName(toSave.Name)}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrGroupNameIsPerson
	}

	return nil
}

// MemberNames returns the names of the group's members in group order.
func (g Group) MemberNames(db *gorm.DB) ([]string, error) {
	var members []GroupMember
	err := db.Preload("Person").Where(&GroupMember{GroupID: g.ID}).Order("position ASC").Find(&members).Error
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(members))
	for _, member := range members {
		names = append(names, member.Person.Name)
	}

	return names, nil
}

// Groups returns all groups in creation order.
func Groups(db *gorm.DB) ([]Group, error) {
	var groups []Group
	err := db.Order("created_at ASC, id ASC").Find(&groups).Error
	return groups, err
}

// Returns all groups on this instance for export
func (Group) Export() (json.RawMessage, error) {
	var groups []Group
	err := DB.Where(&Group{}).Find(&groups).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&groups)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}

// Returns all group memberships on this instance for export
func (GroupMember) Export() (json.RawMessage, error) {
	var members []GroupMember
	err := DB.Where(&GroupMember{}).Find(&members).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&members)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
