package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tripsplit/backend/internal/models"
	"gorm.io/gorm"
)

// GroupEditable represents all user configurable parameters
type GroupEditable struct {
	Name    string      `json:"name" example:"Família" default:""`                                                      // Name of the group
	Members []uuid.UUID `json:"members" example:"d1b4a9d6-4d5e-4c8a-8b1e-9c0f5c1b1a0a,65392deb-5e92-4268-b114-297faad6cdce"` // IDs of the member persons, in group order
}

func (editable GroupEditable) model() models.Group {
	return models.Group{
		Name: editable.Name,
	}
}

// memberModels converts the member ID list into membership rows.
func (editable GroupEditable) memberModels() []models.GroupMember {
	members := make([]models.GroupMember, 0, len(editable.Members))
	for position, id := range editable.Members {
		members = append(members, models.GroupMember{
			PersonID: id,
			Position: uint(position),
		})
	}

	return members
}

type GroupLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/groups/3b1ea324-d438-4419-882a-2fc91d71772f"` // The group itself
}

// GroupMemberData is one group member in API responses.
type GroupMemberData struct {
	PersonID uuid.UUID `json:"personId" example:"d1b4a9d6-4d5e-4c8a-8b1e-9c0f5c1b1a0a"` // ID of the person
	Name     string    `json:"name" example:"Ana"`                                      // Name of the person
}

type Group struct {
	models.DefaultModel
	Name  string     `json:"name" example:"Família"`
	Links GroupLinks `json:"links"`

	// These fields are computed
	Members []GroupMemberData `json:"members"` // Members of the group, in group order
}

func newGroup(c *gin.Context, db *gorm.DB, model models.Group) (Group, error) {
	url := c.GetString(string(models.DBContextURL))

	group := Group{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		Links: GroupLinks{
			Self: fmt.Sprintf("%s/v1/groups/%s", url, model.ID),
		},
		Members: make([]GroupMemberData, 0),
	}

	var members []models.GroupMember
	err := db.Preload("Person").Where(&models.GroupMember{GroupID: model.ID}).Order("position ASC").Find(&members).Error
	if err != nil {
		return Group{}, err
	}

	for _, member := range members {
		group.Members = append(group.Members, GroupMemberData{
			PersonID: member.PersonID,
			Name:     member.Person.Name,
		})
	}

	return group, nil
}

type GroupListResponse struct {
	Data       []Group     `json:"data"`                                                          // List of Groups
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GroupCreateResponse struct {
	Data  []GroupResponse `json:"data"`                                                          // List of the created Groups or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (g *GroupCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	g.Data = append(g.Data, GroupResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GroupResponse struct {
	Data  *Group  `json:"data"`                                                          // Data for the Group
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GroupQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Search string `form:"search" filterField:"false"` // Search for this text in the name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Group returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Groups to return. Defaults to 50.
}
