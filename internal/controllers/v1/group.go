package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tripsplit/backend/internal/httputil"
	"github.com/tripsplit/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterGroupRoutes registers the routes for groups with
// the RouterGroup that is passed.
func RegisterGroupRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGroupList)
		r.GET("", GetGroups)
		r.POST("", CreateGroups)
	}

	// Group with ID
	{
		r.OPTIONS("/:id", OptionsGroupDetail)
		r.GET("/:id", GetGroup)
		r.PATCH("/:id", UpdateGroup)
		r.DELETE("/:id", DeleteGroup)
	}
}

func OptionsGroupList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsGroupDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Group{})
}

// CreateGroups creates new groups
func CreateGroups(c *gin.Context) {
	var editables []GroupEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := GroupCreateResponse{}

	for _, editable := range editables {
		group := editable.model()
		group.Members = editable.memberModels()

		err = models.DB.Create(&group).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := newGroup(c, models.DB, group)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, GroupResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetGroups returns all groups in creation order
func GetGroups(c *gin.Context) {
	var filter GroupQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("created_at ASC, id ASC")

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

	// Default to 50 groups and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var groups []models.Group
	err := q.Find(&groups).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Group, 0, len(groups))
	for _, group := range groups {
		apiResource, err := newGroup(c, models.DB, group)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), GroupListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, GroupListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetGroup returns a specific group with its resolved member names
func GetGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	var group models.Group
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	data, err := newGroup(c, models.DB, group)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, GroupResponse{Data: &data})
}

// UpdateGroup updates an existing group. A member list in the request body
// replaces the current members.
func UpdateGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	var group models.Group
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, GroupEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	var data GroupEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	tx := models.DB.Begin()

	if slices.Contains(updateFields, "Members") {
		err = replaceMembers(tx, &group, data.memberModels())
		if err != nil {
			tx.Rollback()
			s := err.Error()
			c.JSON(status(err), GroupResponse{
				Error: &s,
			})
			return
		}

		// Members is not a column of the groups table
		updateFields = slices.DeleteFunc(updateFields, func(f any) bool { return f == "Members" })
	}

	// The folded name is derived from the name and has to be written
	// together with it.
	if slices.Contains(updateFields, "Name") {
		updateFields = append(updateFields, "NameFolded")
	}

	if len(updateFields) > 0 {
		err = tx.Model(&group).Select("", updateFields...).Updates(data.model()).Error
		if err != nil {
			tx.Rollback()
			s := err.Error()
			c.JSON(status(err), GroupResponse{
				Error: &s,
			})
			return
		}
	}

	tx.Commit()

	r, err := newGroup(c, models.DB, group)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GroupResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, GroupResponse{Data: &r})
}

// replaceMembers swaps the membership rows of the group for the new list.
func replaceMembers(tx *gorm.DB, group *models.Group, members []models.GroupMember) error {
	distinct := make(map[uuid.UUID]bool, len(members))
	for _, member := range members {
		distinct[member.PersonID] = true
	}
	if len(distinct) < 2 {
		return models.ErrGroupTooSmall
	}

	err := tx.Where(&models.GroupMember{GroupID: group.ID}).Delete(&models.GroupMember{}).Error
	if err != nil {
		return err
	}

	for _, member := range members {
		member.GroupID = group.ID
		err = tx.Create(&member).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// DeleteGroup deletes a group. Its members stay on the roster as ungrouped
// persons.
func DeleteGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var group models.Group
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&group).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
