package models_test

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripsplit/backend/internal/models"
)

func (suite *TestSuiteStandard) TestGroupTooSmall() {
	person := suite.createTestPerson(models.Person{})

	tests := []struct {
		name    string
		members []models.GroupMember
	}{
		{"no members", nil},
		{"one member", []models.GroupMember{{PersonID: person.ID}}},
		{"duplicate member", []models.GroupMember{{PersonID: person.ID}, {PersonID: person.ID}}},
	}

	for _, tt := range tests {
		err := models.DB.Create(&models.Group{Name: tt.name, Members: tt.members}).Error
		assert.ErrorIs(suite.T(), err, models.ErrGroupTooSmall, "case %q", tt.name)
	}
}

func (suite *TestSuiteStandard) TestGroupNameUniqueCaseInsensitive() {
	a := suite.createTestPerson(models.Person{})
	b := suite.createTestPerson(models.Person{})
	members := []models.GroupMember{{PersonID: a.ID}, {PersonID: b.ID}}

	_ = suite.createTestGroup(models.Group{Name: "Família", Members: members})

	c := suite.createTestPerson(models.Person{})
	d := suite.createTestPerson(models.Person{})
	err := models.DB.Create(&models.Group{
		Name:    "FAMÍLIA",
		Members: []models.GroupMember{{PersonID: c.ID}, {PersonID: d.ID}},
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGroupNameNotUnique)
}

func (suite *TestSuiteStandard) TestGroupNameRequired() {
	a := suite.createTestPerson(models.Person{})
	b := suite.createTestPerson(models.Person{})

	err := models.DB.Create(&models.Group{
		Name:    " ",
		Members: []models.GroupMember{{PersonID: a.ID}, {PersonID: b.ID}},
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrNameRequired)
}

func (suite *TestSuiteStandard) TestGroupNameCollidesWithPerson() {
	a := suite.createTestPerson(models.Person{Name: "Ana"})
	b := suite.createTestPerson(models.Person{})

	err := models.DB.Create(&models.Group{
		Name:    "ana",
		Members: []models.GroupMember{{PersonID: a.ID}, {PersonID: b.ID}},
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGroupNameIsPerson)
}

func (suite *TestSuiteStandard) TestGroupMemberAlreadyGrouped() {
	a := suite.createTestPerson(models.Person{})
	b := suite.createTestPerson(models.Person{})
	c := suite.createTestPerson(models.Person{})

	_ = suite.createTestGroup(models.Group{
		Members: []models.GroupMember{{PersonID: a.ID}, {PersonID: b.ID}},
	})

	err := models.DB.Create(&models.Group{
		Name:    "Second",
		Members: []models.GroupMember{{PersonID: a.ID}, {PersonID: c.ID}},
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrPersonAlreadyGrouped)
}

func (suite *TestSuiteStandard) TestGroupDeleteUngroups() {
	t := suite.T()

	a := suite.createTestPerson(models.Person{})
	b := suite.createTestPerson(models.Person{})

	group := suite.createTestGroup(models.Group{
		Members: []models.GroupMember{{PersonID: a.ID}, {PersonID: b.ID}},
	})

	require.Nil(t, models.DB.Delete(&group).Error)

	var memberships int64
	require.Nil(t, models.DB.Model(&models.GroupMember{}).Count(&memberships).Error)
	assert.Equal(t, int64(0), memberships)

	var persons int64
	require.Nil(t, models.DB.Model(&models.Person{}).Count(&persons).Error)
	assert.Equal(t, int64(2), persons)
}

func (suite *TestSuiteStandard) TestGroupMemberNames() {
	t := suite.T()

	a := suite.createTestPerson(models.Person{Name: "Ana"})
	b := suite.createTestPerson(models.Person{Name: "Bruno"})
	c := suite.createTestPerson(models.Person{Name: "Carla"})

	group := suite.createTestGroup(models.Group{
		Members: []models.GroupMember{
			{PersonID: c.ID, Position: 0},
			{PersonID: a.ID, Position: 1},
			{PersonID: b.ID, Position: 2},
		},
	})

	names, err := group.MemberNames(models.DB)
	require.Nil(t, err)
	assert.Equal(t, []string{"Carla", "Ana", "Bruno"}, names)
}

func (suite *TestSuiteStandard) TestGroupRename() {
	a := suite.createTestPerson(models.Person{Name: "Ana"})
	b := suite.createTestPerson(models.Person{})

	group := suite.createTestGroup(models.Group{
		Name:    "Roomies",
		Members: []models.GroupMember{{PersonID: a.ID}, {PersonID: b.ID}},
	})

	err := models.DB.Model(&group).Select("Name", "NameFolded").Updates(models.Group{Name: "Ana"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGroupNameIsPerson)

	err = models.DB.Model(&group).Select("Name", "NameFolded").Updates(models.Group{Name: "Housemates"}).Error
	assert.Nil(suite.T(), err)
}
