package models_test

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripsplit/backend/internal/models"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestPaymentAfterSave() {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		source      string
		destination string
		err         error
	}{
		{"negative amount", decimal.NewFromFloat(-10), "Ana", "Bruno", models.ErrAmountNotPositive},
		{"zero amount", decimal.NewFromFloat(0), "Ana", "Bruno", models.ErrAmountNotPositive},
		{"self payment", decimal.NewFromFloat(10), "Ana", "ANA", models.ErrSourceEqualsDestination},
		{"valid", decimal.NewFromFloat(10), "Ana", "Bruno", nil},
	}

	for _, tt := range tests {
		p := models.Payment{
			Amount:      tt.amount,
			Source:      tt.source,
			Destination: tt.destination,
		}

		err := p.AfterSave(&gorm.DB{})
		assert.Equal(suite.T(), tt.err, err, "case %q", tt.name)
	}
}

func (suite *TestSuiteStandard) TestPaymentEntitiesMustExist() {
	_ = suite.createTestPerson(models.Person{Name: "Ana"})
	_ = suite.createTestPerson(models.Person{Name: "Bruno"})

	err := models.DB.Create(&models.Payment{
		Amount:      decimal.NewFromFloat(10),
		Source:      "Nobody",
		Destination: "Bruno",
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrEntityNotFound)

	err = models.DB.Create(&models.Payment{
		Amount:      decimal.NewFromFloat(10),
		Source:      "Ana",
		Destination: "Nobody",
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrEntityNotFound)
}

func (suite *TestSuiteStandard) TestPaymentSelfRejected() {
	_ = suite.createTestPerson(models.Person{Name: "Ana"})
	_ = suite.createTestPerson(models.Person{Name: "Bruno"})

	err := models.DB.Create(&models.Payment{
		Amount:      decimal.NewFromFloat(10),
		Source:      "Ana",
		Destination: "ana",
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrSourceEqualsDestination)
}

func (suite *TestSuiteStandard) TestPaymentGroupSides() {
	a := suite.createTestPerson(models.Person{})
	b := suite.createTestPerson(models.Person{})
	_ = suite.createTestPerson(models.Person{Name: "Carla"})
	group := suite.createTestGroup(models.Group{
		Name:    "Família",
		Members: []models.GroupMember{{PersonID: a.ID}, {PersonID: b.ID}},
	})

	_ = suite.createTestPayment(models.Payment{
		Amount:      decimal.NewFromFloat(25),
		Source:      group.Name,
		Destination: "Carla",
	})
}

func (suite *TestSuiteStandard) TestPaymentSidesCanonicalised() {
	_ = suite.createTestPerson(models.Person{Name: "Ana"})
	_ = suite.createTestPerson(models.Person{Name: "Bruno"})

	payment := suite.createTestPayment(models.Payment{
		Amount:      decimal.NewFromFloat(10),
		Source:      "ana",
		Destination: "BRUNO",
	})

	assert.Equal(suite.T(), "Ana", payment.Source)
	assert.Equal(suite.T(), "Bruno", payment.Destination)

	err := models.DB.Model(&payment).Select("Source").Updates(models.Payment{Source: "bruno"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrSourceEqualsDestination)

	_ = suite.createTestPerson(models.Person{Name: "Carla"})
	err = models.DB.Model(&payment).Select("Source").Updates(models.Payment{Source: "CARLA"}).Error
	require.Nil(suite.T(), err)

	var reloaded models.Payment
	require.Nil(suite.T(), models.DB.First(&reloaded, payment.ID).Error)
	assert.Equal(suite.T(), "Carla", reloaded.Source)
}

func (suite *TestSuiteStandard) TestPaymentUpdateSidesChecked() {
	_ = suite.createTestPerson(models.Person{Name: "Ana"})
	_ = suite.createTestPerson(models.Person{Name: "Bruno"})

	payment := suite.createTestPayment(models.Payment{
		Amount:      decimal.NewFromFloat(10),
		Source:      "Ana",
		Destination: "Bruno",
	})

	err := models.DB.Model(&payment).Select("Destination").Updates(models.Payment{Destination: "Nobody"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrEntityNotFound)
}

func (suite *TestSuiteStandard) TestPaymentsNewestFirst() {
	t := suite.T()

	_ = suite.createTestPerson(models.Person{Name: "Ana"})
	_ = suite.createTestPerson(models.Person{Name: "Bruno"})

	old := suite.createTestPayment(models.Payment{
		Note:        "Old",
		Amount:      decimal.NewFromFloat(10),
		Source:      "Ana",
		Destination: "Bruno",
		Date:        time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	recent := suite.createTestPayment(models.Payment{
		Note:        "Recent",
		Amount:      decimal.NewFromFloat(10),
		Source:      "Bruno",
		Destination: "Ana",
		Date:        time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC),
	})

	payments, err := models.Payments(models.DB)
	require.Nil(t, err)
	require.Len(t, payments, 2)

	assert.Equal(t, recent.Note, payments[0].Note)
	assert.Equal(t, old.Note, payments[1].Note)
}
