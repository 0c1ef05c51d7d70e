package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripsplit/backend/internal/balance"
	"github.com/tripsplit/backend/internal/httputil"
	"github.com/tripsplit/backend/internal/models"
	"gorm.io/gorm"
)

// RegisterBalanceRoutes registers the routes for the computed balance
// endpoints with the RouterGroup that is passed.
func RegisterBalanceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBalances)
	r.GET("", GetBalances)
}

// RegisterSettlementRoutes registers the routes for settlements with
// the RouterGroup that is passed.
func RegisterSettlementRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettlements)
	r.GET("", GetSettlements)
}

// RegisterEntityRoutes registers the routes for entities with
// the RouterGroup that is passed.
func RegisterEntityRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsEntities)
	r.GET("", GetEntities)
}

func OptionsBalances(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsSettlements(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsEntities(c *gin.Context) {
	httputil.OptionsGet(c)
}

// snapshot is everything the balance engine needs, loaded from the
// database in one place.
type snapshot struct {
	persons  []balance.Person
	entities balance.Entities
	expenses []balance.Expense
	payments []balance.Payment
}

// loadSnapshot reads the current roster, groups, expenses and payments.
// Balances are never stored, every caller recomputes from this snapshot.
func loadSnapshot(db *gorm.DB) (snapshot, error) {
	var s snapshot

	persons, err := models.Persons(db)
	if err != nil {
		return snapshot{}, err
	}

	s.persons = make([]balance.Person, 0, len(persons))
	for _, person := range persons {
		s.persons = append(s.persons, balance.Person{
			Name:   person.Name,
			Car:    person.Car,
			Drinks: person.Drinks,
		})
	}

	groups, err := models.Groups(db)
	if err != nil {
		return snapshot{}, err
	}

	balanceGroups := make([]balance.Group, 0, len(groups))
	for _, group := range groups {
		names, err := group.MemberNames(db)
		if err != nil {
			return snapshot{}, err
		}

		balanceGroups = append(balanceGroups, balance.Group{
			Name:    group.Name,
			Members: names,
		})
	}

	s.entities = balance.Resolve(s.persons, balanceGroups)

	expenses, err := models.Expenses(db)
	if err != nil {
		return snapshot{}, err
	}

	s.expenses = make([]balance.Expense, 0, len(expenses))
	for _, expense := range expenses {
		s.expenses = append(s.expenses, balance.Expense{
			Amount:   expense.Amount,
			Category: balance.ParseCategory(expense.Category),
			PaidBy:   expense.PaidBy,
		})
	}

	payments, err := models.Payments(db)
	if err != nil {
		return snapshot{}, err
	}

	s.payments = make([]balance.Payment, 0, len(payments))
	for _, payment := range payments {
		s.payments = append(s.payments, balance.Payment{
			Amount:      payment.Amount,
			Source:      payment.Source,
			Destination: payment.Destination,
		})
	}

	return s, nil
}

// GetBalances recomputes all balances from the current data
func GetBalances(c *gin.Context) {
	s, err := loadSnapshot(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalancesResponse{
			Error: &e,
		})
		return
	}

	personBalances, groupBalances := balance.Compute(s.persons, s.entities, s.expenses, s.payments)

	c.JSON(http.StatusOK, BalancesResponse{
		Data: &BalancesData{
			Persons: newBalances(personBalances),
			Groups:  newBalances(groupBalances),
		},
	})
}

// GetSettlements returns the transfer plan that settles all debts
func GetSettlements(c *gin.Context) {
	s, err := loadSnapshot(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementsResponse{
			Error: &e,
		})
		return
	}

	// Settlements move money between billing entities, so the plan is
	// computed from the entity balances: the group balances plus the
	// persons that are in no group.
	personBalances, groupBalances := balance.Compute(s.persons, s.entities, s.expenses, s.payments)

	grouped := make(map[string]bool)
	for _, members := range s.entities.Members {
		if len(members) > 1 {
			for _, name := range members {
				grouped[name] = true
			}
		}
	}

	entityBalances := make([]balance.Balance, 0, len(groupBalances)+len(personBalances))
	entityBalances = append(entityBalances, groupBalances...)
	for _, b := range personBalances {
		if !grouped[b.Name] {
			entityBalances = append(entityBalances, b)
		}
	}

	transfers := balance.Plan(entityBalances)

	data := make([]TransferData, 0, len(transfers))
	for _, transfer := range transfers {
		data = append(data, TransferData{
			From:   transfer.From,
			To:     transfer.To,
			Amount: transfer.Amount,
		})
	}

	c.JSON(http.StatusOK, SettlementsResponse{
		Data: &SettlementsData{
			Transfers: data,
			Settled:   len(data) == 0,
		},
	})
}

// GetEntities returns the resolved billing entities
func GetEntities(c *gin.Context) {
	s, err := loadSnapshot(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EntitiesResponse{
			Error: &e,
		})
		return
	}

	data := make([]EntityData, 0, len(s.entities.Order))
	for _, name := range s.entities.Order {
		data = append(data, EntityData{
			Name:    name,
			Members: s.entities.Members[name],
		})
	}

	c.JSON(http.StatusOK, EntitiesResponse{
		Data: data,
	})
}
