package v1

import (
	"github.com/shopspring/decimal"
	"github.com/tripsplit/backend/internal/balance"
)

// BalanceData is the position of one person or group.
type BalanceData struct {
	Name             string          `json:"name" example:"Ana"`           // Name of the person or group
	TotalPaid        decimal.Decimal `json:"totalPaid" example:"120"`      // Sum of expenses fronted
	TotalOwed        decimal.Decimal `json:"totalOwed" example:"80.50"`    // Sum of expense shares owed
	NetBalance       decimal.Decimal `json:"netBalance" example:"39.50"`   // Positive means money is owed to this entity
	PaymentsMade     decimal.Decimal `json:"paymentsMade" example:"10"`    // Sum of payments sent
	PaymentsReceived decimal.Decimal `json:"paymentsReceived" example:"0"` // Sum of payments received
}

func newBalances(balances []balance.Balance) []BalanceData {
	data := make([]BalanceData, 0, len(balances))
	for _, b := range balances {
		data = append(data, BalanceData{
			Name:             b.Name,
			TotalPaid:        b.TotalPaid,
			TotalOwed:        b.TotalOwed,
			NetBalance:       b.NetBalance,
			PaymentsMade:     b.PaymentsMade,
			PaymentsReceived: b.PaymentsReceived,
		})
	}

	return data
}

type BalancesData struct {
	Persons []BalanceData `json:"persons"` // Balance of every person, in roster order
	Groups  []BalanceData `json:"groups"`  // Aggregated balance of every group, in creation order
}

type BalancesResponse struct {
	Data  *BalancesData `json:"data"`                                                          // The balances
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// TransferData is one transfer of the settlement plan.
type TransferData struct {
	From   string          `json:"from" example:"Bruno"`   // Name of the entity that sends money
	To     string          `json:"to" example:"Ana"`       // Name of the entity that receives money
	Amount decimal.Decimal `json:"amount" example:"39.50"` // Amount to transfer
}

type SettlementsData struct {
	Transfers []TransferData `json:"transfers"` // Transfers that settle all debts, empty when settled
	Settled   bool           `json:"settled"`   // True when all balances are within tolerance of zero
}

type SettlementsResponse struct {
	Data  *SettlementsData `json:"data"`                                                          // The settlement plan
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// EntityData is one billing entity: a group, or a person without a group.
type EntityData struct {
	Name    string   `json:"name" example:"Família"`      // Name of the entity
	Members []string `json:"members" example:"Ana,Bruno"` // Persons billed through this entity
}

type EntitiesResponse struct {
	Data  []EntityData `json:"data"`                                                          // Billing entities, groups first
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
