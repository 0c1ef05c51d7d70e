// Package balance computes who owes whom for a trip.
//
// All functions in this package are pure: they take a full snapshot of the
// roster, groups, expenses and payments and derive balances and settlement
// plans from it. Nothing is cached between calls, callers re-invoke the
// package whenever their state changes.
package balance

import "github.com/shopspring/decimal"

// Tolerance is the amount below which a balance is considered settled.
//
// It is the single epsilon for every "is this effectively zero" decision
// made by the engine and the settlement planner.
var Tolerance = decimal.NewFromFloat(0.01)

// Expense is an expense record as the engine sees it.
type Expense struct {
	Amount   decimal.Decimal
	Category Category
	PaidBy   string // entity name
}

// Payment is a reimbursement transfer between two entities.
type Payment struct {
	Amount      decimal.Decimal
	Source      string // entity name
	Destination string // entity name
}

// Balance is the derived financial position of a person or a group.
//
// A positive NetBalance means the person or group is owed money overall,
// a negative one that they owe money. Balances are recomputed from the
// full snapshot on every call and never stored.
type Balance struct {
	Name             string
	TotalPaid        decimal.Decimal
	TotalOwed        decimal.Decimal
	NetBalance       decimal.Decimal
	PaymentsMade     decimal.Decimal
	PaymentsReceived decimal.Decimal
}

// Compute folds expenses and payments into per-person balances and
// aggregates them into per-group balances.
//
// Expense shares go to the persons selected by Eligible. The amount an
// expense's payer entity fronted is split evenly across the entity's
// members; the same even split applies to both sides of a payment. Entity
// member lists are intersected with the roster, and an expense or payment
// referencing an entity that no longer resolves to any known person
// contributes zero instead of failing the computation.
//
// Person balances are returned in roster order, group balances in entity
// order (entities with more than one member only).
func Compute(persons []Person, entities Entities, expenses []Expense, payments []Payment) (personBalances, groupBalances []Balance) {
	known := make(map[string]bool, len(persons))
	for _, person := range persons {
		known[person.Name] = true
	}

	// The zero value of decimal.Decimal is 0, so missing map entries are
	// fine to add to.
	owed := make(map[string]decimal.Decimal, len(persons))
	paid := make(map[string]decimal.Decimal, len(persons))
	delta := make(map[string]decimal.Decimal, len(persons))
	made := make(map[string]decimal.Decimal, len(persons))
	received := make(map[string]decimal.Decimal, len(persons))

	for _, expense := range expenses {
		eligible := Eligible(expense.Category, persons)
		if len(eligible) > 0 {
			share := expense.Amount.Div(decimal.NewFromInt(int64(len(eligible))))
			for _, name := range eligible {
				owed[name] = owed[name].Add(share)
			}
		}

		payers := entities.knownMembers(expense.PaidBy, known)
		if len(payers) > 0 {
			fronted := expense.Amount.Div(decimal.NewFromInt(int64(len(payers))))
			for _, name := range payers {
				paid[name] = paid[name].Add(fronted)
			}
		}
	}

	for _, payment := range payments {
		if sources := entities.knownMembers(payment.Source, known); len(sources) > 0 {
			share := payment.Amount.Div(decimal.NewFromInt(int64(len(sources))))
			for _, name := range sources {
				delta[name] = delta[name].Add(share)
				made[name] = made[name].Add(share)
			}
		}

		if destinations := entities.knownMembers(payment.Destination, known); len(destinations) > 0 {
			share := payment.Amount.Div(decimal.NewFromInt(int64(len(destinations))))
			for _, name := range destinations {
				delta[name] = delta[name].Sub(share)
				received[name] = received[name].Add(share)
			}
		}
	}

	personBalances = make([]Balance, 0, len(persons))
	byName := make(map[string]Balance, len(persons))
	for _, person := range persons {
		b := Balance{
			Name:             person.Name,
			TotalPaid:        paid[person.Name],
			TotalOwed:        owed[person.Name],
			PaymentsMade:     made[person.Name],
			PaymentsReceived: received[person.Name],
		}
		b.NetBalance = b.TotalPaid.Sub(b.TotalOwed).Add(delta[person.Name])

		personBalances = append(personBalances, b)
		byName[person.Name] = b
	}

	groupBalances = make([]Balance, 0)
	for _, name := range entities.Order {
		members := entities.knownMembers(name, known)
		if len(members) < 2 {
			continue
		}

		group := Balance{Name: name}
		for _, member := range members {
			b := byName[member]
			group.TotalPaid = group.TotalPaid.Add(b.TotalPaid)
			group.TotalOwed = group.TotalOwed.Add(b.TotalOwed)
			group.NetBalance = group.NetBalance.Add(b.NetBalance)
			group.PaymentsMade = group.PaymentsMade.Add(b.PaymentsMade)
			group.PaymentsReceived = group.PaymentsReceived.Add(b.PaymentsReceived)
		}

		groupBalances = append(groupBalances, group)
	}

	return personBalances, groupBalances
}
