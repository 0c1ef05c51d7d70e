package balance

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Transfer is one reimbursement in a settlement plan.
type Transfer struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// Plan produces the transfers that bring every balance to within Tolerance
// of zero.
//
// Debtors are matched against creditors greedily, largest first: each
// transfer settles the smaller of the debtor's remaining debt and the
// creditor's remaining credit. The stable largest-first order makes the
// plan deterministic for a given balance set; it does not guarantee the
// minimal number of transfers (that problem is NP-hard), which is an
// accepted trade-off.
//
// The input balances are not modified. An empty result means everyone is
// settled; callers should render that as its own state rather than as an
// empty transfer list.
func Plan(balances []Balance) []Transfer {
	type position struct {
		name      string
		remaining decimal.Decimal
	}

	var debtors, creditors []position
	for _, b := range balances {
		switch {
		case b.NetBalance.LessThan(Tolerance.Neg()):
			debtors = append(debtors, position{b.Name, b.NetBalance.Neg()})
		case b.NetBalance.GreaterThan(Tolerance):
			creditors = append(creditors, position{b.Name, b.NetBalance})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining.GreaterThan(debtors[j].remaining)
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining.GreaterThan(creditors[j].remaining)
	})

	transfers := make([]Transfer, 0)

	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].remaining, creditors[j].remaining)

		if amount.GreaterThanOrEqual(Tolerance) {
			transfers = append(transfers, Transfer{
				From:   debtors[i].name,
				To:     creditors[j].name,
				Amount: amount,
			})
		}

		debtors[i].remaining = debtors[i].remaining.Sub(amount)
		creditors[j].remaining = creditors[j].remaining.Sub(amount)

		if debtors[i].remaining.LessThan(Tolerance) {
			i++
		}
		if creditors[j].remaining.LessThan(Tolerance) {
			j++
		}
	}

	return transfers
}
