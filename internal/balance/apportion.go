package balance

import "github.com/shopspring/decimal"

// Apportion splits an amount into count whole-cent shares.
//
// The total is first rounded to whole cents. Every share gets
// floor(totalCents/count) cents and the leftover cents go to the first
// shares, one each, so the shares always sum to the rounded total. This is
// used when a payment made by several payers is recorded as one row per
// payer.
func Apportion(total decimal.Decimal, count int) []decimal.Decimal {
	if count <= 0 {
		return nil
	}

	cents := total.Shift(2).Round(0).IntPart()
	base := cents / int64(count)
	remainder := cents % int64(count)

	shares := make([]decimal.Decimal, count)
	for i := range shares {
		c := base
		if int64(i) < remainder {
			c++
		}
		shares[i] = decimal.New(c, -2)
	}

	return shares
}
