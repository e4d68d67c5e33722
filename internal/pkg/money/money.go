// Package money holds the rounding rules for Leone amounts.
package money

import "github.com/shopspring/decimal"

// Places is the number of minor-unit digits kept on every stored amount.
const Places = 2

// RatePlaces is the precision of derived percentages such as effective tax rate.
const RatePlaces = 4

// Round rounds d half away from zero to Places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Sum adds amounts without intermediate rounding.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Percent returns pct percent of base, rounded.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return Round(base.Mul(pct).Div(decimal.NewFromInt(100)))
}
