package entity

import "github.com/shopspring/decimal"

// Stored amounts are decimal(15,2) and saving rates decimal(5,4).
const (
	AmountScale = 2
	RateScale   = 4
)

// MaxAmount is the exclusive upper bound of a storable amount.
var MaxAmount = decimal.New(1, 15-AmountScale)

// IsStorableAmount reports whether d fits an amount column without rounding
// or overflow.
func IsStorableAmount(d decimal.Decimal) bool {
	return d.Equal(d.Round(AmountScale)) && d.Abs().LessThan(MaxAmount)
}

// IsStorableRate reports whether d keeps at most RateScale decimal places.
func IsStorableRate(d decimal.Decimal) bool {
	return d.Equal(d.Round(RateScale))
}
