package pricing

import "github.com/shopspring/decimal"

// Breakdown is the computed price pair. Both values are rounded to two
// decimal places and derived, never set directly.
type Breakdown struct {
	AvgPrice   decimal.Decimal
	TotalPrice decimal.Decimal
}

// Compute multiplies the unit price by the captured weight. Pure; cannot fail
// for validated inputs.
func Compute(avgPrice int64, weightKg float64) Breakdown {
	avg := decimal.NewFromInt(avgPrice)
	total := avg.Mul(decimal.NewFromFloat(weightKg))
	return Breakdown{
		AvgPrice:   avg.Round(2),
		TotalPrice: total.Round(2),
	}
}
