package shipping

import (
	"github.com/shopspring/decimal"

	"github.com/tillpoint/checkout/internal/checkout/model"
)

var (
	baseFee   = decimal.NewFromInt(30)
	ratePerKg = decimal.NewFromInt(50)
)

// BaseFee returns the flat fee charged on every order.
func BaseFee() decimal.Decimal { return baseFee }

// RatePerKg returns the fee per shipped kilogram.
func RatePerKg() decimal.Decimal { return ratePerKg }

// TotalWeightKg sums weight times quantity over shippable lines.
func TotalWeightKg(lines []model.PricedLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.WeightKg())
	}
	return total
}

// Cost is the base fee plus the per-kg rate for every shipped kilogram. An
// empty or weightless set of lines costs exactly the base fee.
func Cost(lines []model.PricedLine) decimal.Decimal {
	return baseFee.Add(TotalWeightKg(lines).Mul(ratePerKg))
}
