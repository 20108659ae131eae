package model

import "github.com/shopspring/decimal"

// PricedLine is a cart line resolved against the inventory at one point in
// time: a product snapshot plus the requested quantity.
type PricedLine struct {
	Product  Product
	Quantity int
}

// LineTotal returns price times quantity.
func (l PricedLine) LineTotal() decimal.Decimal {
	return l.Product.TotalPrice(l.Quantity)
}

// WeightKg is the shipping weight this line contributes; zero when the
// product is not shippable.
func (l PricedLine) WeightKg() decimal.Decimal {
	return l.Product.UnitWeightKg().Mul(decimal.NewFromInt(int64(l.Quantity)))
}
