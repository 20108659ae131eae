package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ExpiryPolicy says whether a product is eligible to expire at all.
type ExpiryPolicy int

const (
	MayNotExpire ExpiryPolicy = iota
	MayExpire
)

// String returns the string representation of the policy.
func (p ExpiryPolicy) String() string {
	if p == MayExpire {
		return "mayExpire"
	}
	return "mayNotExpire"
}

// ParseExpiryPolicy accepts the catalog spellings case-insensitively.
func ParseExpiryPolicy(s string) (ExpiryPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mayexpire":
		return MayExpire, nil
	case "maynotexpire":
		return MayNotExpire, nil
	}
	return MayNotExpire, fmt.Errorf("unknown expiry policy %q", s)
}

// ShippingPolicy says whether a product is physically shipped.
type ShippingPolicy int

const (
	DoesNotNeedShipping ShippingPolicy = iota
	NeedsShipping
)

// String returns the string representation of the policy.
func (p ShippingPolicy) String() string {
	if p == NeedsShipping {
		return "needsShipping"
	}
	return "doesNotNeedShipping"
}

// ParseShippingPolicy accepts the catalog spellings case-insensitively.
func ParseShippingPolicy(s string) (ShippingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "needsshipping":
		return NeedsShipping, nil
	case "doesnotneedshipping":
		return DoesNotNeedShipping, nil
	}
	return DoesNotNeedShipping, fmt.Errorf("unknown shipping policy %q", s)
}

// Product is a stock-keeping record. Name is the key within a catalog.
// Values handed out by the inventory are snapshots; only the inventory
// mutates Quantity.
type Product struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Expiry   ExpiryPolicy    `json:"expiry"`
	Shipping ShippingPolicy  `json:"shipping"`
	WeightKg decimal.Decimal `json:"weight_kg"`

	// Optional; a product lacking either never expires.
	ProductionDate *time.Time `json:"production_date,omitempty"`
	ExpirationDays *int       `json:"expiration_days,omitempty"`
}

// NewProduct builds a product. The weight of a non-shippable product is
// dropped.
func NewProduct(name string, price decimal.Decimal, quantity int, expiry ExpiryPolicy, shipping ShippingPolicy, weightKg decimal.Decimal) Product {
	p := Product{
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Expiry:   expiry,
		Shipping: shipping,
	}
	if shipping == NeedsShipping {
		p.WeightKg = weightKg
	}
	return p
}

// WithShelfLife returns a copy carrying the production date and shelf life.
func (p Product) WithShelfLife(produced time.Time, days int) Product {
	p.ProductionDate = &produced
	p.ExpirationDays = &days
	return p
}

// IsShippable reports whether the product is physically shipped.
func (p Product) IsShippable() bool {
	return p.Shipping == NeedsShipping
}

// UnitWeightKg is the weight that counts toward shipping; zero unless
// shippable regardless of the stored value.
func (p Product) UnitWeightKg() decimal.Decimal {
	if !p.IsShippable() {
		return decimal.Zero
	}
	return p.WeightKg
}

// HasExpired reports whether production date plus shelf life falls strictly
// before the calendar day of now.
func (p Product) HasExpired(now time.Time) bool {
	if p.Expiry != MayExpire || p.ProductionDate == nil || p.ExpirationDays == nil {
		return false
	}
	expiresOn := civilDate(*p.ProductionDate).AddDate(0, 0, *p.ExpirationDays)
	return expiresOn.Before(civilDate(now))
}

// TotalPrice is the price of qty units.
func (p Product) TotalPrice(qty int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(qty)))
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
