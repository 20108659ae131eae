package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLine is one purchased line, in cart order.
type ReceiptLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Shippable bool            `json:"shippable"`
	// Zero for non-shippable lines.
	WeightKg decimal.Decimal `json:"weight_kg"`
}

// Receipt is the outcome of a committed checkout.
type Receipt struct {
	ID             string          `json:"id"`
	Customer       string          `json:"customer"`
	IssuedAt       time.Time       `json:"issued_at"`
	Lines          []ReceiptLine   `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TotalWeightKg  decimal.Decimal `json:"total_weight_kg"`
	Shipping       decimal.Decimal `json:"shipping"`
	Total          decimal.Decimal `json:"total"`
	BalanceLeft    decimal.Decimal `json:"balance_left"`
	ExpiredRemoved []string        `json:"expired_removed,omitempty"`
}
