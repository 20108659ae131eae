package model

import (
	"github.com/shopspring/decimal"

	errx "github.com/tillpoint/checkout/internal/core/error"
)

// Account is the shopper's funds. Only a committed checkout debits it.
type Account struct {
	name    string
	balance decimal.Decimal
}

// NewAccount returns an account for name holding balance.
func NewAccount(name string, balance decimal.Decimal) *Account {
	return &Account{name: name, balance: balance}
}

// Name returns the account holder.
func (a *Account) Name() string { return a.name }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// CanAfford reports whether the balance covers amount.
func (a *Account) CanAfford(amount decimal.Decimal) bool {
	return a.balance.GreaterThanOrEqual(amount)
}

// Debit removes amount from the balance, refusing to go below zero.
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errx.Newf(errx.KindInvalidInput, "debit amount must not be negative")
	}
	if !a.CanAfford(amount) {
		return errx.Newf(errx.KindInsufficientFunds, "customer balance too low")
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

// Credit returns amount to the balance. Used to undo a debit whose stock
// commit was refused.
func (a *Account) Credit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
}
