package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillpoint/checkout/internal/checkout/model"
	errx "github.com/tillpoint/checkout/internal/core/error"
)

func newTestInventory(t *testing.T) *Inventory {
	t.Helper()
	inv, err := New([]model.Product{
		model.NewProduct("Cheese", decimal.NewFromInt(100), 10, model.MayExpire, model.NeedsShipping, decimal.RequireFromString("0.2")),
		model.NewProduct("TV", decimal.NewFromInt(5000), 3, model.MayNotExpire, model.NeedsShipping, decimal.NewFromInt(8)),
		model.NewProduct("Scratch Card", decimal.NewFromInt(20), 50, model.MayNotExpire, model.DoesNotNeedShipping, decimal.Zero),
	})
	require.NoError(t, err)
	return inv
}

func TestNew_RejectsDuplicates(t *testing.T) {
	p := model.NewProduct("A", decimal.NewFromInt(1), 1, model.MayNotExpire, model.DoesNotNeedShipping, decimal.Zero)
	_, err := New([]model.Product{p, p})
	assert.ErrorIs(t, err, errx.ErrInvalidInput)
}

func TestNew_RejectsNegativeStock(t *testing.T) {
	p := model.NewProduct("A", decimal.NewFromInt(1), -1, model.MayNotExpire, model.DoesNotNeedShipping, decimal.Zero)
	_, err := New([]model.Product{p})
	assert.ErrorIs(t, err, errx.ErrInvalidInput)
}

func TestInventory_ByIndex(t *testing.T) {
	inv := newTestInventory(t)

	p, err := inv.ByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, "Cheese", p.Name)

	p, err = inv.ByIndex(3)
	require.NoError(t, err)
	assert.Equal(t, "Scratch Card", p.Name)

	for _, n := range []int{0, -1, 4} {
		_, err := inv.ByIndex(n)
		assert.ErrorIs(t, err, errx.ErrNotFound, "index %d", n)
	}
}

func TestInventory_ListReturnsCopies(t *testing.T) {
	inv := newTestInventory(t)

	list := inv.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Cheese", "TV", "Scratch Card"}, []string{list[0].Name, list[1].Name, list[2].Name})

	list[0].Quantity = 0
	p, err := inv.Product("Cheese")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
}

func TestInventory_Product(t *testing.T) {
	inv := newTestInventory(t)

	_, err := inv.Product("Radio")
	assert.ErrorIs(t, err, errx.ErrNotFound)
	assert.Equal(t, 3, inv.Len())
}

func TestInventory_Commit(t *testing.T) {
	inv := newTestInventory(t)

	require.NoError(t, inv.Commit([]Withdrawal{{Name: "Cheese", Quantity: 4}, {Name: "TV", Quantity: 3}}))

	cheese, _ := inv.Product("Cheese")
	tv, _ := inv.Product("TV")
	assert.Equal(t, 6, cheese.Quantity)
	assert.Equal(t, 0, tv.Quantity)
}

func TestInventory_CommitIsAllOrNothing(t *testing.T) {
	tests := []struct {
		name        string
		withdrawals []Withdrawal
		target      error
	}{
		{"second line short", []Withdrawal{{"Cheese", 2}, {"TV", 4}}, errx.ErrInsufficientStock},
		{"unknown product", []Withdrawal{{"Cheese", 2}, {"Radio", 1}}, errx.ErrNotFound},
		{"non-positive", []Withdrawal{{"Cheese", 2}, {"TV", 0}}, errx.ErrInvalidQuantity},
		{"repeated name sums", []Withdrawal{{"TV", 2}, {"TV", 2}}, errx.ErrInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newTestInventory(t)
			before := inv.List()

			err := inv.Commit(tt.withdrawals)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, before, inv.List())
		})
	}
}
