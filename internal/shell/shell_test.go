package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillpoint/checkout/internal/checkout/graph"
	"github.com/tillpoint/checkout/internal/checkout/inventory"
	"github.com/tillpoint/checkout/internal/checkout/model"
	"github.com/tillpoint/checkout/internal/checkout/repo"
	"github.com/tillpoint/checkout/internal/core"
)

var today = time.Date(2024, 6, 30, 9, 0, 0, 0, time.UTC)

type session struct {
	out     *bytes.Buffer
	inv     *inventory.Inventory
	account *model.Account
	journal *repo.MemoryReceiptRepository
}

func run(t *testing.T, input string, products ...model.Product) *session {
	t.Helper()
	inv, err := inventory.New(products)
	require.NoError(t, err)

	s := &session{
		out:     &bytes.Buffer{},
		inv:     inv,
		account: model.NewAccount("ahmed", decimal.NewFromInt(1000)),
		journal: repo.NewMemoryReceiptRepository(),
	}
	engine, err := graph.NewEngine(context.Background(), inv,
		graph.WithClock(core.FixedClock{T: today}),
		graph.WithNotifier(NoticePrinter{Out: s.out}),
	)
	require.NoError(t, err)

	sh := New(Config{
		In:        strings.NewReader(input),
		Out:       s.out,
		Inventory: inv,
		Checkout:  engine,
		Account:   s.account,
		Journal:   s.journal,
	})
	require.NoError(t, sh.Run(context.Background()))
	return s
}

func productA() model.Product {
	return model.NewProduct("A", decimal.NewFromInt(10), 5, model.MayNotExpire, model.NeedsShipping, decimal.NewFromInt(2))
}

func expiredB() model.Product {
	return model.NewProduct("B", decimal.NewFromInt(4), 10, model.MayExpire, model.NeedsShipping, decimal.NewFromInt(1)).
		WithShelfLife(today.AddDate(0, 0, -200), 30)
}

func TestShell_AddAndCheckout(t *testing.T) {
	s := run(t, "2\n1\n3\n3\n5\n", productA())
	out := s.out.String()

	assert.Contains(t, out, "1) A | $10.00 | qty: 5 | ship: Y | exp: N")
	assert.Contains(t, out, "Item added successfully.")
	assert.Contains(t, out, "----- Receipt -----")
	assert.Contains(t, out, "3 x A (6.00 kg) = 30.00")
	assert.Contains(t, out, "Shipping: 330.00")
	assert.Contains(t, out, "Total: 360.00")
	assert.Contains(t, out, "Balance left: 640.00")
	assert.Contains(t, out, "1) A | $10.00 | qty: 2 | ship: Y | exp: N")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "Good-bye!"))

	receipts, err := s.journal.List(context.Background(), "ahmed")
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, "360.00", receipts[0].Total.StringFixed(2))
}

func TestShell_CartIsFreshAfterCheckout(t *testing.T) {
	s := run(t, "2\n1\n1\n3\n1\n5\n", productA())
	out := s.out.String()
	after := out[strings.Index(out, "----- Receipt -----"):]
	assert.Contains(t, after, "Your cart is empty.")
}

func TestShell_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"checkout empty cart", "3\n5\n", "Error: your cart is empty"},
		{"too many", "2\n1\n6\n5\n", "Error: requested quantity exceeds available stock for A"},
		{"zero quantity", "2\n1\n0\n5\n", "Error: quantity must be greater than zero"},
		{"unknown item", "2\n9\n1\n5\n", "Error: no item number 9; choose between 1 and 1"},
		{"not a number", "2\nabc\n5\n", `Error: "abc" is not a whole number`},
		{"bad option", "7\n5\n", "Please enter a number between 1 and 5."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := run(t, tt.input, productA())
			assert.Contains(t, s.out.String(), tt.want)
			assert.Equal(t, "1000", s.account.Balance().String())
		})
	}
}

func TestShell_ExpiredNotice(t *testing.T) {
	s := run(t, "2\n2\n1\n2\n1\n1\n3\n5\n", productA(), expiredB())
	out := s.out.String()

	assert.Contains(t, out, "Notice: expired items removed from cart -> [B]")
	assert.Contains(t, out, "1 x A (2.00 kg) = 10.00")
	assert.NotContains(t, out, "x B (")
	assert.Contains(t, out, "Total: 140.00")
}

func TestShell_ViewAccount(t *testing.T) {
	s := run(t, "4\n2\n1\n3\n3\n4\n5\n", productA())
	out := s.out.String()

	assert.Contains(t, out, "Account holder: ahmed")
	assert.Contains(t, out, "Current balance: 1000.00")
	assert.Contains(t, out, "Current balance: 640.00")
	assert.Contains(t, out, "Receipts:")
	assert.Contains(t, out, "total 360.00")
}

func TestShell_EOFEndsLoop(t *testing.T) {
	s := run(t, "1\n", productA())
	assert.Contains(t, s.out.String(), "Your cart is empty.")
	assert.Contains(t, s.out.String(), "Good-bye!")
}
