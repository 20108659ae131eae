package nodes

import (
	"context"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpoint/checkout/internal/checkout/cart"
	"github.com/tillpoint/checkout/internal/checkout/inventory"
	"github.com/tillpoint/checkout/internal/checkout/model"
	"github.com/tillpoint/checkout/internal/checkout/shipping"
	errx "github.com/tillpoint/checkout/internal/core/error"
	logx "github.com/tillpoint/checkout/pkg/logger"
)

// Stock is the part of the inventory the checkout reads and commits to.
type Stock interface {
	cart.Stock
	Commit(withdrawals []inventory.Withdrawal) error
}

// Notifier receives the non-fatal notice that expired lines left the cart.
type Notifier interface {
	ExpiredRemoved(ctx context.Context, customer string, names []string)
}

// Order is the value threaded through every node of one checkout run.
type Order struct {
	Account *model.Account
	Cart    *cart.Cart
	Now     time.Time

	Lines    []model.PricedLine // surviving lines, cart order
	Expired  []string
	Subtotal decimal.Decimal
	WeightKg decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal

	// Failure keeps the domain error as returned by the failing node.
	Failure error
}

func (o *Order) fail(err error) (*Order, error) {
	o.Failure = err
	return nil, err
}

// NewVisitPreHandler records the node in local state before it runs.
func NewVisitPreHandler(key string) func(context.Context, *Order, *model.CheckoutState) (*Order, error) {
	return func(ctx context.Context, in *Order, s *model.CheckoutState) (*Order, error) {
		if s.Customer == "" && in != nil && in.Account != nil {
			s.Customer = in.Account.Name()
		}
		s.Visited = append(s.Visited, key)
		return in, nil
	}
}

// NewEmptyCartGuardNode refuses a cart with no lines before any work.
func NewEmptyCartGuardNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, o *Order) (*Order, error) {
		if o.Cart.IsEmpty() {
			return o.fail(errx.Newf(errx.KindEmptyCart, "your cart is empty"))
		}
		return o, nil
	})
}

// NewExpiryFilterNode makes the single pass over the cart: expired lines are
// dropped from the cart and remembered, every other line is re-checked
// against current stock.
func NewExpiryFilterNode(notifier Notifier) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, o *Order) (*Order, error) {
		resolved, err := o.Cart.Resolve()
		if err != nil {
			return o.fail(err)
		}

		surviving := make([]model.PricedLine, 0, len(resolved))
		var stockErr error
		for _, l := range resolved {
			if l.Product.HasExpired(o.Now) {
				o.Cart.Remove(l.Product.Name)
				o.Expired = append(o.Expired, l.Product.Name)
				continue
			}
			if l.Quantity > l.Product.Quantity {
				stockErr = errx.Newf(errx.KindInsufficientStock, "insufficient stock for %s", l.Product.Name)
				break
			}
			surviving = append(surviving, l)
		}

		if len(o.Expired) > 0 {
			logx.Warn().
				Str("customer", o.Account.Name()).
				Strs("products", o.Expired).
				Msg("expired items removed from cart")
			if notifier != nil {
				notifier.ExpiredRemoved(ctx, o.Account.Name(), o.Expired)
			}
		}
		if stockErr != nil {
			return o.fail(stockErr)
		}
		if o.Cart.IsEmpty() {
			return o.fail(errx.Newf(errx.KindEmptyCart, "your cart is empty after removing expired items"))
		}

		o.Lines = surviving
		return o, nil
	})
}

// NewPricingNode computes subtotal, shipping and total over surviving lines.
func NewPricingNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, o *Order) (*Order, error) {
		sub, err := o.Cart.Subtotal()
		if err != nil {
			return o.fail(err)
		}
		o.Subtotal = sub
		o.WeightKg = shipping.TotalWeightKg(o.Lines)
		o.Shipping = shipping.Cost(o.Lines)
		o.Total = o.Subtotal.Add(o.Shipping)

		logx.Debug().
			Str("customer", o.Account.Name()).
			Str("subtotal", o.Subtotal.StringFixed(2)).
			Str("shipping", o.Shipping.StringFixed(2)).
			Str("total", o.Total.StringFixed(2)).
			Msg("order priced")
		return o, nil
	})
}

// NewFundsGuardNode is the last check before mutation.
func NewFundsGuardNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, o *Order) (*Order, error) {
		if !o.Account.CanAfford(o.Total) {
			return o.fail(errx.Newf(errx.KindInsufficientFunds, "customer balance too low"))
		}
		return o, nil
	})
}

// NewCommitNode is the only place stock and balance change. The debit is
// undone if the inventory refuses the withdrawals.
func NewCommitNode(stock Stock) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, o *Order) (*Order, error) {
		if err := o.Account.Debit(o.Total); err != nil {
			return o.fail(err)
		}

		withdrawals := make([]inventory.Withdrawal, 0, len(o.Lines))
		for _, l := range o.Lines {
			withdrawals = append(withdrawals, inventory.Withdrawal{Name: l.Product.Name, Quantity: l.Quantity})
		}
		if err := stock.Commit(withdrawals); err != nil {
			o.Account.Credit(o.Total)
			logx.Error().Err(err).Str("customer", o.Account.Name()).Msg("stock commit refused; debit reversed")
			return o.fail(err)
		}

		logx.Info().
			Str("customer", o.Account.Name()).
			Int("lines", len(o.Lines)).
			Str("total", o.Total.StringFixed(2)).
			Msg("checkout committed")
		return o, nil
	})
}

// NewReceiptNode assembles the receipt from the committed order.
func NewReceiptNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, o *Order) (*model.Receipt, error) {
		r := &model.Receipt{
			ID:             uuid.NewString(),
			Customer:       o.Account.Name(),
			IssuedAt:       o.Now,
			Lines:          make([]model.ReceiptLine, 0, len(o.Lines)),
			Subtotal:       o.Subtotal,
			TotalWeightKg:  o.WeightKg,
			Shipping:       o.Shipping,
			Total:          o.Total,
			BalanceLeft:    o.Account.Balance(),
			ExpiredRemoved: o.Expired,
		}
		for _, l := range o.Lines {
			r.Lines = append(r.Lines, model.ReceiptLine{
				Name:      l.Product.Name,
				Quantity:  l.Quantity,
				LineTotal: l.LineTotal(),
				Shippable: l.Product.IsShippable(),
				WeightKg:  l.WeightKg(),
			})
		}

		if err := compose.ProcessState(ctx, func(_ context.Context, s *model.CheckoutState) error {
			logx.Debug().Str("customer", s.Customer).Strs("nodes", s.Visited).Str("receipt_id", r.ID).Msg("receipt issued")
			return nil
		}); err != nil {
			logx.Debug().Err(err).Str("receipt_id", r.ID).Msg("checkout state unavailable")
		}
		return r, nil
	})
}
