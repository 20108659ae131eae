package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/compose"
	"github.com/shopspring/decimal"

	"github.com/tillpoint/checkout/internal/checkout/cart"
	"github.com/tillpoint/checkout/internal/checkout/graph/nodes"
	"github.com/tillpoint/checkout/internal/checkout/graph/observers"
	"github.com/tillpoint/checkout/internal/checkout/model"
	"github.com/tillpoint/checkout/internal/core"
	errx "github.com/tillpoint/checkout/internal/core/error"
	logx "github.com/tillpoint/checkout/pkg/logger"
)

const (
	NodeEmptyCartGuard = "EmptyCartGuard"
	NodeExpiryFilter   = "ExpiryFilter"
	NodePricing        = "Pricing"
	NodeFundsGuard     = "FundsGuard"
	NodeCommit         = "Commit"
	NodeReceipt        = "Receipt"

	graphName = "checkout"
)

// Recorder observes checkout outcomes. ResultSuccess or an error kind name
// is passed as result.
type Recorder interface {
	ObserveCheckout(result string, total decimal.Decimal)
	ObserveExpiredRemoved(n int)
}

const ResultSuccess = "success"

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for expiry checks and receipt stamps.
func WithClock(n core.Nower) Option {
	return func(e *Engine) { e.clock = n }
}

// WithNotifier sets the receiver of expired-item notices.
func WithNotifier(n nodes.Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithRecorder sets the sink for checkout outcome metrics.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// Engine runs the checkout protocol as a linear graph:
// guard, expiry filter, pricing, funds guard, commit, receipt.
// Process holds the engine lock for the whole run, so the funds guard and the
// commit form one critical section against other checkouts on this engine.
type Engine struct {
	mu       sync.Mutex
	stock    nodes.Stock
	clock    core.Nower
	notifier nodes.Notifier
	recorder Recorder
	runnable compose.Runnable[*nodes.Order, *model.Receipt]
}

// NewEngine compiles the checkout graph over stock.
func NewEngine(ctx context.Context, stock nodes.Stock, opts ...Option) (*Engine, error) {
	if stock == nil {
		return nil, fmt.Errorf("stock is nil")
	}
	e := &Engine{stock: stock, clock: core.SystemClock{}}
	for _, opt := range opts {
		opt(e)
	}

	runnable, err := e.build(ctx)
	if err != nil {
		return nil, err
	}
	e.runnable = runnable
	logx.Debug().Msg("checkout graph compiled")
	return e, nil
}

func (e *Engine) build(ctx context.Context) (compose.Runnable[*nodes.Order, *model.Receipt], error) {
	g := compose.NewGraph[*nodes.Order, *model.Receipt](
		compose.WithGenLocalState(func(ctx context.Context) *model.CheckoutState {
			return &model.CheckoutState{}
		}),
	)

	steps := []struct {
		key  string
		node *compose.Lambda
	}{
		{NodeEmptyCartGuard, nodes.NewEmptyCartGuardNode()},
		{NodeExpiryFilter, nodes.NewExpiryFilterNode(e.notifier)},
		{NodePricing, nodes.NewPricingNode()},
		{NodeFundsGuard, nodes.NewFundsGuardNode()},
		{NodeCommit, nodes.NewCommitNode(e.stock)},
		{NodeReceipt, nodes.NewReceiptNode()},
	}

	prev := compose.START
	for _, s := range steps {
		if err := g.AddLambdaNode(s.key, s.node,
			compose.WithNodeName(s.key),
			compose.WithStatePreHandler(nodes.NewVisitPreHandler(s.key)),
		); err != nil {
			return nil, fmt.Errorf("add node %s: %w", s.key, err)
		}
		if err := g.AddEdge(prev, s.key); err != nil {
			return nil, fmt.Errorf("add edge %s -> %s: %w", prev, s.key, err)
		}
		prev = s.key
	}
	if err := g.AddEdge(prev, compose.END); err != nil {
		return nil, fmt.Errorf("add edge %s -> %s: %w", prev, compose.END, err)
	}

	runnable, err := g.Compile(ctx, compose.WithGraphName(graphName))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling checkout graph")
		return nil, fmt.Errorf("error compiling checkout graph: %w", err)
	}
	return runnable, nil
}

// Process checks out c for account. On success stock and balance are
// updated and the receipt is returned. On failure neither was touched;
// expired lines removed from c stay removed.
func (e *Engine) Process(ctx context.Context, account *model.Account, c *cart.Cart) (*model.Receipt, error) {
	if account == nil || c == nil {
		return nil, errx.Newf(errx.KindInternal, "checkout needs an account and a cart")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	order := &nodes.Order{Account: account, Cart: c, Now: e.clock.Now()}
	receipt, err := e.runnable.Invoke(ctx, order, compose.WithCallbacks(observers.NewNodeCallbacks()))

	if e.recorder != nil && len(order.Expired) > 0 {
		e.recorder.ObserveExpiredRemoved(len(order.Expired))
	}
	if err != nil {
		// The graph decorates node errors; hand back the domain error as is.
		if order.Failure != nil {
			err = order.Failure
		}
		logx.Warn().
			Str("customer", account.Name()).
			Str("kind", errx.KindOf(err).String()).
			Err(err).
			Msg("checkout failed")
		if e.recorder != nil {
			e.recorder.ObserveCheckout(errx.KindOf(err).String(), order.Total)
		}
		return nil, err
	}

	if e.recorder != nil {
		e.recorder.ObserveCheckout(ResultSuccess, receipt.Total)
	}
	return receipt, nil
}
