package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// CheckoutMetrics holds the checkout collectors.
type CheckoutMetrics struct {
	Checkouts      *prometheus.CounterVec
	ExpiredRemoved prometheus.Counter
	OrderTotal     prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout collectors on reg.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "checkouts_total",
		Help:      "Checkout attempts by result (success or error kind).",
	}, []string{"result"})
	expired := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "expired_lines_removed_total",
		Help:      "Cart lines dropped at checkout because the product expired.",
	})
	total := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "checkout",
		Name:      "order_total",
		Help:      "Grand total of committed checkouts.",
		Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000},
	})

	reg.MustRegister(checkouts, expired, total)
	return &CheckoutMetrics{Checkouts: checkouts, ExpiredRemoved: expired, OrderTotal: total}
}

// ObserveCheckout counts one attempt; only successful totals are observed.
func (m *CheckoutMetrics) ObserveCheckout(result string, total decimal.Decimal) {
	m.Checkouts.WithLabelValues(result).Inc()
	if result == "success" {
		m.OrderTotal.Observe(total.InexactFloat64())
	}
}

// ObserveExpiredRemoved counts lines dropped for expiry.
func (m *CheckoutMetrics) ObserveExpiredRemoved(n int) {
	m.ExpiredRemoved.Add(float64(n))
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
