// Package metrics exposes Prometheus collectors for the billing counter.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the sales collectors
type Metrics struct {
	billsCompleted *prometheus.CounterVec
	billAmount     prometheus.Histogram
	cartOps        *prometheus.CounterVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// New registers the collectors against registerer, or the default registerer when nil.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		defaultOnce.Do(func() {
			defaultMetrics = build(prometheus.DefaultRegisterer)
		})
		return defaultMetrics
	}
	return build(registerer)
}

func build(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		billsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "bills_completed_total",
			Help:      "Bills finalized from the cart, by payment mode.",
		}, []string{"payment_mode"}),
		billAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pos",
			Name:      "bill_amount",
			Help:      "Grand total of finalized bills in rupees.",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 25000},
		}),
		cartOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "cart_operations_total",
			Help:      "Cart mutations by operation.",
		}, []string{"op"}),
	}
	registerer.MustRegister(m.billsCompleted, m.billAmount, m.cartOps)
	return m
}

// BillCompleted records a finalized bill. Safe on a nil receiver.
func (m *Metrics) BillCompleted(paymentMode string, total float64) {
	if m == nil {
		return
	}
	m.billsCompleted.WithLabelValues(paymentMode).Inc()
	m.billAmount.Observe(total)
}

// CartOperation counts one cart mutation. Safe on a nil receiver.
func (m *Metrics) CartOperation(op string) {
	if m == nil {
		return
	}
	m.cartOps.WithLabelValues(op).Inc()
}
