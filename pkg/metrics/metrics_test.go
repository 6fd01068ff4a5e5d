package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.BillCompleted("cash", 394)
	m.BillCompleted("cash", 120)
	m.BillCompleted("upi", 50)
	m.CartOperation("add")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.billsCompleted.WithLabelValues("cash")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.billsCompleted.WithLabelValues("upi")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cartOps.WithLabelValues("add")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.BillCompleted("cash", 1)
		m.CartOperation("add")
	})
}
