// internal/services/metrics.go
package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_catalog_fetches_total",
		Help: "Catalog fetch attempts by result.",
	}, []string{"result"})

	cartOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_operations_total",
		Help: "Cart ledger mutations by operation.",
	}, []string{"operation"})

	cartLinesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_cart_lines_last_snapshot",
		Help: "Line count of the most recently mutated cart.",
	})
)
