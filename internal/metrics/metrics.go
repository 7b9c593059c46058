package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TradesCreated counts successfully committed trades.
	TradesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cafe_trades_created_total",
		Help: "Number of trades created.",
	})

	// CartOperations counts cart mutations by operation.
	CartOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cafe_cart_operations_total",
		Help: "Number of cart mutations, by operation.",
	}, []string{"op"})

	// AuthFailures counts rejected credentials at the HTTP boundary.
	AuthFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cafe_auth_failures_total",
		Help: "Number of requests rejected as unauthorized.",
	})
)
