package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkoutRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_requests_total",
			Help: "Checkout attempts by payment method and result",
		},
		[]string{"method", "result"},
	)

	gateDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gate_decisions_total",
			Help: "Gate validation decisions by result",
		},
		[]string{"result"},
	)

	settlements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlements_total",
			Help: "Admin settlement attempts by result",
		},
		[]string{"result"},
	)
)

func RecordCheckout(method, result string) {
	checkoutRequests.WithLabelValues(method, result).Inc()
}

func RecordGateDecision(result string) {
	gateDecisions.WithLabelValues(result).Inc()
}

func RecordSettlement(result string) {
	settlements.WithLabelValues(result).Inc()
}
