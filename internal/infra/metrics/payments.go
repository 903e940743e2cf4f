package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		ordersTotal,
		paymentsRevenueTotal,
		orderCreateDuration,
		PaymentVerifyRequests,
		PaymentVerifyDuration,
	)
}

var (
	ordersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_orders_total",
			Help: "Gateway order creations by result (created/invalid_amount/gateway_error).",
		},
		[]string{"result"},
	)

	paymentsRevenueTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_revenue_total",
			Help: "Total minor-unit value of verified payments, labeled by currency.",
		},
		[]string{"currency"},
	)

	orderCreateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_order_create_duration_seconds",
			Help:    "Duration of gateway order creation in seconds.",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"result"},
	)

	// Count of verify calls grouped by result and bounded reason.
	// result: ok|fail
	// reason (fail only): bad_json|missing_params|mismatch|internal|unknown
	PaymentVerifyRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_verify_requests_total",
			Help: "Count of /payment/verify-payment calls by result and reason.",
		},
		[]string{"result", "reason"},
	)

	// Latency of verify handler grouped by result.
	PaymentVerifyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_verify_duration_seconds",
			Help:    "Duration of /payment/verify-payment handler in seconds.",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"result"},
	)
)

func IncOrder(result string) {
	ordersTotal.WithLabelValues(norm(result)).Inc()
}

func ObserveOrderCreate(result string, seconds float64) {
	orderCreateDuration.WithLabelValues(norm(result)).Observe(seconds)
}

func AddPaymentRevenue(currency string, amountMinorUnits int64) {
	paymentsRevenueTotal.WithLabelValues(norm(currency)).Add(float64(amountMinorUnits))
}
