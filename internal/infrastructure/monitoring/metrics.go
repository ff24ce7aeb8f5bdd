package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	CartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Total number of cart mutations",
		},
		[]string{"action"},
	)

	HoldCreationAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hold_creation_attempts_total",
			Help: "Total number of enrollment hold creation attempts",
		},
	)

	HoldCreationSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hold_creation_success_total",
			Help: "Total number of enrollment holds created",
		},
	)

	HoldCreationFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hold_creation_failure_total",
			Help: "Total number of failed enrollment hold creations",
		},
		[]string{"reason"},
	)

	HoldsReusedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "holds_reused_total",
			Help: "Total number of checkouts that reused a fresh hold",
		},
	)

	HoldsSweptTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "holds_swept_total",
			Help: "Total number of expired holds removed by the sweeper",
		},
	)

	PaymentSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_submissions_total",
			Help: "Total number of payment submissions",
		},
	)

	PaymentSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_success_total",
			Help: "Total number of successful payments",
		},
	)

	PaymentDeclinedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_declined_total",
			Help: "Total number of payments declined by the gateway",
		},
	)

	PaymentFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_failure_total",
			Help: "Total number of failed payment submissions",
		},
		[]string{"reason"},
	)

	StaleSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stale_submissions_total",
			Help: "Total number of submissions blocked by the freshness gate",
		},
	)

	ReceiptRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receipt_rejections_total",
			Help: "Total number of rejected receipt requests",
		},
		[]string{"reason"},
	)

	AuthCascadesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_cascades_total",
			Help: "Total number of session teardowns triggered by auth failures",
		},
	)
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

var (
	RedisCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream", "operation", "outcome"},
	)
)

func TimeHTTPRequest(handler, method string) func(statusCode string) {
	start := time.Now()
	return func(statusCode string) {
		duration := time.Since(start).Seconds()
		HTTPRequestDuration.WithLabelValues(handler, method, statusCode).Observe(duration)
		HTTPRequestsTotal.WithLabelValues(handler, method, statusCode).Inc()
	}
}

func TimeDBQuery(queryType, table string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		DBQueryDuration.WithLabelValues(queryType, table).Observe(duration)
	}
}

func TimeRedisCommand(command string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		RedisCommandDuration.WithLabelValues(command).Observe(duration)
	}
}

func TimeUpstreamRequest(upstream, operation string) func(outcome string) {
	start := time.Now()
	return func(outcome string) {
		duration := time.Since(start).Seconds()
		UpstreamRequestDuration.WithLabelValues(upstream, operation, outcome).Observe(duration)
	}
}

func RecordCartMutation(action string) {
	CartMutationsTotal.WithLabelValues(action).Inc()
}

func RecordHoldCreationAttempt() {
	HoldCreationAttemptsTotal.Inc()
}

func RecordHoldCreationSuccess() {
	HoldCreationSuccessTotal.Inc()
}

func RecordHoldCreationFailure(reason string) {
	HoldCreationFailureTotal.WithLabelValues(reason).Inc()
}

func RecordHoldReused() {
	HoldsReusedTotal.Inc()
}

func RecordHoldsSwept(count int) {
	HoldsSweptTotal.Add(float64(count))
}

func RecordPaymentSubmission() {
	PaymentSubmissionsTotal.Inc()
}

func RecordPaymentSuccess() {
	PaymentSuccessTotal.Inc()
}

func RecordPaymentDeclined() {
	PaymentDeclinedTotal.Inc()
}

func RecordPaymentFailure(reason string) {
	PaymentFailureTotal.WithLabelValues(reason).Inc()
}

func RecordStaleSubmission() {
	StaleSubmissionsTotal.Inc()
}

func RecordReceiptRejection(reason string) {
	ReceiptRejectionsTotal.WithLabelValues(reason).Inc()
}

func RecordAuthCascade() {
	AuthCascadesTotal.Inc()
}
