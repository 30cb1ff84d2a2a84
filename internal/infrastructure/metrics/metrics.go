package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TransactionMetrics groups every counter/histogram on the payment path.
type TransactionMetrics struct {
	TransactionsCreatedTotal  prometheus.CounterVec
	TransactionsResolvedTotal prometheus.CounterVec
	InitiationErrorsTotal     prometheus.CounterVec
	PendingTransactionsCount  prometheus.GaugeVec

	InitiationDuration prometheus.HistogramVec
	ResolutionLatency  prometheus.HistogramVec

	WebhookDeliveriesTotal prometheus.CounterVec
	BroadcastsTotal        prometheus.CounterVec
}

func NewTransactionMetrics() *TransactionMetrics {
	return &TransactionMetrics{
		TransactionsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_created_total",
				Help: "Total transactions created in PENDING state",
			},
			[]string{"project_id", "environment"},
		),

		TransactionsResolvedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transactions_resolved_total",
				Help: "Total transactions moved to a terminal state",
			},
			[]string{"project_id", "environment", "status"},
		),

		InitiationErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_initiation_errors_total",
				Help: "Total initiation calls that failed before the provider accepted them",
			},
			[]string{"project_id", "error_type"},
		),

		PendingTransactionsCount: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "transactions_pending_count",
				Help: "Transactions currently awaiting a provider callback",
			},
			[]string{"project_id"},
		),

		InitiationDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transaction_initiation_duration_seconds",
				Help:    "Time to obtain correlation ids and persist the PENDING record",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"project_id", "environment"},
		),

		ResolutionLatency: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transaction_resolution_latency_seconds",
				Help:    "Time between creation and the terminal callback",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"project_id", "environment", "status"},
		),

		WebhookDeliveriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_deliveries_total",
				Help: "Outbound webhook POST attempts by result",
			},
			[]string{"project_id", "result"},
		),

		BroadcastsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transaction_broadcasts_total",
				Help: "Real-time broadcast publishes by result",
			},
			[]string{"project_id", "result"},
		),
	}
}

func (m *TransactionMetrics) RecordTransactionCreated(projectID, environment string) {
	m.TransactionsCreatedTotal.WithLabelValues(projectID, environment).Inc()
	m.PendingTransactionsCount.WithLabelValues(projectID).Inc()
}

func (m *TransactionMetrics) RecordTransactionResolved(projectID, environment, status string, latencySeconds float64) {
	m.TransactionsResolvedTotal.WithLabelValues(projectID, environment, status).Inc()
	m.ResolutionLatency.WithLabelValues(projectID, environment, status).Observe(latencySeconds)
	m.PendingTransactionsCount.WithLabelValues(projectID).Dec()
}

// RecordInitiationError also drops the pending gauge: a failed initiation always
// closes its PENDING row.
func (m *TransactionMetrics) RecordInitiationError(projectID, errorType string) {
	m.InitiationErrorsTotal.WithLabelValues(projectID, errorType).Inc()
	m.PendingTransactionsCount.WithLabelValues(projectID).Dec()
}

func (m *TransactionMetrics) RecordInitiationDuration(projectID, environment string, durationSeconds float64) {
	m.InitiationDuration.WithLabelValues(projectID, environment).Observe(durationSeconds)
}

func (m *TransactionMetrics) RecordWebhookDelivery(projectID string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.WebhookDeliveriesTotal.WithLabelValues(projectID, result).Inc()
}

func (m *TransactionMetrics) RecordBroadcast(projectID string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.BroadcastsTotal.WithLabelValues(projectID, result).Inc()
}
