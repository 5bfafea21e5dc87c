package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	leadStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_lead_status_changes_total",
			Help: "Lead status transitions by target stage",
		},
		[]string{"to"},
	)

	leadDormancyChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_lead_dormancy_changes_total",
			Help: "Snooze and wake actions",
		},
		[]string{"action"},
	)

	leadsWoken = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "crm_leads_woken_total",
			Help: "Leads woken by the reconciliation job",
		},
	)

	storeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_store_errors_total",
			Help: "Failed lead store operations",
		},
		[]string{"op"},
	)
)

func RecordStatusChange(to string) {
	leadStatusChanges.WithLabelValues(to).Inc()
}

func RecordDormancy(action string) {
	leadDormancyChanges.WithLabelValues(action).Inc()
}

func RecordWoken(n int) {
	leadsWoken.Add(float64(n))
}

func RecordStoreError(op string) {
	storeErrors.WithLabelValues(op).Inc()
}
