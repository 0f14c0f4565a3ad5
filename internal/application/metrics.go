package application

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the engine's Prometheus collectors.
type Metrics struct {
	RecordsProcessed *prometheus.CounterVec
	RecordsSkipped   *prometheus.CounterVec
	SyncRuns         *prometheus.CounterVec
	ReconcileActions *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RecordsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_records_processed_total",
			Help: "Records successfully mapped and upserted, per entity type.",
		}, []string{"entity"}),
		RecordsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_records_skipped_total",
			Help: "Records skipped after an isolated per-record failure.",
		}, []string{"entity"}),
		SyncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Entity-type sync attempts by terminal status.",
		}, []string{"entity", "status"}),
		ReconcileActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_reconcile_actions_total",
			Help: "Webhook subscription creates and deletes issued by reconciliation.",
		}, []string{"action"}),
	}
	reg.MustRegister(m.RecordsProcessed, m.RecordsSkipped, m.SyncRuns, m.ReconcileActions)
	return m
}
