package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the /predict handler
	PredictLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "churn_predict_latency_seconds",
		Help:    "Latency of churn prediction requests",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of /predict requests served, by outcome
	PredictRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "churn_predict_requests_total",
		Help: "Total number of churn predict requests",
	}, []string{"status"})

	// Total number of predictions written to the history store
	PredictionsPersisted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "churn_predictions_persisted_total",
		Help: "Total number of predictions persisted to the history store",
	})

	// Total number of failed history store writes
	PersistFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "churn_persist_failures_total",
		Help: "Total number of failed history store writes",
	})
)

func Init() {
	prometheus.MustRegister(
		PredictLatency,
		PredictRequests,
		PredictionsPersisted,
		PersistFailures,
	)
}
