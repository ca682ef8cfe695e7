package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	httpRequestsTotal      *prometheus.CounterVec
	httpLatencySeconds     *prometheus.HistogramVec
	httpErrorsTotal        *prometheus.CounterVec
	evaluationsTotal       *prometheus.CounterVec
	evaluationScore        *prometheus.HistogramVec
	storeEventsTotal       *prometheus.CounterVec
	websocketClientsActive prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		evaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evaluations_total",
			Help: "Total number of free-text evaluations by strategy and label.",
		}, []string{"strategy", "label"})

		evaluationScore = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "evaluation_total_score",
			Help:    "Distribution of evaluation total scores.",
			Buckets: []float64{20, 40, 60, 70, 80, 90, 100},
		}, []string{"strategy"})

		storeEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "store_events_total",
			Help: "Total number of store change events published.",
		}, []string{"topic", "action"})

		websocketClientsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "event_stream_clients_active",
			Help: "Number of websocket clients subscribed to change events.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			evaluationsTotal,
			evaluationScore,
			storeEventsTotal,
			websocketClientsActive,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// EvaluationsTotal exposes the evaluation counter.
func EvaluationsTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return evaluationsTotal
}

// EvaluationScore exposes the total score histogram.
func EvaluationScore() *prometheus.HistogramVec {
	RegisterMetrics()
	return evaluationScore
}

// StoreEventsTotal exposes the store change event counter.
func StoreEventsTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return storeEventsTotal
}

// WebsocketClientsActive exposes the gauge of connected event stream clients.
func WebsocketClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return websocketClientsActive
}
