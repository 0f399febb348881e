// Package metrics declares the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles every collector so the container can hand one value to
// the HTTP layer, the refresh usecase, and the worker.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RefreshCycleRunning   prometheus.Gauge
	RefreshFeedsProcessed *prometheus.CounterVec
	RefreshNewArticles    prometheus.Counter
	RefreshCycleDuration  prometheus.Histogram

	JobsTotal     *prometheus.CounterVec
	JobDuration   *prometheus.HistogramVec
	QueueDepth    prometheus.Gauge
	JobsInFlight  prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lector_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lector_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),

		RefreshCycleRunning: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lector_refresh_cycle_running",
			Help: "1 while a scheduled refresh cycle is in progress.",
		}),

		RefreshFeedsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lector_refresh_feeds_total",
			Help: "Feeds processed by refresh cycles, by outcome.",
		}, []string{"outcome"}),

		RefreshNewArticles: factory.NewCounter(prometheus.CounterOpts{
			Name: "lector_refresh_new_articles_total",
			Help: "New articles ingested by refresh cycles.",
		}),

		RefreshCycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lector_refresh_cycle_duration_seconds",
			Help:    "Wall time of complete refresh cycles.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),

		JobsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lector_jobs_total",
			Help: "Jobs completed by type and status.",
		}, []string{"type", "status"}),

		JobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lector_job_duration_seconds",
			Help:    "Job execution time by type.",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 1800},
		}, []string{"type"}),

		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lector_queue_depth",
			Help: "Entries currently in the job stream.",
		}),

		JobsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lector_jobs_in_flight",
			Help: "Jobs currently executing in the worker.",
		}),
	}
}
