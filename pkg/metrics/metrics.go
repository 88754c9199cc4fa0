package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Fetch metrics
	FetchCyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gutsync_fetch_cycles_total",
			Help: "Total number of snapshot fetch cycles",
		},
	)

	FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gutsync_fetch_duration_seconds",
			Help:    "Time taken to complete one snapshot fetch cycle",
			Buckets: prometheus.DefBuckets,
		},
	)

	FetchMetricFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gutsync_fetch_metric_failures_total",
			Help: "Sub-queries absorbed per metric during fetch aggregation",
		},
		[]string{"metric"},
	)

	// Observation metrics
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gutsync_notifications_total",
			Help: "Change notifications received by category",
		},
		[]string{"category"},
	)

	NotificationsCoalesced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gutsync_notifications_coalesced_total",
			Help: "Notifications absorbed into an already-pending fetch",
		},
	)

	WatchesActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gutsync_watches_active",
			Help: "Number of live category watches",
		},
	)

	WatchRegistrationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gutsync_watch_registration_failures_total",
			Help: "Watch registrations that failed by category",
		},
		[]string{"category"},
	)

	// Write metrics
	WritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gutsync_writes_total",
			Help: "Entity writes by outcome status",
		},
		[]string{"status"},
	)

	RecordsWrittenTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gutsync_records_written_total",
			Help: "Translated records committed to the platform",
		},
	)

	RecordsSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gutsync_records_skipped_total",
			Help: "Translated records skipped for missing authorization, by category",
		},
		[]string{"category"},
	)

	WriteDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gutsync_write_duration_seconds",
			Help:    "Time taken to translate and submit one entity",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Authorization metrics
	AuthorizationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gutsync_authorization_requests_total",
			Help: "Combined authorization prompts by outcome",
		},
		[]string{"outcome"},
	)

	CategoriesDenied = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gutsync_categories_denied",
			Help: "Categories currently explicitly denied",
		},
	)
)

func init() {
	// Register all metrics
	prometheus.MustRegister(FetchCyclesTotal)
	prometheus.MustRegister(FetchDuration)
	prometheus.MustRegister(FetchMetricFailures)
	prometheus.MustRegister(NotificationsTotal)
	prometheus.MustRegister(NotificationsCoalesced)
	prometheus.MustRegister(WatchesActive)
	prometheus.MustRegister(WatchRegistrationFailures)
	prometheus.MustRegister(WritesTotal)
	prometheus.MustRegister(RecordsWrittenTotal)
	prometheus.MustRegister(RecordsSkippedTotal)
	prometheus.MustRegister(WriteDuration)
	prometheus.MustRegister(AuthorizationRequestsTotal)
	prometheus.MustRegister(CategoriesDenied)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
