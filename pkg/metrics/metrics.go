package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Alternatives returned, by resolved mode
	SelectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_selections_total",
		Help: "Total number of alternative selections served",
	}, []string{"mode"})

	SelectionSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scout_selection_size",
		Help:    "Number of alternatives returned per selection",
		Buckets: []float64{0, 1, 2, 3, 4, 5, 10, 25},
	})

	// Scrape jobs that reached a terminal status
	ScrapeJobsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_scrape_jobs_total",
		Help: "Scrape jobs by terminal status",
	}, []string{"status"})

	ScrapeJobDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scout_scrape_job_duration_seconds",
		Help:    "Time from submission to terminal status",
		Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120, 300},
	})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scout_http_request_duration_seconds",
		Help:    "Latency of HTTP handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func Init() {
	prometheus.MustRegister(
		SelectionsTotal,
		SelectionSize,
		ScrapeJobsTotal,
		ScrapeJobDuration,
		HTTPRequestDuration,
	)
}
