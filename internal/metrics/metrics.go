package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	IngestionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobscout_ingestion_duration_seconds",
			Help:    "Duration of one (user, keyword) ingestion run in seconds.",
			Buckets: []float64{10, 30, 60, 180, 600, 1800},
		},
	)
	IngestionStepDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "jobscout_ingestion_step_duration_seconds",
			Help:       "Duration of each step in the ingestion pipeline.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step"},
	)
	SavedJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscout_jobs_saved_total",
			Help: "Total number of newly persisted jobs.",
		},
	)
	DuplicateJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscout_jobs_duplicate_total",
			Help: "Total number of jobs skipped as already saved for the user.",
		},
	)
	DroppedListingsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscout_listings_dropped_total",
			Help: "Total number of listings skipped for an underivable identifier.",
		},
	)
)

func Register() {
	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(IngestionDuration)
	prometheus.MustRegister(IngestionStepDuration)
	prometheus.MustRegister(SavedJobsCounter)
	prometheus.MustRegister(DuplicateJobsCounter)
	prometheus.MustRegister(DroppedListingsCounter)
}
