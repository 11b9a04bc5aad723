package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mediagrab_resolutions_total",
		Help: "URL resolution outcomes",
	}, []string{"outcome"})

	Downloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mediagrab_downloads_total",
		Help: "Download attempts by extractor and status",
	}, []string{"extractor", "status"})

	DownloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mediagrab_download_duration_seconds",
		Help:    "Duration of media downloads",
		Buckets: []float64{1, 2, 5, 10, 30, 60, 120, 300, 600},
	})

	DeliveredBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mediagrab_delivered_bytes_total",
		Help: "Total size of delivered media files",
	})

	CleanedFiles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mediagrab_cleaned_files_total",
		Help: "Downloaded files removed by the janitor",
	})
)

// Resolution outcome labels.
const (
	OutcomeProceed  = "proceed"
	OutcomeNoMatch  = "no_match"
	OutcomeDisabled = "disabled"
)

// Download status labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)
