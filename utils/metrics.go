package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
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
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	NotesOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notes_operations_total",
			Help: "Total number of note lifecycle operations",
		},
		[]string{"operation"}, // create, archive, unarchive, soft_delete, restore
	)

	RemindersOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reminders_operations_total",
			Help: "Total number of reminder operations",
		},
		[]string{"operation"}, // create, clamp, delete
	)

	// Retention sweep metrics
	SweepRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retention_sweep_runs_total",
			Help: "Total number of retention sweeps by outcome",
		},
		[]string{"outcome"}, // success, failure
	)

	NotesPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "retention_notes_purged_total",
			Help: "Total number of trashed notes permanently deleted",
		},
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type", "detail"},
	)
)

func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

func TrackNoteOperation(operation string) {
	NotesOperationsTotal.WithLabelValues(operation).Inc()
}

func TrackReminderOperation(operation string) {
	RemindersOperationsTotal.WithLabelValues(operation).Inc()
}

func TrackSweep(purged int64, err error) {
	if err != nil {
		SweepRunsTotal.WithLabelValues("failure").Inc()
		return
	}
	SweepRunsTotal.WithLabelValues("success").Inc()
	NotesPurgedTotal.Add(float64(purged))
}

func TrackError(errorType, detail string) {
	ErrorsTotal.WithLabelValues(errorType, detail).Inc()
}
