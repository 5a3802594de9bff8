package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_saved_total",
			Help: "Total number of submissions persisted, by resulting status",
		},
		[]string{"status"},
	)

	SubmissionValidationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "form_submission_validation_failures_total",
			Help: "Total number of submit attempts rejected by the validator",
		},
	)

	ExportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "acord_exports_generated_total",
			Help: "Total number of ACORD exports, by format and outcome",
		},
		[]string{"format", "outcome"},
	)

	ExportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "acord_export_duration_seconds",
			Help:    "Duration of ACORD document generation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	TemplateCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_template_cache_requests_total",
			Help: "Template cache lookups, by result",
		},
		[]string{"result"},
	)

	ProcessorSweeps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_processor_sweeps_total",
			Help: "Scheduled processor sweeps, by outcome",
		},
		[]string{"outcome"},
	)

	ProcessorSubmissionsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "submission_processor_processed_total",
			Help: "Submissions delivered to agents and marked processed",
		},
	)

	ProcessorSubmissionsAbandoned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "submission_processor_abandoned_total",
			Help: "Submissions dropped from sweeps after exhausting delivery attempts",
		},
	)
)
