// Package observability exposes Prometheus metrics for the recruitment domain.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ApplicationsSubmitted counts committed job applications.
	ApplicationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "talenthub_applications_submitted_total",
		Help: "Total number of job applications committed",
	})

	// ApplicationsRejected counts refused submissions by reason.
	ApplicationsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talenthub_applications_rejected_total",
		Help: "Total number of refused application submissions by reason",
	}, []string{"reason"})

	// ResumesUploaded counts persisted resume artifacts.
	ResumesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "talenthub_resumes_uploaded_total",
		Help: "Total number of resume artifacts persisted",
	})

	// ResumeParseFailures counts parser calls that were absorbed as no-ops.
	ResumeParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "talenthub_resume_parse_failures_total",
		Help: "Total number of resume parser failures absorbed by the pipeline",
	})
)
