// Package metrics holds shared Prometheus collectors and histogram defaults.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Outcome labels for the closure processing counter.
const (
	OutcomeCompleted = "completed"
	OutcomeCanceled  = "canceled"
	OutcomeFailed    = "failed"
)

//nolint: gochecknoglobals
var (
	// ClosuresProcessed counts closure jobs by outcome.
	ClosuresProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moveout_closures_processed_total",
		Help: "Number of closure jobs processed, labeled by outcome.",
	}, []string{"outcome"})

	// IdentityChecks counts MRZ verifications by resulting status.
	IdentityChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moveout_identity_checks_total",
		Help: "Number of identity document checks, labeled by status.",
	}, []string{"status"})
)
