package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	resolutionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "porteiro_screening_resolutions_total",
		Help: "Total number of visitor restriction resolutions performed",
	})
	matchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "porteiro_screening_matches_total",
		Help: "Total number of restriction matches by source kind",
	}, []string{"source"})
	patternErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "porteiro_screening_pattern_errors_total",
		Help: "Total number of restriction patterns that failed to compile",
	})
	authorizationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "porteiro_authorizations_total",
		Help: "Total number of step-up authorization decisions by outcome",
	}, []string{"outcome"})
	occurrencesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "porteiro_occurrences_emitted_total",
		Help: "Total number of automatic occurrences emitted for predictive matches",
	})
	occurrenceFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "porteiro_occurrences_failed_total",
		Help: "Total number of automatic occurrence writes that failed",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(
		resolutionsTotal,
		matchesTotal,
		patternErrorsTotal,
		authorizationsTotal,
		occurrencesTotal,
		occurrenceFailures,
	)
}

// IncResolution increments the resolutions counter.
func IncResolution() { resolutionsTotal.Inc() }

// IncMatch increments the match counter for a source kind.
func IncMatch(source string) { matchesTotal.WithLabelValues(source).Inc() }

// IncPatternError increments the failed pattern compilation counter.
func IncPatternError() { patternErrorsTotal.Inc() }

// IncAuthorization increments the authorization counter for an outcome.
func IncAuthorization(outcome string) { authorizationsTotal.WithLabelValues(outcome).Inc() }

// IncOccurrenceEmitted increments the emitted occurrences counter.
func IncOccurrenceEmitted() { occurrencesTotal.Inc() }

// IncOccurrenceFailed increments the failed occurrence writes counter.
func IncOccurrenceFailed() { occurrenceFailures.Inc() }
