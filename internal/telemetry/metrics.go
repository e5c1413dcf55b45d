// Package telemetry exposes Prometheus metrics for the pick pipeline.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequests counts market-data calls by provider, endpoint and result.
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirsch_provider_requests_total",
			Help: "Market data requests by provider, endpoint and result",
		},
		[]string{"provider", "endpoint", "result"},
	)

	// ProviderLatency observes market-data call latency.
	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hirsch_provider_request_duration_seconds",
			Help:    "Market data request latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "endpoint"},
	)

	// Generations counts generate calls by outcome (cached, generated, placeholder, error).
	Generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirsch_generations_total",
			Help: "Pick generation calls by outcome",
		},
		[]string{"outcome"},
	)

	// GenerationDuration observes end-to-end generate latency.
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hirsch_generation_duration_seconds",
			Help:    "End-to-end pick generation duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// EligibleCandidates is the number of candidates that passed category fit in the last cycle.
	EligibleCandidates = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hirsch_tier_eligible_candidates",
			Help: "Candidates scored per tier in the last generation cycle",
		},
		[]string{"tier"},
	)

	// LedgerRows counts track-record rows written by ledger catch-up.
	LedgerRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirsch_ledger_rows_total",
			Help: "Track record rows produced by ledger catch-up",
		},
		[]string{"tier"},
	)
)
