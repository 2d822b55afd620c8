// Package metrics exposes Prometheus instrumentation for the simulation
// core: pattern generation and fallback activity, buffer health, and decode
// outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	patternsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jitfhss_patterns_generated_total",
			Help: "Total patterns emitted by the pattern source.",
		},
		[]string{"origin"}, // live | cache
	)

	bufferRejects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jitfhss_buffer_rejects_total",
			Help: "Patterns rejected as duplicate or out-of-order.",
		},
		[]string{"owner"},
	)

	bufferExhaustions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jitfhss_buffer_exhaustions_total",
			Help: "Reads past the end of a pattern buffer (stale repeat).",
		},
		[]string{"owner"},
	)

	bufferCompactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jitfhss_buffer_compactions_total",
			Help: "Compaction passes over a pattern buffer.",
		},
		[]string{"owner"},
	)

	bufferRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "jitfhss_buffer_remaining",
			Help: "Unconsumed patterns remaining in a buffer.",
		},
		[]string{"owner"},
	)

	hops = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jitfhss_hops_total",
			Help: "Frequency hops performed.",
		},
		[]string{"role"}, // sender | receiver
	)

	decodes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jitfhss_decodes_total",
			Help: "Decode attempts by outcome.",
		},
		[]string{"outcome"}, // success | low_snr | clock_drift | frequency_mismatch
	)
)

func init() {
	prometheus.MustRegister(patternsGenerated)
	prometheus.MustRegister(bufferRejects)
	prometheus.MustRegister(bufferExhaustions)
	prometheus.MustRegister(bufferCompactions)
	prometheus.MustRegister(bufferRemaining)
	prometheus.MustRegister(hops)
	prometheus.MustRegister(decodes)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// IncPatternGenerated records one pattern emission.
func IncPatternGenerated(fromCache bool) {
	origin := "live"
	if fromCache {
		origin = "cache"
	}
	patternsGenerated.WithLabelValues(origin).Inc()
}

// IncBufferReject records a duplicate/out-of-order rejection.
func IncBufferReject(owner string) { bufferRejects.WithLabelValues(owner).Inc() }

// IncBufferExhaustion records a read past the end of a buffer.
func IncBufferExhaustion(owner string) { bufferExhaustions.WithLabelValues(owner).Inc() }

// IncBufferCompaction records a compaction pass.
func IncBufferCompaction(owner string) { bufferCompactions.WithLabelValues(owner).Inc() }

// SetBufferRemaining publishes the current backlog of a buffer.
func SetBufferRemaining(owner string, n int) {
	bufferRemaining.WithLabelValues(owner).Set(float64(n))
}

// IncHop records a frequency hop.
func IncHop(role string) { hops.WithLabelValues(role).Inc() }

// IncDecode records a decode attempt; outcome is "success" or a failure
// label.
func IncDecode(outcome string) { decodes.WithLabelValues(outcome).Inc() }
