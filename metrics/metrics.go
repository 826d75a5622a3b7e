// Package metrics exposes Prometheus instrumentation for the generation
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StageTotal counts stage executions by stage name and outcome.
	StageTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "podforge",
		Name:      "stage_total",
		Help:      "Pipeline stage executions by outcome.",
	}, []string{"stage", "outcome"})

	// StageDuration observes wall time per pipeline stage.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "podforge",
		Name:      "stage_duration_seconds",
		Help:      "Pipeline stage duration in seconds.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"stage"})

	// PodcastDuration observes the length of assembled podcasts.
	PodcastDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "podforge",
		Name:      "podcast_duration_seconds",
		Help:      "Duration of assembled podcasts in seconds.",
		Buckets:   prometheus.LinearBuckets(30, 60, 10),
	})
)

// ObserveStage records one stage execution.
func ObserveStage(stage string, seconds float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StageTotal.WithLabelValues(stage, outcome).Inc()
	StageDuration.WithLabelValues(stage).Observe(seconds)
}
