package chat

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	flowLibrary = "library"
	flowAuthor  = "author"

	stageEmbed    = "embed"
	stageSearch   = "search"
	stageSections = "sections"
	stageGenerate = "generate"
)

var (
	// stageDuration tracks how long each pipeline stage takes.
	// Labels: flow (library, author), stage (embed, search, sections, generate)
	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lifebook",
			Subsystem: "chat",
			Name:      "stage_duration_seconds",
			Help:      "Duration of chat pipeline stages",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"flow", "stage"},
	)

	stageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lifebook",
			Subsystem: "chat",
			Name:      "stage_failures_total",
			Help:      "Total number of failed chat pipeline stages",
		},
		[]string{"flow", "stage"},
	)

	contextTruncations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lifebook",
			Subsystem: "chat",
			Name:      "context_truncations_total",
			Help:      "Total number of chat contexts cut to the character budget",
		},
		[]string{"flow"},
	)
)

func observeStage(flow, stage string, start time.Time, err error) {
	stageDuration.WithLabelValues(flow, stage).Observe(time.Since(start).Seconds())
	if err != nil {
		stageFailures.WithLabelValues(flow, stage).Inc()
	}
}
