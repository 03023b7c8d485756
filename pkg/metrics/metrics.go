package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds all seed metrics on a private registry so a short-lived
// process can push them in one shot.
type Metrics struct {
	Registry *prometheus.Registry

	DocumentsStaged     prometheus.Counter
	DocumentsWritten    prometheus.Counter
	BatchCommits        *prometheus.CounterVec
	BatchCommitDuration prometheus.Histogram
}

// NewMetrics creates and registers all seed metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		DocumentsStaged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "documents_staged_total",
			Help:      "Total number of documents staged into a write batch",
		}),
		DocumentsWritten: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "documents_written_total",
			Help:      "Total number of documents written by committed batches",
		}),
		BatchCommits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "batch_commits_total",
			Help:      "Total number of batch commits by outcome",
		}, []string{"status"}),
		BatchCommitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "batch_commit_duration_seconds",
			Help:      "Duration of batch commits",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}
}

func New(namespace string) *Metrics {
	return NewMetrics(namespace, "seed")
}

// Push sends the current registry contents to a Pushgateway under job.
func (m *Metrics) Push(ctx context.Context, gatewayURL, job string) error {
	if err := push.New(gatewayURL, job).Gatherer(m.Registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}
