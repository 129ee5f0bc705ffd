package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/balanceline/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "balanceline"

// Recorder counts tier outcomes and upstream latency for one invocation.
// Each process is short lived, so the registry is flushed to a
// node_exporter textfile rather than scraped.
type Recorder struct {
	registry *prometheus.Registry

	tierTotal        *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

var _ ports.ResolutionObserver = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		tierTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolution_tier_total",
			Help:      "Balance resolution attempts by tier and outcome",
		}, []string{"tier", "outcome"}),

		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream balance query duration",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"tier"}),
	}

	r.registry.MustRegister(r.tierTotal, r.upstreamDuration)
	return r
}

func (r *Recorder) ObserveTier(tier string, outcome string) {
	r.tierTotal.WithLabelValues(tier, outcome).Inc()
}

func (r *Recorder) ObserveUpstream(tier string, seconds float64) {
	r.upstreamDuration.WithLabelValues(tier).Observe(seconds)
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile replaces path with the current samples. An empty path is a
// no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
