package pattern

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// invalidModeLabel replaces any mode outside ValidModes in metric labels.
const invalidModeLabel = "invalid"

// Metrics holds the Prometheus collectors for ast_grep calls.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	calls          *prometheus.CounterVec
	truncated      prometheus.Counter
	engineDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sg_mcp_calls_total",
			Help: "ast_grep tool calls by effective mode and outcome",
		}, []string{"mode", "outcome"}),
		truncated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sg_mcp_output_truncated_total",
			Help: "Engine runs whose output exceeded the capture ceiling",
		}),
		engineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sg_mcp_engine_duration_seconds",
			Help:    "Wall time of ast-grep child processes",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}

	for _, c := range []prometheus.Collector{m.calls, m.truncated, m.engineDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeCall(mode Mode, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = string(KindOf(err))
	}
	// Caller-supplied modes must not become label values.
	label := string(mode)
	if !validMode(mode) {
		label = invalidModeLabel
	}
	m.calls.WithLabelValues(label, outcome).Inc()
}

func (m *Metrics) observeEngine(took time.Duration, truncated bool) {
	if m == nil {
		return
	}
	m.engineDuration.Observe(took.Seconds())
	if truncated {
		m.truncated.Inc()
	}
}
