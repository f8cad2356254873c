package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/cmdloop/pkg/domain"
)

// Metrics records per-command counters and latencies.
type Metrics struct {
	registry   *prometheus.Registry
	commands   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	interrupts *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry, so several shells
// in one process do not collide on the default one.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cmdloop_commands_total",
				Help: "Total number of dispatched commands by outcome",
			},
			[]string{"command", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cmdloop_command_duration_seconds",
				Help:    "Duration of command executions",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		interrupts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cmdloop_interrupts_total",
				Help: "Total number of interrupts, split by whether a command was cancelled",
			},
			[]string{"cancelled"},
		),
	}
	m.registry.MustRegister(m.commands, m.duration, m.interrupts)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandFinish: func(_ context.Context, e *domain.CommandEvent) {
			// Unknown names are folded together to keep label cardinality bounded.
			name := e.Name
			if e.Outcome == domain.OutcomeNotFound {
				name = "unknown"
			}
			m.commands.WithLabelValues(name, e.Outcome.String()).Inc()
			if e.Outcome != domain.OutcomeNotFound && e.Outcome != domain.OutcomeUsage {
				m.duration.WithLabelValues(name).Observe(e.Duration.Seconds())
			}
		},
		OnInterrupt: func(_ context.Context, e *domain.InterruptEvent) {
			label := "false"
			if e.Cancelled {
				label = "true"
			}
			m.interrupts.WithLabelValues(label).Inc()
		},
	}
}
