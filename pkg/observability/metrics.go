package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/aretw0/showcase/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "showcase"

// Metrics holds the collectors of a running showcase.
type Metrics struct {
	registry *prometheus.Registry

	slideViews *prometheus.CounterVec
	steps      *prometheus.CounterVec
	renders    *prometheus.CounterVec
	commands   *prometheus.CounterVec
	sessions   prometheus.Gauge
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		slideViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slide_views_total",
			Help:      "Total number of slide entries.",
		}, []string{"slide_id"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "walkthrough_steps_total",
			Help:      "Total number of walkthrough step changes.",
		}, []string{"slide_id"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagram_renders_total",
			Help:      "Total number of exported diagrams.",
		}, []string{"format"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_commands_total",
			Help:      "Total number of remote presenter commands.",
		}, []string{"command", "result"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions created and not yet deleted by this process.",
		}),
	}
	m.registry.MustRegister(m.slideViews, m.steps, m.renders, m.commands, m.sessions)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks records slide entries and step changes. Other hooks, if set, still run.
func (m *Metrics) Hooks(next domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSlideEnter: func(ctx context.Context, e *domain.SlideEvent) {
			m.slideViews.WithLabelValues(e.SlideID).Inc()
			if next.OnSlideEnter != nil {
				next.OnSlideEnter(ctx, e)
			}
		},
		OnSlideLeave: next.OnSlideLeave,
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.steps.WithLabelValues(e.SlideID).Inc()
			if next.OnStep != nil {
				next.OnStep(ctx, e)
			}
		},
	}
}

// ObserveRender counts an exported diagram.
func (m *Metrics) ObserveRender(format string) {
	m.renders.WithLabelValues(format).Inc()
}

// ObserveCommand counts a session command by outcome.
func (m *Metrics) ObserveCommand(command string, err error) {
	m.commands.WithLabelValues(command, result(err)).Inc()
}

// SessionCreated and SessionDeleted track live sessions of this process.
func (m *Metrics) SessionCreated() { m.sessions.Inc() }
func (m *Metrics) SessionDeleted() { m.sessions.Dec() }

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrSlideNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnknownCommand), errors.Is(err, domain.ErrNodeNotFound),
		errors.Is(err, domain.ErrModeNotFound), errors.Is(err, domain.ErrGateClosed):
		return "rejected"
	default:
		return "error"
	}
}
