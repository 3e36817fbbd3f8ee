package telemetry

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-opsboard/components/dashboard"
)

const namespace = "opsboard"

// Metrics counts telemetry events with prometheus counters.
type Metrics struct {
	Events         *prometheus.CounterVec
	Exports        *prometheus.CounterVec
	ExportFailures *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_total",
				Help:      "Total number of dashboard and dataview events",
			},
			[]string{"event"},
		),
		Exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exports_total",
				Help:      "Total number of written export artifacts",
			},
			[]string{"format"},
		),
		ExportFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "export_failures_total",
				Help:      "Total number of failed exports",
			},
			[]string{"format", "reason"}, // "unavailable" / "error"
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Events, m.Exports, m.ExportFailures} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("telemetry: register metrics: %w", err)
		}
	}
	return m, nil
}

// Record increments the event counter and, for exports, the export counters.
func (m *Metrics) Record(_ context.Context, event string, payload map[string]any) {
	m.Events.WithLabelValues(event).Inc()
	format, _ := payload["format"].(string)
	switch event {
	case dashboard.EventExportWritten:
		m.Exports.WithLabelValues(format).Inc()
	case dashboard.EventExportFailed:
		reason := "error"
		if unavailable, _ := payload["unavailable"].(bool); unavailable {
			reason = "unavailable"
		}
		m.ExportFailures.WithLabelValues(format, reason).Inc()
	}
}
