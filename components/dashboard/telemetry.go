package dashboard

import "context"

// Telemetry event names recorded by the service.
const (
	EventPageMounted    = "dashboard.page.mounted"
	EventPageUnmounted  = "dashboard.page.unmounted"
	EventRangeChanged   = "dashboard.range.changed"
	EventExportWritten  = "dashboard.export.written"
	EventExportFailed   = "dashboard.export.failed"
	EventChartRendered  = "dashboard.chart.rendered"
	EventDatasetMissing = "dashboard.dataset.missing"
)

// Telemetry records dashboard events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
