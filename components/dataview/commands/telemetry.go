package commands

import "context"

// Telemetry event names recorded by the commands.
const (
	EventSearchChanged   = "dataview.search.changed"
	EventFilterChanged   = "dataview.filter.changed"
	EventFiltersCleared  = "dataview.filters.cleared"
	EventPageChanged     = "dataview.page.changed"
	EventPageSizeChanged = "dataview.page_size.changed"
	EventLimitChanged    = "dataview.limit.changed"
	EventVariantChanged  = "dataview.variant.changed"
	EventExportRequested = "dataview.export.requested"
)

// Telemetry allows commands to emit structured events.
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
