package telemetry

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Recorder matches the Telemetry interfaces of the dashboard and the dataview commands.
type Recorder interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// ZapTelemetry writes every event as a structured log line.
type ZapTelemetry struct {
	logger *zap.Logger
}

// NewZapTelemetry logs through logger. A nil logger falls back to the one in
// the event context, then to a no-op logger.
func NewZapTelemetry(logger *zap.Logger) *ZapTelemetry {
	return &ZapTelemetry{logger: logger}
}

// Record logs the event. Failures log at warn, everything else at debug.
func (t *ZapTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	logger := t.logger
	if logger == nil {
		logger = LoggerFrom(ctx)
	}
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys)+1)
	fields = append(fields, zap.String("event", event))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, payload[k]))
	}
	if strings.HasSuffix(event, ".failed") || strings.HasSuffix(event, ".missing") {
		logger.Warn("telemetry event", fields...)
		return
	}
	logger.Debug("telemetry event", fields...)
}

// Multi fans one event out to several recorders. Nil recorders are skipped.
type Multi []Recorder

// Record forwards the event to every recorder in order.
func (m Multi) Record(ctx context.Context, event string, payload map[string]any) {
	for _, r := range m {
		if r != nil {
			r.Record(ctx, event, payload)
		}
	}
}
