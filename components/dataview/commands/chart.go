package commands

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-opsboard/components/dataview"
)

// FilterChangeInput selects one option of a chart filter.
type FilterChangeInput struct {
	Target
	Key   string
	Value string
}

// FilterChangeCommand applies an exact-match chart filter. The limit is kept.
type FilterChangeCommand struct {
	service   widgetResolver
	telemetry Telemetry
}

// NewFilterChangeCommand creates the command.
func NewFilterChangeCommand(service widgetResolver, telemetry Telemetry) *FilterChangeCommand {
	return &FilterChangeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[FilterChangeInput] = (*FilterChangeCommand)(nil)

// Execute rejects keys and values the chart does not declare.
func (c *FilterChangeCommand) Execute(ctx context.Context, msg FilterChangeInput) error {
	chart, err := chartOf(c.service, msg.Target)
	if err != nil {
		return err
	}
	series, err := chart.OnFilterChange(msg.Key, msg.Value)
	if err != nil {
		return err
	}
	payload := msg.payload()
	payload["key"] = msg.Key
	payload["value"] = msg.Value
	payload["shown"] = series.Shown
	c.telemetry.Record(ctx, EventFilterChanged, payload)
	return nil
}

// ClearFiltersInput resets every filter of a chart.
type ClearFiltersInput struct {
	Target
}

// ClearFiltersCommand drops all chart filters.
type ClearFiltersCommand struct {
	service   widgetResolver
	telemetry Telemetry
}

// NewClearFiltersCommand creates the command.
func NewClearFiltersCommand(service widgetResolver, telemetry Telemetry) *ClearFiltersCommand {
	return &ClearFiltersCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ClearFiltersInput] = (*ClearFiltersCommand)(nil)

// Execute clears the filters; limit and search are untouched.
func (c *ClearFiltersCommand) Execute(ctx context.Context, msg ClearFiltersInput) error {
	chart, err := chartOf(c.service, msg.Target)
	if err != nil {
		return err
	}
	series := chart.OnClearFilters()
	payload := msg.payload()
	payload["shown"] = series.Shown
	c.telemetry.Record(ctx, EventFiltersCleared, payload)
	return nil
}

// LimitChangeInput caps the number of chart data points.
type LimitChangeInput struct {
	Target
	Limit int
}

// LimitChangeCommand sets the chart data point limit.
type LimitChangeCommand struct {
	service   widgetResolver
	telemetry Telemetry
}

// NewLimitChangeCommand creates the command.
func NewLimitChangeCommand(service widgetResolver, telemetry Telemetry) *LimitChangeCommand {
	return &LimitChangeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LimitChangeInput] = (*LimitChangeCommand)(nil)

// Execute clamps the limit to the source bounds.
func (c *LimitChangeCommand) Execute(ctx context.Context, msg LimitChangeInput) error {
	chart, err := chartOf(c.service, msg.Target)
	if err != nil {
		return err
	}
	series := chart.OnLimitChange(msg.Limit)
	payload := msg.payload()
	payload["requested"] = msg.Limit
	payload["limit"] = chart.State().Limit
	payload["shown"] = series.Shown
	c.telemetry.Record(ctx, EventLimitChanged, payload)
	return nil
}

// VariantChangeInput switches a chart between default and stacked layouts.
type VariantChangeInput struct {
	Target
	Variant string
}

// VariantChangeCommand changes the chart layout variant.
type VariantChangeCommand struct {
	service   widgetResolver
	telemetry Telemetry
}

// NewVariantChangeCommand creates the command.
func NewVariantChangeCommand(service widgetResolver, telemetry Telemetry) *VariantChangeCommand {
	return &VariantChangeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[VariantChangeInput] = (*VariantChangeCommand)(nil)

// Execute validates the variant name before touching the session.
func (c *VariantChangeCommand) Execute(ctx context.Context, msg VariantChangeInput) error {
	variant, err := dataview.ParseVariant(msg.Variant)
	if err != nil {
		return err
	}
	chart, err := chartOf(c.service, msg.Target)
	if err != nil {
		return err
	}
	chart.OnVariantChange(variant)
	payload := msg.payload()
	payload["variant"] = string(variant)
	c.telemetry.Record(ctx, EventVariantChanged, payload)
	return nil
}
