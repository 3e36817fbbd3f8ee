package commands

import (
	"context"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-opsboard/components/dashboard"
)

// SearchChangeInput sets the search text of a grid, or of a chart's data table.
type SearchChangeInput struct {
	Target
	Text string
}

// SearchChangeCommand applies a search and resets the grid to its first page.
type SearchChangeCommand struct {
	service   widgetResolver
	telemetry Telemetry
}

// NewSearchChangeCommand creates the command.
func NewSearchChangeCommand(service widgetResolver, telemetry Telemetry) *SearchChangeCommand {
	return &SearchChangeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SearchChangeInput] = (*SearchChangeCommand)(nil)

// Execute routes the search to whichever session the widget has.
func (c *SearchChangeCommand) Execute(ctx context.Context, msg SearchChangeInput) error {
	widget, err := resolve(c.service, msg.Target)
	if err != nil {
		return err
	}
	payload := msg.payload()
	switch {
	case widget.Table != nil:
		page := widget.Table.OnSearchChange(msg.Text)
		payload["matched"] = page.TotalMatched
	case widget.Chart != nil:
		page := widget.Chart.OnSearchChange(msg.Text)
		payload["matched"] = page.TotalMatched
	default:
		return fmt.Errorf("%w: %s is not searchable", dashboard.ErrWidgetKind, msg.Widget)
	}
	payload["search"] = msg.Text
	c.telemetry.Record(ctx, EventSearchChanged, payload)
	return nil
}

// PageChangeInput moves a grid to a zero-based page.
type PageChangeInput struct {
	Target
	Page int
}

// PageChangeCommand changes the current grid page.
type PageChangeCommand struct {
	service   widgetResolver
	telemetry Telemetry
}

// NewPageChangeCommand creates the command.
func NewPageChangeCommand(service widgetResolver, telemetry Telemetry) *PageChangeCommand {
	return &PageChangeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[PageChangeInput] = (*PageChangeCommand)(nil)

// Execute rejects negative page indexes.
func (c *PageChangeCommand) Execute(ctx context.Context, msg PageChangeInput) error {
	table, err := tableOf(c.service, msg.Target)
	if err != nil {
		return err
	}
	page, err := table.OnPageChange(msg.Page)
	if err != nil {
		return err
	}
	payload := msg.payload()
	payload["page"] = page.Page
	c.telemetry.Record(ctx, EventPageChanged, payload)
	return nil
}

// PageSizeChangeInput sets the grid rows per page.
type PageSizeChangeInput struct {
	Target
	Size int
}

// PageSizeChangeCommand changes the grid page size and returns to the first page.
type PageSizeChangeCommand struct {
	service   widgetResolver
	telemetry Telemetry
}

// NewPageSizeChangeCommand creates the command.
func NewPageSizeChangeCommand(service widgetResolver, telemetry Telemetry) *PageSizeChangeCommand {
	return &PageSizeChangeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[PageSizeChangeInput] = (*PageSizeChangeCommand)(nil)

// Execute delegates to the grid session.
func (c *PageSizeChangeCommand) Execute(ctx context.Context, msg PageSizeChangeInput) error {
	table, err := tableOf(c.service, msg.Target)
	if err != nil {
		return err
	}
	page, err := table.OnPageSizeChange(msg.Size)
	if err != nil {
		return err
	}
	payload := msg.payload()
	payload["page_size"] = page.PageSize
	c.telemetry.Record(ctx, EventPageSizeChanged, payload)
	return nil
}
