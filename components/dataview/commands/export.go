package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-opsboard/components/dashboard"
	"github.com/goliatone/go-opsboard/components/dataview"
	"github.com/goliatone/go-opsboard/components/export"
)

// ExportRequestInput asks for the visible data of a widget as a file.
// OnComplete, when set, receives the outcome; for async requests it is
// called from the export goroutine.
type ExportRequestInput struct {
	Target
	Format     string
	Scope      string
	Async      bool
	OnComplete func(export.Artifact, error)
}

type exportService interface {
	Export(ctx context.Context, req dashboard.ExportRequest) (export.Artifact, error)
	ExportAsync(ctx context.Context, req dashboard.ExportRequest) <-chan export.Result
}

// ExportRequestCommand snapshots a widget and writes it through the dashboard exporter.
type ExportRequestCommand struct {
	service   exportService
	telemetry Telemetry
}

// NewExportRequestCommand creates the command.
func NewExportRequestCommand(service exportService, telemetry Telemetry) *ExportRequestCommand {
	return &ExportRequestCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ExportRequestInput] = (*ExportRequestCommand)(nil)

// Execute runs the export. An unavailable exporter is reported through the
// returned error and OnComplete; the widget state is left as it was.
func (c *ExportRequestCommand) Execute(ctx context.Context, msg ExportRequestInput) error {
	if c.service == nil {
		return errMissingService
	}
	format, err := export.ParseFormat(msg.Format)
	if err != nil {
		return err
	}
	scope, err := dataview.ParseScope(msg.Scope)
	if err != nil {
		return err
	}
	req := dashboard.ExportRequest{MountID: msg.MountID, Widget: msg.Widget, Format: format, Scope: scope}
	payload := msg.payload()
	payload["format"] = string(format)
	payload["scope"] = string(scope)
	payload["async"] = msg.Async
	c.telemetry.Record(ctx, EventExportRequested, payload)

	if msg.Async {
		results := c.service.ExportAsync(ctx, req)
		go func() {
			res, ok := <-results
			if !ok {
				res.Err = errors.New("commands: export produced no result")
			}
			if msg.OnComplete != nil {
				msg.OnComplete(res.Artifact, res.Err)
			}
		}()
		return nil
	}
	artifact, err := c.service.Export(ctx, req)
	if msg.OnComplete != nil {
		msg.OnComplete(artifact, err)
	}
	return err
}
