package commands

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-opsboard/components/dashboard"
	"github.com/goliatone/go-opsboard/components/dataview"
)

var errMissingService = errors.New("commands: service not configured")

// Target addresses one widget of a mounted page.
type Target struct {
	MountID string
	Widget  string
}

func (t Target) payload() map[string]any {
	return map[string]any{"mount_id": t.MountID, "widget": t.Widget}
}

// widgetResolver finds the live state of a mounted widget. dashboard.Service satisfies it.
type widgetResolver interface {
	Widget(mountID, code string) (*dashboard.WidgetView, error)
}

func resolve(service widgetResolver, target Target) (*dashboard.WidgetView, error) {
	if service == nil {
		return nil, errMissingService
	}
	return service.Widget(target.MountID, target.Widget)
}

func tableOf(service widgetResolver, target Target) (*dataview.TableSession, error) {
	widget, err := resolve(service, target)
	if err != nil {
		return nil, err
	}
	if widget.Table == nil {
		return nil, fmt.Errorf("%w: %s is not a grid", dashboard.ErrWidgetKind, target.Widget)
	}
	return widget.Table, nil
}

func chartOf(service widgetResolver, target Target) (*dataview.ChartSession, error) {
	widget, err := resolve(service, target)
	if err != nil {
		return nil, err
	}
	if widget.Chart == nil {
		return nil, fmt.Errorf("%w: %s is not a chart", dashboard.ErrWidgetKind, target.Widget)
	}
	return widget.Chart, nil
}
