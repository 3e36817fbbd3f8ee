package queries

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-opsboard/components/dashboard"
	"github.com/goliatone/go-opsboard/components/dataview"
)

var errMissingService = errors.New("queries: service not configured")

// WidgetInput addresses one widget of a mounted page.
type WidgetInput struct {
	MountID string
	Widget  string
}

type widgetResolver interface {
	Widget(mountID, code string) (*dashboard.WidgetView, error)
}

// VisibleRowsQuery returns the rows a widget currently shows: the current grid
// page, or the searched data table of a chart.
type VisibleRowsQuery struct {
	service widgetResolver
}

// NewVisibleRowsQuery builds the query.
func NewVisibleRowsQuery(service widgetResolver) *VisibleRowsQuery {
	return &VisibleRowsQuery{service: service}
}

var _ gocommand.Querier[WidgetInput, dataview.TablePage] = (*VisibleRowsQuery)(nil)

// Query derives the rows from the widget's session.
func (q *VisibleRowsQuery) Query(_ context.Context, input WidgetInput) (dataview.TablePage, error) {
	if q.service == nil {
		return dataview.TablePage{}, errMissingService
	}
	widget, err := q.service.Widget(input.MountID, input.Widget)
	if err != nil {
		return dataview.TablePage{}, err
	}
	switch {
	case widget.Table != nil:
		return widget.Table.Visible(), nil
	case widget.Chart != nil:
		return widget.Chart.DataTable(), nil
	default:
		return dataview.TablePage{}, fmt.Errorf("%w: %s has no rows", dashboard.ErrWidgetKind, input.Widget)
	}
}

// VisibleSeriesQuery returns the filtered and limited series of a chart widget.
type VisibleSeriesQuery struct {
	service widgetResolver
}

// NewVisibleSeriesQuery builds the query.
func NewVisibleSeriesQuery(service widgetResolver) *VisibleSeriesQuery {
	return &VisibleSeriesQuery{service: service}
}

var _ gocommand.Querier[WidgetInput, dataview.SeriesView] = (*VisibleSeriesQuery)(nil)

// Query derives the series from the chart session.
func (q *VisibleSeriesQuery) Query(_ context.Context, input WidgetInput) (dataview.SeriesView, error) {
	if q.service == nil {
		return dataview.SeriesView{}, errMissingService
	}
	widget, err := q.service.Widget(input.MountID, input.Widget)
	if err != nil {
		return dataview.SeriesView{}, err
	}
	if widget.Chart == nil {
		return dataview.SeriesView{}, fmt.Errorf("%w: %s is not a chart", dashboard.ErrWidgetKind, input.Widget)
	}
	return widget.Chart.Visible(), nil
}
