package dashboard

import (
	"context"
	"fmt"
	"io"

	"github.com/goliatone/go-opsboard/components/dataview"
	"github.com/goliatone/go-opsboard/components/export"
	"github.com/goliatone/go-opsboard/components/provider"
)

// DefaultPageTemplate is the embedded template used for mounted pages.
const DefaultPageTemplate = "page.html"

// Renderer describes the template renderer contract needed by the page renderer.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// PageRendererOption customizes a PageRenderer.
type PageRendererOption func(*PageRenderer)

// WithPageTemplate overrides the template name.
func WithPageTemplate(name string) PageRendererOption {
	return func(p *PageRenderer) {
		if name != "" {
			p.template = name
		}
	}
}

// WithPageFormatter sets the formatter used for grid cells.
func WithPageFormatter(f dataview.Formatter) PageRendererOption {
	return func(p *PageRenderer) {
		p.formatter = f
	}
}

// WithPageTelemetry records chart render events.
func WithPageTelemetry(t Telemetry) PageRendererOption {
	return func(p *PageRenderer) {
		p.telemetry = normalizeTelemetry(t)
	}
}

// PageRenderer renders a mounted page, including chart markup, through a template renderer.
type PageRenderer struct {
	renderer  Renderer
	charts    *ChartRenderer
	template  string
	formatter dataview.Formatter
	telemetry Telemetry
}

// NewPageRenderer wires a template renderer and a chart renderer.
func NewPageRenderer(renderer Renderer, charts *ChartRenderer, opts ...PageRendererOption) *PageRenderer {
	if charts == nil {
		charts = NewChartRenderer()
	}
	p := &PageRenderer{
		renderer:  renderer,
		charts:    charts,
		template:  DefaultPageTemplate,
		formatter: dataview.DefaultFormatter(),
		telemetry: noopTelemetry{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Render writes the page HTML to out and returns it.
func (p *PageRenderer) Render(ctx context.Context, view *PageView, out ...io.Writer) (string, error) {
	if p.renderer == nil {
		return "", fmt.Errorf("dashboard: template renderer not configured")
	}
	data, err := p.PageData(ctx, view)
	if err != nil {
		return "", err
	}
	html, err := p.renderer.Render(p.template, data, out...)
	if err != nil {
		return "", fmt.Errorf("dashboard: render page %s: %w", view.Page.Code, err)
	}
	return html, nil
}

// PageData builds the template context of a mounted page.
func (p *PageRenderer) PageData(ctx context.Context, view *PageView) (map[string]any, error) {
	if view == nil {
		return nil, fmt.Errorf("%w: nil page view", ErrUnknownMount)
	}
	r := view.Range()
	ranges := make([]map[string]any, len(provider.Ranges))
	for i, option := range provider.Ranges {
		ranges[i] = map[string]any{"value": string(option), "label": option.Label(), "selected": option == r}
	}
	kpis := make([]map[string]any, 0)
	for _, kpi := range view.KPIs() {
		kpis = append(kpis, map[string]any{
			"label":        kpi.Label,
			"value":        kpi.Value,
			"change":       kpi.Change,
			"change_label": kpi.ChangeLabel,
			"trend":        string(kpi.Trend),
			"positive":     kpi.Positive,
		})
	}
	widgets := make([]map[string]any, 0, len(view.Widgets))
	for _, widget := range view.Widgets {
		data, err := p.widgetData(ctx, view, widget)
		if err != nil {
			return nil, err
		}
		widgets = append(widgets, data)
	}
	return map[string]any{
		"mount_id":    view.ID,
		"code":        view.Page.Code,
		"title":       view.Page.Title,
		"description": view.Page.Description,
		"range":       string(r),
		"range_label": r.Label(),
		"ranges":      ranges,
		"kpis":        kpis,
		"widgets":     widgets,
	}, nil
}

func (p *PageRenderer) widgetData(ctx context.Context, view *PageView, widget *WidgetView) (map[string]any, error) {
	def := widget.Definition
	data := map[string]any{
		"code":        def.Code,
		"kind":        string(def.Kind),
		"title":       def.Title,
		"description": def.Description,
		"exportable":  def.Exportable(),
		"stem":        export.Stem(def.Title),
	}
	switch def.Kind {
	case KindChart:
		html, err := p.charts.RenderSession(def, widget.Chart)
		if err != nil {
			return nil, fmt.Errorf("dashboard: render chart %s: %w", def.Code, err)
		}
		series := widget.Chart.Visible()
		state := widget.Chart.State()
		data["chart_html"] = html
		data["summary"] = series.Summary()
		data["has_filters"] = series.HasFilters
		data["limit"] = state.Limit
		data["variant"] = string(state.Variant)
		data["filters"] = filterData(def.Chart, state)
		if def.Chart.Trend != nil {
			data["trend"] = *def.Chart.Trend
		}
		p.telemetry.Record(ctx, EventChartRendered, map[string]any{
			"mount_id": view.ID,
			"widget":   def.Code,
			"shown":    series.Shown,
			"total":    series.Total,
		})
	case KindGrid:
		data["table"] = p.tableData(def.Grid, widget.Table.Visible())
		data["search"] = widget.Table.State().Search
	case KindAlert:
		alert := widget.Alert()
		data["active"] = alert.Active()
		data["message"] = alert.Message(def.Alert.Noun())
	case KindList:
		items := widget.Items()
		rows := make([]map[string]any, len(items))
		for i, item := range items {
			rows[i] = map[string]any{
				"rank":     item.Rank,
				"label":    item.Label,
				"value":    item.Value,
				"detail":   item.Detail,
				"badge":    item.Badge,
				"progress": item.Progress,
				"bar":      item.Bar,
			}
		}
		data["items"] = rows
	}
	return data, nil
}

func filterData(spec *ChartSpec, state dataview.ChartState) []map[string]any {
	if spec == nil {
		return nil
	}
	out := make([]map[string]any, 0, len(spec.Filters))
	for _, def := range spec.Filters {
		selected := state.Filters.Get(def.Key)
		options := make([]map[string]any, len(def.Options))
		for i, opt := range def.Options {
			options[i] = map[string]any{"value": opt.Value, "label": opt.Label, "selected": opt.Value == selected}
		}
		out = append(out, map[string]any{"key": def.Key, "label": def.Label, "options": options})
	}
	return out
}

func (p *PageRenderer) tableData(spec *GridSpec, page dataview.TablePage) map[string]any {
	headers := make([]string, len(page.Fields))
	for i, field := range page.Fields {
		headers[i] = export.HumanizeLabel(field)
		if spec != nil {
			for _, col := range spec.Columns {
				if col.Field == field && col.Header != "" {
					headers[i] = col.Header
				}
			}
		}
	}
	rows := make([]map[string]any, len(page.Rows))
	for i, row := range page.Rows {
		cells := make([]string, len(page.Fields))
		for j, field := range page.Fields {
			cells[j] = p.formatter.Display(row.Record.Get(field))
		}
		rows[i] = map[string]any{"id": row.ID, "cells": cells}
	}
	return map[string]any{
		"headers":       headers,
		"rows":          rows,
		"empty":         page.Empty(),
		"message":       dataview.NoResultsMessage,
		"page":          page.Page + 1,
		"page_count":    page.PageCount(),
		"page_size":     page.PageSize,
		"total_matched": page.TotalMatched,
		"total_source":  page.TotalSource,
	}
}
