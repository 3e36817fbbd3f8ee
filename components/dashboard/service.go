package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/goliatone/go-opsboard/components/dataview"
	"github.com/goliatone/go-opsboard/components/export"
	"github.com/goliatone/go-opsboard/components/provider"
)

var errMissingProvider = errors.New("dashboard: data provider not configured")

// Exporter turns visible snapshots into stored artifacts.
type Exporter interface {
	Export(ctx context.Context, req export.Request) (export.Artifact, error)
	ExportAsync(ctx context.Context, req export.Request) <-chan export.Result
}

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	Registry  *Registry
	Provider  provider.Provider
	Sessions  *SessionStore
	Exporter  Exporter
	Telemetry Telemetry
	Formatter *dataview.Formatter
	// PageSize is used by grids that do not declare one.
	PageSize int
	// Humanize turns export header keys into title-case labels.
	Humanize bool
	Now      func() time.Time
}

// Service mounts dashboard pages and routes derivations and exports to their sessions.
type Service struct {
	opts      Options
	formatter dataview.Formatter
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) (*Service, error) {
	if opts.Provider == nil {
		return nil, errMissingProvider
	}
	if opts.Registry == nil {
		reg, err := NewRegistry()
		if err != nil {
			return nil, err
		}
		opts.Registry = reg
	}
	if opts.Sessions == nil {
		opts.Sessions = NewSessionStore()
	}
	if opts.Exporter == nil {
		opts.Exporter = export.NewSink()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = dataview.DefaultPageSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	formatter := dataview.DefaultFormatter()
	if opts.Formatter != nil {
		formatter = *opts.Formatter
	}
	return &Service{opts: opts, formatter: formatter}, nil
}

// Registry exposes the page catalogue.
func (s *Service) Registry() *Registry { return s.opts.Registry }

// Formatter returns the display formatter used for searching and rendering.
func (s *Service) Formatter() dataview.Formatter { return s.formatter }

// MountRequest selects the page and reporting window to mount.
type MountRequest struct {
	Page  string
	Range provider.DateRange
}

// Mount loads every widget dataset of a page and stores the live views under a new mount id.
func (s *Service) Mount(ctx context.Context, req MountRequest) (*PageView, error) {
	page, ok := s.opts.Registry.Page(req.Page)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, req.Page)
	}
	if req.Range == "" {
		req.Range = provider.DefaultRange
	}
	view := &PageView{
		Page:      page,
		MountedAt: s.opts.Now(),
		Widgets:   make([]*WidgetView, 0, len(page.Widgets)),
	}
	for _, def := range page.Widgets {
		view.Widgets = append(view.Widgets, &WidgetView{Definition: def})
	}
	if err := s.load(ctx, view, req.Range); err != nil {
		return nil, err
	}
	id := s.opts.Sessions.Put(view)
	s.recordTelemetry(ctx, EventPageMounted, map[string]any{
		"mount_id": id,
		"page":     page.Code,
		"range":    string(req.Range),
		"widgets":  len(view.Widgets),
	})
	return view, nil
}

// Unmount discards the state of a mounted page.
func (s *Service) Unmount(ctx context.Context, mountID string) error {
	if err := s.opts.Sessions.Delete(mountID); err != nil {
		return err
	}
	s.recordTelemetry(ctx, EventPageUnmounted, map[string]any{"mount_id": mountID})
	return nil
}

// ChangeRange reloads every widget of a mounted page for a new reporting window.
// Searches, filters and page sizes survive the reload.
func (s *Service) ChangeRange(ctx context.Context, mountID string, r provider.DateRange) (*PageView, error) {
	view, err := s.opts.Sessions.Get(mountID)
	if err != nil {
		return nil, err
	}
	if err := s.load(ctx, view, r); err != nil {
		return nil, err
	}
	s.recordTelemetry(ctx, EventRangeChanged, map[string]any{
		"mount_id": mountID,
		"page":     view.Page.Code,
		"range":    string(r),
	})
	return view, nil
}

// PageView returns a mounted page.
func (s *Service) PageView(mountID string) (*PageView, error) {
	return s.opts.Sessions.Get(mountID)
}

// Widget returns a mounted widget.
func (s *Service) Widget(mountID, code string) (*WidgetView, error) {
	view, err := s.opts.Sessions.Get(mountID)
	if err != nil {
		return nil, err
	}
	return view.Widget(code)
}

// Table returns the grid session of a mounted widget.
func (s *Service) Table(mountID, code string) (*dataview.TableSession, error) {
	widget, err := s.Widget(mountID, code)
	if err != nil {
		return nil, err
	}
	if widget.Table == nil {
		return nil, fmt.Errorf("%w: %s is a %s widget", ErrWidgetKind, code, widget.Definition.Kind)
	}
	return widget.Table, nil
}

// Chart returns the chart session of a mounted widget.
func (s *Service) Chart(mountID, code string) (*dataview.ChartSession, error) {
	widget, err := s.Widget(mountID, code)
	if err != nil {
		return nil, err
	}
	if widget.Chart == nil {
		return nil, fmt.Errorf("%w: %s is a %s widget", ErrWidgetKind, code, widget.Definition.Kind)
	}
	return widget.Chart, nil
}

// ExportRequest selects a mounted widget and what part of it to export.
type ExportRequest struct {
	MountID string
	Widget  string
	Format  export.Format
	Scope   dataview.Scope
}

// Export snapshots the widget's visible data and writes it through the exporter.
func (s *Service) Export(ctx context.Context, req ExportRequest) (export.Artifact, error) {
	exportReq, err := s.exportRequest(req)
	if err != nil {
		return export.Artifact{}, err
	}
	artifact, err := s.opts.Exporter.Export(ctx, exportReq)
	s.recordExport(ctx, req, artifact, err)
	return artifact, err
}

// ExportAsync snapshots the widget immediately and exports on a new goroutine.
// Later derivations on the widget do not affect the artifact.
func (s *Service) ExportAsync(ctx context.Context, req ExportRequest) <-chan export.Result {
	exportReq, err := s.exportRequest(req)
	if err != nil {
		out := make(chan export.Result, 1)
		out <- export.Result{Err: err}
		close(out)
		return out
	}
	results := s.opts.Exporter.ExportAsync(ctx, exportReq)
	out := make(chan export.Result, 1)
	go func() {
		defer close(out)
		res, ok := <-results
		if !ok {
			res = export.Result{Err: fmt.Errorf("dashboard: export of %s produced no result", req.Widget)}
		}
		s.recordExport(ctx, req, res.Artifact, res.Err)
		out <- res
	}()
	return out
}

func (s *Service) exportRequest(req ExportRequest) (export.Request, error) {
	widget, err := s.Widget(req.MountID, req.Widget)
	if err != nil {
		return export.Request{}, err
	}
	if !widget.Definition.Exportable() {
		return export.Request{}, fmt.Errorf("%w: %s does not export", ErrWidgetKind, req.Widget)
	}
	var snap dataview.Snapshot
	switch {
	case widget.Table != nil:
		snap, err = widget.Table.Snapshot(req.Scope)
	case widget.Chart != nil:
		snap, err = widget.Chart.Snapshot(req.Scope)
	default:
		err = fmt.Errorf("%w: %s has no data session", ErrWidgetKind, req.Widget)
	}
	if err != nil {
		return export.Request{}, err
	}
	return export.Request{
		Records:  snap.Records,
		Fields:   snap.Fields,
		Stem:     export.Stem(widget.Definition.Title),
		Format:   req.Format,
		Humanize: s.opts.Humanize,
	}, nil
}

func (s *Service) recordExport(ctx context.Context, req ExportRequest, artifact export.Artifact, err error) {
	payload := map[string]any{
		"mount_id": req.MountID,
		"widget":   req.Widget,
		"format":   string(req.Format),
		"scope":    string(req.Scope),
	}
	if err != nil {
		payload["error"] = err.Error()
		payload["unavailable"] = errors.Is(err, export.ErrExportUnavailable)
		s.recordTelemetry(ctx, EventExportFailed, payload)
		return
	}
	payload["name"] = artifact.Name
	payload["rows"] = artifact.Rows
	payload["bytes"] = artifact.Size
	s.recordTelemetry(ctx, EventExportWritten, payload)
}

// load fetches KPIs and every widget dataset, then builds or reloads the widget sessions.
func (s *Service) load(ctx context.Context, view *PageView, r provider.DateRange) error {
	var kpis []provider.KPI
	if view.Page.KPIs {
		var err error
		kpis, err = s.opts.Provider.KPIs(ctx, view.Page.Code, r)
		if err != nil && !errors.Is(err, provider.ErrUnknownPage) {
			return fmt.Errorf("dashboard: load kpis for %s: %w", view.Page.Code, err)
		}
	}
	datasets := map[string][]dataview.Record{}
	for _, widget := range view.Widgets {
		name := widget.Definition.Dataset
		if _, ok := datasets[name]; ok {
			continue
		}
		records, err := s.opts.Provider.Dataset(ctx, name, r)
		if err != nil {
			s.recordTelemetry(ctx, EventDatasetMissing, map[string]any{
				"page":    view.Page.Code,
				"widget":  widget.Definition.Code,
				"dataset": name,
				"error":   err.Error(),
			})
			return fmt.Errorf("dashboard: load dataset %s for %s: %w", name, widget.Definition.Code, err)
		}
		datasets[name] = records
	}
	for _, widget := range view.Widgets {
		s.bind(widget, datasets[widget.Definition.Dataset])
	}
	view.setLoaded(r, kpis)
	return nil
}

func (s *Service) bind(widget *WidgetView, records []dataview.Record) {
	def := widget.Definition
	switch def.Kind {
	case KindGrid:
		grid := def.Grid
		if grid == nil {
			grid = &GridSpec{}
		}
		tableView := dataview.NewTableView(records,
			dataview.WithSearchFields(grid.SearchFields...),
			dataview.WithColumns(grid.Fields()...),
			dataview.WithFormatter(s.formatter),
		)
		if widget.Table == nil {
			pageSize := grid.PageSize
			if pageSize <= 0 {
				pageSize = s.opts.PageSize
			}
			widget.Table = dataview.NewTableSession(tableView, pageSize)
		} else {
			widget.Table.Reload(tableView)
		}
	case KindChart:
		var filters []dataview.FilterDef
		if def.Chart != nil {
			filters = def.Chart.Filters
		}
		chartView := dataview.NewChartView(records,
			dataview.WithFilters(filters...),
			dataview.WithChartFields(def.Chart.Fields()...),
			dataview.WithChartFormatter(s.formatter),
		)
		if widget.Chart == nil {
			widget.Chart = dataview.NewChartSession(chartView)
		} else {
			widget.Chart.Reload(chartView)
		}
	case KindAlert:
		widget.setDerived(deriveAlert(def.Alert, records), nil)
	case KindList:
		widget.setDerived(AlertView{}, deriveList(def.List, records, s.formatter))
	}
}

func deriveAlert(spec *AlertSpec, records []dataview.Record) AlertView {
	if spec == nil {
		return AlertView{}
	}
	matched := dataview.FilterExact(records, dataview.NewFilterState(spec.Field, spec.Value))
	limit := spec.Max
	if limit <= 0 {
		limit = DefaultAlertMax
	}
	names := make([]string, 0, limit)
	for i, rec := range matched {
		if i == limit {
			break
		}
		names = append(names, rec.Get(spec.NameField).String())
	}
	return AlertView{Count: len(matched), Names: names, Remaining: len(matched) - len(names)}
}

func deriveList(spec *ListSpec, records []dataview.Record, f dataview.Formatter) []ListItem {
	if spec == nil {
		return nil
	}
	records = dataview.Truncate(records, spec.Limit)
	items := make([]ListItem, len(records))
	for i, rec := range records {
		item := ListItem{
			Rank:  i + 1,
			Label: f.Display(rec.Get(spec.LabelField)),
			Value: f.Display(rec.Get(spec.ValueField)),
		}
		if spec.DetailField != "" {
			item.Detail = f.Display(rec.Get(spec.DetailField))
		}
		if spec.BadgeField != "" {
			item.Badge = rec.Get(spec.BadgeField).String()
		}
		if spec.ProgressField != "" {
			if n, ok := rec.Get(spec.ProgressField).Float(); ok {
				ceiling := spec.ProgressMax
				if ceiling <= 0 {
					ceiling = 100
				}
				item.Progress = math.Min(100, math.Max(0, n/ceiling*100))
				item.Bar = true
			}
		}
		items[i] = item
	}
	return items
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}
