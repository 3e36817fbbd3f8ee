package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/goliatone/go-opsboard/components/dashboard"
	"github.com/goliatone/go-opsboard/components/dataview"
	"github.com/goliatone/go-opsboard/components/dataview/commands"
	"github.com/goliatone/go-opsboard/components/dataview/queries"
	"github.com/goliatone/go-opsboard/components/export"
)

type widgetFlags struct {
	Page   string `required:"" help:"Page code (see 'opsboard pages')."`
	Widget string `required:"" help:"Widget code."`
	Search string `help:"Case-insensitive search text."`
}

type tableFlags struct {
	PageIndex int `name:"page-index" help:"Zero-based page index."`
	PageSize  int `name:"page-size" help:"Rows per page."`
}

type seriesFlags struct {
	Filter  map[string]string `help:"Chart filter as key=value (repeatable)."`
	Limit   int               `help:"Maximum number of data points."`
	Variant string            `help:"Chart variant: default or stacked."`
}

// prepare mounts the page and replays the requested state through the dataview commands.
func (a *app) prepare(ctx context.Context, w widgetFlags, t *tableFlags, s *seriesFlags) (commands.Target, error) {
	view, err := a.mount(ctx, w.Page)
	if err != nil {
		return commands.Target{}, err
	}
	target := commands.Target{MountID: view.ID, Widget: w.Widget}
	if _, err := view.Widget(w.Widget); err != nil {
		return target, err
	}
	if w.Search != "" {
		if err := commands.NewSearchChangeCommand(a.service, a.recorder).Execute(ctx, commands.SearchChangeInput{Target: target, Text: w.Search}); err != nil {
			return target, err
		}
	}
	if t != nil {
		if t.PageSize > 0 {
			if err := commands.NewPageSizeChangeCommand(a.service, a.recorder).Execute(ctx, commands.PageSizeChangeInput{Target: target, Size: t.PageSize}); err != nil {
				return target, err
			}
		}
		if t.PageIndex != 0 {
			if err := commands.NewPageChangeCommand(a.service, a.recorder).Execute(ctx, commands.PageChangeInput{Target: target, Page: t.PageIndex}); err != nil {
				return target, err
			}
		}
	}
	if s != nil {
		keys := make([]string, 0, len(s.Filter))
		for k := range s.Filter {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		filter := commands.NewFilterChangeCommand(a.service, a.recorder)
		for _, k := range keys {
			if err := filter.Execute(ctx, commands.FilterChangeInput{Target: target, Key: k, Value: s.Filter[k]}); err != nil {
				return target, err
			}
		}
		if s.Limit > 0 {
			if err := commands.NewLimitChangeCommand(a.service, a.recorder).Execute(ctx, commands.LimitChangeInput{Target: target, Limit: s.Limit}); err != nil {
				return target, err
			}
		}
		if s.Variant != "" {
			if err := commands.NewVariantChangeCommand(a.service, a.recorder).Execute(ctx, commands.VariantChangeInput{Target: target, Variant: s.Variant}); err != nil {
				return target, err
			}
		}
	}
	return target, nil
}

type pagesCmd struct{}

func (cmd *pagesCmd) Run(a *app) error {
	pages, err := queries.NewPagesQuery(a.pages).Query(a.baseContext(), queries.PagesInput{})
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, page := range pages {
		fmt.Fprintf(tw, "%s\t%s\t%d widgets\n", page.Code, page.Title, len(page.Widgets))
		for _, w := range page.Widgets {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", w.Code, w.Kind, w.Title)
		}
	}
	return tw.Flush()
}

type tableCmd struct {
	Target widgetFlags `embed:""`
	State  tableFlags  `embed:""`
}

func (cmd *tableCmd) Run(a *app) error {
	ctx := a.baseContext()
	target, err := a.prepare(ctx, cmd.Target, &cmd.State, nil)
	if err != nil {
		return err
	}
	page, err := queries.NewVisibleRowsQuery(a.service).Query(ctx, queries.WidgetInput{MountID: target.MountID, Widget: target.Widget})
	if err != nil {
		return err
	}
	if err := a.printRows(page); err != nil {
		return err
	}
	if page.PageSize > 0 && page.TotalSource > 0 {
		fmt.Fprintf(a.out, "Page %d of %d, %d of %d rows match\n", page.Page+1, max(page.PageCount(), 1), page.TotalMatched, page.TotalSource)
	}
	return nil
}

type seriesCmd struct {
	Target widgetFlags `embed:""`
	State  seriesFlags `embed:""`
}

func (cmd *seriesCmd) Run(a *app) error {
	ctx := a.baseContext()
	target, err := a.prepare(ctx, cmd.Target, nil, &cmd.State)
	if err != nil {
		return err
	}
	input := queries.WidgetInput{MountID: target.MountID, Widget: target.Widget}
	series, err := queries.NewVisibleSeriesQuery(a.service).Query(ctx, input)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, series.Summary())
	table, err := queries.NewVisibleRowsQuery(a.service).Query(ctx, input)
	if err != nil {
		return err
	}
	return a.printRows(table)
}

type exportCmd struct {
	Target widgetFlags `embed:""`
	Table  tableFlags  `embed:""`
	Series seriesFlags `embed:""`
	Format string      `help:"Artifact format: xlsx, csv or json (defaults to the configured format)."`
	Scope  string      `help:"visible (default) or matched."`
}

func (cmd *exportCmd) Run(a *app) error {
	ctx := a.baseContext()
	kind, err := a.widgetKind(cmd.Target.Page, cmd.Target.Widget)
	if err != nil {
		return err
	}
	var t *tableFlags
	var s *seriesFlags
	if kind == dashboard.KindGrid {
		t = &cmd.Table
	} else {
		s = &cmd.Series
	}
	target, err := a.prepare(ctx, cmd.Target, t, s)
	if err != nil {
		return err
	}
	format := cmd.Format
	if format == "" {
		format = a.cfg.Export.Format
	}
	var artifact export.Artifact
	err = commands.NewExportRequestCommand(a.service, a.recorder).Execute(ctx, commands.ExportRequestInput{
		Target: target,
		Format: format,
		Scope:  cmd.Scope,
		OnComplete: func(got export.Artifact, _ error) {
			artifact = got
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %s (%d rows)\n", artifact.Location, artifact.Rows)
	return nil
}

type renderCmd struct {
	Page  string `required:"" help:"Page code."`
	Out   string `type:"path" help:"Output HTML file (defaults to stdout)."`
	Theme string `help:"ECharts theme (e.g. westeros, chalk, essos)."`
}

func (cmd *renderCmd) Run(a *app) error {
	ctx := a.baseContext()
	view, err := a.mount(ctx, cmd.Page)
	if err != nil {
		return err
	}
	theme := cmd.Theme
	if theme == "" {
		theme = a.cfg.Theme
	}
	if theme == "" {
		theme = types.ThemeWesteros
	}
	charts := dashboard.NewChartRenderer(
		dashboard.WithChartTheme(theme),
		dashboard.WithChartAssetsHost(dashboard.ResolveEChartsAssetsHost(a.cfg.AssetsHost)),
	)
	renderer, err := dashboard.NewEmbeddedPageRenderer(charts,
		dashboard.WithPageFormatter(a.formatter),
		dashboard.WithPageTelemetry(a.recorder),
	)
	if err != nil {
		return err
	}
	if cmd.Out == "" {
		_, err = renderer.Render(ctx, view, a.out)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cmd.Out), 0o755); err != nil {
		return fmt.Errorf("opsboard: mkdir %s: %w", filepath.Dir(cmd.Out), err)
	}
	html, err := renderer.Render(ctx, view)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cmd.Out, []byte(html), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("opsboard: write %s: %w", cmd.Out, err)
	}
	fmt.Fprintf(a.out, "Rendered %s to %s\n", view.Page.Code, cmd.Out)
	return nil
}

func (a *app) printRows(page dataview.TablePage) error {
	if page.Empty() {
		_, err := fmt.Fprintln(a.out, dataview.NoResultsMessage)
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	headers := append([]string{"#"}, export.HumanizeLabels(page.Fields)...)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range page.Rows {
		cells := make([]string, 0, len(page.Fields)+1)
		cells = append(cells, row.ID)
		for _, field := range page.Fields {
			cells = append(cells, a.formatter.Display(row.Record.Get(field)))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func (a *app) widgetKind(pageCode, code string) (dashboard.WidgetKind, error) {
	page, ok := a.pages.Page(pageCode)
	if !ok {
		return "", fmt.Errorf("%w: %s", dashboard.ErrUnknownPage, pageCode)
	}
	def, ok := page.Widget(code)
	if !ok {
		return "", fmt.Errorf("%w: %s on page %s", dashboard.ErrUnknownWidget, code, pageCode)
	}
	return def.Kind, nil
}
