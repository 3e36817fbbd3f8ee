package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/goliatone/go-opsboard/components/dataview"
	"github.com/goliatone/go-opsboard/components/export"
	"github.com/goliatone/go-opsboard/components/provider"
)

const (
	defaultChartHeight = 360
	stackName          = "total"
	missingPoint       = "-"
)

// ChartRenderer renders the visible series of chart widgets as go-echarts HTML.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	height     int
	assetsHost string
	palette    []string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithRenderCache injects a render cache. A nil cache disables caching.
func WithRenderCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the echarts theme (defaults to Westeros).
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		if theme = strings.TrimSpace(theme); theme != "" {
			r.theme = theme
		}
	}
}

// WithChartHeight sets the default chart height in pixels.
func WithChartHeight(px int) ChartRendererOption {
	return func(r *ChartRenderer) {
		if px > 0 {
			r.height = px
		}
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer with a five minute render cache.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache:   NewChartCache(5 * time.Minute),
		theme:   types.ThemeWesteros,
		height:  defaultChartHeight,
		palette: provider.Palette,
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Theme returns the configured echarts theme.
func (r *ChartRenderer) Theme() string { return r.theme }

// RenderSession renders the current visible series of a chart session.
func (r *ChartRenderer) RenderSession(def WidgetDefinition, session *dataview.ChartSession) (string, error) {
	if session == nil {
		return "", fmt.Errorf("%w: %s has no chart session", ErrWidgetKind, def.Code)
	}
	return r.Render(def, session.Visible(), session.State().Variant)
}

// Render converts a series view into chart markup. Output for identical
// widget, series and variant is served from the cache.
func (r *ChartRenderer) Render(def WidgetDefinition, series dataview.SeriesView, variant dataview.Variant) (string, error) {
	if def.Kind != KindChart || def.Chart == nil {
		return "", fmt.Errorf("%w: %s is not a chart", ErrWidgetKind, def.Code)
	}
	spec := *def.Chart
	renderFn := func() (string, error) {
		return r.render(def, spec, series, variant)
	}
	if r.cache == nil {
		return renderFn()
	}
	key := fmt.Sprintf("%s:%s:%s:%s", def.Code, spec.Type, r.theme, stateHash(series.Records, variant))
	return r.cache.GetOrRender(key, renderFn)
}

func (r *ChartRenderer) render(def WidgetDefinition, spec ChartSpec, series dataview.SeriesView, variant dataview.Variant) (string, error) {
	subtitle := series.Summary()
	stacked := variant == dataview.VariantStacked && spec.Type.Stackable()
	switch spec.Type {
	case ChartBar:
		return r.renderBar(def, spec, series.Records, subtitle, stacked)
	case ChartLine, ChartArea:
		return r.renderLine(def, spec, series.Records, subtitle, stacked)
	case ChartPie:
		return r.renderPie(def, spec, series.Records, subtitle)
	case ChartScatter:
		return r.renderScatter(def, spec, series.Records, subtitle)
	default:
		return "", fmt.Errorf("dashboard: unsupported chart type: %s", spec.Type)
	}
}

func (r *ChartRenderer) renderBar(def WidgetDefinition, spec ChartSpec, records []dataview.Record, subtitle string, stacked bool) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(def, spec, subtitle)...)
	bar.SetXAxis(axisLabels(records, spec.XAxisKey))
	for i, key := range spec.DataKeys {
		data := make([]opts.BarData, len(records))
		for j, rec := range records {
			data[j] = opts.BarData{Name: rec.Get(spec.XAxisKey).String(), Value: pointValue(rec.Get(key))}
		}
		seriesOpts := []charts.SeriesOpts{charts.WithItemStyleOpts(opts.ItemStyle{Color: r.color(spec, i)})}
		if stacked {
			seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{Stack: stackName}))
		}
		bar.AddSeries(export.HumanizeLabel(key), data, seriesOpts...)
	}
	return renderChart(bar)
}

func (r *ChartRenderer) renderLine(def WidgetDefinition, spec ChartSpec, records []dataview.Record, subtitle string, stacked bool) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(def, spec, subtitle)...)
	line.SetXAxis(axisLabels(records, spec.XAxisKey))
	for i, key := range spec.DataKeys {
		data := make([]opts.LineData, len(records))
		for j, rec := range records {
			data[j] = opts.LineData{Name: rec.Get(spec.XAxisKey).String(), Value: pointValue(rec.Get(key))}
		}
		lineOpts := opts.LineChart{Smooth: opts.Bool(true)}
		if stacked {
			lineOpts.Stack = stackName
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(lineOpts),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: r.color(spec, i)}),
		}
		if spec.Type == ChartArea {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{}))
		}
		line.AddSeries(export.HumanizeLabel(key), data, seriesOpts...)
	}
	return renderChart(line)
}

func (r *ChartRenderer) renderPie(def WidgetDefinition, spec ChartSpec, records []dataview.Record, subtitle string) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalChartOptions(def, spec, subtitle)...)
	data := make([]opts.PieData, len(records))
	for i, rec := range records {
		name := rec.Get(spec.LabelKey).String()
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		color := r.color(spec, i)
		if spec.ColorKey != "" {
			if fill := rec.Get(spec.ColorKey).String(); fill != "" {
				color = fill
			}
		}
		data[i] = opts.PieData{
			Name:      name,
			Value:     pointValue(rec.Get(spec.ValueKey)),
			ItemStyle: &opts.ItemStyle{Color: color},
		}
	}
	pie.AddSeries(export.HumanizeLabel(spec.ValueKey), data)
	return renderChart(pie)
}

func (r *ChartRenderer) renderScatter(def WidgetDefinition, spec ChartSpec, records []dataview.Record, subtitle string) (string, error) {
	scatter := charts.NewScatter()
	global := append(r.globalChartOptions(def, spec, subtitle),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: export.HumanizeLabel(spec.XAxisKey)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: export.HumanizeLabel(spec.YAxisKey)}),
	)
	scatter.SetGlobalOptions(global...)

	var groups []string
	points := map[string][]opts.ScatterData{}
	for _, rec := range records {
		group := def.Title
		if spec.GroupKey != "" {
			group = rec.Get(spec.GroupKey).String()
		}
		x, okX := rec.Get(spec.XAxisKey).Float()
		y, okY := rec.Get(spec.YAxisKey).Float()
		if !okX || !okY {
			continue
		}
		if _, ok := points[group]; !ok {
			groups = append(groups, group)
		}
		points[group] = append(points[group], opts.ScatterData{
			Name:  rec.Get(spec.LabelKey).String(),
			Value: []float64{x, y},
		})
	}
	for i, group := range groups {
		scatter.AddSeries(group, points[group], charts.WithItemStyleOpts(opts.ItemStyle{Color: r.color(spec, i)}))
	}
	return renderChart(scatter)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalChartOptions(def WidgetDefinition, spec ChartSpec, subtitle string) []charts.GlobalOpts {
	height := r.height
	if spec.Height > 0 {
		height = spec.Height
	}
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: fmt.Sprintf("%dpx", height),
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: def.Title, Subtitle: subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithToolboxOpts(opts.Toolbox{Show: opts.Bool(true)}),
	}
}

func (r *ChartRenderer) color(spec ChartSpec, i int) string {
	palette := spec.Colors
	if len(palette) == 0 {
		palette = r.palette
	}
	if len(palette) == 0 {
		return ""
	}
	return palette[i%len(palette)]
}

func axisLabels(records []dataview.Record, key string) []string {
	labels := make([]string, len(records))
	for i, rec := range records {
		labels[i] = rec.Get(key).String()
	}
	return labels
}

// pointValue keeps numbers numeric and marks anything else as a gap.
func pointValue(v dataview.Value) any {
	if n, ok := v.Float(); ok {
		return n
	}
	return missingPoint
}
