package dashboard

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-opsboard/components/dataview"
	"github.com/goliatone/go-opsboard/components/provider"
)

func chartSession(t *testing.T, def WidgetDefinition, rows []dataview.Record) *dataview.ChartSession {
	t.Helper()
	require.NotNil(t, def.Chart)
	return dataview.NewChartSession(dataview.NewChartView(rows, dataview.WithFilters(def.Chart.Filters...)))
}

func widgetFrom(t *testing.T, page PageDefinition, code string) WidgetDefinition {
	t.Helper()
	def, ok := page.Widget(code)
	require.True(t, ok, "widget %s", code)
	return def
}

func TestChartRendererBar(t *testing.T) {
	t.Parallel()
	def := widgetFrom(t, overviewPage(), "overview.carrier_on_time")
	session := chartSession(t, def, provider.Records(provider.Carriers()))

	html, err := NewChartRenderer().RenderSession(def, session)
	require.NoError(t, err)
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Carrier On-Time Performance")
	assert.Contains(t, html, "Showing 5 of 5 records")
	assert.Contains(t, html, "On Time")
	assert.NotContains(t, html, `"stack"`)
}

func TestChartRendererStackedVariant(t *testing.T) {
	t.Parallel()
	def := widgetFrom(t, warehousePage(), "warehouse.zone_capacity")
	session := chartSession(t, def, provider.Records(provider.ZoneUtilizations()))
	session.OnVariantChange(dataview.VariantStacked)

	html, err := NewChartRenderer(WithRenderCache(nil)).RenderSession(def, session)
	require.NoError(t, err)
	assert.Contains(t, html, `"stack":"total"`)

	line := widgetFrom(t, returnsPage(), "returns.rma_trend")
	lineSession := chartSession(t, line, provider.Records(provider.NewMockProvider(provider.WithSeed(3)).RMATrend()))
	lineSession.OnVariantChange(dataview.VariantStacked)
	html, err = NewChartRenderer(WithRenderCache(nil)).RenderSession(line, lineSession)
	require.NoError(t, err)
	assert.NotContains(t, html, `"stack":"total"`, "line charts ignore the stacked variant")
}

func TestChartRendererPieUsesFillColors(t *testing.T) {
	t.Parallel()
	def := widgetFrom(t, customerServicePage(), "customer_service.call_reasons")
	reasons := provider.CallReasons()
	session := chartSession(t, def, provider.Records(reasons))

	html, err := NewChartRenderer().RenderSession(def, session)
	require.NoError(t, err)
	assert.Contains(t, html, reasons[0].Reason)
	assert.Contains(t, html, reasons[0].Fill)
}

func TestChartRendererScatterGroupsByStatus(t *testing.T) {
	t.Parallel()
	def := widgetFrom(t, inventoryPage(), "inventory.health")
	session := chartSession(t, def, provider.Records(provider.InventoryHealth()))
	_, err := session.OnFilterChange("status", "critical")
	require.NoError(t, err)

	html, err := NewChartRenderer(WithChartTheme(types.ThemeChalk), WithChartHeight(420)).RenderSession(def, session)
	require.NoError(t, err)
	assert.Contains(t, html, "Hydraulic Pump X50")
	assert.Contains(t, html, "Showing 2 of 10 records")
	assert.Contains(t, html, "420px")
	assert.NotContains(t, html, "Valve Controller")
}

func TestChartRendererCachesByVisibleState(t *testing.T) {
	t.Parallel()
	cache := NewChartCache(time.Minute)
	renderer := NewChartRenderer(WithRenderCache(cache))
	def := widgetFrom(t, overviewPage(), "overview.carrier_on_time")
	session := chartSession(t, def, provider.Records(provider.Carriers()))

	first, err := renderer.RenderSession(def, session)
	require.NoError(t, err)
	second, err := renderer.RenderSession(def, session)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())

	_, err = session.OnFilterChange("onTime", "95")
	require.NoError(t, err)
	_, err = renderer.RenderSession(def, session)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}

func TestChartRendererRejectsNonCharts(t *testing.T) {
	t.Parallel()
	renderer := NewChartRenderer()
	grid := widgetFrom(t, overviewPage(), "overview.recent_orders")

	_, err := renderer.Render(grid, dataview.SeriesView{}, dataview.VariantDefault)
	assert.True(t, errors.Is(err, ErrWidgetKind))

	_, err = renderer.RenderSession(widgetFrom(t, overviewPage(), "overview.capacity"), nil)
	assert.ErrorIs(t, err, ErrWidgetKind)
}

func TestChartRendererEmptySeries(t *testing.T) {
	t.Parallel()
	def := widgetFrom(t, returnsPage(), "returns.reason_analysis")
	session := chartSession(t, def, provider.Records(provider.RMAByReason()))
	series, err := session.OnFilterChange("sortBy", "count")
	require.NoError(t, err)
	assert.Zero(t, series.Shown)

	html, err := NewChartRenderer().RenderSession(def, session)
	require.NoError(t, err)
	assert.True(t, strings.Contains(html, "Showing 0 of"))
}
