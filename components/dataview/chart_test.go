package dataview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inventoryChart() *ChartView {
	return NewChartView(inventoryRecords(), WithFilters(
		FilterDef{Key: "status", Label: "Status", Options: Options("ok", "low", "critical", "overstock")},
		FilterDef{Key: "category", Label: "Category", Options: Options("Hardware", "Tools", "Electrical", "Plumbing")},
	))
}

func TestChartIdentityTransform(t *testing.T) {
	source := inventoryRecords()
	view := NewChartView(source)
	assert.Equal(t, source, view.VisibleSeries(view.NewState()))
}

func TestChartFilterCriticalInventory(t *testing.T) {
	view := inventoryChart()
	state, err := view.WithFilter(view.NewState(), "status", "critical")
	require.NoError(t, err)

	series := view.VisibleSeries(state)
	require.Len(t, series, 2)
	assert.Equal(t, []string{"SKU-1002", "SKU-1006"}, keysOf(series, "sku"))
}

func TestChartExactFilterCorrectness(t *testing.T) {
	source := inventoryRecords()
	view := NewChartView(source)
	for _, value := range []string{"ok", "critical", "crit", "OK", "350"} {
		for _, key := range []string{"status", "currentStock"} {
			got := view.VisibleSeries(view.NewState().WithFilter(key, value))
			var want []Record
			for _, rec := range source {
				if rec.Get(key).String() == value {
					want = append(want, rec)
				}
			}
			assert.Equalf(t, len(want), len(got), "%s=%s", key, value)
		}
	}
	assert.Len(t, view.VisibleSeries(view.NewState().WithFilter("currentStock", "350")), 1)
}

func TestMatchesExactAgreesWithFilterExact(t *testing.T) {
	source := inventoryRecords()
	filters := NewFilterState("status", "critical", "category", AllOption)
	var want []Record
	for _, rec := range source {
		if MatchesExact(rec, filters) {
			want = append(want, rec)
		}
	}
	assert.Len(t, want, 2)
	assert.Equal(t, want, FilterExact(source, filters))
	assert.True(t, MatchesExact(source[0], NewFilterState()))
}

func TestChartFieldsDeclaredFirst(t *testing.T) {
	view := NewChartView(inventoryRecords(), WithChartFields("currentStock", "sku"))
	fields := view.Fields()
	require.GreaterOrEqual(t, len(fields), 2)
	assert.Equal(t, []string{"currentStock", "sku"}, fields[:2])
	assert.ElementsMatch(t, KeysOf(inventoryRecords()), fields)
}

func TestChartFilterOrderIndependence(t *testing.T) {
	view := inventoryChart()
	a := view.NewState().WithFilter("status", "critical").WithFilter("category", "Hardware")
	b := view.NewState().WithFilter("category", "Hardware").WithFilter("status", "critical")
	assert.Equal(t, view.VisibleSeries(a), view.VisibleSeries(b))
	assert.Equal(t, []string{"SKU-1002"}, keysOf(view.VisibleSeries(a), "sku"))
}

func TestChartAllOptionIsNoConstraint(t *testing.T) {
	view := inventoryChart()
	state := view.NewState().WithFilter("status", "critical").WithFilter("status", AllOption)
	assert.Len(t, view.VisibleSeries(state), 10)
	assert.False(t, view.Describe(state).HasFilters)
	assert.Equal(t, 1, state.Filters.Len())
}

func TestChartFilterOnMissingKeyComparesEmpty(t *testing.T) {
	view := NewChartView(inventoryRecords())
	assert.Empty(t, view.VisibleSeries(view.NewState().WithFilter("sortBy", "stock")))
	assert.Len(t, view.VisibleSeries(view.NewState().WithFilter("sortBy", "")), 10)
}

func TestChartWithFilterValidates(t *testing.T) {
	view := inventoryChart()
	_, err := view.WithFilter(view.NewState(), "zone", "A")
	assert.True(t, errors.Is(err, ErrUnknownFilter))
	_, err = view.WithFilter(view.NewState(), "status", "gone")
	assert.True(t, errors.Is(err, ErrUnknownOption))
	_, err = view.WithFilter(view.NewState(), "status", AllOption)
	assert.NoError(t, err)
}

func TestChartLimitTruncatesAndClamps(t *testing.T) {
	view := inventoryChart()
	state := view.WithLimit(view.NewState(), 6)
	assert.Equal(t, 6, state.Limit)
	assert.Len(t, view.VisibleSeries(state), 6)

	assert.Equal(t, MinDataPoints, view.WithLimit(state, 1).Limit)
	assert.Equal(t, 10, view.WithLimit(state, 99).Limit)

	small := NewChartView(inventoryRecords()[:3])
	assert.Equal(t, 3, small.WithLimit(small.NewState(), 1).Limit)
	assert.Equal(t, 0, ClampLimit(7, 0))
}

func TestChartFilterKeepsLimit(t *testing.T) {
	view := inventoryChart()
	state := view.WithLimit(view.NewState(), 5)
	state, err := view.WithFilter(state, "status", "ok")
	require.NoError(t, err)
	assert.Equal(t, 5, state.Limit)
	assert.Len(t, view.VisibleSeries(state), 5)

	state, err = view.WithFilter(state, "status", "critical")
	require.NoError(t, err)
	assert.Len(t, view.VisibleSeries(state), 2)
}

func TestChartClearFilters(t *testing.T) {
	view := inventoryChart()
	state := view.WithLimit(view.NewState(), 7).WithSearch("item")
	cleared := state.ClearFilters()
	assert.Equal(t, state, cleared)

	state = state.WithFilter("status", "low")
	cleared = state.ClearFilters()
	assert.True(t, cleared.Filters.IsEmpty())
	assert.Equal(t, 7, cleared.Limit)
	assert.Equal(t, "item", cleared.Search)
	assert.False(t, state.Filters.IsEmpty())
}

func TestChartDescribe(t *testing.T) {
	view := inventoryChart()
	state := view.WithLimit(view.NewState(), 5).WithFilter("category", "Tools")
	desc := view.Describe(state)
	assert.Equal(t, 3, desc.Shown)
	assert.Equal(t, 10, desc.Total)
	assert.True(t, desc.HasFilters)
	assert.Equal(t, "Showing 3 of 10 records", desc.Summary())
	assert.Equal(t, []string{"sku", "name", "category", "currentStock", "reorderPoint", "status"}, desc.Fields)
}

func TestChartDataTableSearchesVisibleSeries(t *testing.T) {
	view := inventoryChart()
	state := view.WithLimit(view.NewState(), 5).WithSearch("HARDWARE")
	table := view.DataTable(state)
	assert.Equal(t, 5, table.TotalSource)
	assert.Equal(t, []string{"SKU-1000", "SKU-1002"}, keysOf(table.Records(), "sku"))

	table = view.DataTable(state.WithSearch("nothing"))
	assert.True(t, table.Empty())
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("")
	require.NoError(t, err)
	assert.Equal(t, VariantDefault, v)
	v, err = ParseVariant("Stacked")
	require.NoError(t, err)
	assert.Equal(t, VariantStacked, v)
	_, err = ParseVariant("3d")
	assert.True(t, errors.Is(err, ErrUnknownVariant))
}
