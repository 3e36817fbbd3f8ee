package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-opsboard/components/dataview"
)

func fixedClock() time.Time {
	return time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
}

func TestMockProviderDeterministicWithSeed(t *testing.T) {
	a := NewMockProvider(WithSeed(7), WithClock(fixedClock))
	b := NewMockProvider(WithSeed(7), WithClock(fixedClock))
	ctx := context.Background()

	for _, name := range a.Datasets() {
		left, err := a.Dataset(ctx, name, Range30D)
		require.NoError(t, err, name)
		right, err := b.Dataset(ctx, name, Range30D)
		require.NoError(t, err, name)
		assert.Equal(t, left, right, name)
	}
}

func TestMockProviderDatasetsAreUniform(t *testing.T) {
	p := NewMockProvider(WithSeed(1))
	for _, name := range p.Datasets() {
		records, err := p.Dataset(context.Background(), name, Range7D)
		require.NoError(t, err, name)
		require.NotEmpty(t, records, name)
		keys := records[0].Keys()
		for _, rec := range records {
			assert.Equal(t, keys, rec.Keys(), name)
		}
	}
}

func TestMockProviderUnknownDataset(t *testing.T) {
	_, err := NewMockProvider().Dataset(context.Background(), "weather", Range30D)
	assert.True(t, errors.Is(err, ErrUnknownDataset))
}

func TestOrdersTimeSeriesBuckets(t *testing.T) {
	p := NewMockProvider(WithSeed(3), WithClock(fixedClock))
	cases := map[DateRange]int{Range7D: 7, Range30D: 30, Range90D: 12, Range12M: 12}
	for r, want := range cases {
		points := p.OrdersTimeSeries(r)
		require.Len(t, points, want, r)
		for _, pt := range points {
			assert.LessOrEqual(t, pt.Shipped, pt.Orders)
			assert.GreaterOrEqual(t, pt.Returned, 0)
		}
	}
	assert.Equal(t, "Feb 14", p.OrdersTimeSeries(Range7D)[6].Date)
	assert.Equal(t, "Mar", p.OrdersTimeSeries(Range12M)[0].Date)
}

func TestRMAEntriesShape(t *testing.T) {
	p := NewMockProvider(WithSeed(11), WithClock(fixedClock))
	entries := p.RMAEntries()
	require.Len(t, entries, 24)
	assert.Equal(t, "RMA-2024000", entries[0].ID)
	for _, e := range entries {
		assert.Contains(t, rmaReasons, e.Reason)
		assert.GreaterOrEqual(t, e.Value, 50)
		assert.LessOrEqual(t, e.Value, 1000)
	}
}

func TestRMATrendKeepsMinimumBalance(t *testing.T) {
	p := NewMockProvider(WithSeed(5))
	for _, row := range p.RMATrend() {
		assert.GreaterOrEqual(t, row.OpenBalance, 3)
	}
}

func TestInventoryLevelsHaveTwoCriticalItems(t *testing.T) {
	critical := CriticalItems(InventoryLevels())
	require.Len(t, critical, 2)
	assert.Equal(t, "Hydraulic Pump X50", critical[0].Product)
	assert.Equal(t, "Cable Harness C12", critical[1].Product)
}

func TestAgentPerformanceOptionalFields(t *testing.T) {
	rec := AgentPerformance{Name: "New Hire", CallsHandled: 3}.Record()
	assert.True(t, rec.Get("csat").IsMissing())
	assert.True(t, rec.Get("status").IsEmpty())
	assert.Equal(t, []string{"name", "callsHandled", "avgHandleTime", "satisfaction", "resolution", "csat", "fcr", "status"}, rec.Keys())

	full := AgentPerformances()[0].Record()
	assert.Equal(t, "4.6", full.Get("csat").String())
	assert.Equal(t, dataview.KindLabel, full.Get("status").Kind())
}

func TestKPIsScaleWithRange(t *testing.T) {
	p := NewMockProvider()
	kpis, err := p.KPIs(context.Background(), PageOverview, Range12M)
	require.NoError(t, err)
	require.Len(t, kpis, 6)
	assert.Equal(t, "4,271", kpis[0].Value)

	kpis, err = p.KPIs(context.Background(), PageWarehouse, Range7D)
	require.NoError(t, err)
	assert.Equal(t, "12,894", kpis[0].Value)

	for _, page := range []string{PageCustomerService, PageReturns, PageInventory} {
		kpis, err := p.KPIs(context.Background(), page, DefaultRange)
		require.NoError(t, err)
		assert.Len(t, kpis, 4)
	}

	_, err = p.KPIs(context.Background(), "billing", DefaultRange)
	assert.True(t, errors.Is(err, ErrUnknownPage))
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("")
	require.NoError(t, err)
	assert.Equal(t, Range30D, r)
	r, err = ParseDateRange("12M")
	require.NoError(t, err)
	assert.Equal(t, Range12M, r)
	_, err = ParseDateRange("1y")
	assert.True(t, errors.Is(err, ErrUnknownRange))
	assert.Equal(t, "Last 90 days", Range90D.Label())
}
