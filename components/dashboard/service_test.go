package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-opsboard/components/dataview"
	"github.com/goliatone/go-opsboard/components/export"
	"github.com/goliatone/go-opsboard/components/provider"
)

var fixedNow = time.Date(2024, time.March, 5, 22, 30, 0, 0, time.UTC)

type recordingTelemetry struct {
	mu     sync.Mutex
	events []string
	last   map[string]map[string]any
}

func (r *recordingTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		r.last = map[string]map[string]any{}
	}
	r.events = append(r.events, event)
	r.last[event] = payload
}

func (r *recordingTelemetry) count(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

type failingProvider struct {
	provider.Provider
	dataset string
}

func (f failingProvider) Dataset(ctx context.Context, name string, r provider.DateRange) ([]dataview.Record, error) {
	if name == f.dataset {
		return nil, errors.New("upstream down")
	}
	return f.Provider.Dataset(ctx, name, r)
}

func newTestService(t *testing.T, telemetry Telemetry, opts ...export.Option) (*Service, *export.MemoryStore) {
	t.Helper()
	store := export.NewMemoryStore()
	sinkOpts := append([]export.Option{export.WithStore(store), export.WithClock(func() time.Time { return fixedNow })}, opts...)
	svc, err := NewService(Options{
		Provider:  provider.NewMockProvider(provider.WithSeed(42), provider.WithClock(func() time.Time { return fixedNow })),
		Exporter:  export.NewSink(sinkOpts...),
		Telemetry: telemetry,
		Now:       func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return svc, store
}

func TestNewServiceRequiresProvider(t *testing.T) {
	_, err := NewService(Options{})
	assert.ErrorIs(t, err, errMissingProvider)
}

func TestMountBuildsSessionsPerWidgetKind(t *testing.T) {
	telemetry := &recordingTelemetry{}
	svc, _ := newTestService(t, telemetry)

	view, err := svc.Mount(context.Background(), MountRequest{Page: provider.PageOverview})
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, provider.DefaultRange, view.Range())
	assert.Len(t, view.KPIs(), 6)
	assert.Len(t, view.Widgets, 5)
	assert.Equal(t, fixedNow, view.MountedAt)

	chart, err := svc.Chart(view.ID, "overview.order_volume")
	require.NoError(t, err)
	assert.Equal(t, 30, chart.Visible().Total)
	assert.Equal(t, []string{"date", "orders", "shipped", "returned"}, chart.Visible().Fields[:4])

	table, err := svc.Table(view.ID, "overview.recent_orders")
	require.NoError(t, err)
	page := table.Visible()
	assert.Equal(t, 10, page.PageSize)
	assert.Len(t, page.Rows, 10)
	assert.Equal(t, []string{"id", "customer", "items", "total", "status", "priority", "date"}, page.Fields)

	_, err = svc.Table(view.ID, "overview.order_volume")
	assert.ErrorIs(t, err, ErrWidgetKind)
	_, err = svc.Widget(view.ID, "overview.nothing")
	assert.ErrorIs(t, err, ErrUnknownWidget)

	assert.Equal(t, 1, telemetry.count(EventPageMounted))
	assert.Equal(t, provider.PageOverview, telemetry.last[EventPageMounted]["page"])
}

func TestMountUnknownPageAndUnmount(t *testing.T) {
	telemetry := &recordingTelemetry{}
	svc, _ := newTestService(t, telemetry)
	ctx := context.Background()

	_, err := svc.Mount(ctx, MountRequest{Page: "finance"})
	assert.ErrorIs(t, err, ErrUnknownPage)

	view, err := svc.Mount(ctx, MountRequest{Page: provider.PageReturns, Range: provider.Range7D})
	require.NoError(t, err)
	require.NoError(t, svc.Unmount(ctx, view.ID))
	_, err = svc.PageView(view.ID)
	assert.ErrorIs(t, err, ErrUnknownMount)
	assert.ErrorIs(t, svc.Unmount(ctx, view.ID), ErrUnknownMount)
	assert.Equal(t, 1, telemetry.count(EventPageUnmounted))
}

func TestMountFailsWhenDatasetFails(t *testing.T) {
	telemetry := &recordingTelemetry{}
	svc, err := NewService(Options{
		Provider:  failingProvider{Provider: provider.NewMockProvider(provider.WithSeed(1)), dataset: provider.DatasetRMATrend},
		Telemetry: telemetry,
	})
	require.NoError(t, err)
	_, err = svc.Mount(context.Background(), MountRequest{Page: provider.PageReturns})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rma_trend")
	assert.Equal(t, 1, telemetry.count(EventDatasetMissing))
}

func TestRMALogSearchAndExport(t *testing.T) {
	telemetry := &recordingTelemetry{}
	svc, store := newTestService(t, telemetry)
	ctx := context.Background()

	view, err := svc.Mount(ctx, MountRequest{Page: provider.PageReturns})
	require.NoError(t, err)
	table, err := svc.Table(view.ID, "returns.rma_log")
	require.NoError(t, err)

	page := table.OnSearchChange("defect")
	for _, row := range page.Rows {
		assert.Contains(t, strings.ToLower(row.Record.Get("reason").String()), "defect")
	}

	artifact, err := svc.Export(ctx, ExportRequest{MountID: view.ID, Widget: "returns.rma_log"})
	require.NoError(t, err)
	assert.Equal(t, "RMA_Log_data_2024-03-05.xlsx", artifact.Name)
	assert.Equal(t, len(page.Rows), artifact.Rows)
	assert.Equal(t, "id", artifact.Columns[0].Key)
	_, ok := store.Get(artifact.Name)
	assert.True(t, ok)
	assert.Equal(t, 1, telemetry.count(EventExportWritten))
}

func TestExportChartVisibleSeries(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	view, err := svc.Mount(ctx, MountRequest{Page: provider.PageInventory})
	require.NoError(t, err)

	chart, err := svc.Chart(view.ID, "inventory.health")
	require.NoError(t, err)
	series, err := chart.OnFilterChange("status", "critical")
	require.NoError(t, err)
	assert.Equal(t, 2, series.Shown)

	artifact, err := svc.Export(ctx, ExportRequest{MountID: view.ID, Widget: "inventory.health", Format: export.FormatCSV})
	require.NoError(t, err)
	assert.Equal(t, "Inventory_Health_Matrix_data_2024-03-05.csv", artifact.Name)
	assert.Equal(t, 2, artifact.Rows)

	_, err = svc.Export(ctx, ExportRequest{MountID: view.ID, Widget: "inventory.critical_alert"})
	assert.ErrorIs(t, err, ErrWidgetKind)
}

func TestExportUnavailableIsRecordedAndRecoverable(t *testing.T) {
	telemetry := &recordingTelemetry{}
	attempts := 0
	loader := func() (export.Encoder, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("module not loaded")
		}
		return export.NewJSONEncoder(), nil
	}
	svc, _ := newTestService(t, telemetry, export.WithLoader(export.FormatJSON, loader))
	ctx := context.Background()
	view, err := svc.Mount(ctx, MountRequest{Page: provider.PageOverview})
	require.NoError(t, err)

	req := ExportRequest{MountID: view.ID, Widget: "overview.recent_orders", Format: export.FormatJSON}
	_, err = svc.Export(ctx, req)
	require.ErrorIs(t, err, export.ErrExportUnavailable)
	assert.Equal(t, true, telemetry.last[EventExportFailed]["unavailable"])

	table, err := svc.Table(view.ID, "overview.recent_orders")
	require.NoError(t, err)
	assert.Len(t, table.Visible().Rows, 10, "displayed data is unaffected")

	artifact, err := svc.Export(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Recent_Order_Activity_data_2024-03-05.json", artifact.Name)
}

func TestExportAsyncUsesSnapshotAtInvocation(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	view, err := svc.Mount(ctx, MountRequest{Page: provider.PageReturns})
	require.NoError(t, err)
	table, err := svc.Table(view.ID, "returns.rma_log")
	require.NoError(t, err)

	results := svc.ExportAsync(ctx, ExportRequest{MountID: view.ID, Widget: "returns.rma_log", Scope: dataview.ScopeMatched})
	table.OnSearchChange("zzz-no-match")

	res := <-results
	require.NoError(t, res.Err)
	assert.Equal(t, 24, res.Artifact.Rows)
	_, open := <-results
	assert.False(t, open)

	res = <-svc.ExportAsync(ctx, ExportRequest{MountID: "missing", Widget: "returns.rma_log"})
	assert.ErrorIs(t, res.Err, ErrUnknownMount)
}

func TestChangeRangeKeepsDerivationState(t *testing.T) {
	telemetry := &recordingTelemetry{}
	svc, _ := newTestService(t, telemetry)
	ctx := context.Background()
	view, err := svc.Mount(ctx, MountRequest{Page: provider.PageOverview, Range: provider.Range7D})
	require.NoError(t, err)
	assert.Equal(t, 7, mustChart(t, svc, view.ID, "overview.order_volume").Visible().Total)

	table, err := svc.Table(view.ID, "overview.recent_orders")
	require.NoError(t, err)
	table.OnSearchChange("high")

	view, err = svc.ChangeRange(ctx, view.ID, provider.Range90D)
	require.NoError(t, err)
	assert.Equal(t, provider.Range90D, view.Range())
	assert.Equal(t, 12, mustChart(t, svc, view.ID, "overview.order_volume").Visible().Total, "90d is bucketed weekly")
	assert.Equal(t, "high", table.State().Search)
	assert.Equal(t, 1, telemetry.count(EventRangeChanged))
}

func TestAlertAndListWidgets(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	view, err := svc.Mount(ctx, MountRequest{Page: provider.PageInventory})
	require.NoError(t, err)
	alert, err := view.Widget("inventory.critical_alert")
	require.NoError(t, err)
	state := alert.Alert()
	assert.Equal(t, 2, state.Count)
	assert.Equal(t, "2 items at critical stock levels: Hydraulic Pump X50, Cable Harness C12",
		state.Message(alert.Definition.Alert.Noun()))

	view, err = svc.Mount(ctx, MountRequest{Page: provider.PageWarehouse})
	require.NoError(t, err)
	rankings, err := view.Widget("warehouse.team_rankings")
	require.NoError(t, err)
	items := rankings.Items()
	require.NotEmpty(t, items)
	assert.Equal(t, 1, items[0].Rank)
	assert.Equal(t, "Team Alpha", items[0].Label)
	assert.True(t, items[0].Bar)
	assert.InDelta(t, 99.7, items[0].Progress, 0.001)
}

func TestAlertMessageTruncatesNames(t *testing.T) {
	view := AlertView{Count: 5, Names: []string{"A", "B", "C"}, Remaining: 2}
	assert.Equal(t, "5 items at critical stock levels: A, B, C and 2 more",
		view.Message((&AlertSpec{Value: "critical"}).Noun()))
	assert.Empty(t, AlertView{}.Message("items"))
}

func mustChart(t *testing.T, svc *Service, mountID, code string) *dataview.ChartSession {
	t.Helper()
	chart, err := svc.Chart(mountID, code)
	require.NoError(t, err)
	return chart
}
