package commands

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-opsboard/components/dashboard"
	"github.com/goliatone/go-opsboard/components/dataview"
	"github.com/goliatone/go-opsboard/components/export"
	"github.com/goliatone/go-opsboard/components/provider"
)

type stubTelemetry struct {
	mu     sync.Mutex
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *stubTelemetry) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return ""
	}
	return s.events[len(s.events)-1]
}

func mountPage(t *testing.T, page string) (*dashboard.Service, string) {
	t.Helper()
	now := func() time.Time { return time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC) }
	svc, err := dashboard.NewService(dashboard.Options{
		Provider: provider.NewMockProvider(provider.WithSeed(11), provider.WithClock(now)),
		Exporter: export.NewSink(export.WithClock(now)),
	})
	require.NoError(t, err)
	view, err := svc.Mount(context.Background(), dashboard.MountRequest{Page: page})
	require.NoError(t, err)
	return svc, view.ID
}

func TestSearchChangeCommand(t *testing.T) {
	svc, id := mountPage(t, provider.PageReturns)
	telemetry := &stubTelemetry{}
	cmd := NewSearchChangeCommand(svc, telemetry)

	target := Target{MountID: id, Widget: "returns.rma_log"}
	if err := cmd.Execute(context.Background(), SearchChangeInput{Target: target, Text: "RMA-2024000"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	table, err := svc.Table(id, "returns.rma_log")
	require.NoError(t, err)
	assert.Equal(t, "RMA-2024000", table.State().Search)
	assert.Equal(t, EventSearchChanged, telemetry.last())

	chartTarget := Target{MountID: id, Widget: "returns.by_reason"}
	require.NoError(t, cmd.Execute(context.Background(), SearchChangeInput{Target: chartTarget, Text: "defect"}))
	chart, err := svc.Chart(id, "returns.by_reason")
	require.NoError(t, err)
	assert.Equal(t, "defect", chart.State().Search)
}

func TestPageCommands(t *testing.T) {
	svc, id := mountPage(t, provider.PageReturns)
	target := Target{MountID: id, Widget: "returns.rma_log"}

	require.NoError(t, NewPageChangeCommand(svc, nil).Execute(context.Background(), PageChangeInput{Target: target, Page: 1}))
	table, err := svc.Table(id, "returns.rma_log")
	require.NoError(t, err)
	assert.Equal(t, 1, table.State().Pagination.Page)

	err = NewPageChangeCommand(svc, nil).Execute(context.Background(), PageChangeInput{Target: target, Page: -1})
	assert.ErrorIs(t, err, dataview.ErrInvalidPage)

	require.NoError(t, NewPageSizeChangeCommand(svc, nil).Execute(context.Background(), PageSizeChangeInput{Target: target, Size: 5}))
	assert.Equal(t, 5, table.Visible().PageSize)

	err = NewPageSizeChangeCommand(svc, nil).Execute(context.Background(), PageSizeChangeInput{Target: target, Size: 0})
	assert.ErrorIs(t, err, dataview.ErrInvalidPageSize)
}

func TestChartCommands(t *testing.T) {
	svc, id := mountPage(t, provider.PageOverview)
	telemetry := &stubTelemetry{}
	target := Target{MountID: id, Widget: "overview.carrier_on_time"}
	ctx := context.Background()

	volume := Target{MountID: id, Widget: "overview.order_volume"}
	require.NoError(t, NewLimitChangeCommand(svc, telemetry).Execute(ctx, LimitChangeInput{Target: volume, Limit: 7}))
	series, err := svc.Chart(id, volume.Widget)
	require.NoError(t, err)
	assert.Equal(t, 7, series.Visible().Shown)
	require.NoError(t, NewLimitChangeCommand(svc, telemetry).Execute(ctx, LimitChangeInput{Target: volume, Limit: 1}))
	assert.Equal(t, dataview.MinDataPoints, series.State().Limit)

	chart, err := svc.Chart(id, target.Widget)
	require.NoError(t, err)
	require.NoError(t, NewFilterChangeCommand(svc, telemetry).Execute(ctx, FilterChangeInput{Target: target, Key: "onTime", Value: "95"}))
	assert.True(t, chart.Visible().HasFilters)
	assert.Equal(t, 5, chart.State().Limit, "filter keeps the limit")

	err = NewFilterChangeCommand(svc, telemetry).Execute(ctx, FilterChangeInput{Target: target, Key: "region", Value: "EU"})
	assert.ErrorIs(t, err, dataview.ErrUnknownFilter)

	require.NoError(t, NewClearFiltersCommand(svc, telemetry).Execute(ctx, ClearFiltersInput{Target: target}))
	assert.False(t, chart.Visible().HasFilters)
	assert.Equal(t, EventFiltersCleared, telemetry.last())

	require.NoError(t, NewVariantChangeCommand(svc, telemetry).Execute(ctx, VariantChangeInput{Target: target, Variant: "stacked"}))
	assert.Equal(t, dataview.VariantStacked, chart.State().Variant)
	err = NewVariantChangeCommand(svc, telemetry).Execute(ctx, VariantChangeInput{Target: target, Variant: "radial"})
	assert.ErrorIs(t, err, dataview.ErrUnknownVariant)
}

func TestCommandsRejectWrongWidgetKind(t *testing.T) {
	svc, id := mountPage(t, provider.PageInventory)
	ctx := context.Background()

	err := NewLimitChangeCommand(svc, nil).Execute(ctx, LimitChangeInput{Target: Target{MountID: id, Widget: "inventory.stock_levels"}, Limit: 2})
	assert.ErrorIs(t, err, dashboard.ErrWidgetKind)

	err = NewPageChangeCommand(svc, nil).Execute(ctx, PageChangeInput{Target: Target{MountID: id, Widget: "inventory.health"}, Page: 1})
	assert.ErrorIs(t, err, dashboard.ErrWidgetKind)

	err = NewSearchChangeCommand(svc, nil).Execute(ctx, SearchChangeInput{Target: Target{MountID: id, Widget: "inventory.critical_alert"}})
	assert.ErrorIs(t, err, dashboard.ErrWidgetKind)

	err = NewSearchChangeCommand(nil, nil).Execute(ctx, SearchChangeInput{})
	if !errors.Is(err, errMissingService) {
		t.Fatalf("expected missing service error, got %v", err)
	}
}

func TestExportRequestCommand(t *testing.T) {
	svc, id := mountPage(t, provider.PageWarehouse)
	telemetry := &stubTelemetry{}
	cmd := NewExportRequestCommand(svc, telemetry)
	target := Target{MountID: id, Widget: "warehouse.team_data"}

	var got export.Artifact
	err := cmd.Execute(context.Background(), ExportRequestInput{
		Target: target,
		Format: "csv",
		OnComplete: func(a export.Artifact, err error) {
			require.NoError(t, err)
			got = a
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Complete_Team_Performance_Data_data_2024-06-01.csv", got.Name)
	assert.Equal(t, 5, got.Rows)
	assert.Equal(t, EventExportRequested, telemetry.last())

	err = cmd.Execute(context.Background(), ExportRequestInput{Target: target, Format: "pdf"})
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
	err = cmd.Execute(context.Background(), ExportRequestInput{Target: target, Scope: "everything"})
	assert.ErrorIs(t, err, dataview.ErrUnknownScope)
}

func TestExportRequestCommandAsync(t *testing.T) {
	svc, id := mountPage(t, provider.PageWarehouse)
	done := make(chan export.Artifact, 1)
	err := NewExportRequestCommand(svc, nil).Execute(context.Background(), ExportRequestInput{
		Target: Target{MountID: id, Widget: "warehouse.throughput"},
		Format: "json",
		Async:  true,
		OnComplete: func(a export.Artifact, err error) {
			if err != nil {
				t.Errorf("async export failed: %v", err)
			}
			done <- a
		},
	})
	require.NoError(t, err)

	select {
	case artifact := <-done:
		assert.Equal(t, export.FormatJSON, artifact.Format)
		assert.Equal(t, "Hourly_Warehouse_Throughput_data_2024-06-01.json", artifact.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("async export did not complete")
	}
}
