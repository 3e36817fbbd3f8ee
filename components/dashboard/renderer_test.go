package dashboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-opsboard/components/provider"
)

type stubRenderer struct {
	lastTemplate string
	lastPayload  map[string]any
	err          error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.lastTemplate = name
	if payload, ok := data.(map[string]any); ok {
		r.lastPayload = payload
	}
	if len(out) > 0 && out[0] != nil {
		out[0].Write([]byte("<html></html>"))
	}
	return "<html></html>", r.err
}

func widgetPayload(t *testing.T, payload map[string]any, code string) map[string]any {
	t.Helper()
	widgets, ok := payload["widgets"].([]map[string]any)
	require.True(t, ok)
	for _, w := range widgets {
		if w["code"] == code {
			return w
		}
	}
	t.Fatalf("widget %s not in payload", code)
	return nil
}

func TestPageRendererPassesPageData(t *testing.T) {
	telemetry := &recordingTelemetry{}
	svc, _ := newTestService(t, nil)
	view, err := svc.Mount(context.Background(), MountRequest{Page: provider.PageInventory, Range: provider.Range7D})
	require.NoError(t, err)

	renderer := &stubRenderer{}
	pages := NewPageRenderer(renderer, NewChartRenderer(), WithPageTelemetry(telemetry))
	var buf bytes.Buffer
	html, err := pages.Render(context.Background(), view, &buf)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", html)
	assert.Equal(t, "<html></html>", buf.String())
	assert.Equal(t, DefaultPageTemplate, renderer.lastTemplate)

	payload := renderer.lastPayload
	require.NotNil(t, payload)
	assert.Equal(t, view.ID, payload["mount_id"])
	assert.Equal(t, "Inventory Management", payload["title"])
	assert.Equal(t, "7d", payload["range"])
	assert.Len(t, payload["kpis"], 4)

	alert := widgetPayload(t, payload, "inventory.critical_alert")
	assert.Equal(t, true, alert["active"])
	assert.Equal(t, "2 items at critical stock levels: Hydraulic Pump X50, Cable Harness C12", alert["message"])
	assert.Equal(t, false, alert["exportable"])

	grid := widgetPayload(t, payload, "inventory.stock_levels")
	table, ok := grid["table"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"Product", "Sku", "On Hand", "Committed", "Available", "Reorder Point", "Status", "Days Of Supply"}, table["headers"])
	assert.Equal(t, 1, table["page"])
	assert.Equal(t, 10, table["total_matched"])
	assert.Equal(t, "Stock_Levels_data", grid["stem"])

	chart := widgetPayload(t, payload, "inventory.health")
	assert.Contains(t, chart["chart_html"], "Inventory Health Matrix")
	assert.Equal(t, "Showing 10 of 10 records", chart["summary"])
	assert.Equal(t, 4, telemetry.count(EventChartRendered))
}

func TestPageRendererUsesColumnHeadersAndEmptyMessage(t *testing.T) {
	svc, _ := newTestService(t, nil)
	reg := svc.Registry()
	_, err := reg.LoadManifestFile("../../docs/manifests/fulfilment.yaml")
	require.NoError(t, err)

	view, err := svc.Mount(context.Background(), MountRequest{Page: "fulfilment"})
	require.NoError(t, err)
	table, err := svc.Table(view.ID, "fulfilment.orders")
	require.NoError(t, err)
	table.OnSearchChange("no such order anywhere")

	renderer := &stubRenderer{}
	_, err = NewPageRenderer(renderer, nil).Render(context.Background(), view)
	require.NoError(t, err)

	grid := widgetPayload(t, renderer.lastPayload, "fulfilment.orders")
	data := grid["table"].(map[string]any)
	assert.Equal(t, "Order", data["headers"].([]string)[0])
	assert.Equal(t, true, data["empty"])
	assert.Equal(t, "No results found.", data["message"])
	assert.Equal(t, "no such order anywhere", grid["search"])
}

func TestPageRendererErrors(t *testing.T) {
	_, err := NewPageRenderer(nil, nil).Render(context.Background(), &PageView{})
	require.Error(t, err)

	boom := errors.New("template broke")
	svc, _ := newTestService(t, nil)
	view, err := svc.Mount(context.Background(), MountRequest{Page: provider.PageReturns})
	require.NoError(t, err)
	_, err = NewPageRenderer(&stubRenderer{err: boom}, nil).Render(context.Background(), view)
	assert.ErrorIs(t, err, boom)

	_, err = NewPageRenderer(&stubRenderer{}, nil).PageData(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnknownMount)
}

func TestEmbeddedPageRendererProducesHTML(t *testing.T) {
	svc, _ := newTestService(t, nil)
	view, err := svc.Mount(context.Background(), MountRequest{Page: provider.PageWarehouse})
	require.NoError(t, err)

	pages, err := NewEmbeddedPageRenderer(NewChartRenderer())
	require.NoError(t, err)
	html, err := pages.Render(context.Background(), view)
	require.NoError(t, err)

	assert.Contains(t, html, "Warehouse Operations")
	assert.Contains(t, html, "Team Rankings")
	assert.Contains(t, html, "Team Alpha")
	assert.Contains(t, html, "echarts")
}

func TestEmbeddedPageRendererIgnoresWorkingDirectory(t *testing.T) {
	svc, _ := newTestService(t, nil)
	view, err := svc.Mount(context.Background(), MountRequest{Page: provider.PageInventory})
	require.NoError(t, err)

	t.Chdir(t.TempDir())
	pages, err := NewEmbeddedPageRenderer(nil)
	require.NoError(t, err)
	html, err := pages.Render(context.Background(), view)
	require.NoError(t, err)
	assert.Contains(t, html, "Inventory")
}
