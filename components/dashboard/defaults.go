package dashboard

import (
	"github.com/goliatone/go-opsboard/components/dataview"
	"github.com/goliatone/go-opsboard/components/provider"
)

// DefaultAlertMax is the number of names listed before "and N more".
const DefaultAlertMax = 3

func trend(v float64) *float64 { return &v }

func allOf(label string, values ...string) []dataview.FilterOption {
	out := []dataview.FilterOption{{Value: dataview.AllOption, Label: label}}
	return append(out, dataview.Options(values...)...)
}

func columns(fields ...string) []ColumnSpec {
	out := make([]ColumnSpec, len(fields))
	for i, f := range fields {
		out[i] = ColumnSpec{Field: f}
	}
	return out
}

// DefaultPages returns the built-in operations pages in navigation order.
func DefaultPages() []PageDefinition {
	return []PageDefinition{
		overviewPage(),
		warehousePage(),
		customerServicePage(),
		returnsPage(),
		inventoryPage(),
	}
}

func overviewPage() PageDefinition {
	return PageDefinition{
		Code:        provider.PageOverview,
		Title:       "Operations Overview",
		Description: "Real-time fulfillment and operations metrics",
		Order:       10,
		KPIs:        true,
		Widgets: []WidgetDefinition{
			{
				Code:    "overview.order_volume",
				Kind:    KindChart,
				Title:   "Order Volume Trends",
				Dataset: provider.DatasetOrdersTimeSeries,
				Chart: &ChartSpec{
					Type:     ChartArea,
					XAxisKey: "date",
					DataKeys: []string{"orders", "shipped", "returned"},
					Trend:    trend(8.5),
					Controls: true,
					Filters: []dataview.FilterDef{
						{Key: "metric", Label: "Metric", Options: allOf("All Metrics", "orders", "shipped")},
					},
				},
			},
			{
				Code:    "overview.inventory_distribution",
				Kind:    KindChart,
				Title:   "Inventory Distribution",
				Dataset: provider.DatasetInventoryByCategory,
				Chart:   &ChartSpec{Type: ChartPie, ValueKey: "units", LabelKey: "category", ColorKey: "fill"},
			},
			{
				Code:    "overview.carrier_on_time",
				Kind:    KindChart,
				Title:   "Carrier On-Time Performance",
				Dataset: provider.DatasetCarriers,
				Chart: &ChartSpec{
					Type:     ChartBar,
					XAxisKey: "carrier",
					DataKeys: []string{"onTime"},
					Controls: true,
					Filters: []dataview.FilterDef{
						{Key: "onTime", Label: "On-Time", Options: allOf("All Carriers", "95", "90")},
					},
				},
			},
			{
				Code:    "overview.capacity",
				Kind:    KindChart,
				Title:   "Warehouse Capacity Utilization",
				Dataset: provider.DatasetZoneUtilization,
				Chart:   &ChartSpec{Type: ChartBar, XAxisKey: "zone", DataKeys: []string{"percentage"}},
			},
			{
				Code:    "overview.recent_orders",
				Kind:    KindGrid,
				Title:   "Recent Order Activity",
				Dataset: provider.DatasetRecentOrders,
				Grid: &GridSpec{
					Columns:  columns("id", "customer", "items", "total", "status", "priority", "date"),
					PageSize: 10,
				},
			},
		},
	}
}

func warehousePage() PageDefinition {
	return PageDefinition{
		Code:        provider.PageWarehouse,
		Title:       "Warehouse Operations",
		Description: "Throughput, team performance and zone capacity",
		Order:       20,
		KPIs:        true,
		Widgets: []WidgetDefinition{
			{
				Code:    "warehouse.throughput",
				Kind:    KindChart,
				Title:   "Hourly Warehouse Throughput",
				Dataset: provider.DatasetWarehouseThroughput,
				Chart: &ChartSpec{
					Type:     ChartBar,
					XAxisKey: "hour",
					DataKeys: []string{"inbound", "outbound", "picks"},
					Controls: true,
					Filters: []dataview.FilterDef{
						{Key: "shift", Label: "Shift", Options: allOf("All Shifts", "morning", "afternoon", "night")},
					},
				},
			},
			{
				Code:    "warehouse.team_performance",
				Kind:    KindChart,
				Title:   "Team Performance Comparison",
				Dataset: provider.DatasetPickerPerformance,
				Chart: &ChartSpec{
					Type:     ChartBar,
					XAxisKey: "name",
					DataKeys: []string{"ordersPicked"},
					Controls: true,
					Filters: []dataview.FilterDef{
						{Key: "shift", Label: "Shift", Options: allOf("All Shifts", "Day", "Night")},
					},
				},
			},
			{
				Code:    "warehouse.team_rankings",
				Kind:    KindList,
				Title:   "Team Rankings",
				Dataset: provider.DatasetPickerPerformance,
				List: &ListSpec{
					LabelField:    "name",
					ValueField:    "ordersPicked",
					DetailField:   "avgTime",
					BadgeField:    "shift",
					ProgressField: "accuracy",
					ProgressMax:   100,
				},
			},
			{
				Code:    "warehouse.zone_capacity",
				Kind:    KindChart,
				Title:   "Zone Capacity Utilization",
				Dataset: provider.DatasetZoneUtilization,
				Chart:   &ChartSpec{Type: ChartBar, XAxisKey: "zone", DataKeys: []string{"used", "capacity"}},
			},
			{
				Code:    "warehouse.zone_usage",
				Kind:    KindChart,
				Title:   "Zone Usage Percentage",
				Dataset: provider.DatasetZoneUtilization,
				Chart:   &ChartSpec{Type: ChartBar, XAxisKey: "zone", DataKeys: []string{"percentage"}},
			},
			{
				Code:    "warehouse.team_data",
				Kind:    KindGrid,
				Title:   "Complete Team Performance Data",
				Dataset: provider.DatasetPickerPerformance,
				Grid: &GridSpec{
					Columns:      columns("name", "ordersPicked", "accuracy", "avgTime", "shift"),
					SearchFields: []string{"name", "shift"},
					PageSize:     10,
				},
			},
		},
	}
}

func customerServicePage() PageDefinition {
	return PageDefinition{
		Code:        provider.PageCustomerService,
		Title:       "Customer Service",
		Description: "Call center volume, reasons and agent performance",
		Order:       30,
		KPIs:        true,
		Widgets: []WidgetDefinition{
			{
				Code:    "customer_service.call_volume",
				Kind:    KindChart,
				Title:   "Call Volume by Hour",
				Dataset: provider.DatasetCallVolumeByHour,
				Chart: &ChartSpec{
					Type:     ChartArea,
					XAxisKey: "hour",
					DataKeys: []string{"calls"},
					Controls: true,
					Filters: []dataview.FilterDef{
						{Key: "dayType", Label: "Day Type", Options: allOf("All Days", "weekday", "weekend")},
					},
				},
			},
			{
				Code:    "customer_service.call_reasons",
				Kind:    KindChart,
				Title:   "Call Reasons Distribution",
				Dataset: provider.DatasetCallReasons,
				Chart:   &ChartSpec{Type: ChartPie, ValueKey: "count", LabelKey: "reason", ColorKey: "fill"},
			},
			{
				Code:    "customer_service.sla",
				Kind:    KindList,
				Title:   "SLA Performance Metrics",
				Dataset: provider.DatasetSLAMetrics,
				List: &ListSpec{
					LabelField:  "metric",
					ValueField:  "actual",
					DetailField: "target",
					BadgeField:  "status",
				},
			},
			{
				Code:    "customer_service.agent_calls",
				Kind:    KindChart,
				Title:   "Agent Call Volume",
				Dataset: provider.DatasetAgentPerformance,
				Chart: &ChartSpec{
					Type:     ChartBar,
					XAxisKey: "name",
					DataKeys: []string{"callsHandled"},
					Controls: true,
					Filters: []dataview.FilterDef{
						{Key: "status", Label: "Status", Options: allOf("All Agents", "Available", "On Call", "Break")},
					},
				},
			},
			{
				Code:    "customer_service.agent_data",
				Kind:    KindGrid,
				Title:   "Complete Agent Performance Data",
				Dataset: provider.DatasetAgentPerformance,
				Grid: &GridSpec{
					Columns:  columns("name", "callsHandled", "avgHandleTime", "satisfaction", "resolution", "csat", "fcr", "status"),
					PageSize: 10,
				},
			},
		},
	}
}

func returnsPage() PageDefinition {
	return PageDefinition{
		Code:        provider.PageReturns,
		Title:       "Returns & RMA",
		Description: "Return authorizations, reasons and resolution trends",
		Order:       40,
		KPIs:        true,
		Widgets: []WidgetDefinition{
			{
				Code:    "returns.rma_trend",
				Kind:    KindChart,
				Title:   "RMA Activity Trend",
				Dataset: provider.DatasetRMATrend,
				Chart: &ChartSpec{
					Type:     ChartLine,
					XAxisKey: "month",
					DataKeys: []string{"created", "resolved", "openBalance"},
					Controls: true,
					Filters: []dataview.FilterDef{
						{Key: "view", Label: "View", Options: allOf("All Activity", "created", "resolved")},
					},
				},
			},
			{
				Code:    "returns.by_reason",
				Kind:    KindChart,
				Title:   "Returns by Reason",
				Dataset: provider.DatasetRMAByReason,
				Chart:   &ChartSpec{Type: ChartPie, ValueKey: "count", LabelKey: "reason", ColorKey: "fill"},
			},
			{
				Code:    "returns.reason_analysis",
				Kind:    KindChart,
				Title:   "RMA Reason Analysis",
				Dataset: provider.DatasetRMAByReason,
				Chart: &ChartSpec{
					Type:     ChartBar,
					XAxisKey: "reason",
					DataKeys: []string{"count"},
					Controls: true,
					Filters: []dataview.FilterDef{
						{Key: "sortBy", Label: "Sort By", Options: dataview.Options("count", "avgValue")},
					},
				},
			},
			{
				Code:    "returns.rma_log",
				Kind:    KindGrid,
				Title:   "RMA Log",
				Dataset: provider.DatasetRMAEntries,
				Grid: &GridSpec{
					Columns:      columns("id", "orderNumber", "customer", "product", "reason", "status", "dateCreated", "value"),
					SearchFields: []string{"id", "orderNumber", "customer", "product", "reason", "status"},
					PageSize:     15,
				},
			},
		},
	}
}

func inventoryPage() PageDefinition {
	return PageDefinition{
		Code:        provider.PageInventory,
		Title:       "Inventory Management",
		Description: "Stock levels, value and health across categories",
		Order:       50,
		KPIs:        true,
		Widgets: []WidgetDefinition{
			{
				Code:    "inventory.critical_alert",
				Kind:    KindAlert,
				Title:   "Critical Stock Alert",
				Dataset: provider.DatasetInventoryLevels,
				Alert:   &AlertSpec{Field: "status", Value: "critical", NameField: "product", Max: DefaultAlertMax},
			},
			{
				Code:    "inventory.stock_value",
				Kind:    KindChart,
				Title:   "Stock Value by Category",
				Dataset: provider.DatasetInventoryByCategory,
				Chart: &ChartSpec{
					Type:     ChartBar,
					XAxisKey: "category",
					DataKeys: []string{"value"},
					Controls: true,
					Filters: []dataview.FilterDef{
						{Key: "sortBy", Label: "Sort By", Options: dataview.Options("value", "units", "turnover")},
					},
				},
			},
			{
				Code:    "inventory.health",
				Kind:    KindChart,
				Title:   "Inventory Health Matrix",
				Dataset: provider.DatasetInventoryHealth,
				Chart: &ChartSpec{
					Type:     ChartScatter,
					XAxisKey: "x",
					YAxisKey: "y",
					LabelKey: "name",
					GroupKey: "status",
					Controls: true,
					Filters: []dataview.FilterDef{
						{Key: "status", Label: "Status", Options: allOf("All Items", "healthy", "low", "critical")},
					},
				},
			},
			{
				Code:    "inventory.turnover",
				Kind:    KindChart,
				Title:   "Inventory Turnover by Category",
				Dataset: provider.DatasetInventoryByCategory,
				Chart:   &ChartSpec{Type: ChartBar, XAxisKey: "category", DataKeys: []string{"turnover"}},
			},
			{
				Code:    "inventory.unit_distribution",
				Kind:    KindChart,
				Title:   "Unit Distribution by Category",
				Dataset: provider.DatasetInventoryByCategory,
				Chart:   &ChartSpec{Type: ChartPie, ValueKey: "units", LabelKey: "category", ColorKey: "fill"},
			},
			{
				Code:    "inventory.stock_levels",
				Kind:    KindGrid,
				Title:   "Stock Levels",
				Dataset: provider.DatasetInventoryLevels,
				Grid: &GridSpec{
					Columns:      columns("product", "sku", "onHand", "committed", "available", "reorderPoint", "status", "daysOfSupply"),
					SearchFields: []string{"product", "sku", "status"},
					PageSize:     15,
				},
			},
		},
	}
}
