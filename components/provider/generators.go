package provider

import (
	"fmt"
	"time"
)

var (
	rmaStatuses     = []string{"pending", "approved", "received", "inspecting", "resolved", "denied"}
	rmaReasons      = []string{"Defective", "Wrong Item", "Damaged in Shipping", "Not as Described", "Customer Changed Mind", "Missing Parts"}
	catalogue       = []string{"Circuit Board A200", "Hydraulic Pump X50", "Safety Helmet Pro", "Steel Bracket Kit", "LED Panel 4x8", "Bearing Assembly", "Cable Harness C12", "Valve Controller"}
	customers       = []string{"Acme Manufacturing", "TechVault Inc.", "Precision Parts Co.", "Global Supplies Ltd.", "Metro Industrial", "Summit Equipment", "Coastal Fabricators", "Delta Solutions", "Pioneer Dynamics", "Atlas Corp."}
	orderStatuses   = []string{"processing", "picking", "packing", "shipped", "delivered"}
	orderPriorities = []string{"standard", "standard", "standard", "expedited", "rush"}
	shiftHours      = []string{"6 AM", "7 AM", "8 AM", "9 AM", "10 AM", "11 AM", "12 PM", "1 PM", "2 PM", "3 PM", "4 PM", "5 PM", "6 PM"}
	officeHours     = []string{"8 AM", "9 AM", "10 AM", "11 AM", "12 PM", "1 PM", "2 PM", "3 PM", "4 PM", "5 PM"}
	trendMonths     = []string{"Sep", "Oct", "Nov", "Dec", "Jan", "Feb"}
)

// OrdersTimeSeries returns order, shipment and return volume across the range.
// Daily buckets for 7d and 30d, weekly for 90d, monthly for 12m.
func (p *MockProvider) OrdersTimeSeries(r DateRange) []TimeSeriesPoint {
	points, base := 30, 95.0
	switch r {
	case Range7D:
		points, base = 7, 380
	case Range90D:
		points, base = 12, 680
	case Range12M:
		points, base = 12, 2800
	}
	now := p.now()
	out := make([]TimeSeriesPoint, 0, points)
	for i := points - 1; i >= 0; i-- {
		var d time.Time
		layout := "Jan 2"
		switch r {
		case Range90D:
			d = now.AddDate(0, 0, -7*i)
		case Range12M:
			d = now.AddDate(0, -i, 0)
			layout = "Jan"
		default:
			d = now.AddDate(0, 0, -i)
		}
		orders := round(base + p.float()*base*0.3)
		out = append(out, TimeSeriesPoint{
			Date:     d.Format(layout),
			Orders:   orders,
			Shipped:  round(float64(orders) * (0.92 + p.float()*0.06)),
			Returned: round(float64(orders) * (0.01 + p.float()*0.03)),
		})
	}
	return out
}

// WarehouseThroughput returns hourly activity for one shift. Late morning to
// early afternoon runs at peak load.
func (p *MockProvider) WarehouseThroughput() []ThroughputPoint {
	out := make([]ThroughputPoint, len(shiftHours))
	for i, hour := range shiftHours {
		clock := 6 + i
		peak := 0.7
		switch {
		case clock >= 9 && clock <= 14:
			peak = 1.4
		case clock >= 8:
			peak = 1.1
		}
		out[i] = ThroughputPoint{
			Hour:     hour,
			Inbound:  round(45*peak + p.float()*20),
			Outbound: round(62*peak + p.float()*25),
			Picks:    round(180*peak + p.float()*50),
		}
	}
	return out
}

// CallVolume returns hourly inbound calls with abandonment.
func (p *MockProvider) CallVolume() []CallVolumePoint {
	out := make([]CallVolumePoint, len(officeHours))
	for i, hour := range officeHours {
		inbound := round(80 + p.float()*60)
		abandoned := round(float64(inbound) * (0.02 + p.float()*0.04))
		out[i] = CallVolumePoint{Hour: hour, Inbound: inbound, Handled: inbound - abandoned, Abandoned: abandoned}
	}
	return out
}

// CallVolumeByHour returns weekday call load per office hour.
func (p *MockProvider) CallVolumeByHour() []CallVolumeByHour {
	out := make([]CallVolumeByHour, len(officeHours))
	for i, hour := range officeHours {
		calls := round(80 + p.float()*60)
		abandoned := round(float64(calls) * (0.02 + p.float()*0.03))
		dayType := "weekday"
		out[i] = CallVolumeByHour{Hour: hour, Calls: calls, Handled: calls - abandoned, Abandoned: abandoned, DayType: &dayType}
	}
	return out
}

// RMAEntries returns 24 returns opened within the last 30 days.
func (p *MockProvider) RMAEntries() []RMAEntry {
	now := p.now()
	out := make([]RMAEntry, 24)
	for i := range out {
		created := now.AddDate(0, 0, -p.intn(30))
		out[i] = RMAEntry{
			ID:          fmt.Sprintf("RMA-%d", 2024000+i),
			OrderNumber: fmt.Sprintf("ORD-%d", 100000+p.intn(9000)),
			Customer:    p.pick(customers[:8]),
			Product:     p.pick(catalogue),
			Reason:      p.pick(rmaReasons),
			Status:      p.pick(rmaStatuses),
			DateCreated: created.Format("Jan 2, 2006"),
			Value:       round(50 + p.float()*950),
		}
	}
	return out
}

// RMATrend returns six months of created and resolved returns with the running open balance.
func (p *MockProvider) RMATrend() []RMATrend {
	balance := 18
	out := make([]RMATrend, len(trendMonths))
	for i, month := range trendMonths {
		created := round(15 + p.float()*12)
		resolved := round(12 + p.float()*14)
		balance = balance + created - resolved
		open := balance
		if open < 3 {
			open = 3
		}
		out[i] = RMATrend{Month: month, Created: created, Resolved: resolved, OpenBalance: open}
	}
	return out
}

// RecentOrders returns 20 orders placed within the last 72 hours.
func (p *MockProvider) RecentOrders() []RecentOrder {
	now := p.now()
	out := make([]RecentOrder, 20)
	for i := range out {
		placed := now.Add(-time.Duration(p.intn(72)) * time.Hour)
		out[i] = RecentOrder{
			ID:       fmt.Sprintf("ORD-%d", 108000+i),
			Customer: p.pick(customers),
			Items:    1 + p.intn(15),
			Total:    round(100 + p.float()*4900),
			Status:   p.pick(orderStatuses),
			Date:     placed.Format("Jan 2, 3:04 PM"),
			Priority: p.pick(orderPriorities),
		}
	}
	return out
}

// InventoryByCategory returns stock totals per category.
func InventoryByCategory() []InventoryCategory {
	return []InventoryCategory{
		{Category: "Electronics", Units: 14520, Value: 2847000, Turnover: 8.2, Fill: Palette[0]},
		{Category: "Industrial", Units: 8930, Value: 1563000, Turnover: 5.4, Fill: Palette[1]},
		{Category: "Automotive", Units: 6740, Value: 982000, Turnover: 6.8, Fill: Palette[2]},
		{Category: "Hardware", Units: 12100, Value: 743000, Turnover: 11.3, Fill: Palette[3]},
		{Category: "Safety/PPE", Units: 9800, Value: 412000, Turnover: 14.6, Fill: Palette[4]},
	}
}

// CSMetrics returns customer service targets.
func CSMetrics() []CSMetric {
	return []CSMetric{
		{Metric: "Avg Hold Time", Value: "1m 24s", Target: "< 2m", Progress: 85, Status: "on-track"},
		{Metric: "First Call Resolution", Value: "78.4%", Target: "> 80%", Progress: 98, Status: "at-risk"},
		{Metric: "Calls Abandoned", Value: "3.2%", Target: "< 5%", Progress: 70, Status: "on-track"},
		{Metric: "Customer Satisfaction", Value: "4.3/5", Target: "> 4.0", Progress: 86, Status: "on-track"},
		{Metric: "Avg Handle Time", Value: "4m 12s", Target: "< 5m", Progress: 78, Status: "on-track"},
		{Metric: "Escalation Rate", Value: "6.8%", Target: "< 5%", Progress: 120, Status: "behind"},
	}
}

// CallReasons returns call counts per reason.
func CallReasons() []CallReason {
	return []CallReason{
		{Reason: "Order Status", Count: 412, Percentage: 32.6, Fill: Palette[0]},
		{Reason: "Place Order", Count: 298, Percentage: 23.6, Fill: Palette[1]},
		{Reason: "RMA Request", Count: 187, Percentage: 14.8, Fill: Palette[2]},
		{Reason: "Billing Inquiry", Count: 142, Percentage: 11.2, Fill: Palette[3]},
		{Reason: "Product Info", Count: 124, Percentage: 9.8, Fill: Palette[4]},
		{Reason: "Other", Count: 100, Percentage: 7.9, Fill: "#94a3b8"},
	}
}

// RMAByReason returns return counts per reason.
func RMAByReason() []RMAReason {
	return []RMAReason{
		{Reason: "Defective", Count: 42, Percentage: 35, AvgValue: 285, Fill: Palette[4]},
		{Reason: "Wrong Item", Count: 28, Percentage: 23, AvgValue: 192, Fill: Palette[2]},
		{Reason: "Damaged in Shipping", Count: 22, Percentage: 18, AvgValue: 340, Fill: Palette[0]},
		{Reason: "Not as Described", Count: 15, Percentage: 13, AvgValue: 156, Fill: Palette[3]},
		{Reason: "Other", Count: 13, Percentage: 11, AvgValue: 98, Fill: Palette[1]},
	}
}

// InventoryLevels returns the stock position of the tracked SKUs.
func InventoryLevels() []InventoryLevel {
	return []InventoryLevel{
		{Product: "Circuit Board A200", SKU: "CB-A200", OnHand: 1240, Committed: 320, Available: 920, ReorderPoint: 500, Status: "healthy", DaysOfSupply: 42},
		{Product: "Hydraulic Pump X50", SKU: "HP-X50", OnHand: 85, Committed: 62, Available: 23, ReorderPoint: 100, Status: "critical", DaysOfSupply: 4},
		{Product: "Safety Helmet Pro", SKU: "SH-PRO", OnHand: 3400, Committed: 180, Available: 3220, ReorderPoint: 800, Status: "overstock", DaysOfSupply: 120},
		{Product: "Steel Bracket Kit", SKU: "SB-KIT", OnHand: 560, Committed: 410, Available: 150, ReorderPoint: 200, Status: "low", DaysOfSupply: 12},
		{Product: "LED Panel 4x8", SKU: "LP-4X8", OnHand: 780, Committed: 290, Available: 490, ReorderPoint: 350, Status: "healthy", DaysOfSupply: 28},
		{Product: "Bearing Assembly", SKU: "BA-001", OnHand: 2100, Committed: 450, Available: 1650, ReorderPoint: 600, Status: "healthy", DaysOfSupply: 55},
		{Product: "Cable Harness C12", SKU: "CH-C12", OnHand: 120, Committed: 95, Available: 25, ReorderPoint: 150, Status: "critical", DaysOfSupply: 3},
		{Product: "Valve Controller", SKU: "VC-100", OnHand: 450, Committed: 180, Available: 270, ReorderPoint: 200, Status: "healthy", DaysOfSupply: 30},
		{Product: "Motor Drive Unit", SKU: "MDU-50", OnHand: 210, Committed: 185, Available: 25, ReorderPoint: 120, Status: "low", DaysOfSupply: 5},
		{Product: "Sensor Package S3", SKU: "SP-S3", OnHand: 890, Committed: 220, Available: 670, ReorderPoint: 300, Status: "healthy", DaysOfSupply: 45},
	}
}

// InventoryHealth projects inventory levels onto days of supply (x) and on-hand units (y).
func InventoryHealth() []HealthPoint {
	levels := InventoryLevels()
	out := make([]HealthPoint, len(levels))
	for i, l := range levels {
		out[i] = HealthPoint{Name: l.Product, Status: l.Status, X: l.DaysOfSupply, Y: l.OnHand}
	}
	return out
}

// CriticalItems returns the levels whose status is critical.
func CriticalItems(levels []InventoryLevel) []InventoryLevel {
	var out []InventoryLevel
	for _, l := range levels {
		if l.Status == "critical" {
			out = append(out, l)
		}
	}
	return out
}

// ZoneUtilizations returns capacity usage per warehouse zone.
func ZoneUtilizations() []ZoneUtilization {
	return []ZoneUtilization{
		{Zone: "Zone A - Receiving", Capacity: 5000, Used: 3800, Percentage: 76},
		{Zone: "Zone B - Pick & Pack", Capacity: 8000, Used: 6920, Percentage: 86.5},
		{Zone: "Zone C - Bulk Storage", Capacity: 12000, Used: 10440, Percentage: 87},
		{Zone: "Zone D - Cold Storage", Capacity: 3000, Used: 2610, Percentage: 87},
		{Zone: "Zone E - Staging", Capacity: 4000, Used: 2480, Percentage: 62},
		{Zone: "Zone F - Returns", Capacity: 2000, Used: 1540, Percentage: 77},
	}
}

// PickerPerformances returns picking team output ordered by orders picked.
func PickerPerformances() []PickerPerformance {
	return []PickerPerformance{
		{Name: "Team Alpha", OrdersPicked: 342, Accuracy: 99.7, AvgTime: 3.2, Shift: "morning"},
		{Name: "Team Bravo", OrdersPicked: 318, Accuracy: 99.4, AvgTime: 3.5, Shift: "morning"},
		{Name: "Team Charlie", OrdersPicked: 295, Accuracy: 98.9, AvgTime: 3.8, Shift: "afternoon"},
		{Name: "Team Delta", OrdersPicked: 267, Accuracy: 99.1, AvgTime: 4.1, Shift: "afternoon"},
		{Name: "Team Echo", OrdersPicked: 184, Accuracy: 99.5, AvgTime: 3.4, Shift: "night"},
	}
}

// Carriers returns shipment performance per carrier.
func Carriers() []Carrier {
	return []Carrier{
		{Name: "FedEx", Shipments: 842, OnTime: 97.2, AvgTransit: 2.1, Cost: 12840},
		{Name: "UPS", Shipments: 634, OnTime: 95.8, AvgTransit: 2.4, Cost: 9680},
		{Name: "USPS", Shipments: 428, OnTime: 91.3, AvgTransit: 3.2, Cost: 4280},
		{Name: "DHL", Shipments: 186, OnTime: 96.5, AvgTransit: 1.8, Cost: 5580},
		{Name: "LTL Freight", Shipments: 94, OnTime: 88.4, AvgTransit: 4.6, Cost: 8460},
	}
}

// AgentPerformances returns customer service agent output.
func AgentPerformances() []AgentPerformance {
	agent := func(name string, calls int, aht string, sat float64, res int, status string) AgentPerformance {
		csat, fcr := sat, float64(res)
		return AgentPerformance{
			Name: name, CallsHandled: calls, AvgHandleTime: aht, Satisfaction: sat, Resolution: res,
			CSAT: &csat, FCR: &fcr, Status: &status,
		}
	}
	return []AgentPerformance{
		agent("Sarah Chen", 142, "3m 48s", 4.6, 84, "Available"),
		agent("Mike Torres", 128, "4m 12s", 4.4, 79, "On Call"),
		agent("Jessica Park", 135, "3m 55s", 4.7, 86, "Available"),
		agent("David Kim", 118, "4m 30s", 4.2, 75, "Break"),
		agent("Rachel Adams", 145, "3m 32s", 4.5, 82, "Available"),
		agent("James Wilson", 110, "4m 45s", 4.1, 71, "On Call"),
	}
}

// SLAMetrics returns service level compliance.
func SLAMetrics() []SLAMetric {
	return []SLAMetric{
		{Metric: "Answer Speed", Actual: "94%", Target: "> 80%", Status: "met"},
		{Metric: "Avg Hold Time", Actual: "1m 24s", Target: "< 2m", Status: "met"},
		{Metric: "First Call Resolution", Actual: "87.3%", Target: "> 85%", Status: "met"},
		{Metric: "Calls Abandoned", Actual: "2.1%", Target: "< 5%", Status: "met"},
		{Metric: "Escalation Rate", Actual: "8.2%", Target: "< 5%", Status: "at-risk"},
	}
}
