package provider

import "github.com/goliatone/go-opsboard/components/dataview"

func text(key, v string) dataview.Field {
	return dataview.NewField(key, dataview.StringValue(v))
}

func label(key, v string) dataview.Field {
	return dataview.NewField(key, dataview.LabelValue(v))
}

func num(key string, v float64) dataview.Field {
	return dataview.NewField(key, dataview.NumberValue(v))
}

func count(key string, v int) dataview.Field {
	return dataview.NewField(key, dataview.IntValue(v))
}

// TimeSeriesPoint is one bucket of order volume.
type TimeSeriesPoint struct {
	Date     string
	Orders   int
	Shipped  int
	Returned int
}

func (p TimeSeriesPoint) Record() dataview.Record {
	return dataview.NewRecord(text("date", p.Date), count("orders", p.Orders), count("shipped", p.Shipped), count("returned", p.Returned))
}

// ThroughputPoint is hourly dock and pick activity.
type ThroughputPoint struct {
	Hour     string
	Inbound  int
	Outbound int
	Picks    int
}

func (p ThroughputPoint) Record() dataview.Record {
	return dataview.NewRecord(text("hour", p.Hour), count("inbound", p.Inbound), count("outbound", p.Outbound), count("picks", p.Picks))
}

// InventoryCategory summarizes stock per product category.
type InventoryCategory struct {
	Category string
	Units    int
	Value    int
	Turnover float64
	Fill     string
}

func (c InventoryCategory) Record() dataview.Record {
	return dataview.NewRecord(label("category", c.Category), count("units", c.Units), count("value", c.Value), num("turnover", c.Turnover), text("fill", c.Fill))
}

// CSMetric is a customer service target with progress.
type CSMetric struct {
	Metric   string
	Value    string
	Target   string
	Progress int
	Status   string
}

func (m CSMetric) Record() dataview.Record {
	return dataview.NewRecord(text("metric", m.Metric), text("value", m.Value), text("target", m.Target), count("progress", m.Progress), label("status", m.Status))
}

// CallReason is the call count for one reason.
type CallReason struct {
	Reason     string
	Count      int
	Percentage float64
	Fill       string
}

func (c CallReason) Record() dataview.Record {
	return dataview.NewRecord(label("reason", c.Reason), count("count", c.Count), num("percentage", c.Percentage), text("fill", c.Fill))
}

// CallVolumePoint is hourly inbound call handling.
type CallVolumePoint struct {
	Hour      string
	Inbound   int
	Handled   int
	Abandoned int
}

func (p CallVolumePoint) Record() dataview.Record {
	return dataview.NewRecord(text("hour", p.Hour), count("inbound", p.Inbound), count("handled", p.Handled), count("abandoned", p.Abandoned))
}

// RMAEntry is one return merchandise authorization.
type RMAEntry struct {
	ID          string
	OrderNumber string
	Customer    string
	Product     string
	Reason      string
	Status      string
	DateCreated string
	Value       int
}

func (r RMAEntry) Record() dataview.Record {
	return dataview.NewRecord(
		text("id", r.ID),
		text("orderNumber", r.OrderNumber),
		text("customer", r.Customer),
		text("product", r.Product),
		label("reason", r.Reason),
		label("status", r.Status),
		text("dateCreated", r.DateCreated),
		count("value", r.Value),
	)
}

// RMAReason aggregates returns by reason.
type RMAReason struct {
	Reason     string
	Count      int
	Percentage int
	AvgValue   int
	Fill       string
}

func (r RMAReason) Record() dataview.Record {
	return dataview.NewRecord(label("reason", r.Reason), count("count", r.Count), count("percentage", r.Percentage), count("avgValue", r.AvgValue), text("fill", r.Fill))
}

// RMATrend is the monthly flow of returns.
type RMATrend struct {
	Month       string
	Created     int
	Resolved    int
	OpenBalance int
}

func (t RMATrend) Record() dataview.Record {
	return dataview.NewRecord(text("month", t.Month), count("created", t.Created), count("resolved", t.Resolved), count("openBalance", t.OpenBalance))
}

// InventoryLevel is the stock position of one SKU.
type InventoryLevel struct {
	Product      string
	SKU          string
	OnHand       int
	Committed    int
	Available    int
	ReorderPoint int
	Status       string
	DaysOfSupply int
}

func (l InventoryLevel) Record() dataview.Record {
	return dataview.NewRecord(
		text("product", l.Product),
		text("sku", l.SKU),
		count("onHand", l.OnHand),
		count("committed", l.Committed),
		count("available", l.Available),
		count("reorderPoint", l.ReorderPoint),
		label("status", l.Status),
		count("daysOfSupply", l.DaysOfSupply),
	)
}

// HealthPoint plots days of supply against on-hand quantity.
type HealthPoint struct {
	Name   string
	Status string
	X      int
	Y      int
}

func (p HealthPoint) Record() dataview.Record {
	return dataview.NewRecord(text("name", p.Name), label("status", p.Status), count("x", p.X), count("y", p.Y))
}

// ZoneUtilization is capacity usage of a warehouse zone.
type ZoneUtilization struct {
	Zone       string
	Capacity   int
	Used       int
	Percentage float64
}

func (z ZoneUtilization) Record() dataview.Record {
	return dataview.NewRecord(text("zone", z.Zone), count("capacity", z.Capacity), count("used", z.Used), num("percentage", z.Percentage))
}

// PickerPerformance is one picking team's output.
type PickerPerformance struct {
	Name         string
	OrdersPicked int
	Accuracy     float64
	AvgTime      float64
	Shift        string
}

func (p PickerPerformance) Record() dataview.Record {
	return dataview.NewRecord(text("name", p.Name), count("ordersPicked", p.OrdersPicked), num("accuracy", p.Accuracy), num("avgTime", p.AvgTime), label("shift", p.Shift))
}

// RecentOrder is an order in the activity feed.
type RecentOrder struct {
	ID       string
	Customer string
	Items    int
	Total    int
	Status   string
	Date     string
	Priority string
}

func (o RecentOrder) Record() dataview.Record {
	return dataview.NewRecord(
		text("id", o.ID),
		text("customer", o.Customer),
		count("items", o.Items),
		count("total", o.Total),
		label("status", o.Status),
		text("date", o.Date),
		label("priority", o.Priority),
	)
}

// Carrier is shipment performance for one carrier.
type Carrier struct {
	Name       string
	Shipments  int
	OnTime     float64
	AvgTransit float64
	Cost       int
}

func (c Carrier) Record() dataview.Record {
	return dataview.NewRecord(label("carrier", c.Name), count("shipments", c.Shipments), num("onTime", c.OnTime), num("avgTransit", c.AvgTransit), count("cost", c.Cost))
}

// AgentPerformance is one customer service agent. CSAT, FCR and Status are optional.
type AgentPerformance struct {
	Name          string
	CallsHandled  int
	AvgHandleTime string
	Satisfaction  float64
	Resolution    int
	CSAT          *float64
	FCR           *float64
	Status        *string
}

func (a AgentPerformance) Record() dataview.Record {
	return dataview.NewRecord(
		text("name", a.Name),
		count("callsHandled", a.CallsHandled),
		text("avgHandleTime", a.AvgHandleTime),
		num("satisfaction", a.Satisfaction),
		count("resolution", a.Resolution),
		dataview.NewField("csat", dataview.OptionalNumber(a.CSAT)),
		dataview.NewField("fcr", dataview.OptionalNumber(a.FCR)),
		dataview.NewField("status", dataview.OptionalLabel(a.Status)),
	)
}

// SLAMetric is service level compliance for one metric.
type SLAMetric struct {
	Metric string
	Actual string
	Target string
	Status string
}

func (m SLAMetric) Record() dataview.Record {
	return dataview.NewRecord(text("metric", m.Metric), text("actual", m.Actual), text("target", m.Target), label("status", m.Status))
}

// CallVolumeByHour is hourly call load. DayType is optional.
type CallVolumeByHour struct {
	Hour      string
	Calls     int
	Handled   int
	Abandoned int
	DayType   *string
}

func (c CallVolumeByHour) Record() dataview.Record {
	return dataview.NewRecord(
		text("hour", c.Hour),
		count("calls", c.Calls),
		count("handled", c.Handled),
		count("abandoned", c.Abandoned),
		dataview.NewField("dayType", dataview.OptionalLabel(c.DayType)),
	)
}
