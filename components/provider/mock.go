package provider

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-opsboard/components/dataview"
)

// Dataset names served by MockProvider.
const (
	DatasetOrdersTimeSeries    = "orders_timeseries"
	DatasetWarehouseThroughput = "warehouse_throughput"
	DatasetInventoryByCategory = "inventory_by_category"
	DatasetCSMetrics           = "cs_metrics"
	DatasetCallReasons         = "call_reasons"
	DatasetCallVolume          = "call_volume"
	DatasetRMAEntries          = "rma_entries"
	DatasetRMAByReason         = "rma_by_reason"
	DatasetRMATrend            = "rma_trend"
	DatasetInventoryLevels     = "inventory_levels"
	DatasetInventoryHealth     = "inventory_health"
	DatasetZoneUtilization     = "zone_utilization"
	DatasetPickerPerformance   = "picker_performance"
	DatasetRecentOrders        = "recent_orders"
	DatasetCarriers            = "carriers"
	DatasetAgentPerformance    = "agent_performance"
	DatasetSLAMetrics          = "sla_metrics"
	DatasetCallVolumeByHour    = "call_volume_by_hour"
)

// Page codes with KPI tiles.
const (
	PageOverview        = "overview"
	PageWarehouse       = "warehouse"
	PageCustomerService = "customer-service"
	PageReturns         = "returns"
	PageInventory       = "inventory"
)

// Palette is the default series color cycle.
var Palette = []string{"#3b82f6", "#14b8a6", "#f59e0b", "#8b5cf6", "#ef4444"}

// MockOption configures a MockProvider.
type MockOption func(*MockProvider)

// WithSeed makes generated data deterministic.
func WithSeed(seed uint64) MockOption {
	return func(p *MockProvider) {
		p.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithClock sets the reference time for generated dates.
func WithClock(now func() time.Time) MockOption {
	return func(p *MockProvider) {
		if now != nil {
			p.now = now
		}
	}
}

// MockProvider synthesizes plausible operations data. Each call returns a fresh snapshot.
type MockProvider struct {
	mu        sync.Mutex
	rng       *rand.Rand
	now       func() time.Time
	formatter dataview.Formatter
	datasets  map[string]func(DateRange) []dataview.Record
}

// NewMockProvider returns a provider seeded from the runtime unless WithSeed is given.
func NewMockProvider(opts ...MockOption) *MockProvider {
	p := &MockProvider{
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:       time.Now,
		formatter: dataview.DefaultFormatter(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	p.datasets = map[string]func(DateRange) []dataview.Record{
		DatasetOrdersTimeSeries:    func(r DateRange) []dataview.Record { return Records(p.OrdersTimeSeries(r)) },
		DatasetWarehouseThroughput: func(DateRange) []dataview.Record { return Records(p.WarehouseThroughput()) },
		DatasetInventoryByCategory: func(DateRange) []dataview.Record { return Records(InventoryByCategory()) },
		DatasetCSMetrics:           func(DateRange) []dataview.Record { return Records(CSMetrics()) },
		DatasetCallReasons:         func(DateRange) []dataview.Record { return Records(CallReasons()) },
		DatasetCallVolume:          func(DateRange) []dataview.Record { return Records(p.CallVolume()) },
		DatasetRMAEntries:          func(DateRange) []dataview.Record { return Records(p.RMAEntries()) },
		DatasetRMAByReason:         func(DateRange) []dataview.Record { return Records(RMAByReason()) },
		DatasetRMATrend:            func(DateRange) []dataview.Record { return Records(p.RMATrend()) },
		DatasetInventoryLevels:     func(DateRange) []dataview.Record { return Records(InventoryLevels()) },
		DatasetInventoryHealth:     func(DateRange) []dataview.Record { return Records(InventoryHealth()) },
		DatasetZoneUtilization:     func(DateRange) []dataview.Record { return Records(ZoneUtilizations()) },
		DatasetPickerPerformance:   func(DateRange) []dataview.Record { return Records(PickerPerformances()) },
		DatasetRecentOrders:        func(DateRange) []dataview.Record { return Records(p.RecentOrders()) },
		DatasetCarriers:            func(DateRange) []dataview.Record { return Records(Carriers()) },
		DatasetAgentPerformance:    func(DateRange) []dataview.Record { return Records(AgentPerformances()) },
		DatasetSLAMetrics:          func(DateRange) []dataview.Record { return Records(SLAMetrics()) },
		DatasetCallVolumeByHour:    func(DateRange) []dataview.Record { return Records(p.CallVolumeByHour()) },
	}
	return p
}

// Datasets lists the served dataset names.
func (p *MockProvider) Datasets() []string {
	names := make([]string, 0, len(p.datasets))
	for name := range p.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dataset returns a fresh snapshot of the named dataset.
func (p *MockProvider) Dataset(ctx context.Context, name string, r DateRange) ([]dataview.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gen, ok := p.datasets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	if r == "" {
		r = DefaultRange
	}
	return gen(r), nil
}

// KPIs returns the summary tiles for a page.
func (p *MockProvider) KPIs(ctx context.Context, page string, r DateRange) ([]KPI, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := r.Multiplier()
	switch page {
	case PageOverview:
		return []KPI{
			{Label: "Orders Processed", Value: p.scaled(2847, m), Change: 12.5, ChangeLabel: "vs prev period", Trend: TrendUp, Positive: true},
			{Label: "On-Time Shipment", Value: "96.3%", Change: 1.8, ChangeLabel: "vs prev period", Trend: TrendUp, Positive: true},
			{Label: "Order Accuracy", Value: "99.2%", Change: 0.3, ChangeLabel: "vs prev period", Trend: TrendUp, Positive: true},
			{Label: "Avg Fulfillment Time", Value: "1.4 hrs", Change: -8.2, ChangeLabel: "vs prev period", Trend: TrendDown, Positive: true},
			{Label: "Customer Calls", Value: p.scaled(1263, m), Change: -5.1, ChangeLabel: "vs prev period", Trend: TrendDown, Positive: true},
			{Label: "RMA Rate", Value: "2.1%", Change: -0.4, ChangeLabel: "vs prev period", Trend: TrendDown, Positive: true},
		}, nil
	case PageWarehouse:
		return []KPI{
			{Label: "Units Picked", Value: p.scaled(18420, m), Change: 8.3, ChangeLabel: "vs prev period", Trend: TrendUp, Positive: true},
			{Label: "Pick Rate/Hr", Value: "142", Change: 5.1, ChangeLabel: "vs prev period", Trend: TrendUp, Positive: true},
			{Label: "Dock-to-Stock", Value: "2.8 hrs", Change: -12, ChangeLabel: "vs prev period", Trend: TrendDown, Positive: true},
			{Label: "Utilization", Value: "84.2%", Change: 2.1, ChangeLabel: "vs prev period", Trend: TrendUp, Positive: true},
		}, nil
	case PageCustomerService:
		return []KPI{
			{Label: "Total Calls", Value: p.scaled(2847, m), Change: 4.2, ChangeLabel: "vs prev period", Trend: TrendUp, Positive: false},
			{Label: "Avg Wait Time", Value: "2.4 min", Change: -8.5, ChangeLabel: "vs prev period", Trend: TrendDown, Positive: true},
			{Label: "CSAT Score", Value: "4.6/5", Change: 3.1, ChangeLabel: "vs prev period", Trend: TrendUp, Positive: true},
			{Label: "First Call Resolution", Value: "87.3%", Change: 2.8, ChangeLabel: "vs prev period", Trend: TrendUp, Positive: true},
		}, nil
	case PageReturns:
		return []KPI{
			{Label: "Open RMAs", Value: "34", Change: -8.1, ChangeLabel: "vs prev period", Trend: TrendDown, Positive: true},
			{Label: "RMA Rate", Value: "2.1%", Change: -0.4, ChangeLabel: "vs prev period", Trend: TrendDown, Positive: true},
			{Label: "Avg Resolution", Value: "4.2 days", Change: -15, ChangeLabel: "vs prev period", Trend: TrendDown, Positive: true},
			{Label: "Recovery Rate", Value: "72%", Change: 5.3, ChangeLabel: "vs prev period", Trend: TrendUp, Positive: true},
		}, nil
	case PageInventory:
		return []KPI{
			{Label: "Total SKUs", Value: "4,832", Change: 3.2, ChangeLabel: "vs prev month", Trend: TrendUp, Positive: true},
			{Label: "Total Value", Value: "$6.5M", Change: 1.8, ChangeLabel: "vs prev month", Trend: TrendUp, Positive: true},
			{Label: "Avg Turnover", Value: "8.4x", Change: 6.2, ChangeLabel: "vs prev quarter", Trend: TrendUp, Positive: true},
			{Label: "Stockout Rate", Value: "1.3%", Change: -0.5, ChangeLabel: "vs prev month", Trend: TrendDown, Positive: true},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, page)
	}
}

func (p *MockProvider) scaled(base, m float64) string {
	return p.formatter.Display(dataview.NumberValue(math.Round(base * m)))
}

// float returns a uniform value in [0, 1).
func (p *MockProvider) float() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64()
}

// intn returns a uniform value in [0, n).
func (p *MockProvider) intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

func (p *MockProvider) pick(options []string) string {
	return options[p.intn(len(options))]
}

func round(v float64) int {
	return int(math.Round(v))
}

var _ Provider = (*MockProvider)(nil)
