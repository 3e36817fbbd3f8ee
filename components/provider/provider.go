package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-opsboard/components/dataview"
)

var (
	// ErrUnknownDataset indicates a dataset name no generator serves.
	ErrUnknownDataset = errors.New("provider: unknown dataset")
	// ErrUnknownRange indicates an unsupported date range.
	ErrUnknownRange = errors.New("provider: unknown date range")
	// ErrUnknownPage indicates a page without KPI tiles.
	ErrUnknownPage = errors.New("provider: unknown page")
)

// DateRange is the reporting window selected for the dashboard.
type DateRange string

const (
	Range7D  DateRange = "7d"
	Range30D DateRange = "30d"
	Range90D DateRange = "90d"
	Range12M DateRange = "12m"

	// DefaultRange is used when no range is selected.
	DefaultRange = Range30D
)

// Ranges lists the supported ranges in display order.
var Ranges = []DateRange{Range7D, Range30D, Range90D, Range12M}

// ParseDateRange validates a range name. Empty selects DefaultRange.
func ParseDateRange(value string) (DateRange, error) {
	r := DateRange(strings.ToLower(strings.TrimSpace(value)))
	if r == "" {
		return DefaultRange, nil
	}
	for _, known := range Ranges {
		if r == known {
			return r, nil
		}
	}
	return DefaultRange, fmt.Errorf("%w: %q", ErrUnknownRange, value)
}

// Label returns the human readable range.
func (r DateRange) Label() string {
	switch r {
	case Range7D:
		return "Last 7 days"
	case Range30D:
		return "Last 30 days"
	case Range90D:
		return "Last 90 days"
	case Range12M:
		return "Last 12 months"
	default:
		return string(r)
	}
}

// Multiplier scales period totals relative to the 30 day baseline.
func (r DateRange) Multiplier() float64 {
	switch r {
	case Range7D:
		return 0.7
	case Range90D:
		return 1.2
	case Range12M:
		return 1.5
	default:
		return 1
	}
}

// Trend is the direction of a KPI change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// KPI is one summary tile.
type KPI struct {
	Label       string  `json:"label"`
	Value       string  `json:"value"`
	Change      float64 `json:"change"`
	ChangeLabel string  `json:"change_label"`
	Trend       Trend   `json:"trend"`
	// Positive reports whether the trend direction is good news.
	Positive bool `json:"positive"`
}

// Provider supplies immutable snapshots of uniformly shaped records.
type Provider interface {
	Dataset(ctx context.Context, name string, r DateRange) ([]dataview.Record, error)
	KPIs(ctx context.Context, page string, r DateRange) ([]KPI, error)
}

// Recorder converts a typed row into a record.
type Recorder interface {
	Record() dataview.Record
}

// Records converts typed rows into records preserving order.
func Records[T Recorder](rows []T) []dataview.Record {
	out := make([]dataview.Record, len(rows))
	for i, row := range rows {
		out[i] = row.Record()
	}
	return out
}
