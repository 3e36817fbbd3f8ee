package dataview

import (
	"fmt"
	"strings"
)

// FilterOption is one selectable value of a chart filter.
type FilterOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// FilterDef declares a chart filter control.
type FilterDef struct {
	Key     string         `json:"key" yaml:"key"`
	Label   string         `json:"label" yaml:"label"`
	Options []FilterOption `json:"options" yaml:"options"`
}

// Allows reports whether value is AllOption or one of the declared options.
// A filter without options accepts any value.
func (d FilterDef) Allows(value string) bool {
	if value == AllOption || len(d.Options) == 0 {
		return true
	}
	for _, opt := range d.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Values returns the option values in declaration order.
func (d FilterDef) Values() []string {
	out := make([]string, len(d.Options))
	for i, opt := range d.Options {
		out[i] = opt.Value
	}
	return out
}

// Options builds filter options whose labels equal their values.
func Options(values ...string) []FilterOption {
	out := make([]FilterOption, len(values))
	for i, v := range values {
		out[i] = FilterOption{Value: v, Label: v}
	}
	return out
}

// ChartOption configures a ChartView.
type ChartOption func(*ChartView)

// WithFilters declares the filter controls of the chart.
func WithFilters(defs ...FilterDef) ChartOption {
	return func(v *ChartView) {
		v.filters = append([]FilterDef(nil), defs...)
	}
}

// WithChartFormatter sets the formatter used by the data-table search.
func WithChartFormatter(f Formatter) ChartOption {
	return func(v *ChartView) {
		v.formatter = f
	}
}

// WithChartFields declares the field order reported with the visible series.
func WithChartFields(fields ...string) ChartOption {
	return func(v *ChartView) {
		v.fields = append([]string(nil), fields...)
	}
}

// ChartView derives visible series from an immutable source collection.
type ChartView struct {
	source    []Record
	filters   []FilterDef
	fields    []string
	formatter Formatter
}

// NewChartView returns a view over source.
func NewChartView(source []Record, opts ...ChartOption) *ChartView {
	view := &ChartView{
		source:    CloneRecords(source),
		formatter: DefaultFormatter(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(view)
		}
	}
	view.fields = MergeKeys(view.fields, view.source)
	return view
}

// Len returns the source length.
func (v *ChartView) Len() int { return len(v.source) }

// Source returns a copy of the source collection.
func (v *ChartView) Source() []Record { return CloneRecords(v.source) }

// Filters returns the declared filter controls.
func (v *ChartView) Filters() []FilterDef { return append([]FilterDef(nil), v.filters...) }

// Fields returns the field order of the series.
func (v *ChartView) Fields() []string { return append([]string(nil), v.fields...) }

// NewState returns the initial state: no filters, no search, full limit.
func (v *ChartView) NewState() ChartState {
	return NewChartState(len(v.source))
}

// Filter returns the declared filter for key.
func (v *ChartView) Filter(key string) (FilterDef, bool) {
	for _, def := range v.filters {
		if def.Key == key {
			return def, true
		}
	}
	return FilterDef{}, false
}

// WithFilter validates key and value against the declared filters and applies them.
func (v *ChartView) WithFilter(state ChartState, key, value string) (ChartState, error) {
	def, ok := v.Filter(key)
	if !ok {
		return state, fmt.Errorf("%w: %q", ErrUnknownFilter, key)
	}
	if !def.Allows(value) {
		return state, fmt.Errorf("%w: %s=%q (want one of %s)", ErrUnknownOption, key, value, strings.Join(append([]string{AllOption}, def.Values()...), ", "))
	}
	return state.WithFilter(key, value), nil
}

// WithLimit clamps n to the bounds of this view's source.
func (v *ChartView) WithLimit(state ChartState, n int) ChartState {
	return state.WithLimit(n, len(v.source))
}

// VisibleSeries applies the exact-match filters then truncates to the limit.
// A non-positive limit is treated as the full length.
func (v *ChartView) VisibleSeries(state ChartState) []Record {
	filtered := FilterExact(v.source, state.Filters)
	return Truncate(filtered, state.Limit)
}

// SeriesView is the visible series plus the metadata shown alongside a chart.
type SeriesView struct {
	Records    []Record
	Shown      int
	Total      int
	Fields     []string
	HasFilters bool
}

// Summary renders the "Showing N of M records" caption.
func (s SeriesView) Summary() string {
	return fmt.Sprintf("Showing %d of %d records", s.Shown, s.Total)
}

// Describe derives the visible series with counts and field list.
func (v *ChartView) Describe(state ChartState) SeriesView {
	records := v.VisibleSeries(state)
	return SeriesView{
		Records:    records,
		Shown:      len(records),
		Total:      len(v.source),
		Fields:     v.Fields(),
		HasFilters: state.Filters.HasActive(),
	}
}

// DataTable applies the state's search to the visible series without pagination.
func (v *ChartView) DataTable(state ChartState) TablePage {
	visible := v.VisibleSeries(state)
	needle := Needle(state.Search)
	rows := AssignIdentity(visible)
	matched := make([]Row, 0, len(rows))
	for _, row := range rows {
		if matchesSearch(row.Record, needle, nil, v.formatter) {
			matched = append(matched, row)
		}
	}
	return TablePage{
		Rows:         matched,
		Fields:       v.Fields(),
		TotalMatched: len(matched),
		TotalSource:  len(visible),
		PageSize:     len(matched),
	}
}
