package dataview

import (
	"fmt"
	"strings"
)

const (
	// AllOption is the filter sentinel meaning "no constraint on this key".
	AllOption = "all"
	// MinDataPoints is the lower bound of the chart data point limit.
	MinDataPoints = 5
	// DefaultPageSize is the grid page size used when none is configured.
	DefaultPageSize = 10
)

// FilterState is an insertion-ordered mapping from filter key to selected value.
// A key set to AllOption is retained but imposes no constraint.
type FilterState struct {
	keys   []string
	values map[string]string
}

// NewFilterState builds a filter state from key/value pairs applied in order.
func NewFilterState(pairs ...string) FilterState {
	state := FilterState{}
	for i := 0; i+1 < len(pairs); i += 2 {
		state = state.With(pairs[i], pairs[i+1])
	}
	return state
}

// With returns a copy with key set to value.
func (f FilterState) With(key, value string) FilterState {
	out := FilterState{
		keys:   append([]string(nil), f.keys...),
		values: make(map[string]string, len(f.values)+1),
	}
	for k, v := range f.values {
		out.values[k] = v
	}
	if _, ok := out.values[key]; !ok {
		out.keys = append(out.keys, key)
	}
	out.values[key] = value
	return out
}

// Get returns the selected value for key. Unset keys report AllOption.
func (f FilterState) Get(key string) string {
	if v, ok := f.values[key]; ok {
		return v
	}
	return AllOption
}

// Keys returns the set keys in insertion order.
func (f FilterState) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Len returns the number of set keys, including those set to AllOption.
func (f FilterState) Len() int { return len(f.keys) }

// IsEmpty reports whether no key has been set.
func (f FilterState) IsEmpty() bool { return len(f.keys) == 0 }

// Active returns the constraints that narrow the data, in insertion order.
func (f FilterState) Active() []Selection {
	out := make([]Selection, 0, len(f.keys))
	for _, key := range f.keys {
		value := f.values[key]
		if value == AllOption {
			continue
		}
		out = append(out, Selection{Key: key, Value: value})
	}
	return out
}

// HasActive reports whether any constraint narrows the data.
func (f FilterState) HasActive() bool {
	return len(f.Active()) > 0
}

// String renders the state as k=v pairs.
func (f FilterState) String() string {
	parts := make([]string, 0, len(f.keys))
	for _, key := range f.keys {
		parts = append(parts, key+"="+f.values[key])
	}
	return strings.Join(parts, ",")
}

// Selection is one key/value pair of a filter state.
type Selection struct {
	Key   string
	Value string
}

// Pagination selects a window of matched rows.
type Pagination struct {
	Page     int
	PageSize int
}

// Bounds returns the half-open slice bounds for total matched rows.
// Pages past the end produce an empty window.
func (p Pagination) Bounds(total int) (int, int) {
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 || p.Page >= (total+size-1)/size {
		return total, total
	}
	start := p.Page * size
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}

// PageCount returns the number of pages needed for total rows.
func (p Pagination) PageCount(total int) int {
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// TableState is the view state of a grid. Transitions return new values.
type TableState struct {
	Search     string
	Pagination Pagination
}

// NewTableState returns the initial grid state.
func NewTableState(pageSize int) TableState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return TableState{Pagination: Pagination{PageSize: pageSize}}
}

// WithSearch sets the search text and resets the page to 0.
func (s TableState) WithSearch(text string) TableState {
	s.Search = text
	s.Pagination.Page = 0
	return s
}

// WithPage moves to page p.
func (s TableState) WithPage(p int) (TableState, error) {
	if p < 0 {
		return s, fmt.Errorf("%w: %d", ErrInvalidPage, p)
	}
	s.Pagination.Page = p
	return s, nil
}

// WithPageSize changes the page size and keeps the page index.
func (s TableState) WithPageSize(n int) (TableState, error) {
	if n <= 0 {
		return s, fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
	}
	s.Pagination.PageSize = n
	return s, nil
}

// Variant selects the series layout for bar and area charts.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantStacked Variant = "stacked"
)

// ParseVariant validates a variant name. Empty selects VariantDefault.
func ParseVariant(name string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(name))) {
	case "", VariantDefault:
		return VariantDefault, nil
	case VariantStacked:
		return VariantStacked, nil
	default:
		return VariantDefault, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
}

// ChartState is the view state of a chart. Transitions return new values.
type ChartState struct {
	Filters FilterState
	Limit   int
	Search  string
	Variant Variant
}

// NewChartState returns the initial chart state for a source of sourceLen records.
// The limit starts at the full length.
func NewChartState(sourceLen int) ChartState {
	if sourceLen < 0 {
		sourceLen = 0
	}
	return ChartState{Limit: sourceLen, Variant: VariantDefault}
}

// WithFilter sets one filter key. The limit is left untouched.
func (s ChartState) WithFilter(key, value string) ChartState {
	s.Filters = s.Filters.With(key, value)
	return s
}

// ClearFilters drops every filter. Limit and search are left untouched.
func (s ChartState) ClearFilters() ChartState {
	if s.Filters.IsEmpty() {
		return s
	}
	s.Filters = FilterState{}
	return s
}

// WithLimit sets the data point limit clamped to [min(MinDataPoints, sourceLen), sourceLen].
func (s ChartState) WithLimit(n, sourceLen int) ChartState {
	s.Limit = ClampLimit(n, sourceLen)
	return s
}

// WithSearch sets the data-table search text.
func (s ChartState) WithSearch(text string) ChartState {
	s.Search = text
	return s
}

// WithVariant sets the series layout.
func (s ChartState) WithVariant(v Variant) ChartState {
	s.Variant = v
	return s
}

// ClampLimit bounds a requested data point limit by the source length.
func ClampLimit(n, sourceLen int) int {
	if sourceLen <= 0 {
		return 0
	}
	lower := MinDataPoints
	if sourceLen < lower {
		lower = sourceLen
	}
	if n < lower {
		return lower
	}
	if n > sourceLen {
		return sourceLen
	}
	return n
}
