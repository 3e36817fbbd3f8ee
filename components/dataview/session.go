package dataview

import (
	"fmt"
	"strings"
	"sync"
)

// Scope selects which derived set a snapshot captures.
type Scope string

const (
	// ScopeVisible captures what is on screen: the grid page or the chart series.
	ScopeVisible Scope = "visible"
	// ScopeMatched captures every search match: all grid pages, or the chart data-table rows.
	ScopeMatched Scope = "matched"
)

// ParseScope validates a scope name. Empty selects ScopeVisible.
func ParseScope(name string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(name))) {
	case "", ScopeVisible:
		return ScopeVisible, nil
	case ScopeMatched:
		return ScopeMatched, nil
	default:
		return ScopeVisible, fmt.Errorf("%w: %q", ErrUnknownScope, name)
	}
}

// Snapshot is an immutable copy of a derived set taken at one instant.
type Snapshot struct {
	Records []Record
	Fields  []string
}

// TableSession holds the mount-scoped state of a grid and exposes its events.
type TableSession struct {
	mu    sync.RWMutex
	view  *TableView
	state TableState
}

// NewTableSession mounts a grid with default state.
func NewTableSession(view *TableView, pageSize int) *TableSession {
	return &TableSession{view: view, state: NewTableState(pageSize)}
}

// View returns the underlying view.
func (s *TableSession) View() *TableView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// State returns the current state.
func (s *TableSession) State() TableState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// OnSearchChange sets the search text and returns to the first page.
func (s *TableSession) OnSearchChange(text string) TablePage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithSearch(text)
	return s.view.VisibleRows(s.state)
}

// OnPageChange moves to page p.
func (s *TableSession) OnPageChange(p int) (TablePage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.WithPage(p)
	if err != nil {
		return s.view.VisibleRows(s.state), err
	}
	s.state = next
	return s.view.VisibleRows(s.state), nil
}

// OnPageSizeChange changes the page size.
func (s *TableSession) OnPageSizeChange(n int) (TablePage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.WithPageSize(n)
	if err != nil {
		return s.view.VisibleRows(s.state), err
	}
	s.state = next
	return s.view.VisibleRows(s.state), nil
}

// Visible derives the current page.
func (s *TableSession) Visible() TablePage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.VisibleRows(s.state)
}

// Snapshot copies the rows in scope for export.
func (s *TableSession) Snapshot(scope Scope) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch scope {
	case "", ScopeVisible:
		page := s.view.VisibleRows(s.state)
		return Snapshot{Records: page.Records(), Fields: page.Fields}, nil
	case ScopeMatched:
		rows := s.view.Matched(s.state.Search)
		records := make([]Record, len(rows))
		for i, row := range rows {
			records[i] = row.Record
		}
		return Snapshot{Records: records, Fields: s.view.Fields()}, nil
	default:
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}
}

// Reload swaps in a fresh view. Search and page size are kept, the page resets.
func (s *TableSession) Reload(view *TableView) TablePage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
	s.state.Pagination.Page = 0
	return s.view.VisibleRows(s.state)
}

// ChartSession holds the mount-scoped state of a chart and exposes its events.
type ChartSession struct {
	mu    sync.RWMutex
	view  *ChartView
	state ChartState
}

// NewChartSession mounts a chart with default state.
func NewChartSession(view *ChartView) *ChartSession {
	return &ChartSession{view: view, state: view.NewState()}
}

// View returns the underlying view.
func (s *ChartSession) View() *ChartView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// State returns the current state.
func (s *ChartSession) State() ChartState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// OnFilterChange sets one filter. The limit is kept.
func (s *ChartSession) OnFilterChange(key, value string) (SeriesView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.view.WithFilter(s.state, key, value)
	if err != nil {
		return s.view.Describe(s.state), err
	}
	s.state = next
	return s.view.Describe(s.state), nil
}

// OnClearFilters drops every filter.
func (s *ChartSession) OnClearFilters() SeriesView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.ClearFilters()
	return s.view.Describe(s.state)
}

// OnLimitChange sets the data point limit, clamped to the source bounds.
func (s *ChartSession) OnLimitChange(n int) SeriesView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.view.WithLimit(s.state, n)
	return s.view.Describe(s.state)
}

// OnSearchChange sets the data-table search text.
func (s *ChartSession) OnSearchChange(text string) TablePage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithSearch(text)
	return s.view.DataTable(s.state)
}

// OnVariantChange switches between default and stacked layouts.
func (s *ChartSession) OnVariantChange(v Variant) SeriesView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithVariant(v)
	return s.view.Describe(s.state)
}

// Visible derives the current series.
func (s *ChartSession) Visible() SeriesView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.Describe(s.state)
}

// DataTable derives the data-table rows.
func (s *ChartSession) DataTable() TablePage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.DataTable(s.state)
}

// Snapshot copies the series in scope for export.
func (s *ChartSession) Snapshot(scope Scope) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch scope {
	case "", ScopeVisible:
		return Snapshot{Records: CloneRecords(s.view.VisibleSeries(s.state)), Fields: s.view.Fields()}, nil
	case ScopeMatched:
		table := s.view.DataTable(s.state)
		return Snapshot{Records: table.Records(), Fields: table.Fields}, nil
	default:
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownScope, scope)
	}
}

// Reload swaps in a fresh view. Filters and search are kept, the limit resets to the new length.
func (s *ChartSession) Reload(view *ChartView) SeriesView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
	s.state = s.state.WithLimit(view.Len(), view.Len())
	return s.view.Describe(s.state)
}
