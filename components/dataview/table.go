package dataview

import "strconv"

// NoResultsMessage is shown when a derivation yields zero rows.
const NoResultsMessage = "No results found."

// Row is a record with the identity assigned before filtering.
type Row struct {
	ID     string
	Index  int
	Record Record
}

// TablePage is one derived page of a grid.
type TablePage struct {
	Rows         []Row
	Fields       []string
	TotalMatched int
	TotalSource  int
	Page         int
	PageSize     int
}

// Empty reports whether the page has no rows to show.
func (p TablePage) Empty() bool { return len(p.Rows) == 0 }

// PageCount returns the number of pages over the matched rows.
func (p TablePage) PageCount() int {
	return Pagination{Page: p.Page, PageSize: p.PageSize}.PageCount(p.TotalMatched)
}

// Records returns the records of the page in order.
func (p TablePage) Records() []Record {
	out := make([]Record, len(p.Rows))
	for i, row := range p.Rows {
		out[i] = row.Record
	}
	return out
}

// TableOption configures a TableView.
type TableOption func(*TableView)

// WithSearchFields restricts search to the named fields.
func WithSearchFields(fields ...string) TableOption {
	return func(v *TableView) {
		v.searchFields = append([]string(nil), fields...)
	}
}

// WithColumns declares the column order used for page metadata and export.
func WithColumns(fields ...string) TableOption {
	return func(v *TableView) {
		v.columns = append([]string(nil), fields...)
	}
}

// WithFormatter sets the display formatter used for search matching.
func WithFormatter(f Formatter) TableOption {
	return func(v *TableView) {
		v.formatter = f
	}
}

// TableView derives visible pages from an immutable source collection.
type TableView struct {
	rows         []Row
	source       []Record
	searchFields []string
	columns      []string
	formatter    Formatter
}

// NewTableView assigns identities to source and returns a view over it.
func NewTableView(source []Record, opts ...TableOption) *TableView {
	view := &TableView{
		source:    CloneRecords(source),
		formatter: DefaultFormatter(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(view)
		}
	}
	view.rows = AssignIdentity(view.source)
	view.columns = MergeKeys(view.columns, view.source)
	return view
}

// AssignIdentity wraps records with their own id, falling back to the source index.
func AssignIdentity(records []Record) []Row {
	rows := make([]Row, len(records))
	for idx, rec := range records {
		id, ok := rec.ID()
		if !ok {
			id = strconv.Itoa(idx)
		}
		rows[idx] = Row{ID: id, Index: idx, Record: rec}
	}
	return rows
}

// Len returns the source length.
func (v *TableView) Len() int { return len(v.source) }

// Source returns a copy of the source collection.
func (v *TableView) Source() []Record { return CloneRecords(v.source) }

// Fields returns the column order.
func (v *TableView) Fields() []string { return append([]string(nil), v.columns...) }

// SearchFields returns the fields consulted by search. Empty means every field.
func (v *TableView) SearchFields() []string { return append([]string(nil), v.searchFields...) }

// Formatter returns the display formatter.
func (v *TableView) Formatter() Formatter { return v.formatter }

// Matches reports whether rec contains the search text in one of its searchable fields.
func (v *TableView) Matches(rec Record, search string) bool {
	return matchesSearch(rec, Needle(search), v.searchFields, v.formatter)
}

// Matched returns every row matching search in source order.
func (v *TableView) Matched(search string) []Row {
	needle := Needle(search)
	if needle == "" {
		return append([]Row(nil), v.rows...)
	}
	out := make([]Row, 0, len(v.rows))
	for _, row := range v.rows {
		if matchesSearch(row.Record, needle, v.searchFields, v.formatter) {
			out = append(out, row)
		}
	}
	return out
}

// VisibleRows filters by search then slices the requested page.
func (v *TableView) VisibleRows(state TableState) TablePage {
	matched := v.Matched(state.Search)
	size := state.Pagination.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	start, end := state.Pagination.Bounds(len(matched))
	return TablePage{
		Rows:         matched[start:end:end],
		Fields:       v.Fields(),
		TotalMatched: len(matched),
		TotalSource:  len(v.source),
		Page:         state.Pagination.Page,
		PageSize:     size,
	}
}

func matchesSearch(rec Record, needle string, fields []string, f Formatter) bool {
	if needle == "" {
		return true
	}
	if len(fields) == 0 {
		for _, field := range rec.fields {
			if ContainsFold(needle, f.Display(field.Value)) {
				return true
			}
		}
		return false
	}
	for _, key := range fields {
		if ContainsFold(needle, f.Display(rec.Get(key))) {
			return true
		}
	}
	return false
}
