package dashboard

import "github.com/goliatone/go-opsboard/components/dataview"

// WidgetKind selects how a widget shapes and presents its dataset.
type WidgetKind string

const (
	KindChart WidgetKind = "chart"
	KindGrid  WidgetKind = "grid"
	KindAlert WidgetKind = "alert"
	KindList  WidgetKind = "list"
)

// ChartType names the go-echarts series used for a chart widget.
type ChartType string

const (
	ChartBar     ChartType = "bar"
	ChartLine    ChartType = "line"
	ChartArea    ChartType = "area"
	ChartPie     ChartType = "pie"
	ChartScatter ChartType = "scatter"
)

// Stackable reports whether the stacked variant applies to the chart type.
func (c ChartType) Stackable() bool {
	return c == ChartBar || c == ChartArea
}

// PageDefinition describes one dashboard page and its widgets in display order.
type PageDefinition struct {
	Code        string             `json:"code" yaml:"code"`
	Title       string             `json:"title" yaml:"title"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Order       int                `json:"order,omitempty" yaml:"order,omitempty"`
	KPIs        bool               `json:"kpis,omitempty" yaml:"kpis,omitempty"`
	Widgets     []WidgetDefinition `json:"widgets" yaml:"widgets"`
}

// Widget returns the widget with the given code.
func (p PageDefinition) Widget(code string) (WidgetDefinition, bool) {
	for _, w := range p.Widgets {
		if w.Code == code {
			return w, true
		}
	}
	return WidgetDefinition{}, false
}

// WidgetDefinition binds a dataset to a chart, grid, alert or list presentation.
type WidgetDefinition struct {
	Code        string     `json:"code" yaml:"code"`
	Kind        WidgetKind `json:"kind" yaml:"kind"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Dataset     string     `json:"dataset" yaml:"dataset"`
	Chart       *ChartSpec `json:"chart,omitempty" yaml:"chart,omitempty"`
	Grid        *GridSpec  `json:"grid,omitempty" yaml:"grid,omitempty"`
	Alert       *AlertSpec `json:"alert,omitempty" yaml:"alert,omitempty"`
	List        *ListSpec  `json:"list,omitempty" yaml:"list,omitempty"`
}

// Exportable reports whether the widget offers a spreadsheet export.
func (w WidgetDefinition) Exportable() bool {
	switch w.Kind {
	case KindChart:
		return true
	case KindGrid:
		return w.Grid == nil || w.Grid.Export == nil || *w.Grid.Export
	default:
		return false
	}
}

// ChartSpec configures a chart widget.
type ChartSpec struct {
	Type     ChartType            `json:"type" yaml:"type"`
	XAxisKey string               `json:"x_axis_key,omitempty" yaml:"x_axis_key,omitempty"`
	YAxisKey string               `json:"y_axis_key,omitempty" yaml:"y_axis_key,omitempty"`
	DataKeys []string             `json:"data_keys,omitempty" yaml:"data_keys,omitempty"`
	ValueKey string               `json:"value_key,omitempty" yaml:"value_key,omitempty"`
	LabelKey string               `json:"label_key,omitempty" yaml:"label_key,omitempty"`
	GroupKey string               `json:"group_key,omitempty" yaml:"group_key,omitempty"`
	ColorKey string               `json:"color_key,omitempty" yaml:"color_key,omitempty"`
	Colors   []string             `json:"colors,omitempty" yaml:"colors,omitempty"`
	Filters  []dataview.FilterDef `json:"filters,omitempty" yaml:"filters,omitempty"`
	Trend    *float64             `json:"trend,omitempty" yaml:"trend,omitempty"`
	Controls bool                 `json:"controls,omitempty" yaml:"controls,omitempty"`
	Height   int                  `json:"height,omitempty" yaml:"height,omitempty"`
}

// Fields returns the record keys the chart reads, axis keys first.
func (c *ChartSpec) Fields() []string {
	if c == nil {
		return nil
	}
	var out []string
	for _, key := range []string{c.XAxisKey, c.LabelKey, c.YAxisKey, c.ValueKey} {
		if key != "" {
			out = append(out, key)
		}
	}
	return append(out, c.DataKeys...)
}

// ColumnSpec describes one grid column.
type ColumnSpec struct {
	Field  string `json:"field" yaml:"field"`
	Header string `json:"header,omitempty" yaml:"header,omitempty"`
}

// GridSpec configures a searchable, paginated grid widget.
type GridSpec struct {
	Columns      []ColumnSpec `json:"columns,omitempty" yaml:"columns,omitempty"`
	SearchFields []string     `json:"search_fields,omitempty" yaml:"search_fields,omitempty"`
	PageSize     int          `json:"page_size,omitempty" yaml:"page_size,omitempty"`
	Export       *bool        `json:"export,omitempty" yaml:"export,omitempty"`
}

// Fields returns the configured column fields in order.
func (g *GridSpec) Fields() []string {
	if g == nil {
		return nil
	}
	out := make([]string, 0, len(g.Columns))
	for _, col := range g.Columns {
		out = append(out, col.Field)
	}
	return out
}

// AlertSpec raises an alert when records match Field == Value.
type AlertSpec struct {
	Field     string `json:"field" yaml:"field"`
	Value     string `json:"value" yaml:"value"`
	NameField string `json:"name_field" yaml:"name_field"`
	Max       int    `json:"max,omitempty" yaml:"max,omitempty"`
	// Subject overrides the "items at <value> stock levels" wording.
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
}

// Noun returns the phrase that follows the match count in the alert message.
func (a *AlertSpec) Noun() string {
	if a == nil {
		return "items"
	}
	if a.Subject != "" {
		return a.Subject
	}
	return "items at " + a.Value + " stock levels"
}

// ListSpec renders records as a ranked list with an optional progress bar.
type ListSpec struct {
	LabelField    string  `json:"label_field" yaml:"label_field"`
	ValueField    string  `json:"value_field" yaml:"value_field"`
	DetailField   string  `json:"detail_field,omitempty" yaml:"detail_field,omitempty"`
	BadgeField    string  `json:"badge_field,omitempty" yaml:"badge_field,omitempty"`
	ProgressField string  `json:"progress_field,omitempty" yaml:"progress_field,omitempty"`
	ProgressMax   float64 `json:"progress_max,omitempty" yaml:"progress_max,omitempty"`
	Limit         int     `json:"limit,omitempty" yaml:"limit,omitempty"`
}
