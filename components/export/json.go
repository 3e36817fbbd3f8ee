package export

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/goliatone/go-opsboard/components/dataview"
)

// JSONEncoder writes an array of objects keyed by header label with raw values.
// Missing values encode as null.
type JSONEncoder struct{}

// NewJSONEncoder returns a JSON encoder.
func NewJSONEncoder() *JSONEncoder { return &JSONEncoder{} }

func (e *JSONEncoder) Format() Format      { return FormatJSON }
func (e *JSONEncoder) Extension() string   { return "json" }
func (e *JSONEncoder) ContentType() string { return "application/json" }

func (e *JSONEncoder) Encode(ctx context.Context, buf *bytes.Buffer, table Table) error {
	rows := make([]orderedRow, 0, len(table.Rows))
	for _, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows = append(rows, orderedRow{columns: table.Columns, values: row})
	}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// orderedRow marshals as an object whose keys follow column order.
type orderedRow struct {
	columns []Column
	values  []dataview.Value
}

func (r orderedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i].Raw())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
