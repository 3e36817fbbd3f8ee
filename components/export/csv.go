package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/goliatone/go-opsboard/components/dataview"
)

// CSVEncoder writes display strings, one header row then one row per record.
type CSVEncoder struct {
	formatter dataview.Formatter
}

// NewCSVEncoder returns a CSV encoder using f for number display.
func NewCSVEncoder(f dataview.Formatter) *CSVEncoder {
	return &CSVEncoder{formatter: f}
}

func (e *CSVEncoder) Format() Format      { return FormatCSV }
func (e *CSVEncoder) Extension() string   { return "csv" }
func (e *CSVEncoder) ContentType() string { return "text/csv" }

func (e *CSVEncoder) Encode(ctx context.Context, buf *bytes.Buffer, table Table) error {
	w := csv.NewWriter(buf)
	header := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col.Label
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := make([]string, len(row))
		for i, v := range row {
			line[i] = e.formatter.Display(v)
		}
		if err := w.Write(line); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
