package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-opsboard/components/dataview"
)

const (
	// SheetName is the worksheet that holds exported rows.
	SheetName = "Data"
	// NumberFormat keeps numeric cells numeric while grouping thousands.
	NumberFormat = "#,##0.###"
	defaultSheet = "Sheet1"
)

// XLSXEncoder writes a single-sheet workbook. Numeric values stay numeric
// cells, missing values are left blank.
type XLSXEncoder struct {
	numberFormat string
}

// NewXLSXEncoder returns a workbook encoder.
func NewXLSXEncoder() *XLSXEncoder {
	return &XLSXEncoder{numberFormat: NumberFormat}
}

func (e *XLSXEncoder) Format() Format    { return FormatXLSX }
func (e *XLSXEncoder) Extension() string { return "xlsx" }
func (e *XLSXEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *XLSXEncoder) Encode(ctx context.Context, buf *bytes.Buffer, table Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	numFmt := e.numberFormat
	numberStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("number style: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col.Label
	}
	if err := writeRow(sw, 1, header); err != nil {
		return err
	}
	for r, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		cells := make([]interface{}, len(row))
		for c, v := range row {
			cells[c] = xlsxCell(v, numberStyle)
		}
		if err := writeRow(sw, r+2, cells); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if _, err := f.WriteTo(buf); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(sw *excelize.StreamWriter, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := sw.SetRow(cell, values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func xlsxCell(v dataview.Value, numberStyle int) interface{} {
	if n, ok := v.Float(); ok {
		return excelize.Cell{StyleID: numberStyle, Value: n}
	}
	if v.IsMissing() {
		return nil
	}
	return v.String()
}
