// Package export serializes row sets into workbooks and hands them to a saver.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WorkbookWriter turns rows into a single-sheet workbook file.
type WorkbookWriter interface {
	Write(rows [][]string, sheet string) ([]byte, error)
}

// XLSXWriter writes .xlsx workbooks with excelize. Every cell is stored as a string.
type XLSXWriter struct {
	// ColWidth is applied to every used column when positive.
	ColWidth float64
}

// Write implements WorkbookWriter.
func (w XLSXWriter) Write(rows [][]string, sheet string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with "Sheet1".
	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
	} else {
		sheet = "Sheet1"
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to open stream writer: %w", err)
	}

	if cols := maxCols(rows); w.ColWidth > 0 && cols > 0 {
		if err := sw.SetColWidth(1, cols, w.ColWidth); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, row := range rows {
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func maxCols(rows [][]string) int {
	n := 0
	for _, r := range rows {
		if len(r) > n {
			n = len(r)
		}
	}
	return n
}
