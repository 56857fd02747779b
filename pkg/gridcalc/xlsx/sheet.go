package xlsx

import (
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/address"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/formula"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/store"
	"github.com/xuri/excelize/v2"
)

// ReadDimensions returns the custom column widths and row heights, in
// pixels, of the first rows x cols area of a sheet.
func ReadDimensions(f *excelize.File, sheetName string, rows, cols int) (widths, heights map[int]float64, err error) {
	widths = make(map[int]float64)
	heights = make(map[int]float64)
	for col := 0; col < cols; col++ {
		chars, err := f.GetColWidth(sheetName, address.ColumnName(col))
		if err != nil {
			return nil, nil, err
		}
		if chars != defaultColumnChars {
			widths[col] = CharsToPixels(chars)
		}
	}
	for row := 0; row < rows; row++ {
		points, err := f.GetRowHeight(sheetName, row+1)
		if err != nil {
			return nil, nil, err
		}
		if points != defaultRowPoints {
			heights[row] = PointsToPixels(points)
		}
	}
	return widths, heights, nil
}

// WriteDimensions sets column widths and row heights given in pixels.
func WriteDimensions(f *excelize.File, sheetName string, widths, heights map[int]float64) error {
	for col, px := range widths {
		name := address.ColumnName(col)
		if name == "" {
			continue
		}
		if err := f.SetColWidth(sheetName, name, name, min(PixelsToChars(px), excelize.MaxColumnWidth)); err != nil {
			return err
		}
	}
	for row, px := range heights {
		if row < 0 {
			continue
		}
		if err := f.SetRowHeight(sheetName, row+1, min(PixelsToPoints(px), excelize.MaxRowHeight)); err != nil {
			return err
		}
	}
	return nil
}

// WriteSheet writes every cell of s, evaluating formulas for their cached
// values.
func WriteSheet(f *excelize.File, sheetName string, s store.Store) error {
	for _, cell := range s.Cells() {
		display := ""
		if cell.IsFormula() {
			display = formula.EvaluateCell(s, cell.Row, cell.Col).String()
		}
		if err := WriteCell(f, sheetName, cell, display); err != nil {
			return err
		}
	}
	return nil
}

// DataBounds returns the row and column counts covering cells.
func DataBounds(cells []models.Cell) (rows, cols int) {
	for _, cell := range cells {
		rows = max(rows, cell.Row+1)
		cols = max(cols, cell.Col+1)
	}
	return rows, cols
}
