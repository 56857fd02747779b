package xlsx

import (
	"strconv"
	"strings"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/address"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/formula"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
	"github.com/xuri/excelize/v2"
)

// ReadCells extracts the cells of a sheet. Formula cells keep their formula
// text with a leading "=", other cells their raw stored value. Cells with
// neither are skipped.
func ReadCells(f *excelize.File, sheetName string, includeStyles bool) ([]models.Cell, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	var result []models.Cell
	for rowIdx, row := range rows {
		for colIdx, cellValue := range row {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			text, err := f.GetCellFormula(sheetName, cellName)
			if err != nil {
				return nil, err
			}

			raw := cellValue
			if text != "" {
				raw = "=" + strings.TrimPrefix(text, "=")
			}
			if raw == "" {
				continue
			}

			cell := models.Cell{
				ID:    address.ToLabel(rowIdx, colIdx),
				Row:   rowIdx,
				Col:   colIdx,
				Value: raw,
			}
			if strings.HasPrefix(raw, "=") {
				cell.Formula = raw
			}
			if includeStyles {
				style, err := ReadStyle(f, sheetName, cellName)
				if err != nil {
					return nil, err
				}
				cell.Style = style
			}
			result = append(result, cell)
		}
	}

	return result, nil
}

// WriteCell writes one cell. Formula cells get a numeric display as their
// cached value so readers without a calculation engine still see a result.
func WriteCell(f *excelize.File, sheetName string, cell models.Cell, display string) error {
	cellName, err := excelize.CoordinatesToCellName(cell.Col+1, cell.Row+1)
	if err != nil {
		return err
	}

	if cell.IsFormula() {
		// SetCellFormula keeps the cell value but retypes it as a plain
		// string, so only an inline (non shared-string) value survives.
		if err := f.SetCellDefault(sheetName, cellName, display); err != nil {
			return err
		}
		if err := f.SetCellFormula(sheetName, cellName, strings.TrimPrefix(cell.Formula, "=")); err != nil {
			return err
		}
	} else if cell.Value != "" {
		if err := f.SetCellValue(sheetName, cellName, parseValue(cell.Value)); err != nil {
			return err
		}
	}

	if cell.Style == nil || cell.Style.IsZero() {
		return nil
	}
	styleID, err := f.NewStyle(ToExcelStyle(*cell.Style))
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, cellName, cellName, styleID)
}

// parseValue attempts to parse a raw value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
// Text that would not print back identically, such as "007", stays a string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(i, 10) == s {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && formula.FormatNumber(f) == s {
		return f
	}
	// Return as string
	return s
}
