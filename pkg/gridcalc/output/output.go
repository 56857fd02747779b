// Package output serializes documents and evaluated views to JSON.
package output

import (
	"encoding/json"
	"math"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/address"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/formula"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
)

// View is the evaluated content of one rectangular region.
type View struct {
	// Range is the region label (e.g. "A1:C3").
	Range string `json:"range"`
	// Rows holds the non-empty rows of the region.
	Rows []models.CellRow `json:"rows"`
}

// ToJSON serializes v, indenting by two spaces when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// SheetToJSON serializes one sheet state.
func SheetToJSON(sheet *models.SheetState, pretty bool) ([]byte, error) {
	return ToJSON(sheet, pretty)
}

// WorkbookToJSON serializes a workbook.
func WorkbookToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return ToJSON(wb, pretty)
}

// ViewToJSON serializes an evaluated view.
func ViewToJSON(view *View, pretty bool) ([]byte, error) {
	return ToJSON(view, pretty)
}

// Cells is the read access a view needs: per-cell lookup for evaluation
// and the stored cells for iteration.
type Cells interface {
	formula.Source
	Cells() []models.Cell
}

// BuildView evaluates every stored cell inside sel. Row numbers are 1-based
// and columns are keyed by letter.
func BuildView(src Cells, sel models.Selection) View {
	view := View{Range: address.RangeLabel(sel)}
	for _, cell := range src.Cells() {
		if !sel.Contains(cell.Row, cell.Col) {
			continue
		}
		v := formula.EvaluateCell(src, cell.Row, cell.Col)
		if v.Kind == formula.KindEmpty {
			continue
		}
		last := len(view.Rows) - 1
		if last < 0 || view.Rows[last].R != cell.Row+1 {
			view.Rows = append(view.Rows, models.CellRow{R: cell.Row + 1, C: map[string]interface{}{}})
			last++
		}
		view.Rows[last].C[address.ColumnName(cell.Col)] = typedValue(v)
	}
	return view
}

// typedValue converts an evaluated value to its JSON form.
// Returns int64 for integral numbers, float64 for other numbers, bool for
// booleans, or the displayed string.
func typedValue(v formula.Value) interface{} {
	switch v.Kind {
	case formula.KindNumber:
		if v.Num == math.Trunc(v.Num) && math.Abs(v.Num) < 1<<53 {
			return int64(v.Num)
		}
		return v.Num
	case formula.KindBool:
		return v.Bool
	}
	return v.String()
}
