package formula

import "github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"

// MaxScan is the largest range Walk visits address by address on a source
// that cannot list its cells.
const MaxScan = 1 << 16

// Lister is implemented by sources that can list their stored cells in
// row-major order.
type Lister interface {
	Len() int
	Cells() []models.Cell
}

// Walk calls fn in row-major order for the addresses of sel that may hold a
// cell, until fn returns false. Absent cells may be skipped: a range larger
// than a Lister's cell count is walked through the stored cells only. Walk
// reports false when sel exceeds MaxScan and src is not a Lister.
func Walk(src Source, sel models.Selection, fn func(row, col int) bool) bool {
	area := sel.Area()
	if l, ok := src.(Lister); ok && area > l.Len() {
		for _, cell := range l.Cells() {
			if sel.Contains(cell.Row, cell.Col) && !fn(cell.Row, cell.Col) {
				break
			}
		}
		return true
	}
	if area > MaxScan {
		return false
	}
	for row := sel.StartRow; row <= sel.EndRow; row++ {
		for col := sel.StartCol; col <= sel.EndCol; col++ {
			if !fn(row, col) {
				return true
			}
		}
	}
	return true
}
