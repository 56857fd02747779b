package formula

import (
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/address"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
	"github.com/xuri/efp"
)

// References returns the cell and range references written in a formula, in
// order of appearance and without duplicates, e.g. ["A1:A3", "B2"].
// Operands that are not plain A1-style references are ignored.
func References(text string) []string {
	if !IsFormula(text) {
		return nil
	}
	ps := efp.ExcelParser()
	tokens := ps.Parse(text)

	seen := make(map[string]bool)
	var refs []string
	for _, token := range tokens {
		if token.TType != efp.TokenTypeOperand || token.TSubType != efp.TokenSubTypeRange {
			continue
		}
		ref := token.TValue
		if _, err := address.ParseRange(ref); err != nil {
			continue
		}
		if !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

// Precedents expands the references of a formula into distinct cell labels
// in row-major order per reference. A range covering more than MaxScan
// addresses is listed as the range itself.
func Precedents(text string) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, ref := range References(text) {
		sel, err := address.ParseRange(ref)
		if err != nil {
			continue
		}
		if sel.Area() > MaxScan {
			if !seen[ref] {
				seen[ref] = true
				labels = append(labels, ref)
			}
			continue
		}
		sel.Each(func(row, col int) {
			label := address.ToLabel(row, col)
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		})
	}
	return labels
}

// RefersTo reports whether a formula references the cell at (row, col),
// directly or through a range.
func RefersTo(text string, row, col int) bool {
	for _, ref := range References(text) {
		sel, err := address.ParseRange(ref)
		if err == nil && sel.Contains(row, col) {
			return true
		}
	}
	return false
}

// Dependents returns, in the order given, the labels of cells whose formulas
// reference (row, col) directly.
func Dependents(cells []models.Cell, row, col int) []string {
	var labels []string
	for _, cell := range cells {
		if cell.Formula != "" && RefersTo(cell.Formula, row, col) {
			labels = append(labels, cell.ID)
		}
	}
	return labels
}
