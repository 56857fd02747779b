package store

import (
	"maps"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/address"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
)

// DeleteRegion removes every cell inside sel, styles included.
func (s Store) DeleteRegion(sel models.Selection) Store {
	next := maps.Clone(s.cells)
	for label, cell := range next {
		if sel.Contains(cell.Row, cell.Col) {
			delete(next, label)
		}
	}
	return Store{cells: next}
}

// StyleRegion applies mutate to every address of sel in a single copy of the
// store. Cells left with no value and no style are removed.
func (s Store) StyleRegion(sel models.Selection, mutate StyleMutator) Store {
	if mutate == nil {
		return s
	}
	next := maps.Clone(s.cells)
	if next == nil {
		next = make(map[string]models.Cell)
	}
	sel.Each(func(row, col int) {
		if row < 0 || col < 0 {
			return
		}
		label := address.ToLabel(row, col)
		cell, ok := next[label]
		if !ok {
			cell = models.Cell{ID: label, Row: row, Col: col}
		}
		var style models.CellStyle
		if cell.Style != nil {
			style = *cell.Style
		}
		style = mutate(style)
		cell.Style = &style
		if cell, ok := normalize(cell); ok {
			next[label] = cell
		} else {
			delete(next, label)
		}
	})
	return Store{cells: next}
}

// CopyRegion returns the present cells inside sel in row-major order.
func (s Store) CopyRegion(sel models.Selection) []models.Cell {
	var cells []models.Cell
	for _, cell := range s.cells {
		if sel.Contains(cell.Row, cell.Col) {
			cells = append(cells, copyCell(cell))
		}
	}
	sortCells(cells)
	return cells
}

// PasteRegion writes cells shifted by origin - anchor, where anchor is the
// top-left corner of the copied selection and origin the destination cell.
// Each pasted cell replaces whatever was at its destination. Cells that
// would land at a negative coordinate are dropped.
func (s Store) PasteRegion(cells []models.Cell, origin, anchor models.Address) Store {
	dRow := origin.Row - anchor.Row
	dCol := origin.Col - anchor.Col
	next := maps.Clone(s.cells)
	if next == nil {
		next = make(map[string]models.Cell, len(cells))
	}
	for _, cell := range cells {
		cell.Row += dRow
		cell.Col += dCol
		if cell.Row < 0 || cell.Col < 0 {
			continue
		}
		label := address.ToLabel(cell.Row, cell.Col)
		if cell, ok := normalize(cell); ok {
			next[label] = cell
		} else {
			delete(next, label)
		}
	}
	return Store{cells: next}
}
