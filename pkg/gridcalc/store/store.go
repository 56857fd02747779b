// Package store implements the sparse, versioned cell store.
//
// A Store is an immutable value: every mutating operation returns a new Store
// and leaves the receiver untouched, so earlier versions can be held by the
// undo history. A cell with no value, no formula and no style is never stored.
package store

import (
	"maps"
	"slices"
	"strings"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/address"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
)

// Store maps cell labels to cells.
type Store struct {
	cells map[string]models.Cell
}

// New returns a store holding the given cells. Cells are keyed by their
// (Row, Col); empty cells and negative coordinates are dropped.
func New(cells ...models.Cell) Store {
	m := make(map[string]models.Cell, len(cells))
	for _, cell := range cells {
		if cell, ok := normalize(cell); ok {
			m[cell.ID] = cell
		}
	}
	return Store{cells: m}
}

// FromMap builds a store from a label-keyed map such as a persisted document.
// Each key is authoritative for the cell's position.
func FromMap(cells map[string]models.Cell) (Store, error) {
	m := make(map[string]models.Cell, len(cells))
	for label, cell := range cells {
		row, col, err := address.FromLabel(label)
		if err != nil {
			return Store{}, err
		}
		cell.Row, cell.Col = row, col
		if cell, ok := normalize(cell); ok {
			m[cell.ID] = cell
		}
	}
	return Store{cells: m}, nil
}

// Map returns a copy of the label-keyed cells.
func (s Store) Map() map[string]models.Cell {
	m := make(map[string]models.Cell, len(s.cells))
	for label, cell := range s.cells {
		m[label] = copyCell(cell)
	}
	return m
}

// Cell returns the cell at (row, col).
func (s Store) Cell(row, col int) (models.Cell, bool) {
	return s.Lookup(address.ToLabel(row, col))
}

// Lookup returns the cell with the given label.
func (s Store) Lookup(label string) (models.Cell, bool) {
	cell, ok := s.cells[label]
	if !ok {
		return models.Cell{}, false
	}
	return copyCell(cell), true
}

// Len returns the number of stored cells.
func (s Store) Len() int {
	return len(s.cells)
}

// Cells returns all cells in row-major order.
func (s Store) Cells() []models.Cell {
	cells := make([]models.Cell, 0, len(s.cells))
	for _, cell := range s.cells {
		cells = append(cells, copyCell(cell))
	}
	sortCells(cells)
	return cells
}

// Equal reports whether both stores hold the same cells.
func (s Store) Equal(other Store) bool {
	return maps.EqualFunc(s.cells, other.cells, cellsEqual)
}

// Bounds returns the smallest selection covering every stored cell.
func (s Store) Bounds() (models.Selection, bool) {
	first := true
	var b models.Selection
	for _, cell := range s.cells {
		if first {
			b = models.SingleCell(cell.Row, cell.Col)
			first = false
			continue
		}
		b.StartRow = min(b.StartRow, cell.Row)
		b.StartCol = min(b.StartCol, cell.Col)
		b.EndRow = max(b.EndRow, cell.Row)
		b.EndCol = max(b.EndCol, cell.Col)
	}
	return b, !first
}

// SetCell sets the raw text of a cell. Text beginning with "=" is stored as
// a formula. Empty text removes the cell unless it carries a style, which is
// preserved either way.
func (s Store) SetCell(row, col int, raw string) Store {
	if row < 0 || col < 0 {
		return s
	}
	label := address.ToLabel(row, col)
	cell := models.Cell{ID: label, Row: row, Col: col, Value: raw}
	if old, ok := s.cells[label]; ok {
		cell.Style = old.Style
	}
	return s.put(label, cell)
}

// SetStyle applies mutate to the style of the cell at (row, col), creating
// an empty cell if needed. A cell left with no value and no style is removed.
func (s Store) SetStyle(row, col int, mutate StyleMutator) Store {
	if row < 0 || col < 0 || mutate == nil {
		return s
	}
	label := address.ToLabel(row, col)
	cell, ok := s.cells[label]
	if !ok {
		cell = models.Cell{ID: label, Row: row, Col: col}
	}
	var style models.CellStyle
	if cell.Style != nil {
		style = *cell.Style
	}
	style = mutate(style)
	cell.Style = &style
	return s.put(label, cell)
}

// put stores cell under label in a copy of s, or removes label when the
// normalized cell is empty.
func (s Store) put(label string, cell models.Cell) Store {
	next := maps.Clone(s.cells)
	if next == nil {
		next = make(map[string]models.Cell)
	}
	if cell, ok := normalize(cell); ok {
		next[label] = cell
	} else {
		delete(next, label)
	}
	return Store{cells: next}
}

// normalize fills derived fields and applies the tombstone rule. It reports
// false when the cell must not be stored.
func normalize(cell models.Cell) (models.Cell, bool) {
	if cell.Row < 0 || cell.Col < 0 {
		return cell, false
	}
	cell.ID = address.ToLabel(cell.Row, cell.Col)
	if strings.HasPrefix(cell.Value, "=") {
		cell.Formula = cell.Value
	} else if cell.Value == "" && strings.HasPrefix(cell.Formula, "=") {
		cell.Value = cell.Formula
	} else {
		cell.Formula = ""
	}
	if cell.Style != nil {
		if cell.Style.IsZero() {
			cell.Style = nil
		} else {
			style := *cell.Style
			cell.Style = &style
		}
	}
	return cell, !cell.Empty()
}

func copyCell(cell models.Cell) models.Cell {
	if cell.Style != nil {
		style := *cell.Style
		cell.Style = &style
	}
	return cell
}

func cellsEqual(a, b models.Cell) bool {
	if a.ID != b.ID || a.Row != b.Row || a.Col != b.Col || a.Value != b.Value || a.Formula != b.Formula {
		return false
	}
	if a.Style == nil || b.Style == nil {
		return a.Style == nil && b.Style == nil
	}
	return *a.Style == *b.Style
}

func sortCells(cells []models.Cell) {
	slices.SortFunc(cells, func(a, b models.Cell) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
}
