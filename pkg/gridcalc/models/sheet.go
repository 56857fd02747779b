package models

// SheetState is the visible state of one sheet: the unit recorded by the
// undo history and the document persisted by the storage layer.
type SheetState struct {
	// Cells maps cell label to cell.
	Cells map[string]Cell `json:"cells"`
	// Selection is the current selection, nil when nothing is selected.
	Selection *Selection `json:"selection"`
	// ActiveCell is the focused cell, nil when none.
	ActiveCell *Address `json:"activeCell"`
	// ColumnWidths maps column index to width in pixels.
	ColumnWidths map[int]float64 `json:"columnWidths"`
	// RowHeights maps row index to height in pixels.
	RowHeights map[int]float64 `json:"rowHeights"`
}

// NewSheetState returns an empty sheet with A1 active, matching a fresh editor.
func NewSheetState() SheetState {
	return SheetState{
		Cells:        map[string]Cell{},
		ActiveCell:   &Address{},
		ColumnWidths: map[int]float64{},
		RowHeights:   map[int]float64{},
	}
}
