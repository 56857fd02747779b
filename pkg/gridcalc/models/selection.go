package models

import "math"

// Address is a zero-based (row, col) pair.
type Address struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Selection is an inclusive rectangular region of the grid.
// The component creating a selection orders its corners; NewSelection does this.
type Selection struct {
	StartRow int `json:"startRow"`
	StartCol int `json:"startCol"`
	EndRow   int `json:"endRow"`
	EndCol   int `json:"endCol"`
}

// NewSelection returns the selection spanning two corners in any order.
func NewSelection(row1, col1, row2, col2 int) Selection {
	return Selection{
		StartRow: min(row1, row2),
		StartCol: min(col1, col2),
		EndRow:   max(row1, row2),
		EndCol:   max(col1, col2),
	}
}

// SingleCell returns the selection covering one address.
func SingleCell(row, col int) Selection {
	return Selection{StartRow: row, StartCol: col, EndRow: row, EndCol: col}
}

// Rows returns the number of rows covered.
func (s Selection) Rows() int {
	return s.EndRow - s.StartRow + 1
}

// Cols returns the number of columns covered.
func (s Selection) Cols() int {
	return s.EndCol - s.StartCol + 1
}

// Area returns the number of addresses in the selection, saturating at
// math.MaxInt.
func (s Selection) Area() int {
	rows, cols := s.Rows(), s.Cols()
	if rows <= 0 || cols <= 0 {
		return 0
	}
	if rows > math.MaxInt/cols {
		return math.MaxInt
	}
	return rows * cols
}

// Contains reports whether (row, col) lies inside the selection.
func (s Selection) Contains(row, col int) bool {
	return row >= s.StartRow && row <= s.EndRow && col >= s.StartCol && col <= s.EndCol
}

// TopLeft returns the start corner.
func (s Selection) TopLeft() Address {
	return Address{Row: s.StartRow, Col: s.StartCol}
}

// Each calls fn for every address in row-major order.
func (s Selection) Each(fn func(row, col int)) {
	for row := s.StartRow; row <= s.EndRow; row++ {
		for col := s.StartCol; col <= s.EndCol; col++ {
			fn(row, col)
		}
	}
}
