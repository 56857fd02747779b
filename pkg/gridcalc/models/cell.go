// Package models defines the value types shared by the grid calculation packages.
package models

// Alignment is the horizontal alignment of a cell's content.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// CellStyle holds the optional formatting flags of a cell.
// The zero value means "no style".
type CellStyle struct {
	// Bold, Italic and Underline are font toggles.
	Bold      bool `json:"bold,omitempty"`
	Italic    bool `json:"italic,omitempty"`
	Underline bool `json:"underline,omitempty"`
	// FontSize is the font size in points (8-72). Zero means the default size.
	FontSize int `json:"fontSize,omitempty"`
	// FontColor is a CSS-style color such as "#FF0000".
	FontColor string `json:"fontColor,omitempty"`
	// BackgroundColor is a CSS-style fill color.
	BackgroundColor string `json:"backgroundColor,omitempty"`
	// TextAlign is the horizontal alignment.
	TextAlign Alignment `json:"textAlign,omitempty"`
	// Per-edge border flags.
	BorderTop    bool `json:"borderTop,omitempty"`
	BorderRight  bool `json:"borderRight,omitempty"`
	BorderBottom bool `json:"borderBottom,omitempty"`
	BorderLeft   bool `json:"borderLeft,omitempty"`
}

// IsZero reports whether no style flag is set.
func (s CellStyle) IsZero() bool {
	return s == CellStyle{}
}

// Cell is one addressable unit of the grid.
type Cell struct {
	// ID is the cell label (e.g. "A1").
	ID string `json:"id"`
	// Row is the zero-based row index.
	Row int `json:"row"`
	// Col is the zero-based column index.
	Col int `json:"col"`
	// Value is the literal text the user typed.
	Value string `json:"value"`
	// Formula is set iff Value begins with "=".
	Formula string `json:"formula,omitempty"`
	// Style is the optional formatting of the cell.
	Style *CellStyle `json:"style,omitempty"`
}

// Empty reports whether the cell carries neither content nor style.
// Empty cells are never stored.
func (c Cell) Empty() bool {
	return c.Value == "" && c.Formula == "" && (c.Style == nil || c.Style.IsZero())
}

// IsFormula reports whether the cell holds a formula.
func (c Cell) IsFormula() bool {
	return c.Formula != ""
}

// Input returns the text shown in the formula bar for the cell.
func (c Cell) Input() string {
	if c.Formula != "" {
		return c.Formula
	}
	return c.Value
}

// CellRow represents a single row of evaluated cells.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column label to the displayed value.
	C map[string]interface{} `json:"c"`
}
