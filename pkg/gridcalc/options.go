// Package gridcalc provides a spreadsheet editing session over a sparse,
// versioned cell store with formula evaluation, undo history, JSON
// persistence and xlsx interchange.
package gridcalc

import "github.com/ukaji3/gridcalc-go/pkg/gridcalc/history"

const (
	// DefaultRows is the number of rows of the editing grid.
	DefaultRows = 100
	// DefaultCols is the number of columns of the editing grid.
	DefaultCols = 26
	// MinColumnWidth is the smallest column width in pixels.
	MinColumnWidth = 20
	// MinRowHeight is the smallest row height in pixels.
	MinRowHeight = 10
	// MaxFormatCells bounds the addresses one formatting action may style.
	MaxFormatCells = 1 << 16
)

// Options configures a Session.
type Options struct {
	// HistoryLimit is the maximum number of undo entries. Zero means 50.
	HistoryLimit int
	// SeedHistory records the opened state as the first history entry so
	// the first edit can be undone.
	// If nil, defaults to true.
	SeedHistory *bool
	// Rows and Cols bound active-cell navigation. Zero means 100x26.
	Rows int
	Cols int
}

// DefaultOptions returns default session options.
func DefaultOptions() Options {
	return Options{
		HistoryLimit: history.DefaultLimit,
		Rows:         DefaultRows,
		Cols:         DefaultCols,
	}
}

// ShouldSeedHistory returns whether the opened state is recorded.
func (o Options) ShouldSeedHistory() bool {
	if o.SeedHistory != nil {
		return *o.SeedHistory
	}
	return true
}

// GridSize returns the navigable grid size.
func (o Options) GridSize() (rows, cols int) {
	rows, cols = o.Rows, o.Cols
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	return rows, cols
}

// ImportOptions configures xlsx import.
type ImportOptions struct {
	// Sheet restricts the import to one worksheet. Empty imports every sheet.
	Sheet string
	// IncludeStyles specifies whether to import cell formatting.
	// If nil, defaults to true.
	IncludeStyles *bool
	// IncludeDimensions specifies whether to import custom column widths
	// and row heights.
	// If nil, defaults to true.
	IncludeDimensions *bool
}

// ShouldIncludeStyles returns whether to import cell formatting.
func (o ImportOptions) ShouldIncludeStyles() bool {
	if o.IncludeStyles != nil {
		return *o.IncludeStyles
	}
	return true
}

// ShouldIncludeDimensions returns whether to import column widths and row heights.
func (o ImportOptions) ShouldIncludeDimensions() bool {
	if o.IncludeDimensions != nil {
		return *o.IncludeDimensions
	}
	return true
}
