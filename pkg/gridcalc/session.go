package gridcalc

import (
	"fmt"
	"maps"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/address"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/formula"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/history"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/stats"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/store"
)

// Clipboard holds copied cells and the top-left corner they were copied from.
type Clipboard struct {
	Cells  []models.Cell
	Anchor models.Address
}

// Session owns the current sheet state. Every cell or style mutation goes
// through it and is recorded in the undo history exactly once. Selection,
// active cell and dimension changes are not recorded.
//
// A Session is not safe for concurrent use.
type Session struct {
	opts         Options
	cells        store.Store
	selection    *models.Selection
	active       *models.Address
	columnWidths map[int]float64
	rowHeights   map[int]float64
	history      *history.Manager
	clipboard    *Clipboard
}

// NewSession opens state for editing.
func NewSession(state models.SheetState, opts Options) (*Session, error) {
	cells, err := store.FromMap(state.Cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	s := &Session{
		opts:         opts,
		cells:        cells,
		columnWidths: cloneDims(state.ColumnWidths),
		rowHeights:   cloneDims(state.RowHeights),
		history:      history.New(opts.HistoryLimit),
	}
	if state.Selection != nil {
		sel := models.NewSelection(state.Selection.StartRow, state.Selection.StartCol,
			state.Selection.EndRow, state.Selection.EndCol)
		s.selection = &sel
	}
	if state.ActiveCell != nil {
		a := *state.ActiveCell
		s.active = &a
	}
	if opts.ShouldSeedHistory() {
		if err := s.record(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// State returns a copy of the visible state.
func (s *Session) State() models.SheetState {
	state := models.SheetState{
		Cells:        s.cells.Map(),
		ColumnWidths: cloneDims(s.columnWidths),
		RowHeights:   cloneDims(s.rowHeights),
	}
	if s.selection != nil {
		sel := *s.selection
		state.Selection = &sel
	}
	if s.active != nil {
		a := *s.active
		state.ActiveCell = &a
	}
	return state
}

// Store returns the current cell store.
func (s *Session) Store() store.Store {
	return s.cells
}

// Selection returns the current selection, nil when none.
func (s *Session) Selection() *models.Selection {
	if s.selection == nil {
		return nil
	}
	sel := *s.selection
	return &sel
}

// ActiveCell returns the focused cell, nil when none.
func (s *Session) ActiveCell() *models.Address {
	if s.active == nil {
		return nil
	}
	a := *s.active
	return &a
}

// Clipboard returns the last copied cells, nil before the first copy.
func (s *Session) Clipboard() *Clipboard {
	return s.clipboard
}

// SetCell sets the raw text of the cell at (row, col).
func (s *Session) SetCell(row, col int, raw string) error {
	if err := checkAddress("set", row, col); err != nil {
		return err
	}
	return s.apply(s.cells.SetCell(row, col, raw))
}

// SetCellLabel sets the raw text of the cell with the given label.
func (s *Session) SetCellLabel(label, raw string) error {
	row, col, err := address.FromLabel(label)
	if err != nil {
		return NewOperationError("set", label, err)
	}
	return s.SetCell(row, col, raw)
}

// SetStyle applies mutators to the style of the cell at (row, col) as one
// history entry.
func (s *Session) SetStyle(row, col int, mutators ...store.StyleMutator) error {
	if err := checkAddress("style", row, col); err != nil {
		return err
	}
	return s.apply(s.cells.SetStyle(row, col, store.Chain(mutators...)))
}

// FormatActive applies mutate to the active cell. It does nothing when no
// cell is active.
func (s *Session) FormatActive(mutate store.StyleMutator) error {
	if s.active == nil {
		return nil
	}
	return s.SetStyle(s.active.Row, s.active.Col, mutate)
}

// FormatSelection applies mutate to every address of the selection, or to
// the active cell when nothing is selected. Selections larger than
// MaxFormatCells are rejected with ErrRangeTooLarge.
func (s *Session) FormatSelection(mutate store.StyleMutator) error {
	sel, ok := s.target()
	if !ok {
		return nil
	}
	if sel.Area() > MaxFormatCells {
		return NewOperationError("style", address.RangeLabel(sel), ErrRangeTooLarge)
	}
	return s.apply(s.cells.StyleRegion(sel, mutate))
}

// DeleteRegion removes every cell inside sel.
func (s *Session) DeleteRegion(sel models.Selection) error {
	sel = models.NewSelection(sel.StartRow, sel.StartCol, sel.EndRow, sel.EndCol)
	if err := checkAddress("delete", sel.StartRow, sel.StartCol); err != nil {
		return err
	}
	return s.apply(s.cells.DeleteRegion(sel))
}

// DeleteSelection removes the selected cells, or the active cell when
// nothing is selected.
func (s *Session) DeleteSelection() error {
	sel, ok := s.target()
	if !ok {
		return nil
	}
	return s.DeleteRegion(sel)
}

// ClearActive clears the value of the active cell, keeping its style.
func (s *Session) ClearActive() error {
	if s.active == nil {
		return nil
	}
	return s.SetCell(s.active.Row, s.active.Col, "")
}

// Copy places the selected cells, or the active cell, on the clipboard.
func (s *Session) Copy() *Clipboard {
	sel, ok := s.target()
	if !ok {
		return nil
	}
	s.clipboard = &Clipboard{
		Cells:  s.cells.CopyRegion(sel),
		Anchor: sel.TopLeft(),
	}
	return s.clipboard
}

// Cut copies the target region and then deletes it as one history entry.
func (s *Session) Cut() (*Clipboard, error) {
	clip := s.Copy()
	if clip == nil {
		return nil, nil
	}
	if err := s.DeleteSelection(); err != nil {
		return nil, err
	}
	return clip, nil
}

// Paste writes the clipboard at the active cell. It reports false when
// there is nothing to paste or no active cell.
func (s *Session) Paste() (bool, error) {
	if s.clipboard == nil || s.active == nil {
		return false, nil
	}
	return true, s.apply(s.cells.PasteRegion(s.clipboard.Cells, *s.active, s.clipboard.Anchor))
}

// Undo restores the previous history entry. It reports false when there is
// nothing to undo.
func (s *Session) Undo() bool {
	entry, ok := s.history.Undo()
	if !ok {
		return false
	}
	return s.restore(entry)
}

// Redo restores the next history entry. It reports false when there is
// nothing to redo.
func (s *Session) Redo() bool {
	entry, ok := s.history.Redo()
	if !ok {
		return false
	}
	return s.restore(entry)
}

// CanUndo reports whether Undo would change the state.
func (s *Session) CanUndo() bool {
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change the state.
func (s *Session) CanRedo() bool {
	return s.history.CanRedo()
}

// Select sets the selection, ordering its corners.
func (s *Session) Select(sel models.Selection) error {
	sel = models.NewSelection(sel.StartRow, sel.StartCol, sel.EndRow, sel.EndCol)
	if err := checkAddress("select", sel.StartRow, sel.StartCol); err != nil {
		return err
	}
	s.selection = &sel
	return nil
}

// ClearSelection drops the selection.
func (s *Session) ClearSelection() {
	s.selection = nil
}

// SetActiveCell focuses (row, col) and selects it.
func (s *Session) SetActiveCell(row, col int) error {
	if err := checkAddress("activate", row, col); err != nil {
		return err
	}
	s.focus(row, col)
	return nil
}

// MoveActive moves the active cell by (dRow, dCol), clamped to the grid,
// and selects it. It does nothing when no cell is active.
func (s *Session) MoveActive(dRow, dCol int) {
	if s.active == nil {
		return
	}
	rows, cols := s.opts.GridSize()
	row := max(0, min(rows-1, s.active.Row+dRow))
	col := max(0, min(cols-1, s.active.Col+dCol))
	s.focus(row, col)
}

// ResizeColumn sets the width of col in pixels.
func (s *Session) ResizeColumn(col int, width float64) error {
	if col < 0 {
		return NewOperationError("resize", fmt.Sprintf("column %d", col), address.ErrInvalidAddress)
	}
	s.columnWidths[col] = max(MinColumnWidth, width)
	return nil
}

// ResizeRow sets the height of row in pixels.
func (s *Session) ResizeRow(row int, height float64) error {
	if row < 0 {
		return NewOperationError("resize", fmt.Sprintf("row %d", row), address.ErrInvalidAddress)
	}
	s.rowHeights[row] = max(MinRowHeight, height)
	return nil
}

// Evaluate evaluates text against the current store.
func (s *Session) Evaluate(text string) formula.Value {
	return formula.Evaluate(text, s.cells)
}

// Value returns the evaluated value of the cell at (row, col).
func (s *Session) Value(row, col int) formula.Value {
	return formula.EvaluateCell(s.cells, row, col)
}

// Display returns the text shown in the grid for the cell at (row, col).
func (s *Session) Display(row, col int) string {
	return s.Value(row, col).String()
}

// Input returns the formula-bar text of the cell at (row, col).
func (s *Session) Input(row, col int) string {
	cell, _ := s.cells.Cell(row, col)
	return cell.Input()
}

// Stats summarizes the current selection.
func (s *Session) Stats() stats.Stats {
	return stats.Compute(s.selection, s.cells)
}

// Precedents returns the labels the formula at (row, col) reads.
func (s *Session) Precedents(row, col int) []string {
	cell, ok := s.cells.Cell(row, col)
	if !ok || !cell.IsFormula() {
		return nil
	}
	return formula.Precedents(cell.Formula)
}

// Dependents returns the labels of formula cells that read (row, col), in
// row-major order.
func (s *Session) Dependents(row, col int) []string {
	return formula.Dependents(s.cells.Cells(), row, col)
}

// target returns the selection, or the active cell as a one-cell selection.
func (s *Session) target() (models.Selection, bool) {
	if s.selection != nil {
		return *s.selection, true
	}
	if s.active != nil {
		return models.SingleCell(s.active.Row, s.active.Col), true
	}
	return models.Selection{}, false
}

func (s *Session) focus(row, col int) {
	s.active = &models.Address{Row: row, Col: col}
	sel := models.SingleCell(row, col)
	s.selection = &sel
}

// apply installs next as the current store and records the result.
func (s *Session) apply(next store.Store) error {
	s.cells = next
	return s.record()
}

func (s *Session) record() error {
	if err := s.history.Record(s.State()); err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

func (s *Session) restore(entry models.SheetState) bool {
	cells, err := store.FromMap(entry.Cells)
	if err != nil {
		return false
	}
	s.cells = cells
	s.selection = entry.Selection
	s.active = entry.ActiveCell
	s.columnWidths = cloneDims(entry.ColumnWidths)
	s.rowHeights = cloneDims(entry.RowHeights)
	return true
}

func checkAddress(op string, row, col int) error {
	if row < 0 || col < 0 {
		return NewOperationError(op, fmt.Sprintf("(%d,%d)", row, col), address.ErrInvalidAddress)
	}
	return nil
}

func cloneDims(m map[int]float64) map[int]float64 {
	if m == nil {
		return map[int]float64{}
	}
	return maps.Clone(m)
}
