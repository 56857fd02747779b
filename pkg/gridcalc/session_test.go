package gridcalc

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/address"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/store"
)

// TestSessionTestSuite runs the testify suite.
func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

// SessionTestSuite covers the editing session.
type SessionTestSuite struct {
	suite.Suite
	session *Session
}

// SetupTest opens an empty sheet before each test.
func (s *SessionTestSuite) SetupTest() {
	session, err := NewSession(models.NewSheetState(), DefaultOptions())
	s.Require().NoError(err)
	s.session = session
}

func (s *SessionTestSuite) set(label, raw string) {
	s.Require().NoError(s.session.SetCellLabel(label, raw))
}

func (s *SessionTestSuite) display(label string) string {
	row, col, err := address.FromLabel(label)
	s.Require().NoError(err)
	return s.session.Display(row, col)
}

func (s *SessionTestSuite) TestSetCellAndEvaluate() {
	s.set("A1", "2")
	s.set("A2", "4")
	s.set("A3", "6")
	s.set("A4", "=SUM(A1:A3)")

	s.Equal("12", s.display("A4"))
	s.Equal("=SUM(A1:A3)", s.session.Input(3, 0))
	s.Equal("4", s.session.Evaluate("=AVERAGE(A1:A3)").String())
	s.Equal("6", s.session.Evaluate("=MAX(A1:A3)").String())
	s.Equal("plain", s.session.Evaluate("plain").String())
	s.Equal("", s.display("Z99"))
}

func (s *SessionTestSuite) TestInvalidAddress() {
	err := s.session.SetCell(-1, 0, "x")
	s.Require().Error(err)
	s.True(errors.Is(err, address.ErrInvalidAddress))

	var opErr *OperationError
	s.Require().True(errors.As(err, &opErr))
	s.Equal("set", opErr.Op)

	err = s.session.SetCellLabel("a1", "x")
	s.True(errors.Is(err, address.ErrInvalidAddress))
	s.Equal(0, s.session.Store().Len())
	s.False(s.session.CanUndo())
}

func (s *SessionTestSuite) TestUndoRedo() {
	s.False(s.session.CanUndo(), "the opened state is the first entry")

	s.set("A1", "1")
	s.set("A1", "2")
	s.True(s.session.CanUndo())

	s.True(s.session.Undo())
	s.Equal("1", s.display("A1"))
	s.True(s.session.Undo())
	s.Equal("", s.display("A1"))
	s.False(s.session.Undo())

	s.True(s.session.CanRedo())
	s.True(s.session.Redo())
	s.Equal("1", s.display("A1"))
	s.True(s.session.Redo())
	s.Equal("2", s.display("A1"))
	s.False(s.session.Redo())
}

func (s *SessionTestSuite) TestUnseededHistory() {
	seed := false
	session, err := NewSession(models.NewSheetState(), Options{SeedHistory: &seed})
	s.Require().NoError(err)

	s.Require().NoError(session.SetCell(0, 0, "1"))
	s.False(session.CanUndo(), "the first recorded entry cannot be undone")
	s.Require().NoError(session.SetCell(0, 0, "2"))
	s.True(session.Undo())
	s.Equal("1", session.Display(0, 0))
}

func (s *SessionTestSuite) TestHistoryBound() {
	for i := 1; i <= 60; i++ {
		s.Require().NoError(s.session.SetCell(0, 0, strconv.Itoa(i)))
	}

	undone := 0
	for i := 0; i < 50; i++ {
		if s.session.Undo() {
			undone++
		}
	}
	s.Equal(49, undone)
	s.Equal("11", s.display("A1"))

	for i := 0; i < 50; i++ {
		s.session.Redo()
	}
	s.Equal("60", s.display("A1"))
	s.False(s.session.CanRedo())
}

func (s *SessionTestSuite) TestMutationDiscardsRedo() {
	s.set("A1", "1")
	s.set("A1", "2")
	s.session.Undo()
	s.True(s.session.CanRedo())

	s.set("B1", "x")
	s.False(s.session.CanRedo())
	s.Equal("1", s.display("A1"))
}

func (s *SessionTestSuite) TestIdenticalSetStillRecords() {
	s.set("A1", "5")
	before := s.session.Store()
	s.set("A1", "5")
	s.True(before.Equal(s.session.Store()))

	s.True(s.session.Undo())
	s.Equal("5", s.display("A1"))
	s.True(s.session.Undo())
	s.Equal("", s.display("A1"))
}

func (s *SessionTestSuite) TestFormatActive() {
	s.Require().NoError(s.session.FormatActive(store.ToggleBold()))

	cell, ok := s.session.Store().Cell(0, 0)
	s.Require().True(ok)
	s.Require().NotNil(cell.Style)
	s.True(cell.Style.Bold)
	s.Equal("", cell.Value)

	s.Require().NoError(s.session.FormatActive(store.ToggleBold()))
	_, ok = s.session.Store().Cell(0, 0)
	s.False(ok, "a cell whose style becomes empty is removed")

	s.True(s.session.Undo())
	_, ok = s.session.Store().Cell(0, 0)
	s.True(ok)
}

func (s *SessionTestSuite) TestFormatSelection() {
	s.Require().NoError(s.session.Select(models.Selection{StartRow: 2, StartCol: 2, EndRow: 1, EndCol: 1}))
	s.Require().NoError(s.session.FormatSelection(store.StepFontSize(1)))

	s.Equal(4, s.session.Store().Len())
	for _, cell := range s.session.Store().Cells() {
		s.Equal(12, cell.Style.FontSize)
	}

	s.True(s.session.Undo())
	s.Equal(0, s.session.Store().Len(), "one history entry per formatting action")
}

func (s *SessionTestSuite) TestFormatSelectionTooLarge() {
	sel, err := address.ParseRange("A1:XFD1048576")
	s.Require().NoError(err)
	s.Require().NoError(s.session.Select(sel))

	err = s.session.FormatSelection(store.ToggleBold())
	s.True(errors.Is(err, ErrRangeTooLarge))
	s.Equal(0, s.session.Store().Len())
	s.False(s.session.CanUndo())

	sel, err = address.ParseRange("A1:P4096")
	s.Require().NoError(err)
	s.Require().NoError(s.session.Select(sel))
	s.Require().NoError(s.session.FormatSelection(store.ToggleBold()))
	s.Equal(MaxFormatCells, s.session.Store().Len())
}

func (s *SessionTestSuite) TestSetStyleChain() {
	s.Require().NoError(s.session.SetStyle(1, 1, store.ToggleItalic(), store.Align(models.AlignRight)))
	cell, ok := s.session.Store().Cell(1, 1)
	s.Require().True(ok)
	s.Equal(models.CellStyle{Italic: true, TextAlign: models.AlignRight}, *cell.Style)

	s.True(s.session.Undo())
	s.False(s.session.CanUndo())
}

func (s *SessionTestSuite) TestCopyPaste() {
	s.set("B2", "9")
	s.Require().NoError(s.session.SetActiveCell(1, 1))
	clip := s.session.Copy()
	s.Require().NotNil(clip)
	s.Equal(models.Address{Row: 1, Col: 1}, clip.Anchor)

	s.Require().NoError(s.session.SetActiveCell(4, 3))
	ok, err := s.session.Paste()
	s.Require().NoError(err)
	s.True(ok)

	s.Equal("9", s.display("D5"))
	s.Equal("9", s.display("B2"))
}

func (s *SessionTestSuite) TestCopyPasteRegion() {
	s.set("A1", "1")
	s.set("B1", "=A1+1")
	s.set("A2", "3")
	s.Require().NoError(s.session.Select(models.NewSelection(0, 0, 1, 1)))
	s.session.Copy()

	s.Require().NoError(s.session.SetActiveCell(5, 2))
	_, err := s.session.Paste()
	s.Require().NoError(err)

	s.Equal("1", s.display("C6"))
	s.Equal("=A1+1", s.session.Input(5, 3), "formulas are pasted verbatim")
	s.Equal("3", s.display("C7"))
	s.Equal(6, s.session.Store().Len())
}

func (s *SessionTestSuite) TestCut() {
	s.set("B2", "9")
	s.Require().NoError(s.session.SetActiveCell(1, 1))
	clip, err := s.session.Cut()
	s.Require().NoError(err)
	s.Require().NotNil(clip)
	s.Equal(0, s.session.Store().Len())

	s.Require().NoError(s.session.SetActiveCell(4, 3))
	_, err = s.session.Paste()
	s.Require().NoError(err)
	s.Equal("9", s.display("D5"))

	s.True(s.session.Undo())
	s.True(s.session.Undo())
	s.Equal("9", s.display("B2"), "cut is one history entry")
}

func (s *SessionTestSuite) TestPasteWithoutClipboard() {
	ok, err := s.session.Paste()
	s.NoError(err)
	s.False(ok)
	s.False(s.session.CanUndo())
}

func (s *SessionTestSuite) TestDeleteSelection() {
	s.set("A1", "1")
	s.set("B2", "2")
	s.set("C3", "3")
	s.Require().NoError(s.session.Select(models.NewSelection(0, 0, 1, 1)))
	s.Require().NoError(s.session.DeleteSelection())

	s.Equal(1, s.session.Store().Len())
	s.Equal("3", s.display("C3"))
}

func (s *SessionTestSuite) TestClearActiveKeepsStyle() {
	s.set("A1", "x")
	s.Require().NoError(s.session.FormatActive(store.ToggleBold()))
	s.Require().NoError(s.session.ClearActive())

	cell, ok := s.session.Store().Cell(0, 0)
	s.Require().True(ok)
	s.Equal("", cell.Value)
	s.True(cell.Style.Bold)
}

func (s *SessionTestSuite) TestMoveActive() {
	s.session.MoveActive(-1, -1)
	s.Equal(&models.Address{Row: 0, Col: 0}, s.session.ActiveCell())

	s.session.MoveActive(500, 500)
	s.Equal(&models.Address{Row: DefaultRows - 1, Col: DefaultCols - 1}, s.session.ActiveCell())
	sel := models.SingleCell(DefaultRows-1, DefaultCols-1)
	s.Equal(&sel, s.session.Selection())

	s.session.MoveActive(-1, 0)
	s.Equal(&models.Address{Row: DefaultRows - 2, Col: DefaultCols - 1}, s.session.ActiveCell())
}

func (s *SessionTestSuite) TestViewChangesNotRecorded() {
	s.Require().NoError(s.session.Select(models.NewSelection(0, 0, 3, 3)))
	s.session.ClearSelection()
	s.Require().NoError(s.session.SetActiveCell(2, 2))
	s.Require().NoError(s.session.ResizeColumn(0, 120))
	s.Require().NoError(s.session.ResizeRow(0, 30))
	s.False(s.session.CanUndo())
}

func (s *SessionTestSuite) TestResize() {
	s.Require().NoError(s.session.ResizeColumn(2, 5))
	s.Require().NoError(s.session.ResizeRow(1, 48))
	state := s.session.State()
	s.Equal(float64(MinColumnWidth), state.ColumnWidths[2])
	s.Equal(48.0, state.RowHeights[1])

	err := s.session.ResizeColumn(-1, 100)
	s.True(errors.Is(err, address.ErrInvalidAddress))
}

func (s *SessionTestSuite) TestUndoRestoresDimensions() {
	s.Require().NoError(s.session.ResizeColumn(0, 150))
	s.set("A1", "1")
	s.Require().NoError(s.session.ResizeColumn(0, 60))
	s.set("A1", "2")

	s.True(s.session.Undo())
	s.Equal(150.0, s.session.State().ColumnWidths[0])
}

func (s *SessionTestSuite) TestStats() {
	s.set("A1", "2")
	s.set("A2", "4")
	s.set("A3", "=A1+A2")
	s.set("A4", "text")

	st := s.session.Stats()
	s.Equal(1, st.SelectedCount, "the fresh session selects nothing")

	s.Require().NoError(s.session.Select(models.NewSelection(0, 0, 4, 0)))
	st = s.session.Stats()
	s.Equal(5, st.SelectedCount)
	s.Require().NotNil(st.Count)
	s.Equal(4, *st.Count)
	s.Require().NotNil(st.Sum)
	s.Equal(12.0, *st.Sum)
	s.Equal(4.0, *st.Average)
}

func (s *SessionTestSuite) TestPrecedentsAndDependents() {
	s.set("A1", "1")
	s.set("A4", "=SUM(A1:A3)")
	s.set("B1", "=A1*2")

	s.Equal([]string{"A1", "A2", "A3"}, s.session.Precedents(3, 0))
	s.Nil(s.session.Precedents(0, 0))
	s.Equal([]string{"B1", "A4"}, s.session.Dependents(0, 0))
	s.Equal([]string{"A4"}, s.session.Dependents(2, 0))
}

func (s *SessionTestSuite) TestCycleDisplay() {
	s.set("A1", "=B1")
	s.set("B1", "=A1")
	s.Equal("#CYCLE!", s.session.Evaluate("=B1").String())
	s.Equal("#CYCLE!", s.display("A1"))
}

func (s *SessionTestSuite) TestStateIsolation() {
	s.set("A1", "1")
	state := s.session.State()
	state.Cells["A1"] = models.Cell{ID: "A1", Value: "changed"}
	state.ActiveCell.Row = 7
	state.ColumnWidths[0] = 1

	s.Equal("1", s.display("A1"))
	s.Equal(0, s.session.ActiveCell().Row)
	_, ok := s.session.State().ColumnWidths[0]
	s.False(ok)
}

func (s *SessionTestSuite) TestNewSessionInvalidDocument() {
	state := models.NewSheetState()
	state.Cells["not a label"] = models.Cell{Value: "1"}
	_, err := NewSession(state, DefaultOptions())
	s.True(errors.Is(err, ErrInvalidDocument))
	s.True(errors.Is(err, address.ErrInvalidAddress))
}

func (s *SessionTestSuite) TestNewSessionNormalizesState() {
	state := models.SheetState{
		Cells: map[string]models.Cell{
			"B2": {Value: "=1+1"},
			"C3": {},
		},
		Selection: &models.Selection{StartRow: 3, StartCol: 3, EndRow: 0, EndCol: 0},
	}
	session, err := NewSession(state, DefaultOptions())
	s.Require().NoError(err)

	s.Equal(1, session.Store().Len())
	s.Equal("2", session.Display(1, 1))
	s.Equal(&models.Selection{EndRow: 3, EndCol: 3}, session.Selection())
	s.Nil(session.ActiveCell())
	s.NotNil(session.State().ColumnWidths)
}
